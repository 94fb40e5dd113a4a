package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/magiconair/properties"
)

// propertyKey binds a dotted key/value setting to a config field.
type propertyKey struct {
	key      string
	required bool
	field    func(c *Config) *int
}

var propertyKeys = []propertyKey{
	{"animal.max.energy", true, func(c *Config) *int { return &c.Animal.MaxEnergy }},
	{"animal.default.energy", true, func(c *Config) *int { return &c.Animal.DefaultEnergy }},
	{"animal.move.energy.cost", true, func(c *Config) *int { return &c.Animal.MoveEnergyCost }},
	{"animal.reproduction.energy.threshold", true, func(c *Config) *int { return &c.Animal.ReproductionThreshold }},
	{"animal.reproduction.energy.cost", true, func(c *Config) *int { return &c.Animal.ReproductionCost }},
	{"animal.offspring.energy", true, func(c *Config) *int { return &c.Animal.OffspringEnergy }},
	{"predator.hunt.range", true, func(c *Config) *int { return &c.Predator.HuntRange }},
	{"predator.hunt.energy.gain", true, func(c *Config) *int { return &c.Predator.HuntEnergyGain }},
	{"predator.max.age", true, func(c *Config) *int { return &c.Predator.MaxAge }},
	{"prey.max.age", true, func(c *Config) *int { return &c.Prey.MaxAge }},
	{"prey.flee.range", true, func(c *Config) *int { return &c.Prey.FleeRange }},
	{"prey.graze.energy.gain", true, func(c *Config) *int { return &c.Prey.GrazeEnergyGain }},
	{"default.world.size", false, func(c *Config) *int { return &c.World.Size }},
	{"default.prey.count", false, func(c *Config) *int { return &c.World.PreyCount }},
	{"default.predator.count", false, func(c *Config) *int { return &c.World.PredatorCount }},
}

// PropertyKeys returns the recognized key/value setting names.
func PropertyKeys() []string {
	out := make([]string, len(propertyKeys))
	for i, pk := range propertyKeys {
		out[i] = pk.key
	}
	return out
}

// LoadProperties reads a key/value settings file on top of the embedded defaults.
// Every engine key must be present and hold an integer.
func LoadProperties(path string) (*Config, error) {
	p, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return nil, fmt.Errorf("reading properties file: %w", err)
	}
	return fromProperties(p)
}

// ParseProperties is LoadProperties for in-memory content.
func ParseProperties(data []byte) (*Config, error) {
	p, err := properties.Load(data, properties.UTF8)
	if err != nil {
		return nil, fmt.Errorf("parsing properties: %w", err)
	}
	return fromProperties(p)
}

func fromProperties(p *properties.Properties) (*Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}

	for _, pk := range propertyKeys {
		raw, ok := p.Get(pk.key)
		if !ok {
			if pk.required {
				return nil, fmt.Errorf("missing required setting %q", pk.key)
			}
			continue
		}
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("setting %q has non-integer value %q", pk.key, raw)
		}
		*pk.field(cfg) = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()
	return cfg, nil
}
