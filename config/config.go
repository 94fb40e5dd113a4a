// Package config provides configuration loading and access for the simulation.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Animal     AnimalConfig     `yaml:"animal"`
	Predator   PredatorConfig   `yaml:"predator"`
	Prey       PreyConfig       `yaml:"prey"`
	World      WorldConfig      `yaml:"world"`
	Simulation SimulationConfig `yaml:"simulation"`
	Screen     ScreenConfig     `yaml:"screen"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Logging    LoggingConfig    `yaml:"logging"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// AnimalConfig holds the energy budget shared by both species.
type AnimalConfig struct {
	MaxEnergy             int `yaml:"max_energy"`
	DefaultEnergy         int `yaml:"default_energy"`           // Starting energy of seeded animals
	MoveEnergyCost        int `yaml:"move_energy_cost"`         // Paid per successful step
	ReproductionThreshold int `yaml:"reproduction_threshold"`   // Energy needed to reproduce
	ReproductionCost      int `yaml:"reproduction_energy_cost"` // Paid by the parent
	OffspringEnergy       int `yaml:"offspring_energy"`         // Starting energy of a newborn
}

// PredatorConfig holds predator behavior parameters.
type PredatorConfig struct {
	MaxAge         int `yaml:"max_age"`
	HuntRange      int `yaml:"hunt_range"` // Manhattan distance
	HuntEnergyGain int `yaml:"hunt_energy_gain"`
}

// PreyConfig holds prey behavior parameters.
type PreyConfig struct {
	MaxAge          int `yaml:"max_age"`
	FleeRange       int `yaml:"flee_range"` // Manhattan distance
	GrazeEnergyGain int `yaml:"graze_energy_gain"`
}

// WorldConfig holds grid size and initial population.
type WorldConfig struct {
	Size          int `yaml:"size"` // Square grid side length
	PreyCount     int `yaml:"prey_count"`
	PredatorCount int `yaml:"predator_count"`
}

// SimulationConfig holds run control settings.
type SimulationConfig struct {
	TickInterval     time.Duration `yaml:"tick_interval"` // Wall-clock time per turn in interactive modes
	MaxTurns         int           `yaml:"max_turns"`     // 0 = unlimited
	StopOnExtinction bool          `yaml:"stop_on_extinction"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// TelemetryConfig holds statistics and bookmark settings.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"` // Turns per stats window
	BookmarkHistorySize int `yaml:"bookmark_history_size"`
	ProfileWindow       int `yaml:"profile_window"` // Turns in the turn profiler window
}

// LoggingConfig holds event log settings.
type LoggingConfig struct {
	Dir            string `yaml:"dir"` // Event log directory; empty disables the log file
	EventsToStdout bool   `yaml:"events_to_stdout"`
}

// DerivedConfig holds values computed from other fields.
type DerivedConfig struct {
	Cells          int     // World.Size squared
	TurnsPerSecond float64 // 1 / Simulation.TickInterval
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns a fresh copy of the embedded defaults.
func Defaults() (*Config, error) {
	cfg := &Config{}
	if err := decodeStrict(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	cfg.computeDerived()
	return cfg, nil
}

// Load loads configuration from a file, merging with embedded defaults.
// Files ending in .properties use the key/value format; anything else is YAML.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	if strings.EqualFold(filepath.Ext(path), ".properties") {
		return LoadProperties(path)
	}

	cfg := &Config{}
	if err := decodeStrict(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := decodeStrict(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()
	return cfg, nil
}

func decodeStrict(data []byte, out *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate reports every setting that cannot drive a simulation.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	a := c.Animal
	check(a.MaxEnergy > 0, "animal.max_energy must be positive, got %d", a.MaxEnergy)
	check(a.DefaultEnergy > 0 && a.DefaultEnergy <= a.MaxEnergy,
		"animal.default_energy must be in (0, max_energy], got %d", a.DefaultEnergy)
	check(a.OffspringEnergy > 0 && a.OffspringEnergy <= a.MaxEnergy,
		"animal.offspring_energy must be in (0, max_energy], got %d", a.OffspringEnergy)
	check(a.MoveEnergyCost >= 0, "animal.move_energy_cost must not be negative, got %d", a.MoveEnergyCost)
	check(a.ReproductionThreshold >= 0, "animal.reproduction_threshold must not be negative, got %d", a.ReproductionThreshold)
	check(a.ReproductionCost >= 0, "animal.reproduction_energy_cost must not be negative, got %d", a.ReproductionCost)
	check(c.Predator.MaxAge > 0, "predator.max_age must be positive, got %d", c.Predator.MaxAge)
	check(c.Predator.HuntRange >= 0, "predator.hunt_range must not be negative, got %d", c.Predator.HuntRange)
	check(c.Predator.HuntEnergyGain >= 0, "predator.hunt_energy_gain must not be negative, got %d", c.Predator.HuntEnergyGain)
	check(c.Prey.MaxAge > 0, "prey.max_age must be positive, got %d", c.Prey.MaxAge)
	check(c.Prey.FleeRange >= 0, "prey.flee_range must not be negative, got %d", c.Prey.FleeRange)
	check(c.Prey.GrazeEnergyGain >= 0, "prey.graze_energy_gain must not be negative, got %d", c.Prey.GrazeEnergyGain)
	check(c.World.Size > 0, "world.size must be positive, got %d", c.World.Size)
	check(c.World.PreyCount >= 0, "world.prey_count must not be negative, got %d", c.World.PreyCount)
	check(c.World.PredatorCount >= 0, "world.predator_count must not be negative, got %d", c.World.PredatorCount)
	check(c.Simulation.TickInterval > 0, "simulation.tick_interval must be positive, got %s", c.Simulation.TickInterval)
	check(c.Simulation.MaxTurns >= 0, "simulation.max_turns must not be negative, got %d", c.Simulation.MaxTurns)
	check(c.Telemetry.StatsWindow > 0, "telemetry.stats_window must be positive, got %d", c.Telemetry.StatsWindow)

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Cells = c.World.Size * c.World.Size
	if c.Simulation.TickInterval > 0 {
		c.Derived.TurnsPerSecond = float64(time.Second) / float64(c.Simulation.TickInterval)
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
