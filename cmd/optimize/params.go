package main

import (
	"math"

	"github.com/pthm-cable/wildloop/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name string  // Human-readable name
	Path string  // Config path for logging
	Min  float64 // Lower bound
	Max  float64 // Upper bound
}

// ParamVector holds the set of all optimizable parameters.
// Every engine parameter is an integer; CMA-ES searches the continuous
// normalized space and values are rounded when applied.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
// animal.max_energy and animal.default_energy stay fixed so the energy scale
// is comparable across evaluations.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Energy budget
			{Name: "move_energy_cost", Path: "animal.move_energy_cost", Min: 0, Max: 5},
			{Name: "reproduction_threshold", Path: "animal.reproduction_threshold", Min: 20, Max: 100},
			{Name: "reproduction_energy_cost", Path: "animal.reproduction_energy_cost", Min: 5, Max: 80},
			{Name: "offspring_energy", Path: "animal.offspring_energy", Min: 5, Max: 80},
			// Predator
			{Name: "predator_max_age", Path: "predator.max_age", Min: 10, Max: 200},
			{Name: "hunt_range", Path: "predator.hunt_range", Min: 1, Max: 10},
			{Name: "hunt_energy_gain", Path: "predator.hunt_energy_gain", Min: 5, Max: 80},
			// Prey
			{Name: "prey_max_age", Path: "prey.max_age", Min: 10, Max: 200},
			{Name: "flee_range", Path: "prey.flee_range", Min: 1, Max: 10},
			{Name: "graze_energy_gain", Path: "prey.graze_energy_gain", Min: 1, Max: 20},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp bounds every value and rounds it to the integer the engine will use.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = math.Round(min(max(v[i], spec.Min), spec.Max))
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)
	i := 0
	next := func() int {
		v := int(c[i])
		i++
		return v
	}

	cfg.Animal.MoveEnergyCost = next()
	cfg.Animal.ReproductionThreshold = next()
	cfg.Animal.ReproductionCost = next()
	cfg.Animal.OffspringEnergy = min(next(), cfg.Animal.MaxEnergy)

	cfg.Predator.MaxAge = next()
	cfg.Predator.HuntRange = next()
	cfg.Predator.HuntEnergyGain = next()

	cfg.Prey.MaxAge = next()
	cfg.Prey.FleeRange = next()
	cfg.Prey.GrazeEnergyGain = next()
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		float64(cfg.Animal.MoveEnergyCost),
		float64(cfg.Animal.ReproductionThreshold),
		float64(cfg.Animal.ReproductionCost),
		float64(cfg.Animal.OffspringEnergy),
		float64(cfg.Predator.MaxAge),
		float64(cfg.Predator.HuntRange),
		float64(cfg.Predator.HuntEnergyGain),
		float64(cfg.Prey.MaxAge),
		float64(cfg.Prey.FleeRange),
		float64(cfg.Prey.GrazeEnergyGain),
	}
}
