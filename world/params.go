package world

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/wildloop/components"
)

// Params holds the resolved integer tuning constants for one world.
type Params struct {
	MaxEnergy             int
	DefaultEnergy         int
	MoveEnergyCost        int
	ReproductionThreshold int
	ReproductionCost      int
	OffspringEnergy       int

	HuntRange      int
	HuntEnergyGain int
	PredatorMaxAge int

	PreyMaxAge      int
	FleeRange       int
	GrazeEnergyGain int
}

// Validate checks that every parameter is usable.
func (p Params) Validate() error {
	var errs []error
	positive := func(name string, v int) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", name, v))
		}
	}
	nonNegative := func(name string, v int) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %d", name, v))
		}
	}
	atMostMax := func(name string, v int) {
		if v > p.MaxEnergy {
			errs = append(errs, fmt.Errorf("%s (%d) exceeds max energy (%d)", name, v, p.MaxEnergy))
		}
	}

	positive("max energy", p.MaxEnergy)
	positive("predator max age", p.PredatorMaxAge)
	positive("prey max age", p.PreyMaxAge)
	positive("default energy", p.DefaultEnergy)
	positive("offspring energy", p.OffspringEnergy)
	nonNegative("move energy cost", p.MoveEnergyCost)
	nonNegative("reproduction threshold", p.ReproductionThreshold)
	nonNegative("reproduction cost", p.ReproductionCost)
	nonNegative("hunt range", p.HuntRange)
	nonNegative("hunt energy gain", p.HuntEnergyGain)
	nonNegative("flee range", p.FleeRange)
	nonNegative("graze energy gain", p.GrazeEnergyGain)
	atMostMax("default energy", p.DefaultEnergy)
	atMostMax("offspring energy", p.OffspringEnergy)

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, errors.Join(errs...))
	}
	return nil
}

// MaxAge returns the age limit for the given kind.
func (p Params) MaxAge(kind components.Kind) int {
	if kind == components.KindPredator {
		return p.PredatorMaxAge
	}
	return p.PreyMaxAge
}
