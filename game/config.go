package game

import (
	"github.com/pthm-cable/wildloop/config"
	"github.com/pthm-cable/wildloop/world"
)

// EngineParams maps the animal, predator and prey config sections onto engine parameters.
func EngineParams(cfg *config.Config) world.Params {
	return world.Params{
		MaxEnergy:             cfg.Animal.MaxEnergy,
		DefaultEnergy:         cfg.Animal.DefaultEnergy,
		MoveEnergyCost:        cfg.Animal.MoveEnergyCost,
		ReproductionThreshold: cfg.Animal.ReproductionThreshold,
		ReproductionCost:      cfg.Animal.ReproductionCost,
		OffspringEnergy:       cfg.Animal.OffspringEnergy,
		HuntRange:             cfg.Predator.HuntRange,
		HuntEnergyGain:        cfg.Predator.HuntEnergyGain,
		PredatorMaxAge:        cfg.Predator.MaxAge,
		PreyMaxAge:            cfg.Prey.MaxAge,
		FleeRange:             cfg.Prey.FleeRange,
		GrazeEnergyGain:       cfg.Prey.GrazeEnergyGain,
	}
}
