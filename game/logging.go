package game

import (
	"github.com/pthm-cable/wildloop/components"
	"gonum.org/v1/gonum/stat"
)

// logWorldState logs the final population of a run and its longest-lived animals.
func (g *Game) logWorldState() {
	census := g.world.Census()
	attrs := []any{
		"world", g.world.ID(),
		"turns", g.world.Turn() - 1,
		"prey", census.Prey,
		"predators", census.Predators,
		"finished_lifetimes", len(g.lifetimeTracker.Dead()),
	}
	for _, kind := range components.Kinds {
		if energies := g.world.Energies(kind); len(energies) > 0 {
			attrs = append(attrs, kind.String()+"_energy_mean", stat.Mean(energies, nil))
		}
		if oldest := g.lifetimeTracker.Longest(kind, 1); len(oldest) > 0 {
			attrs = append(attrs,
				"oldest_"+kind.String(), oldest[0].ID,
				"oldest_"+kind.String()+"_lifespan", oldest[0].Lifespan,
			)
		}
	}
	g.logger.Info("simulation ended", attrs...)
}
