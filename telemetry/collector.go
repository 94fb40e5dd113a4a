// Package telemetry provides ecosystem health tracking, bookmarking and output files.
package telemetry

import (
	"github.com/pthm-cable/wildloop/components"
	"github.com/pthm-cable/wildloop/events"
)

// Collector accumulates events within turn windows and produces WindowStats.
// Record is meant to be subscribed to a world's event bus.
type Collector struct {
	windowTurns int

	// Current window tracking
	windowStartTurn int

	// Event counters for current window
	preySpawned int
	predSpawned int
	preyBirths  int
	predBirths  int
	preyEaten   int
	preyStarved int
	predStarved int
	preyAged    int
	predAged    int
	hunts       int
	flees       int
	kills       int
	grazes      int
	moves       int
}

// NewCollector creates a collector that flushes every windowTurns turns.
func NewCollector(windowTurns int) *Collector {
	if windowTurns < 1 {
		windowTurns = 1
	}
	return &Collector{
		windowTurns:     windowTurns,
		windowStartTurn: 1,
	}
}

// Record counts a single event.
func (c *Collector) Record(e events.Event) {
	switch e.Kind() {
	case events.Spawn:
		if e.Subject(0).Kind == components.KindPrey {
			c.preySpawned++
		} else {
			c.predSpawned++
		}
	case events.Reproduce:
		if e.Subject(1).Kind == components.KindPrey {
			c.preyBirths++
		} else {
			c.predBirths++
		}
	case events.DieEaten:
		c.preyEaten++
	case events.DieEnergy:
		if e.Subject(0).Kind == components.KindPrey {
			c.preyStarved++
		} else {
			c.predStarved++
		}
	case events.DieAge:
		if e.Subject(0).Kind == components.KindPrey {
			c.preyAged++
		} else {
			c.predAged++
		}
	case events.Hunt:
		c.hunts++
	case events.Flee:
		c.flees++
	case events.EatPrey:
		c.kills++
	case events.EatGrass:
		c.grazes++
	case events.Move:
		c.moves++
	}
}

// ShouldFlush returns true once the window covering turns [start, turn] is complete.
func (c *Collector) ShouldFlush(turn int) bool {
	return turn-c.windowStartTurn+1 >= c.windowTurns
}

// Flush produces a WindowStats for the window ending at turn and resets counters.
// Counts and energies describe the population after that turn.
func (c *Collector) Flush(turn int, prey, predators int, preyEnergies, predEnergies []float64) WindowStats {
	var killRate float64
	if c.hunts > 0 {
		killRate = float64(c.kills) / float64(c.hunts)
	}

	preyE := ComputeEnergyStats(preyEnergies)
	predE := ComputeEnergyStats(predEnergies)

	stats := WindowStats{
		WindowStartTurn: c.windowStartTurn,
		WindowEndTurn:   turn,

		PreyCount: prey,
		PredCount: predators,

		PreySpawned: c.preySpawned,
		PredSpawned: c.predSpawned,
		PreyBirths:  c.preyBirths,
		PredBirths:  c.predBirths,
		PreyEaten:   c.preyEaten,
		PreyStarved: c.preyStarved,
		PredStarved: c.predStarved,
		PreyAged:    c.preyAged,
		PredAged:    c.predAged,

		Hunts:    c.hunts,
		Flees:    c.flees,
		Kills:    c.kills,
		Grazes:   c.grazes,
		Moves:    c.moves,
		KillRate: killRate,

		PreyEnergyMean: preyE.Mean,
		PreyEnergyStd:  preyE.Std,
		PreyEnergyP10:  preyE.P10,
		PreyEnergyP50:  preyE.P50,
		PreyEnergyP90:  preyE.P90,

		PredEnergyMean: predE.Mean,
		PredEnergyStd:  predE.Std,
		PredEnergyP10:  predE.P10,
		PredEnergyP50:  predE.P50,
		PredEnergyP90:  predE.P90,
	}

	// Reset for next window
	c.windowStartTurn = turn + 1
	c.preySpawned = 0
	c.predSpawned = 0
	c.preyBirths = 0
	c.predBirths = 0
	c.preyEaten = 0
	c.preyStarved = 0
	c.predStarved = 0
	c.preyAged = 0
	c.predAged = 0
	c.hunts = 0
	c.flees = 0
	c.kills = 0
	c.grazes = 0
	c.moves = 0

	return stats
}

// WindowTurns returns the number of turns per window.
func (c *Collector) WindowTurns() int {
	return c.windowTurns
}
