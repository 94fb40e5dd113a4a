package game

import (
	"context"
	"errors"
)

// Step plays one turn and reports whether the run ended because of it.
// Paused or ended runs are left untouched.
func (g *Game) Step() (ended bool, err error) {
	if g.world == nil {
		return false, ErrNotStarted
	}
	if g.paused || g.ended {
		return false, nil
	}

	g.profiler.StartTurn()
	played := g.world.Turn()
	tickErr := g.world.Tick()

	g.profiler.StartFlush()
	g.flushTelemetry(played)
	g.profiler.EndTurn()

	if tickErr != nil {
		g.logger.Error("turn failed", "turn", played, "error", tickErr)
		return true, errors.Join(tickErr, g.Stop())
	}

	if reason := g.endReason(); reason != "" {
		g.logger.Info("simulation over", "turn", played, "reason", reason)
		return true, g.Stop()
	}
	return false, nil
}

// endReason explains why the run should end now, or returns "".
func (g *Game) endReason() string {
	c := g.world.Census()
	switch {
	case c.Total() == 0:
		return "no animals left"
	case g.stopOnExtinction() && c.Prey == 0:
		return "prey extinct"
	case g.stopOnExtinction() && c.Predators == 0:
		return "predators extinct"
	}
	return ""
}

func (g *Game) stopOnExtinction() bool {
	return g.opts.StopOnExtinction || g.cfg.Simulation.StopOnExtinction
}

// RunHeadless steps the current run as fast as possible until it ends, maxTurns
// turns have been played (0 = unlimited) or ctx is cancelled. The run is always
// stopped on return. A paused run is resumed first.
func (g *Game) RunHeadless(ctx context.Context, maxTurns int) error {
	if g.world == nil {
		return ErrNotStarted
	}
	if err := g.Resume(); err != nil {
		return err
	}
	for !g.ended {
		if err := ctx.Err(); err != nil {
			return errors.Join(err, g.Stop())
		}
		if maxTurns > 0 && g.world.Turn() > maxTurns {
			g.logger.Info("max turns reached", "turns", maxTurns)
			break
		}
		if _, err := g.Step(); err != nil {
			return err
		}
	}
	return g.Stop()
}
