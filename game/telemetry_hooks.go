package game

import (
	"log/slog"

	"github.com/pthm-cable/wildloop/components"
)

// flushTelemetry closes the stats window if turn completes it and handles bookmarks.
func (g *Game) flushTelemetry(turn int) {
	if !g.collector.ShouldFlush(turn) {
		return
	}

	census := g.world.Census()
	stats := g.collector.Flush(turn, census.Prey, census.Predators,
		g.world.Energies(components.KindPrey),
		g.world.Energies(components.KindPredator),
	)
	profile := g.profiler.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.opts.LogStats {
		stats.LogStats()
		profile.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WriteProfile(profile, stats.WindowEndTurn); err != nil {
			slog.Error("failed to write profile", "error", err)
		}
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.opts.LogStats {
			bm.LogBookmark()
		}
		if g.outputManager != nil {
			if err := g.outputManager.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}
	}
}
