package game

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/wildloop/components"
	"github.com/pthm-cable/wildloop/events"
	"github.com/pthm-cable/wildloop/telemetry"
	"github.com/pthm-cable/wildloop/world"
)

// placementAttempts bounds the random search for an empty cell when seeding.
const placementAttempts = 100

// Start ends any running simulation and begins a new one on a size x size grid
// seeded with the given number of prey, then predators. Animals that find no empty
// cell are skipped.
func (g *Game) Start(size, prey, predators int) error {
	if !g.ended {
		if err := g.Stop(); err != nil {
			g.logger.Warn("previous run ended with errors", "error", err)
		}
	}

	w, err := world.New(size, size, EngineParams(g.cfg),
		world.WithRand(g.rng),
		world.WithLogger(g.logger),
		world.WithStepObserver(g.profiler.ObserveStep),
	)
	if err != nil {
		return err
	}

	var eventLog *telemetry.EventLog
	if g.logDir != "" {
		if eventLog, err = telemetry.OpenEventLog(g.logDir, w.ID()); err != nil {
			return err
		}
		w.Subscribe(eventLog.Write)
	}

	g.world = w
	g.eventLog = eventLog
	g.collector = telemetry.NewCollector(g.opts.StatsWindow)
	g.bookmarkDetector = telemetry.NewBookmarkDetector(g.cfg.Telemetry.BookmarkHistorySize)
	g.lifetimeTracker = telemetry.NewLifetimeTracker()
	w.Subscribe(g.collector.Record)
	w.Subscribe(g.lifetimeTracker.Record)
	if g.opts.LogEvents || g.cfg.Logging.EventsToStdout {
		w.Subscribe(g.logEvent)
	}
	for _, fn := range g.listeners {
		w.Subscribe(fn)
	}

	g.paused = false
	g.ended = false
	g.runs++

	if err := w.Announce(events.SimulationStart); err != nil {
		return err
	}

	placedPrey, err := g.seed(components.KindPrey, prey)
	if err != nil {
		return err
	}
	placedPred, err := g.seed(components.KindPredator, predators)
	if err != nil {
		return err
	}

	g.logger.Info("simulation started",
		"world", w.ID(),
		"run", g.runs,
		"size", size,
		"prey", placedPrey,
		"predators", placedPred,
		"skipped", max(prey, 0)+max(predators, 0)-placedPrey-placedPred,
	)
	return nil
}

// seed places up to n animals of one kind at random empty cells.
func (g *Game) seed(kind components.Kind, n int) (int, error) {
	placed := 0
	for range max(n, 0) {
		pos, ok := g.randomEmptyPosition()
		if !ok {
			continue
		}
		if _, err := world.NewAnimal(g.world, kind, pos); err != nil {
			return placed, fmt.Errorf("seeding %s: %w", kind, err)
		}
		placed++
	}
	return placed, nil
}

// randomEmptyPosition samples cells uniformly and gives up after placementAttempts tries.
func (g *Game) randomEmptyPosition() (components.Position, bool) {
	for range placementAttempts {
		pos := components.Position{
			X: g.rng.Intn(g.world.Width()),
			Y: g.rng.Intn(g.world.Height()),
		}
		if g.world.IsCellEmpty(pos) {
			return pos, true
		}
	}
	return components.Position{}, false
}

// Pause suspends ticking. Pausing an ended or paused run does nothing.
func (g *Game) Pause() error {
	if g.world == nil {
		return ErrNotStarted
	}
	if g.ended || g.paused {
		return nil
	}
	g.paused = true
	return g.world.Announce(events.SimulationPause)
}

// Resume continues a paused run.
func (g *Game) Resume() error {
	if g.world == nil {
		return ErrNotStarted
	}
	if g.ended || !g.paused {
		return nil
	}
	g.paused = false
	return g.world.Announce(events.SimulationResume)
}

// TogglePause flips between paused and running.
func (g *Game) TogglePause() error {
	if g.paused {
		return g.Resume()
	}
	return g.Pause()
}

// Stop ends the current run: it announces the end, archives the event log and
// writes the run's finished lifetimes. Stopping an ended run does nothing.
func (g *Game) Stop() error {
	if g.world == nil {
		return ErrNotStarted
	}
	if g.ended {
		return nil
	}
	g.ended = true
	g.paused = false

	var errs []error
	if err := g.world.Announce(events.SimulationEnd); err != nil {
		errs = append(errs, err)
	}
	if err := g.eventLog.Close(); err != nil {
		errs = append(errs, err)
	} else if path := g.eventLog.ArchivePath(); path != "" {
		g.logger.Info("event log archived", "path", path)
	}
	if err := g.outputManager.WriteLifetimes(g.lifetimeTracker.Dead()); err != nil {
		errs = append(errs, err)
	}

	g.logWorldState()
	return errors.Join(errs...)
}

// Unload ends any running simulation and closes output files.
func (g *Game) Unload() error {
	var errs []error
	if g.world != nil {
		errs = append(errs, g.Stop())
	}
	errs = append(errs, g.outputManager.Close())
	return errors.Join(errs...)
}
