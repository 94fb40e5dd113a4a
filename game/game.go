// Package game drives a world run: seeding, pacing, lifecycle announcements and
// telemetry. Front-ends (window, terminal, headless) only call into a Game.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/wildloop/config"
	"github.com/pthm-cable/wildloop/events"
	"github.com/pthm-cable/wildloop/telemetry"
	"github.com/pthm-cable/wildloop/world"
)

// ErrNotStarted is returned when a run operation is called before Start.
var ErrNotStarted = errors.New("game: simulation not started")

// Options holds CLI-level settings for a Game.
type Options struct {
	Seed             int64  // RNG seed (0 = time-based)
	LogStats         bool   // Log window stats via slog
	StatsWindow      int    // Turns per stats window (0 = use config)
	OutputDir        string // CSV output directory (empty = disabled)
	LogDir           string // Event log directory (empty = use config)
	LogEvents        bool   // Log every event via slog
	StopOnExtinction bool   // End as soon as one species is gone
}

// Game holds one simulation run and its telemetry.
type Game struct {
	cfg    *config.Config
	opts   Options
	rng    *rand.Rand
	logger *slog.Logger
	logDir string

	world *world.World

	// Telemetry
	collector        *telemetry.Collector
	bookmarkDetector *telemetry.BookmarkDetector
	profiler         *telemetry.TurnProfiler
	lifetimeTracker  *telemetry.LifetimeTracker
	outputManager    *telemetry.OutputManager
	eventLog         *telemetry.EventLog
	statsCallback    func(telemetry.WindowStats)
	listeners        []events.Listener

	// State
	paused bool
	ended  bool
	runs   int
}

// NewGameWithOptions creates a game from a loaded config. No world exists until Start.
func NewGameWithOptions(cfg *config.Config, opts Options) (*Game, error) {
	if cfg == nil {
		return nil, errors.New("game: nil config")
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if opts.StatsWindow <= 0 {
		opts.StatsWindow = cfg.Telemetry.StatsWindow
	}
	logDir := opts.LogDir
	if logDir == "" {
		logDir = cfg.Logging.Dir
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	return &Game{
		cfg:           cfg,
		opts:          opts,
		rng:           rand.New(rand.NewSource(seed)),
		logger:        slog.Default().With("component", "game"),
		logDir:        logDir,
		profiler:      telemetry.NewTurnProfiler(cfg.Telemetry.ProfileWindow),
		outputManager: om,
		ended:         true,
	}, nil
}

// SetStatsCallback sets a function called with every flushed stats window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// AddListener subscribes fn to the events of every run started after this call.
func (g *Game) AddListener(fn events.Listener) {
	if fn != nil {
		g.listeners = append(g.listeners, fn)
	}
}

// World returns the current world, or nil before Start.
func (g *Game) World() *world.World { return g.world }

// Config returns the configuration the game was built with.
func (g *Game) Config() *config.Config { return g.cfg }

// Paused reports whether ticking is suspended.
func (g *Game) Paused() bool { return g.paused }

// Ended reports whether the current run is over (or none was started).
func (g *Game) Ended() bool { return g.ended }

// Profile returns the rolling turn profile.
func (g *Game) Profile() telemetry.ProfileStats { return g.profiler.Stats() }

// RecordFrame records a rendered frame for FPS reporting.
func (g *Game) RecordFrame() { g.profiler.RecordFrame() }

// Lifetimes returns the lifetime tracker of the current run.
func (g *Game) Lifetimes() *telemetry.LifetimeTracker { return g.lifetimeTracker }

// Turn returns the turn the world will play next, or 0 before Start.
func (g *Game) Turn() int {
	if g.world == nil {
		return 0
	}
	return g.world.Turn()
}

// Census counts live animals of the current run.
func (g *Game) Census() world.Census {
	if g.world == nil {
		return world.Census{}
	}
	return g.world.Census()
}

// logEvent mirrors every engine event into the structured log.
func (g *Game) logEvent(e events.Event) {
	g.logger.Info("event", "event", e)
}

// StatsLine renders the status line shown by the front-ends.
func (g *Game) StatsLine() string {
	c := g.Census()
	return fmt.Sprintf("Turn: %d | Predators: %d | Prey: %d | Total: %d", g.Turn(), c.Predators, c.Prey, c.Total())
}
