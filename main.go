package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wildloop/config"
	"github.com/pthm-cable/wildloop/game"
	"github.com/pthm-cable/wildloop/tui"
	"github.com/pthm-cable/wildloop/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to a YAML or .properties config (empty = use defaults)")
	mode := flag.String("mode", "window", "Front-end: headless, window or terminal")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTurns := flag.Int("max-turns", 0, "Stop a headless run after N turns (0 = use config)")
	size := flag.Int("size", 0, "World side length (0 = use config)")
	prey := flag.Int("prey", -1, "Initial prey count (-1 = use config)")
	predators := flag.Int("predators", -1, "Initial predator count (-1 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logDir := flag.String("log-dir", "", "Event log directory (empty = use config)")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	logEvents := flag.Bool("log-events", false, "Output every event via slog")
	tickInterval := flag.Duration("tick-interval", 0, "Wall-clock time per turn in window and terminal modes (0 = use config)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *size > 0 {
		cfg.World.Size = *size
	}
	if *prey >= 0 {
		cfg.World.PreyCount = *prey
	}
	if *predators >= 0 {
		cfg.World.PredatorCount = *predators
	}
	if *tickInterval > 0 {
		cfg.Simulation.TickInterval = *tickInterval
	}
	if *maxTurns > 0 {
		cfg.Simulation.MaxTurns = *maxTurns
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// The terminal front-end owns stdout, so its logs go to a file or nowhere.
	closeLog, err := setupLogging(*mode, *logDir)
	if err != nil {
		slog.Error("failed to set up logging", "error", err)
		os.Exit(1)
	}
	defer closeLog()

	opts := game.Options{
		Seed:      rngSeed,
		LogStats:  *logStats,
		OutputDir: *outputDir,
		LogDir:    *logDir,
		LogEvents: *logEvents,
	}

	g, err := game.NewGameWithOptions(cfg, opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := g.Unload(); err != nil {
			slog.Error("failed to unload game", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := cfg.World
	switch *mode {
	case "headless":
		err = runHeadless(ctx, g, w, cfg.Simulation.MaxTurns, rngSeed)
	case "window":
		err = runWindow(g, cfg)
	case "terminal":
		err = runTerminal(ctx, g, w)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("simulation failed", "mode", *mode, "error", err)
		_ = g.Unload()
		os.Exit(1)
	}
}

func setupLogging(mode, logDir string) (func(), error) {
	if mode != "terminal" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
		return func() {}, nil
	}
	if logDir == "" {
		slog.SetDefault(slog.New(slog.DiscardHandler))
		return func() {}, nil
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.Create(filepath.Join(logDir, "wildloop.log"))
	if err != nil {
		return nil, fmt.Errorf("creating log file: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(f, nil)))
	return func() { f.Close() }, nil
}

func runHeadless(ctx context.Context, g *game.Game, w config.WorldConfig, maxTurns int, seed int64) error {
	slog.Info("starting headless simulation",
		"seed", seed,
		"size", w.Size,
		"prey", w.PreyCount,
		"predators", w.PredatorCount,
		"max_turns", maxTurns,
	)
	if err := g.Start(w.Size, w.PreyCount, w.PredatorCount); err != nil {
		return err
	}
	return g.RunHeadless(ctx, maxTurns)
}

func runWindow(g *game.Game, cfg *config.Config) error {
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "WildLoop")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	app := ui.NewApp(g, cfg.World.Size, cfg.World.PreyCount, cfg.World.PredatorCount)
	for !rl.WindowShouldClose() && !app.ShouldQuit() {
		app.Update()
		app.Draw()
	}
	return nil
}

func runTerminal(ctx context.Context, g *game.Game, w config.WorldConfig) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	// The terminal subscribes to game events, so it must exist before Start.
	term := tui.New(screen, g)
	if err := g.Start(w.Size, w.PreyCount, w.PredatorCount); err != nil {
		return err
	}
	return term.Run(ctx)
}
