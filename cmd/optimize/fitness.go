package main

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/wildloop/config"
	"github.com/pthm-cable/wildloop/game"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	ctx        context.Context
	params     *ParamVector
	maxTurns   int
	seeds      []int64
	baseConfig *config.Config

	mu       sync.Mutex
	lastMean float64 // mean coexistence from the most recent Evaluate call
	lastStd  float64
}

// NewFitnessEvaluator creates a new evaluator. Runs are cancelled with ctx.
func NewFitnessEvaluator(ctx context.Context, params *ParamVector, maxTurns int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		ctx:        ctx,
		params:     params,
		maxTurns:   maxTurns,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// LastCoexistence returns the mean and spread of coexistence turns from the
// most recent evaluation.
func (fe *FitnessEvaluator) LastCoexistence() (mean, std float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastMean, fe.lastStd
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
// Fitness is the negated mean number of turns both species stayed alive.
// A failed evaluation scores 0, the worst possible value.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.Config(x)

	turns := make([]float64, len(fe.seeds))
	eg, ctx := errgroup.WithContext(fe.ctx)
	eg.SetLimit(runtime.NumCPU())
	for i, seed := range fe.seeds {
		eg.Go(func() error {
			n, err := fe.runSimulation(ctx, cfg, seed)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			turns[i] = float64(n)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		slog.Error("evaluation failed", "error", err)
		return 0
	}

	mean, std := stat.MeanStdDev(turns, nil)

	fe.mu.Lock()
	fe.lastMean, fe.lastStd = mean, std
	fe.mu.Unlock()

	return -mean
}

// Config returns a copy of the base config with x applied.
func (fe *FitnessEvaluator) Config(x []float64) *config.Config {
	cfg := *fe.baseConfig
	fe.params.ApplyToConfig(&cfg, x)
	cfg.Simulation.StopOnExtinction = true
	cfg.Logging.Dir = ""
	cfg.Logging.EventsToStdout = false
	return &cfg
}

// runSimulation plays one seeded run and returns how many turns both species
// were alive, capped at maxTurns.
func (fe *FitnessEvaluator) runSimulation(ctx context.Context, cfg *config.Config, seed int64) (int, error) {
	g, err := game.NewGameWithOptions(cfg, game.Options{Seed: seed})
	if err != nil {
		return 0, err
	}
	defer g.Unload()

	if err := g.Start(cfg.World.Size, cfg.World.PreyCount, cfg.World.PredatorCount); err != nil {
		return 0, err
	}
	if err := g.RunHeadless(ctx, fe.maxTurns); err != nil {
		return 0, err
	}

	// The run ends on the turn a species dies out, so that turn does not count.
	played := min(g.Turn()-1, fe.maxTurns)
	if c := g.Census(); c.Prey == 0 || c.Predators == 0 {
		played--
	}
	return max(played, 0), nil
}
