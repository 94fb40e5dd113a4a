// Package main provides CMA-ES optimization for finding engine parameters
// under which predators and prey keep coexisting.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/wildloop/config"
)

// evalRecord is one row of optimize_log.csv: the integer values actually used.
type evalRecord struct {
	Eval          int     `csv:"eval"`
	Fitness       float64 `csv:"fitness"`
	CoexistStd    float64 `csv:"coexist_std"`
	MoveCost      int     `csv:"move_energy_cost"`
	ReproThresh   int     `csv:"reproduction_threshold"`
	ReproCost     int     `csv:"reproduction_energy_cost"`
	Offspring     int     `csv:"offspring_energy"`
	PredatorAge   int     `csv:"predator_max_age"`
	HuntRange     int     `csv:"hunt_range"`
	HuntGain      int     `csv:"hunt_energy_gain"`
	PreyAge       int     `csv:"prey_max_age"`
	FleeRange     int     `csv:"flee_range"`
	GrazeGain     int     `csv:"graze_energy_gain"`
	ElapsedMillis int64   `csv:"elapsed_ms"`
}

func newEvalRecord(eval int, fitness, std float64, cfg *config.Config, elapsed time.Duration) evalRecord {
	return evalRecord{
		Eval:          eval,
		Fitness:       fitness,
		CoexistStd:    std,
		MoveCost:      cfg.Animal.MoveEnergyCost,
		ReproThresh:   cfg.Animal.ReproductionThreshold,
		ReproCost:     cfg.Animal.ReproductionCost,
		Offspring:     cfg.Animal.OffspringEnergy,
		PredatorAge:   cfg.Predator.MaxAge,
		HuntRange:     cfg.Predator.HuntRange,
		HuntGain:      cfg.Predator.HuntEnergyGain,
		PreyAge:       cfg.Prey.MaxAge,
		FleeRange:     cfg.Prey.FleeRange,
		GrazeGain:     cfg.Prey.GrazeEnergyGain,
		ElapsedMillis: elapsed.Milliseconds(),
	}
}

// contextRecorder stops the optimizer once ctx is cancelled.
type contextRecorder struct {
	ctx context.Context
}

func (r contextRecorder) Init() error { return nil }

func (r contextRecorder) Record(*optimize.Location, optimize.Operation, *optimize.Stats) error {
	return r.ctx.Err()
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config file, YAML or .properties (empty = use defaults)")
	maxTurns := flag.Int("max-turns", 2000, "Maximum turns per run (cap)")
	seeds := flag.Int("seeds", 4, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	// Game runs log lifecycle at Info; only warnings matter here.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	params := NewParamVector()

	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	evaluator := NewFitnessEvaluator(ctx, params, *maxTurns, evalSeeds, baseCfg)

	dim := params.Dim()
	initX := params.Normalize(params.ExtractFromConfig(baseCfg))

	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}
	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Recorder:        contextRecorder{ctx: ctx},
	}

	logPath := filepath.Join(*outputDir, "optimize_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	evalCount := 0
	bestFitness := 0.0
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Denormalize(x)
			fitness := evaluator.Evaluate(raw)
			evalCount++

			clamped := params.Clamp(raw)
			if bestParams == nil || fitness < bestFitness {
				bestFitness = fitness
				bestParams = clamped
			}

			elapsed := time.Since(startTime)
			_, std := evaluator.LastCoexistence()
			rec := []evalRecord{newEvalRecord(evalCount, fitness, std, evaluator.Config(clamped), elapsed)}
			write := gocsv.MarshalWithoutHeaders
			if evalCount == 1 {
				write = gocsv.Marshal
			}
			if err := write(rec, logFile); err != nil {
				slog.Error("failed to write optimize log", "error", err)
			}

			avgPerEval := elapsed / time.Duration(evalCount)
			remaining := time.Duration(max(*maxEvals-evalCount, 0)) * avgPerEval
			fmt.Printf("Eval %d/%d: coexisted=%.0f turns (±%.0f) (best=%.0f) | elapsed: %s, ETA: %s\n",
				evalCount, *maxEvals, -fitness, std, -bestFitness,
				formatDuration(elapsed), formatDuration(remaining))

			return fitness
		},
	}

	fmt.Printf("Starting CMA-ES optimization with %d parameters, population=%d, max_evals=%d\n",
		dim, popSize, *maxEvals)
	fmt.Printf("Seeds per evaluation: %d, turns per run: %d\n", *seeds, *maxTurns)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("optimization ended: %v", err)
	}

	if bestParams == nil {
		if result == nil {
			log.Fatal("no evaluation completed")
		}
		bestParams = params.Clamp(params.Denormalize(result.X))
	}

	fmt.Printf("\nOptimization complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Printf("Best coexistence: %.0f turns\n", -bestFitness)

	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.0f\n", spec.Path, bestParams[i])
	}

	bestCfg := *baseCfg
	params.ApplyToConfig(&bestCfg, bestParams)

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}
