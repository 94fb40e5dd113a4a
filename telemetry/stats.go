package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of turns.
type WindowStats struct {
	WindowStartTurn int `csv:"-"`
	WindowEndTurn   int `csv:"window_end"`

	// Population counts at window end
	PreyCount int `csv:"prey"`
	PredCount int `csv:"pred"`

	// Arrivals, births and deaths during window. Spawns count every animal placed
	// on the grid, seeded or born.
	PreySpawned int `csv:"prey_spawned"`
	PredSpawned int `csv:"pred_spawned"`
	PreyBirths  int `csv:"prey_births"`
	PredBirths  int `csv:"pred_births"`
	PreyEaten   int `csv:"prey_eaten"`
	PreyStarved int `csv:"prey_starved"`
	PredStarved int `csv:"pred_starved"`
	PreyAged    int `csv:"prey_aged"`
	PredAged    int `csv:"pred_aged"`

	// Behavior
	Hunts    int     `csv:"hunts"`
	Flees    int     `csv:"flees"`
	Kills    int     `csv:"kills"`
	Grazes   int     `csv:"grazes"`
	Moves    int     `csv:"moves"`
	KillRate float64 `csv:"kill_rate"` // kills per hunt

	// Energy distribution (sampled at window end)
	PreyEnergyMean float64 `csv:"prey_energy_mean"`
	PreyEnergyStd  float64 `csv:"prey_energy_std"`
	PreyEnergyP10  float64 `csv:"prey_energy_p10"`
	PreyEnergyP50  float64 `csv:"prey_energy_p50"`
	PreyEnergyP90  float64 `csv:"prey_energy_p90"`

	PredEnergyMean float64 `csv:"pred_energy_mean"`
	PredEnergyStd  float64 `csv:"pred_energy_std"`
	PredEnergyP10  float64 `csv:"pred_energy_p10"`
	PredEnergyP50  float64 `csv:"pred_energy_p50"`
	PredEnergyP90  float64 `csv:"pred_energy_p90"`
}

// PreyDeaths returns all prey deaths in the window.
func (s WindowStats) PreyDeaths() int { return s.PreyEaten + s.PreyStarved + s.PreyAged }

// PredDeaths returns all predator deaths in the window.
func (s WindowStats) PredDeaths() int { return s.PredStarved + s.PredAged }

// PreySeeded returns prey placed in the window without a parent.
func (s WindowStats) PreySeeded() int { return s.PreySpawned - s.PreyBirths }

// PredSeeded returns predators placed in the window without a parent.
func (s WindowStats) PredSeeded() int { return s.PredSpawned - s.PredBirths }

// EnergyStats summarizes an energy sample.
type EnergyStats struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// Percentile returns the empirical p-quantile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	p = min(max(p, 0), 1)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// ComputeEnergyStats calculates mean, standard deviation and percentiles.
func ComputeEnergyStats(values []float64) EnergyStats {
	if len(values) == 0 {
		return EnergyStats{}
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	es := EnergyStats{
		Mean: stat.Mean(sorted, nil),
		P10:  Percentile(sorted, 0.10),
		P50:  Percentile(sorted, 0.50),
		P90:  Percentile(sorted, 0.90),
	}
	if len(sorted) > 1 {
		es.Std = stat.StdDev(sorted, nil)
	}
	return es
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStartTurn),
		slog.Int("window_end", s.WindowEndTurn),
		slog.Int("prey", s.PreyCount),
		slog.Int("pred", s.PredCount),
		slog.Int("prey_seeded", s.PreySeeded()),
		slog.Int("pred_seeded", s.PredSeeded()),
		slog.Int("prey_births", s.PreyBirths),
		slog.Int("pred_births", s.PredBirths),
		slog.Int("prey_deaths", s.PreyDeaths()),
		slog.Int("pred_deaths", s.PredDeaths()),
		slog.Int("hunts", s.Hunts),
		slog.Int("kills", s.Kills),
		slog.Float64("kill_rate", s.KillRate),
		slog.Float64("prey_energy_mean", s.PreyEnergyMean),
		slog.Float64("pred_energy_mean", s.PredEnergyMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTurn,
		"prey", s.PreyCount,
		"pred", s.PredCount,
		"prey_spawned", s.PreySpawned,
		"pred_spawned", s.PredSpawned,
		"prey_births", s.PreyBirths,
		"pred_births", s.PredBirths,
		"prey_eaten", s.PreyEaten,
		"prey_starved", s.PreyStarved,
		"pred_starved", s.PredStarved,
		"prey_aged", s.PreyAged,
		"pred_aged", s.PredAged,
		"hunts", s.Hunts,
		"flees", s.Flees,
		"kills", s.Kills,
		"grazes", s.Grazes,
		"kill_rate", s.KillRate,
		"prey_energy_mean", s.PreyEnergyMean,
		"prey_energy_p50", s.PreyEnergyP50,
		"pred_energy_mean", s.PredEnergyMean,
		"pred_energy_p50", s.PredEnergyP50,
	)
}
