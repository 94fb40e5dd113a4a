package telemetry

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/wildloop/components"
	"github.com/pthm-cable/wildloop/world"
)

const (
	numKinds = len(components.Kinds)
	numSteps = len(world.Steps)
)

// turnProfile is the timing of one played turn.
type turnProfile struct {
	total   time.Duration
	flush   time.Duration
	steps   [numKinds][numSteps]time.Duration
	updates [numKinds]int
}

// TurnProfiler keeps a rolling window of turn timings split by animal kind and
// update step. ObserveStep is meant to be passed to world.WithStepObserver.
type TurnProfiler struct {
	now func() time.Time

	window      []turnProfile
	writeIndex  int
	sampleCount int

	current    turnProfile
	turnStart  time.Time
	flushStart time.Time

	// Frame timing (window front-end)
	lastFrame     time.Time
	frameDuration time.Duration
}

// NewTurnProfiler creates a profiler averaging over the last windowSize turns.
func NewTurnProfiler(windowSize int) *TurnProfiler {
	if windowSize < 1 {
		windowSize = 60
	}
	return &TurnProfiler{
		now:    time.Now,
		window: make([]turnProfile, windowSize),
	}
}

// StartTurn begins timing a turn.
func (p *TurnProfiler) StartTurn() {
	p.current = turnProfile{}
	p.turnStart = p.now()
	p.flushStart = time.Time{}
}

// ObserveStep adds one animal's step time to the current turn. Every update
// starts with a move, so moves also count updates.
func (p *TurnProfiler) ObserveStep(kind components.Kind, step world.Step, d time.Duration) {
	if int(kind) >= numKinds || int(step) >= numSteps {
		return
	}
	p.current.steps[kind][step] += d
	if step == world.StepMove {
		p.current.updates[kind]++
	}
}

// StartFlush marks the end of the world tick and the start of telemetry work.
func (p *TurnProfiler) StartFlush() {
	p.flushStart = p.now()
}

// EndTurn closes the current turn and stores it in the window.
func (p *TurnProfiler) EndTurn() {
	end := p.now()
	p.current.total = end.Sub(p.turnStart)
	if !p.flushStart.IsZero() {
		p.current.flush = end.Sub(p.flushStart)
	}

	p.window[p.writeIndex] = p.current
	p.writeIndex = (p.writeIndex + 1) % len(p.window)
	p.sampleCount = min(p.sampleCount+1, len(p.window))
}

// RecordFrame records a rendered frame for FPS reporting.
func (p *TurnProfiler) RecordFrame() {
	now := p.now()
	if !p.lastFrame.IsZero() {
		p.frameDuration = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// ProfileStats summarizes the profiler window.
type ProfileStats struct {
	Turns int

	AvgTurn        time.Duration
	MinTurn        time.Duration
	MaxTurn        time.Duration
	TurnStd        time.Duration
	TurnsPerSecond float64

	// Mean cost of a single animal update, by kind
	UpdateAvg [numKinds]time.Duration

	// Share of total turn time per update step (both kinds) and per flush
	StepPct      [numSteps]float64
	TelemetryPct float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the turns currently in the window.
func (p *TurnProfiler) Stats() ProfileStats {
	s := ProfileStats{
		Turns:         p.sampleCount,
		FrameDuration: p.frameDuration,
	}
	if p.frameDuration > 0 {
		s.FPS = float64(time.Second) / float64(p.frameDuration)
	}
	if p.sampleCount == 0 {
		return s
	}

	totals := make([]float64, p.sampleCount)
	var flush time.Duration
	var steps [numKinds][numSteps]time.Duration
	var updates [numKinds]int
	for i, tp := range p.window[:p.sampleCount] {
		totals[i] = float64(tp.total)
		flush += tp.flush
		for k := range numKinds {
			updates[k] += tp.updates[k]
			for st := range numSteps {
				steps[k][st] += tp.steps[k][st]
			}
		}
	}

	mean, std := stat.MeanStdDev(totals, nil)
	s.AvgTurn = time.Duration(mean)
	s.MinTurn = time.Duration(floats.Min(totals))
	s.MaxTurn = time.Duration(floats.Max(totals))
	if p.sampleCount > 1 {
		s.TurnStd = time.Duration(std)
	}
	if mean > 0 {
		s.TurnsPerSecond = float64(time.Second) / mean
	}

	for k := range numKinds {
		var sum time.Duration
		for st := range numSteps {
			sum += steps[k][st]
		}
		if updates[k] > 0 {
			s.UpdateAvg[k] = sum / time.Duration(updates[k])
		}
	}

	turnTime := floats.Sum(totals)
	if turnTime > 0 {
		for st := range numSteps {
			var d time.Duration
			for k := range numKinds {
				d += steps[k][st]
			}
			s.StepPct[st] = float64(d) / turnTime * 100
		}
		s.TelemetryPct = float64(flush) / turnTime * 100
	}
	return s
}

// UpdateCost returns the mean cost of one update of the given kind.
func (s ProfileStats) UpdateCost(kind components.Kind) time.Duration {
	if int(kind) >= numKinds {
		return 0
	}
	return s.UpdateAvg[kind]
}

// StepShare returns the percentage of turn time spent in step.
func (s ProfileStats) StepShare(step world.Step) float64 {
	if int(step) >= numSteps {
		return 0
	}
	return s.StepPct[step]
}

// LogStats logs the profile using slog.
func (s ProfileStats) LogStats() {
	slog.Info("profile", "profile", s)
}

// LogValue implements slog.LogValuer for structured logging.
func (s ProfileStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("turns", s.Turns),
		slog.Int64("avg_turn_us", s.AvgTurn.Microseconds()),
		slog.Int64("max_turn_us", s.MaxTurn.Microseconds()),
		slog.Float64("turns_per_sec", s.TurnsPerSecond),
	}
	for _, k := range components.Kinds {
		attrs = append(attrs, slog.Int64(k.String()+"_update_ns", s.UpdateCost(k).Nanoseconds()))
	}
	for _, st := range world.Steps {
		attrs = append(attrs, slog.Float64(st.String()+"_pct", s.StepShare(st)))
	}
	attrs = append(attrs, slog.Float64("telemetry_pct", s.TelemetryPct))
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	return slog.GroupValue(attrs...)
}

// ProfileCSV is one row of profile.csv.
type ProfileCSV struct {
	WindowEnd    int     `csv:"window_end"`
	AvgTurnUS    int64   `csv:"avg_turn_us"`
	MinTurnUS    int64   `csv:"min_turn_us"`
	MaxTurnUS    int64   `csv:"max_turn_us"`
	TurnStdUS    int64   `csv:"turn_std_us"`
	TurnsPerSec  float64 `csv:"turns_per_sec"`
	PreyUpdateNS int64   `csv:"prey_update_ns"`
	PredUpdateNS int64   `csv:"pred_update_ns"`
	MovePct      float64 `csv:"move_pct"`
	EatPct       float64 `csv:"eat_pct"`
	ReproducePct float64 `csv:"reproduce_pct"`
	DeathPct     float64 `csv:"death_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
	FPS          float64 `csv:"fps"`
}

// ToCSV flattens the profile for the window ending at windowEnd.
func (s ProfileStats) ToCSV(windowEnd int) ProfileCSV {
	return ProfileCSV{
		WindowEnd:    windowEnd,
		AvgTurnUS:    s.AvgTurn.Microseconds(),
		MinTurnUS:    s.MinTurn.Microseconds(),
		MaxTurnUS:    s.MaxTurn.Microseconds(),
		TurnStdUS:    s.TurnStd.Microseconds(),
		TurnsPerSec:  s.TurnsPerSecond,
		PreyUpdateNS: s.UpdateCost(components.KindPrey).Nanoseconds(),
		PredUpdateNS: s.UpdateCost(components.KindPredator).Nanoseconds(),
		MovePct:      s.StepShare(world.StepMove),
		EatPct:       s.StepShare(world.StepEat),
		ReproducePct: s.StepShare(world.StepReproduce),
		DeathPct:     s.StepShare(world.StepDeath),
		TelemetryPct: s.TelemetryPct,
		FPS:          s.FPS,
	}
}
