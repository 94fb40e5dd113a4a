package telemetry

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/pthm-cable/wildloop/components"
	"github.com/pthm-cable/wildloop/world"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestProfiler(window int) (*TurnProfiler, *fakeClock) {
	clk := &fakeClock{t: time.Unix(1000, 0)}
	p := NewTurnProfiler(window)
	p.now = clk.now
	return p, clk
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestTurnProfilerSplitsByKindAndStep(t *testing.T) {
	p, clk := newTestProfiler(10)
	us := time.Microsecond

	p.StartTurn()
	p.ObserveStep(components.KindPrey, world.StepMove, 2*us)
	p.ObserveStep(components.KindPrey, world.StepEat, 1*us)
	p.ObserveStep(components.KindPrey, world.StepDeath, 1*us)
	p.ObserveStep(components.KindPredator, world.StepMove, 4*us)
	p.ObserveStep(components.KindPredator, world.StepEat, 2*us)
	p.ObserveStep(components.KindPredator, world.StepReproduce, 2*us)
	p.ObserveStep(components.KindPredator, world.StepDeath, 0)
	clk.advance(20 * us)
	p.StartFlush()
	clk.advance(20 * us)
	p.EndTurn()

	s := p.Stats()
	if s.Turns != 1 || s.AvgTurn != 40*us {
		t.Fatalf("turns = %d, avg = %v", s.Turns, s.AvgTurn)
	}
	if got := s.UpdateCost(components.KindPrey); got != 4*us {
		t.Errorf("prey update = %v, want 4µs", got)
	}
	if got := s.UpdateCost(components.KindPredator); got != 8*us {
		t.Errorf("predator update = %v, want 8µs", got)
	}

	tests := []struct {
		step world.Step
		want float64
	}{
		{world.StepMove, 15},
		{world.StepEat, 7.5},
		{world.StepReproduce, 5},
		{world.StepDeath, 2.5},
	}
	for _, tt := range tests {
		if got := s.StepShare(tt.step); !approx(got, tt.want) {
			t.Errorf("%s share = %v, want %v", tt.step, got, tt.want)
		}
	}
	if !approx(s.TelemetryPct, 50) {
		t.Errorf("telemetry share = %v, want 50", s.TelemetryPct)
	}
}

func TestTurnProfilerRollingWindow(t *testing.T) {
	p, clk := newTestProfiler(3)

	for i := 1; i <= 5; i++ {
		p.StartTurn()
		clk.advance(time.Duration(i*10) * time.Microsecond)
		p.EndTurn()
	}

	s := p.Stats()
	if s.Turns != 3 {
		t.Fatalf("turns = %d, want 3", s.Turns)
	}
	if s.MinTurn != 30*time.Microsecond || s.MaxTurn != 50*time.Microsecond {
		t.Errorf("min/max = %v/%v, want 30µs/50µs", s.MinTurn, s.MaxTurn)
	}
	if s.AvgTurn != 40*time.Microsecond || s.TurnStd != 10*time.Microsecond {
		t.Errorf("avg/std = %v/%v, want 40µs/10µs", s.AvgTurn, s.TurnStd)
	}
	if !approx(s.TurnsPerSecond, 25000) {
		t.Errorf("turns/sec = %v, want 25000", s.TurnsPerSecond)
	}
	// A turn without a flush spends nothing on telemetry.
	if s.TelemetryPct != 0 {
		t.Errorf("telemetry share = %v, want 0", s.TelemetryPct)
	}
}

func TestTurnProfilerEmpty(t *testing.T) {
	p, _ := newTestProfiler(0)

	s := p.Stats()
	if s.Turns != 0 || s.AvgTurn != 0 || s.TurnsPerSecond != 0 || s.FPS != 0 {
		t.Errorf("empty profiler stats = %+v", s)
	}
	if row := s.ToCSV(10); row.WindowEnd != 10 || row.MovePct != 0 {
		t.Errorf("empty csv row = %+v", row)
	}
}

func TestTurnProfilerIgnoresUnknownStep(t *testing.T) {
	p, clk := newTestProfiler(5)

	p.StartTurn()
	p.ObserveStep(components.KindPrey, world.Step(99), time.Second)
	p.ObserveStep(components.Kind(7), world.StepMove, time.Second)
	clk.advance(time.Millisecond)
	p.EndTurn()

	s := p.Stats()
	for _, st := range world.Steps {
		if s.StepShare(st) != 0 {
			t.Errorf("%s share = %v, want 0", st, s.StepShare(st))
		}
	}
	if s.UpdateCost(components.KindPrey) != 0 {
		t.Errorf("prey update = %v, want 0", s.UpdateCost(components.KindPrey))
	}
}

func TestTurnProfilerFrameRate(t *testing.T) {
	p, clk := newTestProfiler(5)

	p.RecordFrame()
	if fps := p.Stats().FPS; fps != 0 {
		t.Errorf("FPS after one frame = %v, want 0", fps)
	}
	clk.advance(20 * time.Millisecond)
	p.RecordFrame()

	s := p.Stats()
	if s.FrameDuration != 20*time.Millisecond || !approx(s.FPS, 50) {
		t.Errorf("frame = %v, FPS = %v", s.FrameDuration, s.FPS)
	}
}

func TestTurnProfilerCountsWorldUpdates(t *testing.T) {
	p := NewTurnProfiler(5)
	params := world.Params{
		MaxEnergy:             100,
		DefaultEnergy:         50,
		MoveEnergyCost:        1,
		ReproductionThreshold: 80,
		ReproductionCost:      40,
		OffspringEnergy:       30,
		HuntRange:             5,
		HuntEnergyGain:        30,
		PredatorMaxAge:        60,
		PreyMaxAge:            40,
		FleeRange:             3,
		GrazeEnergyGain:       5,
	}
	w, err := world.New(12, 12, params,
		world.WithRand(rand.New(rand.NewSource(5))),
		world.WithStepObserver(p.ObserveStep),
	)
	if err != nil {
		t.Fatal(err)
	}
	for _, pos := range []components.Position{{X: 0, Y: 0}, {X: 0, Y: 11}} {
		if _, err := world.NewPrey(w, pos); err != nil {
			t.Fatal(err)
		}
	}
	// Too far from both prey to catch one in three turns.
	if _, err := world.NewPredator(w, components.Position{X: 11, Y: 0}); err != nil {
		t.Fatal(err)
	}

	for range 3 {
		p.StartTurn()
		if err := w.Tick(); err != nil {
			t.Fatal(err)
		}
		p.StartFlush()
		p.EndTurn()
	}

	var updates [numKinds]int
	for _, tp := range p.window[:p.sampleCount] {
		for k := range numKinds {
			updates[k] += tp.updates[k]
		}
	}
	if updates[components.KindPrey] != 6 || updates[components.KindPredator] != 3 {
		t.Errorf("updates = %v, want 6 prey and 3 predator", updates)
	}
}
