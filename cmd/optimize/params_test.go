package main

import (
	"context"
	"math"
	"testing"

	"github.com/pthm-cable/wildloop/config"
)

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	cfg, err := config.Defaults()
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}

	raw := pv.ExtractFromConfig(cfg)
	if len(raw) != pv.Dim() {
		t.Fatalf("extracted %d values, want %d", len(raw), pv.Dim())
	}
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-9 {
			t.Errorf("%s: round trip %v -> %v", pv.Specs[i].Name, raw[i], back[i])
		}
	}
}

func TestDefaultsWithinBounds(t *testing.T) {
	pv := NewParamVector()
	cfg, err := config.Defaults()
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	for i, v := range pv.ExtractFromConfig(cfg) {
		spec := pv.Specs[i]
		if v < spec.Min || v > spec.Max {
			t.Errorf("%s default %v outside [%v, %v]", spec.Path, v, spec.Min, spec.Max)
		}
	}
}

func TestClampRoundsAndBounds(t *testing.T) {
	pv := NewParamVector()
	in := make([]float64, pv.Dim())
	in[0] = -3    // move_energy_cost below min
	in[1] = 47.6  // reproduction_threshold rounds up
	in[5] = 100.2 // hunt_range above max

	got := pv.Clamp(in)
	tests := []struct {
		idx  int
		want float64
	}{
		{0, 0},
		{1, 48},
		{5, 10},
	}
	for _, tt := range tests {
		if got[tt.idx] != tt.want {
			t.Errorf("%s = %v, want %v", pv.Specs[tt.idx].Name, got[tt.idx], tt.want)
		}
	}
}

func TestApplyExtractRoundTrip(t *testing.T) {
	pv := NewParamVector()
	cfg, err := config.Defaults()
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}

	values := []float64{2, 60, 30, 25, 90, 4, 40, 70, 2, 8}
	pv.ApplyToConfig(cfg, values)
	got := pv.ExtractFromConfig(cfg)
	for i := range values {
		if got[i] != values[i] {
			t.Errorf("%s = %v, want %v", pv.Specs[i].Name, got[i], values[i])
		}
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("applied config invalid: %v", err)
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	cfg, err := config.Defaults()
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	cfg.World.Size = 10
	cfg.World.PreyCount = 15
	cfg.World.PredatorCount = 3

	pv := NewParamVector()
	fe := NewFitnessEvaluator(context.Background(), pv, 50, []int64{1, 2}, cfg)
	x := pv.ExtractFromConfig(cfg)

	first := fe.Evaluate(x)
	second := fe.Evaluate(x)
	if first != second {
		t.Errorf("fitness %v then %v for the same seeds", first, second)
	}
	if first > 0 || first < -50 {
		t.Errorf("fitness %v outside [-50, 0]", first)
	}
	if cfg.Simulation.StopOnExtinction {
		t.Error("Evaluate modified the base config")
	}
}
