package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.0},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.0},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.0},
		{"clamped above", []float64{1, 2, 3}, 1.5, 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeEnergyStats(t *testing.T) {
	values := []float64{10, 90, 20, 80, 30, 70, 40, 60, 50, 100}
	es := ComputeEnergyStats(values)

	if math.Abs(es.Mean-55) > 0.001 {
		t.Errorf("mean = %v, want 55", es.Mean)
	}
	if es.P10 != 10 {
		t.Errorf("p10 = %v, want 10", es.P10)
	}
	if es.P50 != 50 {
		t.Errorf("p50 = %v, want 50", es.P50)
	}
	if es.P90 != 90 {
		t.Errorf("p90 = %v, want 90", es.P90)
	}
	// Sample standard deviation of 10..100 step 10
	if math.Abs(es.Std-30.2765) > 0.001 {
		t.Errorf("std = %v, want ~30.2765", es.Std)
	}
	if values[0] != 10 || values[1] != 90 {
		t.Error("ComputeEnergyStats reordered its input")
	}
}

func TestComputeEnergyStatsEmpty(t *testing.T) {
	if es := ComputeEnergyStats([]float64{}); es != (EnergyStats{}) {
		t.Errorf("empty slice should return all zeros, got %+v", es)
	}
}

func TestComputeEnergyStatsSingle(t *testing.T) {
	es := ComputeEnergyStats([]float64{42})
	if es.Mean != 42 || es.Std != 0 || es.P50 != 42 {
		t.Errorf("single value stats = %+v", es)
	}
}

func TestWindowStatsDeaths(t *testing.T) {
	s := WindowStats{PreyEaten: 3, PreyStarved: 1, PreyAged: 2, PredStarved: 4, PredAged: 1}
	if s.PreyDeaths() != 6 {
		t.Errorf("PreyDeaths = %d, want 6", s.PreyDeaths())
	}
	if s.PredDeaths() != 5 {
		t.Errorf("PredDeaths = %d, want 5", s.PredDeaths())
	}
}
