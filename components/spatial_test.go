package components

import (
	"math/rand"
	"testing"
)

func TestDistanceTo(t *testing.T) {
	tests := []struct {
		name string
		a, b Position
		want int
	}{
		{"same", Position{3, 3}, Position{3, 3}, 0},
		{"horizontal", Position{0, 0}, Position{4, 0}, 4},
		{"vertical", Position{2, 7}, Position{2, 1}, 6},
		{"diagonal", Position{1, 1}, Position{4, 5}, 7},
		{"negative", Position{-2, 0}, Position{2, -3}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.DistanceTo(tt.b); got != tt.want {
				t.Errorf("DistanceTo = %d, want %d", got, tt.want)
			}
			if got := tt.b.DistanceTo(tt.a); got != tt.want {
				t.Errorf("DistanceTo (reversed) = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDistanceTriangleInequality(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		a := Position{rng.Intn(20), rng.Intn(20)}
		b := Position{rng.Intn(20), rng.Intn(20)}
		c := Position{rng.Intn(20), rng.Intn(20)}
		if a.DistanceTo(c) > a.DistanceTo(b)+b.DistanceTo(c) {
			t.Fatalf("triangle inequality violated for %v %v %v", a, b, c)
		}
	}
}

func TestDirectionTo(t *testing.T) {
	origin := Position{5, 5}
	tests := []struct {
		name string
		to   Position
		want Direction
	}{
		{"east", Position{8, 6}, East},
		{"west", Position{1, 4}, West},
		{"south", Position{6, 9}, South},
		{"north", Position{4, 0}, North},
		{"diagonal tie goes south", Position{7, 7}, South},
		{"diagonal tie goes north", Position{3, 3}, North},
		{"same position", Position{5, 5}, North},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := origin.DirectionTo(tt.to); got != tt.want {
				t.Errorf("DirectionTo(%v) = %v, want %v", tt.to, got, tt.want)
			}
		})
	}
}

func TestDirectionFrom(t *testing.T) {
	origin := Position{5, 5}
	tests := []struct {
		name   string
		threat Position
		want   Direction
	}{
		{"threat east", Position{6, 5}, West},
		{"threat west", Position{4, 5}, East},
		{"threat south", Position{5, 6}, North},
		{"threat north", Position{5, 4}, South},
		{"diagonal tie flees vertically", Position{6, 6}, North},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := origin.DirectionFrom(tt.threat); got != tt.want {
				t.Errorf("DirectionFrom(%v) = %v, want %v", tt.threat, got, tt.want)
			}
		})
	}
}

func TestDirectionToStepRoundTrip(t *testing.T) {
	p := Position{10, 10}
	for _, d := range Directions {
		if got := p.DirectionTo(p.Step(d)); got != d {
			t.Errorf("DirectionTo(Step(%v)) = %v", d, got)
		}
	}
}

func TestStepDoesNotMutate(t *testing.T) {
	p := Position{2, 2}
	q := p.Step(North)
	if p != (Position{2, 2}) {
		t.Errorf("Step mutated receiver: %v", p)
	}
	if q != (Position{2, 1}) {
		t.Errorf("Step(North) = %v, want (2, 1)", q)
	}
}

func TestRandomDirectionCoversAll(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	seen := make(map[Direction]int)
	for i := 0; i < 400; i++ {
		seen[RandomDirection(rng)]++
	}
	for _, d := range Directions {
		if seen[d] == 0 {
			t.Errorf("direction %v never drawn", d)
		}
	}
}

func TestPositionString(t *testing.T) {
	if got := (Position{3, 12}).String(); got != "(3, 12)" {
		t.Errorf("String = %q", got)
	}
}
