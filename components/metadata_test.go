package components

import "testing"

func testSnapshot() Snapshot {
	return Snapshot{
		Organism:  Organism{ID: "PREY-3", Kind: KindPrey},
		Vitals:    Vitals{Energy: 40, Age: 10},
		Position:  Position{X: 2, Y: 5},
		Placed:    true,
		MaxAge:    40,
		MaxEnergy: 100,
	}
}

func TestFormatAnimalValue(t *testing.T) {
	s := testSnapshot()
	want := map[string]string{
		"id":       "PREY-3",
		"kind":     "prey",
		"position": "(2, 5)",
		"energy":   "40/100",
		"age":      "10/40",
	}
	for _, fd := range AnimalFieldDescriptors() {
		if got := FormatAnimalValue(&s, fd); got != want[fd.ID] {
			t.Errorf("%s: got %q, want %q", fd.ID, got, want[fd.ID])
		}
	}

	s.Placed = false
	for _, fd := range AnimalFieldDescriptors() {
		if fd.ID == "position" {
			if got := FormatAnimalValue(&s, fd); got != "-" {
				t.Errorf("unplaced position: got %q, want %q", got, "-")
			}
		}
	}
}

func TestGetAnimalValue(t *testing.T) {
	tests := []struct {
		name    string
		energy  int
		age     int
		fieldID string
		want    float32
	}{
		{"energy ratio", 40, 0, "energy", 0.4},
		{"energy dead", -1, 0, "energy", 0},
		{"age ratio", 0, 10, "age", 0.25},
		{"age past limit", 0, 60, "age", 1},
		{"unknown field", 40, 10, "speed", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSnapshot()
			s.Energy, s.Age = tt.energy, tt.age
			if got := GetAnimalValue(&s, tt.fieldID); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFieldGroupsCoverDescriptors(t *testing.T) {
	groups := make(map[string]bool)
	for _, g := range AnimalGroups() {
		groups[g] = true
	}
	for _, fd := range AnimalFieldDescriptors() {
		if !groups[fd.Group] {
			t.Errorf("field %s has unknown group %q", fd.ID, fd.Group)
		}
	}
}

func TestSummary(t *testing.T) {
	s := testSnapshot()
	if got, want := s.Summary(), "PREY-3 | Energy: 40/100 | Age: 10/40"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	s.Dead = true
	if got, want := s.Summary(), "Animal is dead"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
