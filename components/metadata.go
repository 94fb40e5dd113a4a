package components

import "fmt"

// FieldDescriptor describes an animal field for inspector display.
type FieldDescriptor struct {
	ID     string // Unique identifier
	Label  string // Display name
	Format string // Printf format (e.g., "%d")
	IsBar  bool   // True to render as progress bar
	Group  string // Logical grouping
}

// Snapshot is a read-only view of one animal, captured for UI panels.
type Snapshot struct {
	Organism
	Vitals
	Position  Position
	Placed    bool
	MaxAge    int
	MaxEnergy int
	Dead      bool
}

// AnimalFieldDescriptors returns metadata for the inspector panel rows.
func AnimalFieldDescriptors() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "id", Label: "ID", Format: "%s", Group: "identity"},
		{ID: "kind", Label: "Kind", Format: "%s", Group: "identity"},
		{ID: "position", Label: "Position", Format: "%s", Group: "identity"},
		{ID: "energy", Label: "Energy", Format: "%d/%d", IsBar: true, Group: "stats"},
		{ID: "age", Label: "Age", Format: "%d/%d", IsBar: true, Group: "stats"},
	}
}

// AnimalGroups returns the logical groupings for animal fields.
func AnimalGroups() []string {
	return []string{"identity", "stats"}
}

// GetAnimalValue extracts a bar field value by ID, normalized to [0,1].
func GetAnimalValue(s *Snapshot, fieldID string) float32 {
	switch fieldID {
	case "energy":
		return ratio(s.Energy, s.MaxEnergy)
	case "age":
		return ratio(s.Age, s.MaxAge)
	default:
		return 0
	}
}

// FormatAnimalValue renders a field by ID using its descriptor format.
func FormatAnimalValue(s *Snapshot, fd FieldDescriptor) string {
	switch fd.ID {
	case "id":
		return fmt.Sprintf(fd.Format, s.ID)
	case "kind":
		return fmt.Sprintf(fd.Format, s.Kind)
	case "position":
		if !s.Placed {
			return "-"
		}
		return fmt.Sprintf(fd.Format, s.Position)
	case "energy":
		return fmt.Sprintf(fd.Format, s.Energy, s.MaxEnergy)
	case "age":
		return fmt.Sprintf(fd.Format, s.Age, s.MaxAge)
	default:
		return ""
	}
}

// Summary renders the one-line info panel text for an animal.
func (s *Snapshot) Summary() string {
	if s.Dead {
		return "Animal is dead"
	}
	return fmt.Sprintf("%s | Energy: %d/%d | Age: %d/%d", s.ID, s.Energy, s.MaxEnergy, s.Age, s.MaxAge)
}

func ratio(v, limit int) float32 {
	if limit <= 0 || v <= 0 {
		return 0
	}
	return min(float32(v)/float32(limit), 1)
}
