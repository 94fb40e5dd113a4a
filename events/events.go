// Package events defines simulation events, their fixed parameter shapes, and the bus
// that fans them out to observers.
package events

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pthm-cable/wildloop/components"
)

// ErrInvalidEvent is returned when an event's subjects do not match its kind's shape.
var ErrInvalidEvent = errors.New("invalid event")

// TimeLayout is the timestamp layout used in rendered event lines.
const TimeLayout = "2006-01-02 15:04:05.000"

// Kind identifies what happened.
type Kind uint8

const (
	SimulationStart Kind = iota
	SimulationPause
	SimulationResume
	SimulationEnd
	Turn
	Spawn
	DieEaten
	DieEnergy
	DieAge
	Move
	Reproduce
	EatGrass
	EatPrey
	Flee
	Hunt
	numKinds
)

// Slot constrains the animal variant accepted at one subject position.
type Slot uint8

const (
	AnyAnimal Slot = iota
	PredatorSlot
	PreySlot
)

func (s Slot) accepts(k components.Kind) bool {
	switch s {
	case PredatorSlot:
		return k == components.KindPredator
	case PreySlot:
		return k == components.KindPrey
	}
	return true
}

type kindInfo struct {
	name   string
	shape  []Slot
	format string
}

var kindTable = [numKinds]kindInfo{
	SimulationStart:  {"SIMULATION_START", nil, "Simulation started"},
	SimulationPause:  {"SIMULATION_PAUSE", nil, "Simulation paused"},
	SimulationResume: {"SIMULATION_RESUME", nil, "Simulation resumed"},
	SimulationEnd:    {"SIMULATION_END", nil, "Simulation ended"},
	Turn:             {"TURN", nil, "Turn is completed"},
	Spawn:            {"SPAWN", []Slot{AnyAnimal}, "%s spawned at %s"},
	DieEaten:         {"DIE_EATEN", []Slot{PreySlot, PredatorSlot}, "%s died at %s after being eaten by %s at %s"},
	DieEnergy:        {"DIE_ENERGY", []Slot{AnyAnimal}, "%s died at %s due to energy depletion"},
	DieAge:           {"DIE_AGE", []Slot{AnyAnimal}, "%s died at %s due to old age"},
	Move:             {"MOVE", []Slot{AnyAnimal}, "%s moved to %s"},
	Reproduce:        {"REPRODUCE", []Slot{AnyAnimal, AnyAnimal}, "%s at %s reproduced, creating offspring %s at %s"},
	EatGrass:         {"EAT_GRASS", []Slot{PreySlot}, "%s grazed at %s, gaining energy"},
	EatPrey:          {"EAT_PREY", []Slot{PredatorSlot, PreySlot}, "%s at %s ate %s at %s, gaining energy"},
	Flee:             {"FLEE", []Slot{PreySlot, PredatorSlot}, "%s at %s is fleeing from %s at %s"},
	Hunt:             {"HUNT", []Slot{PredatorSlot, PreySlot}, "%s at %s is hunting %s at %s"},
}

// String returns the upper-snake name of the kind.
func (k Kind) String() string {
	if k >= numKinds {
		return fmt.Sprintf("KIND(%d)", uint8(k))
	}
	return kindTable[k].name
}

// Shape returns the ordered subject slots the kind requires.
func (k Kind) Shape() []Slot {
	if k >= numKinds {
		return nil
	}
	return append([]Slot(nil), kindTable[k].shape...)
}

// IsLifecycle reports whether the kind describes the simulation run rather than an animal.
func (k Kind) IsLifecycle() bool {
	return k <= SimulationEnd
}

// Kinds returns every defined kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, numKinds)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// Subject is a snapshot of an animal taken when the event was emitted.
type Subject struct {
	ID       string
	Kind     components.Kind
	Position components.Position
}

// Event records a single state transition. It is immutable once built.
type Event struct {
	kind     Kind
	worldID  string
	turn     int
	time     time.Time
	subjects []Subject
}

// New validates subjects against kind's shape and builds an event stamped with the current time.
func New(kind Kind, worldID string, turn int, subjects ...Subject) (Event, error) {
	return NewAt(time.Now(), kind, worldID, turn, subjects...)
}

// NewAt is New with an explicit timestamp.
func NewAt(at time.Time, kind Kind, worldID string, turn int, subjects ...Subject) (Event, error) {
	if kind >= numKinds {
		return Event{}, fmt.Errorf("%w: unknown kind %d", ErrInvalidEvent, uint8(kind))
	}
	shape := kindTable[kind].shape
	if len(subjects) != len(shape) {
		return Event{}, fmt.Errorf("%w: %s takes %d subjects, got %d", ErrInvalidEvent, kind, len(shape), len(subjects))
	}
	for i, slot := range shape {
		if !slot.accepts(subjects[i].Kind) {
			return Event{}, fmt.Errorf("%w: %s slot %d does not accept %s", ErrInvalidEvent, kind, i, subjects[i].Kind)
		}
	}
	return Event{
		kind:     kind,
		worldID:  worldID,
		turn:     turn,
		time:     at,
		subjects: append([]Subject(nil), subjects...),
	}, nil
}

func (e Event) Kind() Kind            { return e.kind }
func (e Event) WorldID() string       { return e.worldID }
func (e Event) Turn() int             { return e.turn }
func (e Event) Time() time.Time       { return e.time }
func (e Event) NumSubjects() int      { return len(e.subjects) }
func (e Event) Subject(i int) Subject { return e.subjects[i] }

// Subjects returns a copy of the event's subjects.
func (e Event) Subjects() []Subject {
	return append([]Subject(nil), e.subjects...)
}

// Description renders the human-readable sentence for the event.
func (e Event) Description() string {
	if e.kind >= numKinds {
		return ""
	}
	info := kindTable[e.kind]
	if len(e.subjects) == 0 {
		return info.format
	}
	args := make([]any, 0, 2*len(e.subjects))
	for _, s := range e.subjects {
		args = append(args, s.ID, s.Position)
	}
	return fmt.Sprintf(info.format, args...)
}

// String renders the event as a single log line.
func (e Event) String() string {
	var b strings.Builder
	b.WriteString(e.time.Format(TimeLayout))
	fmt.Fprintf(&b, " | W-%s T-%d | %s | %s", e.worldID, e.turn, e.kind, e.Description())
	return b.String()
}

// LogValue implements slog.LogValuer.
func (e Event) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("kind", e.kind.String()),
		slog.Int("turn", e.turn),
	}
	for i, s := range e.subjects {
		attrs = append(attrs, slog.Group(fmt.Sprintf("s%d", i),
			slog.String("id", s.ID),
			slog.String("pos", s.Position.String()),
		))
	}
	return slog.GroupValue(attrs...)
}
