package telemetry

import (
	"sort"

	"github.com/pthm-cable/wildloop/components"
	"github.com/pthm-cable/wildloop/events"
)

// Death causes recorded in LifetimeStats.
const (
	CauseEaten  = "eaten"
	CauseEnergy = "energy"
	CauseAge    = "age"
)

// LifetimeStats tracks per-animal statistics over its lifetime.
type LifetimeStats struct {
	ID        string          `csv:"id"`
	Kind      components.Kind `csv:"-"`
	KindName  string          `csv:"kind"`
	BirthTurn int             `csv:"birth_turn"`
	DeathTurn int             `csv:"death_turn"`
	Lifespan  int             `csv:"lifespan"`
	Cause     string          `csv:"cause"`

	// Hunting (predators)
	Hunts int `csv:"hunts"`
	Kills int `csv:"kills"`

	// Prey
	Flees  int `csv:"flees"`
	Grazes int `csv:"grazes"`

	// Reproduction
	Children int `csv:"children"`
	Moves    int `csv:"moves"`
}

// LifetimeTracker manages per-animal lifetime statistics.
// Record is meant to be subscribed to a world's event bus.
type LifetimeTracker struct {
	stats map[string]*LifetimeStats
	dead  []LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[string]*LifetimeStats),
	}
}

// Record updates per-animal statistics from a single event.
func (lt *LifetimeTracker) Record(e events.Event) {
	switch e.Kind() {
	case events.Spawn:
		s := e.Subject(0)
		lt.stats[s.ID] = &LifetimeStats{
			ID:        s.ID,
			Kind:      s.Kind,
			KindName:  s.Kind.String(),
			BirthTurn: e.Turn(),
		}
	case events.Move:
		if s := lt.stats[e.Subject(0).ID]; s != nil {
			s.Moves++
		}
	case events.Hunt:
		if s := lt.stats[e.Subject(0).ID]; s != nil {
			s.Hunts++
		}
	case events.Flee:
		if s := lt.stats[e.Subject(0).ID]; s != nil {
			s.Flees++
		}
	case events.EatGrass:
		if s := lt.stats[e.Subject(0).ID]; s != nil {
			s.Grazes++
		}
	case events.EatPrey:
		if s := lt.stats[e.Subject(0).ID]; s != nil {
			s.Kills++
		}
	case events.Reproduce:
		if s := lt.stats[e.Subject(0).ID]; s != nil {
			s.Children++
		}
	case events.DieEaten:
		lt.remove(e.Subject(0).ID, e.Turn(), CauseEaten)
	case events.DieEnergy:
		lt.remove(e.Subject(0).ID, e.Turn(), CauseEnergy)
	case events.DieAge:
		lt.remove(e.Subject(0).ID, e.Turn(), CauseAge)
	}
}

func (lt *LifetimeTracker) remove(id string, turn int, cause string) {
	s := lt.stats[id]
	if s == nil {
		return
	}
	delete(lt.stats, id)
	s.DeathTurn = turn
	s.Lifespan = turn - s.BirthTurn
	s.Cause = cause
	lt.dead = append(lt.dead, *s)
}

// Get returns the stats for a living animal, or nil if not found.
func (lt *LifetimeTracker) Get(id string) *LifetimeStats {
	return lt.stats[id]
}

// Dead returns the records of every animal that has died, in order of death.
func (lt *LifetimeTracker) Dead() []LifetimeStats {
	return lt.dead
}

// Count returns the number of living animals being tracked.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}

// Longest returns up to n dead animals of the given kind with the longest lifespans.
func (lt *LifetimeTracker) Longest(kind components.Kind, n int) []LifetimeStats {
	var out []LifetimeStats
	for _, s := range lt.dead {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Lifespan > out[j].Lifespan })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
