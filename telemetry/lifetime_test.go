package telemetry

import (
	"testing"

	"github.com/pthm-cable/wildloop/components"
	"github.com/pthm-cable/wildloop/events"
)

func mustEvent(t *testing.T, kind events.Kind, turn int, subjects ...events.Subject) events.Event {
	t.Helper()
	e, err := events.New(kind, "test", turn, subjects...)
	if err != nil {
		t.Fatalf("events.New(%s): %v", kind, err)
	}
	return e
}

func subject(id string, kind components.Kind) events.Subject {
	return events.Subject{ID: id, Kind: kind}
}

func TestLifetimeTracker(t *testing.T) {
	lt := NewLifetimeTracker()
	wolf := subject("PREDATOR-1", components.KindPredator)
	rabbit := subject("PREY-1", components.KindPrey)
	kit := subject("PREY-2", components.KindPrey)

	lt.Record(mustEvent(t, events.Spawn, 1, wolf))
	lt.Record(mustEvent(t, events.Spawn, 1, rabbit))
	lt.Record(mustEvent(t, events.EatGrass, 2, rabbit))
	lt.Record(mustEvent(t, events.Spawn, 3, kit))
	lt.Record(mustEvent(t, events.Reproduce, 3, rabbit, kit))
	lt.Record(mustEvent(t, events.Hunt, 5, wolf, rabbit))
	lt.Record(mustEvent(t, events.DieEaten, 5, rabbit, wolf))
	lt.Record(mustEvent(t, events.EatPrey, 5, wolf, rabbit))

	if lt.Count() != 2 {
		t.Fatalf("Count = %d, want 2", lt.Count())
	}
	if s := lt.Get("PREDATOR-1"); s == nil || s.Kills != 1 || s.Hunts != 1 {
		t.Errorf("predator stats = %+v", s)
	}

	dead := lt.Dead()
	if len(dead) != 1 {
		t.Fatalf("len(Dead) = %d, want 1", len(dead))
	}
	got := dead[0]
	if got.ID != "PREY-1" || got.Cause != CauseEaten || got.Lifespan != 4 || got.Children != 1 || got.Grazes != 1 {
		t.Errorf("dead record = %+v", got)
	}
}

func TestLifetimeTrackerLongest(t *testing.T) {
	lt := NewLifetimeTracker()
	for i, life := range []int{3, 9, 5} {
		s := subject(string(rune('a'+i)), components.KindPrey)
		lt.Record(mustEvent(t, events.Spawn, 1, s))
		lt.Record(mustEvent(t, events.DieAge, 1+life, s))
	}
	p := subject("p", components.KindPredator)
	lt.Record(mustEvent(t, events.Spawn, 1, p))
	lt.Record(mustEvent(t, events.DieEnergy, 50, p))

	top := lt.Longest(components.KindPrey, 2)
	if len(top) != 2 || top[0].Lifespan != 9 || top[1].Lifespan != 5 {
		t.Errorf("Longest = %+v", top)
	}
}

func TestCollector(t *testing.T) {
	c := NewCollector(5)
	wolf := subject("PREDATOR-1", components.KindPredator)
	rabbit := subject("PREY-1", components.KindPrey)
	kit := subject("PREY-2", components.KindPrey)

	c.Record(mustEvent(t, events.Spawn, 1, rabbit))
	c.Record(mustEvent(t, events.Spawn, 1, wolf))
	c.Record(mustEvent(t, events.Hunt, 1, wolf, rabbit))
	c.Record(mustEvent(t, events.Hunt, 2, wolf, rabbit))
	c.Record(mustEvent(t, events.Flee, 2, rabbit, wolf))
	c.Record(mustEvent(t, events.Spawn, 3, kit))
	c.Record(mustEvent(t, events.Reproduce, 3, rabbit, kit))
	c.Record(mustEvent(t, events.DieEaten, 4, rabbit, wolf))
	c.Record(mustEvent(t, events.EatPrey, 4, wolf, rabbit))
	c.Record(mustEvent(t, events.DieAge, 4, wolf))

	if c.ShouldFlush(4) {
		t.Error("window of 5 should not flush at turn 4")
	}
	if !c.ShouldFlush(5) {
		t.Fatal("window of 5 should flush at turn 5")
	}

	stats := c.Flush(5, 1, 0, []float64{30}, nil)
	if stats.WindowStartTurn != 1 || stats.WindowEndTurn != 5 {
		t.Errorf("window = [%d, %d]", stats.WindowStartTurn, stats.WindowEndTurn)
	}
	if stats.Hunts != 2 || stats.Kills != 1 || stats.KillRate != 0.5 {
		t.Errorf("hunting stats = %+v", stats)
	}
	if stats.PreyBirths != 1 || stats.PreyEaten != 1 || stats.PredAged != 1 || stats.Flees != 1 {
		t.Errorf("population stats = %+v", stats)
	}
	if stats.PreySpawned != 2 || stats.PredSpawned != 1 {
		t.Errorf("spawns = %d prey, %d predators", stats.PreySpawned, stats.PredSpawned)
	}
	if stats.PreySeeded() != 1 || stats.PredSeeded() != 1 {
		t.Errorf("seeded = %d prey, %d predators", stats.PreySeeded(), stats.PredSeeded())
	}
	if stats.PreyEnergyMean != 30 || stats.PredEnergyMean != 0 {
		t.Errorf("energy stats = %+v", stats)
	}

	if c.ShouldFlush(9) || !c.ShouldFlush(10) {
		t.Error("second window should cover turns 6-10")
	}
	next := c.Flush(10, 1, 0, nil, nil)
	if next.Hunts != 0 || next.PreySpawned != 0 || next.WindowStartTurn != 6 {
		t.Errorf("counters not reset: %+v", next)
	}
}
