package world

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/wildloop/components"
	"github.com/pthm-cable/wildloop/events"
)

func TestPreyGraze(t *testing.T) {
	tests := []struct {
		name   string
		energy int
		want   int
		grazed bool
	}{
		{"hungry", 50, 55, true},
		{"just below limit", 94, 99, true},
		{"at limit", 95, 95, false},
		{"full", 100, 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t, 5)
			a, err := NewPrey(w, pos(2, 2))
			require.NoError(t, err)
			a.SetEnergy(tt.energy)
			kinds := recordKinds(w)

			require.NoError(t, preyGraze(a))

			assert.Equal(t, tt.want, a.Energy())
			assert.Equal(t, tt.grazed, len(*kinds) == 1 && (*kinds)[0] == events.EatGrass)
		})
	}
}

func TestSetEnergyClamps(t *testing.T) {
	w := newTestWorld(t, 5)
	a, err := NewPrey(w, pos(0, 0))
	require.NoError(t, err)

	a.SetEnergy(500)
	assert.Equal(t, 100, a.Energy())
	a.SetEnergy(-3)
	assert.Equal(t, -3, a.Energy())
}

func TestPredatorEatsAdjacentPrey(t *testing.T) {
	tests := []struct {
		name   string
		energy int
		want   int
	}{
		{"room to eat", 50, 80},
		{"clamped", 90, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t, 10)
			pred, err := NewPredator(w, pos(5, 5))
			require.NoError(t, err)
			prey, err := NewPrey(w, pos(5, 6))
			require.NoError(t, err)
			pred.SetEnergy(tt.energy)

			var got []events.Event
			w.Subscribe(func(e events.Event) { got = append(got, e) })

			require.NoError(t, predatorEat(pred))

			assert.True(t, prey.IsDead())
			assert.True(t, w.IsCellEmpty(pos(5, 6)))
			assert.NotContains(t, w.Animals(), prey)
			assert.Equal(t, tt.want, pred.Energy())

			require.Len(t, got, 2)
			assert.Equal(t, events.DieEaten, got[0].Kind())
			assert.Equal(t, prey.ID(), got[0].Subject(0).ID)
			assert.Equal(t, pos(5, 6), got[0].Subject(0).Position)
			assert.Equal(t, events.EatPrey, got[1].Kind())
			assert.Equal(t, pred.ID(), got[1].Subject(0).ID)
		})
	}
}

func TestPredatorIgnoresDistantPrey(t *testing.T) {
	w := newTestWorld(t, 10)
	pred, err := NewPredator(w, pos(5, 5))
	require.NoError(t, err)
	prey, err := NewPrey(w, pos(6, 6))
	require.NoError(t, err)

	require.NoError(t, predatorEat(pred))

	assert.False(t, prey.IsDead())
	assert.Equal(t, 50, pred.Energy())
}

func TestPredatorHuntsToward(t *testing.T) {
	w := newTestWorld(t, 10)
	pred, err := NewPredator(w, pos(5, 5))
	require.NoError(t, err)
	_, err = NewPrey(w, pos(6, 5))
	require.NoError(t, err)
	pred.SetEnergy(w.Params().MaxEnergy - w.Params().HuntEnergyGain - 1)
	kinds := recordKinds(w)

	dir, ok, err := predatorNextMove(pred)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, components.East, dir)
	assert.Equal(t, []events.Kind{events.Hunt}, *kinds)
}

func TestPreyFleesAway(t *testing.T) {
	w := newTestWorld(t, 10)
	prey, err := NewPrey(w, pos(5, 5))
	require.NoError(t, err)
	_, err = NewPredator(w, pos(6, 5))
	require.NoError(t, err)
	kinds := recordKinds(w)

	dir, ok, err := preyNextMove(prey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, components.West, dir)
	assert.Equal(t, []events.Kind{events.Flee}, *kinds)
}

// With prey at (5,5) and the predator at (6,5) the predator's target lies to its west.
func TestPredatorEastOfPreyHuntsWest(t *testing.T) {
	w := newTestWorld(t, 10)
	prey, err := NewPrey(w, pos(5, 5))
	require.NoError(t, err)
	pred, err := NewPredator(w, pos(6, 5))
	require.NoError(t, err)
	pred.SetEnergy(w.Params().MaxEnergy - w.Params().HuntEnergyGain - 1)

	dir, _, err := predatorNextMove(pred)
	require.NoError(t, err)
	assert.Equal(t, components.West, dir)

	dir, _, err = preyNextMove(prey)
	require.NoError(t, err)
	assert.Equal(t, components.West, dir)
}

func TestSatiatedPredatorWanders(t *testing.T) {
	w := newTestWorld(t, 10)
	pred, err := NewPredator(w, pos(5, 5))
	require.NoError(t, err)
	_, err = NewPrey(w, pos(6, 5))
	require.NoError(t, err)
	pred.SetEnergy(w.Params().MaxEnergy - w.Params().HuntEnergyGain)
	kinds := recordKinds(w)

	_, ok, err := predatorNextMove(pred)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, *kinds)
}

func TestNearestTieGoesToFirstAdded(t *testing.T) {
	w := newTestWorld(t, 10)
	pred, err := NewPredator(w, pos(5, 5))
	require.NoError(t, err)
	first, err := NewPrey(w, pos(5, 7))
	require.NoError(t, err)
	_, err = NewPrey(w, pos(7, 5))
	require.NoError(t, err)

	target, dist, err := pred.nearest(components.KindPrey, 5)
	require.NoError(t, err)
	assert.Same(t, first, target)
	assert.Equal(t, 2, dist)

	dir, _, err := predatorNextMove(pred)
	require.NoError(t, err)
	assert.Equal(t, components.South, dir)
}

func TestNearestRespectsRange(t *testing.T) {
	w := newTestWorld(t, 20)
	prey, err := NewPrey(w, pos(0, 0))
	require.NoError(t, err)
	_, err = NewPredator(w, pos(2, 2))
	require.NoError(t, err)

	target, _, err := prey.nearest(components.KindPredator, 3)
	require.NoError(t, err)
	assert.Nil(t, target)

	target, _, err = prey.nearest(components.KindPredator, 4)
	require.NoError(t, err)
	assert.NotNil(t, target)
}

func TestReproduceAtThreshold(t *testing.T) {
	w := newTestWorld(t, 10)
	parent, err := NewPrey(w, pos(5, 5))
	require.NoError(t, err)
	parent.SetEnergy(w.Params().ReproductionThreshold)
	kinds := recordKinds(w)

	require.NoError(t, parent.reproduce(behaviorFor(parent.Kind())))

	require.Len(t, w.Animals(), 2)
	child := w.Animals()[1]
	p, ok := child.Position()
	require.True(t, ok)
	assert.Equal(t, pos(5, 4), p)
	assert.Equal(t, components.KindPrey, child.Kind())
	assert.Equal(t, 30, child.Energy())
	assert.Equal(t, 40, parent.Energy())
	assert.Equal(t, []events.Kind{events.Spawn, events.Reproduce}, *kinds)
}

func TestReproduceBelowThreshold(t *testing.T) {
	w := newTestWorld(t, 10)
	parent, err := NewPredator(w, pos(5, 5))
	require.NoError(t, err)
	parent.SetEnergy(w.Params().ReproductionThreshold - 1)

	require.NoError(t, parent.reproduce(behaviorFor(parent.Kind())))

	assert.Len(t, w.Animals(), 1)
	assert.Equal(t, 79, parent.Energy())
}

func TestReproduceScansNeighborsInOrder(t *testing.T) {
	w := newTestWorld(t, 10)
	parent, err := NewPredator(w, pos(5, 5))
	require.NoError(t, err)
	_, err = NewPrey(w, pos(5, 4))
	require.NoError(t, err)
	_, err = NewPrey(w, pos(6, 5))
	require.NoError(t, err)
	parent.SetEnergy(90)

	require.NoError(t, parent.reproduce(behaviorFor(parent.Kind())))

	child, ok := w.At(pos(5, 6))
	require.True(t, ok)
	assert.Equal(t, components.KindPredator, child.Kind())
	assert.Equal(t, 50, parent.Energy())
}

func TestReproduceWithoutRoomCostsNothing(t *testing.T) {
	w := newTestWorld(t, 10)
	parent, err := NewPrey(w, pos(0, 0))
	require.NoError(t, err)
	_, err = NewPrey(w, pos(1, 0))
	require.NoError(t, err)
	_, err = NewPrey(w, pos(0, 1))
	require.NoError(t, err)
	parent.SetEnergy(100)

	require.NoError(t, parent.reproduce(behaviorFor(parent.Kind())))

	assert.Len(t, w.Animals(), 3)
	assert.Equal(t, 100, parent.Energy())
}

func TestUpdateDiesOfOldAge(t *testing.T) {
	w := newTestWorld(t, 10)
	a, err := NewPrey(w, pos(5, 5))
	require.NoError(t, err)
	a.vitalsRef().Age = a.MaxAge() - 1
	kinds := recordKinds(w)

	require.NoError(t, a.Update())

	assert.Equal(t, a.MaxAge(), a.Age())
	assert.True(t, a.IsDead())
	assert.Nil(t, a.World())
	assert.Empty(t, w.Animals())
	assert.Equal(t, events.DieAge, (*kinds)[len(*kinds)-1])
	assert.NotContains(t, *kinds, events.DieEnergy)
}

func TestUpdateDiesOfOldAgeWhenBlocked(t *testing.T) {
	w, err := New(1, 1, testParams())
	require.NoError(t, err)
	a, err := NewPredator(w, pos(0, 0))
	require.NoError(t, err)
	a.vitalsRef().Age = a.MaxAge() - 1

	require.NoError(t, a.Update())

	assert.True(t, a.IsDead())
	assert.Empty(t, w.Animals())
}

func TestUpdateDiesOfStarvationOnce(t *testing.T) {
	w := newTestWorld(t, 10)
	a, err := NewPredator(w, pos(5, 5))
	require.NoError(t, err)
	a.SetEnergy(1)
	a.vitalsRef().Age = a.MaxAge() - 1
	kinds := recordKinds(w)

	require.NoError(t, a.Update())

	assert.True(t, a.IsDead())
	assert.Equal(t, -1, a.Energy())
	assert.Contains(t, *kinds, events.DieEnergy)
	assert.NotContains(t, *kinds, events.DieAge)
}

func TestUpdateMoveCostsEnergy(t *testing.T) {
	w := newTestWorld(t, 10)
	a, err := NewPredator(w, pos(5, 5))
	require.NoError(t, err)
	a.SetEnergy(70)
	var moves []events.Event
	w.Subscribe(func(e events.Event) {
		if e.Kind() == events.Move {
			moves = append(moves, e)
		}
	})

	require.NoError(t, a.Update())

	require.Len(t, moves, 1)
	p, ok := a.Position()
	require.True(t, ok)
	assert.Equal(t, p, moves[0].Subject(0).Position)
	assert.Equal(t, 1, p.DistanceTo(pos(5, 5)))
	assert.Equal(t, 69, a.Energy())
	assert.Equal(t, 1, a.Age())
}

func TestUpdateBlockedMoveIsFree(t *testing.T) {
	w, err := New(1, 1, testParams())
	require.NoError(t, err)
	a, err := NewPredator(w, pos(0, 0))
	require.NoError(t, err)

	require.NoError(t, a.Update())

	assert.Equal(t, 50, a.Energy())
	p, _ := a.Position()
	assert.Equal(t, pos(0, 0), p)
}

func TestUpdateBelowThresholdEatsTwice(t *testing.T) {
	w, err := New(1, 1, testParams())
	require.NoError(t, err)
	a, err := NewPrey(w, pos(0, 0))
	require.NoError(t, err)
	kinds := recordKinds(w)

	require.NoError(t, a.Update())

	assert.Equal(t, 60, a.Energy())
	assert.Equal(t, []events.Kind{events.EatGrass, events.EatGrass}, *kinds)
}

func TestUpdateDetachedIsNoop(t *testing.T) {
	w := newTestWorld(t, 5)
	a, err := NewPrey(w, pos(1, 1))
	require.NoError(t, err)
	require.NoError(t, a.Die())

	require.NoError(t, a.Update())
	assert.Equal(t, 0, a.Age())
}

func TestDieIsIdempotent(t *testing.T) {
	w := newTestWorld(t, 5)
	a, err := NewPrey(w, pos(1, 1))
	require.NoError(t, err)

	require.NoError(t, a.Die())
	require.NoError(t, a.Die())
	assert.True(t, a.IsDead())
	assert.Equal(t, -1, a.Energy())

	snap := a.Snapshot()
	assert.True(t, snap.Dead)
	assert.False(t, snap.Placed)
}

func TestSetEnergyAfterDeathIsIgnored(t *testing.T) {
	w := newTestWorld(t, 5)
	a, err := NewPrey(w, pos(1, 1))
	require.NoError(t, err)
	require.NoError(t, a.Die())

	a.SetEnergy(70)
	assert.Equal(t, -1, a.Energy())
	assert.True(t, a.IsDead())
	assert.Equal(t, -1, a.Snapshot().Energy)
}

func TestStepObserverSeesEachStep(t *testing.T) {
	var steps []Step
	w, err := New(5, 5, testParams(),
		WithRand(rand.New(rand.NewSource(42))),
		WithStepObserver(func(kind components.Kind, step Step, d time.Duration) {
			assert.Equal(t, components.KindPrey, kind)
			assert.GreaterOrEqual(t, d, time.Duration(0))
			steps = append(steps, step)
		}),
	)
	require.NoError(t, err)
	a, err := NewPrey(w, pos(2, 2))
	require.NoError(t, err)

	// 50 energy: below the threshold, so the prey grazes twice.
	require.NoError(t, w.Tick())
	assert.Equal(t, []Step{StepMove, StepEat, StepEat, StepDeath}, steps)

	// 90 - 1 + 5 reaches the threshold after the first graze.
	steps = nil
	a.SetEnergy(90)
	require.NoError(t, w.Tick())
	assert.Equal(t, []Step{StepMove, StepEat, StepReproduce, StepDeath}, steps)
}

func TestStepString(t *testing.T) {
	assert.Equal(t, "move", StepMove.String())
	assert.Equal(t, "death", StepDeath.String())
	assert.Equal(t, "unknown", Step(42).String())
}

func TestSubSaturating(t *testing.T) {
	assert.Equal(t, 4, subSaturating(5, 1))
	assert.Equal(t, -1, subSaturating(0, 1))
	assert.Equal(t, math.MinInt, subSaturating(math.MinInt+1, 5))
}
