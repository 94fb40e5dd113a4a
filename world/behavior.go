package world

import (
	"fmt"

	"github.com/pthm-cable/wildloop/components"
	"github.com/pthm-cable/wildloop/events"
)

// behavior is the per-kind policy table.
type behavior struct {
	nextMove  func(a *Animal) (components.Direction, bool, error)
	eat       func(a *Animal) error
	offspring func(a *Animal, pos components.Position) (*Animal, error)
}

func behaviorFor(kind components.Kind) behavior {
	switch kind {
	case components.KindPredator:
		return behavior{nextMove: predatorNextMove, eat: predatorEat, offspring: newOffspring}
	case components.KindPrey:
		return behavior{nextMove: preyNextMove, eat: preyGraze, offspring: newOffspring}
	}
	panic(fmt.Sprintf("world: no behavior for kind %d", kind))
}

// predatorNextMove heads for the nearest prey in range unless eating would be wasted.
func predatorNextMove(a *Animal) (components.Direction, bool, error) {
	p := a.world.params
	if a.Energy() < p.MaxEnergy-p.HuntEnergyGain {
		target, _, err := a.nearest(components.KindPrey, p.HuntRange)
		if err != nil {
			return 0, false, err
		}
		if target != nil {
			if err := a.world.emit(events.Hunt, a.subject(), target.subject()); err != nil {
				return 0, false, err
			}
			here, _ := a.Position()
			there, _ := target.Position()
			return here.DirectionTo(there), true, nil
		}
	}
	return components.RandomDirection(a.world.rng), true, nil
}

// predatorEat kills and eats the nearest prey when it is adjacent.
func predatorEat(a *Animal) error {
	p := a.world.params
	target, dist, err := a.nearest(components.KindPrey, p.HuntRange)
	if err != nil || target == nil || dist != 1 {
		return err
	}

	prey := target.subject()
	if err := a.world.emit(events.DieEaten, prey, a.subject()); err != nil {
		return err
	}
	if err := target.Die(); err != nil {
		return err
	}
	if err := a.world.emit(events.EatPrey, a.subject(), prey); err != nil {
		return err
	}
	a.gainEnergy(p.HuntEnergyGain)
	return nil
}

// preyNextMove runs from the nearest predator in range, otherwise wanders.
func preyNextMove(a *Animal) (components.Direction, bool, error) {
	p := a.world.params
	threat, _, err := a.nearest(components.KindPredator, p.FleeRange)
	if err != nil {
		return 0, false, err
	}
	if threat != nil {
		if err := a.world.emit(events.Flee, a.subject(), threat.subject()); err != nil {
			return 0, false, err
		}
		here, _ := a.Position()
		there, _ := threat.Position()
		return here.DirectionFrom(there), true, nil
	}
	return components.RandomDirection(a.world.rng), true, nil
}

// preyGraze gains energy when there is room for a full portion.
func preyGraze(a *Animal) error {
	p := a.world.params
	if a.Energy() >= p.MaxEnergy-p.GrazeEnergyGain {
		return nil
	}
	if err := a.world.emit(events.EatGrass, a.subject()); err != nil {
		return err
	}
	a.gainEnergy(p.GrazeEnergyGain)
	return nil
}

func newOffspring(a *Animal, pos components.Position) (*Animal, error) {
	return NewAnimal(a.world, a.kind, pos)
}

// nearest returns the closest live animal of kind within maxRange (Manhattan).
// Ties go to the animal added first.
func (a *Animal) nearest(kind components.Kind, maxRange int) (*Animal, int, error) {
	here, ok := a.Position()
	if !ok {
		return nil, 0, fmt.Errorf("%w: %s", ErrNoPosition, a.id)
	}

	var best *Animal
	bestDist := 0
	for _, other := range a.world.animals {
		if other.kind != kind || other == a {
			continue
		}
		there, _ := other.Position()
		d := here.DistanceTo(there)
		if d <= maxRange && (best == nil || d < bestDist) {
			best, bestDist = other, d
		}
	}
	return best, bestDist, nil
}
