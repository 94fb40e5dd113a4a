package world

import (
	"fmt"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/wildloop/components"
	"github.com/pthm-cable/wildloop/events"
)

// Animal is a predator or prey. While attached to a world its position and vitals
// live in the world's arena; once removed they are kept on the struct.
type Animal struct {
	id        string
	kind      components.Kind
	maxAge    int
	maxEnergy int

	world  *World
	entity ecs.Entity
	dead   bool

	// Detached state.
	state  components.Vitals
	pos    components.Position
	hasPos bool
}

// NewAnimal creates an animal of the given kind with default energy and inserts it
// into w at pos. On failure w is left unchanged.
func NewAnimal(w *World, kind components.Kind, pos components.Position) (*Animal, error) {
	if w == nil {
		return nil, fmt.Errorf("%w: nil world", ErrInvalidArgument)
	}
	if kind != components.KindPrey && kind != components.KindPredator {
		return nil, fmt.Errorf("%w: unknown kind %d", ErrInvalidArgument, kind)
	}
	if !w.IsValidPosition(pos) {
		return nil, fmt.Errorf("%w: %s in %dx%d world", ErrOutOfBounds, pos, w.width, w.height)
	}
	if !w.IsCellEmpty(pos) {
		return nil, fmt.Errorf("%w: %s", ErrCellOccupied, pos)
	}

	a := &Animal{
		id:        w.nextID(kind),
		kind:      kind,
		maxAge:    w.params.MaxAge(kind),
		maxEnergy: w.params.MaxEnergy,
		state:     components.Vitals{Energy: w.params.DefaultEnergy},
		pos:       pos,
		hasPos:    true,
	}
	if err := w.AddAnimal(a); err != nil {
		return nil, err
	}
	return a, nil
}

// NewPrey creates a prey at pos.
func NewPrey(w *World, pos components.Position) (*Animal, error) {
	return NewAnimal(w, components.KindPrey, pos)
}

// NewPredator creates a predator at pos.
func NewPredator(w *World, pos components.Position) (*Animal, error) {
	return NewAnimal(w, components.KindPredator, pos)
}

func (a *Animal) ID() string            { return a.id }
func (a *Animal) Kind() components.Kind { return a.kind }
func (a *Animal) MaxAge() int           { return a.maxAge }
func (a *Animal) IsDead() bool          { return a.dead }

// World returns the owning world, or nil once the animal has been removed.
func (a *Animal) World() *World { return a.world }

// Position returns the current cell. ok is false once the animal has left the world.
func (a *Animal) Position() (pos components.Position, ok bool) {
	if a.world != nil {
		return *a.world.posMap.Get(a.entity), true
	}
	return a.pos, a.hasPos
}

func (a *Animal) Energy() int { return a.vitalsView().Energy }
func (a *Animal) Age() int    { return a.vitalsView().Age }

// SetEnergy sets energy, clamped to the world's maximum.
// A dead animal keeps its -1 energy.
func (a *Animal) SetEnergy(v int) {
	if a.dead {
		return
	}
	a.vitalsRef().Energy = min(v, a.maxEnergy)
}

// Snapshot captures the animal's state for display.
func (a *Animal) Snapshot() components.Snapshot {
	pos, ok := a.Position()
	return components.Snapshot{
		Organism:  components.Organism{ID: a.id, Kind: a.kind},
		Vitals:    a.vitalsView(),
		Position:  pos,
		Placed:    ok,
		MaxAge:    a.maxAge,
		MaxEnergy: a.maxEnergy,
		Dead:      a.dead,
	}
}

func (a *Animal) String() string {
	return a.id
}

// Update runs one turn of the animal's life: age, move, eat, reproduce or eat again,
// then the energy and age death checks. It does nothing once the animal is detached.
func (a *Animal) Update() error {
	if a.world == nil {
		return nil
	}
	p := a.world.params
	b := behaviorFor(a.kind)
	clk := stepClock{kind: a.kind, observe: a.world.observer}

	a.vitalsRef().Age++

	clk.begin()
	if err := clk.end(StepMove, a.move(b)); err != nil {
		return err
	}
	clk.begin()
	if err := clk.end(StepEat, b.eat(a)); err != nil {
		return err
	}
	clk.begin()
	if a.Energy() >= p.ReproductionThreshold {
		if err := clk.end(StepReproduce, a.reproduce(b)); err != nil {
			return err
		}
	} else if err := clk.end(StepEat, b.eat(a)); err != nil {
		return err
	}

	clk.begin()
	return clk.end(StepDeath, a.checkDeath())
}

// checkDeath applies the energy death, then the age death.
func (a *Animal) checkDeath() error {
	if a.Energy() <= 0 && !a.dead {
		if err := a.world.emit(events.DieEnergy, a.subject()); err != nil {
			return err
		}
		if err := a.Die(); err != nil {
			return err
		}
	}
	if a.Age() >= a.maxAge && !a.dead {
		if err := a.world.emit(events.DieAge, a.subject()); err != nil {
			return err
		}
		if err := a.Die(); err != nil {
			return err
		}
	}
	return nil
}

// Die removes the animal from its world and marks it dead. Dying twice is a no-op.
func (a *Animal) Die() error {
	if a.dead {
		return nil
	}
	if a.world == nil {
		return fmt.Errorf("%w: %s", ErrDetached, a.id)
	}
	if err := a.world.RemoveAnimal(a); err != nil {
		return err
	}
	a.state.Energy = -1
	a.dead = true
	return nil
}

func (a *Animal) move(b behavior) error {
	dir, ok, err := b.nextMove(a)
	if err != nil || !ok {
		return err
	}
	from, _ := a.Position()
	to := from.Step(dir)
	if !a.world.IsCellEmpty(to) {
		return nil
	}

	a.world.relocate(a, to)
	if err := a.world.emit(events.Move, a.subject()); err != nil {
		return err
	}
	v := a.vitalsRef()
	v.Energy = subSaturating(v.Energy, a.world.params.MoveEnergyCost)
	return nil
}

// reproduce places one offspring in the first empty neighbor (N, E, S, W) when
// energy has reached the threshold. Without a free cell nothing happens.
func (a *Animal) reproduce(b behavior) error {
	p := a.world.params
	if a.Energy() < p.ReproductionThreshold {
		return nil
	}
	here, ok := a.Position()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoPosition, a.id)
	}

	for _, d := range components.Directions {
		cell := here.Step(d)
		if !a.world.IsCellEmpty(cell) {
			continue
		}
		child, err := b.offspring(a, cell)
		if err != nil {
			return err
		}
		child.SetEnergy(p.OffspringEnergy)
		if err := a.world.emit(events.Reproduce, a.subject(), child.subject()); err != nil {
			return err
		}
		v := a.vitalsRef()
		v.Energy = subSaturating(v.Energy, p.ReproductionCost)
		return nil
	}
	return nil
}

func (a *Animal) gainEnergy(amount int) {
	v := a.vitalsRef()
	v.Energy = min(v.Energy+amount, a.maxEnergy)
}

func (a *Animal) subject() events.Subject {
	pos, _ := a.Position()
	return events.Subject{ID: a.id, Kind: a.kind, Position: pos}
}

func (a *Animal) describePos() string {
	if !a.hasPos {
		return "no position"
	}
	return a.pos.String()
}

// vitalsRef returns a pointer that is valid until the next entity is created or removed.
func (a *Animal) vitalsRef() *components.Vitals {
	if a.world != nil {
		return a.world.vitals.Get(a.entity)
	}
	return &a.state
}

func (a *Animal) vitalsView() components.Vitals {
	return *a.vitalsRef()
}

func subSaturating(v, cost int) int {
	if cost > 0 && v < math.MinInt+cost {
		return math.MinInt
	}
	return v - cost
}
