// Package world implements the grid-backed simulation engine: placement, removal,
// turn advancement and event emission for predators and prey.
package world

import (
	"fmt"
	"log/slog"
	"math/rand"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/wildloop/components"
	"github.com/pthm-cable/wildloop/events"
)

// Census counts live animals per kind.
type Census struct {
	Prey      int
	Predators int
}

// Total returns the number of live animals.
func (c Census) Total() int { return c.Prey + c.Predators }

// Option configures a World.
type Option func(*World)

// WithRand sets the random source used for wandering.
func WithRand(rng *rand.Rand) Option {
	return func(w *World) { w.rng = rng }
}

// WithBus publishes events to an existing bus instead of a private one.
func WithBus(bus *events.Bus) Option {
	return func(w *World) { w.bus = bus }
}

// WithLogger sets the logger used for corruption reports.
func WithLogger(l *slog.Logger) Option {
	return func(w *World) { w.logger = l }
}

// World owns the grid, the live animal list and the turn counter.
// It is not safe for concurrent use.
type World struct {
	id     string
	width  int
	height int
	params Params
	turn   int

	rng      *rand.Rand
	bus      *events.Bus
	logger   *slog.Logger
	observer StepObserver

	// Animal arena. Each live animal is one entity.
	ecs     *ecs.World
	spawner *ecs.Map3[components.Position, components.Vitals, components.Organism]
	posMap  *ecs.Map1[components.Position]
	vitals  *ecs.Map1[components.Vitals]
	census  *ecs.Filter2[components.Organism, components.Vitals]

	grid    []ecs.Entity // width*height, row-major; zero entity = empty
	animals []*Animal    // insertion order
	handles map[ecs.Entity]*Animal

	counters [len(components.Kinds)]int
}

// New creates an empty world of the given size. The turn counter starts at 1.
func New(width, height int, params Params, opts ...Option) (*World, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: world size %dx%d", ErrInvalidArgument, width, height)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	arena := ecs.NewWorld()
	w := &World{
		id:      uuid.NewString(),
		width:   width,
		height:  height,
		params:  params,
		turn:    1,
		ecs:     arena,
		spawner: ecs.NewMap3[components.Position, components.Vitals, components.Organism](arena),
		posMap:  ecs.NewMap1[components.Position](arena),
		vitals:  ecs.NewMap1[components.Vitals](arena),
		census:  ecs.NewFilter2[components.Organism, components.Vitals](arena),
		grid:    make([]ecs.Entity, width*height),
		handles: make(map[ecs.Entity]*Animal),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.rng == nil {
		w.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if w.bus == nil {
		w.bus = events.NewBus()
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}
	return w, nil
}

func (w *World) ID() string       { return w.id }
func (w *World) Width() int       { return w.width }
func (w *World) Height() int      { return w.height }
func (w *World) Turn() int        { return w.turn }
func (w *World) Params() Params   { return w.params }
func (w *World) Bus() *events.Bus { return w.bus }

// IsValidPosition reports whether p lies inside the grid.
func (w *World) IsValidPosition(p components.Position) bool {
	return p.X >= 0 && p.X < w.width && p.Y >= 0 && p.Y < w.height
}

// IsCellEmpty reports whether p is inside the grid and unoccupied.
func (w *World) IsCellEmpty(p components.Position) bool {
	return w.IsValidPosition(p) && w.grid[w.index(p)].IsZero()
}

// At returns the animal occupying p, if any.
func (w *World) At(p components.Position) (*Animal, bool) {
	if !w.IsValidPosition(p) {
		return nil, false
	}
	e := w.grid[w.index(p)]
	if e.IsZero() {
		return nil, false
	}
	a, ok := w.handles[e]
	return a, ok
}

// Animals returns a copy of the live animal list in insertion order.
func (w *World) Animals() []*Animal {
	return slices.Clone(w.animals)
}

// Grid returns a column-major copy of the grid, indexed grid[x][y].
func (w *World) Grid() [][]*Animal {
	out := make([][]*Animal, w.width)
	for x := range out {
		out[x] = make([]*Animal, w.height)
		for y := range out[x] {
			if e := w.grid[y*w.width+x]; !e.IsZero() {
				out[x][y] = w.handles[e]
			}
		}
	}
	return out
}

// AddAnimal places a at its position, appends it to the live list and emits Spawn.
// All checks run before any state changes.
func (w *World) AddAnimal(a *Animal) error {
	if a == nil {
		return fmt.Errorf("%w: nil animal", ErrInvalidArgument)
	}
	if a.world != nil {
		return fmt.Errorf("%w: %s already belongs to a world", ErrInvalidState, a.id)
	}
	if a.dead {
		return fmt.Errorf("%w: %s is dead", ErrInvalidState, a.id)
	}
	if !a.hasPos || !w.IsValidPosition(a.pos) {
		return fmt.Errorf("%w: %s at %s in %dx%d world", ErrOutOfBounds, a.id, a.describePos(), w.width, w.height)
	}
	if !w.IsCellEmpty(a.pos) {
		return fmt.Errorf("%w: %s", ErrCellOccupied, a.pos)
	}

	pos := a.pos
	vitals := a.state
	org := components.Organism{ID: a.id, Kind: a.kind}
	e := w.spawner.NewEntity(&pos, &vitals, &org)

	w.grid[w.index(pos)] = e
	w.animals = append(w.animals, a)
	w.handles[e] = a
	a.world = w
	a.entity = e

	return w.emit(events.Spawn, a.subject())
}

// RemoveAnimal detaches a from the grid and live list, clears its position and sets its energy to -1.
func (w *World) RemoveAnimal(a *Animal) error {
	if a == nil {
		return fmt.Errorf("%w: nil animal", ErrInvalidArgument)
	}
	idx := slices.Index(w.animals, a)
	if a.world != w || idx < 0 {
		return w.corrupt(fmt.Errorf("%w: %s", ErrNotTracked, a.id))
	}
	pos := *w.posMap.Get(a.entity)
	if w.grid[w.index(pos)] != a.entity {
		return w.corrupt(fmt.Errorf("%w: %s at %s", ErrGridMismatch, a.id, pos))
	}

	w.grid[w.index(pos)] = ecs.Entity{}
	w.animals = slices.Delete(w.animals, idx, idx+1)
	w.release(a)
	a.state.Energy = -1
	return nil
}

// Tick advances the world by one turn. Every animal alive at the start of the turn
// updates once in insertion order; animals born during the turn wait for the next one.
// The first update error ends the turn early and animals later in the order skip
// their update. The Turn event and the counter increment still happen.
func (w *World) Tick() error {
	snapshot := slices.Clone(w.animals)

	var updateErr error
	for _, a := range snapshot {
		if err := a.Update(); err != nil {
			updateErr = fmt.Errorf("turn %d: %w", w.turn, err)
			break
		}
	}

	err := w.emit(events.Turn)
	w.turn++
	if updateErr != nil {
		return updateErr
	}
	return err
}

// Reset clears the grid and live list and sets the turn counter back to 1.
// Removed animals keep their energy and age but lose their position.
func (w *World) Reset() {
	for _, a := range w.animals {
		w.release(a)
	}
	clear(w.grid)
	w.animals = nil
	w.turn = 1
}

// Subscribe registers a listener for every event this world emits.
func (w *World) Subscribe(fn events.Listener) events.SubscriptionID {
	return w.bus.Subscribe(fn)
}

// Unsubscribe removes a listener.
func (w *World) Unsubscribe(id events.SubscriptionID) bool {
	return w.bus.Unsubscribe(id)
}

// Announce publishes a simulation lifecycle event on behalf of a driver.
// Animal events can only be produced by the engine itself.
func (w *World) Announce(kind events.Kind) error {
	if !kind.IsLifecycle() {
		return fmt.Errorf("%w: %s is not a lifecycle event", ErrInvalidArgument, kind)
	}
	return w.emit(kind)
}

// Census counts live animals per kind.
func (w *World) Census() Census {
	var c Census
	q := w.census.Query()
	for q.Next() {
		org, _ := q.Get()
		switch org.Kind {
		case components.KindPrey:
			c.Prey++
		case components.KindPredator:
			c.Predators++
		}
	}
	return c
}

// Energies returns the current energy of every live animal of the given kind.
func (w *World) Energies(kind components.Kind) []float64 {
	var out []float64
	q := w.census.Query()
	for q.Next() {
		org, v := q.Get()
		if org.Kind == kind {
			out = append(out, float64(v.Energy))
		}
	}
	return out
}

func (w *World) index(p components.Position) int {
	return p.Y*w.width + p.X
}

// release copies an animal's state out of the arena and deletes its entity.
func (w *World) release(a *Animal) {
	a.state = *w.vitals.Get(a.entity)
	delete(w.handles, a.entity)
	w.ecs.RemoveEntity(a.entity)
	a.entity = ecs.Entity{}
	a.world = nil
	a.hasPos = false
}

// relocate moves an attached animal to an empty cell.
func (w *World) relocate(a *Animal, to components.Position) {
	pos := w.posMap.Get(a.entity)
	w.grid[w.index(*pos)] = ecs.Entity{}
	w.grid[w.index(to)] = a.entity
	*pos = to
}

func (w *World) nextID(kind components.Kind) string {
	w.counters[kind]++
	return fmt.Sprintf("%s-%d", kind.IDPrefix(), w.counters[kind])
}

func (w *World) emit(kind events.Kind, subjects ...events.Subject) error {
	e, err := events.New(kind, w.id, w.turn, subjects...)
	if err != nil {
		return err
	}
	w.bus.Publish(e)
	return nil
}

func (w *World) corrupt(err error) error {
	w.logger.Error("world invariant violated", "world", w.id, "turn", w.turn, "error", err)
	return err
}
