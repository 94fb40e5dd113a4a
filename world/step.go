package world

import (
	"time"

	"github.com/pthm-cable/wildloop/components"
)

// Step is one stage of an animal's turn.
type Step uint8

const (
	StepMove Step = iota
	StepEat
	StepReproduce
	StepDeath
)

// Steps lists every step in the order an update runs them.
var Steps = [...]Step{StepMove, StepEat, StepReproduce, StepDeath}

func (s Step) String() string {
	switch s {
	case StepMove:
		return "move"
	case StepEat:
		return "eat"
	case StepReproduce:
		return "reproduce"
	case StepDeath:
		return "death"
	}
	return "unknown"
}

// StepObserver receives the wall time one animal spent in one step of its update.
// The second eat of a turn is reported as its own StepEat.
type StepObserver func(kind components.Kind, step Step, d time.Duration)

// WithStepObserver reports the duration of every update step to fn.
func WithStepObserver(fn StepObserver) Option {
	return func(w *World) { w.observer = fn }
}

// stepClock times update steps when an observer is set and costs nothing otherwise.
type stepClock struct {
	kind    components.Kind
	observe StepObserver
	start   time.Time
}

func (c *stepClock) begin() {
	if c.observe != nil {
		c.start = time.Now()
	}
}

// end reports the step started by begin and passes err through.
func (c *stepClock) end(step Step, err error) error {
	if c.observe != nil {
		c.observe(c.kind, step, time.Since(c.start))
	}
	return err
}
