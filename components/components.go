// Package components defines the value types and ECS components for the simulation.
package components

// Kind identifies which behavior variant an animal belongs to.
type Kind uint8

const (
	KindPrey Kind = iota
	KindPredator
)

// Kinds lists every animal variant in a stable order.
var Kinds = [...]Kind{KindPrey, KindPredator}

// String returns the lowercase name used in logs and CSV output.
func (k Kind) String() string {
	switch k {
	case KindPrey:
		return "prey"
	case KindPredator:
		return "predator"
	}
	return "unknown"
}

// IDPrefix returns the prefix used when numbering animals of this kind.
func (k Kind) IDPrefix() string {
	switch k {
	case KindPrey:
		return "PREY"
	case KindPredator:
		return "PREDATOR"
	}
	return "ANIMAL"
}

// Symbol returns the single glyph used by grid renderers.
func (k Kind) Symbol() rune {
	if k == KindPredator {
		return 'P'
	}
	return 'O'
}
