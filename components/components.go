// Package components defines ECS components for the simulation.
package components

import "gonum.org/v1/gonum/spatial/r2"

// Kind is the behavioral class of an agent.
// The only transition is Prey -> Predator, by infection.
type Kind uint8

const (
	KindPrey     Kind = iota // Valkarai: forages, mates, flees
	KindPredator             // Zombie: hunts and converts prey
)

// String returns the lowercase name used in logs and CSV output.
func (k Kind) String() string {
	switch k {
	case KindPrey:
		return "prey"
	case KindPredator:
		return "predator"
	default:
		return "unknown"
	}
}

// DisplayName returns the in-world name of the kind.
func (k Kind) DisplayName() string {
	switch k {
	case KindPrey:
		return "VALKARAI"
	case KindPredator:
		return "ZOMBIE"
	default:
		return "?"
	}
}

// Position is an agent's continuous grid coordinate.
type Position struct {
	r2.Vec
}

// Vitals tracks metabolic state.
type Vitals struct {
	Energy   float64
	Cooldown float64 // ticks until the agent may mate again
}

// Genome holds heritable traits.
// Health and Damage are inherited and blended but nothing consumes them yet.
type Genome struct {
	Speed  float64
	Vision float64
	Health float64
	Damage float64
}

// Organism bundles identity and kind.
type Organism struct {
	ID         uint32
	Kind       Kind
	Generation uint32
	BirthTick  int64
}
