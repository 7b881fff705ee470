package systems

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/quadrisrah/components"
	"github.com/pthm-cable/quadrisrah/config"
)

// MovementSystem applies desired displacements against terrain obstacles.
type MovementSystem struct {
	terrain    *TerrainField
	direEnergy float64
}

// NewMovementSystem creates a movement system over a terrain field.
func NewMovementSystem(terrain *TerrainField, cfg config.MovementConfig) *MovementSystem {
	return &MovementSystem{
		terrain:    terrain,
		direEnergy: cfg.DireEnergy,
	}
}

// CanStandAt reports whether an agent may occupy p. Ocean blocks everyone.
// Desert blocks prey unless it is starving or fleeing.
func (s *MovementSystem) CanStandAt(p r2.Vec, kind components.Kind, energy float64, fleeing bool) bool {
	switch s.terrain.TerrainAt(p) {
	case TerrainOcean:
		return false
	case TerrainDesert:
		if kind == components.KindPredator {
			return true
		}
		return fleeing || energy < s.direEnergy
	default:
		return true
	}
}

// Resolve returns the position reached from pos when trying to move by
// desired. A blocked move slides along X, then along Y, and otherwise stays
// put. The result is always inside the grid.
func (s *MovementSystem) Resolve(pos, desired r2.Vec, kind components.Kind, energy float64, fleeing bool) r2.Vec {
	f := s.terrain
	if r2.Norm(desired) <= nearZero {
		return f.ClampPos(pos)
	}

	candidates := [...]r2.Vec{
		r2.Add(pos, desired),
		{X: pos.X + desired.X, Y: pos.Y},
		{X: pos.X, Y: pos.Y + desired.Y},
	}
	for _, c := range candidates {
		c = f.ClampPos(c)
		if s.CanStandAt(c, kind, energy, fleeing) {
			return c
		}
	}
	return f.ClampPos(pos)
}

// Apply moves an agent in place according to its decision.
func (s *MovementSystem) Apply(a Agent, d Decision) {
	a.Pos.Vec = s.Resolve(a.Pos.Vec, d.Desired, a.Org.Kind, a.Vitals.Energy, d.Fleeing())
}
