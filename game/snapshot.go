package game

import (
	"github.com/pthm-cable/quadrisrah/components"
	"github.com/pthm-cable/quadrisrah/systems"
)

// AgentState is a copy of one agent's state.
type AgentState struct {
	ID         uint32
	Kind       components.Kind
	X, Y       float64
	Energy     float64
	Cooldown   float64
	Genome     components.Genome
	Generation uint32
	BirthTick  int64
}

// Snapshot is a deep copy of the world for renderers and tools.
// Changing it never affects the world it came from.
type Snapshot struct {
	Tick      int64
	Size      int
	Cells     []systems.Cell // row-major, index y*Size + x
	Agents    []AgentState   // registry order
	Prey      int
	Predators int
	TotalFood float64
}

// Cell returns the cell at (x, y).
func (s Snapshot) Cell(x, y int) systems.Cell {
	return s.Cells[y*s.Size+x]
}

// Snapshot copies the current state.
func (w *World) Snapshot() Snapshot {
	agents := w.agents.View()
	snap := Snapshot{
		Tick:   w.tick,
		Size:   w.terrain.Size(),
		Cells:  w.terrain.CopyCells(),
		Agents: make([]AgentState, len(agents)),
	}

	for i, a := range agents {
		snap.Agents[i] = AgentState{
			ID:         a.Org.ID,
			Kind:       a.Org.Kind,
			X:          a.Pos.X,
			Y:          a.Pos.Y,
			Energy:     a.Vitals.Energy,
			Cooldown:   a.Vitals.Cooldown,
			Genome:     *a.Genome,
			Generation: a.Org.Generation,
			BirthTick:  a.Org.BirthTick,
		}
		if a.Org.Kind == components.KindPredator {
			snap.Predators++
		} else {
			snap.Prey++
		}
	}
	for _, c := range snap.Cells {
		snap.TotalFood += c.Food
	}
	return snap
}
