package systems

import (
	"github.com/pthm-cable/quadrisrah/components"
	"github.com/pthm-cable/quadrisrah/config"
)

// MetabolismSystem drains prey energy every tick and lets them eat from the
// cell they stand on. Predators neither spend nor eat.
type MetabolismSystem struct {
	terrain *TerrainField
	cfg     config.MetabolismConfig
	food    config.FoodConfig
}

// NewMetabolismSystem creates a metabolism system over a terrain field.
func NewMetabolismSystem(terrain *TerrainField, cfg *config.Config) *MetabolismSystem {
	return &MetabolismSystem{
		terrain: terrain,
		cfg:     cfg.Metabolism,
		food:    cfg.Food,
	}
}

// Cost returns the per-tick energy cost of a genome.
func (s *MetabolismSystem) Cost(g components.Genome) float64 {
	return s.cfg.BaseCost + g.Vision*s.cfg.VisionCost + g.Speed*s.cfg.SpeedCost
}

// Update charges the agent's upkeep and feeds it from its current cell.
// Returns the amount of food eaten.
func (s *MetabolismSystem) Update(a Agent) float64 {
	if a.Org.Kind != components.KindPrey {
		return 0
	}

	a.Vitals.Energy -= s.Cost(*a.Genome)

	if a.Vitals.Energy >= s.cfg.Satiation {
		return 0
	}
	x, y := s.terrain.CellOf(a.Pos.Vec)
	eaten := s.terrain.Consume(x, y, s.food.BiteSize)
	a.Vitals.Energy += eaten * s.food.Conversion
	return eaten
}
