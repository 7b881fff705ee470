package game

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/quadrisrah/components"
	"github.com/pthm-cable/quadrisrah/config"
	"github.com/pthm-cable/quadrisrah/systems"
	"github.com/pthm-cable/quadrisrah/telemetry"
)

// placeFounders creates the initial prey, then the initial predators, each at
// a random point inside a uniformly chosen passable cell.
func (w *World) placeFounders() error {
	pop := w.cfg.Population
	if pop.InitialPrey+pop.InitialPredators == 0 {
		return nil
	}

	cells := w.terrain.PassableCells()
	if len(cells) == 0 {
		return fmt.Errorf("%w: terrain has no passable cell for %d agents",
			config.ErrInvalid, pop.InitialPrey+pop.InitialPredators)
	}

	for i := 0; i < pop.InitialPrey; i++ {
		w.spawnFounder(cells, components.KindPrey, w.cfg.Prey)
	}
	for i := 0; i < pop.InitialPredators; i++ {
		w.spawnFounder(cells, components.KindPredator, w.cfg.Predator)
	}
	return nil
}

// spawnFounder inserts one generation-zero agent.
func (w *World) spawnFounder(cells []int, kind components.Kind, fc config.FounderConfig) {
	size := w.terrain.Size()
	idx := cells[w.rng.Intn(len(cells))]
	pos := r2.Vec{
		X: float64(idx%size) + w.rng.Float64(),
		Y: float64(idx/size) + w.rng.Float64(),
	}

	w.agents.Insert(systems.Spawn{
		Pos:    w.terrain.ClampPos(pos),
		Vitals: components.Vitals{Energy: fc.Energy},
		Genome: components.Genome{
			Speed:  uniform(w.rng.Float64(), fc.SpeedMin, fc.SpeedMax),
			Vision: uniform(w.rng.Float64(), fc.VisionMin, fc.VisionMax),
			Health: fc.Health,
			Damage: fc.Damage,
		},
		Kind: kind,
	})
}

// uniform maps u in [0, 1) onto [lo, hi).
func uniform(u, lo, hi float64) float64 {
	return lo + u*(hi-lo)
}

// commit appends newborns and prunes agents without energy. Parent IDs are
// read before the registry changes shape.
func (w *World) commit(agents []systems.Agent, matings []systems.Mating) {
	type birth struct {
		spawn    systems.Spawn
		parentID uint32
	}
	births := make([]birth, 0, len(matings))
	for _, m := range matings {
		a, b := agents[m.A].Org.ID, agents[m.B].Org.ID
		w.events = append(w.events, telemetry.NewMatingEvent(w.tick, a, b))
		births = append(births, birth{spawn: m.Offspring, parentID: a})
	}

	for _, b := range births {
		id := w.agents.Insert(b.spawn)
		w.events = append(w.events, telemetry.NewBirthEvent(w.tick, id, b.parentID, b.spawn.Generation))
	}

	for _, org := range w.agents.Prune() {
		w.events = append(w.events, telemetry.NewDeathEvent(w.tick, org.ID, org.Kind))
	}
}
