// Package game owns the simulated world and the driver that steps it.
package game

import (
	"fmt"
	"math/rand"

	"github.com/pthm-cable/quadrisrah/config"
	"github.com/pthm-cable/quadrisrah/systems"
	"github.com/pthm-cable/quadrisrah/telemetry"
)

// PhaseTimer receives a call at the start of each tick phase.
type PhaseTimer interface {
	StartPhase(phase string)
}

// World is the complete simulation state. It is not safe for concurrent use.
type World struct {
	cfg  *config.Config
	seed int64
	rng  *rand.Rand

	terrain *systems.TerrainField
	agents  *systems.AgentRegistry

	behavior   *systems.BehaviorSystem
	movement   *systems.MovementSystem
	metabolism *systems.MetabolismSystem
	breeding   *systems.BreedingSystem
	infections *systems.InfectionQueue

	tick   int64
	events []telemetry.Event
	timer  PhaseTimer
}

// NewWorld builds a world from the configured grid size and population.
func NewWorld(cfg *config.Config, seed int64) (*World, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", config.ErrInvalid)
	}
	return NewWorldWithSize(cfg, seed, cfg.World.GridSize, cfg.Population.InitialPrey)
}

// NewWorldWithSize builds a world with an explicit grid size and initial prey
// count. Terrain comes from noise seeded with seed; the same seed drives every
// later random draw, so equal inputs give equal runs.
func NewWorldWithSize(cfg *config.Config, seed int64, gridSize, prey int) (*World, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", config.ErrInvalid)
	}
	c := *cfg
	c.World.GridSize = gridSize
	c.Population.InitialPrey = prey
	if err := c.Validate(); err != nil {
		return nil, err
	}

	noise := systems.NewFractalNoise(seed, c.Terrain.Octaves, c.Terrain.Lacunarity, c.Terrain.Gain)
	terrain, err := systems.NewTerrainField(gridSize, noise, c.Terrain, c.Food)
	if err != nil {
		return nil, fmt.Errorf("generating terrain: %w", err)
	}

	w := newWorld(&c, seed, terrain)
	if err := w.placeFounders(); err != nil {
		return nil, err
	}
	return w, nil
}

// newWorld wires the systems around an existing terrain without placing agents.
func newWorld(cfg *config.Config, seed int64, terrain *systems.TerrainField) *World {
	return &World{
		cfg:        cfg,
		seed:       seed,
		rng:        rand.New(rand.NewSource(seed)),
		terrain:    terrain,
		agents:     systems.NewAgentRegistry(),
		behavior:   systems.NewBehaviorSystem(terrain, cfg),
		movement:   systems.NewMovementSystem(terrain, cfg.Movement),
		metabolism: systems.NewMetabolismSystem(terrain, cfg),
		breeding:   systems.NewBreedingSystem(cfg),
		infections: systems.NewInfectionQueue(),
		events:     make([]telemetry.Event, 0, 64),
	}
}

// Tick returns the number of completed steps.
func (w *World) Tick() int64 {
	return w.tick
}

// Seed returns the seed the world was built from.
func (w *World) Seed() int64 {
	return w.seed
}

// Size returns the number of cells per side.
func (w *World) Size() int {
	return w.terrain.Size()
}

// Counts returns the number of live prey and predators.
func (w *World) Counts() (prey, pred int) {
	return w.agents.Counts()
}

// Len returns the number of live agents.
func (w *World) Len() int {
	return w.agents.Len()
}

// TotalFood returns the food held by all cells.
func (w *World) TotalFood() float64 {
	return w.terrain.TotalFood()
}

// Events returns the telemetry events of the last step.
// The slice is reused by the next step.
func (w *World) Events() []telemetry.Event {
	return w.events
}

// SetPhaseTimer installs a timer notified at each tick phase. nil disables it.
func (w *World) SetPhaseTimer(t PhaseTimer) {
	w.timer = t
}

func (w *World) phase(name string) {
	if w.timer != nil {
		w.timer.StartPhase(name)
	}
}
