package systems

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/quadrisrah/components"
	"github.com/pthm-cable/quadrisrah/config"
)

// Intent is the behavior an agent chose for the current tick.
type Intent uint8

const (
	IntentWander Intent = iota
	IntentSeekFood
	IntentSeekMate
	IntentFlee
	IntentPursue // predators only
)

// String returns the intent name.
func (i Intent) String() string {
	switch i {
	case IntentWander:
		return "wander"
	case IntentSeekFood:
		return "food"
	case IntentSeekMate:
		return "mate"
	case IntentFlee:
		return "flee"
	case IntentPursue:
		return "pursue"
	default:
		return "unknown"
	}
}

// Decision is the outcome of behavior selection for one agent.
type Decision struct {
	Intent  Intent
	Target  r2.Vec // food cell centre, mate, prey, or the threat when fleeing
	Desired r2.Vec // displacement to hand to the movement resolver
}

// Fleeing reports whether the agent is escaping a threat this tick.
func (d Decision) Fleeing() bool {
	return d.Intent == IntentFlee
}

// BehaviorSystem selects what each agent does on a tick and how far it wants
// to move. Agents are scanned against the live registry view, so positions
// already updated earlier in the tick are observed.
type BehaviorSystem struct {
	terrain   *TerrainField
	behavior  config.BehaviorConfig
	repro     config.ReproductionConfig
	infection config.InfectionConfig
}

// NewBehaviorSystem creates a behavior system over a terrain field.
func NewBehaviorSystem(terrain *TerrainField, cfg *config.Config) *BehaviorSystem {
	return &BehaviorSystem{
		terrain:   terrain,
		behavior:  cfg.Behavior,
		repro:     cfg.Reproduction,
		infection: cfg.Infection,
	}
}

// Decide computes agent i's decision. Predators record prey in contact with
// them on the infection queue; nothing else is mutated except a predator's
// cooldown when infections respect it.
func (s *BehaviorSystem) Decide(i int, agents []Agent, rng *rand.Rand, infections *InfectionQueue) Decision {
	self := agents[i]
	speed := self.Genome.Speed * s.terrain.SpeedAt(self.Pos.Vec)

	var d Decision
	switch self.Org.Kind {
	case components.KindPredator:
		d = s.decidePredator(i, agents, infections)
	default:
		d = s.decidePrey(i, agents)
	}

	switch d.Intent {
	case IntentFlee:
		away := r2.Sub(self.Pos.Vec, d.Target)
		d.Desired = scaledUnit(away, speed*s.behavior.FleeSpeedFactor)
	case IntentWander:
		angle := rng.Float64() * 2 * math.Pi
		dir := r2.Vec{X: math.Cos(angle), Y: math.Sin(angle)}
		d.Desired = r2.Scale(speed*s.behavior.WanderSpeedFactor, dir)
	default:
		toward := r2.Sub(d.Target, self.Pos.Vec)
		if r2.Norm(toward) > s.behavior.ArriveDistance {
			d.Desired = scaledUnit(toward, speed)
		}
	}
	return d
}

// decidePredator pursues the nearest visible prey and tags every prey within
// contact distance for infection.
func (s *BehaviorSystem) decidePredator(i int, agents []Agent, infections *InfectionQueue) Decision {
	self := agents[i]
	canInfect := !s.infection.RespectCooldown || self.Vitals.Cooldown <= 0

	nearest := -1
	nearestDist := math.Inf(1)
	tagged := false
	for j, other := range agents {
		if j == i || other.Org.Kind != components.KindPrey {
			continue
		}
		dist := distance(self.Pos.Vec, other.Pos.Vec)
		if dist < self.Genome.Vision && dist < nearestDist {
			nearest = j
			nearestDist = dist
		}
		if canInfect && dist < s.repro.MatingDistance {
			infections.Mark(j)
			tagged = true
		}
	}

	if tagged && s.infection.RespectCooldown {
		self.Vitals.Cooldown = s.infection.Cooldown
	}
	if nearest < 0 {
		return Decision{Intent: IntentWander}
	}
	return Decision{Intent: IntentPursue, Target: agents[nearest].Pos.Vec}
}

// decidePrey applies flee, mate, food, wander in priority order.
func (s *BehaviorSystem) decidePrey(i int, agents []Agent) Decision {
	self := agents[i]

	if threat, ok := s.nearestThreat(i, agents); ok {
		return Decision{Intent: IntentFlee, Target: threat}
	}
	if s.readyToMate(self) {
		if mate, ok := s.nearestMate(i, agents); ok {
			return Decision{Intent: IntentSeekMate, Target: mate}
		}
	}
	if food, ok := s.bestFood(self); ok {
		return Decision{Intent: IntentSeekFood, Target: food}
	}
	return Decision{Intent: IntentWander}
}

// nearestThreat finds the closest predator inside the flee radius.
func (s *BehaviorSystem) nearestThreat(i int, agents []Agent) (r2.Vec, bool) {
	self := agents[i]
	radius := self.Genome.Vision * s.behavior.FleeVisionFactor

	best := -1
	bestDist := math.Inf(1)
	for j, other := range agents {
		if j == i || other.Org.Kind != components.KindPredator {
			continue
		}
		dist := distance(self.Pos.Vec, other.Pos.Vec)
		if dist < radius && dist < bestDist {
			best = j
			bestDist = dist
		}
	}
	if best < 0 {
		return r2.Vec{}, false
	}
	return agents[best].Pos.Vec, true
}

func (s *BehaviorSystem) readyToMate(a Agent) bool {
	return a.Org.Kind == components.KindPrey &&
		a.Vitals.Energy > s.repro.Threshold &&
		a.Vitals.Cooldown <= 0
}

// nearestMate finds the closest other prey that is itself ready to mate.
func (s *BehaviorSystem) nearestMate(i int, agents []Agent) (r2.Vec, bool) {
	self := agents[i]
	radius := self.Genome.Vision * s.behavior.MateVisionFactor

	best := -1
	bestDist := math.Inf(1)
	for j, other := range agents {
		if j == i || !s.readyToMate(other) {
			continue
		}
		dist := distance(self.Pos.Vec, other.Pos.Vec)
		if dist < radius && dist < bestDist {
			best = j
			bestDist = dist
		}
	}
	if best < 0 {
		return r2.Vec{}, false
	}
	return agents[best].Pos.Vec, true
}

// bestFood scans the square of cells within floor(vision) of the agent's cell
// and returns the centre of the food cell with the lowest score. Ocean is
// never considered; desert scores are inflated by the desert penalty.
func (s *BehaviorSystem) bestFood(a Agent) (r2.Vec, bool) {
	f := s.terrain
	cx, cy := f.CellOf(a.Pos.Vec)
	r := int(math.Floor(a.Genome.Vision))

	x0, x1 := f.clampIndex(cx-r), f.clampIndex(cx+r)
	y0, y1 := f.clampIndex(cy-r), f.clampIndex(cy+r)

	found := false
	bestScore := math.Inf(1)
	var best r2.Vec
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			cell := f.cells[y*f.size+x]
			if cell.Food <= 0 || cell.Terrain == TerrainOcean {
				continue
			}
			centre := f.ClampPos(r2.Vec{X: float64(x) + 0.5, Y: float64(y) + 0.5})
			score := distance(a.Pos.Vec, centre)
			if cell.Terrain == TerrainDesert {
				score *= s.behavior.DesertPenalty
			}
			if score < bestScore {
				bestScore = score
				best = centre
				found = true
			}
		}
	}
	return best, found
}
