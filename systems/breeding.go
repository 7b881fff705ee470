package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/quadrisrah/components"
	"github.com/pthm-cable/quadrisrah/config"
)

// Mating records one successful pairing.
type Mating struct {
	A, B      int // registry indices, A < B
	Offspring Spawn
}

// BreedingSystem pairs prey in contact and synthesizes offspring.
type BreedingSystem struct {
	repro     config.ReproductionConfig
	mutation  config.MutationConfig
	genes     config.GeneBoundsConfig
	maxAgents int

	matched []bool
	matings []Mating
}

// NewBreedingSystem creates a breeding system.
func NewBreedingSystem(cfg *config.Config) *BreedingSystem {
	return &BreedingSystem{
		repro:     cfg.Reproduction,
		mutation:  cfg.Mutation,
		genes:     cfg.Genes,
		maxAgents: cfg.Population.MaxAgents,
		matings:   make([]Mating, 0, 16),
	}
}

// canInitiate reports whether a can start a pairing. Only agents below the
// threshold are skipped, so an initiator at exactly the threshold qualifies.
func (s *BreedingSystem) canInitiate(a Agent) bool {
	return a.Org.Kind == components.KindPrey &&
		a.Vitals.Energy >= s.repro.Threshold &&
		a.Vitals.Cooldown <= 0
}

// canAccept reports whether a can be chosen as a partner. Partners must be
// strictly above the threshold.
func (s *BreedingSystem) canAccept(a Agent) bool {
	return a.Org.Kind == components.KindPrey &&
		a.Vitals.Energy > s.repro.Threshold &&
		a.Vitals.Cooldown <= 0
}

// Update runs one reproduction pass in registry order. Each eligible agent i
// pairs with the nearest unmatched eligible agent j > i within mating
// distance. Both parents pay the energy cost and restart their cooldown.
// The returned slice is reused by the next call.
func (s *BreedingSystem) Update(agents []Agent, tick int64, rng *rand.Rand) []Mating {
	s.matings = s.matings[:0]
	if cap(s.matched) < len(agents) {
		s.matched = make([]bool, len(agents))
	}
	s.matched = s.matched[:len(agents)]
	clear(s.matched)

	for i := range agents {
		if s.maxAgents > 0 && len(agents)+len(s.matings) >= s.maxAgents {
			break
		}
		if s.matched[i] || !s.canInitiate(agents[i]) {
			continue
		}

		partner := -1
		nearest := math.Inf(1)
		for j := i + 1; j < len(agents); j++ {
			if s.matched[j] || !s.canAccept(agents[j]) {
				continue
			}
			dist := distance(agents[i].Pos.Vec, agents[j].Pos.Vec)
			if dist < s.repro.MatingDistance && dist < nearest {
				partner = j
				nearest = dist
			}
		}
		if partner < 0 {
			continue
		}

		a, b := agents[i], agents[partner]
		s.matched[i] = true
		s.matched[partner] = true
		a.Vitals.Energy -= s.repro.EnergyCost
		b.Vitals.Energy -= s.repro.EnergyCost
		a.Vitals.Cooldown = s.repro.Cooldown
		b.Vitals.Cooldown = s.repro.Cooldown

		s.matings = append(s.matings, Mating{
			A: i,
			B: partner,
			Offspring: Spawn{
				Pos: a.Pos.Vec,
				Vitals: components.Vitals{
					Energy:   s.repro.OffspringEnergy,
					Cooldown: s.repro.Cooldown,
				},
				Genome:     s.Blend(*a.Genome, *b.Genome, rng),
				Kind:       components.KindPrey,
				Generation: max(a.Org.Generation, b.Org.Generation) + 1,
				BirthTick:  tick,
			},
		})
	}
	return s.matings
}

// Blend averages two parent genomes, mutates each gene independently and
// clamps the result to the gene bounds.
func (s *BreedingSystem) Blend(a, b components.Genome, rng *rand.Rand) components.Genome {
	return components.Genome{
		Speed:  s.genes.Speed.Clamp(s.mutate((a.Speed+b.Speed)/2, rng)),
		Vision: s.genes.Vision.Clamp(s.mutate((a.Vision+b.Vision)/2, rng)),
		Health: s.genes.Health.Clamp(s.mutate((a.Health+b.Health)/2, rng)),
		Damage: s.genes.Damage.Clamp(s.mutate((a.Damage+b.Damage)/2, rng)),
	}
}

// mutate scales v by a factor in [1-spread, 1+spread] with probability rate.
func (s *BreedingSystem) mutate(v float64, rng *rand.Rand) float64 {
	if rng.Float64() >= s.mutation.Rate {
		return v
	}
	factor := 1 + (rng.Float64()*2-1)*s.mutation.Spread
	return v * factor
}
