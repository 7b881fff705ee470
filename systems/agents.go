package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/quadrisrah/components"
)

// Agent is a view of one live agent's components.
// The pointers are only valid until the next structural change
// (Insert or Prune) on the registry.
type Agent struct {
	Entity ecs.Entity
	Pos    *components.Position
	Vitals *components.Vitals
	Genome *components.Genome
	Org    *components.Organism
}

// Spawn describes an agent to be inserted.
type Spawn struct {
	Pos        r2.Vec
	Vitals     components.Vitals
	Genome     components.Genome
	Kind       components.Kind
	Generation uint32
	BirthTick  int64
}

// AgentRegistry owns the set of live agents on an ECS world and keeps their
// insertion order. Removal keeps the relative order of survivors.
type AgentRegistry struct {
	world  *ecs.World
	mapper *ecs.Map4[
		components.Position,
		components.Vitals,
		components.Genome,
		components.Organism,
	]
	filter *ecs.Filter2[components.Vitals, components.Organism]

	order  []ecs.Entity
	view   []Agent
	nextID uint32
}

// NewAgentRegistry creates an empty registry with its own ECS world.
func NewAgentRegistry() *AgentRegistry {
	world := ecs.NewWorld()
	return &AgentRegistry{
		world: world,
		mapper: ecs.NewMap4[
			components.Position,
			components.Vitals,
			components.Genome,
			components.Organism,
		](world),
		filter: ecs.NewFilter2[components.Vitals, components.Organism](world),
		order:  make([]ecs.Entity, 0, 64),
	}
}

// Len returns the number of live agents.
func (r *AgentRegistry) Len() int {
	return len(r.order)
}

// Insert adds an agent at the end of the iteration order and returns its ID.
func (r *AgentRegistry) Insert(s Spawn) uint32 {
	id := r.nextID
	r.nextID++

	pos := components.Position{Vec: s.Pos}
	vitals := s.Vitals
	genome := s.Genome
	org := components.Organism{
		ID:         id,
		Kind:       s.Kind,
		Generation: s.Generation,
		BirthTick:  s.BirthTick,
	}

	e := r.mapper.NewEntity(&pos, &vitals, &genome, &org)
	r.order = append(r.order, e)
	return id
}

// View returns the live agents in iteration order.
// The returned slice is reused by the next call.
func (r *AgentRegistry) View() []Agent {
	r.view = r.view[:0]
	for _, e := range r.order {
		pos, vitals, genome, org := r.mapper.Get(e)
		r.view = append(r.view, Agent{
			Entity: e,
			Pos:    pos,
			Vitals: vitals,
			Genome: genome,
			Org:    org,
		})
	}
	return r.view
}

// Prune removes every agent whose energy is at or below zero and returns the
// organisms that were removed.
func (r *AgentRegistry) Prune() []components.Organism {
	var removed []components.Organism
	var dead []ecs.Entity

	kept := r.order[:0]
	for _, e := range r.order {
		_, vitals, _, org := r.mapper.Get(e)
		if vitals.Energy <= 0 {
			removed = append(removed, *org)
			dead = append(dead, e)
			continue
		}
		kept = append(kept, e)
	}
	r.order = kept

	for _, e := range dead {
		r.world.RemoveEntity(e)
	}
	r.view = r.view[:0]
	return removed
}

// Counts returns the number of live prey and predators.
func (r *AgentRegistry) Counts() (prey, pred int) {
	query := r.filter.Query()
	for query.Next() {
		_, org := query.Get()
		if org.Kind == components.KindPredator {
			pred++
		} else {
			prey++
		}
	}
	return prey, pred
}
