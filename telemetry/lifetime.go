package telemetry

// LifetimeStats tracks per-agent statistics over its lifetime.
type LifetimeStats struct {
	BirthTick  int64
	Generation uint32

	// Reproduction
	Children int

	// Energy
	PeakEnergy   float64
	TotalForaged float64 // cumulative food eaten

	// Set when the agent became a predator
	InfectedTick int64
	Infected     bool
}

// LifetimeTracker manages per-agent lifetime statistics.
type LifetimeTracker struct {
	stats map[uint32]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint32]*LifetimeStats),
	}
}

// Register creates lifetime stats for a new agent.
func (lt *LifetimeTracker) Register(entityID uint32, birthTick int64, generation uint32) {
	lt.stats[entityID] = &LifetimeStats{
		BirthTick:  birthTick,
		Generation: generation,
	}
}

// Get returns the lifetime stats for an agent, or nil if not found.
func (lt *LifetimeTracker) Get(entityID uint32) *LifetimeStats {
	return lt.stats[entityID]
}

// Remove removes an agent's stats and returns them.
func (lt *LifetimeTracker) Remove(entityID uint32) *LifetimeStats {
	stats := lt.stats[entityID]
	delete(lt.stats, entityID)
	return stats
}

// RecordChild increments children count.
func (lt *LifetimeTracker) RecordChild(parentID uint32) {
	if s := lt.stats[parentID]; s != nil {
		s.Children++
	}
}

// RecordForage adds food eaten to the cumulative total.
func (lt *LifetimeTracker) RecordForage(entityID uint32, amount float64) {
	if s := lt.stats[entityID]; s != nil {
		s.TotalForaged += amount
	}
}

// RecordInfection marks the agent as converted.
func (lt *LifetimeTracker) RecordInfection(entityID uint32, tick int64) {
	if s := lt.stats[entityID]; s != nil && !s.Infected {
		s.Infected = true
		s.InfectedTick = tick
	}
}

// UpdateEnergy tracks peak energy.
func (lt *LifetimeTracker) UpdateEnergy(entityID uint32, energy float64) {
	if s := lt.stats[entityID]; s != nil {
		if energy > s.PeakEnergy {
			s.PeakEnergy = energy
		}
	}
}

// Apply updates the tracker from a stream of events and returns the lifespans,
// in ticks, of agents that died.
func (lt *LifetimeTracker) Apply(events []Event) []float64 {
	var lifespans []float64
	for _, e := range events {
		switch e.Type {
		case EventBirth:
			lt.RecordChild(e.TargetID)
			lt.Register(e.EntityID, e.Tick, e.Generation)
		case EventMating:
			lt.RecordChild(e.TargetID)
		case EventForage:
			lt.RecordForage(e.EntityID, e.Amount)
		case EventInfection:
			lt.RecordInfection(e.EntityID, e.Tick)
		case EventDeath:
			if s := lt.Remove(e.EntityID); s != nil {
				lifespans = append(lifespans, float64(e.Tick-s.BirthTick))
			}
		}
	}
	return lifespans
}

// Count returns the number of tracked agents.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}

// MaxGeneration returns the deepest generation among tracked agents.
func (lt *LifetimeTracker) MaxGeneration() uint32 {
	var gen uint32
	for _, s := range lt.stats {
		if s.Generation > gen {
			gen = s.Generation
		}
	}
	return gen
}
