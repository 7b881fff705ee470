package systems

// SystemInfo describes one phase of the tick for logs and the perf table.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this phase does
	Category    string // Grouping (e.g., "environment", "agents")
}

// Tick phase IDs, in execution order.
const (
	PhaseRegenerate = "regenerate"
	PhaseBehavior   = "behavior"
	PhaseMovement   = "movement"
	PhaseMetabolism = "metabolism"
	PhaseInfection  = "infection"
	PhaseBreeding   = "breeding"
	PhaseCommit     = "commit"
)

// SystemRegistry holds metadata about all tick phases.
// This centralizes naming so the HUD and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known phases.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known phases to the registry.
// Update this when adding new phases.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: PhaseRegenerate, Name: "Food Spawn", Description: "Spawns food on random cells", Category: "environment"})

	// Per-agent loop
	r.Register(SystemInfo{ID: PhaseBehavior, Name: "Behavior", Description: "Selects flee, mate, food or wander", Category: "agents"})
	r.Register(SystemInfo{ID: PhaseMovement, Name: "Movement", Description: "Resolves terrain obstacles and sliding", Category: "agents"})
	r.Register(SystemInfo{ID: PhaseMetabolism, Name: "Metabolism", Description: "Drains energy and eats", Category: "agents"})

	// Deferred edits
	r.Register(SystemInfo{ID: PhaseInfection, Name: "Infection", Description: "Converts tagged prey", Category: "lifecycle"})
	r.Register(SystemInfo{ID: PhaseBreeding, Name: "Breeding", Description: "Pairs prey and blends genes", Category: "lifecycle"})
	r.Register(SystemInfo{ID: PhaseCommit, Name: "Commit", Description: "Adds newborns and removes the dead", Category: "lifecycle"})
}

// Register adds a phase to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns phase info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a phase ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered phases.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// IDs returns all phase IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
