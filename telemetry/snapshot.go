package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/quadrisrah/components"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the population at a bookmarked moment.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`

	GridSize  int     `json:"grid_size"`
	Tick      int64   `json:"tick"`
	TotalFood float64 `json:"total_food"`

	Entities []EntityState `json:"entities"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// EntityState holds one agent's state.
type EntityState struct {
	ID   uint32          `json:"id"`
	Kind components.Kind `json:"kind"`

	X float64 `json:"x"`
	Y float64 `json:"y"`

	Energy   float64 `json:"energy"`
	Cooldown float64 `json:"cooldown"`

	Speed  float64 `json:"speed"`
	Vision float64 `json:"vision"`
	Health float64 `json:"health"`
	Damage float64 `json:"damage"`

	Generation uint32 `json:"generation"`

	Lifetime *LifetimeStatsJSON `json:"lifetime,omitempty"`
}

// LifetimeStatsJSON is the JSON-serializable form of LifetimeStats.
type LifetimeStatsJSON struct {
	BirthTick    int64   `json:"birth_tick"`
	Generation   uint32  `json:"generation"`
	Children     int     `json:"children"`
	PeakEnergy   float64 `json:"peak_energy"`
	TotalForaged float64 `json:"total_foraged"`
	InfectedTick int64   `json:"infected_tick,omitempty"`
	Infected     bool    `json:"infected"`
}

// ToJSON converts LifetimeStats to its JSON form.
func (ls *LifetimeStats) ToJSON() *LifetimeStatsJSON {
	if ls == nil {
		return nil
	}
	return &LifetimeStatsJSON{
		BirthTick:    ls.BirthTick,
		Generation:   ls.Generation,
		Children:     ls.Children,
		PeakEnergy:   ls.PeakEnergy,
		TotalForaged: ls.TotalForaged,
		InfectedTick: ls.InfectedTick,
		Infected:     ls.Infected,
	}
}

// FromJSON converts the JSON form back to LifetimeStats.
func (lsj *LifetimeStatsJSON) FromJSON() *LifetimeStats {
	if lsj == nil {
		return nil
	}
	return &LifetimeStats{
		BirthTick:    lsj.BirthTick,
		Generation:   lsj.Generation,
		Children:     lsj.Children,
		PeakEnergy:   lsj.PeakEnergy,
		TotalForaged: lsj.TotalForaged,
		InfectedTick: lsj.InfectedTick,
		Infected:     lsj.Infected,
	}
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Bookmark != nil {
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, sanitized)
	}
	name += ".json"

	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}

	return &snapshot, nil
}
