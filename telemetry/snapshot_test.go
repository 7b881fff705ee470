package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/quadrisrah/components"
)

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	lifetime := &LifetimeStats{BirthTick: 100, Generation: 3, Children: 2, PeakEnergy: 140, TotalForaged: 55, InfectedTick: 900, Infected: true}
	snapshot := &Snapshot{
		Version:   SnapshotVersion,
		RNGSeed:   42,
		GridSize:  100,
		Tick:      1000,
		TotalFood: 321.5,
		Entities: []EntityState{
			{
				ID:         7,
				Kind:       components.KindPredator,
				X:          15.25,
				Y:          40.5,
				Energy:     10000,
				Speed:      0.15,
				Vision:     15,
				Health:     300,
				Damage:     20,
				Generation: 3,
				Lifetime:   lifetime.ToJSON(),
			},
		},
		Bookmark: &Bookmark{
			Type:        BookmarkOutbreak,
			Tick:        1000,
			Description: "Test bookmark",
		},
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if filepath.Base(path) != "snapshot_1000_outbreak.json" {
		t.Errorf("file name = %s", filepath.Base(path))
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if loaded.RNGSeed != 42 || loaded.GridSize != 100 || loaded.Tick != 1000 || loaded.TotalFood != 321.5 {
		t.Errorf("header mismatch: %+v", loaded)
	}
	if len(loaded.Entities) != 1 {
		t.Fatalf("entities = %d, want 1", len(loaded.Entities))
	}
	e := loaded.Entities[0]
	if e.ID != 7 || e.Kind != components.KindPredator || e.X != 15.25 || e.Vision != 15 {
		t.Errorf("entity mismatch: %+v", e)
	}
	if got := e.Lifetime.FromJSON(); *got != *lifetime {
		t.Errorf("lifetime = %+v, want %+v", *got, *lifetime)
	}
	if loaded.Bookmark == nil || loaded.Bookmark.Type != BookmarkOutbreak {
		t.Errorf("bookmark = %+v", loaded.Bookmark)
	}
}

func TestLoadSnapshotRejectsOtherVersions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	if err := os.WriteFile(path, []byte(`{"version": 99}`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadSnapshot(path)
	if err == nil || !strings.Contains(err.Error(), "version") {
		t.Errorf("err = %v, want version error", err)
	}
}
