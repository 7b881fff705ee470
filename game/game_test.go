package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/quadrisrah/config"
	"github.com/pthm-cable/quadrisrah/telemetry"
)

func smallConfig() *config.Config {
	cfg := config.Defaults()
	cfg.World.GridSize = 30
	cfg.Population.InitialPrey = 10
	cfg.Telemetry.StatsWindow = 50
	return cfg
}

func TestGame_FlushesWindows(t *testing.T) {
	g, err := NewGame(smallConfig(), Options{Seed: 4, StepsPerUpdate: 100})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	defer g.Close()

	var windows []telemetry.WindowStats
	g.SetStatsCallback(func(s telemetry.WindowStats) {
		windows = append(windows, s)
	})

	g.UpdateHeadless()

	if g.Tick() != 100 {
		t.Fatalf("Tick = %d, want 100", g.Tick())
	}
	if len(windows) != 2 {
		t.Fatalf("windows = %d, want 2", len(windows))
	}
	if windows[0].WindowEndTick != 50 || windows[1].WindowEndTick != 100 {
		t.Errorf("window ends = %d, %d", windows[0].WindowEndTick, windows[1].WindowEndTick)
	}
	prey, pred := g.World().Counts()
	if last := windows[1]; last.PreyCount != prey || last.PredCount != pred {
		t.Errorf("last window counts %d/%d, world has %d/%d", last.PreyCount, last.PredCount, prey, pred)
	}
}

func TestGame_PreyExtinctWithPredatorsLeft(t *testing.T) {
	cfg := smallConfig()
	cfg.Population.InitialPrey = 0
	cfg.Population.InitialPredators = 1

	g, err := NewGame(cfg, Options{Seed: 7, StepsPerUpdate: 50})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	defer g.Close()

	for i := 0; i < 100; i++ {
		g.UpdateHeadless()
	}

	if g.World().Len() != 1 {
		t.Fatalf("Len = %d after %d ticks, want the predator to survive", g.World().Len(), g.Tick())
	}
	if !g.PreyExtinct() {
		t.Error("PreyExtinct = false with no prey left")
	}
}

func TestGame_PreyExtinctFalseWithPrey(t *testing.T) {
	g, err := NewGame(smallConfig(), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()

	if g.PreyExtinct() {
		t.Error("PreyExtinct = true at tick 0 with founders placed")
	}
}

func TestGame_PauseAndSpeed(t *testing.T) {
	g, err := NewGame(smallConfig(), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	g.SetPaused(true)
	g.Update()
	if g.Tick() != 0 {
		t.Errorf("paused Update advanced to tick %d", g.Tick())
	}

	g.TogglePause()
	g.SetStepsPerUpdate(3)
	g.Update()
	if g.Tick() != 3 {
		t.Errorf("Tick = %d, want 3", g.Tick())
	}

	tests := []struct {
		in, want int
	}{
		{0, 1},
		{-5, 1},
		{7, 7},
		{MaxStepsPerUpdate + 10, MaxStepsPerUpdate},
	}
	for _, tt := range tests {
		g.SetStepsPerUpdate(tt.in)
		if got := g.StepsPerUpdate(); got != tt.want {
			t.Errorf("SetStepsPerUpdate(%d) -> %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestGame_TracksLifetimes(t *testing.T) {
	g, err := NewGame(smallConfig(), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 20; i++ {
		g.UpdateHeadless()
	}
	for _, a := range g.World().Snapshot().Agents {
		ls := g.Lifetime(a.ID)
		if ls == nil {
			t.Fatalf("agent %d is not tracked", a.ID)
		}
		if ls.Generation != a.Generation || ls.BirthTick != a.BirthTick {
			t.Errorf("agent %d tracked as gen %d born %d, is gen %d born %d",
				a.ID, ls.Generation, ls.BirthTick, a.Generation, a.BirthTick)
		}
	}
}

func TestGame_WritesOutput(t *testing.T) {
	dir := t.TempDir()
	snapDir := filepath.Join(dir, "snapshots")

	cfg := smallConfig()
	cfg.Population.InitialPrey = 0 // extinct from the first window

	g, err := NewGame(cfg, Options{Seed: 2, StepsPerUpdate: 50, OutputDir: dir, SnapshotDir: snapDir})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	g.UpdateHeadless()
	if err := g.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	for _, name := range []string{"telemetry.csv", "perf.csv", "bookmarks.csv", "lineage.csv", "config.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "bookmarks.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), string(telemetry.BookmarkExtinction)) {
		t.Errorf("bookmarks.csv missing extinction:\n%s", data)
	}

	snap, err := telemetry.LoadSnapshot(filepath.Join(snapDir, "snapshot_50_extinction.json"))
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if snap.RNGSeed != 2 || snap.GridSize != 30 || len(snap.Entities) != cfg.Population.InitialPredators {
		t.Errorf("snapshot = seed %d size %d with %d entities", snap.RNGSeed, snap.GridSize, len(snap.Entities))
	}
	if snap.Entities[0].Lifetime == nil {
		t.Error("snapshot entity has no lifetime stats")
	}
}
