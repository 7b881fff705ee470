package game

import (
	"fmt"

	"github.com/pthm-cable/quadrisrah/config"
	"github.com/pthm-cable/quadrisrah/systems"
	"github.com/pthm-cable/quadrisrah/telemetry"
)

// Game drives a World and feeds its events into telemetry.
// It does no rendering; viewers read Snapshot between updates.
type Game struct {
	world *World
	cfg   *config.Config

	phases *systems.SystemRegistry

	collector        *telemetry.Collector
	bookmarkDetector *telemetry.BookmarkDetector
	perfCollector    *telemetry.PerfCollector
	lifetimeTracker  *telemetry.LifetimeTracker
	outputManager    *telemetry.OutputManager

	logStats       bool
	snapshotDir    string
	stepsPerUpdate int
	paused         bool

	// Called with each flushed window.
	statsCallback func(telemetry.WindowStats)
}

// NewGame builds the world and its telemetry pipeline.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	w, err := NewWorld(cfg, opts.Seed)
	if err != nil {
		return nil, err
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("setting up output: %w", err)
	}
	if om != nil {
		if err := om.WriteConfig(w.cfg); err != nil {
			om.Close()
			return nil, fmt.Errorf("writing config snapshot: %w", err)
		}
	}

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	g := &Game{
		world:            w,
		cfg:              w.cfg,
		phases:           systems.NewSystemRegistry(),
		collector:        telemetry.NewCollector(w.cfg.Telemetry.StatsWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(w.cfg.Telemetry.BookmarkHistorySize, w.cfg.Bookmarks),
		perfCollector:    telemetry.NewPerfCollector(w.cfg.Telemetry.PerfCollectorWindow),
		lifetimeTracker:  telemetry.NewLifetimeTracker(),
		outputManager:    om,
		logStats:         opts.LogStats,
		snapshotDir:      opts.SnapshotDir,
		stepsPerUpdate:   steps,
	}
	w.SetPhaseTimer(g.perfCollector)
	g.registerFounders()
	return g, nil
}

// Update records frame timing and, unless paused, advances the world.
func (g *Game) Update() {
	g.perfCollector.RecordFrame()
	if g.paused {
		return
	}
	g.UpdateHeadless()
}

// UpdateHeadless advances the world by StepsPerUpdate ticks.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
}

func (g *Game) step() {
	g.perfCollector.StartTick()
	g.world.Step()

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.recordEvents(g.world.Events())
	g.flushTelemetry()
	g.perfCollector.EndTick()
}

// World returns the simulated world.
func (g *Game) World() *World {
	return g.world
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int64 {
	return g.world.Tick()
}

// PreyExtinct reports whether no prey are left. Predators neither eat nor
// starve, so a run is over once the prey are gone even if predators remain.
func (g *Game) PreyExtinct() bool {
	prey, _ := g.world.Counts()
	return prey == 0
}

// Paused reports whether Update is currently a no-op.
func (g *Game) Paused() bool {
	return g.paused
}

// SetPaused pauses or resumes the simulation.
func (g *Game) SetPaused(p bool) {
	g.paused = p
}

// TogglePause flips the paused state.
func (g *Game) TogglePause() {
	g.paused = !g.paused
}

// StepsPerUpdate returns the number of ticks run per Update.
func (g *Game) StepsPerUpdate() int {
	return g.stepsPerUpdate
}

// SetStepsPerUpdate changes the simulation speed, clamped to [1, MaxStepsPerUpdate].
func (g *Game) SetStepsPerUpdate(n int) {
	g.stepsPerUpdate = max(1, min(n, MaxStepsPerUpdate))
}

// SetStatsCallback registers a function called with every flushed window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// Perf returns the rolling performance statistics.
func (g *Game) Perf() telemetry.PerfStats {
	return g.perfCollector.Stats()
}

// PhaseName returns the display name of a tick phase.
func (g *Game) PhaseName(id string) string {
	return g.phases.GetName(id)
}

// Lifetime returns the tracked lifetime stats of an agent, or nil.
func (g *Game) Lifetime(id uint32) *telemetry.LifetimeStats {
	return g.lifetimeTracker.Get(id)
}

// Close flushes and closes any output files.
func (g *Game) Close() error {
	if g.outputManager == nil {
		return nil
	}
	err := g.outputManager.Close()
	g.outputManager = nil
	return err
}
