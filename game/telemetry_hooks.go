package game

import (
	"log/slog"

	"github.com/pthm-cable/quadrisrah/components"
	"github.com/pthm-cable/quadrisrah/telemetry"
)

// registerFounders starts lifetime tracking for the initial population.
func (g *Game) registerFounders() {
	for _, a := range g.world.agents.View() {
		g.lifetimeTracker.Register(a.Org.ID, a.Org.BirthTick, a.Org.Generation)
	}
}

// recordEvents feeds one tick's events to the collector and lifetime tracker.
func (g *Game) recordEvents(events []telemetry.Event) {
	for _, e := range events {
		g.collector.Record(e)
	}
	if lifespans := g.lifetimeTracker.Apply(events); len(lifespans) > 0 {
		g.collector.RecordLifespans(lifespans)
	}
	if err := g.outputManager.WriteLineage(events); err != nil {
		slog.Error("failed to write lineage", "error", err)
	}
}

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	tick := g.world.Tick()
	if !g.collector.ShouldFlush(tick) {
		return
	}

	stats := g.collector.Flush(tick, g.samplePopulation())
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}

		if g.outputManager != nil {
			if err := g.outputManager.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}

		if g.snapshotDir != "" {
			g.saveSnapshot(&bm)
		}
	}
}

// samplePopulation collects the live prey distributions and refreshes
// peak energy in the lifetime tracker.
func (g *Game) samplePopulation() telemetry.PopulationSample {
	agents := g.world.agents.View()
	sample := telemetry.PopulationSample{
		PreyEnergies:  make([]float64, 0, len(agents)),
		PreySpeeds:    make([]float64, 0, len(agents)),
		PreyVisions:   make([]float64, 0, len(agents)),
		TotalFood:     g.world.TotalFood(),
		MaxGeneration: g.lifetimeTracker.MaxGeneration(),
	}

	for _, a := range agents {
		g.lifetimeTracker.UpdateEnergy(a.Org.ID, a.Vitals.Energy)
		if a.Org.Kind == components.KindPredator {
			sample.PredCount++
			continue
		}
		sample.PreyCount++
		sample.PreyEnergies = append(sample.PreyEnergies, a.Vitals.Energy)
		sample.PreySpeeds = append(sample.PreySpeeds, a.Genome.Speed)
		sample.PreyVisions = append(sample.PreyVisions, a.Genome.Vision)
	}
	return sample
}

// saveSnapshot writes the current population to disk.
func (g *Game) saveSnapshot(bookmark *telemetry.Bookmark) {
	path, err := telemetry.SaveSnapshot(g.createSnapshot(bookmark), g.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "tick", g.world.Tick())
}

// createSnapshot builds a telemetry snapshot from the world.
func (g *Game) createSnapshot(bookmark *telemetry.Bookmark) *telemetry.Snapshot {
	snap := g.world.Snapshot()
	out := &telemetry.Snapshot{
		Version:   telemetry.SnapshotVersion,
		RNGSeed:   g.world.Seed(),
		GridSize:  snap.Size,
		Tick:      snap.Tick,
		TotalFood: snap.TotalFood,
		Entities:  make([]telemetry.EntityState, 0, len(snap.Agents)),
		Bookmark:  bookmark,
	}

	for _, a := range snap.Agents {
		out.Entities = append(out.Entities, telemetry.EntityState{
			ID:         a.ID,
			Kind:       a.Kind,
			X:          a.X,
			Y:          a.Y,
			Energy:     a.Energy,
			Cooldown:   a.Cooldown,
			Speed:      a.Genome.Speed,
			Vision:     a.Genome.Vision,
			Health:     a.Genome.Health,
			Damage:     a.Genome.Damage,
			Generation: a.Generation,
			Lifetime:   g.lifetimeTracker.Get(a.ID).ToJSON(),
		})
	}
	return out
}
