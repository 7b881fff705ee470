package game

import (
	"log/slog"

	"github.com/pthm-cable/quadrisrah/components"
)

// LogSummary logs the world state at the current tick.
func (g *Game) LogSummary() {
	prey, pred := g.world.Counts()

	var preyEnergy float64
	var maxGen uint32
	for _, a := range g.world.agents.View() {
		if a.Org.Kind == components.KindPrey {
			preyEnergy += a.Vitals.Energy
		}
		maxGen = max(maxGen, a.Org.Generation)
	}
	avgEnergy := 0.0
	if prey > 0 {
		avgEnergy = preyEnergy / float64(prey)
	}

	slog.Info("world",
		"tick", g.world.Tick(),
		components.KindPrey.String(), prey,
		components.KindPredator.String(), pred,
		"prey_energy_avg", avgEnergy,
		"max_generation", maxGen,
		"total_food", g.world.TotalFood(),
		"tracked", g.lifetimeTracker.Count(),
	)
}

// LogPerf logs the rolling per-phase timing breakdown.
func (g *Game) LogPerf() {
	stats := g.perfCollector.Stats()
	attrs := make([]any, 0, 2*len(stats.PhasePct)+4)
	attrs = append(attrs, "tick", g.world.Tick(), "avg_tick_us", stats.AvgTickDuration.Microseconds())
	for _, id := range g.phases.IDs() {
		if pct, ok := stats.PhasePct[id]; ok {
			attrs = append(attrs, g.phases.GetName(id), pct)
		}
	}
	slog.Info("perf", attrs...)
}
