package game

import (
	"github.com/pthm-cable/quadrisrah/systems"
	"github.com/pthm-cable/quadrisrah/telemetry"
)

// Step advances the world by one tick.
//
// Agents act one at a time in registry order, so each agent sees the
// positions, energy and food left by the agents before it. Infections and
// births are collected during the tick and applied at the end.
func (w *World) Step() {
	w.tick++
	w.events = w.events[:0]

	w.phase(systems.PhaseRegenerate)
	if added := w.terrain.Regenerate(w.rng); added > 0 {
		w.events = append(w.events, telemetry.NewFoodSpawnEvent(w.tick, added))
	}

	agents := w.agents.View()
	for i := range agents {
		a := agents[i]
		if a.Vitals.Cooldown > 0 {
			a.Vitals.Cooldown = max(a.Vitals.Cooldown-1, 0)
		}

		w.phase(systems.PhaseBehavior)
		d := w.behavior.Decide(i, agents, w.rng, w.infections)

		w.phase(systems.PhaseMovement)
		w.movement.Apply(a, d)

		w.phase(systems.PhaseMetabolism)
		if eaten := w.metabolism.Update(a); eaten > 0 {
			w.events = append(w.events, telemetry.NewForageEvent(w.tick, a.Org.ID, eaten))
		}
	}

	w.phase(systems.PhaseInfection)
	for _, i := range w.infections.Apply(agents, w.cfg.Predator.Energy) {
		w.events = append(w.events, telemetry.NewInfectionEvent(w.tick, agents[i].Org.ID))
	}

	w.phase(systems.PhaseBreeding)
	matings := w.breeding.Update(agents, w.tick, w.rng)

	w.phase(systems.PhaseCommit)
	w.commit(agents, matings)
}
