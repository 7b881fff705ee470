package telemetry

import (
	"testing"

	"github.com/pthm-cable/quadrisrah/components"
)

func TestLifetimeTrackerApply(t *testing.T) {
	lt := NewLifetimeTracker()
	lt.Register(1, 0, 0)
	lt.Register(2, 0, 3)

	lifespans := lt.Apply([]Event{
		NewMatingEvent(40, 1, 2),
		NewBirthEvent(40, 9, 1, 4),
		NewForageEvent(41, 1, 20),
		NewForageEvent(42, 1, 5),
		NewInfectionEvent(50, 2),
		NewDeathEvent(90, 1, components.KindPrey),
	})

	if len(lifespans) != 1 || lifespans[0] != 90 {
		t.Errorf("lifespans = %v, want [90]", lifespans)
	}
	if lt.Get(1) != nil {
		t.Error("dead agent still tracked")
	}

	partner := lt.Get(2)
	if partner == nil || partner.Children != 1 || !partner.Infected || partner.InfectedTick != 50 {
		t.Errorf("partner stats = %+v", partner)
	}

	child := lt.Get(9)
	if child == nil || child.BirthTick != 40 || child.Generation != 4 {
		t.Errorf("child stats = %+v", child)
	}
	if lt.MaxGeneration() != 4 {
		t.Errorf("MaxGeneration = %d, want 4", lt.MaxGeneration())
	}
	if lt.Count() != 2 {
		t.Errorf("Count = %d, want 2", lt.Count())
	}
}

func TestLifetimeTrackerPeakEnergy(t *testing.T) {
	lt := NewLifetimeTracker()
	lt.Register(1, 0, 0)

	for _, e := range []float64{50, 120, 80} {
		lt.UpdateEnergy(1, e)
	}
	if got := lt.Get(1).PeakEnergy; got != 120 {
		t.Errorf("PeakEnergy = %v, want 120", got)
	}
	lt.UpdateEnergy(99, 10) // unknown agents are ignored
}
