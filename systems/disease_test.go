package systems

import (
	"testing"

	"github.com/pthm-cable/quadrisrah/components"
)

func TestInfectionQueueDeduplicates(t *testing.T) {
	q := NewInfectionQueue()
	q.Mark(2)
	q.Mark(0)
	q.Mark(2)

	if q.Len() != 2 {
		t.Errorf("Len = %d, want 2", q.Len())
	}
	q.Reset()
	if q.Len() != 0 {
		t.Errorf("Len after Reset = %d, want 0", q.Len())
	}
}

func TestInfectionQueueApply(t *testing.T) {
	_, agents := registryWith(
		spawnPrey(0, 0, 40),
		spawnPrey(1, 0, 40),
		spawnPredator(2, 0),
	)
	agents[2].Vitals.Energy = 9000

	q := NewInfectionQueue()
	q.Mark(1)
	q.Mark(2)
	q.Mark(1)
	q.Mark(99)

	converted := q.Apply(agents, 10000)
	if len(converted) != 1 || converted[0] != 1 {
		t.Errorf("converted = %v, want [1]", converted)
	}
	if agents[1].Org.Kind != components.KindPredator || agents[1].Vitals.Energy != 10000 {
		t.Errorf("agent 1 = %s with %v energy", agents[1].Org.Kind, agents[1].Vitals.Energy)
	}
	if agents[0].Org.Kind != components.KindPrey {
		t.Error("unmarked agent was converted")
	}
	if agents[2].Vitals.Energy != 9000 {
		t.Error("existing predator was reset")
	}
	if q.Len() != 0 {
		t.Error("queue not reset after Apply")
	}
}
