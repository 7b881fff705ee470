package systems

import (
	"github.com/pthm-cable/quadrisrah/components"
)

// InfectionQueue collects prey tagged by predators during the behavior scan.
// Conversions are applied after the scan so they cannot change how other
// agents behave on the same tick.
type InfectionQueue struct {
	pending   []int
	seen      map[int]struct{}
	converted []int
}

// NewInfectionQueue creates an empty queue.
func NewInfectionQueue() *InfectionQueue {
	return &InfectionQueue{
		pending: make([]int, 0, 16),
		seen:    make(map[int]struct{}),
	}
}

// Mark records agent index i for conversion. Repeated marks are ignored.
func (q *InfectionQueue) Mark(i int) {
	if _, ok := q.seen[i]; ok {
		return
	}
	q.seen[i] = struct{}{}
	q.pending = append(q.pending, i)
}

// Len returns the number of distinct agents marked.
func (q *InfectionQueue) Len() int {
	return len(q.pending)
}

// Reset empties the queue for the next tick.
func (q *InfectionQueue) Reset() {
	q.pending = q.pending[:0]
	clear(q.seen)
}

// Apply converts every marked prey into a predator with the given energy and
// returns the indices of agents that changed kind. Agents that are already
// predators are left alone. The queue is reset afterwards and the returned
// slice is reused by the next call.
func (q *InfectionQueue) Apply(agents []Agent, predatorEnergy float64) []int {
	q.converted = q.converted[:0]
	for _, i := range q.pending {
		if i < 0 || i >= len(agents) {
			continue
		}
		a := agents[i]
		if a.Org.Kind == components.KindPredator {
			continue
		}
		a.Org.Kind = components.KindPredator
		a.Vitals.Energy = predatorEnergy
		q.converted = append(q.converted, i)
	}
	q.Reset()
	return q.converted
}
