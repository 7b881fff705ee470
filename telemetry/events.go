// Package telemetry provides population tracking, bookmarking, and CSV output.
package telemetry

import "github.com/pthm-cable/quadrisrah/components"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventBirth EventType = iota
	EventDeath
	EventInfection
	EventMating
	EventForage
	EventFoodSpawn
)

// String returns the event name.
func (t EventType) String() string {
	switch t {
	case EventBirth:
		return "birth"
	case EventDeath:
		return "death"
	case EventInfection:
		return "infection"
	case EventMating:
		return "mating"
	case EventForage:
		return "forage"
	case EventFoodSpawn:
		return "food_spawn"
	default:
		return "unknown"
	}
}

// Event represents a single telemetry event.
type Event struct {
	Type     EventType
	Tick     int64
	EntityID uint32
	Kind     components.Kind

	// Optional fields depending on event type
	TargetID   uint32  // partner for matings, parent for births
	Amount     float64 // food eaten or spawned
	Generation uint32  // births only
}

// NewBirthEvent creates a birth event.
func NewBirthEvent(tick int64, childID, parentID, generation uint32) Event {
	return Event{
		Type:       EventBirth,
		Tick:       tick,
		EntityID:   childID,
		Kind:       components.KindPrey,
		TargetID:   parentID, // parent ID stored in TargetID
		Generation: generation,
	}
}

// NewDeathEvent creates a death event.
func NewDeathEvent(tick int64, entityID uint32, kind components.Kind) Event {
	return Event{
		Type:     EventDeath,
		Tick:     tick,
		EntityID: entityID,
		Kind:     kind,
	}
}

// NewInfectionEvent creates an event for a prey converted into a predator.
func NewInfectionEvent(tick int64, entityID uint32) Event {
	return Event{
		Type:     EventInfection,
		Tick:     tick,
		EntityID: entityID,
		Kind:     components.KindPredator,
	}
}

// NewMatingEvent creates a mating event between two parents.
func NewMatingEvent(tick int64, parentA, parentB uint32) Event {
	return Event{
		Type:     EventMating,
		Tick:     tick,
		EntityID: parentA,
		Kind:     components.KindPrey,
		TargetID: parentB,
	}
}

// NewForageEvent creates a foraging event (prey eating from its cell).
func NewForageEvent(tick int64, preyID uint32, amount float64) Event {
	return Event{
		Type:     EventForage,
		Tick:     tick,
		EntityID: preyID,
		Kind:     components.KindPrey,
		Amount:   amount,
	}
}

// NewFoodSpawnEvent records food added to the terrain on one tick.
func NewFoodSpawnEvent(tick int64, amount float64) Event {
	return Event{
		Type:   EventFoodSpawn,
		Tick:   tick,
		Amount: amount,
	}
}
