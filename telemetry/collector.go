package telemetry

import "github.com/pthm-cable/quadrisrah/components"

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int64

	// Current window tracking
	windowStartTick int64

	// Event counters for current window
	births      int
	preyDeaths  int
	predDeaths  int
	infections  int
	matings     int
	foodSpawned float64
	foodEaten   float64
	lifespans   []float64
}

// NewCollector creates a new stats collector.
// windowTicks: how many ticks each stats window lasts.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowDurationTicks: int64(windowTicks),
	}
}

// RecordBirth records a birth event.
func (c *Collector) RecordBirth() {
	c.births++
}

// RecordDeath records a death event.
func (c *Collector) RecordDeath(kind components.Kind) {
	if kind == components.KindPrey {
		c.preyDeaths++
	} else {
		c.predDeaths++
	}
}

// RecordInfection records a prey converted into a predator.
func (c *Collector) RecordInfection() {
	c.infections++
}

// RecordMating records a successful pairing.
func (c *Collector) RecordMating() {
	c.matings++
}

// RecordFoodSpawned adds food placed on the terrain.
func (c *Collector) RecordFoodSpawned(amount float64) {
	c.foodSpawned += amount
}

// RecordFoodEaten adds food consumed by prey.
func (c *Collector) RecordFoodEaten(amount float64) {
	c.foodEaten += amount
}

// RecordLifespans adds the ages of agents that died this window.
func (c *Collector) RecordLifespans(ticks []float64) {
	c.lifespans = append(c.lifespans, ticks...)
}

// Record dispatches a telemetry event to the matching counter.
func (c *Collector) Record(e Event) {
	switch e.Type {
	case EventBirth:
		c.RecordBirth()
	case EventDeath:
		c.RecordDeath(e.Kind)
	case EventInfection:
		c.RecordInfection()
	case EventMating:
		c.RecordMating()
	case EventForage:
		c.RecordFoodEaten(e.Amount)
	case EventFoodSpawn:
		c.RecordFoodSpawned(e.Amount)
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// PopulationSample is the state of the live population at window end.
type PopulationSample struct {
	PreyCount     int
	PredCount     int
	PreyEnergies  []float64
	PreySpeeds    []float64
	PreyVisions   []float64
	TotalFood     float64
	MaxGeneration uint32
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int64, sample PopulationSample) WindowStats {
	energyMean, energyP10, energyP50, energyP90 := ComputeEnergyStats(sample.PreyEnergies)
	speedMean, speedStd := ComputeGeneStats(sample.PreySpeeds)
	visionMean, visionStd := ComputeGeneStats(sample.PreyVisions)
	lifespanMean, _ := ComputeGeneStats(c.lifespans)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		PreyCount: sample.PreyCount,
		PredCount: sample.PredCount,

		Births:     c.births,
		PreyDeaths: c.preyDeaths,
		PredDeaths: c.predDeaths,
		Infections: c.infections,
		Matings:    c.matings,

		FoodSpawned: c.foodSpawned,
		FoodEaten:   c.foodEaten,
		TotalFood:   sample.TotalFood,

		PreyEnergyMean: energyMean,
		PreyEnergyP10:  energyP10,
		PreyEnergyP50:  energyP50,
		PreyEnergyP90:  energyP90,

		SpeedMean:  speedMean,
		SpeedStd:   speedStd,
		VisionMean: visionMean,
		VisionStd:  visionStd,

		MeanLifespan:  lifespanMean,
		MaxGeneration: sample.MaxGeneration,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.births = 0
	c.preyDeaths = 0
	c.predDeaths = 0
	c.infections = 0
	c.matings = 0
	c.foodSpawned = 0
	c.foodEaten = 0
	c.lifespans = c.lifespans[:0]

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int64 {
	return c.windowDurationTicks
}
