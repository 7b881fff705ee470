package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/quadrisrah/components"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeEnergyStats(t *testing.T) {
	values := []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	mean, p10, p50, p90 := ComputeEnergyStats(values)

	if math.Abs(mean-55) > 0.001 {
		t.Errorf("mean = %v, want 55", mean)
	}
	if math.Abs(p10-19) > 0.01 {
		t.Errorf("p10 = %v, want ~19", p10)
	}
	if math.Abs(p50-55) > 0.01 {
		t.Errorf("p50 = %v, want ~55", p50)
	}
	if math.Abs(p90-91) > 0.01 {
		t.Errorf("p90 = %v, want ~91", p90)
	}
}

func TestComputeEnergyStatsEmpty(t *testing.T) {
	mean, p10, p50, p90 := ComputeEnergyStats([]float64{})

	if mean != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestComputeGeneStats(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		wantMean float64
		wantStd  float64
	}{
		{"empty", nil, 0, 0},
		{"single", []float64{0.2}, 0.2, 0},
		{"pair", []float64{10, 20}, 15, math.Sqrt(50)},
		{"constant", []float64{3, 3, 3, 3}, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std := ComputeGeneStats(tt.values)
			if math.Abs(mean-tt.wantMean) > 1e-9 || math.Abs(std-tt.wantStd) > 1e-9 {
				t.Errorf("ComputeGeneStats = (%v, %v), want (%v, %v)", mean, std, tt.wantMean, tt.wantStd)
			}
		})
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(100)

	if c.ShouldFlush(99) {
		t.Error("window should not flush before 100 ticks")
	}
	if !c.ShouldFlush(100) {
		t.Error("window should flush at 100 ticks")
	}

	events := []Event{
		NewBirthEvent(5, 50, 1, 1),
		NewMatingEvent(5, 1, 2),
		NewDeathEvent(7, 3, components.KindPrey),
		NewDeathEvent(8, 4, components.KindPredator),
		NewInfectionEvent(9, 6),
		NewInfectionEvent(9, 7),
		NewForageEvent(10, 8, 12.5),
		NewFoodSpawnEvent(10, 80),
	}
	for _, e := range events {
		c.Record(e)
	}
	c.RecordLifespans([]float64{100, 200})

	stats := c.Flush(100, PopulationSample{
		PreyCount:     2,
		PredCount:     3,
		PreyEnergies:  []float64{40, 60},
		PreySpeeds:    []float64{0.1, 0.2},
		PreyVisions:   []float64{10, 20},
		TotalFood:     400,
		MaxGeneration: 4,
	})

	if stats.Births != 1 || stats.Matings != 1 || stats.PreyDeaths != 1 || stats.PredDeaths != 1 {
		t.Errorf("event counts = %+v", stats)
	}
	if stats.Infections != 2 {
		t.Errorf("Infections = %d, want 2", stats.Infections)
	}
	if stats.FoodEaten != 12.5 || stats.FoodSpawned != 80 || stats.TotalFood != 400 {
		t.Errorf("food = eaten %v spawned %v total %v", stats.FoodEaten, stats.FoodSpawned, stats.TotalFood)
	}
	if stats.PreyEnergyMean != 50 || math.Abs(stats.SpeedMean-0.15) > 1e-9 || stats.VisionMean != 15 {
		t.Errorf("distribution means = %v %v %v", stats.PreyEnergyMean, stats.SpeedMean, stats.VisionMean)
	}
	if stats.MeanLifespan != 150 || stats.MaxGeneration != 4 {
		t.Errorf("lineage = lifespan %v generation %d", stats.MeanLifespan, stats.MaxGeneration)
	}
	if stats.WindowStartTick != 0 || stats.WindowEndTick != 100 {
		t.Errorf("window = [%d, %d]", stats.WindowStartTick, stats.WindowEndTick)
	}

	// Counters reset for the next window
	next := c.Flush(200, PopulationSample{})
	if next.Births != 0 || next.Infections != 0 || next.FoodEaten != 0 || next.MeanLifespan != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
	if next.WindowStartTick != 100 {
		t.Errorf("next window start = %d, want 100", next.WindowStartTick)
	}
}
