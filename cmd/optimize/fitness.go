package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/quadrisrah/config"
	"github.com/pthm-cable/quadrisrah/game"
	"github.com/pthm-cable/quadrisrah/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int64
	seeds       []int64
	baseConfig  *config.Config
	statsWindow int

	mu          sync.Mutex
	bestFitness float64
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int64, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 300,
		bestFitness: math.Inf(1),
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// Prey below minViablePrey for graceTicks consecutive ticks counts as extinct.
const (
	minViablePrey = 3
	graceTicks    = 600
	warmupTicks   = 300
)

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalTicks int64                   // ticks before prey extinction (or maxTicks if survived)
	windowStats   []telemetry.WindowStats // collected via the stats callback each window
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is negative prey survival ticks scaled by ecosystem quality.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	fitness := make([]float64, len(fe.seeds))
	quality := make([]float64, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result := fe.runSimulation(x, s)
			quality[idx] = computeQuality(result.windowStats)
			fitness[idx] = computeFitness(result.survivalTicks, quality[idx])
		}(i, seed)
	}
	wg.Wait()

	avgFitness := stat.Mean(fitness, nil)

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
	}
	fe.lastQuality = stat.Mean(quality, nil)
	fe.mu.Unlock()

	return avgFitness
}

// runSimulation executes a single headless simulation run.
// Runs until prey extinction or maxTicks, whichever comes first.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) *runResult {
	cfg := *fe.baseConfig
	cfg.Telemetry.StatsWindow = fe.statsWindow
	fe.params.ApplyToConfig(&cfg, x)

	result := &runResult{survivalTicks: fe.maxTicks}

	g, err := game.NewGame(&cfg, game.Options{Seed: seed, StepsPerUpdate: 1})
	if err != nil {
		// Invalid parameter combinations score as immediate extinction.
		result.survivalTicks = 0
		return result
	}
	defer g.Close()

	g.SetStatsCallback(func(stats telemetry.WindowStats) {
		result.windowStats = append(result.windowStats, stats)
	})

	var below int64
	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()

		tick := g.Tick()
		if tick < warmupTicks {
			continue
		}

		prey, _ := g.World().Counts()
		if prey == 0 {
			result.survivalTicks = tick
			return result
		}
		if prey < minViablePrey {
			below++
		} else {
			below = 0
		}
		if below >= graceTicks {
			result.survivalTicks = tick
			return result
		}
	}

	return result
}

// computeFitness calculates the scalar fitness (lower = better).
// Survival dominates; quality adds up to 20% to separate configs with
// similar survival.
func computeFitness(survivalTicks int64, quality float64) float64 {
	return -(float64(survivalTicks) * (1.0 + 0.2*quality))
}

// Quality component weights.
const (
	qualityWeightStability = 0.4
	qualityWeightEnergy    = 0.3
	qualityWeightBreeding  = 0.3

	qualityWarmupWindows = 2 // skip first N windows
)

// computeQuality scores the prey population in [0, 1] from window stats.
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}

	var preyCounts, energyScores, breedScores []float64
	for _, w := range windows[qualityWarmupWindows:] {
		if w.PreyCount < minViablePrey {
			continue
		}
		preyCounts = append(preyCounts, float64(w.PreyCount))

		// Median prey energy near the starting energy is healthy.
		energyScores = append(energyScores, math.Exp(-math.Pow((w.PreyEnergyP50-100)/50, 2)))

		// Births should roughly keep pace with deaths.
		deaths := float64(w.PreyDeaths + w.Infections)
		births := float64(w.Births)
		breedScores = append(breedScores, math.Exp(-math.Pow(math.Log((births+1)/(deaths+1)), 2)))
	}
	if len(preyCounts) == 0 {
		return 0
	}

	stabilityScore := 0.0
	if len(preyCounts) >= 2 {
		mean, std := stat.MeanStdDev(preyCounts, nil)
		if mean > 0 {
			cv := std / mean
			stabilityScore = math.Exp(-cv * cv)
		}
	}

	quality := qualityWeightStability*stabilityScore +
		qualityWeightEnergy*stat.Mean(energyScores, nil) +
		qualityWeightBreeding*stat.Mean(breedScores, nil)

	return config.Range{Min: 0, Max: 1}.Clamp(quality)
}
