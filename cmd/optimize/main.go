// Command optimize searches the tunable ecology parameters with CMA-ES,
// scoring each candidate by how long prey and predators coexist.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/quadrisrah/config"
)

type options struct {
	configPath string
	maxTicks   int64
	seeds      int
	maxEvals   int
	population int
	outputDir  string
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.configPath, "config", "", "Base config YAML file (empty = use defaults)")
	flag.Int64Var(&o.maxTicks, "max-ticks", 20000, "Tick cap per simulation run")
	flag.IntVar(&o.seeds, "seeds", 3, "Seeds per evaluation")
	flag.IntVar(&o.maxEvals, "max-evals", 200, "Evaluation budget")
	flag.IntVar(&o.population, "population", 0, "CMA-ES population size (0 = 4 + 3 ln n)")
	flag.StringVar(&o.outputDir, "output", "", "Directory for optimize_log.csv and best_config.yaml")
	flag.Parse()
	return o
}

// evalSeeds returns n fixed, well-separated seeds so every candidate sees the
// same worlds.
func evalSeeds(n int) []int64 {
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = int64(i*1000 + 42)
	}
	return seeds
}

func populationSize(requested, dim int) int {
	if requested > 0 {
		return requested
	}
	return 4 + int(3.0*math.Log(float64(dim)))
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	if err := run(parseFlags()); err != nil {
		slog.Error("optimize failed", "error", err)
		os.Exit(1)
	}
}

func run(o options) error {
	if o.outputDir == "" {
		return fmt.Errorf("--output is required")
	}
	if err := os.MkdirAll(o.outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := config.Init(o.configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	params := NewParamVector()
	evaluator := NewFitnessEvaluator(params, o.maxTicks, evalSeeds(o.seeds), config.Cfg())

	prog, err := newProgress(filepath.Join(o.outputDir, "optimize_log.csv"), params, o.maxEvals)
	if err != nil {
		return err
	}
	defer prog.Close()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Denormalize(x)
			fitness := evaluator.Evaluate(raw)
			if err := prog.Record(fitness, params.Clamp(raw), evaluator.LastQuality()); err != nil {
				slog.Warn("failed to log evaluation", "error", err)
			}
			return fitness
		},
	}
	settings := &optimize.Settings{FuncEvaluations: o.maxEvals}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   populationSize(o.population, params.Dim()),
	}

	slog.Info("starting CMA-ES",
		"params", params.Dim(),
		"population", method.Population,
		"max_evals", o.maxEvals,
		"seeds", o.seeds,
		"max_ticks", o.maxTicks,
	)

	result, err := optimize.Minimize(problem, params.Normalize(params.DefaultVector()), settings, method)
	if err != nil {
		// Hitting the evaluation budget is reported as an error too.
		slog.Info("optimization ended", "reason", err)
	}

	best := prog.Best()
	if best == nil && result != nil {
		best = params.Clamp(params.Denormalize(result.X))
	}
	if best == nil {
		return fmt.Errorf("no evaluations completed")
	}

	slog.Info("optimization complete",
		"evals", prog.Count(),
		"elapsed", formatDuration(prog.Elapsed()),
		"best_fitness", prog.BestFitness(),
	)
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.6f\n", spec.Name, best[i])
	}

	bestCfg, err := config.Load(o.configPath)
	if err != nil {
		return fmt.Errorf("reloading base config: %w", err)
	}
	params.ApplyToConfig(bestCfg, best)
	out := filepath.Join(o.outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(out); err != nil {
		return fmt.Errorf("writing best config: %w", err)
	}
	slog.Info("best config saved", "path", out)
	return nil
}
