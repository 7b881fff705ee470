package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/quadrisrah/config"
	"github.com/pthm-cable/quadrisrah/game"
	"github.com/pthm-cable/quadrisrah/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Int("stats-window", 0, "Stats window size in ticks (0 = use config)")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for bookmark snapshot files")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster runs)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := *config.Cfg()
	if *statsWindow > 0 {
		cfg.Telemetry.StatsWindow = *statsWindow
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		OutputDir:      *outputDir,
		SnapshotDir:    *snapshotDir,
		StepsPerUpdate: *stepsPerUpdate,
	}

	if *headless {
		os.Exit(runHeadless(&cfg, opts, int64(*maxTicks)))
	}
	os.Exit(runWindowed(&cfg, opts, int64(*maxTicks)))
}

// runHeadless advances the simulation without raylib until maxTicks or prey
// extinction.
func runHeadless(cfg *config.Config, opts game.Options, maxTicks int64) int {
	g, err := game.NewGame(cfg, opts)
	if err != nil {
		slog.Error("failed to create world", "error", err)
		return 1
	}
	defer g.Close()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"grid_size", cfg.World.GridSize,
		"stats_window", cfg.Telemetry.StatsWindow,
		"max_ticks", maxTicks,
		"steps_per_update", g.StepsPerUpdate(),
	)

	for {
		g.UpdateHeadless()

		if maxTicks > 0 && g.Tick() >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			break
		}
		if g.PreyExtinct() {
			_, pred := g.World().Counts()
			slog.Info("prey extinct", "tick", g.Tick(), "predators", pred)
			break
		}
	}

	g.LogSummary()
	if opts.LogStats {
		g.LogPerf()
	}
	return 0
}

func runWindowed(cfg *config.Config, opts game.Options, maxTicks int64) int {
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Quadrisrah")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(cfg, opts)
	if err != nil {
		slog.Error("failed to create world", "error", err)
		return 1
	}
	defer g.Close()

	view := ui.NewView(g, cfg)
	defer view.Unload()

	for !rl.WindowShouldClose() {
		view.HandleInput(g)
		g.Update()
		view.Refresh(g)

		rl.BeginDrawing()
		view.Draw(g)
		rl.EndDrawing()

		if maxTicks > 0 && g.Tick() >= maxTicks {
			break
		}
	}

	g.LogSummary()
	return 0
}
