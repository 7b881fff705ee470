package game

// Options holds driver settings that are not part of the simulation config.
type Options struct {
	Seed           int64
	LogStats       bool   // log window and perf stats via slog
	OutputDir      string // CSV output directory; empty disables
	SnapshotDir    string // bookmark snapshot directory; empty disables
	StepsPerUpdate int    // ticks per Update call
}

// MaxStepsPerUpdate bounds the interactive speed control.
const MaxStepsPerUpdate = 50

// DefaultOptions returns the driver defaults.
func DefaultOptions() Options {
	return Options{
		Seed:           1,
		StepsPerUpdate: 1,
	}
}
