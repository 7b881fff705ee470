package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a tick window.
type WindowStats struct {
	WindowStartTick int64 `csv:"-"`
	WindowEndTick   int64 `csv:"window_end"`

	// Population counts at window end
	PreyCount int `csv:"prey"`
	PredCount int `csv:"pred"`

	// Events during window
	Births     int `csv:"births"`
	PreyDeaths int `csv:"prey_deaths"`
	PredDeaths int `csv:"pred_deaths"`
	Infections int `csv:"infections"`
	Matings    int `csv:"matings"`

	// Food flow
	FoodSpawned float64 `csv:"food_spawned"`
	FoodEaten   float64 `csv:"food_eaten"`
	TotalFood   float64 `csv:"total_food"` // sampled at window end

	// Prey energy distribution (sampled at window end)
	PreyEnergyMean float64 `csv:"prey_energy_mean"`
	PreyEnergyP10  float64 `csv:"prey_energy_p10"`
	PreyEnergyP50  float64 `csv:"prey_energy_p50"`
	PreyEnergyP90  float64 `csv:"prey_energy_p90"`

	// Prey gene distribution
	SpeedMean  float64 `csv:"speed_mean"`
	SpeedStd   float64 `csv:"speed_std"`
	VisionMean float64 `csv:"vision_mean"`
	VisionStd  float64 `csv:"vision_std"`

	// Lineage
	MeanLifespan  float64 `csv:"mean_lifespan"` // ticks, over agents that died in the window
	MaxGeneration uint32  `csv:"max_generation"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeEnergyStats calculates mean and percentiles from energy values.
func ComputeEnergyStats(values []float64) (mean, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)

	// Sort for percentiles
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

// ComputeGeneStats returns the mean and sample standard deviation of values.
// The deviation is zero for fewer than two values.
func ComputeGeneStats(values []float64) (mean, std float64) {
	switch len(values) {
	case 0:
		return 0, 0
	case 1:
		return values[0], 0
	}
	return stat.MeanStdDev(values, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Int("prey", s.PreyCount),
		slog.Int("pred", s.PredCount),
		slog.Int("births", s.Births),
		slog.Int("prey_deaths", s.PreyDeaths),
		slog.Int("pred_deaths", s.PredDeaths),
		slog.Int("infections", s.Infections),
		slog.Int("matings", s.Matings),
		slog.Float64("food_spawned", s.FoodSpawned),
		slog.Float64("food_eaten", s.FoodEaten),
		slog.Float64("total_food", s.TotalFood),
		slog.Float64("prey_energy_mean", s.PreyEnergyMean),
		slog.Float64("prey_energy_p10", s.PreyEnergyP10),
		slog.Float64("prey_energy_p50", s.PreyEnergyP50),
		slog.Float64("prey_energy_p90", s.PreyEnergyP90),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("vision_mean", s.VisionMean),
		slog.Float64("vision_std", s.VisionStd),
		slog.Float64("mean_lifespan", s.MeanLifespan),
		slog.Any("max_generation", s.MaxGeneration),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"prey", s.PreyCount,
		"pred", s.PredCount,
		"births", s.Births,
		"prey_deaths", s.PreyDeaths,
		"pred_deaths", s.PredDeaths,
		"infections", s.Infections,
		"matings", s.Matings,
		"food_spawned", s.FoodSpawned,
		"food_eaten", s.FoodEaten,
		"total_food", s.TotalFood,
		"prey_energy_mean", s.PreyEnergyMean,
		"prey_energy_p50", s.PreyEnergyP50,
		"speed_mean", s.SpeedMean,
		"speed_std", s.SpeedStd,
		"vision_mean", s.VisionMean,
		"vision_std", s.VisionStd,
		"mean_lifespan", s.MeanLifespan,
		"max_generation", s.MaxGeneration,
	)
}
