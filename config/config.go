// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all simulation configuration parameters.
type Config struct {
	Screen       ScreenConfig       `yaml:"screen"`
	World        WorldConfig        `yaml:"world"`
	Terrain      TerrainConfig      `yaml:"terrain"`
	Food         FoodConfig         `yaml:"food"`
	Population   PopulationConfig   `yaml:"population"`
	Prey         FounderConfig      `yaml:"prey"`
	Predator     FounderConfig      `yaml:"predator"`
	Behavior     BehaviorConfig     `yaml:"behavior"`
	Movement     MovementConfig     `yaml:"movement"`
	Metabolism   MetabolismConfig   `yaml:"metabolism"`
	Reproduction ReproductionConfig `yaml:"reproduction"`
	Mutation     MutationConfig     `yaml:"mutation"`
	Genes        GeneBoundsConfig   `yaml:"genes"`
	Infection    InfectionConfig    `yaml:"infection"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`
	Bookmarks    BookmarksConfig    `yaml:"bookmarks"`
}

// ScreenConfig holds display settings for the viewer.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds grid dimensions.
type WorldConfig struct {
	GridSize int `yaml:"grid_size"` // cells per side
}

// BiomeConfig describes one terrain category.
type BiomeConfig struct {
	Threshold  float64 `yaml:"threshold"`   // noise must exceed this to classify as the biome
	Speed      float64 `yaml:"speed"`       // movement multiplier
	FoodChance float64 `yaml:"food_chance"` // probability a spawn draw on this biome succeeds
}

// TerrainConfig holds noise and biome parameters.
// Biomes are classified from the highest threshold (mountain) to the lowest;
// anything at or below the desert threshold is ocean.
type TerrainConfig struct {
	NoiseScale float64     `yaml:"noise_scale"`
	Octaves    int         `yaml:"octaves"`
	Lacunarity float64     `yaml:"lacunarity"`
	Gain       float64     `yaml:"gain"`
	Mountain   BiomeConfig `yaml:"mountain"`
	Forest     BiomeConfig `yaml:"forest"`
	Plains     BiomeConfig `yaml:"plains"`
	Desert     BiomeConfig `yaml:"desert"`
	Ocean      BiomeConfig `yaml:"ocean"` // threshold unused
}

// FoodConfig holds food spawn and feeding parameters.
type FoodConfig struct {
	SpawnAttempts    int     `yaml:"spawn_attempts"`    // independent draws per tick
	SpawnProbability float64 `yaml:"spawn_probability"` // chance a draw picks a cell at all
	SpawnAmount      float64 `yaml:"spawn_amount"`      // food added on success
	BiteSize         float64 `yaml:"bite_size"`         // max food eaten per tick
	Conversion       float64 `yaml:"conversion"`        // energy gained per unit of food
}

// PopulationConfig holds population parameters.
type PopulationConfig struct {
	InitialPrey      int `yaml:"initial_prey"`
	InitialPredators int `yaml:"initial_predators"`
	MaxAgents        int `yaml:"max_agents"` // 0 = unlimited
}

// FounderConfig holds the starting state of agents placed at world creation.
// Min/Max pairs are sampled uniformly; equal values give a fixed gene.
type FounderConfig struct {
	Energy    float64 `yaml:"energy"`
	SpeedMin  float64 `yaml:"speed_min"`
	SpeedMax  float64 `yaml:"speed_max"`
	VisionMin float64 `yaml:"vision_min"`
	VisionMax float64 `yaml:"vision_max"`
	Health    float64 `yaml:"health"`
	Damage    float64 `yaml:"damage"`
}

// BehaviorConfig holds target selection and steering parameters.
type BehaviorConfig struct {
	FleeVisionFactor  float64 `yaml:"flee_vision_factor"`  // threat radius = vision * this
	MateVisionFactor  float64 `yaml:"mate_vision_factor"`  // mate radius = vision * this
	FleeSpeedFactor   float64 `yaml:"flee_speed_factor"`   // speed boost while fleeing
	WanderSpeedFactor float64 `yaml:"wander_speed_factor"` // damped speed while wandering
	ArriveDistance    float64 `yaml:"arrive_distance"`     // stop when this close to a target
	DesertPenalty     float64 `yaml:"desert_penalty"`      // food score multiplier on desert
}

// MovementConfig holds obstacle parameters.
type MovementConfig struct {
	DireEnergy float64 `yaml:"dire_energy"` // prey below this may cross desert
}

// MetabolismConfig holds per-tick energy costs for prey.
type MetabolismConfig struct {
	BaseCost   float64 `yaml:"base_cost"`
	VisionCost float64 `yaml:"vision_cost"` // per unit of vision gene
	SpeedCost  float64 `yaml:"speed_cost"`  // per unit of speed gene
	Satiation  float64 `yaml:"satiation"`   // agents at or above this do not eat
}

// ReproductionConfig holds mating parameters.
type ReproductionConfig struct {
	Threshold       float64 `yaml:"threshold"`        // energy required to mate
	MatingDistance  float64 `yaml:"mating_distance"`  // contact radius for mating and infection
	Cooldown        float64 `yaml:"cooldown"`         // ticks between matings
	EnergyCost      float64 `yaml:"energy_cost"`      // paid by each parent
	OffspringEnergy float64 `yaml:"offspring_energy"` // newborn starting energy
}

// MutationConfig holds gene perturbation parameters.
type MutationConfig struct {
	Rate   float64 `yaml:"rate"`   // per-gene probability of a perturbation
	Spread float64 `yaml:"spread"` // factor drawn from [1-spread, 1+spread]
}

// Range is a closed interval.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Clamp limits v to the range.
func (r Range) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// GeneBoundsConfig holds the valid range of every heritable trait.
type GeneBoundsConfig struct {
	Speed  Range `yaml:"speed"`
	Vision Range `yaml:"vision"`
	Health Range `yaml:"health"`
	Damage Range `yaml:"damage"`
}

// InfectionConfig holds infection policy.
type InfectionConfig struct {
	RespectCooldown bool    `yaml:"respect_cooldown"` // predators on cooldown cannot infect
	Cooldown        float64 `yaml:"cooldown"`         // predator cooldown after an infection
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"` // ticks per stats window
	BookmarkHistorySize int `yaml:"bookmark_history_size"`
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// BookmarksConfig holds bookmark detection thresholds.
type BookmarksConfig struct {
	OutbreakMultiplier float64 `yaml:"outbreak_multiplier"` // predators grew by this factor in one window
	OutbreakMinPred    int     `yaml:"outbreak_min_pred"`
	CrashDropPercent   float64 `yaml:"crash_drop_percent"` // prey fell this far below recent peak
	CrashMinDrop       int     `yaml:"crash_min_drop"`
	BoomMultiplier     float64 `yaml:"boom_multiplier"` // births vs rolling average
	BoomMinBirths      int     `yaml:"boom_min_births"`
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns a fresh copy of the embedded defaults.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are broken: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the simulation cannot run with.
func (c *Config) Validate() error {
	if c.World.GridSize <= 0 {
		return fmt.Errorf("%w: world.grid_size must be positive, got %d", ErrInvalid, c.World.GridSize)
	}
	if c.Population.InitialPrey < 0 || c.Population.InitialPredators < 0 {
		return fmt.Errorf("%w: population counts must not be negative", ErrInvalid)
	}
	if c.Population.MaxAgents < 0 {
		return fmt.Errorf("%w: population.max_agents must not be negative", ErrInvalid)
	}
	if c.Reproduction.MatingDistance <= 0 {
		return fmt.Errorf("%w: reproduction.mating_distance must be positive", ErrInvalid)
	}
	if c.Food.SpawnAttempts < 0 || c.Food.SpawnAmount < 0 || c.Food.BiteSize < 0 {
		return fmt.Errorf("%w: food parameters must not be negative", ErrInvalid)
	}
	if c.Terrain.NoiseScale <= 0 {
		return fmt.Errorf("%w: terrain.noise_scale must be positive", ErrInvalid)
	}

	ranges := []struct {
		name string
		r    Range
	}{
		{"genes.speed", c.Genes.Speed},
		{"genes.vision", c.Genes.Vision},
		{"genes.health", c.Genes.Health},
		{"genes.damage", c.Genes.Damage},
		{"prey.speed", Range{c.Prey.SpeedMin, c.Prey.SpeedMax}},
		{"prey.vision", Range{c.Prey.VisionMin, c.Prey.VisionMax}},
		{"predator.speed", Range{c.Predator.SpeedMin, c.Predator.SpeedMax}},
		{"predator.vision", Range{c.Predator.VisionMin, c.Predator.VisionMax}},
	}
	for _, rr := range ranges {
		if rr.r.Min > rr.r.Max {
			return fmt.Errorf("%w: %s min %.3f exceeds max %.3f", ErrInvalid, rr.name, rr.r.Min, rr.r.Max)
		}
	}

	probs := []struct {
		name string
		p    float64
	}{
		{"food.spawn_probability", c.Food.SpawnProbability},
		{"mutation.rate", c.Mutation.Rate},
		{"terrain.mountain.food_chance", c.Terrain.Mountain.FoodChance},
		{"terrain.forest.food_chance", c.Terrain.Forest.FoodChance},
		{"terrain.plains.food_chance", c.Terrain.Plains.FoodChance},
		{"terrain.desert.food_chance", c.Terrain.Desert.FoodChance},
		{"terrain.ocean.food_chance", c.Terrain.Ocean.FoodChance},
	}
	for _, pp := range probs {
		if pp.p < 0 || pp.p > 1 {
			return fmt.Errorf("%w: %s must be in [0, 1], got %.3f", ErrInvalid, pp.name, pp.p)
		}
	}

	t := c.Terrain
	if !(t.Mountain.Threshold > t.Forest.Threshold &&
		t.Forest.Threshold > t.Plains.Threshold &&
		t.Plains.Threshold > t.Desert.Threshold) {
		return fmt.Errorf("%w: terrain thresholds must descend mountain > forest > plains > desert", ErrInvalid)
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
