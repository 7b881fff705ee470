package systems

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/quadrisrah/config"
)

// Terrain is the biome category of a cell.
type Terrain uint8

const (
	TerrainMountain Terrain = iota // slowest passable ground
	TerrainForest
	TerrainPlains
	TerrainDesert // passable for predators, and for prey only when dire
	TerrainOcean  // impassable
)

// String returns the biome name.
func (t Terrain) String() string {
	switch t {
	case TerrainMountain:
		return "mountain"
	case TerrainForest:
		return "forest"
	case TerrainPlains:
		return "plains"
	case TerrainDesert:
		return "desert"
	case TerrainOcean:
		return "ocean"
	default:
		return "unknown"
	}
}

// Cell is one grid square.
type Cell struct {
	Terrain Terrain
	Food    float64
}

// Classify maps a noise sample to a biome using the configured bands,
// from the highest threshold down.
func Classify(v float64, cfg config.TerrainConfig) Terrain {
	switch {
	case v > cfg.Mountain.Threshold:
		return TerrainMountain
	case v > cfg.Forest.Threshold:
		return TerrainForest
	case v > cfg.Plains.Threshold:
		return TerrainPlains
	case v > cfg.Desert.Threshold:
		return TerrainDesert
	default:
		return TerrainOcean
	}
}

// TerrainField owns the terrain grid and the per-cell food level.
// Terrain is fixed at creation; only food changes afterwards.
type TerrainField struct {
	size  int
	cells []Cell // row-major, index y*size + x
	cfg   config.TerrainConfig
	food  config.FoodConfig
}

// NewTerrainField generates a size x size field by sampling noise at
// (x*scale, y*scale) for every cell.
func NewTerrainField(size int, noise NoiseSampler, tc config.TerrainConfig, fc config.FoodConfig) (*TerrainField, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: grid size must be positive, got %d", config.ErrInvalid, size)
	}

	grid := make([]Terrain, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			v := noise.Noise2D(float64(x)*tc.NoiseScale, float64(y)*tc.NoiseScale)
			grid[y*size+x] = Classify(v, tc)
		}
	}
	return NewTerrainFieldFromGrid(size, grid, tc, fc)
}

// NewTerrainFieldFromGrid builds a field from an explicit row-major grid.
// All cells start without food.
func NewTerrainFieldFromGrid(size int, grid []Terrain, tc config.TerrainConfig, fc config.FoodConfig) (*TerrainField, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: grid size must be positive, got %d", config.ErrInvalid, size)
	}
	if len(grid) != size*size {
		return nil, fmt.Errorf("%w: grid has %d cells, want %d", config.ErrInvalid, len(grid), size*size)
	}

	cells := make([]Cell, len(grid))
	for i, t := range grid {
		cells[i].Terrain = t
	}
	return &TerrainField{size: size, cells: cells, cfg: tc, food: fc}, nil
}

// Size returns the number of cells per side.
func (f *TerrainField) Size() int {
	return f.size
}

// MaxCoord is the largest valid coordinate on either axis.
func (f *TerrainField) MaxCoord() float64 {
	return float64(f.size - 1)
}

// ClampPos clamps a continuous position into [0, size-1] on both axes.
func (f *TerrainField) ClampPos(p r2.Vec) r2.Vec {
	hi := f.MaxCoord()
	return r2.Vec{X: clampFloat(p.X, 0, hi), Y: clampFloat(p.Y, 0, hi)}
}

// CellOf returns the indices of the cell containing p, after clamping.
func (f *TerrainField) CellOf(p r2.Vec) (x, y int) {
	c := f.ClampPos(p)
	return int(c.X), int(c.Y)
}

// clampIndex clamps a cell index into [0, size-1].
func (f *TerrainField) clampIndex(i int) int {
	if i < 0 {
		return 0
	}
	if i >= f.size {
		return f.size - 1
	}
	return i
}

// At returns the cell at (x, y). Indices are clamped.
func (f *TerrainField) At(x, y int) Cell {
	return f.cells[f.clampIndex(y)*f.size+f.clampIndex(x)]
}

// TerrainAt returns the biome under a continuous position.
func (f *TerrainField) TerrainAt(p r2.Vec) Terrain {
	x, y := f.CellOf(p)
	return f.cells[y*f.size+x].Terrain
}

// Biome returns the configuration of a terrain category.
func (f *TerrainField) Biome(t Terrain) config.BiomeConfig {
	switch t {
	case TerrainMountain:
		return f.cfg.Mountain
	case TerrainForest:
		return f.cfg.Forest
	case TerrainPlains:
		return f.cfg.Plains
	case TerrainDesert:
		return f.cfg.Desert
	default:
		return f.cfg.Ocean
	}
}

// SpeedAt returns the movement multiplier under a continuous position.
func (f *TerrainField) SpeedAt(p r2.Vec) float64 {
	return f.Biome(f.TerrainAt(p)).Speed
}

// Regenerate runs the per-tick food spawn draws and returns the food added.
func (f *TerrainField) Regenerate(rng *rand.Rand) float64 {
	var added float64
	for i := 0; i < f.food.SpawnAttempts; i++ {
		if rng.Float64() >= f.food.SpawnProbability {
			continue
		}
		x := rng.Intn(f.size)
		y := rng.Intn(f.size)
		cell := &f.cells[y*f.size+x]
		if rng.Float64() < f.Biome(cell.Terrain).FoodChance {
			cell.Food += f.food.SpawnAmount
			added += f.food.SpawnAmount
		}
	}
	return added
}

// AddFood places food on a cell. Negative amounts are ignored.
func (f *TerrainField) AddFood(x, y int, amount float64) {
	if amount <= 0 {
		return
	}
	f.cells[f.clampIndex(y)*f.size+f.clampIndex(x)].Food += amount
}

// Consume removes up to amount of food from a cell and returns what was removed.
// Food never drops below zero.
func (f *TerrainField) Consume(x, y int, amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	cell := &f.cells[f.clampIndex(y)*f.size+f.clampIndex(x)]
	eaten := math.Min(amount, cell.Food)
	if eaten <= 0 {
		return 0
	}
	cell.Food -= eaten
	if cell.Food < 0 {
		cell.Food = 0
	}
	return eaten
}

// TotalFood returns the food held by all cells.
func (f *TerrainField) TotalFood() float64 {
	var total float64
	for i := range f.cells {
		total += f.cells[i].Food
	}
	return total
}

// PassableCells returns the indices of every non-ocean cell.
func (f *TerrainField) PassableCells() []int {
	var out []int
	for i := range f.cells {
		if f.cells[i].Terrain != TerrainOcean {
			out = append(out, i)
		}
	}
	return out
}

// CopyCells returns a copy of the grid, row-major.
func (f *TerrainField) CopyCells() []Cell {
	out := make([]Cell, len(f.cells))
	copy(out, f.cells)
	return out
}
