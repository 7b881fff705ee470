package systems

import (
	"errors"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/quadrisrah/config"
)

func TestClassify(t *testing.T) {
	cfg := config.Defaults()

	tests := []struct {
		v    float64
		want Terrain
	}{
		{0.9, TerrainMountain},
		{0.51, TerrainMountain},
		{0.5, TerrainForest},
		{0.3, TerrainForest},
		{0.2, TerrainPlains},
		{0.0, TerrainPlains},
		{-0.1, TerrainDesert},
		{-0.2, TerrainDesert},
		{-0.3, TerrainOcean},
		{-1.0, TerrainOcean},
	}

	for _, tt := range tests {
		if got := Classify(tt.v, cfg.Terrain); got != tt.want {
			t.Errorf("Classify(%v) = %s, want %s", tt.v, got, tt.want)
		}
	}
}

func TestNewTerrainFieldRejectsBadSize(t *testing.T) {
	cfg := config.Defaults()

	if _, err := NewTerrainFieldFromGrid(0, nil, cfg.Terrain, cfg.Food); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("size 0: expected ErrInvalid, got %v", err)
	}
	if _, err := NewTerrainFieldFromGrid(3, make([]Terrain, 8), cfg.Terrain, cfg.Food); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("short grid: expected ErrInvalid, got %v", err)
	}
	noise := NewFractalNoise(1, 1, 2, 0.5)
	if _, err := NewTerrainField(-4, noise, cfg.Terrain, cfg.Food); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("negative size: expected ErrInvalid, got %v", err)
	}
}

func TestNewTerrainFieldDeterministic(t *testing.T) {
	cfg := config.Defaults()

	a, err := NewTerrainField(32, NewFractalNoise(7, 1, 2, 0.5), cfg.Terrain, cfg.Food)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewTerrainField(32, NewFractalNoise(7, 1, 2, 0.5), cfg.Terrain, cfg.Food)
	if err != nil {
		t.Fatal(err)
	}

	ca, cb := a.CopyCells(), b.CopyCells()
	for i := range ca {
		if ca[i] != cb[i] {
			t.Fatalf("cell %d differs between fields built from the same seed", i)
		}
	}
}

func TestFractalNoiseRange(t *testing.T) {
	n := NewFractalNoise(3, 4, 2, 0.5)
	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			v := n.Noise2D(float64(x)*0.13, float64(y)*0.13)
			if v < -1 || v > 1 {
				t.Fatalf("Noise2D(%d,%d) = %v, outside [-1,1]", x, y, v)
			}
		}
	}
}

func TestConsumeNeverNegative(t *testing.T) {
	cfg := config.Defaults()
	f := plainsField(t, cfg, 4)
	f.AddFood(1, 1, 30)

	tests := []struct {
		name   string
		amount float64
		want   float64
		left   float64
	}{
		{"partial", 20, 20, 10},
		{"more than available", 20, 10, 0},
		{"empty cell", 20, 0, 0},
		{"negative request", -5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.Consume(1, 1, tt.amount)
			if got != tt.want {
				t.Errorf("Consume = %v, want %v", got, tt.want)
			}
			if food := f.At(1, 1).Food; food != tt.left {
				t.Errorf("food left = %v, want %v", food, tt.left)
			}
		})
	}
}

func TestRegenerateSkipsOcean(t *testing.T) {
	cfg := config.Defaults()
	f := terrainFromRows(t, cfg,
		"OOO",
		"OOO",
		"OOO",
	)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		if added := f.Regenerate(rng); added != 0 {
			t.Fatalf("tick %d: ocean received %v food", i, added)
		}
	}
}

func TestRegenerateAddsFixedIncrement(t *testing.T) {
	cfg := config.Defaults()
	cfg.Terrain.Plains.FoodChance = 1
	cfg.Food.SpawnProbability = 1
	f := plainsField(t, cfg, 8)

	rng := rand.New(rand.NewSource(2))
	added := f.Regenerate(rng)

	want := float64(cfg.Food.SpawnAttempts) * cfg.Food.SpawnAmount
	if added != want {
		t.Errorf("Regenerate added %v, want %v", added, want)
	}
	if total := f.TotalFood(); total != want {
		t.Errorf("TotalFood = %v, want %v", total, want)
	}
}

func TestClampPosAndCellOf(t *testing.T) {
	cfg := config.Defaults()
	f := plainsField(t, cfg, 10)

	p := f.ClampPos(r2.Vec{X: -3, Y: 42})
	if p.X != 0 || p.Y != 9 {
		t.Errorf("ClampPos = %v, want (0, 9)", p)
	}
	x, y := f.CellOf(r2.Vec{X: 9.9, Y: 3.7})
	if x != 9 || y != 3 {
		t.Errorf("CellOf = (%d,%d), want (9,3)", x, y)
	}
}

func TestPassableCells(t *testing.T) {
	cfg := config.Defaults()
	f := terrainFromRows(t, cfg,
		"OP",
		"DO",
	)
	got := f.PassableCells()
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("PassableCells = %v, want [1 2]", got)
	}
}
