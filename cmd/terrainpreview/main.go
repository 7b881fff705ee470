// Terrain preview tool - interactive biome map with sliders.
//
// Usage: go run ./cmd/terrainpreview [-config path]
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math/rand"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/quadrisrah/config"
	"github.com/pthm-cable/quadrisrah/renderer"
	"github.com/pthm-cable/quadrisrah/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 600
	panelWidth   = windowWidth - previewSize - 30
)

// previewParams holds the noise parameters under edit.
type previewParams struct {
	NoiseScale float32
	Octaves    int
	Lacunarity float32
	Gain       float32
	Seed       int64
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	size := cfg.World.GridSize

	rl.InitWindow(windowWidth, windowHeight, "Terrain Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := previewParams{
		NoiseScale: float32(cfg.Terrain.NoiseScale),
		Octaves:    cfg.Terrain.Octaves,
		Lacunarity: float32(cfg.Terrain.Lacunarity),
		Gain:       float32(cfg.Terrain.Gain),
		Seed:       1,
	}

	img := rl.GenImageColor(size, size, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(texture, rl.FilterPoint)
	defer rl.UnloadTexture(texture)

	pixels := make([]color.RGBA, size*size)
	var counts [systems.TerrainOcean + 1]int
	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			counts = generate(cfg, params, pixels)
			rl.UpdateTexture(texture, pixels)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{Width: float32(size), Height: float32(size)},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		// Biome coverage
		statsY := int32(previewSize + 25)
		for t := systems.TerrainMountain; t <= systems.TerrainOcean; t++ {
			x := 15 + int32(t)*120
			rl.DrawRectangle(x, statsY+2, 12, 12, renderer.BiomeColor(t))
			pct := float64(counts[t]) / float64(size*size) * 100
			rl.DrawText(fmt.Sprintf("%s %.0f%%", t, pct), x+18, statsY, 16, rl.DarkGray)
		}

		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Terrain Noise", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		var changed bool
		params.NoiseScale, changed = slider(panelX, &panelY, "Noise scale (frequency)", "%.3f", params.NoiseScale, 0.005, 0.3)
		needsRegen = needsRegen || changed

		octaves, changed := slider(panelX, &panelY, "Octaves (detail level)", "%.0f", float32(params.Octaves), 1, 6)
		params.Octaves = int(octaves)
		needsRegen = needsRegen || changed

		params.Lacunarity, changed = slider(panelX, &panelY, "Lacunarity (frequency multiplier)", "%.2f", params.Lacunarity, 1.5, 4.0)
		needsRegen = needsRegen || changed

		params.Gain, changed = slider(panelX, &panelY, "Gain (amplitude multiplier)", "%.2f", params.Gain, 0.2, 0.9)
		needsRegen = needsRegen || changed

		seed, changed := slider(panelX, &panelY, "Seed", "%.0f", float32(params.Seed), 0, 99999)
		params.Seed = int64(seed)
		needsRegen = needsRegen || changed
		panelY += 10

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = rand.Int63n(100000)
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Print YAML") {
			fmt.Printf("terrain:\n  noise_scale: %.4f\n  octaves: %d\n  lacunarity: %.2f\n  gain: %.2f\n",
				params.NoiseScale, params.Octaves, params.Lacunarity, params.Gain)
		}

		rl.EndDrawing()
	}
}

// slider draws a labelled slider bar and advances y. Reports whether the value changed.
func slider(x float32, y *float32, label, format string, value, lo, hi float32) (float32, bool) {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	next := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: float32(panelWidth - 80), Height: 20},
		"", "",
		value, lo, hi,
	)
	rl.DrawText(fmt.Sprintf(format, next), int32(x+float32(panelWidth-70)), int32(*y+2), 16, rl.DarkGray)
	*y += 35
	return next, next != value
}

// generate classifies the grid with the given noise parameters and fills
// pixels with biome colors. Returns the cell count per biome.
func generate(cfg *config.Config, p previewParams, pixels []color.RGBA) [systems.TerrainOcean + 1]int {
	var counts [systems.TerrainOcean + 1]int

	tc := cfg.Terrain
	tc.NoiseScale = float64(p.NoiseScale)
	tc.Octaves = p.Octaves
	tc.Lacunarity = float64(p.Lacunarity)
	tc.Gain = float64(p.Gain)

	noise := systems.NewFractalNoise(p.Seed, tc.Octaves, tc.Lacunarity, tc.Gain)
	field, err := systems.NewTerrainField(cfg.World.GridSize, noise, tc, cfg.Food)
	if err != nil {
		log.Printf("terrain: %v", err)
		return counts
	}

	for i, c := range field.CopyCells() {
		pixels[i] = renderer.BiomeColor(c.Terrain)
		counts[c.Terrain]++
	}
	return counts
}
