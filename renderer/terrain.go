package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/quadrisrah/systems"
)

// BiomeColor returns the display color of a biome.
func BiomeColor(t systems.Terrain) color.RGBA {
	switch t {
	case systems.TerrainMountain:
		return color.RGBA{R: 80, G: 80, B: 80, A: 255}
	case systems.TerrainForest:
		return color.RGBA{R: 0, G: 117, B: 44, A: 255}
	case systems.TerrainPlains:
		return color.RGBA{R: 102, G: 178, B: 51, A: 255}
	case systems.TerrainDesert:
		return color.RGBA{R: 253, G: 249, B: 0, A: 255}
	case systems.TerrainOcean:
		return color.RGBA{R: 0, G: 121, B: 241, A: 255}
	default:
		return color.RGBA{A: 255}
	}
}

// TerrainRenderer draws the biome grid. Terrain never changes after world
// creation, so the grid is uploaded to a texture once.
type TerrainRenderer struct {
	tex         rl.Texture2D
	size        int
	initialized bool
}

// NewTerrainRenderer creates a new terrain renderer.
func NewTerrainRenderer() *TerrainRenderer {
	return &TerrainRenderer{}
}

// Init uploads the biome grid (must be called after the raylib window is created).
func (r *TerrainRenderer) Init(size int, cells []systems.Cell) {
	if r.initialized {
		r.Unload()
	}

	pixels := make([]color.RGBA, len(cells))
	for i, c := range cells {
		pixels[i] = BiomeColor(c.Terrain)
	}

	img := rl.GenImageColor(size, size, rl.Black)
	r.tex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(r.tex, rl.FilterPoint)
	rl.UpdateTexture(r.tex, pixels)

	r.size = size
	r.initialized = true
}

// Draw stretches the terrain texture over the layout.
func (r *TerrainRenderer) Draw(l Layout) {
	if !r.initialized {
		return
	}
	src := rl.Rectangle{Width: float32(r.size), Height: float32(r.size)}
	rl.DrawTexturePro(r.tex, src, l.Bounds(), rl.Vector2{}, 0, rl.White)
}

// DrawGrid outlines every cell; useful for checking movement against cell edges.
func (r *TerrainRenderer) DrawGrid(l Layout) {
	lineColor := rl.Color{R: 0, G: 0, B: 0, A: 40}
	b := l.Bounds()
	for i := 0; i <= l.GridSize; i++ {
		x := b.X + float32(i)*l.CellW
		y := b.Y + float32(i)*l.CellH
		rl.DrawLineV(rl.Vector2{X: x, Y: b.Y}, rl.Vector2{X: x, Y: b.Y + b.Height}, lineColor)
		rl.DrawLineV(rl.Vector2{X: b.X, Y: y}, rl.Vector2{X: b.X + b.Width, Y: y}, lineColor)
	}
}

// Unload frees GPU resources.
func (r *TerrainRenderer) Unload() {
	if !r.initialized {
		return
	}
	rl.UnloadTexture(r.tex)
	r.initialized = false
}
