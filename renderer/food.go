package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/quadrisrah/systems"
)

// FoodRenderer draws food as a purple tint over the terrain. Cells holding
// any food are tinted; fullness controls the opacity.
type FoodRenderer struct {
	tex         rl.Texture2D
	size        int
	pixels      []color.RGBA
	full        float64 // food amount drawn at full opacity
	initialized bool
}

// NewFoodRenderer creates a food renderer. full is the food amount drawn at
// full opacity, usually one spawn's worth.
func NewFoodRenderer(full float64) *FoodRenderer {
	if full <= 0 {
		full = 1
	}
	return &FoodRenderer{full: full}
}

// Init allocates the food texture (must be called after the raylib window is created).
func (r *FoodRenderer) Init(size int) {
	if r.initialized {
		return
	}

	img := rl.GenImageColor(size, size, rl.Blank)
	r.tex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(r.tex, rl.FilterPoint)

	r.size = size
	r.pixels = make([]color.RGBA, size*size)
	r.initialized = true
}

// Update uploads the current food levels.
func (r *FoodRenderer) Update(size int, cells []systems.Cell) {
	if !r.initialized {
		r.Init(size)
	}
	if len(cells) != len(r.pixels) {
		return
	}

	for i, c := range cells {
		if c.Food <= 0 {
			r.pixels[i] = color.RGBA{}
			continue
		}
		v := c.Food / r.full
		if v > 1 {
			v = 1
		}
		r.pixels[i] = color.RGBA{R: 153, G: 25, B: 204, A: uint8(120 + v*135)}
	}

	rl.UpdateTexture(r.tex, r.pixels)
}

// Draw renders the food layer over the layout.
func (r *FoodRenderer) Draw(l Layout) {
	if !r.initialized {
		return
	}
	src := rl.Rectangle{Width: float32(r.size), Height: float32(r.size)}
	rl.DrawTexturePro(r.tex, src, l.Bounds(), rl.Vector2{}, 0, rl.White)
}

// Unload frees GPU resources.
func (r *FoodRenderer) Unload() {
	if !r.initialized {
		return
	}
	rl.UnloadTexture(r.tex)
	r.initialized = false
}
