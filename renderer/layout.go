// Package renderer draws world snapshots with raylib.
package renderer

import rl "github.com/gen2brain/raylib-go/raylib"

// Layout maps grid coordinates onto a screen rectangle.
type Layout struct {
	X, Y     float32 // top-left corner of the grid on screen
	CellW    float32
	CellH    float32
	GridSize int
}

// NewLayout stretches a gridSize x gridSize grid over the given rectangle.
func NewLayout(gridSize int, x, y, width, height float32) Layout {
	if gridSize < 1 {
		gridSize = 1
	}
	return Layout{
		X:        x,
		Y:        y,
		CellW:    width / float32(gridSize),
		CellH:    height / float32(gridSize),
		GridSize: gridSize,
	}
}

// ToScreen converts a continuous grid position to screen pixels.
func (l Layout) ToScreen(gx, gy float64) rl.Vector2 {
	return rl.Vector2{
		X: l.X + float32(gx)*l.CellW,
		Y: l.Y + float32(gy)*l.CellH,
	}
}

// ToGrid converts screen pixels to a continuous grid position.
func (l Layout) ToGrid(p rl.Vector2) (float64, float64) {
	return float64((p.X - l.X) / l.CellW), float64((p.Y - l.Y) / l.CellH)
}

// Bounds returns the screen rectangle covered by the grid.
func (l Layout) Bounds() rl.Rectangle {
	return rl.Rectangle{
		X:      l.X,
		Y:      l.Y,
		Width:  l.CellW * float32(l.GridSize),
		Height: l.CellH * float32(l.GridSize),
	}
}
