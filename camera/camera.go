// Package camera provides a 2D camera for zooming and panning over the grid.
package camera

// Camera controls the viewport into the grid. Positions are in grid units.
// At zoom 1 the whole grid fits the shorter viewport side.
type Camera struct {
	// Position is the camera center in grid coordinates
	X, Y float32

	// Zoom level (1.0 = whole grid visible, 2.0 = 2x magnification)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Grid side length in cells
	GridSize float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera centered on the grid showing all of it.
func New(viewportW, viewportH, gridSize float32) *Camera {
	return &Camera{
		X:         gridSize / 2,
		Y:         gridSize / 2,
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		GridSize:  gridSize,
		MinZoom:   1.0,
		MaxZoom:   8.0,
	}
}

// Scale returns screen pixels per grid cell.
func (c *Camera) Scale() float32 {
	return min(c.ViewportW, c.ViewportH) / c.GridSize * c.Zoom
}

// WorldToScreen converts grid coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	s := c.Scale()
	sx = c.ViewportW/2 + (wx-c.X)*s
	sy = c.ViewportH/2 + (wy-c.Y)*s
	return sx, sy
}

// ScreenToWorld converts screen coordinates to grid coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	s := c.Scale()
	wx = c.X + (sx-c.ViewportW/2)/s
	wy = c.Y + (sy-c.ViewportH/2)/s
	return wx, wy
}

// GridRect returns the screen position and side length of the whole grid.
func (c *Camera) GridRect() (x, y, side float32) {
	x, y = c.WorldToScreen(0, 0)
	return x, y, c.GridSize * c.Scale()
}

// IsVisible returns true if a circle at (wx, wy) with the given radius in
// cells could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	s := c.Scale()
	halfW := c.ViewportW/(2*s) + radius
	halfH := c.ViewportH/(2*s) + radius
	return absf(wx-c.X) <= halfW && absf(wy-c.Y) <= halfH
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.clampCenter()
}

// Pan moves the camera by the given delta in screen pixels.
// The view stays over the grid.
func (c *Camera) Pan(dx, dy float32) {
	s := c.Scale()
	c.X += dx / s
	c.Y += dy / s
	c.clampCenter()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
	c.clampCenter()
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// ZoomAt zooms by factor keeping the grid point under (sx, sy) fixed
// where the bounds allow.
func (c *Camera) ZoomAt(factor, sx, sy float32) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.Zoom = clamp(c.Zoom*factor, c.MinZoom, c.MaxZoom)
	s := c.Scale()
	c.X = wx - (sx-c.ViewportW/2)/s
	c.Y = wy - (sy-c.ViewportH/2)/s
	c.clampCenter()
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.X = c.GridSize / 2
	c.Y = c.GridSize / 2
	c.Zoom = 1.0
}

// clampCenter keeps the visible area inside the grid. When the grid is
// smaller than the viewport along an axis it is centered on that axis.
func (c *Camera) clampCenter() {
	s := c.Scale()
	c.X = clampAxis(c.X, c.ViewportW/(2*s), c.GridSize)
	c.Y = clampAxis(c.Y, c.ViewportH/(2*s), c.GridSize)
}

func clampAxis(v, half, size float32) float32 {
	if 2*half >= size {
		return size / 2
	}
	return clamp(v, half, size-half)
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
