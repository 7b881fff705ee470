package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNew(t *testing.T) {
	cam := New(1000, 1000, 100)

	if cam.X != 50 || cam.Y != 50 {
		t.Errorf("expected camera at (50, 50), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
	if cam.Scale() != 10 {
		t.Errorf("expected 10 px per cell, got %f", cam.Scale())
	}
}

func TestGridRectFitsShorterSide(t *testing.T) {
	cam := New(1200, 800, 100)

	x, y, side := cam.GridRect()
	if !near(x, 200) || !near(y, 0) || !near(side, 800) {
		t.Errorf("grid rect = (%f, %f, %f), want (200, 0, 800)", x, y, side)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1000, 1000, 100)
	cam.SetZoom(2.5)
	cam.Pan(120, -40)

	testCases := []struct{ sx, sy float32 }{
		{500, 500}, // center
		{100, 100}, // top-left
		{900, 650}, // near bottom-right
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestPanStaysOnGrid(t *testing.T) {
	cam := New(1000, 1000, 100)

	// At zoom 1 the whole grid is visible, so panning is a no-op.
	cam.Pan(300, 300)
	if cam.X != 50 || cam.Y != 50 {
		t.Errorf("pan at zoom 1 moved camera to (%f, %f)", cam.X, cam.Y)
	}

	// At zoom 2 half the grid is visible; the center can range over [25, 75].
	cam.SetZoom(2)
	cam.Pan(-10000, 10000)
	if cam.X != 25 || cam.Y != 75 {
		t.Errorf("expected clamped center (25, 75), got (%f, %f)", cam.X, cam.Y)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1000, 1000, 100)

	cam.SetZoom(0.1)
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom clamped to 1.0, got %f", cam.Zoom)
	}

	cam.SetZoom(100)
	if cam.Zoom != 8.0 {
		t.Errorf("expected zoom clamped to 8.0, got %f", cam.Zoom)
	}
}

func TestZoomAtKeepsCursorPoint(t *testing.T) {
	cam := New(1000, 1000, 100)
	cam.SetZoom(2)

	wx, wy := cam.ScreenToWorld(500, 500)
	cam.ZoomAt(2, 500, 500)
	gx, gy := cam.ScreenToWorld(500, 500)
	if !near(wx, gx) || !near(wy, gy) {
		t.Errorf("point under cursor moved from (%f, %f) to (%f, %f)", wx, wy, gx, gy)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1000, 1000, 100)
	cam.SetZoom(4) // visible range 37.5..62.5 on both axes

	if !cam.IsVisible(50, 50, 1) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(90, 90, 1) {
		t.Error("far point should not be visible")
	}
	if !cam.IsVisible(35, 50, 5) {
		t.Error("edge point with large radius should be visible")
	}
}

func TestReset(t *testing.T) {
	cam := New(1000, 1000, 100)
	cam.SetZoom(3)
	cam.Pan(200, 200)

	cam.Reset()

	if cam.X != 50 || cam.Y != 50 {
		t.Errorf("expected position (50, 50), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}
