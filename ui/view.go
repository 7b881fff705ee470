package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/quadrisrah/camera"
	"github.com/pthm-cable/quadrisrah/config"
	"github.com/pthm-cable/quadrisrah/game"
	"github.com/pthm-cable/quadrisrah/renderer"
	"github.com/pthm-cable/quadrisrah/telemetry"
)

// View renders a Game and routes keyboard and mouse input to it.
type View struct {
	cfg *config.Config
	cam *camera.Camera

	terrain *renderer.TerrainRenderer
	food    *renderer.FoodRenderer
	agents  *renderer.AgentRenderer

	overlays  *OverlayRegistry
	hud       *HUD
	controls  *ControlsPanel
	perf      *PerfPanel
	window    *WindowPanel
	inspector *Inspector
	registry  *RegistryTable

	lastStats telemetry.WindowStats
	hasStats  bool

	selectedID uint32
	hasSelect  bool

	snap game.Snapshot
}

// NewView creates a view for g and subscribes to its window stats.
// Must be called after the raylib window is created.
func NewView(g *game.Game, cfg *config.Config) *View {
	width := int32(cfg.Screen.Width)
	v := &View{
		cfg:       cfg,
		terrain:   renderer.NewTerrainRenderer(),
		food:      renderer.NewFoodRenderer(cfg.Food.SpawnAmount),
		agents:    renderer.NewAgentRenderer(renderer.DefaultAgentStyle(), cfg.Reproduction.Threshold),
		overlays:  NewOverlayRegistry(),
		hud:       NewHUD(),
		controls:  NewControlsPanel(width-230, 80, 220),
		perf:      NewPerfPanel(width-500, 80, 260),
		window:    NewWindowPanel(width-500, 80, 260),
		inspector: NewInspector(20, 80, 240),
		registry:  NewRegistryTable(),
	}
	g.SetStatsCallback(func(s telemetry.WindowStats) {
		v.lastStats = s
		v.hasStats = true
	})

	snap := g.World().Snapshot()
	v.cam = camera.New(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()), float32(snap.Size))
	v.terrain.Init(snap.Size, snap.Cells)
	v.food.Init(snap.Size)
	v.snap = snap
	return v
}

func (v *View) layout() renderer.Layout {
	x, y, side := v.cam.GridRect()
	return renderer.NewLayout(v.snap.Size, x, y, side, side)
}

// HandleInput processes one frame of input.
func (v *View) HandleInput(g *game.Game) {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.TogglePause()
		v.registry.Reset()
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		g.SetStepsPerUpdate(g.StepsPerUpdate() + 1)
	}
	if rl.IsKeyPressed(rl.KeyComma) {
		g.SetStepsPerUpdate(g.StepsPerUpdate() - 1)
	}
	if rl.IsKeyPressed(rl.KeyBackspace) {
		v.hasSelect = false
	}

	if g.Paused() {
		v.registry.HandleKeys(len(v.snap.Agents))
		return
	}

	v.overlays.HandleKeys()
	v.handleCamera()

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		idx := v.agents.Pick(v.snap.Agents, v.layout(), rl.GetMousePosition(), 15)
		v.hasSelect = idx >= 0
		if idx >= 0 {
			v.selectedID = v.snap.Agents[idx].ID
		}
	}
}

func (v *View) handleCamera() {
	v.cam.Resize(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		mouse := rl.GetMousePosition()
		factor := float32(1.1)
		if wheel < 0 {
			factor = 1 / factor
		}
		v.cam.ZoomAt(factor, mouse.X, mouse.Y)
	}
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		d := rl.GetMouseDelta()
		v.cam.Pan(-d.X, -d.Y)
	}
	if rl.IsKeyPressed(rl.KeyR) {
		v.cam.Reset()
	}
}

// Refresh takes a new snapshot of the world. Call once per frame after Update.
func (v *View) Refresh(g *game.Game) {
	v.snap = g.World().Snapshot()
	v.food.Update(v.snap.Size, v.snap.Cells)
}

func (v *View) selected() (game.AgentState, bool) {
	if !v.hasSelect {
		return game.AgentState{}, false
	}
	for _, a := range v.snap.Agents {
		if a.ID == v.selectedID {
			return a, true
		}
	}
	v.hasSelect = false
	return game.AgentState{}, false
}

// Draw renders the world and every enabled panel.
func (v *View) Draw(g *game.Game) {
	rl.ClearBackground(rl.RayWhite)

	l := v.layout()
	v.terrain.Draw(l)
	if v.overlays.IsEnabled(OverlayFood) {
		v.food.Draw(l)
	}
	if v.overlays.IsEnabled(OverlayGrid) {
		v.terrain.DrawGrid(l)
	}
	if v.overlays.IsEnabled(OverlayVision) {
		v.agents.DrawVision(v.snap.Agents, l)
	}
	v.agents.Draw(v.snap.Agents, l)

	sel, ok := v.selected()
	if ok {
		v.agents.DrawSelection(sel, l)
	}

	v.hud.Draw(HUDData{
		Valkarai:  v.snap.Prey,
		Zombies:   v.snap.Predators,
		Tick:      v.snap.Tick,
		Speed:     g.StepsPerUpdate(),
		FPS:       rl.GetFPS(),
		TotalFood: v.snap.TotalFood,
		Paused:    g.Paused(),
	})

	if g.Paused() {
		bounds := rl.Rectangle{
			X:      50,
			Y:      50,
			Width:  float32(rl.GetScreenWidth()) - 100,
			Height: float32(rl.GetScreenHeight()) - 100,
		}
		v.registry.Draw(bounds, v.snap.Agents)
		return
	}

	if ok {
		v.inspector.Draw(InspectorData{
			Agent:    sel,
			Lifetime: g.Lifetime(sel.ID),
			Color:    v.agents.Color(sel),
		})
	}
	if v.overlays.IsEnabled(OverlayPerf) {
		v.perf.Draw(g.Perf(), g.PhaseName)
	}
	if v.overlays.IsEnabled(OverlayWindow) {
		v.window.Draw(v.lastStats, v.hasStats)
	}
	if v.overlays.IsEnabled(OverlayControls) {
		v.controls.Draw(v.overlays)
	}
}

// Unload frees GPU resources.
func (v *View) Unload() {
	v.terrain.Unload()
	v.food.Unload()
}
