package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/quadrisrah/components"
	"github.com/pthm-cable/quadrisrah/game"
)

// AgentStyle holds the agent palette and sizing.
type AgentStyle struct {
	Prey          rl.Color
	PreyReady     rl.Color // prey able to mate
	Predator      rl.Color
	Selected      rl.Color
	VisionDivisor float32 // radius = vision / divisor * cell width * RadiusScale
	RadiusScale   float32
}

// DefaultAgentStyle returns the default palette.
func DefaultAgentStyle() AgentStyle {
	return AgentStyle{
		Prey:          rl.Red,
		PreyReady:     rl.Orange,
		Predator:      rl.Black,
		Selected:      rl.White,
		VisionDivisor: 15,
		RadiusScale:   0.7,
	}
}

// AgentRenderer draws agents as filled circles.
type AgentRenderer struct {
	style         AgentStyle
	mateThreshold float64
}

// NewAgentRenderer creates an agent renderer. Prey above mateThreshold energy
// and off cooldown are drawn in the ready color.
func NewAgentRenderer(style AgentStyle, mateThreshold float64) *AgentRenderer {
	return &AgentRenderer{style: style, mateThreshold: mateThreshold}
}

// Color returns the fill color of an agent.
func (r *AgentRenderer) Color(a game.AgentState) rl.Color {
	switch a.Kind {
	case components.KindPredator:
		return r.style.Predator
	default:
		if a.Energy > r.mateThreshold && a.Cooldown == 0 {
			return r.style.PreyReady
		}
		return r.style.Prey
	}
}

// Radius returns the on-screen radius of an agent.
func (r *AgentRenderer) Radius(a game.AgentState, l Layout) float32 {
	rad := float32(a.Genome.Vision) / r.style.VisionDivisor * l.CellW * r.style.RadiusScale
	if rad < 1 {
		rad = 1
	}
	return rad
}

// Draw renders all agents.
func (r *AgentRenderer) Draw(agents []game.AgentState, l Layout) {
	for i := range agents {
		a := &agents[i]
		rl.DrawCircleV(l.ToScreen(a.X, a.Y), r.Radius(*a, l), r.Color(*a))
	}
}

// DrawVision outlines the vision radius of every agent.
func (r *AgentRenderer) DrawVision(agents []game.AgentState, l Layout) {
	for i := range agents {
		a := &agents[i]
		c := r.Color(*a)
		c.A = 70
		rl.DrawCircleLinesV(l.ToScreen(a.X, a.Y), float32(a.Genome.Vision)*l.CellW, c)
	}
}

// DrawSelection highlights one agent and its vision radius.
func (r *AgentRenderer) DrawSelection(a game.AgentState, l Layout) {
	center := l.ToScreen(a.X, a.Y)
	rl.DrawCircleLinesV(center, r.Radius(a, l)+3, r.style.Selected)
	rl.DrawCircleLinesV(center, float32(a.Genome.Vision)*l.CellW, rl.Fade(r.style.Selected, 0.5))
}

// Pick returns the index of the agent closest to the screen point within
// maxDist pixels, or -1.
func (r *AgentRenderer) Pick(agents []game.AgentState, l Layout, p rl.Vector2, maxDist float32) int {
	best := -1
	bestDist := maxDist * maxDist
	for i := range agents {
		s := l.ToScreen(agents[i].X, agents[i].Y)
		dx, dy := s.X-p.X, s.Y-p.Y
		if d := dx*dx + dy*dy; d <= bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}
