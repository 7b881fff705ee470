package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/quadrisrah/components"
	"github.com/pthm-cable/quadrisrah/game"
	"github.com/pthm-cable/quadrisrah/telemetry"
)

// InspectorData holds the agent shown in the inspector.
type InspectorData struct {
	Agent    game.AgentState
	Lifetime *telemetry.LifetimeStats
	Color    rl.Color
}

// Inspector renders the selected agent.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
	sections []SectionDescriptor
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		sections: inspectorSections(),
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

func agentOf(d any) game.AgentState {
	return d.(InspectorData).Agent
}

func inspectorSections() []SectionDescriptor {
	hasLifetime := func(d any) bool { return d.(InspectorData).Lifetime != nil }

	return []SectionDescriptor{
		{
			ID: "identity",
			Fields: []FieldDescriptor{
				{ID: "kind", Label: "Kind", Widget: WidgetSwatch, ColorGetter: func(d any) rl.Color { return d.(InspectorData).Color }},
				{ID: "generation", Label: "Generation", Widget: WidgetText, TextGetter: func(d any) string {
					return fmt.Sprintf("%d", agentOf(d).Generation)
				}},
				{ID: "position", Label: "Position", Widget: WidgetText, TextGetter: func(d any) string {
					a := agentOf(d)
					return fmt.Sprintf("%.2f, %.2f", a.X, a.Y)
				}},
			},
		},
		{
			ID:    "vitals",
			Title: "Vitals",
			Fields: []FieldDescriptor{
				{
					ID: "energy", Label: "Energy", Widget: WidgetEnergyBar, Format: "%.0f",
					Range:   FieldRange{Min: 0, Max: 100},
					Getter:  func(d any) float32 { return float32(agentOf(d).Energy) },
					Visible: func(d any) bool { return agentOf(d).Kind == components.KindPrey },
				},
				{
					ID: "cooldown", Label: "Cooldown", Widget: WidgetBar, Format: "%.0f",
					Range:  FieldRange{Min: 0, Max: 150},
					Getter: func(d any) float32 { return float32(agentOf(d).Cooldown) },
				},
			},
		},
		{
			ID:    "genome",
			Title: "Genome",
			Fields: []FieldDescriptor{
				{ID: "speed", Label: "Speed", Widget: WidgetText, Format: "%.3f", Getter: func(d any) float32 { return float32(agentOf(d).Genome.Speed) }},
				{ID: "vision", Label: "Vision", Widget: WidgetText, Format: "%.1f", Getter: func(d any) float32 { return float32(agentOf(d).Genome.Vision) }},
				{ID: "health", Label: "Health", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 { return float32(agentOf(d).Genome.Health) }},
				{ID: "damage", Label: "Damage", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 { return float32(agentOf(d).Genome.Damage) }},
			},
		},
		{
			ID:      "lifetime",
			Title:   "Lifetime",
			Visible: hasLifetime,
			Fields: []FieldDescriptor{
				{ID: "children", Label: "Children", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 {
					return float32(d.(InspectorData).Lifetime.Children)
				}},
				{ID: "foraged", Label: "Foraged", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 {
					return float32(d.(InspectorData).Lifetime.TotalForaged)
				}},
				{ID: "peak", Label: "Peak energy", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 {
					return float32(d.(InspectorData).Lifetime.PeakEnergy)
				}},
				{ID: "infected", Label: "Infected at", Widget: WidgetText, TextGetter: func(d any) string {
					ls := d.(InspectorData).Lifetime
					if !ls.Infected {
						return "-"
					}
					return fmt.Sprintf("tick %d", ls.InfectedTick)
				}},
			},
		},
	}
}

// Draw renders the inspector panel for the given data.
func (ins *Inspector) Draw(data InspectorData) {
	r := ins.renderer
	padding := r.Theme.Padding

	height := padding*2 + r.Theme.LineHeight + 4
	for _, sd := range ins.sections {
		height += r.SectionHeight(sd, data)
	}
	r.DrawPanel(ins.x, ins.y, ins.width, height)

	x := ins.x + padding
	y := ins.y + padding
	rl.DrawText(fmt.Sprintf("%s #%d", data.Agent.Kind.DisplayName(), data.Agent.ID), x, y, r.Theme.HeaderFontSize, rl.White)
	y += r.Theme.LineHeight + 4

	for _, sd := range ins.sections {
		y = r.DrawSection(x, y, sd, data, ins.width-padding*2)
	}
}
