package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/quadrisrah/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Valkarai  int
	Zombies   int
	Tick      int64
	Speed     int
	FPS       int32
	TotalFood float64
	Paused    bool
}

// HUD renders the population header.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(fmt.Sprintf("Valkarai: %d | Zombies: %d", data.Valkarai, data.Zombies), 20, 15, 30, rl.DarkGreen)

	status := fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d | Food: %.0f", data.Tick, data.Speed, data.FPS, data.TotalFood)
	if data.Paused {
		status += " | PAUSED"
	}
	rl.DrawText(status, 20, 50, h.renderer.Theme.FontSize, rl.White)
}

// PerfPanel renders the per-phase timing breakdown.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// Draw renders the performance panel. name maps phase IDs to display names.
func (p *PerfPanel) Draw(stats telemetry.PerfStats, name func(string) string) {
	r := p.renderer
	lineHeight := r.Theme.LineHeight
	height := int32(len(telemetry.Phases)+3)*lineHeight + r.Theme.Padding*2
	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + r.Theme.Padding
	y := p.y + r.Theme.Padding
	rl.DrawText("Performance", x, y, r.Theme.HeaderFontSize, rl.White)
	y += lineHeight + 2

	rl.DrawText(fmt.Sprintf("Tick: %s  (%.0f/s)", stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond),
		x, y, r.Theme.FontSize, rl.Yellow)
	y += lineHeight

	for _, id := range telemetry.Phases {
		pct := stats.PhasePct[id]
		color := rl.LightGray
		if pct > 40 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}
		rl.DrawText(fmt.Sprintf("%-14s %8s %5.1f%%", name(id), stats.PhaseAvg[id].Round(time.Microsecond), pct),
			x, y, r.Theme.FontSize, color)
		y += lineHeight
	}
}

// WindowPanel shows the most recent telemetry window.
type WindowPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	sections []SectionDescriptor
}

// NewWindowPanel creates a panel for flushed window stats.
func NewWindowPanel(x, y, width int32) *WindowPanel {
	return &WindowPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		sections: windowSections(),
	}
}

func windowSections() []SectionDescriptor {
	stat := func(id, label, format string, get func(telemetry.WindowStats) float64) FieldDescriptor {
		return FieldDescriptor{
			ID: id, Label: label, Widget: WidgetText, Format: format,
			Getter: func(d any) float32 { return float32(get(d.(telemetry.WindowStats))) },
		}
	}
	return []SectionDescriptor{
		{
			ID:    "events",
			Title: "Events",
			Fields: []FieldDescriptor{
				stat("births", "Births", "%.0f", func(s telemetry.WindowStats) float64 { return float64(s.Births) }),
				stat("infections", "Infections", "%.0f", func(s telemetry.WindowStats) float64 { return float64(s.Infections) }),
				stat("prey_deaths", "Starved", "%.0f", func(s telemetry.WindowStats) float64 { return float64(s.PreyDeaths) }),
				stat("food_eaten", "Food eaten", "%.0f", func(s telemetry.WindowStats) float64 { return s.FoodEaten }),
			},
		},
		{
			ID:    "population",
			Title: "Valkarai",
			Fields: []FieldDescriptor{
				{
					ID: "energy", Label: "Energy p50", Widget: WidgetEnergyBar, Format: "%.0f",
					Range:  FieldRange{Min: 0, Max: 150},
					Getter: func(d any) float32 { return float32(d.(telemetry.WindowStats).PreyEnergyP50) },
				},
				stat("speed", "Speed", "%.3f", func(s telemetry.WindowStats) float64 { return s.SpeedMean }),
				stat("vision", "Vision", "%.1f", func(s telemetry.WindowStats) float64 { return s.VisionMean }),
				stat("lifespan", "Lifespan", "%.0f", func(s telemetry.WindowStats) float64 { return s.MeanLifespan }),
				stat("generation", "Max gen", "%.0f", func(s telemetry.WindowStats) float64 { return float64(s.MaxGeneration) }),
			},
		},
	}
}

// Draw renders the panel. ok is false until the first window has flushed.
func (w *WindowPanel) Draw(stats telemetry.WindowStats, ok bool) {
	r := w.renderer
	height := r.Theme.Padding*2 + r.Theme.LineHeight + 2
	if ok {
		for _, sd := range w.sections {
			height += r.SectionHeight(sd, stats)
		}
	} else {
		height += r.Theme.LineHeight
	}
	r.DrawPanel(w.x, w.y, w.width, height)

	x := w.x + r.Theme.Padding
	y := w.y + r.Theme.Padding
	title := "Window"
	if ok {
		title = fmt.Sprintf("Window %d-%d", stats.WindowStartTick, stats.WindowEndTick)
	}
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, rl.White)
	y += r.Theme.LineHeight + 2

	if !ok {
		rl.DrawText("waiting for first window", x, y, r.Theme.FontSize, r.Theme.LabelColor)
		return
	}
	for _, sd := range w.sections {
		y = r.DrawSection(x, y, sd, stats, w.width-r.Theme.Padding*2)
	}
}
