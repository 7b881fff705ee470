package ui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsPanel lists overlay toggles and the keyboard legend.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// keyLegend lists the fixed key bindings.
var keyLegend = []string{
	"SPACE  pause / registry",
	"UP/DN  scroll registry",
	", .    speed",
	"CLICK  inspect agent",
	"WHEEL  zoom",
	"RMB    pan",
	"R      reset camera",
}

// Draw renders the controls panel and returns the Y below it.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) int32 {
	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	categories := overlays.Categories()
	rows := len(keyLegend) + 1
	for _, cat := range categories {
		rows += len(overlays.ByCategory(cat)) + 1
	}
	panelHeight := int32(rows)*lineHeight + padding*2 + lineHeight

	r.DrawPanel(c.x, c.y, c.width, panelHeight)
	y := c.y + padding

	rl.DrawText("Controls", c.x+padding, y, r.Theme.HeaderFontSize, rl.White)
	y += lineHeight + 4

	for _, category := range categories {
		rl.DrawText(strings.ToUpper(category), c.x+padding, y, r.Theme.FontSize, r.Theme.SectionHeader)
		y += lineHeight
		for _, desc := range overlays.ByCategory(category) {
			c.drawToggle(c.x+padding, y, desc, overlays.IsEnabled(desc.ID), c.width-padding*2)
			y += lineHeight
		}
	}

	rl.DrawText("KEYS", c.x+padding, y, r.Theme.FontSize, r.Theme.SectionHeader)
	y += lineHeight
	for _, line := range keyLegend {
		rl.DrawText(line, c.x+padding, y, r.Theme.FontSize, r.Theme.LabelColor)
		y += lineHeight
	}

	return c.y + panelHeight
}

// drawToggle draws a single overlay toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	nameColor := r.Theme.LabelColor
	if enabled {
		statusColor = r.Theme.BarFillHigh
		nameColor = rl.White
	}
	rl.DrawRectangle(x, y+3, 8, 8, statusColor)
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.LightGray)
	}
}
