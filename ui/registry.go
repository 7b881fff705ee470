package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/quadrisrah/components"
	"github.com/pthm-cable/quadrisrah/game"
)

// RowsPerPage is the number of agents listed per registry page.
const RowsPerPage = 20

// PageCount returns the number of pages needed for total rows (at least one).
func PageCount(total int) int {
	if total <= 0 {
		return 1
	}
	return (total + RowsPerPage - 1) / RowsPerPage
}

// PageRange returns the half-open row range shown on page, with page clamped
// to the valid pages.
func PageRange(total, page int) (start, end, clamped int) {
	clamped = max(0, min(page, PageCount(total)-1))
	start = clamped * RowsPerPage
	end = min(start+RowsPerPage, max(total, 0))
	if start > end {
		start = end
	}
	return start, end, clamped
}

// RegistryTable is the paused view listing every live agent.
type RegistryTable struct {
	renderer *Renderer
	columns  []components.FieldDescriptor
	page     int
}

// NewRegistryTable creates a registry table using the component columns.
func NewRegistryTable() *RegistryTable {
	return &RegistryTable{
		renderer: NewRenderer(),
		columns:  components.RegistryColumns(),
	}
}

// Reset returns to the first page.
func (t *RegistryTable) Reset() {
	t.page = 0
}

// Scroll moves by delta pages within [0, pages).
func (t *RegistryTable) Scroll(delta, total int) {
	_, _, t.page = PageRange(total, t.page+delta)
}

// Page returns the current page index.
func (t *RegistryTable) Page() int {
	return t.page
}

// HandleKeys scrolls with the arrow keys.
func (t *RegistryTable) HandleKeys(total int) {
	if rl.IsKeyPressed(rl.KeyDown) {
		t.Scroll(1, total)
	}
	if rl.IsKeyPressed(rl.KeyUp) {
		t.Scroll(-1, total)
	}
}

// Draw renders the table inside the given screen rectangle.
func (t *RegistryTable) Draw(bounds rl.Rectangle, agents []game.AgentState) {
	r := t.renderer
	x := int32(bounds.X)
	y := int32(bounds.Y)
	r.DrawPanel(x, y, int32(bounds.Width), int32(bounds.Height))

	left := x + 20
	rl.DrawText("ENTITY REGISTRY (PAUSED)", left, y+20, 40, rl.Yellow)
	rl.DrawText("Use UP/DOWN arrows to scroll", left, y+65, 20, rl.Gray)

	start, end, page := PageRange(len(agents), t.page)
	t.page = page

	headerY := y + 110
	colX := float32(left)
	for _, col := range t.columns {
		rl.DrawText(col.Label, int32(colX), headerY, 25, rl.White)
		colX += col.Width
	}
	rl.DrawLineEx(
		rl.Vector2{X: float32(left), Y: float32(headerY + 30)},
		rl.Vector2{X: bounds.X + bounds.Width - 20, Y: float32(headerY + 30)},
		2, rl.Gray,
	)

	for i := start; i < end; i++ {
		a := &agents[i]
		rowY := headerY + 45 + int32(i-start)*30
		org := components.Organism{ID: a.ID, Kind: a.Kind, Generation: a.Generation, BirthTick: a.BirthTick}
		vitals := components.Vitals{Energy: a.Energy, Cooldown: a.Cooldown}

		colX = float32(left)
		for _, col := range t.columns {
			text := components.FormatField(col, i+1, org, a.Genome, vitals)
			rl.DrawText(text, int32(colX), rowY, 20, columnColor(col.ID, a.Kind))
			colX += col.Width
		}
	}

	footerY := bounds.Y + bounds.Height - 45
	rl.DrawText(fmt.Sprintf("Page %d/%d  (%d agents)", page+1, PageCount(len(agents)), len(agents)),
		left, int32(footerY)+8, 20, rl.Gray)
	if gui.Button(rl.Rectangle{X: bounds.X + bounds.Width - 250, Y: footerY, Width: 110, Height: 30}, "Prev") {
		t.Scroll(-1, len(agents))
	}
	if gui.Button(rl.Rectangle{X: bounds.X + bounds.Width - 130, Y: footerY, Width: 110, Height: 30}, "Next") {
		t.Scroll(1, len(agents))
	}
}

func columnColor(id string, kind components.Kind) rl.Color {
	switch id {
	case "index":
		return rl.Gray
	case "kind":
		if kind == components.KindPredator {
			return rl.Purple
		}
		return rl.Red
	case "energy":
		return rl.Green
	default:
		return rl.White
	}
}
