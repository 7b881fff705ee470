package components

import "fmt"

// FieldDescriptor describes a component field for UI display.
type FieldDescriptor struct {
	ID     string  // Unique identifier
	Label  string  // Column header
	Width  float32 // Column width in pixels
	Format string  // Printf format (e.g., "%.2f")
}

// RegistryColumns returns the columns of the paused entity registry table,
// in display order.
func RegistryColumns() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "index", Label: "#", Width: 70, Format: "%03d"},
		{ID: "kind", Label: "TYPE", Width: 140, Format: "%s"},
		{ID: "speed", Label: "SPEED", Width: 100, Format: "%.2f"},
		{ID: "vision", Label: "VISION", Width: 100, Format: "%.1f"},
		{ID: "energy", Label: "ENERGY", Width: 100, Format: "%.0f%%"},
	}
}

// FormatField renders one registry cell. Energy is shown as a 0-100 percentage;
// predators carry far more than that and are clamped.
func FormatField(d FieldDescriptor, index int, org Organism, genome Genome, vitals Vitals) string {
	switch d.ID {
	case "index":
		return fmt.Sprintf(d.Format, index)
	case "kind":
		return fmt.Sprintf(d.Format, org.Kind.DisplayName())
	case "speed":
		return fmt.Sprintf(d.Format, genome.Speed)
	case "vision":
		return fmt.Sprintf(d.Format, genome.Vision)
	case "energy":
		e := vitals.Energy
		if e < 0 {
			e = 0
		} else if e > 100 {
			e = 100
		}
		return fmt.Sprintf(d.Format, e)
	default:
		return ""
	}
}
