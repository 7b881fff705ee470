package systems

import (
	"testing"

	"github.com/pthm-cable/quadrisrah/config"
)

// terrainFromRows builds a square field from rows of biome letters:
// M mountain, F forest, P plains, D desert, O ocean. rows[y][x] is cell (x, y).
func terrainFromRows(t *testing.T, cfg *config.Config, rows ...string) *TerrainField {
	t.Helper()
	size := len(rows)
	grid := make([]Terrain, 0, size*size)
	for y, row := range rows {
		if len(row) != size {
			t.Fatalf("row %d has %d cells, want %d", y, len(row), size)
		}
		for _, c := range row {
			switch c {
			case 'M':
				grid = append(grid, TerrainMountain)
			case 'F':
				grid = append(grid, TerrainForest)
			case 'P':
				grid = append(grid, TerrainPlains)
			case 'D':
				grid = append(grid, TerrainDesert)
			case 'O':
				grid = append(grid, TerrainOcean)
			default:
				t.Fatalf("unknown biome %q", c)
			}
		}
	}
	f, err := NewTerrainFieldFromGrid(size, grid, cfg.Terrain, cfg.Food)
	if err != nil {
		t.Fatalf("NewTerrainFieldFromGrid: %v", err)
	}
	return f
}

// plainsField returns a size x size field of plains.
func plainsField(t *testing.T, cfg *config.Config, size int) *TerrainField {
	t.Helper()
	grid := make([]Terrain, size*size)
	for i := range grid {
		grid[i] = TerrainPlains
	}
	f, err := NewTerrainFieldFromGrid(size, grid, cfg.Terrain, cfg.Food)
	if err != nil {
		t.Fatalf("NewTerrainFieldFromGrid: %v", err)
	}
	return f
}

// registryWith inserts the spawns in order and returns the live view.
func registryWith(spawns ...Spawn) (*AgentRegistry, []Agent) {
	r := NewAgentRegistry()
	for _, s := range spawns {
		r.Insert(s)
	}
	return r, r.View()
}
