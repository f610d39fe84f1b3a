package state

import (
	"embed"
	"path"
	"strings"

	"github.com/pkg/errors"
)

// Layout glyphs.
const (
	GlyphWall    = '%'
	GlyphFood    = '.'
	GlyphCapsule = 'o'
	GlyphEmpty   = ' '
)

// MaxAgents supported by a layout: agent spawns are marked with the digits 1 to MaxAgents.
const MaxAgents = 4

// Layout is the parsed description of a map: walls, initial food, capsules and agents spawn cells.
type Layout struct {
	Name     string
	Grid     *Grid
	Food     []Cell
	Capsules []Cell

	// Spawns indexed by agent: agent 0 is marked '1' in the text, agent 1 is '2', etc.
	Spawns []Cell
}

//go:embed layouts/*.lay
var embeddedLayouts embed.FS

// DefaultLayout used by the programs if none is given.
const DefaultLayout = "defaultCapture"

// ParseLayout parses the text of a layout. The first line of the text is the top row of the grid.
// Trailing empty lines are ignored, and all rows must have the same length.
func ParseLayout(name, text string) (*Layout, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil, errors.Errorf("layout %q is empty", name)
	}
	width, height := len(lines[0]), len(lines)
	layout := &Layout{Name: name, Grid: NewGrid(width, height)}
	var spawns [MaxAgents]Cell
	var found [MaxAgents]bool
	for row, line := range lines {
		if len(line) != width {
			return nil, errors.Errorf("layout %q: row %d has %d columns, expected %d", name, row+1, len(line), width)
		}
		y := height - 1 - row
		for x, glyph := range line {
			c := Cell{x, y}
			switch {
			case glyph == GlyphWall:
				layout.Grid.SetWall(c, true)
			case glyph == GlyphFood:
				layout.Food = append(layout.Food, c)
			case glyph == GlyphCapsule:
				layout.Capsules = append(layout.Capsules, c)
			case glyph == GlyphEmpty:
			case glyph >= '1' && glyph < '1'+MaxAgents:
				agent := int(glyph - '1')
				if found[agent] {
					return nil, errors.Errorf("layout %q: agent %c spawns twice, at %s and %s", name, glyph, spawns[agent], c)
				}
				spawns[agent], found[agent] = c, true
			default:
				return nil, errors.Errorf("layout %q: unknown glyph %q at row %d, column %d", name, glyph, row+1, x+1)
			}
		}
	}
	for agent := range MaxAgents {
		if !found[agent] {
			break
		}
		layout.Spawns = append(layout.Spawns, spawns[agent])
	}
	for agent := len(layout.Spawns); agent < MaxAgents; agent++ {
		if found[agent] {
			return nil, errors.Errorf("layout %q: agent %d is defined but agent %d is missing", name, agent+1, len(layout.Spawns)+1)
		}
	}
	if len(layout.Spawns) < 2 || len(layout.Spawns)%2 != 0 {
		return nil, errors.Errorf("layout %q: needs an even number of agents (at least 2), got %d", name, len(layout.Spawns))
	}
	return layout, nil
}

// LoadLayout returns one of the layouts embedded in the binary, by name (without the ".lay" suffix).
func LoadLayout(name string) (*Layout, error) {
	data, err := embeddedLayouts.ReadFile(path.Join("layouts", name+".lay"))
	if err != nil {
		return nil, errors.Wrapf(err, "unknown layout %q, available layouts: %v", name, LayoutNames())
	}
	return ParseLayout(name, string(data))
}

// LayoutNames lists the embedded layouts.
func LayoutNames() (names []string) {
	entries, _ := embeddedLayouts.ReadDir("layouts")
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".lay"))
	}
	return
}
