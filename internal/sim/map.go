// Package sim implements the city traffic model that feeds the position
// API: directed road cells, cycling traffic lights, building obstacles,
// and cars that path to destinations one cell at a time.
package sim

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Map errors.
var (
	ErrInvalidMap = errors.New("invalid city map")
)

// Direction is the travel direction a road cell allows.
type Direction int

// Road directions.
const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	default:
		return "None"
	}
}

// Offset returns the grid offset for one step in the direction.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, 1
	case DirDown:
		return 0, -1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// Cell is one grid cell. A traffic-light cell is also a drivable road
// cell with the direction inherited from its neighbors.
type Cell struct {
	Road        bool
	Direction   Direction
	Obstacle    bool
	Destination bool
	Light       *TrafficLight
}

// Drivable reports whether a car may occupy the cell.
func (c *Cell) Drivable() bool {
	return c.Road || c.Destination
}

// Grid is the city layout.
type Grid struct {
	Width, Height int
	cells         []Cell
}

// At returns the cell at (x, y), or nil if out of bounds.
func (g *Grid) At(x, y int) *Cell {
	if !g.InBounds(x, y) {
		return nil
	}
	return &g.cells[y*g.Width+x]
}

// InBounds reports whether (x, y) is inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

// Legend maps traffic-light symbols to their cycle lengths in steps.
type Legend struct {
	LightCycles map[byte]int
}

// DefaultLegend returns the standard symbol legend.
func DefaultLegend() Legend {
	return Legend{
		LightCycles: map[byte]int{'S': 15, 's': 7},
	}
}

// CityMap is a parsed city layout.
type CityMap struct {
	Grid         *Grid
	Lights       []*TrafficLight
	Destinations [][2]int
	SpawnPoints  [][2]int
}

// ParseMap parses a city map from line-oriented text. Row 0 of the text
// is the top of the map; grid y grows upward. Symbols: `<>^v` directed
// roads, `S` (red) and `s` (green) traffic lights, `#` building
// obstacle, `D` destination.
func ParseMap(text string, legend Legend) (*CityMap, error) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: empty map", ErrInvalidMap)
	}

	width := len(lines[0])
	height := len(lines)
	grid := &Grid{Width: width, Height: height, cells: make([]Cell, width*height)}
	cm := &CityMap{Grid: grid}

	lightID := 0
	for r, row := range lines {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has width %d, want %d", ErrInvalidMap, r, len(row), width)
		}
		y := height - r - 1
		for c := 0; c < width; c++ {
			cell := grid.At(c, y)
			switch sym := row[c]; sym {
			case '>', '<', '^', 'v':
				cell.Road = true
				cell.Direction = symbolDirection(sym)
			case 'S', 's':
				dir := detectLightDirection(lines, r, c)
				light := &TrafficLight{
					ID:        lightID,
					X:         c,
					Y:         y,
					Green:     sym == 's',
					Cycle:     legend.LightCycles[sym],
					Direction: dir,
				}
				lightID++
				cell.Road = true
				cell.Direction = dir
				cell.Light = light
				cm.Lights = append(cm.Lights, light)
			case '#':
				cell.Obstacle = true
			case 'D':
				cell.Destination = true
				cm.Destinations = append(cm.Destinations, [2]int{c, y})
			default:
				return nil, fmt.Errorf("%w: unknown symbol %q at row %d col %d", ErrInvalidMap, sym, r, c)
			}
		}
	}

	cm.SpawnPoints = findSpawnPoints(grid)
	return cm, nil
}

// ParseMapFile parses a city map from disk.
func ParseMapFile(path string, legend Legend) (*CityMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading map file: %w", err)
	}
	return ParseMap(string(data), legend)
}

func symbolDirection(sym byte) Direction {
	switch sym {
	case '^':
		return DirUp
	case 'v':
		return DirDown
	case '<':
		return DirLeft
	case '>':
		return DirRight
	default:
		return DirNone
	}
}

// detectLightDirection infers a traffic light's direction from the road
// symbols around it, checking left, right, above, below in that order.
// Falls back to Right when no neighboring road exists.
func detectLightDirection(lines []string, row, col int) Direction {
	isRoad := func(b byte) Direction {
		switch b {
		case '>', '<', '^', 'v':
			return symbolDirection(b)
		}
		return DirNone
	}

	if col > 0 {
		if d := isRoad(lines[row][col-1]); d != DirNone {
			return d
		}
	}
	if col < len(lines[row])-1 {
		if d := isRoad(lines[row][col+1]); d != DirNone {
			return d
		}
	}
	if row > 0 && col < len(lines[row-1]) {
		if d := isRoad(lines[row-1][col]); d != DirNone {
			return d
		}
	}
	if row < len(lines)-1 && col < len(lines[row+1]) {
		if d := isRoad(lines[row+1][col]); d != DirNone {
			return d
		}
	}
	return DirRight
}

// findSpawnPoints returns edge road cells whose direction points into
// the map.
func findSpawnPoints(g *Grid) [][2]int {
	var points [][2]int
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			cell := g.At(x, y)
			if !cell.Road {
				continue
			}
			switch {
			case cell.Direction == DirRight && x == 0,
				cell.Direction == DirLeft && x == g.Width-1,
				cell.Direction == DirUp && y == 0,
				cell.Direction == DirDown && y == g.Height-1:
				points = append(points, [2]int{x, y})
			}
		}
	}
	return points
}
