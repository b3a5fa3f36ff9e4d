package gamemap

import (
	"math/rand"
	"strings"
)

// Point is an (x, y) grid coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p shifted by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Manhattan returns the 4-connected step distance between a and b.
func Manhattan(a, b Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// Connectivity selects which cells count as neighbours.
type Connectivity uint8

const (
	// Moore is the 8-connected neighbourhood (orthogonal + diagonal).
	Moore Connectivity = iota
	// VonNeumann is the 4-connected neighbourhood (orthogonal only).
	VonNeumann
)

var (
	mooreOffsets = [...]Point{
		{-1, -1}, {0, -1}, {1, -1},
		{-1, 0}, {1, 0},
		{-1, 1}, {0, 1}, {1, 1},
	}
	vonNeumannOffsets = [...]Point{{0, -1}, {-1, 0}, {1, 0}, {0, 1}}
)

// Offsets returns the relative neighbour offsets for c.
func (c Connectivity) Offsets() []Point {
	if c == VonNeumann {
		return vonNeumannOffsets[:]
	}
	return mooreOffsets[:]
}

// Grid is a fixed-size cell array for one generated level.
// Cells are stored row-major: Cells[y][x].
type Grid struct {
	Width, Height int
	Cells         [][]Cell
}

// New creates a Grid filled with walls.
func New(width, height int) *Grid {
	return NewFilled(width, height, Wall)
}

// NewFilled creates a Grid with every cell set to c.
func NewFilled(width, height int, c Cell) *Grid {
	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
		for x := range cells[y] {
			cells[y][x] = c
		}
	}
	return &Grid{Width: width, Height: height, Cells: cells}
}

// NewNoise creates a Grid where each cell is independently a wall with
// probability wallProbability and floor otherwise.
func NewNoise(width, height int, wallProbability float64, rng *rand.Rand) *Grid {
	g := New(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if rng.Float64() > wallProbability {
				g.Cells[y][x] = Floor
			}
		}
	}
	return g
}

// InBounds reports whether (x, y) is within the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// IsBorder reports whether (x, y) lies on the outermost ring.
func (g *Grid) IsBorder(x, y int) bool {
	return x == 0 || y == 0 || x == g.Width-1 || y == g.Height-1
}

// At returns the cell at (x, y). Panics if out of bounds.
func (g *Grid) At(x, y int) Cell {
	return g.Cells[y][x]
}

// Set replaces the cell at (x, y).
func (g *Grid) Set(x, y int, c Cell) {
	g.Cells[y][x] = c
}

// Walkable returns true when (x, y) is in bounds and walkable.
func (g *Grid) Walkable(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return g.Cells[y][x].Walkable()
}

// Neighbors returns the in-bounds neighbours of (x, y). Edge and corner
// cells simply have fewer neighbours; there is no wraparound.
func (g *Grid) Neighbors(x, y int, conn Connectivity) []Point {
	offsets := conn.Offsets()
	out := make([]Point, 0, len(offsets))
	for _, d := range offsets {
		nx, ny := x+d.X, y+d.Y
		if g.InBounds(nx, ny) {
			out = append(out, Point{X: nx, Y: ny})
		}
	}
	return out
}

// CountNeighbors counts neighbours of (x, y) holding c without allocating.
func (g *Grid) CountNeighbors(x, y int, conn Connectivity, c Cell) int {
	n := 0
	for _, d := range conn.Offsets() {
		nx, ny := x+d.X, y+d.Y
		if g.InBounds(nx, ny) && g.Cells[ny][nx] == c {
			n++
		}
	}
	return n
}

// Count returns how many cells hold c.
func (g *Grid) Count(c Cell) int {
	n := 0
	for _, row := range g.Cells {
		for _, cell := range row {
			if cell == c {
				n++
			}
		}
	}
	return n
}

// Find returns the first cell holding c in row-major order.
func (g *Grid) Find(c Cell) (Point, bool) {
	for y, row := range g.Cells {
		for x, cell := range row {
			if cell == c {
				return Point{X: x, Y: y}, true
			}
		}
	}
	return Point{}, false
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(x, y int, c Cell)) {
	for y, row := range g.Cells {
		for x, cell := range row {
			fn(x, y, cell)
		}
	}
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	c := &Grid{Width: g.Width, Height: g.Height, Cells: make([][]Cell, g.Height)}
	for y := range g.Cells {
		c.Cells[y] = make([]Cell, g.Width)
		copy(c.Cells[y], g.Cells[y])
	}
	return c
}

// CopyFrom overwrites g with the contents of src. Both grids must have
// the same dimensions.
func (g *Grid) CopyFrom(src *Grid) {
	for y := range g.Cells {
		copy(g.Cells[y], src.Cells[y])
	}
}

// Equal reports whether g and other have the same size and cells.
func (g *Grid) Equal(other *Grid) bool {
	if g.Width != other.Width || g.Height != other.Height {
		return false
	}
	for y := range g.Cells {
		for x := range g.Cells[y] {
			if g.Cells[y][x] != other.Cells[y][x] {
				return false
			}
		}
	}
	return true
}

// String renders the grid one row per line using Cell.Rune.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow((g.Width + 1) * g.Height)
	for _, row := range g.Cells {
		for _, c := range row {
			b.WriteRune(c.Rune())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
