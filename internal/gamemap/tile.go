package gamemap

import "fmt"

// Cell identifies the content of one map cell.
type Cell uint8

const (
	Wall Cell = iota
	Floor
	FlagA
	FlagB
)

var cellNames = [...]string{
	Wall:  "wall",
	Floor: "floor",
	FlagA: "flag-a",
	FlagB: "flag-b",
}

var cellRunes = [...]rune{
	Wall:  '#',
	Floor: '.',
	FlagA: 'A',
	FlagB: 'B',
}

func (c Cell) String() string {
	if int(c) < len(cellNames) {
		return cellNames[c]
	}
	return fmt.Sprintf("cell(%d)", uint8(c))
}

// Rune returns the single-character text form of the cell.
func (c Cell) Rune() rune {
	if int(c) < len(cellRunes) {
		return cellRunes[c]
	}
	return '?'
}

// Walkable reports whether a player can stand on the cell.
// Flags sit on floor, so they are walkable too.
func (c Cell) Walkable() bool {
	return c == Floor || c == FlagA || c == FlagB
}

// CellFromRune is the inverse of Rune.
func CellFromRune(r rune) (Cell, bool) {
	for c, cr := range cellRunes {
		if cr == r {
			return Cell(c), true
		}
	}
	return Wall, false
}
