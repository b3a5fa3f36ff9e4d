package gamemap

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Parse builds a Grid from text rows using the runes of Cell.Rune.
// Every row must have the same length.
func Parse(rows ...string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("parse grid: no rows")
	}
	width := len([]rune(rows[0]))
	g := New(width, len(rows))
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != width {
			return nil, fmt.Errorf("parse grid: row %d has %d cells, want %d", y, len(runes), width)
		}
		for x, r := range runes {
			c, ok := CellFromRune(r)
			if !ok {
				return nil, fmt.Errorf("parse grid: unknown cell %q at (%d,%d)", r, x, y)
			}
			g.Cells[y][x] = c
		}
	}
	return g, nil
}

// MustParse is Parse for fixed test fixtures; it panics on error.
func MustParse(rows ...string) *Grid {
	g, err := Parse(rows...)
	if err != nil {
		panic(err)
	}
	return g
}

// MarshalJSON encodes the grid as an array of row strings.
func (g *Grid) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.Split(strings.TrimSuffix(g.String(), "\n"), "\n"))
}

// UnmarshalJSON decodes the array-of-rows form written by MarshalJSON.
func (g *Grid) UnmarshalJSON(data []byte) error {
	var rows []string
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	parsed, err := Parse(rows...)
	if err != nil {
		return err
	}
	*g = *parsed
	return nil
}
