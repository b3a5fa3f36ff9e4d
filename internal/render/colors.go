package render

import (
	"strings"

	"ctf-cavegen/internal/gamemap"
)

// Theme holds the glyphs used to draw one level. Emoji are rendered by the
// terminal with their own colors, so each cell kind gets a distinct glyph
// instead of a tinted one.
type Theme struct {
	Name  string
	Wall  string
	Floor string
	FlagA string
	FlagB string
	Path  string // floor cells on the flag to flag path
}

// Themes lists the built-in themes. Index 0 is the default.
var Themes = []Theme{
	{
		// Cave: rock and dirt, red and blue team flags
		Name:  "cave",
		Wall:  "🪨",
		Floor: "🟫",
		FlagA: "🚩",
		FlagB: "🔷",
		Path:  "🟨",
	},
	{
		// Ice: frozen walls, frost floor
		Name:  "ice",
		Wall:  "🧊",
		Floor: "⬜",
		FlagA: "🟥",
		FlagB: "🟦",
		Path:  "✨",
	},
	{
		// Fungal: living walls, moss floor
		Name:  "fungal",
		Wall:  "🍄",
		Floor: "🌿",
		FlagA: "🔴",
		FlagB: "🔵",
		Path:  "🌼",
	},
	{
		// Plain characters for terminals without emoji fonts
		Name:  "ascii",
		Wall:  "#",
		Floor: ".",
		FlagA: "A",
		FlagB: "B",
		Path:  "*",
	},
}

// ThemeByName returns the theme called name (case-insensitive).
func ThemeByName(name string) (Theme, bool) {
	for _, t := range Themes {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return Theme{}, false
}

// NextTheme returns the theme after t in Themes, wrapping around.
func NextTheme(t Theme) Theme {
	for i, candidate := range Themes {
		if candidate.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// Glyph returns the glyph for cell c. onPath marks floor cells on the path.
func (t Theme) Glyph(c gamemap.Cell, onPath bool) string {
	switch c {
	case gamemap.Wall:
		return t.Wall
	case gamemap.FlagA:
		return t.FlagA
	case gamemap.FlagB:
		return t.FlagB
	}
	if onPath {
		return t.Path
	}
	return t.Floor
}
