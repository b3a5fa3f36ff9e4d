package render

import (
	"strings"

	"ctf-cavegen/internal/gamemap"
	"ctf-cavegen/internal/generate"
)

// Text draws level as one line per row. ascii selects the plain character
// theme; otherwise the default emoji theme is used.
func Text(level *generate.Level, showPath, ascii bool) string {
	theme := Themes[0]
	if ascii {
		theme, _ = ThemeByName("ascii")
	}
	return TextWithTheme(level, showPath, theme)
}

// TextWithTheme is Text with an explicit theme.
func TextWithTheme(level *generate.Level, showPath bool, theme Theme) string {
	g := level.Grid
	onPath := pathSet(level.Path)
	var sb strings.Builder
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			sb.WriteString(theme.Glyph(g.At(x, y), showPath && onPath.Has(gamemap.Point{X: x, Y: y})))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
