package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/zyedidia/generic/mapset"

	"ctf-cavegen/internal/gamemap"
	"ctf-cavegen/internal/generate"
)

// HUDRows is the number of screen rows reserved for the HUD.
const HUDRows = 4

// Renderer draws levels onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
	theme  Theme
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen, theme Theme) *Renderer {
	r := &Renderer{screen: screen}
	r.SetTheme(theme)
	return r
}

// Theme returns the active theme.
func (r *Renderer) Theme() Theme { return r.theme }

// SetTheme switches glyph sets; the camera is rebuilt for the new tile width.
func (r *Renderer) SetTheme(theme Theme) {
	r.theme = theme
	w, h := r.screen.Size()
	r.camera = NewCamera(0, 0, tileWidth(theme), w, h-HUDRows)
}

// WorldToScreen converts level coordinates to screen coordinates.
// visible is false when the position falls outside the viewport.
func (r *Renderer) WorldToScreen(wx, wy int) (sx, sy int, visible bool) {
	return r.camera.WorldToScreen(wx, wy)
}

// Resize refits the viewport after the terminal size changed.
func (r *Renderer) Resize() { r.SetTheme(r.theme) }

// DrawLevel clears the screen and draws every visible cell of level.
// With showPath set, floor cells on the flag to flag path use the path glyph.
func (r *Renderer) DrawLevel(level *generate.Level, showPath bool) {
	r.screen.Clear()
	if level == nil || level.Grid == nil {
		return
	}
	g := level.Grid
	r.camera.Fit(g.Width, g.Height)

	var onPath mapset.Set[gamemap.Point]
	if showPath {
		onPath = pathSet(level.Path)
	}
	style := tcell.StyleDefault.Background(tcell.ColorBlack)
	g.Each(func(x, y int, c gamemap.Cell) {
		sx, sy, visible := r.camera.WorldToScreen(x, y)
		if !visible {
			return
		}
		r.putGlyph(sx, sy, r.theme.Glyph(c, showPath && onPath.Has(gamemap.Point{X: x, Y: y})), style)
	})
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen position (x, y).
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	mainc := runes[0]
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, mainc, combc, style)
	if runewidth.StringWidth(glyph) == 2 {
		// Fill the second column to avoid rendering artifacts.
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}

// tileWidth is the widest glyph in theme, in terminal columns.
func tileWidth(t Theme) int {
	w := 1
	for _, g := range []string{t.Wall, t.Floor, t.FlagA, t.FlagB, t.Path} {
		if gw := runewidth.StringWidth(g); gw > w {
			w = gw
		}
	}
	return w
}

func pathSet(path generate.Path) mapset.Set[gamemap.Point] {
	s := mapset.New[gamemap.Point]()
	for _, p := range path {
		s.Put(p)
	}
	return s
}
