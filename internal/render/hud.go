package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"ctf-cavegen/internal/generate"
)

// StatusLine summarizes level for the HUD.
func StatusLine(level *generate.Level, seed int64) string {
	if level == nil {
		return fmt.Sprintf("seed %d  no level", seed)
	}
	return fmt.Sprintf("seed %d  %dx%d  floor %.0f%%  path %d  passes %d  attempts %d",
		seed, level.Grid.Width, level.Grid.Height, level.FloorFraction()*100,
		level.Path.Len(), level.Passes, level.Attempts)
}

// DrawHUD renders a separator and up to HUDRows-1 text lines at the bottom
// of the screen, then shows the frame.
func (r *Renderer) DrawHUD(lines []string) {
	_, screenH := r.screen.Size()
	hudY := screenH - HUDRows

	r.drawHLine(hudY, tcell.ColorGray)

	start := len(lines) - (HUDRows - 1)
	if start < 0 {
		start = 0
	}
	for i, line := range lines[start:] {
		color := tcell.ColorWhite
		if i > 0 {
			color = tcell.ColorLightYellow
		}
		r.drawText(0, hudY+1+i, line, tcell.StyleDefault.Foreground(color))
	}

	r.screen.Show()
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += runewidth.RuneWidth(ch)
	}
}
