package generate

import "ctf-cavegen/internal/gamemap"

// openRadius is the half-width of the window that must be clear around
// the flag anchor (a 5×5 window).
const openRadius = 2

// LocateOpenCenter scans row-major and returns the first floor cell whose
// whole 5×5 window is in bounds and floor.
func LocateOpenCenter(g *gamemap.Grid) (gamemap.Point, error) {
	for y := openRadius; y < g.Height-openRadius; y++ {
		for x := openRadius; x < g.Width-openRadius; x++ {
			if windowOpen(g, x, y) {
				return gamemap.Point{X: x, Y: y}, nil
			}
		}
	}
	return gamemap.Point{}, &NoOpenCenterError{}
}

func windowOpen(g *gamemap.Grid, cx, cy int) bool {
	for dy := -openRadius; dy <= openRadius; dy++ {
		for dx := -openRadius; dx <= openRadius; dx++ {
			if g.At(cx+dx, cy+dy) != gamemap.Floor {
				return false
			}
		}
	}
	return true
}

// PlaceFlags anchors on LocateOpenCenter's cell (x, y) and writes FlagA at
// (x+1, y+1) and FlagB at (width-2-x, height-2-y). Both targets must be
// interior floor cells.
func PlaceFlags(g *gamemap.Grid) (a, b gamemap.Point, err error) {
	anchor, err := LocateOpenCenter(g)
	if err != nil {
		return a, b, err
	}
	a = gamemap.Point{X: anchor.X + 1, Y: anchor.Y + 1}
	b = gamemap.Point{X: g.Width - 2 - anchor.X, Y: g.Height - 2 - anchor.Y}
	for _, p := range []gamemap.Point{a, b} {
		if !g.InBounds(p.X, p.Y) || g.IsBorder(p.X, p.Y) || g.At(p.X, p.Y) != gamemap.Floor {
			target := p
			return a, b, &NoOpenCenterError{Target: &target}
		}
	}
	if a == b {
		return a, b, &NoOpenCenterError{Target: &b}
	}
	g.Set(a.X, a.Y, gamemap.FlagA)
	g.Set(b.X, b.Y, gamemap.FlagB)
	return a, b, nil
}
