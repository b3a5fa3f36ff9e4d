package generate

import "ctf-cavegen/internal/gamemap"

// Symmetrize copies the top half of g onto the bottom half with every row
// reversed, giving 2-fold point symmetry about the grid centre. For odd
// heights the middle row is mirrored onto itself the same way, so the grid
// keeps its height instead of losing the row a truncating reflection drops.
func Symmetrize(g *gamemap.Grid) {
	h, w := g.Height, g.Width
	for y := 0; y < h/2; y++ {
		src, dst := g.Cells[y], g.Cells[h-1-y]
		for x := 0; x < w; x++ {
			dst[w-1-x] = src[x]
		}
	}
	if h%2 == 1 {
		mid := g.Cells[h/2]
		for x := 0; x < w/2; x++ {
			mid[w-1-x] = mid[x]
		}
	}
}

// IsSymmetric reports whether g is unchanged by a half-turn about its centre.
func IsSymmetric(g *gamemap.Grid) bool {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.Cells[y][x] != g.Cells[g.Height-1-y][g.Width-1-x] {
				return false
			}
		}
	}
	return true
}
