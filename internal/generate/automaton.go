package generate

import (
	"math/rand"

	"ctf-cavegen/internal/gamemap"
)

const (
	// wallThreshold is the Moore wall-neighbour count at which a cell
	// becomes wall.
	wallThreshold = 5
	// erosionChance keeps a few would-be walls open each pass.
	erosionChance = 0.025
)

// RunPass computes one automaton generation from cur into next.
// cur is read only; next must have the same dimensions.
func RunPass(cur, next *gamemap.Grid, rng *rand.Rand) {
	for y := 0; y < cur.Height; y++ {
		for x := 0; x < cur.Width; x++ {
			walls := cur.CountNeighbors(x, y, gamemap.Moore, gamemap.Wall)
			if walls >= wallThreshold && rng.Float64() > erosionChance {
				next.Set(x, y, gamemap.Wall)
			} else {
				next.Set(x, y, gamemap.Floor)
			}
		}
	}
	sealBorder(next)
}

// Smooth runs passes automaton generations over g, double-buffering
// between g and a scratch grid. The final generation is left in g.
func Smooth(g *gamemap.Grid, passes int, constantSymmetry bool, rng *rand.Rand) {
	cur, next := g, gamemap.New(g.Width, g.Height)
	for i := 0; i < passes; i++ {
		if constantSymmetry {
			Symmetrize(cur)
		}
		RunPass(cur, next, rng)
		cur, next = next, cur
	}
	if cur != g {
		g.CopyFrom(cur)
	}
}

// sealBorder forces every border cell to wall.
func sealBorder(g *gamemap.Grid) {
	for x := 0; x < g.Width; x++ {
		g.Set(x, 0, gamemap.Wall)
		g.Set(x, g.Height-1, gamemap.Wall)
	}
	for y := 0; y < g.Height; y++ {
		g.Set(0, y, gamemap.Wall)
		g.Set(g.Width-1, y, gamemap.Wall)
	}
}

// drawPassCount picks a pass count from the closed interval [lo, hi].
func drawPassCount(lo, hi int, rng *rand.Rand) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
