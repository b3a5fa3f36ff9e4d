package generate

import (
	"math/rand"

	"ctf-cavegen/internal/gamemap"
)

// RemoveIsolates keeps a single connected floor region and walls off the
// rest. It draws seed pairs until both fills land in the same region.
// Every fill is density-checked; a *DensityError aborts immediately.
func RemoveIsolates(g *gamemap.Grid, cfg Config, rng *rand.Rand) (Region, error) {
	total := g.Width * g.Height
	floors := g.Count(gamemap.Floor)
	if floors == 0 {
		return Region{}, checkDensity(0, total, cfg.MinFloorspace, cfg.MaxFloorspace)
	}

	var kept Region
	found := false
	for i := 0; i < cfg.MaxSeedPairs; i++ {
		a := FloodFill(g, randomFloor(g, rng))
		if err := ValidateDensity(a, total, cfg.MinFloorspace, cfg.MaxFloorspace); err != nil {
			return Region{}, err
		}
		b := FloodFill(g, randomFloor(g, rng))
		if err := ValidateDensity(b, total, cfg.MinFloorspace, cfg.MaxFloorspace); err != nil {
			return Region{}, err
		}
		if a.Equal(b) {
			kept, found = a, true
			break
		}
	}
	if !found {
		return Region{}, ErrSeedPairsExhausted
	}

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if !kept.Has(gamemap.Point{X: x, Y: y}) {
				g.Set(x, y, gamemap.Wall)
			}
		}
	}
	return kept, nil
}

// randomFloor draws uniform coordinates until one lands on floor.
// The caller guarantees at least one floor cell exists.
func randomFloor(g *gamemap.Grid, rng *rand.Rand) gamemap.Point {
	for {
		p := gamemap.Point{X: rng.Intn(g.Width), Y: rng.Intn(g.Height)}
		if g.At(p.X, p.Y) == gamemap.Floor {
			return p
		}
	}
}
