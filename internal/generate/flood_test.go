package generate

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctf-cavegen/internal/gamemap"
)

// twoPockets has a 3×3 pocket and a 2×4 pocket separated by unbroken wall.
func twoPockets() *gamemap.Grid {
	return gamemap.MustParse(
		"##########",
		"#...######",
		"#...######",
		"#...######",
		"##########",
		"######..##",
		"######..##",
		"######..##",
		"######..##",
		"##########",
	)
}

func TestFloodFillStopsAtWalls(t *testing.T) {
	g := twoPockets()
	r := FloodFill(g, gamemap.Point{X: 2, Y: 2})
	assert.Equal(t, 9, r.Len())
	assert.True(t, r.Has(gamemap.Point{X: 1, Y: 1}))
	assert.False(t, r.Has(gamemap.Point{X: 6, Y: 5}))

	other := FloodFill(g, gamemap.Point{X: 7, Y: 8})
	assert.Equal(t, 8, other.Len())
	assert.False(t, r.Equal(other))
}

func TestFloodFillIgnoresDiagonals(t *testing.T) {
	g := gamemap.MustParse(
		"#####",
		"#.###",
		"##.##",
		"#####",
	)
	assert.Equal(t, 1, FloodFill(g, gamemap.Point{X: 1, Y: 1}).Len())
}

func TestFloodFillFromWallIsEmpty(t *testing.T) {
	g := twoPockets()
	assert.Equal(t, 0, FloodFill(g, gamemap.Point{X: 0, Y: 0}).Len())
	assert.Equal(t, 0, FloodFill(g, gamemap.Point{X: -1, Y: 3}).Len())
}

func TestFloodFillOrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	g := gamemap.NewNoise(30, 30, 0.45, rng)
	Smooth(g, 5, false, rng)

	// Any two seeds inside the same component must give identical sets.
	seedRegion := map[gamemap.Point]Region{}
	g.Each(func(x, y int, c gamemap.Cell) {
		if c != gamemap.Floor {
			return
		}
		p := gamemap.Point{X: x, Y: y}
		seedRegion[p] = FloodFill(g, p)
	})
	require.NotEmpty(t, seedRegion)
	for p, r := range seedRegion {
		r.Each(func(q gamemap.Point) {
			if !seedRegion[q].Equal(r) {
				t.Fatalf("fill from %v and %v differ", p, q)
			}
		})
	}
}

func TestRegionPointsSorted(t *testing.T) {
	g := twoPockets()
	pts := FloodFill(g, gamemap.Point{X: 3, Y: 3}).Points()
	require.Len(t, pts, 9)
	assert.Equal(t, gamemap.Point{X: 1, Y: 1}, pts[0])
	assert.Equal(t, gamemap.Point{X: 3, Y: 3}, pts[8])
}

func TestValidateDensityClosedInterval(t *testing.T) {
	g := gamemap.NewFilled(10, 10, gamemap.Floor)
	r := FloodFill(g, gamemap.Point{X: 0, Y: 0})
	require.Equal(t, 100, r.Len())

	assert.NoError(t, ValidateDensity(r, 100, 0.3, 1.0))
	assert.NoError(t, ValidateDensity(r, 200, 0.5, 0.5))

	err := ValidateDensity(r, 100, 0.3, 0.9)
	var de *DensityError
	require.True(t, errors.As(err, &de))
	assert.InDelta(t, 1.0, de.Fraction(), 1e-9)

	err = ValidateDensity(r, 400, 0.3, 0.9)
	require.True(t, errors.As(err, &de))
	assert.InDelta(t, 0.25, de.Fraction(), 1e-9)
}
