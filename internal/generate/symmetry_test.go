package generate

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"ctf-cavegen/internal/gamemap"
)

func TestSymmetrizeReflectsTopHalf(t *testing.T) {
	g := gamemap.MustParse(
		"#.##",
		"..#.",
		"####",
		"####",
	)
	Symmetrize(g)
	want := gamemap.MustParse(
		"#.##",
		"..#.",
		".#..",
		"##.#",
	)
	assert.True(t, g.Equal(want), "got\n%s", g.String())
	assert.True(t, IsSymmetric(g))
}

func TestSymmetrizeIdempotent(t *testing.T) {
	for _, h := range []int{10, 11} {
		for seed := int64(0); seed < 5; seed++ {
			g := gamemap.NewNoise(9, h, 0.5, rand.New(rand.NewSource(seed)))
			Symmetrize(g)
			once := g.Clone()
			Symmetrize(g)
			assert.True(t, g.Equal(once), "height %d seed %d", h, seed)
			assert.True(t, IsSymmetric(g), "height %d seed %d", h, seed)
		}
	}
}

func TestSymmetrizeOddHeightKeepsSize(t *testing.T) {
	g := gamemap.MustParse(
		"#..",
		".#.",
		"...",
	)
	Symmetrize(g)
	assert.Equal(t, 3, g.Height)
	assert.Equal(t, gamemap.MustParse(
		"#..",
		".#.",
		"..#",
	).String(), g.String())
}

func TestIsSymmetricDetectsAsymmetry(t *testing.T) {
	g := gamemap.MustParse(
		"#...",
		"....",
	)
	assert.False(t, IsSymmetric(g))
}
