package generate

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctf-cavegen/internal/gamemap"
)

func generateSeeded(t *testing.T, seed int64, cfg Config) *Level {
	t.Helper()
	level, err := Generate(40, 40, cfg, rand.New(rand.NewSource(seed)))
	require.NoError(t, err, "seed %d", seed)
	return level
}

// TestGenerateInvariants checks every finished level against the
// properties the pipeline promises.
func TestGenerateInvariants(t *testing.T) {
	cfg := DefaultConfig()
	for seed := int64(0); seed < 8; seed++ {
		level := generateSeeded(t, seed, cfg)
		g := level.Grid

		assertBorderWalls(t, g)

		frac := level.FloorFraction()
		assert.GreaterOrEqual(t, frac, cfg.MinFloorspace, "seed %d", seed)
		assert.LessOrEqual(t, frac, cfg.MaxFloorspace, "seed %d", seed)

		assert.Equal(t, 1, g.Count(gamemap.FlagA), "seed %d", seed)
		assert.Equal(t, 1, g.Count(gamemap.FlagB), "seed %d", seed)
		assert.Equal(t, gamemap.FlagA, g.At(level.FlagA.X, level.FlagA.Y))
		assert.Equal(t, gamemap.FlagB, g.At(level.FlagB.X, level.FlagB.Y))
		assert.False(t, g.IsBorder(level.FlagA.X, level.FlagA.Y))
		assert.False(t, g.IsBorder(level.FlagB.X, level.FlagB.Y))

		// One connected walkable component containing both flags.
		gr := BuildGraph(g)
		assert.Equal(t, gr.Len(), gr.Reachable(level.FlagA), "seed %d", seed)
		g.Each(func(x, y int, c gamemap.Cell) {
			if c == gamemap.Floor {
				require.Equal(t, gr.Len(), gr.Reachable(gamemap.Point{X: x, Y: y}))
			}
		})

		require.NotEmpty(t, level.Path)
		assert.Equal(t, level.FlagA, level.Path[0])
		assert.Equal(t, level.FlagB, level.Path[len(level.Path)-1])
		assert.GreaterOrEqual(t, level.Path.Len(), gamemap.Manhattan(level.FlagA, level.FlagB))
		assertContiguous(t, g, level.Path)

		// The walkable mask is point-symmetric.
		g.Each(func(x, y int, c gamemap.Cell) {
			require.Equal(t, c.Walkable(), g.At(g.Width-1-x, g.Height-1-y).Walkable(),
				"seed %d: (%d,%d) breaks symmetry", seed, x, y)
		})

		assert.GreaterOrEqual(t, level.Passes, cfg.MinPassCount)
		assert.LessOrEqual(t, level.Passes, cfg.MaxPassCount)
		assert.Positive(t, level.Attempts)
	}
}

func TestGenerateConstantSymmetry(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ConstantSymmetry = true
	level := generateSeeded(t, 4, cfg)
	assertBorderWalls(t, level.Grid)
	assert.Equal(t, 1, level.Grid.Count(gamemap.FlagA))
}

func TestGenerateReproducible(t *testing.T) {
	a := generateSeeded(t, 77, DefaultConfig())
	b := generateSeeded(t, 77, DefaultConfig())
	assert.True(t, a.Grid.Equal(b.Grid))
	assert.Equal(t, a.Path, b.Path)
	assert.Equal(t, a.Attempts, b.Attempts)
}

func TestGenerateExhaustsAttempts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinFloorspace = 0.99
	cfg.MaxFloorspace = 1
	cfg.MaxAttempts = 3
	cfg.MinPassCount, cfg.MaxPassCount = 2, 2

	gen := NewGenerator(cfg, nil)
	var causes []error
	gen.OnAttempt = func(attempt int, cause error) {
		assert.Equal(t, len(causes)+1, attempt)
		causes = append(causes, cause)
	}

	level, err := gen.Generate(20, 20, rand.New(rand.NewSource(1)))
	assert.Nil(t, level)

	var failed *GenerationFailedError
	require.True(t, errors.As(err, &failed), "got %v", err)
	assert.Equal(t, 3, failed.Attempts)
	assert.Len(t, causes, 3)

	var de *DensityError
	assert.True(t, errors.As(err, &de), "last cause should be a density failure")

	var stage *StageError
	require.True(t, errors.As(err, &stage))
	assert.Equal(t, StateDensifying, stage.State)
}

func TestGenerateRejectsBadInput(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxPassCount = cfg.MinPassCount - 1
	_, err := Generate(40, 40, cfg, rand.New(rand.NewSource(1)))
	require.Error(t, err)
	assert.False(t, IsRecoverable(err))

	_, err = Generate(4, 40, DefaultConfig(), rand.New(rand.NewSource(1)))
	require.Error(t, err)
	assert.False(t, IsRecoverable(err))
}

func TestAttemptAllWallFailsDensity(t *testing.T) {
	// Every noise cell is wall and no passes run, so isolation removal
	// sees no floor and reports density.
	cfg := DefaultConfig()
	cfg.WallProbability = 1
	cfg.MinPassCount, cfg.MaxPassCount = 0, 0

	_, err := NewGenerator(cfg, nil).Attempt(12, 12, rand.New(rand.NewSource(1)))
	var stage *StageError
	require.True(t, errors.As(err, &stage))
	assert.Equal(t, StateDensifying, stage.State)
	assert.True(t, IsRecoverable(err))
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cases := map[string]func(*Config){
		"negative passes":   func(c *Config) { c.MinPassCount = -1 },
		"inverted passes":   func(c *Config) { c.MaxPassCount = c.MinPassCount - 1 },
		"wall probability":  func(c *Config) { c.WallProbability = 1.5 },
		"floor over one":    func(c *Config) { c.MaxFloorspace = 1.1 },
		"inverted floor":    func(c *Config) { c.MinFloorspace, c.MaxFloorspace = 0.6, 0.4 },
		"no attempts":       func(c *Config) { c.MaxAttempts = 0 },
		"no seed pair draw": func(c *Config) { c.MaxSeedPairs = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "densifying", StateDensifying.String())
	assert.Equal(t, "done", StateDone.String())
	assert.Equal(t, "state(42)", State(42).String())
}

// TestDefaultDensityBoundsFitSmoothedNoise guards the default floor bounds
// against what the automaton actually produces at the default size.
func TestDefaultDensityBoundsFitSmoothedNoise(t *testing.T) {
	cfg := DefaultConfig()
	for seed := int64(0); seed < 5; seed++ {
		rng := rand.New(rand.NewSource(seed))
		g := gamemap.NewNoise(40, 40, cfg.WallProbability, rng)
		Smooth(g, cfg.MaxPassCount, false, rng)
		frac := float64(g.Width*g.Height-g.Count(gamemap.Wall)) / float64(g.Width*g.Height)
		assert.GreaterOrEqual(t, frac, cfg.MinFloorspace, "seed %d", seed)
		assert.LessOrEqual(t, frac, cfg.MaxFloorspace, "seed %d", seed)
	}
}

func TestDefaultConfigGeneratesEveryTime(t *testing.T) {
	gen := NewGenerator(DefaultConfig(), nil)
	for seed := int64(100); seed < 110; seed++ {
		level, err := gen.Generate(40, 40, rand.New(rand.NewSource(seed)))
		require.NoError(t, err, "seed %d", seed)
		assert.LessOrEqual(t, level.FloorFraction(), DefaultConfig().MaxFloorspace)
	}
}
