package generate

import "fmt"

// Config drives procedural generation for one level.
type Config struct {
	// Pass count is drawn once per attempt from [MinPassCount, MaxPassCount].
	// More passes give smoother caves.
	MinPassCount int `yaml:"min_pass_count"`
	MaxPassCount int `yaml:"max_pass_count"`

	// WallProbability is the chance of a wall in the initial noise.
	WallProbability float64 `yaml:"wall_probability"`

	// ConstantSymmetry symmetrizes before every automaton pass as well as
	// once after isolation removal.
	ConstantSymmetry bool `yaml:"constant_symmetry"`

	// Accepted floor fraction, closed interval.
	MinFloorspace float64 `yaml:"min_floorspace"`
	MaxFloorspace float64 `yaml:"max_floorspace"`

	// MaxAttempts bounds full restarts; MaxSeedPairs bounds seed draws
	// inside one isolation removal.
	MaxAttempts  int `yaml:"max_attempts"`
	MaxSeedPairs int `yaml:"max_seed_pairs"`
}

// DefaultConfig returns the tuning the generator was designed around.
func DefaultConfig() Config {
	return Config{
		MinPassCount:     25,
		MaxPassCount:     35,
		WallProbability:  0.5,
		ConstantSymmetry: false,
		MinFloorspace:    0.3,
		MaxFloorspace:    0.95,
		MaxAttempts:      100,
		MaxSeedPairs:     1000,
	}
}

// MinSize is the smallest width or height that can hold a 5×5 open window
// inside the wall border.
const MinSize = 7

// Validate reports the first out-of-range setting.
func (c Config) Validate() error {
	switch {
	case c.MinPassCount < 0:
		return fmt.Errorf("min_pass_count must be >= 0, got %d", c.MinPassCount)
	case c.MaxPassCount < c.MinPassCount:
		return fmt.Errorf("max_pass_count (%d) must be >= min_pass_count (%d)", c.MaxPassCount, c.MinPassCount)
	case c.WallProbability < 0 || c.WallProbability > 1:
		return fmt.Errorf("wall_probability must be in [0,1], got %g", c.WallProbability)
	case c.MinFloorspace < 0 || c.MaxFloorspace > 1:
		return fmt.Errorf("floorspace bounds must be within [0,1], got [%g,%g]", c.MinFloorspace, c.MaxFloorspace)
	case c.MaxFloorspace < c.MinFloorspace:
		return fmt.Errorf("max_floorspace (%g) must be >= min_floorspace (%g)", c.MaxFloorspace, c.MinFloorspace)
	case c.MaxAttempts < 1:
		return fmt.Errorf("max_attempts must be >= 1, got %d", c.MaxAttempts)
	case c.MaxSeedPairs < 1:
		return fmt.Errorf("max_seed_pairs must be >= 1, got %d", c.MaxSeedPairs)
	}
	return nil
}

func validateSize(width, height int) error {
	if width < MinSize || height < MinSize {
		return fmt.Errorf("level size %dx%d is below the minimum %dx%d", width, height, MinSize, MinSize)
	}
	return nil
}
