// Package config loads generator settings from a YAML file and the
// environment. Precedence, lowest first: defaults, YAML file, .env and
// process environment (CAVEGEN_*), then command-line flags applied by the
// caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"ctf-cavegen/internal/generate"
)

// Config holds everything the CLI and the SSH server need.
type Config struct {
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Count   int    `yaml:"count"`   // levels per batch
	Workers int    `yaml:"workers"` // parallel generation workers
	Seed    int64  `yaml:"seed"`    // 0 picks a time-based seed
	OutDir  string `yaml:"out_dir"`
	TileDir string `yaml:"tile_dir"` // optional directory of tile PNGs
	Theme   string `yaml:"theme"`
	PNG     bool   `yaml:"png"`
	RunLog  bool   `yaml:"run_log"`

	Generation generate.Config `yaml:"generation"`
}

// Default returns the built-in configuration: 40×40 levels, one per run.
func Default() Config {
	return Config{
		Width:      40,
		Height:     40,
		Count:      1,
		Workers:    4,
		OutDir:     "generated",
		Theme:      "cave",
		PNG:        true,
		RunLog:     true,
		Generation: generate.DefaultConfig(),
	}
}

// Load reads a YAML file over the defaults. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config YAML: %w", err)
	}
	return cfg, nil
}

// LoadWithEnv is Load followed by ApplyEnv. A missing .env file is fine.
func LoadWithEnv(path string, logger *slog.Logger) (Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return cfg, err
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn(".env file could not be loaded", "error", err)
	}
	if err := ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overrides cfg with CAVEGEN_* variables found through lookup.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	e := envReader{lookup: lookup}
	e.setInt("CAVEGEN_WIDTH", &cfg.Width)
	e.setInt("CAVEGEN_HEIGHT", &cfg.Height)
	e.setInt("CAVEGEN_COUNT", &cfg.Count)
	e.setInt("CAVEGEN_WORKERS", &cfg.Workers)
	e.setInt64("CAVEGEN_SEED", &cfg.Seed)
	e.setString("CAVEGEN_OUT_DIR", &cfg.OutDir)
	e.setString("CAVEGEN_TILE_DIR", &cfg.TileDir)
	e.setString("CAVEGEN_THEME", &cfg.Theme)
	e.setBool("CAVEGEN_PNG", &cfg.PNG)
	e.setBool("CAVEGEN_RUN_LOG", &cfg.RunLog)

	g := &cfg.Generation
	e.setInt("CAVEGEN_MIN_PASS_COUNT", &g.MinPassCount)
	e.setInt("CAVEGEN_MAX_PASS_COUNT", &g.MaxPassCount)
	e.setFloat("CAVEGEN_WALL_PROBABILITY", &g.WallProbability)
	e.setBool("CAVEGEN_CONSTANT_SYMMETRY", &g.ConstantSymmetry)
	e.setFloat("CAVEGEN_MIN_FLOORSPACE", &g.MinFloorspace)
	e.setFloat("CAVEGEN_MAX_FLOORSPACE", &g.MaxFloorspace)
	e.setInt("CAVEGEN_MAX_ATTEMPTS", &g.MaxAttempts)
	e.setInt("CAVEGEN_MAX_SEED_PAIRS", &g.MaxSeedPairs)
	return e.err
}

// Validate checks the level size, batch settings and generator tuning.
func (c Config) Validate() error {
	if c.Width < generate.MinSize || c.Height < generate.MinSize {
		return fmt.Errorf("level size %dx%d is below the minimum %dx%d",
			c.Width, c.Height, generate.MinSize, generate.MinSize)
	}
	if c.Count < 1 {
		return fmt.Errorf("count must be >= 1, got %d", c.Count)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", c.Workers)
	}
	return c.Generation.Validate()
}

// envReader collects the first parse error so ApplyEnv reads straight through.
type envReader struct {
	lookup func(string) (string, bool)
	err    error
}

func (e *envReader) get(key string) (string, bool) {
	if e.err != nil {
		return "", false
	}
	return e.lookup(key)
}

func (e *envReader) fail(key string, err error) {
	e.err = fmt.Errorf("environment variable %s: %w", key, err)
}

func (e *envReader) setString(key string, dst *string) {
	if v, ok := e.get(key); ok {
		*dst = v
	}
}

func (e *envReader) setInt(key string, dst *int) {
	if v, ok := e.get(key); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			e.fail(key, err)
			return
		}
		*dst = n
	}
}

func (e *envReader) setInt64(key string, dst *int64) {
	if v, ok := e.get(key); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			e.fail(key, err)
			return
		}
		*dst = n
	}
}

func (e *envReader) setFloat(key string, dst *float64) {
	if v, ok := e.get(key); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			e.fail(key, err)
			return
		}
		*dst = f
	}
}

func (e *envReader) setBool(key string, dst *bool) {
	if v, ok := e.get(key); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			e.fail(key, err)
			return
		}
		*dst = b
	}
}
