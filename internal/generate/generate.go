// Package generate builds capture-the-flag cave levels: automaton noise
// smoothing, isolation removal, symmetry, flag placement and a final
// traversability check, restarting from fresh noise on any recoverable
// failure.
package generate

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"

	"ctf-cavegen/internal/gamemap"
)

// State is a step of one generation attempt.
type State uint8

const (
	StateInit State = iota
	StateSmoothing
	StateDensifying
	StateSymmetrizing
	StatePlacing
	StateVerifying
	StateDone
)

var stateNames = [...]string{
	StateInit:         "init",
	StateSmoothing:    "smoothing",
	StateDensifying:   "densifying",
	StateSymmetrizing: "symmetrizing",
	StatePlacing:      "placing",
	StateVerifying:    "verifying",
	StateDone:         "done",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// Level is a finished, validated map.
type Level struct {
	Grid     *gamemap.Grid `json:"grid"`
	Path     Path          `json:"path"`
	FlagA    gamemap.Point `json:"flag_a"`
	FlagB    gamemap.Point `json:"flag_b"`
	Passes   int           `json:"passes"`
	Attempts int           `json:"attempts"`
}

// FloorFraction is the share of walkable cells in the grid.
func (l *Level) FloorFraction() float64 {
	total := l.Grid.Width * l.Grid.Height
	if total == 0 {
		return 0
	}
	return float64(total-l.Grid.Count(gamemap.Wall)) / float64(total)
}

// StageError records the state an attempt failed in.
type StageError struct {
	State State
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s: %v", e.State, e.Err) }

func (e *StageError) Unwrap() error { return e.Err }

// Generator runs generation attempts with a fixed configuration.
type Generator struct {
	cfg    Config
	logger *slog.Logger

	// OnAttempt, when set, is called after every failed attempt.
	OnAttempt func(attempt int, cause error)
}

// NewGenerator returns a Generator. A nil logger discards output.
func NewGenerator(cfg Config, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Generator{cfg: cfg, logger: logger}
}

// Config returns the generator's configuration.
func (gen *Generator) Config() Config { return gen.cfg }

// Generate is the package entry point: it builds a Generator without
// logging and runs it.
func Generate(width, height int, cfg Config, rng *rand.Rand) (*Level, error) {
	return NewGenerator(cfg, nil).Generate(width, height, rng)
}

// Generate retries Attempt until one succeeds or the attempt budget runs
// out, in which case it returns *GenerationFailedError.
func (gen *Generator) Generate(width, height int, rng *rand.Rand) (*Level, error) {
	if err := gen.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := validateSize(width, height); err != nil {
		return nil, err
	}

	var last error
	for attempt := 1; attempt <= gen.cfg.MaxAttempts; attempt++ {
		level, err := gen.Attempt(width, height, rng)
		if err == nil {
			level.Attempts = attempt
			gen.logger.Info("level generated",
				"width", width, "height", height,
				"attempts", attempt, "passes", level.Passes,
				"floor", fmt.Sprintf("%.3f", level.FloorFraction()),
				"path", level.Path.Len())
			return level, nil
		}
		if !IsRecoverable(err) {
			return nil, err
		}
		last = err
		gen.logger.Debug("attempt failed", "attempt", attempt, "error", err)
		if gen.OnAttempt != nil {
			gen.OnAttempt(attempt, err)
		}
	}
	return nil, &GenerationFailedError{Attempts: gen.cfg.MaxAttempts, LastCause: last}
}

// Attempt runs the pipeline once on fresh noise. Failures are returned as
// *StageError wrapping the recoverable cause; the grid is discarded.
func (gen *Generator) Attempt(width, height int, rng *rand.Rand) (*Level, error) {
	var (
		g      *gamemap.Grid
		level  = &Level{}
		kept   Region
		err    error
		state  = StateInit
		failed = func(err error) (*Level, error) {
			return nil, &StageError{State: state, Err: err}
		}
	)

	for state != StateDone {
		switch state {
		case StateInit:
			g = gamemap.NewNoise(width, height, gen.cfg.WallProbability, rng)
			level.Grid = g
			state = StateSmoothing

		case StateSmoothing:
			level.Passes = drawPassCount(gen.cfg.MinPassCount, gen.cfg.MaxPassCount, rng)
			Smooth(g, level.Passes, gen.cfg.ConstantSymmetry, rng)
			state = StateDensifying

		case StateDensifying:
			if kept, err = RemoveIsolates(g, gen.cfg, rng); err != nil {
				return failed(err)
			}
			gen.logger.Debug("isolates removed", "region", kept.Len())
			state = StateSymmetrizing

		case StateSymmetrizing:
			Symmetrize(g)
			state = StatePlacing

		case StatePlacing:
			if level.FlagA, level.FlagB, err = PlaceFlags(g); err != nil {
				return failed(err)
			}
			state = StateVerifying

		case StateVerifying:
			if level.Path, err = gen.verify(g, level.FlagA, level.FlagB); err != nil {
				return failed(err)
			}
			state = StateDone
		}
	}
	return level, nil
}

// verify checks the finished grid: density of walkable cells, a flag to
// flag path, and that the flags' region covers every walkable cell.
func (gen *Generator) verify(g *gamemap.Grid, a, b gamemap.Point) (Path, error) {
	gr := BuildGraph(g)
	if err := checkDensity(gr.Len(), g.Width*g.Height, gen.cfg.MinFloorspace, gen.cfg.MaxFloorspace); err != nil {
		return nil, err
	}
	path, err := Verify(gr, a, b)
	if err != nil {
		return nil, err
	}
	if n := gr.Reachable(a); n != gr.Len() {
		gen.logger.Debug("walkable area split by symmetry", "reached", n, "walkable", gr.Len())
		return nil, &NoPathError{From: a, To: firstUnreached(gr, a)}
	}
	return path, nil
}

func firstUnreached(gr *Graph, src gamemap.Point) gamemap.Point {
	reached := gr.bfs(src)
	var best gamemap.Point
	found := false
	for p := range gr.adj {
		if _, ok := reached[p]; ok {
			continue
		}
		if !found || p.Y < best.Y || (p.Y == best.Y && p.X < best.X) {
			best, found = p, true
		}
	}
	return best
}
