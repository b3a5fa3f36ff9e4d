package generate

import (
	"errors"
	"fmt"

	"ctf-cavegen/internal/gamemap"
)

// DensityError reports a flood-filled region whose share of the grid is
// outside the configured floorspace bounds.
type DensityError struct {
	Floor, Total int
	Min, Max     float64
}

// Fraction is Floor/Total.
func (e *DensityError) Fraction() float64 {
	if e.Total == 0 {
		return 0
	}
	return float64(e.Floor) / float64(e.Total)
}

func (e *DensityError) Error() string {
	return fmt.Sprintf("floor density %.3f (%d/%d) outside [%.3f, %.3f]",
		e.Fraction(), e.Floor, e.Total, e.Min, e.Max)
}

// NoOpenCenterError means no cell could anchor the flags.
// Target is set when an anchor was found but a flag cell was unusable.
type NoOpenCenterError struct {
	Target *gamemap.Point
}

func (e *NoOpenCenterError) Error() string {
	if e.Target != nil {
		return fmt.Sprintf("no open center: flag target (%d,%d) is not interior floor", e.Target.X, e.Target.Y)
	}
	return "no open center: no floor cell with a fully open 5x5 window"
}

// NoPathError means the traversability graph does not connect From and To.
type NoPathError struct {
	From, To gamemap.Point
}

func (e *NoPathError) Error() string {
	return fmt.Sprintf("no path from (%d,%d) to (%d,%d)", e.From.X, e.From.Y, e.To.X, e.To.Y)
}

// GenerationFailedError is returned once the attempt budget is spent.
type GenerationFailedError struct {
	Attempts  int
	LastCause error
}

func (e *GenerationFailedError) Error() string {
	return fmt.Sprintf("generation failed after %d attempts: %v", e.Attempts, e.LastCause)
}

func (e *GenerationFailedError) Unwrap() error { return e.LastCause }

// ErrSeedPairsExhausted is returned when isolation removal cannot find two
// seeds in the same region within its draw budget.
var ErrSeedPairsExhausted = errors.New("isolation removal: seed pair budget exhausted")

// IsRecoverable reports whether err should discard the grid and restart
// generation from fresh noise.
func IsRecoverable(err error) bool {
	var (
		density *DensityError
		center  *NoOpenCenterError
		path    *NoPathError
	)
	return errors.As(err, &density) ||
		errors.As(err, &center) ||
		errors.As(err, &path) ||
		errors.Is(err, ErrSeedPairsExhausted)
}
