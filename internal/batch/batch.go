// Package batch generates many levels in parallel. Each item owns its RNG,
// seeded from the batch seed plus the item index, so a batch is
// reproducible regardless of worker count or scheduling order.
package batch

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"ctf-cavegen/internal/generate"
)

// LevelGenerator is satisfied by *generate.Generator.
type LevelGenerator interface {
	Generate(width, height int, rng *rand.Rand) (*generate.Level, error)
}

// Options sizes a batch.
type Options struct {
	Count   int
	Width   int
	Height  int
	Seed    int64
	Workers int
}

// Item is the outcome of one level in a batch. Exactly one of Level and Err
// is set.
type Item struct {
	Index int
	ID    uuid.UUID
	Seed  int64
	Level *generate.Level
	Err   error
}

// Summary counts the items a batch delivered.
type Summary struct {
	Generated int
	Failed    int
	Attempts  int // total attempts over successful items
}

func (s *Summary) add(it Item) {
	if it.Err != nil {
		s.Failed++
		return
	}
	s.Generated++
	s.Attempts += it.Level.Attempts
}

// Run generates opts.Count levels on at most opts.Workers goroutines and
// hands each item to sink. Put is never called concurrently.
//
// A level that exhausts its attempts is delivered with Err set and does not
// stop the batch. Any other error stops scheduling, as does cancelling ctx,
// and is returned with the partial summary.
func Run(ctx context.Context, opts Options, gen LevelGenerator, sink Sink) (Summary, error) {
	var sum Summary
	if opts.Count < 1 {
		return sum, fmt.Errorf("batch count must be >= 1, got %d", opts.Count)
	}
	if opts.Workers < 1 {
		return sum, fmt.Errorf("batch workers must be >= 1, got %d", opts.Workers)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	var mu sync.Mutex

	for i := 0; i < opts.Count; i++ {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			it := runItem(i, opts, gen)
			if it.Err != nil && !isExhausted(it.Err) {
				return fmt.Errorf("level %d: %w", i, it.Err)
			}

			mu.Lock()
			defer mu.Unlock()
			if err := sink.Put(it); err != nil {
				return fmt.Errorf("level %d: %w", i, err)
			}
			sum.add(it)
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	return sum, err
}

func runItem(index int, opts Options, gen LevelGenerator) Item {
	seed := opts.Seed + int64(index)
	it := Item{Index: index, ID: uuid.New(), Seed: seed}
	it.Level, it.Err = gen.Generate(opts.Width, opts.Height, rand.New(rand.NewSource(seed)))
	return it
}

func isExhausted(err error) bool {
	var failed *generate.GenerationFailedError
	return errors.As(err, &failed)
}
