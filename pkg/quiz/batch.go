package quiz

import (
	"context"
	"math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/holepunch/pkg/errors"
)

// MaxBatch caps how many questions one call may generate.
const MaxBatch = 256

// NextSeed returns the seed that follows seed in a sequence of questions.
// Zero means "random", so the sequence wraps past it to 1.
func NextSeed(seed uint64) uint64 {
	if seed+1 == 0 {
		return 1
	}
	return seed + 1
}

// GenerateBatch builds n questions concurrently, one sheet per goroutine.
// With a non-zero opts.Seed question i uses Seed+i, so a batch is
// reproducible; otherwise every question gets a random seed. Results keep
// index order.
func GenerateBatch(ctx context.Context, n int, opts Options) ([]*Question, error) {
	if err := errors.ValidateRange("batch size", n, 1, MaxBatch); err != nil {
		return nil, err
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	seeds := make([]uint64, n)
	next := opts.Seed
	for i := range seeds {
		if opts.Seed != 0 {
			seeds[i] = next
			next = NextSeed(next)
		} else {
			seeds[i] = rand.Uint64() | 1
		}
	}

	out := make([]*Question, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, seed := range seeds {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			q, err := generate(seed, opts)
			if err != nil {
				return err
			}
			out[i] = q
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
