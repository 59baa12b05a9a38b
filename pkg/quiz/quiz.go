// Package quiz generates fold-and-punch puzzles: a sheet is folded a few
// times at random, punched once, and the player predicts where the holes
// appear once it is unfolded.
//
// Generation is deterministic for a given seed and fold menu, so a question
// can be shared as (seed, folds, punch) and replayed anywhere with [Replay].
package quiz

import (
	"math/rand/v2"
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/holepunch/pkg/catalog"
	"github.com/matzehuels/holepunch/pkg/errors"
	"github.com/matzehuels/holepunch/pkg/paper"
)

const (
	DefaultMinFolds = 2
	DefaultMaxFolds = 3

	// MaxFolds bounds question difficulty.
	MaxFolds = paper.MaxFolds

	// maxAttempts bounds retries when a random fold sequence runs into a
	// sheet with no legal fold left.
	maxAttempts = 64
)

// Options configures question generation.
type Options struct {
	MinFolds int    `json:"min_folds"`
	MaxFolds int    `json:"max_folds"`
	Seed     uint64 `json:"seed,omitempty"` // 0 picks a random seed

	// Catalog is the fold menu to draw from. Empty means [catalog.Default].
	Catalog catalog.Catalog `json:"-"`

	validated bool
}

// ValidateAndSetDefaults fills zero fields and checks the fold range.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.MinFolds == 0 {
		o.MinFolds = DefaultMinFolds
	}
	if o.MaxFolds == 0 {
		o.MaxFolds = max(DefaultMaxFolds, o.MinFolds)
	}
	if err := errors.ValidateRange("min folds", o.MinFolds, 1, MaxFolds); err != nil {
		return err
	}
	if err := errors.ValidateRange("max folds", o.MaxFolds, o.MinFolds, MaxFolds); err != nil {
		return err
	}
	if len(o.Catalog) == 0 {
		o.Catalog = catalog.Default()
	}
	o.validated = true
	return nil
}

// Question is one generated puzzle. Paper is the folded and punched sheet;
// it is not serialised.
type Question struct {
	ID    string          `json:"id"`
	Seed  uint64          `json:"seed"`
	Folds []paper.Fold    `json:"folds"`
	Punch paper.GridPoint `json:"punch"`

	Paper *paper.Paper `json:"-"`
}

// Answer returns the holes on the unfolded sheet, sorted by row then column.
func (q *Question) Answer() []paper.GridPoint {
	return q.Paper.Holes()
}

// Generate builds a question from opts.
func Generate(opts Options) (*Question, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64() | 1
	}
	return generate(seed, opts)
}

func generate(seed uint64, opts Options) (*Question, error) {
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	span := opts.MaxFolds - opts.MinFolds + 1

	for range maxAttempts {
		n := opts.MinFolds + rng.IntN(span)
		p, ok := foldRandomly(paper.New(), n, opts.Catalog, rng)
		if !ok {
			continue
		}

		var occupied []paper.GridPoint
		for x := range paper.GridSize {
			for y := range paper.GridSize {
				if g := (paper.GridPoint{X: x, Y: y}); p.Occupied(g) {
					occupied = append(occupied, g)
				}
			}
		}
		paper.SortGridPoints(occupied)
		punch := occupied[rng.IntN(len(occupied))]
		p.Punch(punch)

		return &Question{
			ID:    uuid.NewString(),
			Seed:  seed,
			Folds: p.Folds(),
			Punch: punch,
			Paper: p,
		}, nil
	}
	return nil, errors.New(errors.ErrCodeInternal, "no foldable sequence found for seed %d", seed)
}

func foldRandomly(p *paper.Paper, n int, menu catalog.Catalog, rng *rand.Rand) (*paper.Paper, bool) {
	for range n {
		valid := menu.Valid(p)
		if len(valid) == 0 {
			return nil, false
		}
		if err := p.AddFold(valid[rng.IntN(len(valid))].Fold); err != nil {
			return nil, false
		}
	}
	return p, true
}

// Replay rebuilds a question from its folds and punch point, e.g. when a
// client sends back a question it received earlier.
func Replay(folds []paper.Fold, punch paper.GridPoint) (*Question, error) {
	if err := errors.ValidateRange("folds", len(folds), 1, MaxFolds); err != nil {
		return nil, err
	}
	p := paper.New()
	for _, f := range folds {
		if err := p.AddFold(f); err != nil {
			return nil, err
		}
	}
	if p.Punch(punch) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no paper at punch point %s", punch)
	}
	return &Question{ID: uuid.NewString(), Folds: p.Folds(), Punch: punch, Paper: p}, nil
}

// Result is the outcome of grading a guess.
type Result struct {
	Correct bool              `json:"correct"`
	Missing []paper.GridPoint `json:"missing,omitempty"`
	Extra   []paper.GridPoint `json:"extra,omitempty"`
}

// Grade compares a guessed set of holes with the answer. Order and
// duplicates in guess are ignored.
func Grade(q *Question, guess []paper.GridPoint) Result {
	answer := q.Answer()
	guess = slices.Clone(guess)
	paper.SortGridPoints(guess)
	guess = slices.Compact(guess)

	var r Result
	for _, a := range answer {
		if !slices.Contains(guess, a) {
			r.Missing = append(r.Missing, a)
		}
	}
	for _, g := range guess {
		if !slices.Contains(answer, g) {
			r.Extra = append(r.Extra, g)
		}
	}
	r.Correct = len(r.Missing) == 0 && len(r.Extra) == 0
	return r
}
