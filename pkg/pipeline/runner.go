package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/holepunch/pkg/cache"
	"github.com/matzehuels/holepunch/pkg/errors"
	"github.com/matzehuels/holepunch/pkg/observability"
	"github.com/matzehuels/holepunch/pkg/paper"
	"github.com/matzehuels/holepunch/pkg/render/trace"
)

// Runner executes the pipeline with artifact caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is how long rendered artifacts stay cached. Zero means
	// cache.ArtifactTTL.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Simulate applies the folds and punches in opts to a fresh sheet.
// A fold that fails validation aborts the run with its INVALID_FOLD or
// DOMAIN_ERROR code; a punch that hits no paper is logged and skipped.
func (r *Runner) Simulate(ctx context.Context, opts Options) (*paper.Paper, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hooks := observability.Simulation()

	p := paper.New()
	for i, f := range opts.folds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := p.AddFold(f); err != nil {
			hooks.OnFoldRejected(ctx, f.String(), i+1, err)
			return nil, errors.Wrap(errors.GetCode(err), err, "fold %d (%s)", i+1, f)
		}
		hooks.OnFoldApplied(ctx, f.String(), i+1)
	}

	for _, pt := range opts.punches {
		n := p.Punch(pt)
		hooks.OnPunch(ctx, pt.String(), n)
		if n == 0 {
			r.Logger.Warn("punch missed the paper", "point", pt)
		}
	}
	return p, nil
}

// Execute simulates the sequence and renders every requested step in every
// requested format.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	simStart := time.Now()
	p, err := r.Simulate(ctx, opts)
	if err != nil {
		return nil, err
	}
	result := &Result{
		Paper:     p,
		SeqHash:   SequenceHash(p.Folds(), p.Holes()),
		Holes:     p.Holes(),
		Artifacts: make(map[string][]byte),
	}
	result.Stats.Folds = p.FoldCount()
	result.Stats.Punched = len(result.Holes)
	result.Stats.SimulateTime = time.Since(simStart)

	r.Logger.Info("simulated folds",
		"folds", result.Stats.Folds,
		"holes", result.Stats.Punched,
		"duration", result.Stats.SimulateTime)

	renderStart := time.Now()
	for _, step := range opts.Steps {
		for _, format := range opts.Formats {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			data, hit, err := r.renderCached(ctx, p, result.SeqHash, step, format, opts)
			if err != nil {
				return nil, err
			}
			result.Artifacts[ArtifactName(step, format)] = data
			if hit {
				result.CacheInfo.Hits++
			} else {
				result.CacheInfo.Misses++
			}
		}
	}
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = result.CacheInfo.Misses == 0

	r.Logger.Info("rendered outputs",
		"steps", len(opts.Steps),
		"formats", opts.Formats,
		"cached", result.CacheInfo.Hits,
		"duration", result.Stats.RenderTime)

	return result, nil
}

func (r *Runner) renderCached(ctx context.Context, p *paper.Paper, seqHash string, step int, format string, opts Options) ([]byte, bool, error) {
	key := r.Keyer.ArtifactKey(seqHash, opts.ArtifactKeyOpts(step, format))
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return data, true, nil
		} else if err != nil {
			r.Logger.Warn("cache read failed", "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	hooks := observability.Render()
	hooks.OnRenderStart(ctx, format, step)
	start := time.Now()
	data, err := RenderStep(p, step, format, opts)
	hooks.OnRenderComplete(ctx, format, step, len(data), time.Since(start), err)
	if err != nil {
		return nil, false, errors.Wrap(errors.GetCode(err), err, "render step %d as %s", step, format)
	}

	ttl := r.TTL
	if ttl <= 0 {
		ttl = cache.ArtifactTTL
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return data, false, nil
}

// Trace renders the fold history of p as a flow graph. Format is "dot" or
// "svg"; SVG output is cached since Graphviz layout is the slow part.
func (r *Runner) Trace(ctx context.Context, p *paper.Paper, format string, topts trace.Options, refresh bool) ([]byte, bool, error) {
	dot := trace.ToDOT(p, topts)
	switch format {
	case "dot":
		return []byte(dot), false, nil
	case FormatSVG:
	default:
		return nil, false, errors.New(errors.ErrCodeInvalidFormat, "trace format must be dot or svg, got %q", format)
	}

	key := r.Keyer.TraceKey(SequenceHash(p.Folds(), p.Holes()), cache.TraceKeyOpts{
		MovesOnly: topts.MovesOnly,
		Detailed:  topts.Detailed,
	})
	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "trace")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "trace")
	}

	start := time.Now()
	svg, err := trace.RenderSVG(ctx, dot)
	if err != nil {
		return nil, false, err
	}
	r.Logger.Debug("rendered trace", "bytes", len(svg), "duration", time.Since(start))

	if err := r.Cache.Set(ctx, key, svg, cache.TraceTTL); err == nil {
		observability.Cache().OnCacheSet(ctx, "trace", len(svg))
	}
	return svg, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
