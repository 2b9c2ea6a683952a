package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/anchorlayout/pkg/cache"
	"github.com/matzehuels/anchorlayout/pkg/depgraph"
	"github.com/matzehuels/anchorlayout/pkg/errors"
	"github.com/matzehuels/anchorlayout/pkg/frame"
	"github.com/matzehuels/anchorlayout/pkg/layout"
	"github.com/matzehuels/anchorlayout/pkg/observability"
	"github.com/matzehuels/anchorlayout/pkg/snapshot"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// TTL overrides cache.ResolveTTL when positive.
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
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Resolve resolves set and returns its snapshot. The boolean reports a
// cache hit; a hit returns the snapshot stored by the earlier run,
// including its ID.
func (r *Runner) Resolve(ctx context.Context, set *frame.Set, opts Options) (*snapshot.Snapshot, bool, error) {
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}
	if opts.Layout.Logger == nil {
		opts.Layout.Logger = r.Logger
	}

	declHash := DeclarationHash(set)
	key := r.Keyer.ResolveKey(declHash, opts.KeyOpts())

	if !opts.Refresh {
		data, err := cache.Lookup(ctx, r.Cache, key)
		switch {
		case err == nil:
			if snap, err := snapshot.Unmarshal(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "resolve")
				r.Logger.Debug("resolution cache hit", "key", key)
				return snap, true, nil
			}
		case !cache.IsMiss(err):
			r.Logger.Warn("cache read failed", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "resolve")
	}

	snap := r.resolve(ctx, set, opts, declHash)

	if data, err := snapshot.Marshal(snap); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.ResolveTTL)); err != nil {
			r.Logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "resolve", len(data))
		}
	}
	return snap, false, nil
}

func (r *Runner) resolve(ctx context.Context, set *frame.Set, opts Options, declHash string) *snapshot.Snapshot {
	hooks := observability.Resolve()
	hooks.OnResolveStart(ctx, set.Len())
	start := time.Now()

	res := layout.ResolveAll(set, opts.Layout)
	for _, d := range res.Diagnostics {
		switch d.Kind {
		case layout.DiagCycle:
			hooks.OnCycleFallback(ctx, len(d.Related))
		case layout.DiagDepthExceeded:
			hooks.OnDepthExceeded(ctx, d.Frame)
		}
	}
	elapsed := time.Since(start)
	hooks.OnResolveComplete(ctx, observability.ResolveStats{
		Frames:      len(res.Frames),
		Rejected:    len(res.Rejected),
		Passes:      res.Passes,
		Diagnostics: len(res.Diagnostics),
		Cyclic:      res.Cyclic,
	}, elapsed, nil)

	r.Logger.Info("resolved frames",
		"frames", len(res.Frames),
		"rejected", len(res.Rejected),
		"passes", res.Passes,
		"diagnostics", len(res.Diagnostics),
		"duration", elapsed)

	return snapshot.FromResult(set, res, declHash)
}

// Graph renders the dependency graph of set in the requested format. The
// boolean reports a cache hit.
func (r *Runner) Graph(ctx context.Context, set *frame.Set, opts GraphOptions) ([]byte, bool, error) {
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}
	key := r.Keyer.GraphKey(DeclarationHash(set), cache.GraphKeyOpts{
		Format:   opts.Format,
		Detailed: opts.Detailed,
	})
	cacheable := len(opts.Highlight) == 0

	if cacheable && !opts.Refresh {
		if data, err := cache.Lookup(ctx, r.Cache, key); err == nil {
			observability.Cache().OnCacheHit(ctx, "graph")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "graph")
	}

	g := depgraph.Build(set)
	var data []byte
	switch opts.Format {
	case FormatMermaid:
		data = []byte(depgraph.ToMermaid(g))
	case FormatDOT, FormatSVG:
		dot := depgraph.ToDOT(g, depgraph.Options{Detailed: opts.Detailed, Highlight: opts.Highlight})
		if opts.Format == FormatDOT {
			data = []byte(dot)
			break
		}
		svg, err := depgraph.RenderSVG(ctx, dot)
		if err != nil {
			return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "render graph")
		}
		data = svg
	}
	r.Logger.Debug("built dependency graph", "nodes", g.NodeCount(), "edges", g.EdgeCount(), "format", opts.Format)

	if cacheable {
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.GraphTTL)); err == nil {
			observability.Cache().OnCacheSet(ctx, "graph", len(data))
		}
	}
	return data, false, nil
}

// Cycles returns the dependency cycles of set, for highlighting.
func Cycles(set *frame.Set) []string {
	var out []string
	for _, c := range depgraph.Build(set).Cycles() {
		out = append(out, c...)
	}
	return out
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		if err := r.Cache.Close(); err != nil {
			return fmt.Errorf("close cache: %w", err)
		}
	}
	return nil
}
