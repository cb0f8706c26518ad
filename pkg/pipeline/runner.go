package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/sandboxer/pkg/cache"
	"github.com/matzehuels/sandboxer/pkg/observability"
	"github.com/matzehuels/sandboxer/pkg/story"
)

// DefaultTTL is how long successful exports stay cached.
const DefaultTTL = 24 * time.Hour

// DefaultConcurrency bounds parallel exports in ExportAll.
const DefaultConcurrency = 8

const keyType = "export"

// Runner runs exports with caching. It holds no per-export state, so one
// Runner can serve many goroutines.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner. A nil cache disables caching and a nil keyer
// means cache.DefaultKeyer.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger, TTL: DefaultTTL}
}

// Export runs [Export] for one story, consulting the cache first.
func (r *Runner) Export(ctx context.Context, c story.Context, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	start := time.Now()
	hooks := observability.Export()
	hooks.OnExportStart(ctx, c.ID)

	c = c.WithDefaults(opts.DefaultDependencies, opts.DefaultIndexTsx)
	key := r.key(c, &opts)

	res, hit := r.cached(ctx, key, opts.Refresh)
	if !hit {
		var err error
		if res, err = Export(c, opts); err != nil {
			return nil, err
		}
		if res.OK() {
			r.store(ctx, key, res)
		}
	}
	res.CacheHit = hit
	res.Duration = time.Since(start)

	kind := ""
	if res.Failure != nil {
		kind = string(res.Failure.Kind)
		r.Logger.Error("export to codesandbox failed", "story", c.Name, "kind", kind)
		r.Logger.Error(res.Failure.Message)
	} else {
		r.Logger.Info("exported story",
			"story", c.Name,
			"dependencies", len(res.Dependencies),
			"cached", hit,
			"duration", res.Duration)
	}
	hooks.OnExportComplete(ctx, c.ID, kind, res.Duration)
	return res, nil
}

// ExportAll exports stories concurrently and returns results in input
// order. It stops at the first error; failed exports are not errors.
func (r *Runner) ExportAll(ctx context.Context, stories []story.Context, opts Options, concurrency int) ([]*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]*Result, len(stories))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, s := range stories {
		g.Go(func() error {
			res, err := r.Export(gctx, s, opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) key(c story.Context, opts *Options) string {
	data, _ := json.Marshal(c)
	return r.Keyer.ExportKey(cache.Hash(data), opts.KeyOpts())
}

func (r *Runner) cached(ctx context.Context, key string, refresh bool) (*Result, bool) {
	if refresh {
		return nil, false
	}
	hooks := observability.Cache()
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "error", err)
	}
	if err != nil || !hit {
		hooks.OnCacheMiss(ctx, keyType)
		return nil, false
	}
	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		hooks.OnCacheMiss(ctx, keyType)
		return nil, false
	}
	hooks.OnCacheHit(ctx, keyType)
	return &res, true
}

func (r *Runner) store(ctx context.Context, key string, res *Result) {
	data, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}
