package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/sandboxer/internal/server"
	"github.com/matzehuels/sandboxer/pkg/cache"
	"github.com/matzehuels/sandboxer/pkg/observability"
	"github.com/matzehuels/sandboxer/pkg/pipeline"
)

// redisKeyPrefix namespaces keys in a shared Redis database.
const redisKeyPrefix = appName + ":"

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		noCache   bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Results are cached in Redis when --redis (or [cache] redis_addr) is set,
otherwise in the local file cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}
			if redisAddr == "" {
				redisAddr = cfg.Cache.RedisAddr
			}

			hooks := observability.NewLogHooks(logger)
			observability.SetExportHooks(hooks)
			observability.SetCacheHooks(hooks)
			observability.SetHTTPHooks(hooks)

			var runner *pipeline.Runner
			switch {
			case noCache || redisAddr == "":
				if runner, err = c.newRunner(cfg, noCache); err != nil {
					return err
				}
			default:
				rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: redisAddr})
				if err != nil {
					return err
				}
				logger.Info("using redis cache", "addr", redisAddr)
				runner = pipeline.NewRunner(rc, cache.NewScopedKeyer(nil, redisKeyPrefix), logger)
				if runner.TTL, err = cfg.TTL(); err != nil {
					return err
				}
			}
			defer runner.Close()

			return server.New(runner, c.pipelineOptions(cfg), logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, "+`":8080"`+")")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for the shared cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
