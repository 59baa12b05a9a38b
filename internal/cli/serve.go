package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/holepunch/pkg/cache"
	"github.com/matzehuels/holepunch/pkg/config"
	"github.com/matzehuels/holepunch/pkg/pipeline"
	"github.com/matzehuels/holepunch/pkg/server"
)

type serveOpts struct {
	addr      string
	redisAddr string
	redisURL  string
	timeout   time.Duration
	noCache   bool
}

// serveCommand runs the JSON HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the folding API over HTTP",
		Long: `Serve the folding engine as a stateless JSON API.

Rendered artifacts are cached in Redis when an address or URL is configured
(flags, or cache.redis_addr / cache.redis_url in the config file), otherwise
in the local file cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "", "Redis host:port for the artifact cache")
	cmd.Flags().StringVar(&opts.redisURL, "redis-url", "", "Redis URL for the artifact cache")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "per-request timeout (default from config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable artifact caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	cfg := c.Config
	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}
	if opts.timeout > 0 {
		cfg.Server.RequestTimeout = opts.timeout
	}
	if opts.redisAddr != "" || opts.redisURL != "" {
		cfg.Cache.RedisAddr, cfg.Cache.RedisURL = opts.redisAddr, opts.redisURL
	}

	menu, err := cfg.LoadCatalog()
	if err != nil {
		return err
	}
	store, keyer, err := c.serverCache(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(store, keyer, c.Logger)
	runner.TTL = cfg.Cache.TTL
	defer runner.Close()

	srv := server.New(runner, menu, server.Config{
		Addr:           cfg.Server.Addr,
		RequestTimeout: cfg.Server.RequestTimeout,
		Quiz:           cfg.QuizOptions(menu),
	}, c.Logger)

	printInfo("Serving on %s", StyleHighlight.Render(cfg.Server.Addr))
	return srv.ListenAndServe(ctx)
}

// serverCache picks the artifact store: Redis when configured, else the
// file cache. Redis keys are namespaced with the server key prefix.
func (c *CLI) serverCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, cache.Keyer, error) {
	if noCache || cfg.Cache.Disabled {
		return cache.NewNullCache(), nil, nil
	}
	rc, ok := cfg.RedisConfig()
	if !ok {
		fc, err := c.newCache(false)
		return fc, nil, err
	}

	store, err := cache.NewRedisCache(ctx, rc)
	if err != nil {
		return nil, nil, err
	}
	c.Logger.Info("using redis cache", "prefix", cfg.Server.KeyPrefix)
	return store, cache.NewScopedKeyer(nil, cfg.Server.KeyPrefix), nil
}
