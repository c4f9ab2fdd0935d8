package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ThomasStivers/labeller/internal/server"
	"github.com/ThomasStivers/labeller/pkg/cache"
	"github.com/ThomasStivers/labeller/pkg/observability"
	"github.com/ThomasStivers/labeller/pkg/pipeline"
)

// serveCommand creates the HTTP server command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr, redisURL string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve labels, barcode sheets and images over HTTP",
		Long: `Serve the label pipeline over HTTP until interrupted.

Barcode images are kept in Redis when --redis-url (or cache.redis_url) is
set, so several servers can share them; otherwise they are written to the
barcode directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Serve.Addr
			}
			if !cmd.Flags().Changed("redis-url") {
				redisURL = c.Config.Cache.RedisURL
			}

			var store cache.Cache
			if redisURL != "" {
				rc, err := cache.NewRedisCache(ctx, redisURL, c.Config.Cache.Prefix)
				if err != nil {
					return fmt.Errorf("connect to redis: %w", err)
				}
				store = rc
				printInfo("Caching barcodes in Redis")
			} else {
				dir, err := c.cacheDir()
				if err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
				fc, err := cache.NewFileCache(dir)
				if err != nil {
					return err
				}
				store = fc
				printInfo("Caching barcodes in %s", dir)
			}

			observability.NewLogHooks(c.Logger).Install()
			defer observability.Reset()

			runner := pipeline.NewRunner(c.Rules, store, c.Logger)
			defer runner.Close()

			printSuccess("Serving on %s", StyleLink.Render("http://"+addr))
			return server.New(runner, c.Logger).Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default \"127.0.0.1:8080\")")
	cmd.Flags().StringVar(&redisURL, "redis-url", "", "Redis URL for the shared barcode cache")

	return cmd
}
