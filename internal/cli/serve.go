package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/blobsmith/internal/server"
	"github.com/matzehuels/blobsmith/pkg/cache"
	"github.com/matzehuels/blobsmith/pkg/observability"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
		hooks   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve blob generation and scene rendering over HTTP.

The cache backend comes from BLOBSMITH_CACHE: "file" (default), "none", or a
redis:// or mongodb:// URL shared between instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			store, err := c.newCache(ctx, noCache)
			if err != nil {
				return err
			}
			if hooks {
				observability.NewLogHooks(logger).Register()
			}

			srv := server.New(store, logger,
				server.WithBlobTTL(c.Config.CacheTTL),
				server.WithArtifactTTL(c.Config.CacheTTL),
			)
			defer srv.Close()

			printKeyValue("Address", addr)
			if noCache {
				printWarning("Caching disabled")
			} else {
				printKeyValue("Cache", cache.Describe(c.Config.Cache))
			}
			printNextStep("Try", "curl "+baseURL(addr)+"/v1/styles")
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", c.Config.Addr, "listen address (BLOBSMITH_ADDR)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&hooks, "trace", false, "log render, cache and request events")

	return cmd
}

// baseURL turns a listen address into a URL a local client can reach.
func baseURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}
