// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/people-engine/internal/cache"
	"github.com/pdiddy/people-engine/internal/server"
	"github.com/pdiddy/people-engine/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search pipeline as a JSON API",
	Long: `Serve runs an HTTP server exposing the search pipeline. POST a query to
/api/search to get matching profiles; GET /api/health reports which
provider credentials are configured.

With --cache, responses are stored in a SQLite database and repeated
queries are answered without calling the provider APIs.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := searchConfig()
	if cfg.ProviderAPIKey == "" {
		return fmt.Errorf("provider API key required: add coresignal-api-key to .secrets/ or set search.provider_api_key")
	}

	bind, _ := cmd.Flags().GetString("bind")
	if bind == "" {
		bind = viper.GetString("server.bind")
	}
	port, _ := cmd.Flags().GetInt("port")
	if port == 0 {
		port = viper.GetInt("server.port")
	}

	var store *cache.Store
	if cachePath := cacheFlagOrConfig(cmd); cachePath != "" {
		var err error
		store, err = cache.NewStore(types.CacheConfig{
			Path: cachePath,
			TTL:  viper.GetDuration("cache.ttl"),
		})
		if err != nil {
			return err
		}
		defer store.Close()
	}

	srv := server.NewServer(
		newSearcher(cfg), store, cfg,
		types.ServerConfig{Bind: bind, Port: port}, version,
	)
	return server.Run(srv)
}

func cacheFlagOrConfig(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("cache"); path != "" {
		return path
	}
	return viper.GetString("cache.path")
}

func init() {
	serveCmd.Flags().String("bind", "", "listen address (default 127.0.0.1)")
	serveCmd.Flags().Int("port", 0, "listen port (default 8000)")
	serveCmd.Flags().String("cache", "", "SQLite file for the response cache (empty disables caching)")

	rootCmd.AddCommand(serveCmd)
}
