// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the people-engine CLI.
package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/people-engine/internal/secrets"
	"github.com/pdiddy/people-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the people-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "people-engine",
	Short: "Search for professionals by name and company",
	Long: `people-engine looks people up in an employee-data API, normalizes the
heterogeneous records into canonical profiles, and optionally recovers
missing LinkedIn URLs through a web-search fallback.

Run searches from the command line with the search subcommand, or serve
the same pipeline as a JSON API with serve.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./people-engine.yaml or ~/.config/people-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("people-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "people-engine"))
		}
	}

	viper.SetEnvPrefix("PEOPLE_ENGINE")
	viper.AutomaticEnv()

	viper.SetDefault("search.timeout", 30*time.Second)
	viper.SetDefault("search.default_limit", 10)
	viper.SetDefault("search.max_limit", 25)
	viper.SetDefault("search.skills_visible", 5)
	viper.SetDefault("search.fallback_concurrency", 4)
	viper.SetDefault("server.bind", "127.0.0.1")
	viper.SetDefault("server.port", 8000)
	viper.SetDefault("cache.ttl", 15*time.Minute)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// searchConfig assembles the search pipeline configuration from config
// file, environment, and loaded secrets.
func searchConfig() types.SearchConfig {
	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("search.timeout"),
			UserAgent: "people-engine/" + version,
		},
		DefaultLimit:        viper.GetInt("search.default_limit"),
		MaxLimit:            viper.GetInt("search.max_limit"),
		SkillsVisible:       viper.GetInt("search.skills_visible"),
		FallbackConcurrency: viper.GetInt("search.fallback_concurrency"),
		ProviderAPIKey:      secretDefault("coresignal-api-key", viper.GetString("search.provider_api_key")),
		DiscoveryAPIKey:     secretDefault("exa-api-key", viper.GetString("search.discovery_api_key")),
	}
}

// httpClient builds the shared HTTP client for provider calls.
func httpClient(cfg types.SearchConfig) *http.Client {
	return &http.Client{Timeout: cfg.Timeout}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
