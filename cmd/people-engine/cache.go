// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/people-engine/internal/cache"
	"github.com/pdiddy/people-engine/pkg/types"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage the response cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache entry counts",
	RunE:  runCacheStats,
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	store, err := openCache(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Stats(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("entries: %d\nexpired: %d\n", stats.Entries, stats.Expired)
	return nil
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Remove all cached responses",
	RunE:  runCachePurge,
}

func runCachePurge(cmd *cobra.Command, args []string) error {
	store, err := openCache(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Purge(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("purged %d entries\n", n)
	return nil
}

func openCache(cmd *cobra.Command) (*cache.Store, error) {
	path, _ := cmd.Flags().GetString("cache")
	if path == "" {
		path = viper.GetString("cache.path")
	}
	if path == "" {
		return nil, fmt.Errorf("cache path required: pass --cache or set cache.path")
	}
	return cache.NewStore(types.CacheConfig{
		Path: path,
		TTL:  viper.GetDuration("cache.ttl"),
	})
}

func init() {
	cacheCmd.PersistentFlags().String("cache", "", "SQLite file for the response cache")

	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cachePurgeCmd)

	rootCmd.AddCommand(cacheCmd)
}
