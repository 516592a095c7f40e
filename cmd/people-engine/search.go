// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/people-engine/internal/discovery"
	"github.com/pdiddy/people-engine/internal/people"
	"github.com/pdiddy/people-engine/internal/provider"
	"github.com/pdiddy/people-engine/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search for people by name and optional company",
	Long: `Search queries the employee-data API for people matching a name, with an
optional company filter. Records are normalized into canonical profiles
with deduplicated position histories. With --fallback, profiles missing a
LinkedIn URL get a web-search lookup to recover one.

Results can be saved to a YAML query file with --save and redisplayed
later with --load without re-querying the APIs.`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	// Load mode: redisplay a saved query file.
	if loadPath, _ := cmd.Flags().GetString("load"); loadPath != "" {
		qf, err := people.ReadQueryFile(loadPath)
		if err != nil {
			return err
		}
		res := types.SearchResult{Profiles: qf.Results, Count: qf.Summary.Total}
		return formatSearchOutput(res, jsonOutput)
	}

	name, _ := cmd.Flags().GetString("name")
	if name == "" && len(args) > 0 {
		name = args[0]
	}
	company, _ := cmd.Flags().GetString("company")
	limit, _ := cmd.Flags().GetInt("limit")
	useFallback, _ := cmd.Flags().GetBool("fallback")

	cfg := searchConfig()
	if cfg.ProviderAPIKey == "" {
		return fmt.Errorf("provider API key required: add coresignal-api-key to .secrets/ or set search.provider_api_key")
	}

	q := people.Query{
		Name:        name,
		Company:     company,
		Limit:       limit,
		UseFallback: useFallback,
	}
	searcher := newSearcher(cfg)

	res, err := searcher.Search(context.Background(), q, os.Stderr)
	if err != nil {
		return err
	}

	if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
		if err := people.WriteQueryFile(savePath, q, res); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved query to %s\n", savePath)
	}

	return formatSearchOutput(res, jsonOutput)
}

// newSearcher wires the provider and discovery clients into a search
// orchestrator.
func newSearcher(cfg types.SearchConfig) *people.Searcher {
	hc := httpClient(cfg)
	s := &people.Searcher{
		Provider: &provider.Client{Client: hc, APIKey: cfg.ProviderAPIKey},
		Config:   cfg,
	}
	if cfg.DiscoveryAPIKey != "" {
		s.Fallback = &discovery.Client{Client: hc, APIKey: cfg.DiscoveryAPIKey}
	}
	return s
}

func formatSearchOutput(res types.SearchResult, jsonOutput bool) error {
	if jsonOutput {
		return people.FormatJSON(res, os.Stdout)
	}
	people.FormatTable(res, os.Stdout)
	return nil
}

func init() {
	searchCmd.Flags().String("name", "", "full name to search for")
	searchCmd.Flags().String("company", "", "filter by current company")
	searchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	searchCmd.Flags().Bool("fallback", false, "recover missing LinkedIn URLs via web search")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().String("save", "", "save query and results to a YAML file")
	searchCmd.Flags().String("load", "", "display a previously saved query file")

	rootCmd.AddCommand(searchCmd)
}
