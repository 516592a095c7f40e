// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package people implements the search-and-normalize pipeline: it takes a
// query, calls the primary employee-data provider, normalizes the raw
// records into canonical profiles, deduplicates employment entries, and
// optionally recovers missing LinkedIn URLs through the fallback
// discovery client before returning a bounded, ordered result set.
package people

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/pdiddy/people-engine/internal/provider"
	"github.com/pdiddy/people-engine/pkg/types"
)

const defaultFallbackConcurrency = 4

// ProviderClient is the primary employee-data lookup.
type ProviderClient interface {
	Lookup(ctx context.Context, name, company string, limit int, cfg types.SearchConfig) ([]provider.Record, error)
}

// FallbackClient recovers a professional-network URL for one person.
// Absence ("" with nil error) is a valid outcome.
type FallbackClient interface {
	FindProfileURL(ctx context.Context, name, company string, cfg types.SearchConfig) (string, error)
}

// Query holds the search parameters.
type Query struct {
	// Name is the person's full name. Required, non-empty after trimming.
	Name string `json:"name"`

	// Company optionally narrows the search to one employer.
	Company string `json:"company"`

	// Limit bounds the result count. Zero or negative uses the configured
	// default; values above the configured maximum are clamped.
	Limit int `json:"limit"`

	// UseFallback enables the per-profile discovery lookup for profiles
	// missing a LinkedIn URL.
	UseFallback bool `json:"use_fallback"`
}

// Searcher orchestrates one search request. It holds no per-request
// state; a single Searcher is safe for concurrent use.
type Searcher struct {
	Provider ProviderClient
	Fallback FallbackClient
	Config   types.SearchConfig
}

// Search runs the pipeline for one query. Progress warnings (dropped
// records, failed fallback lookups) go to w; they never fail the search.
//
// The provider's result order is preserved and never re-ranked. A sparse
// profile is one missing its LinkedIn URL; that is the only condition
// that triggers the fallback lookup.
func (s *Searcher) Search(ctx context.Context, q Query, w io.Writer) (types.SearchResult, error) {
	q.Name = strings.TrimSpace(q.Name)
	if q.Name == "" {
		return types.SearchResult{}, ErrInvalidQuery
	}
	limit := s.clampLimit(q.Limit)

	records, err := s.Provider.Lookup(ctx, q.Name, q.Company, limit, s.Config)
	if err != nil {
		return types.SearchResult{}, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	if len(records) > limit {
		records = records[:limit]
	}

	profiles := make([]types.Profile, 0, len(records))
	for _, rec := range records {
		p, err := Normalize(rec, s.Config)
		if err != nil {
			fmt.Fprintf(w, "warning: dropping record: %v\n", err)
			continue
		}
		profiles = append(profiles, p)
	}

	if q.UseFallback && s.Fallback != nil {
		s.enrichSparse(ctx, profiles, q.Company, w)
	}

	return types.SearchResult{Profiles: profiles, Count: len(profiles)}, nil
}

// enrichSparse runs the fallback lookup for every profile missing a
// LinkedIn URL. Lookups fan out with bounded concurrency and are joined
// before returning; failures leave the profile unchanged.
func (s *Searcher) enrichSparse(ctx context.Context, profiles []types.Profile, company string, w io.Writer) {
	workers := s.Config.FallbackConcurrency
	if workers <= 0 {
		workers = defaultFallbackConcurrency
	}

	var mu sync.Mutex // guards w
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for i := range profiles {
		if profiles[i].LinkedInURL != "" {
			continue
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(p *types.Profile) {
			defer wg.Done()
			defer func() { <-sem }()

			url, err := s.Fallback.FindProfileURL(ctx, p.Name, company, s.Config)
			if err != nil {
				mu.Lock()
				fmt.Fprintf(w, "warning: fallback lookup for %q failed: %v\n", p.Name, err)
				mu.Unlock()
				return
			}
			if url == "" {
				return
			}
			p.LinkedInURL = url
			p.Source = SourceEnriched
		}(&profiles[i])
	}
	wg.Wait()
}

// clampLimit applies the configured default and maximum to a query limit.
func (s *Searcher) clampLimit(limit int) int {
	def := s.Config.DefaultLimit
	if def <= 0 {
		def = 10
	}
	max := s.Config.MaxLimit
	if max <= 0 {
		max = 25
	}
	if limit <= 0 {
		limit = def
	}
	if limit > max {
		limit = max
	}
	return limit
}
