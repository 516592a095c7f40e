// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package people

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pdiddy/people-engine/internal/provider"
	"github.com/pdiddy/people-engine/pkg/types"
)

// --- mocks ---

type mockProvider struct {
	records   []provider.Record
	err       error
	calls     atomic.Int32
	lastLimit int
}

func (m *mockProvider) Lookup(_ context.Context, _, _ string, limit int, _ types.SearchConfig) ([]provider.Record, error) {
	m.calls.Add(1)
	m.lastLimit = limit
	return m.records, m.err
}

type mockFallback struct {
	urls  map[string]string // name → url
	err   error
	calls atomic.Int32
}

func (m *mockFallback) FindProfileURL(_ context.Context, name, _ string, _ types.SearchConfig) (string, error) {
	m.calls.Add(1)
	if m.err != nil {
		return "", m.err
	}
	return m.urls[name], nil
}

func testCfg() types.SearchConfig {
	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "test/0.1",
		},
		DefaultLimit:        10,
		MaxLimit:            25,
		SkillsVisible:       5,
		FallbackConcurrency: 2,
	}
}

func record(name string) provider.Record {
	return provider.Record{FullName: name}
}

func recordWithURL(name, url string) provider.Record {
	r := record(name)
	r.ProfileURL = url
	return r
}

// --- validation ---

func TestSearchEmptyName(t *testing.T) {
	prov := &mockProvider{}
	s := &Searcher{Provider: prov, Config: testCfg()}

	var buf bytes.Buffer
	_, err := s.Search(context.Background(), Query{Name: "   "}, &buf)
	if !errors.Is(err, ErrInvalidQuery) {
		t.Errorf("err = %v, want ErrInvalidQuery", err)
	}
	if prov.calls.Load() != 0 {
		t.Error("provider should not be called for an invalid query")
	}
}

func TestClampLimit(t *testing.T) {
	s := &Searcher{Config: testCfg()}
	tests := []struct {
		in   int
		want int
	}{
		{0, 10},
		{-3, 10},
		{5, 5},
		{25, 25},
		{100, 25},
	}
	for _, tt := range tests {
		if got := s.clampLimit(tt.in); got != tt.want {
			t.Errorf("clampLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

// --- provider failures ---

func TestSearchProviderFailure(t *testing.T) {
	prov := &mockProvider{err: fmt.Errorf("connection refused")}
	s := &Searcher{Provider: prov, Config: testCfg()}

	var buf bytes.Buffer
	_, err := s.Search(context.Background(), Query{Name: "Jane Doe"}, &buf)
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Errorf("err = %v, want ErrProviderUnavailable", err)
	}
}

func TestSearchEmptyResultIsNotAnError(t *testing.T) {
	s := &Searcher{Provider: &mockProvider{}, Config: testCfg()}

	var buf bytes.Buffer
	res, err := s.Search(context.Background(), Query{Name: "Nobody Here"}, &buf)
	if err != nil {
		t.Fatalf("no results must stay distinct from a failed search: %v", err)
	}
	if res.Count != 0 || len(res.Profiles) != 0 {
		t.Errorf("res = %+v, want empty success", res)
	}
}

// --- per-record isolation ---

func TestSearchDropsNamelessRecords(t *testing.T) {
	prov := &mockProvider{records: []provider.Record{
		record("Jane Doe"),
		record(""), // malformed, dropped
		record("John Roe"),
	}}
	s := &Searcher{Provider: prov, Config: testCfg()}

	var buf bytes.Buffer
	res, err := s.Search(context.Background(), Query{Name: "Doe"}, &buf)
	if err != nil {
		t.Fatalf("one bad record must not fail the search: %v", err)
	}
	if res.Count != 2 || len(res.Profiles) != 2 {
		t.Errorf("Count = %d, len = %d, want 2/2", res.Count, len(res.Profiles))
	}
	if !strings.Contains(buf.String(), "warning:") {
		t.Error("dropped record should produce a warning")
	}
}

// --- ordering and truncation ---

func TestSearchPreservesProviderOrder(t *testing.T) {
	prov := &mockProvider{records: []provider.Record{
		record("Third Person"), record("First Person"), record("Second Person"),
	}}
	s := &Searcher{Provider: prov, Config: testCfg()}

	var buf bytes.Buffer
	res, err := s.Search(context.Background(), Query{Name: "Person"}, &buf)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	want := []string{"Third Person", "First Person", "Second Person"}
	for i, p := range res.Profiles {
		if p.Name != want[i] {
			t.Errorf("Profiles[%d].Name = %q, want %q (no re-ranking)", i, p.Name, want[i])
		}
	}
}

func TestSearchTruncatesOverReturningProvider(t *testing.T) {
	var records []provider.Record
	for i := 0; i < 8; i++ {
		records = append(records, record(fmt.Sprintf("Person %d", i)))
	}
	prov := &mockProvider{records: records}
	s := &Searcher{Provider: prov, Config: testCfg()}

	var buf bytes.Buffer
	res, err := s.Search(context.Background(), Query{Name: "Person", Limit: 3}, &buf)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if prov.lastLimit != 3 {
		t.Errorf("provider called with limit %d, want 3", prov.lastLimit)
	}
	if res.Count != 3 {
		t.Errorf("Count = %d, want 3 after truncation", res.Count)
	}
}

// --- fallback policy ---

func TestSearchNoFallbackWhenDisabled(t *testing.T) {
	fb := &mockFallback{urls: map[string]string{"Jane Doe": "https://www.linkedin.com/in/janedoe"}}
	prov := &mockProvider{records: []provider.Record{record("Jane Doe")}}
	s := &Searcher{Provider: prov, Fallback: fb, Config: testCfg()}

	var buf bytes.Buffer
	res, err := s.Search(context.Background(), Query{Name: "Jane Doe", UseFallback: false}, &buf)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if fb.calls.Load() != 0 {
		t.Errorf("fallback calls = %d, want 0 when disabled", fb.calls.Load())
	}
	if res.Profiles[0].LinkedInURL != "" {
		t.Error("profile should stay sparse when fallback is disabled")
	}
}

func TestSearchFallbackEnrichesSparseProfile(t *testing.T) {
	fb := &mockFallback{urls: map[string]string{"Jane Doe": "https://www.linkedin.com/in/janedoe"}}
	prov := &mockProvider{records: []provider.Record{
		record("Jane Doe"), // sparse
		recordWithURL("John Roe", "https://www.linkedin.com/in/johnroe"),
	}}
	s := &Searcher{Provider: prov, Fallback: fb, Config: testCfg()}

	var buf bytes.Buffer
	res, err := s.Search(context.Background(), Query{Name: "Doe", UseFallback: true}, &buf)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if fb.calls.Load() != 1 {
		t.Errorf("fallback calls = %d, want 1 (only the sparse profile)", fb.calls.Load())
	}

	jane := res.Profiles[0]
	if jane.LinkedInURL != "https://www.linkedin.com/in/janedoe" {
		t.Errorf("LinkedInURL = %q, want enriched URL", jane.LinkedInURL)
	}
	if jane.Source != SourceEnriched {
		t.Errorf("Source = %q, want %q after enrichment", jane.Source, SourceEnriched)
	}

	john := res.Profiles[1]
	if john.Source != SourcePrimary {
		t.Errorf("non-sparse profile Source = %q, want %q", john.Source, SourcePrimary)
	}
}

func TestSearchFallbackFindsNothing(t *testing.T) {
	fb := &mockFallback{urls: map[string]string{}}
	prov := &mockProvider{records: []provider.Record{record("Jane Doe")}}
	s := &Searcher{Provider: prov, Fallback: fb, Config: testCfg()}

	var buf bytes.Buffer
	res, err := s.Search(context.Background(), Query{Name: "Jane Doe", UseFallback: true}, &buf)
	if err != nil {
		t.Fatalf("fallback absence must not fail the search: %v", err)
	}
	p := res.Profiles[0]
	if p.LinkedInURL != "" || p.Source != SourcePrimary {
		t.Errorf("profile = %+v, want unchanged", p)
	}
}

func TestSearchFallbackErrorIsRecovered(t *testing.T) {
	fb := &mockFallback{err: fmt.Errorf("timeout")}
	prov := &mockProvider{records: []provider.Record{record("Jane Doe")}}
	s := &Searcher{Provider: prov, Fallback: fb, Config: testCfg()}

	var buf bytes.Buffer
	res, err := s.Search(context.Background(), Query{Name: "Jane Doe", UseFallback: true}, &buf)
	if err != nil {
		t.Fatalf("fallback failure must not fail the search: %v", err)
	}
	if res.Profiles[0].LinkedInURL != "" {
		t.Error("profile should be returned without enrichment")
	}
	if !strings.Contains(buf.String(), "fallback lookup") {
		t.Error("failed fallback should produce a warning")
	}
}

func TestSearchFallbackFanOutJoins(t *testing.T) {
	// Many sparse profiles with a small concurrency bound; all lookups
	// must have completed when Search returns.
	urls := map[string]string{}
	var records []provider.Record
	for i := 0; i < 10; i++ {
		name := fmt.Sprintf("Person %d", i)
		records = append(records, record(name))
		urls[name] = fmt.Sprintf("https://www.linkedin.com/in/person%d", i)
	}
	fb := &mockFallback{urls: urls}
	prov := &mockProvider{records: records}
	s := &Searcher{Provider: prov, Fallback: fb, Config: testCfg()}

	var buf bytes.Buffer
	res, err := s.Search(context.Background(), Query{Name: "Person", Limit: 10, UseFallback: true}, &buf)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if fb.calls.Load() != 10 {
		t.Errorf("fallback calls = %d, want 10", fb.calls.Load())
	}
	for i, p := range res.Profiles {
		if p.LinkedInURL == "" {
			t.Errorf("Profiles[%d] not enriched; results must be joined before returning", i)
		}
	}
}

// --- end-to-end scenario ---

func TestSearchScenarioDeduplicatedPositions(t *testing.T) {
	dup := provider.Experience{
		Title: "Engineer", CompanyName: "Acme",
		DateFrom: "2020-01-01", DateTo: "2022-01-01",
	}
	withDup := record("Jane Doe")
	withDup.Experience = []provider.Experience{dup, dup,
		{Title: "Intern", CompanyName: "Initech", DateFrom: "2019-01-01", DateTo: "2019-06-01"},
	}
	prov := &mockProvider{records: []provider.Record{
		withDup, record("John Roe"), record("Janet Doe"),
	}}
	s := &Searcher{Provider: prov, Config: testCfg()}

	var buf bytes.Buffer
	res, err := s.Search(context.Background(), Query{Name: "Jane Doe", Company: "Acme", Limit: 5}, &buf)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Count != 3 {
		t.Fatalf("Count = %d, want 3", res.Count)
	}
	if got := len(res.Profiles[0].Positions); got != 2 {
		t.Errorf("len(Positions) = %d, want 2 after deduplication", got)
	}
}
