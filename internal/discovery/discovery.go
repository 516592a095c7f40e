// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package discovery implements the fallback web-search lookup used to
// recover a missing professional-network URL. It is best-effort by
// contract: absence of a result is not an error, and callers treat every
// failure as "not found".
package discovery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/people-engine/internal/httputil"
	"github.com/pdiddy/people-engine/pkg/types"
)

// searchBase is the web-search endpoint. Declared as a var so tests can
// substitute an httptest server.
var searchBase = "https://api.exa.ai/search"

// numResults bounds how many candidates one lookup requests.
const numResults = 5

// Client queries the web-search API for public profile pages.
type Client struct {
	Client *http.Client
	APIKey string
}

// FindProfileURL searches for a plausible LinkedIn profile URL for the
// given person. It returns "" when nothing suitable was found; only
// transport and decode problems are reported as errors.
func (c *Client) FindProfileURL(ctx context.Context, name, company string, cfg types.SearchConfig) (string, error) {
	payload := searchPayload(name, company)
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding discovery payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, searchBase, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.Client, req, 0)
	if err != nil {
		return "", fmt.Errorf("discovery request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("discovery API returned HTTP %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return "", fmt.Errorf("parsing discovery response: %w", err)
	}

	for _, res := range sr.Results {
		url := strings.TrimSpace(res.URL)
		if isProfileURL(url) {
			return url, nil
		}
	}
	return "", nil
}

// searchPayload builds a query targeted at LinkedIn profile pages.
func searchPayload(name, company string) map[string]any {
	parts := []string{name}
	if company != "" {
		parts = append(parts, company)
	}
	parts = append(parts, "LinkedIn profile", "site:linkedin.com/in")

	return map[string]any{
		"query":           strings.Join(parts, " "),
		"use_autoprompt":  true,
		"num_results":     numResults,
		"include_domains": []string{"linkedin.com"},
	}
}

// isProfileURL reports whether url points at a LinkedIn profile page
// rather than a company or content page.
func isProfileURL(url string) bool {
	return url != "" && strings.Contains(url, "linkedin.com/in/")
}

// Web-search API JSON structures.
type searchResponse struct {
	Results []searchResultItem `json:"results"`
}

type searchResultItem struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}
