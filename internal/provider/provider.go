// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package provider implements the primary employee-data API client.
// The lookup is two-step: a filter search returns employee IDs, then each
// ID is collected into a full record. The record shape is provider-specific
// and is inspected only by the normalizer in internal/people.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/pdiddy/people-engine/internal/httputil"
	"github.com/pdiddy/people-engine/pkg/types"
)

// API endpoints. Declared as vars so tests can substitute an httptest server.
var (
	searchBase  = "https://api.coresignal.com/cdapi/v2/employee_base/search/filter"
	collectBase = "https://api.coresignal.com/cdapi/v2/employee_base/collect/"
)

// ErrUnauthorized reports that the provider rejected the API key. It is
// distinct from an empty result set.
var ErrUnauthorized = errors.New("provider rejected API credentials")

// Client queries the primary employee-data API.
type Client struct {
	Client *http.Client
	APIKey string
}

// Record is the raw provider payload for one employee. Field coverage is
// intentionally loose: the upstream schema is not stable, and alternative
// field names for the same datum are common.
type Record struct {
	FullName        string       `json:"full_name"`
	Headline        string       `json:"headline"`
	Location        string       `json:"location"`
	City            string       `json:"city"`
	Country         string       `json:"country"`
	Summary         string       `json:"summary"`
	About           string       `json:"about"`
	ProfileURL      string       `json:"profile_url"`
	LinkedinURL     string       `json:"linkedin_url"`
	URL             string       `json:"url"`
	ProfileImageURL string       `json:"profile_image_url"`
	PictureURL      string       `json:"picture_url"`
	PhotoURL        string       `json:"photo_url"`
	Experience      []Experience `json:"experience"`
	Skills          []Skill      `json:"skills"`
	Education       []Education  `json:"education"`
}

// Experience is one employment entry in a Record.
type Experience struct {
	Title       string `json:"title"`
	Position    string `json:"position"`
	CompanyName string `json:"company_name"`
	Company     string `json:"company"`
	DateFrom    string `json:"date_from"`
	DateTo      string `json:"date_to"`
	Current     bool   `json:"current"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// Skill accepts both the bare-string and {"name": ...} encodings the
// provider has been observed to return.
type Skill struct {
	Name string
}

// UnmarshalJSON decodes either encoding.
func (s *Skill) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		s.Name = plain
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("skill entry is neither a string nor an object: %w", err)
	}
	s.Name = obj.Name
	return nil
}

// Education accepts both the bare-string and structured encodings.
type Education struct {
	Raw    string
	School string `json:"school"`
	Degree string `json:"degree"`
}

// UnmarshalJSON decodes either encoding.
func (e *Education) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		*e = Education{Raw: plain}
		return nil
	}
	var obj struct {
		School string `json:"school"`
		Degree string `json:"degree"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("education entry is neither a string nor an object: %w", err)
	}
	*e = Education{School: obj.School, Degree: obj.Degree}
	return nil
}

// Lookup searches for up to limit employee records matching name and an
// optional company filter. The search tries a full-name payload first and
// falls back to a title payload when it finds nothing. Collect failures
// for individual IDs are skipped; a failed search surfaces as an error.
func (c *Client) Lookup(ctx context.Context, name, company string, limit int, cfg types.SearchConfig) ([]Record, error) {
	payloads := searchPayloads(name, company)

	var ids []int64
	var lastErr error
	for _, payload := range payloads {
		found, err := c.searchIDs(ctx, payload, cfg)
		if err != nil {
			if errors.Is(err, ErrUnauthorized) {
				return nil, err
			}
			lastErr = err
			continue
		}
		if len(found) > 0 {
			ids = found
			break
		}
	}

	if len(ids) == 0 {
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, nil
	}

	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}

	var records []Record
	for _, id := range ids {
		rec, err := c.collect(ctx, id, cfg)
		if err != nil {
			if errors.Is(err, ErrUnauthorized) || ctx.Err() != nil {
				return nil, err
			}
			// Skip individually failed collects.
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// searchPayloads builds a prioritized list of filter payloads. Exact full
// name first, then a title-based fallback for people indexed by headline.
func searchPayloads(name, company string) []map[string]string {
	byName := map[string]string{"full_name": name}
	byTitle := map[string]string{"title": name}
	if company != "" {
		byName["company_name"] = company
		byTitle["company_name"] = company
	}
	return []map[string]string{byName, byTitle}
}

// searchIDs executes the filter search and returns matching employee IDs.
// The provider rejects unknown filter fields with HTTP 422; when that
// happens and a company filter was present, the search is retried once
// without it so the caller still gets results.
func (c *Client) searchIDs(ctx context.Context, payload map[string]string, cfg types.SearchConfig) ([]int64, error) {
	ids, status, err := c.postSearch(ctx, payload, cfg)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnprocessableEntity {
		if _, ok := payload["company_name"]; ok {
			stripped := map[string]string{}
			for k, v := range payload {
				if k != "company_name" {
					stripped[k] = v
				}
			}
			ids, status, err = c.postSearch(ctx, stripped, cfg)
			if err != nil {
				return nil, err
			}
		}
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("provider search returned HTTP %d", status)
	}
	return ids, nil
}

func (c *Client) postSearch(ctx context.Context, payload map[string]string, cfg types.SearchConfig) ([]int64, int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("encoding search payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, searchBase, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("apikey", c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.Client, req, 0)
	if err != nil {
		return nil, 0, fmt.Errorf("provider search request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, resp.StatusCode, ErrUnauthorized
	case http.StatusOK:
		var ids []int64
		if err := json.NewDecoder(resp.Body).Decode(&ids); err != nil {
			return nil, resp.StatusCode, fmt.Errorf("parsing provider search response: %w", err)
		}
		return ids, resp.StatusCode, nil
	default:
		return nil, resp.StatusCode, nil
	}
}

// collect fetches the full record for one employee ID.
func (c *Client) collect(ctx context.Context, id int64, cfg types.SearchConfig) (Record, error) {
	reqURL := fmt.Sprintf("%s%d", collectBase, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Record{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("apikey", c.APIKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.Client, req, 0)
	if err != nil {
		return Record{}, fmt.Errorf("provider collect request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return Record{}, ErrUnauthorized
	case http.StatusOK:
	default:
		return Record{}, fmt.Errorf("provider collect returned HTTP %d", resp.StatusCode)
	}

	var rec Record
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return Record{}, fmt.Errorf("parsing provider collect response: %w", err)
	}
	return rec, nil
}
