// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package people

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/people-engine/pkg/types"
)

// QueryFile is the on-disk representation of a search and its results.
// A search can be saved to a file and reloaded later without re-querying
// the provider APIs.
type QueryFile struct {
	Query   QueryParams     `yaml:"query"`
	Results []types.Profile `yaml:"results"`
	Summary QuerySummary    `yaml:"summary"`
}

// QueryParams stores the query parameters in a serializable form.
type QueryParams struct {
	Name        string `yaml:"name"`
	Company     string `yaml:"company,omitempty"`
	Limit       int    `yaml:"limit,omitempty"`
	UseFallback bool   `yaml:"use_fallback,omitempty"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	Total     int       `yaml:"total"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteQueryFile saves query parameters and results to a YAML file.
func WriteQueryFile(path string, q Query, res types.SearchResult) error {
	qf := QueryFile{
		Query: QueryParams{
			Name:        q.Name,
			Company:     q.Company,
			Limit:       q.Limit,
			UseFallback: q.UseFallback,
		},
		Results: res.Profiles,
		Summary: QuerySummary{
			Total:     res.Count,
			Timestamp: time.Now(),
		},
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}

// ToQuery converts stored QueryParams back into a Query.
func (p QueryParams) ToQuery() Query {
	return Query{
		Name:        p.Name,
		Company:     p.Company,
		Limit:       p.Limit,
		UseFallback: p.UseFallback,
	}
}
