// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the people-engine pipeline.
package types

import (
	"encoding/json"
	"fmt"
)

// Profile is the canonical shape every provider's data is normalized into.
// Optional fields are empty strings when absent; the presentation layer
// decides display text for missing values.
type Profile struct {
	// Name is the person's full name. Always non-empty: records without a
	// name are dropped during normalization.
	Name string `json:"name" yaml:"name"`

	// Title is the current headline or job title.
	Title string `json:"title" yaml:"title"`

	// Company is the current employer, taken from the most recent
	// employment entry.
	Company string `json:"company" yaml:"company"`

	// Location is the person's location (city, region, or country).
	Location string `json:"location" yaml:"location"`

	// Experience is a human-readable total, e.g. "4 years 2 months".
	Experience string `json:"experience" yaml:"experience"`

	// Summary is free text and may embed simple line-break markup. It is
	// not sanitized here; that is the presentation layer's job.
	Summary string `json:"summary" yaml:"summary"`

	// Skills partitions the skill list into a visible prefix and a hidden
	// remainder, preserving source order.
	Skills Skills `json:"skills" yaml:"skills"`

	// Positions lists employment entries, most recent first, deduplicated
	// by (title, company, period).
	Positions []Position `json:"positions" yaml:"positions"`

	// Education entries are heterogeneous: plain strings or
	// school/degree pairs, depending on what the source provides.
	Education []Education `json:"education" yaml:"education"`

	// PhotoURL is a profile photo URL, when one was found.
	PhotoURL string `json:"photo_url" yaml:"photo_url"`

	// LinkedInURL is the professional-network profile URL. Absence is a
	// valid, common state and is what marks a profile as sparse.
	LinkedInURL string `json:"linkedin_url" yaml:"linkedin_url"`

	// Source identifies which provider path produced the profile,
	// e.g. "coresignal" or "coresignal+exa" after fallback enrichment.
	Source string `json:"source" yaml:"source"`
}

// Skills is a two-tier disclosure list: Visible holds the first K skills,
// Hidden holds the remainder. The two partitions never overlap.
type Skills struct {
	Visible []string `json:"visible" yaml:"visible"`
	Hidden  []string `json:"hidden" yaml:"hidden"`
}

// Position is a single employment entry. Every field is optional, but an
// entry with no title, company, and period carries no information and is
// dropped during normalization.
type Position struct {
	Title       string `json:"title" yaml:"title"`
	Company     string `json:"company" yaml:"company"`
	Period      string `json:"period" yaml:"period"`
	Location    string `json:"location,omitempty" yaml:"location,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Education is a tagged variant: either plain text or a structured
// school/degree pair. Source data does not normalize education records
// uniformly, so neither does the core.
type Education struct {
	// Text is set for the plain-text variant.
	Text string `yaml:"text,omitempty"`

	// School and Degree are set for the structured variant.
	School string `yaml:"school,omitempty"`
	Degree string `yaml:"degree,omitempty"`
}

// IsPlain reports whether e is the plain-text variant.
func (e Education) IsPlain() bool {
	return e.Text != ""
}

// MarshalJSON renders the plain variant as a JSON string and the
// structured variant as a {"school","degree"} object.
func (e Education) MarshalJSON() ([]byte, error) {
	if e.IsPlain() {
		return json.Marshal(e.Text)
	}
	return json.Marshal(struct {
		School string `json:"school"`
		Degree string `json:"degree"`
	}{School: e.School, Degree: e.Degree})
}

// UnmarshalJSON accepts both variants.
func (e *Education) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*e = Education{Text: s}
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

// SearchResult is the bounded, ordered output of one search.
type SearchResult struct {
	// Profiles preserves the order returned by the primary provider.
	Profiles []Profile `json:"results" yaml:"results"`

	// Count always equals len(Profiles). Zero is a valid, non-error
	// outcome distinct from a failed search.
	Count int `json:"count" yaml:"count"`
}
