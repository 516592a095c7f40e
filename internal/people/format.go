// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package people

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/people-engine/pkg/types"
)

// FormatExperience converts a month count to a human-readable total like
// "2 years 3 months" or "6 months".
func FormatExperience(months int) string {
	if months < 12 {
		return fmt.Sprintf("%d %s", months, plural("month", months))
	}

	years := months / 12
	rem := months % 12
	if rem == 0 {
		return fmt.Sprintf("%d %s", years, plural("year", years))
	}
	return fmt.Sprintf("%d %s %d %s", years, plural("year", years), rem, plural("month", rem))
}

func plural(unit string, n int) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}

// FormatTable writes results as a human-readable table to w.
func FormatTable(res types.SearchResult, w io.Writer) {
	if len(res.Profiles) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-24s  %-30s  %-20s  %-20s  %s\n",
		"Rank", "Name", "Title", "Company", "Location", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, p := range res.Profiles {
		fmt.Fprintf(w, "%-4d  %-24s  %-30s  %-20s  %-20s  %s\n",
			i+1, truncate(p.Name, 24), truncate(p.Title, 30),
			truncate(p.Company, 20), truncate(p.Location, 20), p.Source)
		if p.LinkedInURL != "" {
			fmt.Fprintf(w, "      %s\n", p.LinkedInURL)
		}
	}

	fmt.Fprintf(w, "\n%d results\n", res.Count)
}

// FormatJSON writes results as indented JSON to w.
func FormatJSON(res types.SearchResult, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
