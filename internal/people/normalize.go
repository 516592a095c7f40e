// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package people

import (
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/people-engine/internal/provider"
	"github.com/pdiddy/people-engine/pkg/types"
)

// Source tags for Profile.Source.
const (
	SourcePrimary  = "coresignal"
	SourceEnriched = "coresignal+exa"
)

const defaultSkillsVisible = 5

// timeNow is swapped by tests that exercise experience computation.
var timeNow = time.Now

// Normalize converts a raw provider record into the canonical profile
// shape. Missing fields stay empty; nothing is filled with placeholder
// text. A record without a name returns ErrMalformedRecord.
func Normalize(rec provider.Record, cfg types.SearchConfig) (types.Profile, error) {
	name := strings.TrimSpace(rec.FullName)
	if name == "" {
		return types.Profile{}, ErrMalformedRecord
	}

	p := types.Profile{
		Name:     name,
		Title:    strings.TrimSpace(rec.Headline),
		Location: firstNonEmpty(rec.Location, rec.City, rec.Country),
		Summary:  strings.TrimSpace(firstNonEmpty(rec.Summary, rec.About)),
		Source:   SourcePrimary,
	}

	var skills []string
	for _, s := range rec.Skills {
		if s.Name != "" {
			skills = append(skills, s.Name)
		}
	}
	p.Skills = SplitSkills(skills, cfg.SkillsVisible)

	p.Education = normalizeEducation(rec.Education)

	p.Company = currentCompany(rec.Experience)
	if months := experienceMonths(rec.Experience, timeNow()); months > 0 {
		p.Experience = FormatExperience(months)
	}
	p.Positions = DedupePositions(buildPositions(rec.Experience))

	p.LinkedInURL = ensureScheme(firstNonEmpty(rec.ProfileURL, rec.LinkedinURL, rec.URL))
	p.PhotoURL = ensureScheme(firstNonEmpty(rec.ProfileImageURL, rec.PictureURL, rec.PhotoURL))

	return p, nil
}

// SplitSkills partitions a skill list at the visible cutoff, preserving
// source order. The two partitions never overlap and concatenate back to
// the original list.
func SplitSkills(skills []string, visible int) types.Skills {
	if visible <= 0 {
		visible = defaultSkillsVisible
	}
	if len(skills) <= visible {
		return types.Skills{Visible: skills}
	}
	return types.Skills{
		Visible: skills[:visible],
		Hidden:  skills[visible:],
	}
}

// normalizeEducation keeps each entry in whichever shape the source
// provided: plain text passes through, school/degree pairs stay
// structured, and entries with neither are dropped.
func normalizeEducation(entries []provider.Education) []types.Education {
	var out []types.Education
	for _, e := range entries {
		switch {
		case strings.TrimSpace(e.Raw) != "":
			out = append(out, types.Education{Text: strings.TrimSpace(e.Raw)})
		case e.School != "" || e.Degree != "":
			out = append(out, types.Education{School: e.School, Degree: e.Degree})
		}
	}
	return out
}

// currentCompany returns the employer of the most recent experience
// entry. The provider lists experience most recent first.
func currentCompany(entries []provider.Experience) string {
	if len(entries) == 0 {
		return ""
	}
	return firstNonEmpty(entries[0].CompanyName, entries[0].Company)
}

// experienceMonths computes the total employment duration in months on a
// month-precision timeline. Counting distinct (year, month) pairs avoids
// double-counting overlapping roles.
func experienceMonths(entries []provider.Experience, now time.Time) int {
	months := make(map[[2]int]struct{})
	for _, e := range entries {
		start := parseDate(e.DateFrom)
		if start.IsZero() {
			continue
		}
		end := parseDate(e.DateTo)
		if isCurrent(e) || end.IsZero() {
			end = now
		}
		if end.Before(start) {
			continue
		}

		cur := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
		last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)
		for !cur.After(last) {
			months[[2]int{cur.Year(), int(cur.Month())}] = struct{}{}
			cur = cur.AddDate(0, 1, 0)
		}
	}
	return len(months)
}

// buildPositions converts experience entries into display positions,
// most recent start date first. Entries with no title, company, and
// period carry no information and are dropped.
func buildPositions(entries []provider.Experience) []types.Position {
	type dated struct {
		pos   types.Position
		start time.Time
	}

	var positions []dated
	for _, e := range entries {
		pos := types.Position{
			Title:       firstNonEmpty(e.Title, e.Position),
			Company:     firstNonEmpty(e.CompanyName, e.Company),
			Period:      formatDateRange(e.DateFrom, e.DateTo, isCurrent(e)),
			Location:    e.Location,
			Description: e.Description,
		}
		if pos.Title == "" && pos.Company == "" && pos.Period == "" {
			continue
		}
		positions = append(positions, dated{pos: pos, start: parseDate(e.DateFrom)})
	}

	sort.SliceStable(positions, func(i, j int) bool {
		return positions[i].start.After(positions[j].start)
	})

	out := make([]types.Position, len(positions))
	for i, d := range positions {
		out[i] = d.pos
	}
	return out
}

// isCurrent reports whether an experience entry is an ongoing role.
func isCurrent(e provider.Experience) bool {
	if e.Current {
		return true
	}
	to := strings.TrimSpace(e.DateTo)
	return to == "" || strings.EqualFold(to, "present")
}

// formatDateRange returns a human-friendly range like "Jan 2020 - Present".
func formatDateRange(from, to string, current bool) string {
	start := parseDate(from)
	var startStr string
	if !start.IsZero() {
		startStr = start.Format("Jan 2006")
	}

	endStr := "Present"
	if !current {
		if end := parseDate(to); !end.IsZero() {
			endStr = end.Format("Jan 2006")
		} else {
			endStr = ""
		}
	}

	switch {
	case startStr != "" && endStr != "":
		return startStr + " - " + endStr
	case startStr != "":
		return startStr
	default:
		return endStr
	}
}

// parseDate parses the date formats the provider has been observed to
// use. Returns the zero time when the value is absent or unparseable.
func parseDate(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "present") {
		return time.Time{}
	}
	value = strings.TrimSuffix(value, "Z")

	for _, layout := range []string{"2006-01-02", "2006-01", "2006", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ensureScheme prefixes https:// when a URL is missing its scheme.
func ensureScheme(url string) string {
	if url == "" || strings.HasPrefix(url, "http") {
		return url
	}
	return "https://" + strings.TrimLeft(url, "/")
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
