// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package people

import "github.com/pdiddy/people-engine/pkg/types"

// DedupePositions removes employment entries that repeat an earlier
// (title, company, period) tuple. The comparison is case-sensitive and
// missing fields count as empty strings. First occurrence wins; input
// order is otherwise preserved. Pure and deterministic for a given input.
func DedupePositions(positions []types.Position) []types.Position {
	if len(positions) == 0 {
		return positions
	}

	seen := make(map[[3]string]struct{}, len(positions))
	deduped := make([]types.Position, 0, len(positions))
	for _, p := range positions {
		key := [3]string{p.Title, p.Company, p.Period}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, p)
	}
	return deduped
}
