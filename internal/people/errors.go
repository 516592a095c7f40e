// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package people

import "errors"

// Error taxonomy for the search pipeline. Validation and provider
// availability errors propagate to the caller; per-record and per-fallback
// failures are recovered inside Search and never fail the whole request.
var (
	// ErrInvalidQuery reports caller input that fails validation.
	ErrInvalidQuery = errors.New("invalid query: name must be non-empty")

	// ErrProviderUnavailable reports that the primary provider was
	// unreachable, timed out, or returned an unusable payload. The search
	// is not retried automatically.
	ErrProviderUnavailable = errors.New("primary provider unavailable")

	// ErrMalformedRecord reports a raw record that cannot be normalized
	// (no name). The record is dropped; the search continues.
	ErrMalformedRecord = errors.New("malformed record: missing name")
)
