package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "people-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the search pipeline.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// DefaultLimit is the result limit used when a query does not set one
	// (default 10).
	DefaultLimit int `json:"default_limit" yaml:"default_limit"`

	// MaxLimit is the upper bound a query limit is clamped to (default 25).
	MaxLimit int `json:"max_limit" yaml:"max_limit"`

	// SkillsVisible is the cutoff between visible and hidden skills
	// (default 5).
	SkillsVisible int `json:"skills_visible" yaml:"skills_visible"`

	// FallbackConcurrency bounds concurrent fallback lookups within one
	// search (default 4).
	FallbackConcurrency int `json:"fallback_concurrency" yaml:"fallback_concurrency"`

	// ProviderAPIKey authenticates against the primary employee-data API.
	ProviderAPIKey string `json:"provider_api_key,omitempty" yaml:"provider_api_key,omitempty"`

	// DiscoveryAPIKey authenticates against the fallback web-search API.
	// When empty the fallback path is reported as unconfigured.
	DiscoveryAPIKey string `json:"discovery_api_key,omitempty" yaml:"discovery_api_key,omitempty"`
}

// ServerConfig holds settings for the HTTP API server.
type ServerConfig struct {
	// Bind is the listen address (default "127.0.0.1").
	Bind string `json:"bind" yaml:"bind"`

	// Port is the listen port (default 8000).
	Port int `json:"port" yaml:"port"`
}

// CacheConfig holds settings for the optional response cache.
type CacheConfig struct {
	// Path is the SQLite database file. Empty disables caching.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// TTL is how long a cached response stays valid (default 15m).
	TTL time.Duration `json:"ttl" yaml:"ttl"`
}
