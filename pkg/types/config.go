package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "arxiv-mcp/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the arXiv search client.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// DefaultResults is the result count used when a caller gives none (default 10).
	DefaultResults int `json:"default_results" yaml:"default_results"`

	// MaxResults is the hard ceiling on the result count (default 50).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// RequestDelay is the minimum gap between consecutive arXiv API
	// requests. Zero disables pacing.
	RequestDelay time.Duration `json:"request_delay" yaml:"request_delay"`

	// SortBy selects the upstream ordering when the query has no preference.
	SortBy SortOrder `json:"sort_by" yaml:"sort_by"`
}

// ParserConfig holds settings for the query translator.
type ParserConfig struct {
	// OpenAIAPIKey enables the LLM-backed translator when non-empty.
	OpenAIAPIKey string `json:"openai_api_key,omitempty" yaml:"openai_api_key,omitempty"`

	// Model is the completion model for the LLM-backed translator.
	Model string `json:"model" yaml:"model"`

	// DefaultResults and MaxResults mirror SearchConfig so the translator
	// can clamp extracted limits without reaching into the search stage.
	DefaultResults int `json:"default_results" yaml:"default_results"`
	MaxResults     int `json:"max_results" yaml:"max_results"`
}

// DownloadConfig holds settings for the download orchestrator.
type DownloadConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseDir is the root of the download tree
	// (contains <YYYY-MM>/<category>/ subdirectories).
	BaseDir string `json:"base_dir" yaml:"base_dir"`

	// Delay is the minimum gap between consecutive download attempt
	// starts within a batch (default 3s). This is a rate-limit contract
	// with arXiv, not a retry backoff.
	Delay time.Duration `json:"delay" yaml:"delay"`

	// MaxRetries is the number of retry attempts for a transient fetch
	// failure (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// RetryBackoff is the fixed wait between fetch retries (default 5s).
	RetryBackoff time.Duration `json:"retry_backoff" yaml:"retry_backoff"`
}
