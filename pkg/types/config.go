package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "profile-curator/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// PubMedConfig holds settings for the PubMed source adapter.
type PubMedConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey is an optional NCBI API key for higher rate limits.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxResults is the maximum number of candidates per search (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// TrialsConfig holds settings for the ClinicalTrials.gov source adapter.
type TrialsConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the maximum number of candidates per search (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// MediaConfig holds settings for the newsroom catalog source adapter.
type MediaConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the newsroom catalog endpoint. The media source is
	// unavailable until this is configured.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIKey is sent as the X-Api-Key header when set.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxResults is the maximum number of candidates per search (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// CurationConfig holds settings for the curated collection store.
type CurationConfig struct {
	// ProfileDir is the directory holding one profile's collection database.
	ProfileDir string `json:"profile_dir" yaml:"profile_dir"`
}

// LookupConfig holds settings for the expertise-term lookup service.
type LookupConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the terminology service endpoint.
	BaseURL string `json:"base_url" yaml:"base_url"`
}

// PipelineConfig groups all component configurations for the pipeline.
type PipelineConfig struct {
	PubMed   PubMedConfig   `json:"pubmed" yaml:"pubmed"`
	Trials   TrialsConfig   `json:"trials" yaml:"trials"`
	Media    MediaConfig    `json:"media" yaml:"media"`
	Curation CurationConfig `json:"curation" yaml:"curation"`
	Lookup   LookupConfig   `json:"lookup" yaml:"lookup"`
}
