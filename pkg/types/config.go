// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "litquery/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for vendor searches.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the maximum number of records to return across all
	// vendors after deduplication (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// PageSize is the number of records requested per API page.
	// Vendors cap this at their own limits (Scopus 25, WoS 100).
	PageSize int `json:"page_size" yaml:"page_size"`

	// EnableScopus controls whether the Scopus client is used.
	EnableScopus bool `json:"enable_scopus" yaml:"enable_scopus"`

	// EnableWoS controls whether the Web of Science client is used.
	EnableWoS bool `json:"enable_wos" yaml:"enable_wos"`

	// EnableScholar controls whether the Google Scholar client is used.
	EnableScholar bool `json:"enable_scholar" yaml:"enable_scholar"`

	// ScopusAPIKey authenticates against the Elsevier Scopus Search API.
	ScopusAPIKey string `json:"scopus_api_key,omitempty" yaml:"scopus_api_key,omitempty"`

	// WoSAPIKey authenticates against the Clarivate Web of Science API.
	WoSAPIKey string `json:"wos_api_key,omitempty" yaml:"wos_api_key,omitempty"`

	// SerpAPIKey authenticates against SerpAPI for Google Scholar access.
	SerpAPIKey string `json:"serpapi_key,omitempty" yaml:"serpapi_key,omitempty"`

	// CrossrefMailto is the contact address sent to Crossref for polite
	// pool access.
	CrossrefMailto string `json:"crossref_mailto,omitempty" yaml:"crossref_mailto,omitempty"`

	// InterVendorDelay is the delay between API calls to different
	// vendors (default 1s).
	InterVendorDelay time.Duration `json:"inter_vendor_delay" yaml:"inter_vendor_delay"`
}

// DriveConfig holds settings for the shared-drive lister.
type DriveConfig struct {
	// CredentialsFile is the path to the OAuth client credentials JSON.
	CredentialsFile string `json:"credentials_file" yaml:"credentials_file"`

	// TokenFile is the path to the cached OAuth token JSON.
	TokenFile string `json:"token_file" yaml:"token_file"`

	// FolderID is the default folder to list when none is given.
	FolderID string `json:"folder_id,omitempty" yaml:"folder_id,omitempty"`
}

// StoreConfig holds settings for the local record store.
type StoreConfig struct {
	// DBDir is the directory holding the SQLite database.
	DBDir string `json:"db_dir" yaml:"db_dir"`

	// MaxResults is the default maximum number of listed records (default 50).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// Config groups all component configurations.
type Config struct {
	Search SearchConfig `json:"search" yaml:"search"`
	Drive  DriveConfig  `json:"drive" yaml:"drive"`
	Store  StoreConfig  `json:"store" yaml:"store"`
}
