// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// DiscoveryResult is the outcome of a single discovery search. It is
// ephemeral: a new search fully replaces the previous result, and candidates
// are only persisted by promoting them into the curated collection.
type DiscoveryResult struct {
	// QueryEcho is the source query string the search actually ran.
	QueryEcho string `json:"query_echo" yaml:"query_echo"`

	// SearchedAt is the time the search was issued.
	SearchedAt time.Time `json:"searched_at" yaml:"searched_at"`

	// TotalFound is the source's total-count hint, which may exceed the
	// number of candidates returned.
	TotalFound int `json:"total_found" yaml:"total_found"`

	// Candidates holds the normalized records in source-returned order,
	// all in the pending state.
	Candidates []CuratedEntry `json:"candidates" yaml:"candidates"`

	// SuggestedQueries lists alternate searches the caller can offer when
	// the primary query misses.
	SuggestedQueries []string `json:"suggested_queries,omitempty" yaml:"suggested_queries,omitempty"`
}
