// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source performs the network round trips to external catalogs.
// Each catalog (PubMed, ClinicalTrials.gov, newsroom) implements the
// Adapter interface per the Strategy pattern; payloads stay opaque until
// the normalize package maps them to canonical records.
package source

import (
	"context"

	"github.com/pdiddy/profile-curator/internal/identifier"
	"github.com/pdiddy/profile-curator/pkg/types"
)

// RawKind identifies the wire shape of a raw payload so the normalizer
// knows how to decode it.
type RawKind string

const (
	// RawPubMedArticle is one <PubmedArticle> XML document from EFetch,
	// the high-fidelity path (carries the abstract).
	RawPubMedArticle RawKind = "pubmed_article"

	// RawPubMedSummary is one ESummary JSON object, the low-fidelity
	// fallback path (no abstract).
	RawPubMedSummary RawKind = "pubmed_summary"

	// RawTrialStudy is one study object from the ClinicalTrials.gov v2 API.
	RawTrialStudy RawKind = "trial_study"

	// RawMediaArticle is one article object from the newsroom catalog.
	RawMediaArticle RawKind = "media_article"
)

// RawRecord is a single per-record payload exactly as the source returned
// it. The pipeline carries it untouched to the normalizer.
type RawRecord struct {
	Kind RawKind
	Data []byte
}

// Page holds the raw records from one search call plus the source's
// total-count hint, which may exceed len(Raw).
type Page struct {
	Raw   []RawRecord
	Total int
}

// Adapter is a single external catalog. Implementations must return typed
// failures: *NotFoundError for an absent identifier, *SourceError for
// transport or decode failures after the fallback path (if any) is
// exhausted.
type Adapter interface {
	Kind() types.SourceKind
	Search(ctx context.Context, query string, maxResults int) (Page, error)
	FetchByID(ctx context.Context, id identifier.ID) (RawRecord, error)
}

const defaultMaxResults = 20

// resolveMax picks the result cap for a search: the caller's value, then
// the adapter's configured default, then the package default.
func resolveMax(requested, configured int) int {
	if requested > 0 {
		return requested
	}
	if configured > 0 {
		return configured
	}
	return defaultMaxResults
}
