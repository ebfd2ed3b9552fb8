// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize maps raw source payloads into canonical records. Every
// field mapping supplies a safe default when the raw field is missing; a
// record with no resolvable title or identifier is rejected rather than
// passed through with placeholder data.
package normalize

import (
	"fmt"
	"strings"

	"github.com/pdiddy/profile-curator/internal/source"
	"github.com/pdiddy/profile-curator/pkg/types"
)

// Normalize maps one raw payload to a CanonicalRecord according to its
// wire shape. Pure: no I/O, no clock.
func Normalize(raw source.RawRecord) (types.CanonicalRecord, error) {
	switch raw.Kind {
	case source.RawPubMedArticle:
		return normalizePubMedArticle(raw.Data)
	case source.RawPubMedSummary:
		return normalizePubMedSummary(raw.Data)
	case source.RawTrialStudy:
		return normalizeTrialStudy(raw.Data)
	case source.RawMediaArticle:
		return normalizeMediaArticle(raw.Data)
	default:
		return types.CanonicalRecord{}, fmt.Errorf("unknown raw record kind %q", raw.Kind)
	}
}

// FormatAuthors renders an author list for display: no authors reads
// "Unknown", two are joined with "and", three or more collapse to "et al."
func FormatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return "Unknown"
	case 1:
		return authors[0]
	case 2:
		return authors[0] + " and " + authors[1]
	default:
		return authors[0] + " et al."
	}
}

// validate rejects records that lack the two fields nothing downstream can
// work without.
func validate(rec types.CanonicalRecord) (types.CanonicalRecord, error) {
	if strings.TrimSpace(rec.ExternalID) == "" {
		return types.CanonicalRecord{}, fmt.Errorf("%s record has no identifier", rec.Source)
	}
	if strings.TrimSpace(rec.Title) == "" {
		return types.CanonicalRecord{}, fmt.Errorf("%s record %s has no title", rec.Source, rec.ExternalID)
	}
	return rec, nil
}
