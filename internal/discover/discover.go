// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package discover runs a provider search against one external catalog and
// produces review-ready candidates.
package discover

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/profile-curator/internal/normalize"
	"github.com/pdiddy/profile-curator/internal/query"
	"github.com/pdiddy/profile-curator/internal/source"
	"github.com/pdiddy/profile-curator/pkg/types"
)

// Session binds one source adapter to a discovery run. A session holds no
// results; each Discover call returns a fresh DiscoveryResult that fully
// replaces anything the caller held from an earlier search.
type Session struct {
	Adapter    source.Adapter
	MaxResults int
}

// Discover searches the session's catalog for records matching the provider
// name and optional affiliation. All candidates come back in the pending
// state and in source-returned order. A record the normalizer rejects is
// dropped with a warning on w; the rest of the batch survives. Zero hits is
// a valid outcome, not an error.
func (s *Session) Discover(ctx context.Context, name, affiliation string, w io.Writer) (types.DiscoveryResult, error) {
	q := query.Primary(s.Adapter.Kind(), name, affiliation)

	page, err := s.Adapter.Search(ctx, q, s.MaxResults)
	if err != nil {
		return types.DiscoveryResult{}, err
	}

	result := types.DiscoveryResult{
		QueryEcho:  q,
		SearchedAt: time.Now(),
		TotalFound: page.Total,
	}

	for _, raw := range page.Raw {
		rec, err := normalize.Normalize(raw)
		if err != nil {
			fmt.Fprintf(w, "warning: dropping %s record: %v\n", s.Adapter.Kind(), err)
			continue
		}
		result.Candidates = append(result.Candidates, types.CuratedEntry{
			Record: rec,
			State:  types.StatePending,
		})
	}

	var affiliations []string
	if affiliation != "" {
		affiliations = []string{affiliation}
	}
	result.SuggestedQueries = query.Suggest(name, affiliations)

	return result, nil
}
