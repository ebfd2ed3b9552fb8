// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package intake resolves bare identifiers into curated entries, bypassing
// discovery.
package intake

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/profile-curator/internal/curation"
	"github.com/pdiddy/profile-curator/internal/identifier"
	"github.com/pdiddy/profile-curator/internal/normalize"
	"github.com/pdiddy/profile-curator/internal/source"
	"github.com/pdiddy/profile-curator/pkg/types"
)

// Resolver turns a raw identifier into a manual collection entry: validate,
// fetch, normalize, store.
type Resolver struct {
	Adapter source.Adapter
	Store   *curation.Store
}

// AddByIdentifier resolves raw against the resolver's catalog and inserts
// the record as a manual, immediately visible entry. A key already in the
// collection is an explicit *curation.DuplicateError, never a silent skip.
func (r *Resolver) AddByIdentifier(ctx context.Context, raw string) (types.CuratedEntry, error) {
	id, err := identifier.Validate(r.Adapter.Kind(), raw)
	if err != nil {
		return types.CuratedEntry{}, err
	}

	rawRec, err := r.Adapter.FetchByID(ctx, id)
	if err != nil {
		return types.CuratedEntry{}, err
	}

	rec, err := normalize.Normalize(rawRec)
	if err != nil {
		return types.CuratedEntry{}, fmt.Errorf("normalizing %s record %s: %w", id.Kind, id.Value, err)
	}

	entry := types.CuratedEntry{
		Record:  rec,
		State:   types.StateManual,
		Visible: true,
	}
	if err := r.Store.AddManual(ctx, entry); err != nil {
		return types.CuratedEntry{}, err
	}

	stored, ok, err := r.Store.Get(ctx, rec.Source, rec.ExternalID)
	if err != nil {
		return types.CuratedEntry{}, err
	}
	if !ok {
		return types.CuratedEntry{}, fmt.Errorf("entry %s/%s vanished after insert", rec.Source, rec.ExternalID)
	}
	return stored, nil
}

// BatchResult holds counts from a batch intake run.
type BatchResult struct {
	Added  int
	Failed int
}

// Total returns the number of identifiers processed.
func (r BatchResult) Total() int {
	return r.Added + r.Failed
}

// HasFailures reports whether any identifier failed to resolve.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// AddBatch resolves each identifier in turn, continuing past failures and
// reporting progress on w.
func (r *Resolver) AddBatch(ctx context.Context, raws []string, w io.Writer) BatchResult {
	var result BatchResult
	for _, raw := range raws {
		entry, err := r.AddByIdentifier(ctx, raw)
		if err != nil {
			fmt.Fprintf(w, "failed: %s (%v)\n", raw, err)
			result.Failed++
			continue
		}
		fmt.Fprintf(w, "added:  %s (%s)\n", entry.Record.ExternalID, entry.Record.Title)
		result.Added++
	}
	fmt.Fprintf(w, "\nBatch summary: %d added, %d failed (total: %d)\n",
		result.Added, result.Failed, result.Total())
	return result
}
