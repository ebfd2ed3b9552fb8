// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package curation persists a profile's curated collection of external
// records in a SQLite database.
package curation

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/profile-curator/pkg/types"
)

const dbFile = "collection.db"

// DuplicateError reports a manual add whose identifier already exists in
// the collection. Bulk promotion skips duplicates silently; a manual add
// is a single explicit action and gets explicit feedback.
type DuplicateError struct {
	Source     types.SourceKind
	ExternalID string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s record %s is already in the collection", e.Source, e.ExternalID)
}

// Store manages one profile's collection database. Entries are keyed by
// (source, external_id); rowid preserves insertion order, which drives the
// default display order.
type Store struct {
	db   *sql.DB
	warn io.Writer
}

// NewStore opens or creates the collection database at
// profileDir/collection.db, creating the schema if needed. Rows the loader
// cannot use are reported on warn.
func NewStore(cfg types.CurationConfig, warn io.Writer) (*Store, error) {
	if warn == nil {
		warn = io.Discard
	}
	if err := os.MkdirAll(cfg.ProfileDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating profile directory: %w", err)
	}

	dbPath := filepath.Join(cfg.ProfileDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, warn: warn}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS entries (
			source TEXT NOT NULL,
			external_id TEXT NOT NULL,
			title TEXT NOT NULL,
			source_name TEXT,
			published_at TEXT,
			classification TEXT,
			summary TEXT,
			keywords TEXT,
			locator TEXT,
			extra TEXT,
			state TEXT NOT NULL,
			visible INTEGER NOT NULL DEFAULT 0,
			featured INTEGER NOT NULL DEFAULT 0,
			role TEXT,
			added_at TEXT NOT NULL,
			modified_at TEXT NOT NULL,
			PRIMARY KEY (source, external_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_source ON entries(source)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// PromoteSummary holds counts from a promotion run.
type PromoteSummary struct {
	Added   int
	Skipped int
}

const insertEntry = `INSERT OR IGNORE INTO entries
	(source, external_id, title, source_name, published_at, classification,
	 summary, keywords, locator, extra, state, visible, featured, role,
	 added_at, modified_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// Promote moves pending candidates into the durable collection as approved
// entries, stamping AddedAt and ModifiedAt. An entry whose key already
// exists is skipped silently and counted, never overwritten.
func (s *Store) Promote(ctx context.Context, entries []types.CuratedEntry) (PromoteSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PromoteSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertEntry)
	if err != nil {
		return PromoteSummary{}, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	var summary PromoteSummary
	now := time.Now().UTC()

	for _, e := range entries {
		e.State = types.StateApproved
		e.AddedAt = now
		e.ModifiedAt = now

		res, err := execInsert(ctx, stmt, e)
		if err != nil {
			return PromoteSummary{}, fmt.Errorf("inserting %s/%s: %w", e.Record.Source, e.Record.ExternalID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return PromoteSummary{}, fmt.Errorf("checking insert result: %w", err)
		}
		if n == 0 {
			summary.Skipped++
		} else {
			summary.Added++
		}
	}

	if err := tx.Commit(); err != nil {
		return PromoteSummary{}, fmt.Errorf("committing promotion: %w", err)
	}
	return summary, nil
}

// AddManual inserts a single manually resolved entry. Unlike Promote, a
// key collision is an explicit *DuplicateError.
func (s *Store) AddManual(ctx context.Context, entry types.CuratedEntry) error {
	now := time.Now().UTC()
	entry.State = types.StateManual
	entry.Visible = true
	entry.AddedAt = now
	entry.ModifiedAt = now

	stmt, err := s.db.PrepareContext(ctx, insertEntry)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	res, err := execInsert(ctx, stmt, entry)
	if err != nil {
		return fmt.Errorf("inserting %s/%s: %w", entry.Record.Source, entry.Record.ExternalID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking insert result: %w", err)
	}
	if n == 0 {
		return &DuplicateError{Source: entry.Record.Source, ExternalID: entry.Record.ExternalID}
	}
	return nil
}

func execInsert(ctx context.Context, stmt *sql.Stmt, e types.CuratedEntry) (sql.Result, error) {
	keywordsJSON, _ := json.Marshal(e.Record.FreeText.Keywords)
	extraJSON, _ := json.Marshal(e.Record.Extra)
	return stmt.ExecContext(ctx,
		string(e.Record.Source), e.Record.ExternalID, e.Record.Title,
		e.Record.SourceName, e.Record.PublishedAt.String(), e.Record.Classification,
		e.Record.FreeText.Summary, string(keywordsJSON), e.Record.Locator,
		string(extraJSON), string(e.State), e.Visible, e.Featured, string(e.Role),
		e.AddedAt.Format(time.RFC3339Nano), e.ModifiedAt.Format(time.RFC3339Nano),
	)
}

// SetVisibility toggles whether an entry shows on the public profile and
// stamps ModifiedAt. No other field changes.
func (s *Store) SetVisibility(ctx context.Context, kind types.SourceKind, externalID string, visible bool) error {
	return s.update(ctx, kind, externalID,
		`UPDATE entries SET visible = ?, modified_at = ? WHERE source = ? AND external_id = ?`, visible)
}

// SetFeatured marks a media entry as highlighted. Only media entries carry
// the flag.
func (s *Store) SetFeatured(ctx context.Context, kind types.SourceKind, externalID string, featured bool) error {
	if kind != types.SourceMedia {
		return fmt.Errorf("featured flag applies to media entries, not %s", kind)
	}
	return s.update(ctx, kind, externalID,
		`UPDATE entries SET featured = ?, modified_at = ? WHERE source = ? AND external_id = ?`, featured)
}

// SetRole records the provider's role on a clinical trial. Only trial
// entries carry a role.
func (s *Store) SetRole(ctx context.Context, kind types.SourceKind, externalID string, role types.TrialRole) error {
	if kind != types.SourceTrials {
		return fmt.Errorf("trial role applies to trial entries, not %s", kind)
	}
	switch role {
	case types.RoleNone, types.RolePrincipalInvestigator, types.RoleSubInvestigator, types.RoleStudyChair:
	default:
		return fmt.Errorf("unknown trial role %q", role)
	}
	return s.update(ctx, kind, externalID,
		`UPDATE entries SET role = ?, modified_at = ? WHERE source = ? AND external_id = ?`, string(role))
}

func (s *Store) update(ctx context.Context, kind types.SourceKind, externalID, query string, value any) error {
	res, err := s.db.ExecContext(ctx, query,
		value, time.Now().UTC().Format(time.RFC3339Nano), string(kind), externalID)
	if err != nil {
		return fmt.Errorf("updating %s/%s: %w", kind, externalID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("no %s entry with id %s", kind, externalID)
	}
	return nil
}

// Remove hard-deletes an entry. Deleting an absent entry is a no-op;
// confirmation is the caller's responsibility.
func (s *Store) Remove(ctx context.Context, kind types.SourceKind, externalID string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM entries WHERE source = ? AND external_id = ?`, string(kind), externalID); err != nil {
		return fmt.Errorf("removing %s/%s: %w", kind, externalID, err)
	}
	return nil
}

// Get returns one entry by key. The second return value reports whether
// the entry exists.
func (s *Store) Get(ctx context.Context, kind types.SourceKind, externalID string) (types.CuratedEntry, bool, error) {
	rows, err := s.db.QueryContext(ctx,
		selectEntries+` WHERE source = ? AND external_id = ?`, string(kind), externalID)
	if err != nil {
		return types.CuratedEntry{}, false, fmt.Errorf("querying %s/%s: %w", kind, externalID, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return types.CuratedEntry{}, false, rows.Err()
	}
	entry, err := scanEntry(rows)
	if err != nil {
		return types.CuratedEntry{}, false, err
	}
	return entry, true, nil
}

// All returns the collection in insertion order. An empty kind returns
// entries from every source. Rows that cannot be read or that are missing
// required fields are dropped with a warning rather than failing the load.
func (s *Store) All(ctx context.Context, kind types.SourceKind) ([]types.CuratedEntry, error) {
	query := selectEntries
	var args []any
	if kind != "" {
		query += ` WHERE source = ?`
		args = append(args, string(kind))
	}
	query += ` ORDER BY rowid`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	var entries []types.CuratedEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			fmt.Fprintf(s.warn, "warning: dropping unreadable row: %v\n", err)
			continue
		}
		if entry.Record.ExternalID == "" || entry.Record.Title == "" {
			fmt.Fprintf(s.warn, "warning: dropping %s row with missing fields\n", entry.Record.Source)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// VisibilityCounts reports how many entries are shown and hidden.
type VisibilityCounts struct {
	Visible int
	Hidden  int
}

// CountByVisibility tallies entries by the visible flag.
func (s *Store) CountByVisibility(ctx context.Context) (VisibilityCounts, error) {
	var c VisibilityCounts
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FILTER (WHERE visible), count(*) FILTER (WHERE NOT visible) FROM entries`,
	).Scan(&c.Visible, &c.Hidden)
	if err != nil {
		return VisibilityCounts{}, fmt.Errorf("counting by visibility: %w", err)
	}
	return c, nil
}

// FeaturedCounts reports how many media entries are highlighted.
type FeaturedCounts struct {
	Featured int
	Plain    int
}

// CountByFeatured tallies media entries by the featured flag.
func (s *Store) CountByFeatured(ctx context.Context) (FeaturedCounts, error) {
	var c FeaturedCounts
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FILTER (WHERE featured), count(*) FILTER (WHERE NOT featured)
		 FROM entries WHERE source = ?`, string(types.SourceMedia),
	).Scan(&c.Featured, &c.Plain)
	if err != nil {
		return FeaturedCounts{}, fmt.Errorf("counting by featured: %w", err)
	}
	return c, nil
}

const selectEntries = `SELECT source, external_id, title, source_name,
	published_at, classification, summary, keywords, locator, extra,
	state, visible, featured, role, added_at, modified_at FROM entries`

func scanEntry(rows *sql.Rows) (types.CuratedEntry, error) {
	var e types.CuratedEntry
	var source, state, addedAt, modifiedAt string
	// Optional columns are nullable in the schema; rows written by other
	// tools may leave any of them NULL.
	var sourceName, published, classification, summary, keywords, locator, extra, role sql.NullString
	err := rows.Scan(&source, &e.Record.ExternalID, &e.Record.Title,
		&sourceName, &published, &classification,
		&summary, &keywords, &locator, &extra,
		&state, &e.Visible, &e.Featured, &role, &addedAt, &modifiedAt)
	if err != nil {
		return types.CuratedEntry{}, fmt.Errorf("scanning entry: %w", err)
	}

	e.Record.Source = types.SourceKind(source)
	e.Record.SourceName = sourceName.String
	e.Record.Classification = classification.String
	e.Record.FreeText.Summary = summary.String
	e.Record.Locator = locator.String
	e.State = types.LifecycleState(state)
	e.Role = types.TrialRole(role.String)

	if e.Record.PublishedAt, err = types.ParsePartialDate(published.String); err != nil {
		return types.CuratedEntry{}, fmt.Errorf("entry %s/%s: %w", source, e.Record.ExternalID, err)
	}
	if keywords.Valid && keywords.String != "" && keywords.String != "null" {
		if err := json.Unmarshal([]byte(keywords.String), &e.Record.FreeText.Keywords); err != nil {
			return types.CuratedEntry{}, fmt.Errorf("entry %s/%s keywords: %w", source, e.Record.ExternalID, err)
		}
	}
	if extra.Valid && extra.String != "" && extra.String != "null" {
		if err := json.Unmarshal([]byte(extra.String), &e.Record.Extra); err != nil {
			return types.CuratedEntry{}, fmt.Errorf("entry %s/%s extra: %w", source, e.Record.ExternalID, err)
		}
	}
	if e.AddedAt, err = time.Parse(time.RFC3339Nano, addedAt); err != nil {
		return types.CuratedEntry{}, fmt.Errorf("entry %s/%s added_at: %w", source, e.Record.ExternalID, err)
	}
	if e.ModifiedAt, err = time.Parse(time.RFC3339Nano, modifiedAt); err != nil {
		return types.CuratedEntry{}, fmt.Errorf("entry %s/%s modified_at: %w", source, e.Record.ExternalID, err)
	}
	return e, nil
}
