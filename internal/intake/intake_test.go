package intake

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/pdiddy/profile-curator/internal/curation"
	"github.com/pdiddy/profile-curator/internal/identifier"
	"github.com/pdiddy/profile-curator/internal/source"
	"github.com/pdiddy/profile-curator/pkg/types"
)

// mockAdapter serves canned study payloads by NCT number.
type mockAdapter struct {
	studies map[string]string
}

func (m *mockAdapter) Kind() types.SourceKind { return types.SourceTrials }

func (m *mockAdapter) Search(ctx context.Context, query string, maxResults int) (source.Page, error) {
	return source.Page{}, errors.New("not implemented")
}

func (m *mockAdapter) FetchByID(ctx context.Context, id identifier.ID) (source.RawRecord, error) {
	doc, ok := m.studies[id.Value]
	if !ok {
		return source.RawRecord{}, &source.NotFoundError{Source: types.SourceTrials, ID: id.Value}
	}
	return source.RawRecord{Kind: source.RawTrialStudy, Data: []byte(doc)}, nil
}

func studyDoc(nct, title string) string {
	return fmt.Sprintf(`{"protocolSection": {"identificationModule": {"nctId": %q, "briefTitle": %q}}}`, nct, title)
}

func newResolver(t *testing.T, studies map[string]string) *Resolver {
	t.Helper()
	store, err := curation.NewStore(types.CurationConfig{ProfileDir: t.TempDir()}, io.Discard)
	if err != nil {
		t.Fatalf("NewStore() err = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return &Resolver{
		Adapter: &mockAdapter{studies: studies},
		Store:   store,
	}
}

func TestAddByIdentifier(t *testing.T) {
	r := newResolver(t, map[string]string{
		"NCT04368728": studyDoc("NCT04368728", "Valve Study"),
	})

	// Lowercase prefix normalizes before the fetch.
	entry, err := r.AddByIdentifier(context.Background(), "nct04368728")
	if err != nil {
		t.Fatalf("AddByIdentifier() err = %v", err)
	}
	if entry.State != types.StateManual {
		t.Errorf("State = %q, want manual", entry.State)
	}
	if !entry.Visible {
		t.Error("manual entry should be visible by default")
	}
	if entry.Record.ExternalID != "NCT04368728" {
		t.Errorf("ExternalID = %q", entry.Record.ExternalID)
	}
	if entry.AddedAt.IsZero() {
		t.Error("AddedAt not stamped")
	}

	stored, ok, err := r.Store.Get(context.Background(), types.SourceTrials, "NCT04368728")
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v", ok, err)
	}
	if stored.Record.Title != "Valve Study" {
		t.Errorf("Title = %q", stored.Record.Title)
	}
}

func TestAddByIdentifierInvalidFormat(t *testing.T) {
	r := newResolver(t, nil)

	_, err := r.AddByIdentifier(context.Background(), "not-a-trial-number")
	var ife *identifier.InvalidFormatError
	if !errors.As(err, &ife) {
		t.Fatalf("err = %v, want *InvalidFormatError", err)
	}
}

func TestAddByIdentifierNotFound(t *testing.T) {
	r := newResolver(t, nil)

	_, err := r.AddByIdentifier(context.Background(), "NCT99999999")
	if !source.IsNotFound(err) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestAddByIdentifierDuplicate(t *testing.T) {
	r := newResolver(t, map[string]string{
		"NCT04368728": studyDoc("NCT04368728", "Valve Study"),
	})

	if _, err := r.AddByIdentifier(context.Background(), "NCT04368728"); err != nil {
		t.Fatalf("first add err = %v", err)
	}

	_, err := r.AddByIdentifier(context.Background(), "NCT04368728")
	var dup *curation.DuplicateError
	if !errors.As(err, &dup) {
		t.Fatalf("err = %v, want *DuplicateError", err)
	}
}

func TestAddBatchContinuesPastFailures(t *testing.T) {
	r := newResolver(t, map[string]string{
		"NCT00000001": studyDoc("NCT00000001", "One"),
		"NCT00000003": studyDoc("NCT00000003", "Three"),
	})

	var buf bytes.Buffer
	result := r.AddBatch(context.Background(),
		[]string{"NCT00000001", "NCT99999999", "NCT00000003", "garbage"}, &buf)

	if result.Added != 2 || result.Failed != 2 {
		t.Errorf("result = %+v, want 2 added 2 failed", result)
	}
	if !result.HasFailures() {
		t.Error("HasFailures() = false")
	}
	if !strings.Contains(buf.String(), "failed: NCT99999999") {
		t.Errorf("output missing failure line: %q", buf.String())
	}

	entries, err := r.Store.All(context.Background(), types.SourceTrials)
	if err != nil {
		t.Fatalf("All() err = %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("len(entries) = %d, want 2", len(entries))
	}
}
