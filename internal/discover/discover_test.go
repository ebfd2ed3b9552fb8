package discover

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/profile-curator/internal/identifier"
	"github.com/pdiddy/profile-curator/internal/source"
	"github.com/pdiddy/profile-curator/pkg/types"
)

// mockAdapter returns canned pages so session behavior can be tested
// without a network.
type mockAdapter struct {
	kind      types.SourceKind
	page      source.Page
	searchErr error
	gotQuery  string
}

func (m *mockAdapter) Kind() types.SourceKind { return m.kind }

func (m *mockAdapter) Search(ctx context.Context, query string, maxResults int) (source.Page, error) {
	m.gotQuery = query
	return m.page, m.searchErr
}

func (m *mockAdapter) FetchByID(ctx context.Context, id identifier.ID) (source.RawRecord, error) {
	return source.RawRecord{}, errors.New("not implemented")
}

func summaryRaw(uid, title string) source.RawRecord {
	return source.RawRecord{
		Kind: source.RawPubMedSummary,
		Data: []byte(fmt.Sprintf(`{"uid": %q, "title": %q}`, uid, title)),
	}
}

func TestDiscover(t *testing.T) {
	mock := &mockAdapter{
		kind: types.SourcePubMed,
		page: source.Page{
			Raw:   []source.RawRecord{summaryRaw("111", "First"), summaryRaw("222", "Second")},
			Total: 42,
		},
	}
	s := &Session{Adapter: mock, MaxResults: 20}

	var buf bytes.Buffer
	result, err := s.Discover(context.Background(), "Jane Smith", "Mayo Clinic", &buf)
	if err != nil {
		t.Fatalf("Discover() err = %v", err)
	}

	if result.QueryEcho != mock.gotQuery {
		t.Errorf("QueryEcho = %q, adapter saw %q", result.QueryEcho, mock.gotQuery)
	}
	if !strings.Contains(result.QueryEcho, "Jane Smith[Author]") {
		t.Errorf("QueryEcho = %q", result.QueryEcho)
	}
	if result.TotalFound != 42 {
		t.Errorf("TotalFound = %d, want 42", result.TotalFound)
	}
	if result.SearchedAt.IsZero() {
		t.Error("SearchedAt not stamped")
	}
	if len(result.Candidates) != 2 {
		t.Fatalf("len(Candidates) = %d, want 2", len(result.Candidates))
	}
	for _, c := range result.Candidates {
		if c.State != types.StatePending {
			t.Errorf("State = %q, want pending", c.State)
		}
		if c.Visible {
			t.Error("pending candidate should not be visible")
		}
	}
	// Source-returned order is preserved.
	if result.Candidates[0].Record.ExternalID != "111" || result.Candidates[1].Record.ExternalID != "222" {
		t.Errorf("candidate order = %q, %q",
			result.Candidates[0].Record.ExternalID, result.Candidates[1].Record.ExternalID)
	}
	if len(result.SuggestedQueries) == 0 {
		t.Error("no suggested queries")
	}
}

func TestDiscoverDropsMalformedRecord(t *testing.T) {
	mock := &mockAdapter{
		kind: types.SourcePubMed,
		page: source.Page{
			Raw: []source.RawRecord{
				summaryRaw("111", "First"),
				{Kind: source.RawPubMedSummary, Data: []byte(`{"uid": "222"}`)}, // no title
				summaryRaw("333", "Third"),
			},
			Total: 3,
		},
	}
	s := &Session{Adapter: mock}

	var buf bytes.Buffer
	result, err := s.Discover(context.Background(), "Jane Smith", "", &buf)
	if err != nil {
		t.Fatalf("Discover() err = %v", err)
	}
	if len(result.Candidates) != 2 {
		t.Fatalf("len(Candidates) = %d, want 2", len(result.Candidates))
	}
	if !strings.Contains(buf.String(), "warning:") {
		t.Errorf("no warning written for dropped record: %q", buf.String())
	}
}

func TestDiscoverZeroResults(t *testing.T) {
	mock := &mockAdapter{kind: types.SourceTrials}
	s := &Session{Adapter: mock}

	var buf bytes.Buffer
	result, err := s.Discover(context.Background(), "Nobody", "", &buf)
	if err != nil {
		t.Fatalf("Discover() err = %v, want nil for empty result", err)
	}
	if len(result.Candidates) != 0 {
		t.Errorf("Candidates = %v, want none", result.Candidates)
	}
	if len(result.SuggestedQueries) == 0 {
		t.Error("empty result should still carry suggestions")
	}
}

func TestDiscoverSearchError(t *testing.T) {
	mock := &mockAdapter{
		kind:      types.SourcePubMed,
		searchErr: &source.SourceError{Source: types.SourcePubMed, Op: "search", Err: errors.New("boom")},
	}
	s := &Session{Adapter: mock}

	var buf bytes.Buffer
	_, err := s.Discover(context.Background(), "Jane Smith", "", &buf)
	var se *source.SourceError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *SourceError", err)
	}
}

func TestSessionFileRoundTrip(t *testing.T) {
	mock := &mockAdapter{
		kind: types.SourcePubMed,
		page: source.Page{
			Raw:   []source.RawRecord{summaryRaw("111", "First")},
			Total: 1,
		},
	}
	s := &Session{Adapter: mock}

	var buf bytes.Buffer
	result, err := s.Discover(context.Background(), "Jane Smith", "Mayo Clinic", &buf)
	if err != nil {
		t.Fatalf("Discover() err = %v", err)
	}

	path := filepath.Join(t.TempDir(), "session.yaml")
	if err := WriteSessionFile(path, types.SourcePubMed, "Jane Smith", "Mayo Clinic", result); err != nil {
		t.Fatalf("WriteSessionFile() err = %v", err)
	}

	sf, err := ReadSessionFile(path)
	if err != nil {
		t.Fatalf("ReadSessionFile() err = %v", err)
	}
	if sf.Source != types.SourcePubMed {
		t.Errorf("Source = %q", sf.Source)
	}
	if sf.Provider.Name != "Jane Smith" || sf.Provider.Affiliation != "Mayo Clinic" {
		t.Errorf("Provider = %+v", sf.Provider)
	}
	if len(sf.Result.Candidates) != 1 || sf.Result.Candidates[0].Record.ExternalID != "111" {
		t.Errorf("Result = %+v", sf.Result)
	}
	if sf.Result.Candidates[0].State != types.StatePending {
		t.Errorf("State = %q", sf.Result.Candidates[0].State)
	}
}

func TestReadSessionFileMissingSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := WriteSessionFile(path, "", "X", "", types.DiscoveryResult{}); err != nil {
		t.Fatalf("WriteSessionFile() err = %v", err)
	}
	if _, err := ReadSessionFile(path); err == nil {
		t.Fatal("session file without a source was accepted")
	}
}
