// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pdiddy/profile-curator/internal/identifier"
	"github.com/pdiddy/profile-curator/pkg/types"
)

// trialsAPIBase is the ClinicalTrials.gov v2 studies endpoint. Declared as
// a var so tests can substitute an httptest server.
var trialsAPIBase = "https://clinicaltrials.gov/api/v2/studies"

// Trials queries the ClinicalTrials.gov v2 API. The API exposes a single
// JSON retrieval path, so there is no fallback branch.
type Trials struct {
	Client *http.Client
	Config types.TrialsConfig
}

// Kind returns the source identifier.
func (b *Trials) Kind() types.SourceKind { return types.SourceTrials }

// Search queries the studies endpoint and returns one raw payload per study.
func (b *Trials) Search(ctx context.Context, query string, maxResults int) (Page, error) {
	maxResults = resolveMax(maxResults, b.Config.MaxResults)

	params := url.Values{
		"query.term": {query},
		"pageSize":   {strconv.Itoa(maxResults)},
		"countTotal": {"true"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, trialsAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return Page{}, &SourceError{Source: b.Kind(), Op: "search", Err: err}
	}
	req.Header.Set("User-Agent", b.Config.UserAgent)

	resp, err := b.Client.Do(req)
	if err != nil {
		return Page{}, &SourceError{Source: b.Kind(), Op: "search", Err: fmt.Errorf("studies request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Page{}, &SourceError{Source: b.Kind(), Op: "search", Err: fmt.Errorf("studies endpoint returned HTTP %d", resp.StatusCode)}
	}

	var sr struct {
		TotalCount int               `json:"totalCount"`
		Studies    []json.RawMessage `json:"studies"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return Page{}, &SourceError{Source: b.Kind(), Op: "search", Err: fmt.Errorf("parsing studies response: %w", err)}
	}

	raw := make([]RawRecord, 0, len(sr.Studies))
	for _, s := range sr.Studies {
		raw = append(raw, RawRecord{Kind: RawTrialStudy, Data: s})
	}
	return Page{Raw: raw, Total: sr.TotalCount}, nil
}

// FetchByID retrieves one study by NCT number.
func (b *Trials) FetchByID(ctx context.Context, id identifier.ID) (RawRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, trialsAPIBase+"/"+id.Value, nil)
	if err != nil {
		return RawRecord{}, &SourceError{Source: b.Kind(), Op: "fetch", Err: err}
	}
	req.Header.Set("User-Agent", b.Config.UserAgent)

	resp, err := b.Client.Do(req)
	if err != nil {
		return RawRecord{}, &SourceError{Source: b.Kind(), Op: "fetch", Err: fmt.Errorf("study request: %w", err)}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusBadRequest:
		return RawRecord{}, &NotFoundError{Source: b.Kind(), ID: id.Value}
	default:
		return RawRecord{}, &SourceError{Source: b.Kind(), Op: "fetch", Err: fmt.Errorf("study endpoint returned HTTP %d", resp.StatusCode)}
	}

	var study json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&study); err != nil {
		return RawRecord{}, &SourceError{Source: b.Kind(), Op: "fetch", Err: fmt.Errorf("parsing study response: %w", err)}
	}
	return RawRecord{Kind: RawTrialStudy, Data: study}, nil
}
