// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/profile-curator/internal/identifier"
	"github.com/pdiddy/profile-curator/pkg/types"
)

// Media queries a newsroom catalog for press coverage. The catalog has no
// public canonical host, so the base URL comes from configuration; the
// adapter refuses to run until it is set.
type Media struct {
	Client *http.Client
	Config types.MediaConfig
}

// Kind returns the source identifier.
func (b *Media) Kind() types.SourceKind { return types.SourceMedia }

// Search queries the article search endpoint.
func (b *Media) Search(ctx context.Context, query string, maxResults int) (Page, error) {
	base, err := b.baseURL()
	if err != nil {
		return Page{}, &SourceError{Source: b.Kind(), Op: "search", Err: err}
	}
	maxResults = resolveMax(maxResults, b.Config.MaxResults)

	params := url.Values{
		"q":     {query},
		"limit": {strconv.Itoa(maxResults)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/v1/articles?"+params.Encode(), nil)
	if err != nil {
		return Page{}, &SourceError{Source: b.Kind(), Op: "search", Err: err}
	}
	b.setHeaders(req)

	resp, err := b.Client.Do(req)
	if err != nil {
		return Page{}, &SourceError{Source: b.Kind(), Op: "search", Err: fmt.Errorf("article search request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Page{}, &SourceError{Source: b.Kind(), Op: "search", Err: fmt.Errorf("article search returned HTTP %d", resp.StatusCode)}
	}

	var ar struct {
		Total    int               `json:"total"`
		Articles []json.RawMessage `json:"articles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return Page{}, &SourceError{Source: b.Kind(), Op: "search", Err: fmt.Errorf("parsing article search response: %w", err)}
	}

	raw := make([]RawRecord, 0, len(ar.Articles))
	for _, a := range ar.Articles {
		raw = append(raw, RawRecord{Kind: RawMediaArticle, Data: a})
	}
	return Page{Raw: raw, Total: ar.Total}, nil
}

// FetchByID looks up one article by its canonical URL.
func (b *Media) FetchByID(ctx context.Context, id identifier.ID) (RawRecord, error) {
	base, err := b.baseURL()
	if err != nil {
		return RawRecord{}, &SourceError{Source: b.Kind(), Op: "fetch", Err: err}
	}

	params := url.Values{"url": {id.Value}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/v1/articles/lookup?"+params.Encode(), nil)
	if err != nil {
		return RawRecord{}, &SourceError{Source: b.Kind(), Op: "fetch", Err: err}
	}
	b.setHeaders(req)

	resp, err := b.Client.Do(req)
	if err != nil {
		return RawRecord{}, &SourceError{Source: b.Kind(), Op: "fetch", Err: fmt.Errorf("article lookup request: %w", err)}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return RawRecord{}, &NotFoundError{Source: b.Kind(), ID: id.Value}
	default:
		return RawRecord{}, &SourceError{Source: b.Kind(), Op: "fetch", Err: fmt.Errorf("article lookup returned HTTP %d", resp.StatusCode)}
	}

	var article json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&article); err != nil {
		return RawRecord{}, &SourceError{Source: b.Kind(), Op: "fetch", Err: fmt.Errorf("parsing article lookup response: %w", err)}
	}
	return RawRecord{Kind: RawMediaArticle, Data: article}, nil
}

func (b *Media) baseURL() (string, error) {
	if b.Config.BaseURL == "" {
		return "", fmt.Errorf("media source not configured: set media.base_url")
	}
	return strings.TrimSuffix(b.Config.BaseURL, "/"), nil
}

func (b *Media) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", b.Config.UserAgent)
	if b.Config.APIKey != "" {
		req.Header.Set("X-Api-Key", b.Config.APIKey)
	}
}
