// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/profile-curator/internal/httputil"
	"github.com/pdiddy/profile-curator/internal/identifier"
	"github.com/pdiddy/profile-curator/pkg/types"
)

// NCBI E-utilities endpoints. Declared as vars so tests can substitute
// httptest servers.
var (
	pubmedSearchBase  = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi"
	pubmedFetchBase   = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"
	pubmedSummaryBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esummary.fcgi"
)

// PubMed queries the NCBI E-utilities API. Record retrieval tries EFetch
// XML first (carries the abstract) and falls back once to ESummary JSON.
// The degraded summary shape is expected, not an error.
type PubMed struct {
	Client *http.Client
	Config types.PubMedConfig
}

// Kind returns the source identifier.
func (b *PubMed) Kind() types.SourceKind { return types.SourcePubMed }

// Search runs ESearch for the query, then retrieves the matched records.
func (b *PubMed) Search(ctx context.Context, query string, maxResults int) (Page, error) {
	maxResults = resolveMax(maxResults, b.Config.MaxResults)

	params := url.Values{
		"db":      {"pubmed"},
		"term":    {query},
		"retmode": {"json"},
		"retmax":  {strconv.Itoa(maxResults)},
	}
	if b.Config.APIKey != "" {
		params.Set("api_key", b.Config.APIKey)
	}

	var env esearchEnvelope
	if err := b.getJSON(ctx, pubmedSearchBase+"?"+params.Encode(), &env); err != nil {
		return Page{}, &SourceError{Source: b.Kind(), Op: "search", Err: err}
	}

	total, _ := strconv.Atoi(env.Result.Count)
	if len(env.Result.IDList) == 0 {
		return Page{Total: total}, nil
	}

	raw, err := b.fetchArticles(ctx, env.Result.IDList)
	if err != nil {
		// High-fidelity path failed: take the ESummary branch once.
		raw, err = b.fetchSummaries(ctx, env.Result.IDList)
		if err != nil {
			return Page{}, &SourceError{Source: b.Kind(), Op: "search", Err: err}
		}
	}
	return Page{Raw: raw, Total: total}, nil
}

// FetchByID retrieves a single record by PMID.
func (b *PubMed) FetchByID(ctx context.Context, id identifier.ID) (RawRecord, error) {
	raw, err := b.fetchArticles(ctx, []string{id.Value})
	if err == nil {
		// An empty EFetch set for a requested PMID is authoritative.
		if len(raw) == 0 {
			return RawRecord{}, &NotFoundError{Source: b.Kind(), ID: id.Value}
		}
		return raw[0], nil
	}

	raw, err = b.fetchSummaries(ctx, []string{id.Value})
	if err != nil {
		return RawRecord{}, &SourceError{Source: b.Kind(), Op: "fetch", Err: err}
	}
	if len(raw) == 0 {
		return RawRecord{}, &NotFoundError{Source: b.Kind(), ID: id.Value}
	}
	return raw[0], nil
}

// fetchArticles retrieves full PubmedArticle XML documents via EFetch.
// This is the primary path and is never retried.
func (b *PubMed) fetchArticles(ctx context.Context, pmids []string) ([]RawRecord, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"id":      {strings.Join(pmids, ",")},
		"retmode": {"xml"},
	}
	if b.Config.APIKey != "" {
		params.Set("api_key", b.Config.APIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pubmedFetchBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", b.Config.UserAgent)

	resp, err := b.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("EFetch request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("EFetch returned HTTP %d", resp.StatusCode)
	}

	// Split the article set into per-record payloads without interpreting
	// them; the normalizer owns the field mapping.
	var set struct {
		Articles []struct {
			Inner []byte `xml:",innerxml"`
		} `xml:"PubmedArticle"`
	}
	if err := xml.NewDecoder(resp.Body).Decode(&set); err != nil {
		return nil, fmt.Errorf("parsing EFetch response: %w", err)
	}

	raw := make([]RawRecord, 0, len(set.Articles))
	for _, a := range set.Articles {
		data := append([]byte("<PubmedArticle>"), a.Inner...)
		data = append(data, []byte("</PubmedArticle>")...)
		raw = append(raw, RawRecord{Kind: RawPubMedArticle, Data: data})
	}
	return raw, nil
}

// fetchSummaries retrieves flat document summaries via ESummary. As the
// fallback path it is allowed a single retry.
func (b *PubMed) fetchSummaries(ctx context.Context, pmids []string) ([]RawRecord, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"id":      {strings.Join(pmids, ",")},
		"retmode": {"json"},
	}
	if b.Config.APIKey != "" {
		params.Set("api_key", b.Config.APIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pubmedSummaryBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", b.Config.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, b.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("ESummary request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ESummary returned HTTP %d", resp.StatusCode)
	}

	var env struct {
		Result map[string]json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("parsing ESummary response: %w", err)
	}

	var uids []string
	if uidsRaw, ok := env.Result["uids"]; ok {
		if err := json.Unmarshal(uidsRaw, &uids); err != nil {
			return nil, fmt.Errorf("parsing ESummary uid list: %w", err)
		}
	}

	var raw []RawRecord
	for _, uid := range uids {
		doc, ok := env.Result[uid]
		if !ok {
			continue
		}
		// ESummary reports unknown PMIDs inline rather than by omission.
		var probe struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(doc, &probe) == nil && probe.Error != "" {
			continue
		}
		raw = append(raw, RawRecord{Kind: RawPubMedSummary, Data: doc})
	}
	return raw, nil
}

// esearchEnvelope captures the fields we need from an ESearch response.
type esearchEnvelope struct {
	Result esearchResult `json:"esearchresult"`
}

type esearchResult struct {
	Count  string   `json:"count"`
	IDList []string `json:"idlist"`
}

// getJSON issues a GET and decodes the JSON body into dst.
func (b *PubMed) getJSON(ctx context.Context, reqURL string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", b.Config.UserAgent)

	resp, err := b.Client.Do(req)
	if err != nil {
		return fmt.Errorf("ESearch request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ESearch returned HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("parsing ESearch response: %w", err)
	}
	return nil
}
