// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lookup fetches expertise term lists from a terminology service.
package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/pdiddy/profile-curator/internal/source"
	"github.com/pdiddy/profile-curator/pkg/types"
)

// lookupSource tags errors from the terminology service; it is not one of
// the record catalogs.
const lookupSource = types.SourceKind("terminology")

// TermSet groups the expertise vocabularies for one specialty.
type TermSet struct {
	Conditions   []string `json:"conditions" yaml:"conditions"`
	Procedures   []string `json:"procedures" yaml:"procedures"`
	VisitReasons []string `json:"visit_reasons" yaml:"visit_reasons"`
}

// Client queries the terminology endpoint.
type Client struct {
	HTTP   *http.Client
	Config types.LookupConfig
}

// categories are the three vocabulary endpoints fetched per specialty.
var categories = []string{"conditions", "procedures", "visit-reasons"}

// Terms fetches the three vocabularies for a specialty concurrently and
// joins on the slowest leg. Each list keeps the service's order; the legs
// complete in no particular order relative to each other. Any failed leg
// fails the whole lookup.
func (c *Client) Terms(ctx context.Context, specialty string) (TermSet, error) {
	if c.Config.BaseURL == "" {
		return TermSet{}, &source.SourceError{
			Source: lookupSource, Op: "terms",
			Err: fmt.Errorf("terminology service not configured: set lookup.base_url"),
		}
	}

	type legResult struct {
		category string
		terms    []string
		err      error
	}

	ch := make(chan legResult, len(categories))
	var wg sync.WaitGroup

	for _, category := range categories {
		wg.Add(1)
		go func(category string) {
			defer wg.Done()
			terms, err := c.fetchCategory(ctx, category, specialty)
			ch <- legResult{category: category, terms: terms, err: err}
		}(category)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	var set TermSet
	for leg := range ch {
		if leg.err != nil {
			return TermSet{}, leg.err
		}
		switch leg.category {
		case "conditions":
			set.Conditions = leg.terms
		case "procedures":
			set.Procedures = leg.terms
		case "visit-reasons":
			set.VisitReasons = leg.terms
		}
	}
	return set, nil
}

func (c *Client) fetchCategory(ctx context.Context, category, specialty string) ([]string, error) {
	params := url.Values{"specialty": {specialty}}
	endpoint := c.Config.BaseURL + "/v1/" + category + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &source.SourceError{Source: lookupSource, Op: category, Err: err}
	}
	req.Header.Set("User-Agent", c.Config.UserAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &source.SourceError{Source: lookupSource, Op: category, Err: fmt.Errorf("terms request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &source.SourceError{Source: lookupSource, Op: category, Err: fmt.Errorf("terms endpoint returned HTTP %d", resp.StatusCode)}
	}

	var tr struct {
		Terms []string `json:"terms"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, &source.SourceError{Source: lookupSource, Op: category, Err: fmt.Errorf("parsing terms response: %w", err)}
	}
	return tr.Terms, nil
}
