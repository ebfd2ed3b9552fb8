// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/profile-curator/pkg/types"
)

// mediaArticle captures the newsroom catalog article fields we map.
type mediaArticle struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Outlet      string   `json:"outlet"`
	Author      string   `json:"author"`
	Category    string   `json:"category"`
	PublishedAt string   `json:"published_at"`
	Summary     string   `json:"summary"`
	Tags        []string `json:"tags"`
	WordCount   int      `json:"word_count"`
}

func normalizeMediaArticle(data []byte) (types.CanonicalRecord, error) {
	var a mediaArticle
	if err := json.Unmarshal(data, &a); err != nil {
		return types.CanonicalRecord{}, fmt.Errorf("parsing article: %w", err)
	}

	published, _ := types.ParsePartialDate(a.PublishedAt)

	rec := types.CanonicalRecord{
		Source:         types.SourceMedia,
		ExternalID:     strings.TrimSpace(a.URL),
		Title:          strings.TrimSpace(a.Title),
		SourceName:     strings.TrimSpace(a.Outlet),
		PublishedAt:    published,
		Classification: strings.TrimSpace(a.Category),
		FreeText: types.FreeText{
			Summary:  strings.TrimSpace(a.Summary),
			Keywords: trimAll(a.Tags),
		},
		Locator: strings.TrimSpace(a.URL),
	}

	extra := make(map[string]string)
	if au := strings.TrimSpace(a.Author); au != "" {
		extra["author"] = au
	}
	if a.WordCount > 0 {
		extra["word_count"] = strconv.Itoa(a.WordCount)
	}
	if len(extra) > 0 {
		rec.Extra = extra
	}

	return validate(rec)
}
