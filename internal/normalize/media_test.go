package normalize

import (
	"testing"

	"github.com/pdiddy/profile-curator/internal/source"
)

func TestNormalizeMediaArticle(t *testing.T) {
	doc := `{
		"url": "https://news.example.com/2024/05/heart-surgery-breakthrough",
		"title": "Local Surgeon Pioneers New Technique",
		"outlet": "Example Tribune",
		"author": "Pat Reporter",
		"category": "Health",
		"published_at": "2024-05-10",
		"summary": "A profile of the technique.",
		"tags": ["surgery", "innovation"],
		"word_count": 1200
	}`

	rec, err := Normalize(source.RawRecord{Kind: source.RawMediaArticle, Data: []byte(doc)})
	if err != nil {
		t.Fatalf("Normalize() err = %v", err)
	}

	if rec.ExternalID != "https://news.example.com/2024/05/heart-surgery-breakthrough" {
		t.Errorf("ExternalID = %q", rec.ExternalID)
	}
	if rec.ExternalID != rec.Locator {
		t.Errorf("Locator = %q, want same as ExternalID", rec.Locator)
	}
	if rec.SourceName != "Example Tribune" {
		t.Errorf("SourceName = %q", rec.SourceName)
	}
	if got := rec.PublishedAt.String(); got != "2024-05-10" {
		t.Errorf("PublishedAt = %q", got)
	}
	if rec.Classification != "Health" {
		t.Errorf("Classification = %q", rec.Classification)
	}
	if rec.Extra["author"] != "Pat Reporter" || rec.Extra["word_count"] != "1200" {
		t.Errorf("Extra = %v", rec.Extra)
	}
}

func TestNormalizeMediaArticleSparse(t *testing.T) {
	doc := `{"url": "https://news.example.com/story", "title": "T"}`
	rec, err := Normalize(source.RawRecord{Kind: source.RawMediaArticle, Data: []byte(doc)})
	if err != nil {
		t.Fatalf("Normalize() err = %v", err)
	}
	if rec.FreeText.Summary != "" || len(rec.FreeText.Keywords) != 0 || rec.Extra != nil {
		t.Errorf("sparse article should keep empty defaults: %+v", rec)
	}
	if !rec.PublishedAt.IsZero() {
		t.Errorf("PublishedAt = %v, want zero", rec.PublishedAt)
	}
}

func TestNormalizeMediaArticleMissingURL(t *testing.T) {
	doc := `{"title": "T"}`
	if _, err := Normalize(source.RawRecord{Kind: source.RawMediaArticle, Data: []byte(doc)}); err == nil {
		t.Fatal("article without a URL was not rejected")
	}
}

func TestNormalizeMediaArticleMalformed(t *testing.T) {
	if _, err := Normalize(source.RawRecord{Kind: source.RawMediaArticle, Data: []byte("not json")}); err == nil {
		t.Fatal("malformed payload was not rejected")
	}
}
