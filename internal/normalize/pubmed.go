// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/profile-curator/pkg/types"
)

// PubmedArticle XML structures, the EFetch (high-fidelity) shape.
type pubmedArticle struct {
	Citation struct {
		PMID    string `xml:"PMID"`
		Article struct {
			Title    string `xml:"ArticleTitle"`
			Abstract struct {
				Text []string `xml:"AbstractText"`
			} `xml:"Abstract"`
			Journal struct {
				Title string `xml:"Title"`
				Issue struct {
					PubDate struct {
						Year  string `xml:"Year"`
						Month string `xml:"Month"`
						Day   string `xml:"Day"`
					} `xml:"PubDate"`
				} `xml:"JournalIssue"`
			} `xml:"Journal"`
			Authors []struct {
				LastName   string `xml:"LastName"`
				ForeName   string `xml:"ForeName"`
				Collective string `xml:"CollectiveName"`
			} `xml:"AuthorList>Author"`
			PubTypes []string `xml:"PublicationTypeList>PublicationType"`
		} `xml:"Article"`
		Keywords []string `xml:"KeywordList>Keyword"`
	} `xml:"MedlineCitation"`
}

func normalizePubMedArticle(data []byte) (types.CanonicalRecord, error) {
	var a pubmedArticle
	if err := xml.Unmarshal(data, &a); err != nil {
		return types.CanonicalRecord{}, fmt.Errorf("parsing PubmedArticle: %w", err)
	}

	c := a.Citation
	rec := types.CanonicalRecord{
		Source:         types.SourcePubMed,
		ExternalID:     strings.TrimSpace(c.PMID),
		Title:          strings.TrimSpace(c.Article.Title),
		SourceName:     strings.TrimSpace(c.Article.Journal.Title),
		PublishedAt:    pubmedDate(c.Article.Journal.Issue.PubDate.Year, c.Article.Journal.Issue.PubDate.Month, c.Article.Journal.Issue.PubDate.Day),
		Classification: first(c.Article.PubTypes),
		FreeText: types.FreeText{
			Summary:  strings.TrimSpace(strings.Join(c.Article.Abstract.Text, " ")),
			Keywords: trimAll(c.Keywords),
		},
	}

	var authors []string
	for _, au := range c.Article.Authors {
		name := strings.TrimSpace(au.ForeName + " " + au.LastName)
		if name == "" {
			name = strings.TrimSpace(au.Collective)
		}
		if name != "" {
			authors = append(authors, name)
		}
	}
	if len(authors) > 0 {
		rec.Extra = map[string]string{"authors": strings.Join(authors, ", ")}
	}

	if rec.ExternalID != "" {
		rec.Locator = "https://pubmed.ncbi.nlm.nih.gov/" + rec.ExternalID + "/"
	}
	return validate(rec)
}

// pubmedSummary is the ESummary (low-fidelity) shape. It carries no
// abstract; that degradation is expected.
type pubmedSummary struct {
	UID         string `json:"uid"`
	Title       string `json:"title"`
	FullJournal string `json:"fulljournalname"`
	Source      string `json:"source"`
	PubDate     string `json:"pubdate"`
	Authors     []struct {
		Name string `json:"name"`
	} `json:"authors"`
	PubTypes []string `json:"pubtype"`
}

func normalizePubMedSummary(data []byte) (types.CanonicalRecord, error) {
	var s pubmedSummary
	if err := json.Unmarshal(data, &s); err != nil {
		return types.CanonicalRecord{}, fmt.Errorf("parsing document summary: %w", err)
	}

	journal := s.FullJournal
	if journal == "" {
		journal = s.Source
	}

	rec := types.CanonicalRecord{
		Source:         types.SourcePubMed,
		ExternalID:     strings.TrimSpace(s.UID),
		Title:          strings.TrimSpace(s.Title),
		SourceName:     strings.TrimSpace(journal),
		PublishedAt:    loosePubDate(s.PubDate),
		Classification: first(s.PubTypes),
	}

	var authors []string
	for _, au := range s.Authors {
		if n := strings.TrimSpace(au.Name); n != "" {
			authors = append(authors, n)
		}
	}
	if len(authors) > 0 {
		rec.Extra = map[string]string{"authors": strings.Join(authors, ", ")}
	}

	if rec.ExternalID != "" {
		rec.Locator = "https://pubmed.ncbi.nlm.nih.gov/" + rec.ExternalID + "/"
	}
	return validate(rec)
}

// monthNumbers maps PubMed month tokens to their number. PubMed emits
// either English abbreviations or zero-padded digits.
var monthNumbers = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

func monthNumber(token string) int {
	token = strings.ToLower(strings.TrimSpace(token))
	if n, ok := monthNumbers[token]; ok {
		return n
	}
	if n, err := strconv.Atoi(token); err == nil && n >= 1 && n <= 12 {
		return n
	}
	return 0
}

// pubmedDate builds a partial date from the PubDate element, keeping only
// the precision the source gave.
func pubmedDate(year, month, day string) types.PartialDate {
	var d types.PartialDate
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil || y == 0 {
		return types.PartialDate{}
	}
	d.Year = y

	d.Month = monthNumber(month)
	if d.Month == 0 {
		return d
	}

	if n, err := strconv.Atoi(strings.TrimSpace(day)); err == nil && n >= 1 && n <= 31 {
		d.Day = n
	}
	return d
}

// loosePubDate parses ESummary's "2023 May 17" / "2023 May" / "2023" form.
func loosePubDate(s string) types.PartialDate {
	fields := strings.Fields(s)
	switch len(fields) {
	case 0:
		return types.PartialDate{}
	case 1:
		return pubmedDate(fields[0], "", "")
	case 2:
		return pubmedDate(fields[0], fields[1], "")
	default:
		return pubmedDate(fields[0], fields[1], fields[2])
	}
}

func first(ss []string) string {
	if len(ss) == 0 {
		return ""
	}
	return strings.TrimSpace(ss[0])
}

func trimAll(ss []string) []string {
	var out []string
	for _, s := range ss {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
