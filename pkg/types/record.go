// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the profile-curator pipeline.
package types

import (
	"fmt"
	"strings"
	"time"
)

// SourceKind identifies one of the external catalogs the pipeline can query.
type SourceKind string

const (
	SourcePubMed SourceKind = "pubmed"
	SourceTrials SourceKind = "trials"
	SourceMedia  SourceKind = "media"
)

// LifecycleState tracks where a curated entry sits in the review flow.
// Pending entries exist only inside a DiscoveryResult; approved and manual
// entries persist in the collection. Rejected candidates are never retained.
type LifecycleState string

const (
	StatePending  LifecycleState = "pending"
	StateApproved LifecycleState = "approved"
	StateManual   LifecycleState = "manual"
	StateRejected LifecycleState = "rejected"
)

// TrialRole describes the provider's role on a clinical trial. Only
// meaningful for trial entries.
type TrialRole string

const (
	RoleNone                  TrialRole = ""
	RolePrincipalInvestigator TrialRole = "principal_investigator"
	RoleSubInvestigator       TrialRole = "sub_investigator"
	RoleStudyChair            TrialRole = "study_chair"
)

// FreeText holds the unstructured portion of a canonical record.
type FreeText struct {
	// Summary is the abstract or article summary. May be empty when the
	// record came through a low-fidelity retrieval path.
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`

	// Keywords lists source-provided keywords or conditions in source order.
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// CanonicalRecord is the normalized, source-agnostic representation of one
// external item: a publication, a clinical trial, or a piece of press
// coverage.
type CanonicalRecord struct {
	// Source identifies the catalog the record came from.
	Source SourceKind `json:"source" yaml:"source"`

	// ExternalID is the source-assigned identifier (PMID, NCT number, or
	// canonical URL). Stable and unique within its source.
	ExternalID string `json:"external_id" yaml:"external_id"`

	// Title is the record title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// SourceName is the journal, sponsor organization, or publication outlet.
	SourceName string `json:"source_name,omitempty" yaml:"source_name,omitempty"`

	// PublishedAt is the publication date at whatever precision the source
	// reported: year, year-month, or a full date.
	PublishedAt PartialDate `json:"published_at,omitempty" yaml:"published_at,omitempty"`

	// Classification is the source-specific category: publication type,
	// trial phase or status, or media category.
	Classification string `json:"classification,omitempty" yaml:"classification,omitempty"`

	// FreeText carries the summary and keyword list.
	FreeText FreeText `json:"free_text,omitempty" yaml:"free_text,omitempty"`

	// Locator is the canonical external URL for the record, when known.
	Locator string `json:"locator,omitempty" yaml:"locator,omitempty"`

	// Extra carries domain-specific extension fields (author list,
	// enrollment count, word count) opaque to the generic pipeline.
	Extra map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// CuratedEntry wraps a CanonicalRecord with curation metadata. An entry is
// exclusively owned by one profile's collection.
type CuratedEntry struct {
	Record CanonicalRecord `json:"record" yaml:"record"`

	// State is the lifecycle state: pending, approved, or manual.
	State LifecycleState `json:"state" yaml:"state"`

	// Visible controls whether the entry shows on the public profile.
	Visible bool `json:"visible" yaml:"visible"`

	// Featured marks a media entry as highlighted. Media entries only.
	Featured bool `json:"featured,omitempty" yaml:"featured,omitempty"`

	// Role is the provider's role on the trial. Trial entries only.
	Role TrialRole `json:"role,omitempty" yaml:"role,omitempty"`

	// AddedAt is set when the entry enters the collection and never changes.
	AddedAt time.Time `json:"added_at" yaml:"added_at"`

	// ModifiedAt updates on every visibility, featured, or role mutation.
	ModifiedAt time.Time `json:"modified_at" yaml:"modified_at"`
}

// PartialDate is a calendar date with optional month and day. Sources often
// report only a year or a year and month; the zero value of Month or Day
// means that component is absent. The zero PartialDate means no date at all.
type PartialDate struct {
	Year  int
	Month int
	Day   int
}

// IsZero reports whether no date component is set.
func (d PartialDate) IsZero() bool {
	return d.Year == 0
}

// String formats the date at its stored precision: "2023", "2023-05", or
// "2023-05-17". The zero value formats as the empty string.
func (d PartialDate) String() string {
	switch {
	case d.Year == 0:
		return ""
	case d.Month == 0:
		return fmt.Sprintf("%04d", d.Year)
	case d.Day == 0:
		return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
	default:
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	}
}

// ParsePartialDate parses "2023", "2023-05", or "2023-05-17". An empty
// string parses to the zero value.
func ParsePartialDate(s string) (PartialDate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PartialDate{}, nil
	}

	var d PartialDate
	parts := strings.SplitN(s, "-", 3)
	formats := []struct {
		dst    *int
		layout string
	}{
		{&d.Year, "2006"},
		{&d.Month, "01"},
		{&d.Day, "02"},
	}

	for i, p := range parts {
		t, err := time.Parse(formats[i].layout, p)
		if err != nil {
			return PartialDate{}, fmt.Errorf("invalid date %q: %w", s, err)
		}
		switch i {
		case 0:
			d.Year = t.Year()
		case 1:
			d.Month = int(t.Month())
		case 2:
			d.Day = t.Day()
		}
	}
	return d, nil
}

// MarshalJSON encodes the date as its precision-preserving string form.
func (d PartialDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a quoted partial-date string.
func (d *PartialDate) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		*d = PartialDate{}
		return nil
	}
	parsed, err := ParsePartialDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML encodes the date as its precision-preserving string form.
func (d PartialDate) MarshalYAML() (any, error) {
	return d.String(), nil
}

// UnmarshalYAML decodes a partial-date string.
func (d *PartialDate) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParsePartialDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
