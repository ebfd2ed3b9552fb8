// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package identifier validates and normalizes external record identifiers
// before any network round trip: PMIDs, NCT numbers, and article URLs.
package identifier

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/pdiddy/profile-curator/pkg/types"
)

// ID is a validated identifier in its normalized form.
type ID struct {
	Kind  types.SourceKind
	Value string
}

// InvalidFormatError reports a syntactically malformed identifier. Expected
// describes the canonical shape for user display.
type InvalidFormatError struct {
	Input    string
	Expected string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid identifier %q: expected %s", e.Input, e.Expected)
}

// pmidPattern matches PubMed identifiers: 1 to 8 digits.
var pmidPattern = regexp.MustCompile(`^\d{1,8}$`)

// nctPattern matches ClinicalTrials.gov numbers: "NCT" plus exactly 8 digits.
// The prefix is accepted in any case and normalized to upper.
var nctPattern = regexp.MustCompile(`^(?i:NCT)(\d{8})$`)

// Validate checks raw against the canonical identifier shape for kind and
// returns the normalized form. It is pure: malformed input yields an
// *InvalidFormatError, never a panic or a transport error.
func Validate(kind types.SourceKind, raw string) (ID, error) {
	trimmed := strings.TrimSpace(raw)

	switch kind {
	case types.SourcePubMed:
		if !pmidPattern.MatchString(trimmed) {
			return ID{}, &InvalidFormatError{Input: raw, Expected: "a numeric PubMed ID of up to 8 digits"}
		}
		return ID{Kind: kind, Value: trimmed}, nil

	case types.SourceTrials:
		m := nctPattern.FindStringSubmatch(trimmed)
		if m == nil {
			return ID{}, &InvalidFormatError{Input: raw, Expected: "a trial number of the form NCT followed by 8 digits"}
		}
		return ID{Kind: kind, Value: "NCT" + m[1]}, nil

	case types.SourceMedia:
		normalized, err := normalizeURL(trimmed)
		if err != nil {
			return ID{}, &InvalidFormatError{Input: raw, Expected: "an absolute article URL"}
		}
		return ID{Kind: kind, Value: normalized}, nil

	default:
		return ID{}, &InvalidFormatError{Input: raw, Expected: fmt.Sprintf("an identifier for a known source, not %q", kind)}
	}
}

// normalizeURL parses raw as an absolute http(s) URL, inserting the https
// scheme when the user omitted it.
func normalizeURL(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("empty URL")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" || !strings.Contains(u.Host, ".") {
		return "", fmt.Errorf("missing host")
	}
	return u.String(), nil
}
