// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query builds source-specific search strings from a provider's
// name and affiliation. This is the only package that knows each catalog's
// field-qualifier syntax.
package query

import (
	"fmt"
	"strings"

	"github.com/pdiddy/profile-curator/pkg/types"
)

// maxSuggestions caps the alternate-query list.
const maxSuggestions = 6

// Primary builds the search string for kind from a provider name and an
// optional affiliation. Deterministic, no I/O.
func Primary(kind types.SourceKind, name, affiliation string) string {
	name = strings.TrimSpace(name)
	affiliation = strings.TrimSpace(affiliation)

	switch kind {
	case types.SourcePubMed:
		q := name + "[Author]"
		if affiliation != "" {
			q += " AND " + affiliation + "[Affiliation]"
		}
		return q

	case types.SourceTrials:
		q := fmt.Sprintf("AREA[OverallOfficialName] %q", name)
		if affiliation != "" {
			q += fmt.Sprintf(" AND AREA[LocationFacility] %q", affiliation)
		}
		return q

	case types.SourceMedia:
		q := fmt.Sprintf("%q", name)
		if affiliation != "" {
			q += fmt.Sprintf(" %q", affiliation)
		}
		return q

	default:
		if affiliation != "" {
			return name + " " + affiliation
		}
		return name
	}
}

// Suggest returns up to six alternate free-text queries for a name and a
// list of known affiliations: the bare name, an exact-phrase variant, one
// query per affiliation, and a "Last F" compaction when the name has at
// least two tokens. Deterministic given the same inputs.
func Suggest(name string, affiliations []string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	var suggestions []string
	seen := make(map[string]bool)
	add := func(s string) {
		if s == "" || seen[s] || len(suggestions) >= maxSuggestions {
			return
		}
		seen[s] = true
		suggestions = append(suggestions, s)
	}

	add(name)
	add(fmt.Sprintf("%q", name))
	for _, aff := range affiliations {
		aff = strings.TrimSpace(aff)
		if aff == "" {
			continue
		}
		add(name + " " + aff)
	}
	add(compactName(name))

	return suggestions
}

// compactName returns "Last F" for a multi-token name, or "" when the name
// has fewer than two tokens.
func compactName(name string) string {
	tokens := strings.Fields(name)
	if len(tokens) < 2 {
		return ""
	}
	first := []rune(tokens[0])
	last := tokens[len(tokens)-1]
	return fmt.Sprintf("%s %c", last, first[0])
}
