// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/profile-curator/internal/discover"
	"github.com/pdiddy/profile-curator/internal/normalize"
	"github.com/pdiddy/profile-curator/pkg/types"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Search an external catalog for a provider's records",
	Long: `Discover searches one catalog (pubmed, trials, or media) for records
matching a provider's name and optional affiliation. Candidates are shown in
source order and can be saved to a session file for later promotion. A fresh
search fully replaces any earlier session; nothing is persisted until
candidates are promoted.`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().String("source", "", "catalog to search: pubmed, trials, or media")
	discoverCmd.Flags().String("name", "", "provider name")
	discoverCmd.Flags().String("affiliation", "", "provider affiliation to narrow the search")
	discoverCmd.Flags().Int("max-results", defaultMaxResults, "maximum number of candidates")
	discoverCmd.Flags().Bool("json", false, "output the discovery result as JSON")
	discoverCmd.Flags().String("save", "", "write the discovery session to a YAML file")

	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	sourceName, _ := cmd.Flags().GetString("source")
	name, _ := cmd.Flags().GetString("name")
	affiliation, _ := cmd.Flags().GetString("affiliation")
	maxResults, _ := cmd.Flags().GetInt("max-results")

	if name == "" {
		return fmt.Errorf("provide a provider name with --name")
	}
	kind, err := parseKind(sourceName)
	if err != nil {
		return err
	}
	adapter, err := newAdapter(kind, maxResults)
	if err != nil {
		return err
	}

	session := &discover.Session{Adapter: adapter, MaxResults: maxResults}
	result, err := session.Discover(context.Background(), name, affiliation, os.Stderr)
	if err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("save"); path != "" {
		if err := discover.WriteSessionFile(path, kind, name, affiliation, result); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Session saved to %s\n", path)
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	formatDiscoveryTable(result, os.Stdout)
	return nil
}

func formatDiscoveryTable(result types.DiscoveryResult, w io.Writer) {
	if len(result.Candidates) == 0 {
		fmt.Fprintln(w, "No candidates found.")
		if len(result.SuggestedQueries) > 0 {
			fmt.Fprintln(w, "\nTry one of these queries:")
			for _, q := range result.SuggestedQueries {
				fmt.Fprintf(w, "  %s\n", q)
			}
		}
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-24s  %-10s  %s\n",
		"Rank", "Title", "By/From", "Date", "ID")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for i, c := range result.Candidates {
		title := c.Record.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		by := byline(c.Record)
		if len(by) > 24 {
			by = by[:21] + "..."
		}
		fmt.Fprintf(w, "%-4d  %-60s  %-24s  %-10s  %s\n",
			i+1, title, by, c.Record.PublishedAt.String(), c.Record.ExternalID)
	}

	fmt.Fprintf(w, "\n%d candidates", len(result.Candidates))
	if result.TotalFound > len(result.Candidates) {
		fmt.Fprintf(w, " of %d total", result.TotalFound)
	}
	fmt.Fprintln(w)
}

// byline prefers the author list, falling back to the journal, sponsor, or
// outlet name.
func byline(rec types.CanonicalRecord) string {
	if names := rec.Extra["authors"]; names != "" {
		return normalize.FormatAuthors(strings.Split(names, ", "))
	}
	return rec.SourceName
}
