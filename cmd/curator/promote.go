// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/profile-curator/internal/discover"
	"github.com/pdiddy/profile-curator/pkg/types"
)

var promoteCmd = &cobra.Command{
	Use:   "promote [external-ids...]",
	Short: "Promote discovered candidates into the collection",
	Long: `Promote moves candidates from a saved discovery session into the durable
collection as approved entries. Name the external ids to promote, or pass
--all for the whole session. Candidates already in the collection are
skipped silently.`,
	RunE: runPromote,
}

func init() {
	promoteCmd.Flags().String("session", "", "discovery session file written by discover --save")
	promoteCmd.Flags().Bool("all", false, "promote every candidate in the session")
	promoteCmd.Flags().String("profile-dir", "", "collection directory (default: profile)")

	rootCmd.AddCommand(promoteCmd)
}

func runPromote(cmd *cobra.Command, args []string) error {
	sessionPath, _ := cmd.Flags().GetString("session")
	all, _ := cmd.Flags().GetBool("all")

	if sessionPath == "" {
		return fmt.Errorf("provide a session file with --session")
	}
	if !all && len(args) == 0 {
		return fmt.Errorf("name the external ids to promote, or pass --all")
	}

	sf, err := discover.ReadSessionFile(sessionPath)
	if err != nil {
		return err
	}

	selected, err := selectCandidates(sf.Result.Candidates, args, all)
	if err != nil {
		return err
	}

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Promote(context.Background(), selected)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Promoted %d, skipped %d already in the collection\n",
		summary.Added, summary.Skipped)
	return nil
}

// selectCandidates picks session candidates by external id, or all of them.
// Naming an id the session does not contain is an error.
func selectCandidates(candidates []types.CuratedEntry, ids []string, all bool) ([]types.CuratedEntry, error) {
	if all {
		return candidates, nil
	}

	byID := make(map[string]types.CuratedEntry, len(candidates))
	for _, c := range candidates {
		byID[c.Record.ExternalID] = c
	}

	selected := make([]types.CuratedEntry, 0, len(ids))
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("session has no candidate with id %q", id)
		}
		selected = append(selected, c)
	}
	return selected, nil
}
