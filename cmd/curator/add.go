// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/profile-curator/internal/intake"
)

var addCmd = &cobra.Command{
	Use:   "add [identifiers...]",
	Short: "Add records to the collection by identifier",
	Long: `Add resolves identifiers (PMIDs, NCT numbers, or article URLs) directly
into the collection, bypassing discovery. Added entries are visible
immediately. Adding an identifier already in the collection fails with an
explicit duplicate error.`,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().String("source", "", "catalog the identifiers belong to: pubmed, trials, or media")
	addCmd.Flags().String("profile-dir", "", "collection directory (default: profile)")

	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more identifiers (PMIDs, NCT numbers, or URLs)")
	}

	sourceName, _ := cmd.Flags().GetString("source")
	kind, err := parseKind(sourceName)
	if err != nil {
		return err
	}
	adapter, err := newAdapter(kind, 0)
	if err != nil {
		return err
	}

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	resolver := &intake.Resolver{Adapter: adapter, Store: store}
	result := resolver.AddBatch(context.Background(), args, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d identifier(s) failed to resolve", result.Failed)
	}
	return nil
}
