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

	"github.com/pdiddy/profile-curator/pkg/types"
)

var collectionCmd = &cobra.Command{
	Use:   "collection",
	Short: "Manage the curated collection (list, counts, flags, export)",
	Long: `Collection manages the durable collection in the profile directory. Use
subcommands to list entries, tally visibility and feature flags, toggle
per-entry flags, remove entries, or export.`,
}

// --- list subcommand ---

var collectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List collection entries in display order",
	RunE:  runCollectionList,
}

func runCollectionList(cmd *cobra.Command, args []string) error {
	kind, err := optionalKind(cmd)
	if err != nil {
		return err
	}

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.All(context.Background(), kind)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	formatCollectionTable(entries, os.Stdout)
	return nil
}

func formatCollectionTable(entries []types.CuratedEntry, w io.Writer) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "Collection is empty.")
		return
	}

	fmt.Fprintf(w, "%-8s  %-50s  %-8s  %-7s  %-8s  %s\n",
		"Source", "Title", "State", "Visible", "Featured", "ID")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for _, e := range entries {
		title := e.Record.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		fmt.Fprintf(w, "%-8s  %-50s  %-8s  %-7t  %-8t  %s\n",
			e.Record.Source, title, e.State, e.Visible, e.Featured, e.Record.ExternalID)
	}

	fmt.Fprintf(w, "\n%d entries\n", len(entries))
}

// --- counts subcommand ---

var collectionCountsCmd = &cobra.Command{
	Use:   "counts",
	Short: "Tally entries by visibility and feature flags",
	RunE:  runCollectionCounts,
}

func runCollectionCounts(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	vis, err := store.CountByVisibility(ctx)
	if err != nil {
		return err
	}
	feat, err := store.CountByFeatured(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "visible: %d, hidden: %d\n", vis.Visible, vis.Hidden)
	fmt.Fprintf(os.Stdout, "featured media: %d, plain media: %d\n", feat.Featured, feat.Plain)
	return nil
}

// --- visibility subcommand ---

var collectionVisibilityCmd = &cobra.Command{
	Use:   "visibility <source> <external-id> <on|off>",
	Short: "Show or hide an entry on the public profile",
	Args:  cobra.ExactArgs(3),
	RunE:  runCollectionVisibility,
}

func runCollectionVisibility(cmd *cobra.Command, args []string) error {
	kind, err := parseKind(args[0])
	if err != nil {
		return err
	}
	visible, err := parseToggle(args[2])
	if err != nil {
		return err
	}

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.SetVisibility(context.Background(), kind, args[1], visible)
}

// --- feature subcommand ---

var collectionFeatureCmd = &cobra.Command{
	Use:   "feature <external-id> <on|off>",
	Short: "Highlight a media entry",
	Args:  cobra.ExactArgs(2),
	RunE:  runCollectionFeature,
}

func runCollectionFeature(cmd *cobra.Command, args []string) error {
	featured, err := parseToggle(args[1])
	if err != nil {
		return err
	}

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.SetFeatured(context.Background(), types.SourceMedia, args[0], featured)
}

// --- role subcommand ---

var collectionRoleCmd = &cobra.Command{
	Use:   "role <nct-number> <role>",
	Short: "Record the provider's role on a trial",
	Long: `Role records the provider's role on a clinical trial entry:
principal_investigator, sub_investigator, or study_chair.`,
	Args: cobra.ExactArgs(2),
	RunE: runCollectionRole,
}

func runCollectionRole(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.SetRole(context.Background(), types.SourceTrials, args[0], types.TrialRole(args[1]))
}

// --- remove subcommand ---

var collectionRemoveCmd = &cobra.Command{
	Use:   "remove <source> <external-id>",
	Short: "Delete an entry from the collection",
	Long: `Remove hard-deletes an entry. There is no undo; confirm before running.
Removing an entry that is not in the collection does nothing.`,
	Args: cobra.ExactArgs(2),
	RunE: runCollectionRemove,
}

func runCollectionRemove(cmd *cobra.Command, args []string) error {
	kind, err := parseKind(args[0])
	if err != nil {
		return err
	}

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Remove(context.Background(), kind, args[1])
}

// --- export subcommand ---

var collectionExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the collection to YAML or JSON",
	RunE:  runCollectionExport,
}

func runCollectionExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")
	kind, err := optionalKind(cmd)
	if err != nil {
		return err
	}

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	switch format {
	case "yaml", "":
		if out == "" {
			out = "collection.yaml"
		}
		if err := store.ExportYAML(ctx, kind, out); err != nil {
			return err
		}
	case "json":
		if out == "" {
			out = "collection.json"
		}
		if err := store.ExportJSON(ctx, kind, out); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	fmt.Fprintf(os.Stdout, "Exported to %s\n", out)
	return nil
}

// --- shared helpers ---

// optionalKind reads --source, allowing it to be unset.
func optionalKind(cmd *cobra.Command) (types.SourceKind, error) {
	sourceName, _ := cmd.Flags().GetString("source")
	if sourceName == "" {
		return "", nil
	}
	return parseKind(sourceName)
}

func parseToggle(s string) (bool, error) {
	switch s {
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("expected on or off, got %q", s)
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	collectionCmd.PersistentFlags().String("profile-dir", "", "collection directory (default: profile)")

	collectionListCmd.Flags().String("source", "", "filter by source: pubmed, trials, or media")
	collectionListCmd.Flags().Bool("json", false, "output entries as JSON")

	collectionExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	collectionExportCmd.Flags().String("out", "", "output path (default: collection.yaml or collection.json)")
	collectionExportCmd.Flags().String("source", "", "filter by source: pubmed, trials, or media")

	collectionCmd.AddCommand(collectionListCmd)
	collectionCmd.AddCommand(collectionCountsCmd)
	collectionCmd.AddCommand(collectionVisibilityCmd)
	collectionCmd.AddCommand(collectionFeatureCmd)
	collectionCmd.AddCommand(collectionRoleCmd)
	collectionCmd.AddCommand(collectionRemoveCmd)
	collectionCmd.AddCommand(collectionExportCmd)

	rootCmd.AddCommand(collectionCmd)
}
