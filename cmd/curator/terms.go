// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/profile-curator/internal/lookup"
	"github.com/pdiddy/profile-curator/pkg/types"
)

var termsCmd = &cobra.Command{
	Use:   "terms <specialty>",
	Short: "Fetch expertise term lists for a specialty",
	Long: `Terms fetches the condition, procedure, and visit-reason vocabularies for
a specialty from the terminology service. The three lists are fetched in
parallel.`,
	Args: cobra.ExactArgs(1),
	RunE: runTerms,
}

func init() {
	termsCmd.Flags().Bool("json", false, "output the term set as JSON")

	rootCmd.AddCommand(termsCmd)
}

func runTerms(cmd *cobra.Command, args []string) error {
	hc := httpConfig()
	client := &lookup.Client{
		HTTP: &http.Client{Timeout: hc.Timeout},
		Config: types.LookupConfig{
			HTTPConfig: hc,
			BaseURL:    viper.GetString("lookup.base_url"),
		},
	}

	set, err := client.Terms(context.Background(), args[0])
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(set)
	}

	printTermList("Conditions", set.Conditions)
	printTermList("Procedures", set.Procedures)
	printTermList("Visit reasons", set.VisitReasons)
	return nil
}

func printTermList(label string, terms []string) {
	fmt.Fprintf(os.Stdout, "%s (%d):\n", label, len(terms))
	for _, t := range terms {
		fmt.Fprintf(os.Stdout, "  %s\n", t)
	}
}
