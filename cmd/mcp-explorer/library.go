package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mcp-explorer/internal/library"
	"github.com/pdiddy/mcp-explorer/pkg/types"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Browse and manage the local MCP library",
	Long: `Library lists, searches, seeds, and exports the stored MCP entries.
Without flags it lists everything ordered by popularity.`,
	RunE: runLibrary,
}

func init() {
	libraryCmd.Flags().String("query", "", "full-text search over names, descriptions, and tags")
	libraryCmd.Flags().String("domain", "", "filter by domain")
	libraryCmd.Flags().String("platform", "", "filter by source platform")
	libraryCmd.Flags().String("sort", "popularity", "sort order: popularity, confidence, name, created")
	libraryCmd.Flags().Int("max-results", 0, "maximum number of entries to show (0 = all)")
	libraryCmd.Flags().String("delete", "", "delete the entry with this id")
	libraryCmd.Flags().Bool("seed", false, "populate the library with built-in sample MCPs")
	libraryCmd.Flags().Bool("export", false, "write the library as CSV to stdout")
	libraryCmd.Flags().Bool("json", false, "output entries as JSON")

	rootCmd.AddCommand(libraryCmd)
}

func runLibrary(cmd *cobra.Command, args []string) error {
	dataDir, _ := rootCmd.PersistentFlags().GetString("data-dir")
	lib, err := library.New(types.LibraryConfig{Dir: dataDir})
	if err != nil {
		return err
	}
	defer lib.Close()

	ctx := cmd.Context()

	if id, _ := cmd.Flags().GetString("delete"); id != "" {
		if err := lib.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Deleted %s\n", id)
		return nil
	}

	if seed, _ := cmd.Flags().GetBool("seed"); seed {
		n, err := lib.Seed(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Seeded %d sample MCPs\n", n)
		return nil
	}

	if export, _ := cmd.Flags().GetBool("export"); export {
		return lib.ExportCSV(ctx, os.Stdout)
	}

	limit, _ := cmd.Flags().GetInt("max-results")
	var entries []types.Entry
	if query, _ := cmd.Flags().GetString("query"); query != "" {
		entries, err = lib.Search(ctx, query, limit)
	} else {
		domain, _ := cmd.Flags().GetString("domain")
		platform, _ := cmd.Flags().GetString("platform")
		sortBy, _ := cmd.Flags().GetString("sort")
		entries, err = lib.List(ctx, library.ListOptions{
			Domain:   domain,
			Platform: platform,
			SortBy:   sortBy,
			Limit:    limit,
		})
	}
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("Library is empty.")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%-16s %-28s %-14s pop=%-4d conf=%.2f %s\n",
			e.ID, e.Name, e.Domain, e.Popularity, e.ConfidenceScore, e.SourcePlatform)
	}
	return nil
}
