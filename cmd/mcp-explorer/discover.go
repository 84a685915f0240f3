package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/mcp-explorer/internal/cache"
	"github.com/pdiddy/mcp-explorer/internal/discover"
	"github.com/pdiddy/mcp-explorer/internal/library"
	"github.com/pdiddy/mcp-explorer/pkg/types"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Scrape source platforms for MCP descriptor files",
	Long: `Discover queries GitHub code search, the Hugging Face Hub, curated MCP
lists, and general web search for descriptor files matching a query.
Candidates are parsed, classified, scored, validated against the shape
contract, deduplicated across platforms, and ranked by confidence.`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().String("query", "", "free-text search query (required)")
	discoverCmd.Flags().Int("max-results", 20, "maximum number of results to return")
	discoverCmd.Flags().String("sources", "github,huggingface,awesome,web", "comma-separated source platforms")
	discoverCmd.Flags().Float64("min-confidence", 0, "drop results scoring below this confidence")
	discoverCmd.Flags().Duration("request-delay", time.Second, "delay between requests to the same platform")
	discoverCmd.Flags().Bool("relevance", false, "re-rank results by query relevance instead of raw confidence")
	discoverCmd.Flags().Bool("no-cache", false, "bypass the result cache")
	discoverCmd.Flags().Bool("save", false, "import results into the local library")
	discoverCmd.Flags().Bool("json", false, "output results as JSON")
	discoverCmd.Flags().String("github-token", "", "GitHub API token (default: .secrets/github-token)")
	discoverCmd.Flags().String("huggingface-token", "", "Hugging Face hub token (default: .secrets/huggingface-token)")

	rootCmd.AddCommand(discoverCmd)
}

func discoveryConfig(cmd *cobra.Command) (types.DiscoveryConfig, error) {
	raw, _ := cmd.Flags().GetString("sources")
	enabled := make(map[string]bool)
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(strings.ToLower(s))
		if s == "" {
			continue
		}
		switch s {
		case "github", "huggingface", "awesome", "web":
			enabled[s] = true
		default:
			return types.DiscoveryConfig{}, fmt.Errorf("unknown source %q", s)
		}
	}
	if len(enabled) == 0 {
		return types.DiscoveryConfig{}, fmt.Errorf("no sources selected")
	}

	maxResults, _ := cmd.Flags().GetInt("max-results")
	minConfidence, _ := cmd.Flags().GetFloat64("min-confidence")
	delay, _ := cmd.Flags().GetDuration("request-delay")
	relevance, _ := cmd.Flags().GetBool("relevance")
	ghToken, _ := cmd.Flags().GetString("github-token")
	hfToken, _ := cmd.Flags().GetString("huggingface-token")

	return types.DiscoveryConfig{
		HTTPConfig:        types.HTTPConfig{UserAgent: viper.GetString("user_agent")},
		MaxResults:        maxResults,
		RequestDelay:      delay,
		MinConfidence:     minConfidence,
		EnableGitHub:      enabled["github"],
		EnableHuggingFace: enabled["huggingface"],
		EnableAwesome:     enabled["awesome"],
		EnableWeb:         enabled["web"],
		GitHubToken:       secretDefault("github-token", ghToken),
		HuggingFaceToken:  secretDefault("huggingface-token", hfToken),
		RelevanceRank:     relevance,
	}, nil
}

func runDiscover(cmd *cobra.Command, args []string) error {
	query, _ := cmd.Flags().GetString("query")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("--query is required")
	}

	cfg, err := discoveryConfig(cmd)
	if err != nil {
		return err
	}

	dataDir, _ := rootCmd.PersistentFlags().GetString("data-dir")
	var store *cache.Store
	if noCache, _ := cmd.Flags().GetBool("no-cache"); !noCache {
		store, err = cache.New(types.CacheConfig{Dir: dataDir})
		if err != nil {
			return err
		}
		defer store.Close()
	}

	agg := discover.New(cfg, store)
	results, err := agg.Search(cmd.Context(), query, cfg.MaxResults)
	if err != nil {
		return err
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		lib, err := library.New(types.LibraryConfig{Dir: dataDir})
		if err != nil {
			return err
		}
		defer lib.Close()
		imported, err := lib.ImportResults(cmd.Context(), results)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Imported %d new entries into the library\n", imported)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No MCPs found.")
		return nil
	}
	for i, r := range results {
		validated := " "
		if r.Validated {
			validated = "✓"
		}
		fmt.Printf("%2d. [%s] %.2f %-30s %s\n", i+1, validated, r.ConfidenceScore, r.Name, r.SourceURL)
		if r.Description != "" {
			fmt.Printf("      %s\n", r.Description)
		}
	}
	return nil
}
