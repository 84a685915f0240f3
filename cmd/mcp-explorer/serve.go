package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mcp-explorer/internal/cache"
	"github.com/pdiddy/mcp-explorer/internal/discover"
	"github.com/pdiddy/mcp-explorer/internal/library"
	"github.com/pdiddy/mcp-explorer/internal/server"
	"github.com/pdiddy/mcp-explorer/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the library and discovery pipeline over HTTP",
	Long: `Serve starts the JSON API: library browsing and management, live
discovery search, CSV export, share links, and agent simulation.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8000", "listen address")
	serveCmd.Flags().Duration("request-timeout", 60*time.Second, "per-request timeout")
	serveCmd.Flags().Bool("seed", false, "populate the library with built-in sample MCPs first")
	serveCmd.Flags().Duration("request-delay", time.Second, "delay between outbound requests per platform")
	serveCmd.Flags().String("github-token", "", "GitHub API token (default: .secrets/github-token)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	dataDir, _ := rootCmd.PersistentFlags().GetString("data-dir")

	lib, err := library.New(types.LibraryConfig{Dir: dataDir})
	if err != nil {
		return err
	}
	defer lib.Close()

	if seed, _ := cmd.Flags().GetBool("seed"); seed {
		n, err := lib.Seed(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Seeded %d sample MCPs\n", n)
	}

	cacheStore, err := cache.New(types.CacheConfig{Dir: dataDir})
	if err != nil {
		return err
	}
	defer cacheStore.Close()

	delay, _ := cmd.Flags().GetDuration("request-delay")
	token, _ := cmd.Flags().GetString("github-token")
	agg := discover.New(types.DiscoveryConfig{
		RequestDelay:      delay,
		EnableGitHub:      true,
		EnableHuggingFace: true,
		EnableAwesome:     true,
		EnableWeb:         true,
		GitHubToken:       secretDefault("github-token", token),
		HuggingFaceToken:  secretDefault("huggingface-token", ""),
	}, cacheStore)

	addr, _ := cmd.Flags().GetString("addr")
	timeout, _ := cmd.Flags().GetDuration("request-timeout")
	srv := server.New(types.ServerConfig{Addr: addr, RequestTimeout: timeout}, lib, agg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(ctx)
}
