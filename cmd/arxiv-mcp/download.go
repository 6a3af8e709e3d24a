// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-mcp/internal/arxiv"
	"github.com/pdiddy/arxiv-mcp/internal/download"
	"github.com/pdiddy/arxiv-mcp/internal/history"
	"github.com/pdiddy/arxiv-mcp/pkg/types"
)

var downloadCmd = &cobra.Command{
	Use:   "download [arxiv-ids...]",
	Short: "Download paper PDFs by arXiv ID",
	Long: `Download fetches paper PDFs into the organized download tree
(<dir>/<YYYY-MM>/<category>/<id>_<title>.pdf). Papers already on disk are
skipped. Multiple IDs are downloaded sequentially with rate limiting.`,
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().String("dir", "", "download base directory (overrides config)")
	downloadCmd.Flags().Duration("delay", 0, "minimum delay between downloads (overrides config)")

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more arXiv IDs")
	}

	cfg := downloadConfig()
	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		cfg.BaseDir = dir
	}
	if delay, _ := cmd.Flags().GetDuration("delay"); delay > 0 {
		cfg.Delay = delay
	}

	ledger, err := history.Open(cfg.BaseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: download history unavailable: %v\n", err)
		ledger = nil
	} else {
		defer ledger.Close()
	}

	client := arxiv.New(searchConfig())
	downloader := download.New(client, cfg, ledger)

	report := downloader.Batch(cmd.Context(), args)
	for _, r := range report.Results {
		switch r.Status {
		case types.StatusSucceeded:
			fmt.Printf("downloaded: %s -> %s (%d bytes)\n", r.ArxivID, r.Path, r.Bytes)
		case types.StatusAlreadyExists:
			fmt.Printf("skipped: %s (already exists)\n", r.ArxivID)
		case types.StatusFailed:
			fmt.Printf("failed: %s (%s)\n", r.ArxivID, r.Error)
		}
	}
	fmt.Printf("\nBatch summary: %d downloaded, %d skipped, %d failed (total: %d)\n",
		report.Succeeded, report.Skipped, report.Failed, report.Total())

	if report.HasFailures() {
		return fmt.Errorf("%d paper(s) failed to download", report.Failed)
	}
	return nil
}
