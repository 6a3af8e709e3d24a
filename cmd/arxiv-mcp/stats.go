// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-mcp/internal/download"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Report statistics for the download directory",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().String("dir", "", "download base directory (overrides config)")

	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg := downloadConfig()
	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		cfg.BaseDir = dir
	}

	stats, err := download.CollectStats(cfg.BaseDir)
	if err != nil {
		return err
	}

	fmt.Printf("Download directory: %s\n", stats.Dir)
	fmt.Printf("Total papers: %d\n", stats.TotalFiles)
	fmt.Printf("Total size: %.2f MB\n", float64(stats.TotalBytes)/(1024*1024))

	months := make([]string, 0, len(stats.ByMonth))
	for m := range stats.ByMonth {
		months = append(months, m)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	for _, m := range months {
		cats := make([]string, 0, len(stats.ByMonth[m]))
		for c := range stats.ByMonth[m] {
			cats = append(cats, c)
		}
		sort.Strings(cats)
		for _, c := range cats {
			fmt.Printf("  %s/%s: %d\n", m, c, stats.ByMonth[m][c])
		}
	}

	if len(stats.Recent) > 0 {
		fmt.Println("\nRecent files:")
		for _, name := range stats.Recent {
			fmt.Printf("  %s\n", name)
		}
	}
	return nil
}
