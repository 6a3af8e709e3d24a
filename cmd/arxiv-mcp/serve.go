// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-mcp/internal/arxiv"
	"github.com/pdiddy/arxiv-mcp/internal/download"
	"github.com/pdiddy/arxiv-mcp/internal/history"
	"github.com/pdiddy/arxiv-mcp/internal/mcpserver"
	"github.com/pdiddy/arxiv-mcp/internal/query"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP stdio server",
	Long: `Serve speaks the Model Context Protocol over stdin/stdout. Point a
tool-calling host (e.g. an LLM runtime) at this command to expose arXiv
search and download tools. All diagnostics go to stderr.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	dlCfg := downloadConfig()

	ledger, err := history.Open(dlCfg.BaseDir)
	if err != nil {
		// The server is still useful without attempt history.
		fmt.Fprintf(os.Stderr, "warning: download history unavailable: %v\n", err)
		ledger = nil
	} else {
		defer ledger.Close()
	}

	client := arxiv.New(searchConfig())
	parser := query.New(parserConfig())
	downloader := download.New(client, dlCfg, ledger)

	server := mcpserver.New(parser, client, downloader, ledger, version)
	return server.Run(context.Background())
}
