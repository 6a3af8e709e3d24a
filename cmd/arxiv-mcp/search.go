// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-mcp/internal/arxiv"
	"github.com/pdiddy/arxiv-mcp/internal/query"
)

var searchCmd = &cobra.Command{
	Use:   "search [natural language query]",
	Short: "Search arXiv with a natural language query",
	Long: `Search translates a natural language query (e.g. "combinatorics papers
after December 2024") into a structured arXiv query and prints the
matching papers in upstream order.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("max-results", 0, "maximum number of results (default 10, capped at 50)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().Bool("show-query", false, "print the translated query to stderr")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a search query")
	}
	text := strings.Join(args, " ")

	maxResults, _ := cmd.Flags().GetInt("max-results")
	asJSON, _ := cmd.Flags().GetBool("json")
	showQuery, _ := cmd.Flags().GetBool("show-query")

	parser := query.New(parserConfig())
	q := parser.Translate(cmd.Context(), text, maxResults)

	if showQuery {
		fmt.Fprintf(os.Stderr, "translated query: %s\n", arxiv.BuildQuery(q))
	}
	if q.IsEmpty() {
		return fmt.Errorf("query is too broad: no keywords, categories, authors, or dates could be extracted")
	}

	client := arxiv.New(searchConfig())
	papers, err := client.Search(cmd.Context(), q)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(papers)
	}

	if len(papers) == 0 {
		fmt.Println("No papers found.")
		return nil
	}
	for i, p := range papers {
		year := ""
		if !p.Published.IsZero() {
			year = p.Published.Format("2006-01-02")
		}
		fmt.Printf("[%d] %s\n    %s | %s | %s\n",
			i+1, p.Title, p.ArxivID, year, strings.Join(p.Categories, ", "))
	}
	fmt.Printf("\n%d results\n", len(papers))
	return nil
}
