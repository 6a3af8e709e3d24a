// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mcpserver exposes search, download, and stats tools over the
// MCP stdio transport.
package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/pdiddy/arxiv-mcp/internal/arxiv"
	"github.com/pdiddy/arxiv-mcp/internal/download"
	"github.com/pdiddy/arxiv-mcp/internal/history"
	"github.com/pdiddy/arxiv-mcp/internal/logger"
	"github.com/pdiddy/arxiv-mcp/internal/query"
	"github.com/pdiddy/arxiv-mcp/pkg/types"
)

// tooBroadMessage is returned instead of issuing an unfiltered query.
const tooBroadMessage = "The query is too broad to search: no keywords, categories, authors, or fields could be extracted. Please rephrase with a topic, category (e.g. cs.LG), author, or date range."

// Server wires the query translator, search client, and download
// orchestrator behind the MCP tool surface.
type Server struct {
	parser     query.Parser
	arxiv      *arxiv.Client
	downloader *download.Downloader
	ledger     *history.Ledger
	version    string
}

// New assembles a Server from already-constructed stages. The ledger may
// be nil.
func New(parser query.Parser, client *arxiv.Client, dl *download.Downloader, ledger *history.Ledger, version string) *Server {
	return &Server{
		parser:     parser,
		arxiv:      client,
		downloader: dl,
		ledger:     ledger,
		version:    version,
	}
}

// Run registers the tools and serves MCP over stdio until the context is
// cancelled or the host disconnects.
func (s *Server) Run(ctx context.Context) error {
	l := logger.GetLogger()
	defer l.Sync()

	l.Info("Starting MCP server",
		zap.String("name", "arxiv-mcp"),
		zap.String("version", s.version),
	)

	server := mcp.NewServer("arxiv-mcp", s.version, nil)

	server.AddTools(
		mcp.NewServerTool("search_arxiv", "Search arXiv papers using a natural language query (e.g. 'machine learning papers by Yann LeCun after 2023'). Results are numbered; pass the numbers to search_and_download to fetch PDFs.", s.SearchTool, mcp.Input(
			mcp.Property("query", mcp.Description("Natural language search query")),
			mcp.Property("max_results", mcp.Description("Maximum number of results (default 10, capped at 50)")),
		)),
		mcp.NewServerTool("download_paper", "Download a paper PDF by its arXiv ID into the organized download directory. Re-downloading an existing paper is skipped.", s.DownloadTool, mcp.Input(
			mcp.Property("arxiv_id", mcp.Description("arXiv identifier, e.g. 2301.07041")),
			mcp.Property("custom_dir", mcp.Description("Optional directory overriding the configured download root")),
		)),
		mcp.NewServerTool("batch_download", "Download multiple papers by arXiv ID. Papers are fetched one at a time with rate limiting; one failure does not stop the batch.", s.BatchDownloadTool, mcp.Input(
			mcp.Property("arxiv_ids", mcp.Description("arXiv identifiers to download")),
			mcp.Property("custom_dir", mcp.Description("Optional directory overriding the configured download root")),
		)),
		mcp.NewServerTool("search_and_download", "Search arXiv and download selected results in one step. Give indices (1-based, from the search listing) or set download_all.", s.SearchAndDownloadTool, mcp.Input(
			mcp.Property("query", mcp.Description("Natural language search query")),
			mcp.Property("indices", mcp.Description("1-based result indices to download")),
			mcp.Property("download_all", mcp.Description("Download every result")),
			mcp.Property("max_results", mcp.Description("Maximum number of search results")),
		)),
		mcp.NewServerTool("get_download_stats", "Report how many papers are downloaded, organized by month and category, with total size and recent activity.", s.StatsTool),
	)

	l.Info("MCP server tools registered")

	return server.Run(ctx, mcp.NewStdioTransport())
}

// search translates the natural-language query and runs it. Shared by the
// search and search_and_download tools.
func (s *Server) search(ctx context.Context, text string, maxResults int) ([]types.Paper, types.SearchQuery, error) {
	q := s.parser.Translate(ctx, text, maxResults)
	if q.IsEmpty() {
		return nil, q, nil
	}
	papers, err := s.arxiv.Search(ctx, q)
	return papers, q, err
}

func (s *Server) SearchTool(ctx context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[SearchParams]) (*mcp.CallToolResultFor[any], error) {
	l := logger.GetLogger()
	l.Info("search_arxiv called",
		zap.String("query", params.Arguments.Query),
		zap.Int("maxResults", params.Arguments.MaxResults),
	)

	papers, q, err := s.search(ctx, params.Arguments.Query, params.Arguments.MaxResults)
	if err != nil {
		l.Error("search failed", zap.String("query", params.Arguments.Query), zap.Error(err))
		return nil, fmt.Errorf("searching arXiv: %w", err)
	}
	if q.IsEmpty() {
		return textResult(tooBroadMessage), nil
	}
	if len(papers) == 0 {
		return textResult("No papers found."), nil
	}

	l.Info("search completed", zap.Int("results", len(papers)))
	return textResult(formatPapers(papers)), nil
}

func (s *Server) DownloadTool(ctx context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[DownloadParams]) (*mcp.CallToolResultFor[any], error) {
	l := logger.GetLogger()
	l.Info("download_paper called", zap.String("arxivID", params.Arguments.ArxivID))

	result := s.downloader.DownloadOneTo(ctx, params.Arguments.ArxivID, params.Arguments.CustomDir)
	if result.Status == types.StatusFailed {
		l.Error("download failed",
			zap.String("arxivID", result.ArxivID),
			zap.String("cause", result.Error),
		)
	}
	return textResult(formatResult(result)), nil
}

func (s *Server) BatchDownloadTool(ctx context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[BatchDownloadParams]) (*mcp.CallToolResultFor[any], error) {
	l := logger.GetLogger()
	l.Info("batch_download called", zap.Int("count", len(params.Arguments.ArxivIDs)))

	if len(params.Arguments.ArxivIDs) == 0 {
		return textResult("No arXiv IDs given."), nil
	}

	report := s.downloader.BatchTo(ctx, params.Arguments.ArxivIDs, params.Arguments.CustomDir)
	l.Info("batch_download completed",
		zap.Int("succeeded", report.Succeeded),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed),
	)
	return textResult(formatReport(report)), nil
}

func (s *Server) SearchAndDownloadTool(ctx context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[SearchAndDownloadParams]) (*mcp.CallToolResultFor[any], error) {
	l := logger.GetLogger()
	l.Info("search_and_download called",
		zap.String("query", params.Arguments.Query),
		zap.Ints("indices", params.Arguments.Indices),
		zap.Bool("downloadAll", params.Arguments.DownloadAll),
	)

	papers, q, err := s.search(ctx, params.Arguments.Query, params.Arguments.MaxResults)
	if err != nil {
		return nil, fmt.Errorf("searching arXiv: %w", err)
	}
	if q.IsEmpty() {
		return textResult(tooBroadMessage), nil
	}
	if len(papers) == 0 {
		return textResult("No papers found."), nil
	}

	listing := formatPapers(papers)

	var selected []string
	switch {
	case params.Arguments.DownloadAll:
		for _, p := range papers {
			selected = append(selected, p.ArxivID)
		}
	case len(params.Arguments.Indices) > 0:
		for _, i := range params.Arguments.Indices {
			if i >= 1 && i <= len(papers) {
				selected = append(selected, papers[i-1].ArxivID)
			}
		}
	default:
		return textResult(listing + "\nSearch completed. Give indices or set download_all to download papers."), nil
	}

	if len(selected) == 0 {
		return textResult(listing + "\nNo given index matches a search result."), nil
	}

	report := s.downloader.Batch(ctx, selected)
	return textResult(listing + "\n" + formatReport(report)), nil
}

func (s *Server) StatsTool(ctx context.Context, _ *mcp.ServerSession, _ *mcp.CallToolParamsFor[StatsParams]) (*mcp.CallToolResultFor[any], error) {
	stats, err := download.CollectStats(s.downloader.BaseDir())
	if err != nil {
		return nil, fmt.Errorf("collecting stats: %w", err)
	}

	var recent []types.DownloadResult
	if s.ledger != nil {
		if r, err := s.ledger.Recent(ctx, 10); err == nil {
			recent = r
		}
	}
	return textResult(formatStats(stats, recent)), nil
}

func textResult(text string) *mcp.CallToolResultFor[any] {
	return &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
