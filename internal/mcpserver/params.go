// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcpserver

type SearchParams struct {
	Query      string `json:"query" mcp:"Natural language search query, e.g. 'combinatorics papers after December 2024'"`
	MaxResults int    `json:"max_results,omitempty" mcp:"Maximum number of results (default 10, capped at 50)"`
}

type DownloadParams struct {
	ArxivID   string `json:"arxiv_id" mcp:"arXiv identifier, e.g. 2301.07041 (a version suffix like v2 is ignored)"`
	CustomDir string `json:"custom_dir,omitempty" mcp:"Optional directory overriding the configured download root for this call"`
}

type BatchDownloadParams struct {
	ArxivIDs  []string `json:"arxiv_ids" mcp:"arXiv identifiers to download, processed sequentially with rate limiting"`
	CustomDir string   `json:"custom_dir,omitempty" mcp:"Optional directory overriding the configured download root for this call"`
}

type SearchAndDownloadParams struct {
	Query       string `json:"query" mcp:"Natural language search query"`
	Indices     []int  `json:"indices,omitempty" mcp:"1-based indices of search results to download, e.g. [1,3]"`
	DownloadAll bool   `json:"download_all,omitempty" mcp:"Download every search result"`
	MaxResults  int    `json:"max_results,omitempty" mcp:"Maximum number of search results (default 10, capped at 50)"`
}

type StatsParams struct{}
