// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcpserver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pdiddy/arxiv-mcp/internal/arxiv"
	"github.com/pdiddy/arxiv-mcp/internal/download"
	"github.com/pdiddy/arxiv-mcp/internal/query"
	"github.com/pdiddy/arxiv-mcp/pkg/types"
)

// fakePaper is one entry served by the fake arXiv API.
type fakePaper struct {
	id    string
	title string
}

// fakeArxiv serves the given papers as an Atom feed. Search queries get
// all of them, id_list lookups get only the requested IDs, and /pdf/
// paths get fake PDF bytes. APIBase is restored on cleanup.
func fakeArxiv(t *testing.T, papers ...fakePaper) {
	t.Helper()

	var ts *httptest.Server
	ts = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/pdf/") {
			fmt.Fprint(w, "%PDF-1.4 fake")
			return
		}

		wanted := map[string]bool{}
		if ids := r.URL.Query().Get("id_list"); ids != "" {
			for _, id := range strings.Split(ids, ",") {
				wanted[id] = true
			}
		}

		var entries []string
		for _, p := range papers {
			if len(wanted) > 0 && !wanted[p.id] {
				continue
			}
			entries = append(entries, fmt.Sprintf(`<entry>
				<id>http://arxiv.org/abs/%sv1</id>
				<title>%s</title>
				<summary>About things.</summary>
				<published>2025-01-10T00:00:00Z</published>
				<author><name>Jane Doe</name></author>
				<primary_category term="math.CO"/>
				<category term="math.CO"/>
				<link href="%s/pdf/%s" title="pdf"/>
			</entry>`, p.id, p.title, ts.URL, p.id))
		}
		fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">`+strings.Join(entries, "\n")+`</feed>`)
	}))
	t.Cleanup(ts.Close)

	old := arxiv.APIBase
	arxiv.APIBase = ts.URL
	t.Cleanup(func() { arxiv.APIBase = old })
}

func testServer(t *testing.T) *Server {
	t.Helper()
	client := arxiv.New(types.SearchConfig{
		HTTPConfig: types.HTTPConfig{Timeout: 10 * time.Second, UserAgent: "test/0.1"},
	})
	dl := download.New(client, types.DownloadConfig{
		HTTPConfig:   types.HTTPConfig{Timeout: 10 * time.Second, UserAgent: "test/0.1"},
		BaseDir:      t.TempDir(),
		Delay:        time.Millisecond,
		MaxRetries:   1,
		RetryBackoff: time.Millisecond,
	}, nil)
	return New(query.NewRuleParser(types.ParserConfig{}), client, dl, nil, "test")
}

func searchAndDownload(t *testing.T, s *Server, args SearchAndDownloadParams) string {
	t.Helper()
	res, err := s.SearchAndDownloadTool(context.Background(), nil,
		&mcp.CallToolParamsFor[SearchAndDownloadParams]{Arguments: args})
	if err != nil {
		t.Fatalf("SearchAndDownloadTool: %v", err)
	}
	return res.Content[0].(*mcp.TextContent).Text
}

func TestSearchToolTooBroad(t *testing.T) {
	fakeArxiv(t)
	s := testServer(t)

	res, err := s.SearchTool(context.Background(), nil,
		&mcp.CallToolParamsFor[SearchParams]{Arguments: SearchParams{Query: "find papers"}})
	if err != nil {
		t.Fatalf("SearchTool: %v", err)
	}
	text := res.Content[0].(*mcp.TextContent).Text
	if !strings.Contains(text, "too broad") {
		t.Errorf("want too-broad guidance, got:\n%s", text)
	}
}

func TestSearchToolNumbersResults(t *testing.T) {
	fakeArxiv(t,
		fakePaper{"2501.00001", "Alpha"},
		fakePaper{"2501.00002", "Beta"},
	)
	s := testServer(t)

	res, err := s.SearchTool(context.Background(), nil,
		&mcp.CallToolParamsFor[SearchParams]{Arguments: SearchParams{Query: "combinatorics papers"}})
	if err != nil {
		t.Fatalf("SearchTool: %v", err)
	}
	text := res.Content[0].(*mcp.TextContent).Text
	if !strings.Contains(text, "[1] Alpha") || !strings.Contains(text, "[2] Beta") {
		t.Errorf("results not numbered in feed order:\n%s", text)
	}
}

func TestSearchToolNoResults(t *testing.T) {
	fakeArxiv(t)
	s := testServer(t)

	res, err := s.SearchTool(context.Background(), nil,
		&mcp.CallToolParamsFor[SearchParams]{Arguments: SearchParams{Query: "combinatorics papers"}})
	if err != nil {
		t.Fatalf("SearchTool: %v", err)
	}
	text := res.Content[0].(*mcp.TextContent).Text
	if !strings.Contains(text, "No papers found") {
		t.Errorf("want no-results message, got:\n%s", text)
	}
}

func TestSearchAndDownloadNoSelection(t *testing.T) {
	fakeArxiv(t, fakePaper{"2501.00001", "Alpha"})
	s := testServer(t)

	text := searchAndDownload(t, s, SearchAndDownloadParams{Query: "combinatorics papers"})
	if !strings.Contains(text, "[1] Alpha") {
		t.Errorf("listing missing:\n%s", text)
	}
	if !strings.Contains(text, "Give indices or set download_all") {
		t.Errorf("missing selection guidance:\n%s", text)
	}
	if strings.Contains(text, "Batch summary") {
		t.Errorf("nothing should be downloaded without a selection:\n%s", text)
	}
}

func TestSearchAndDownloadByIndex(t *testing.T) {
	fakeArxiv(t,
		fakePaper{"2501.00001", "Alpha"},
		fakePaper{"2501.00002", "Beta"},
		fakePaper{"2501.00003", "Gamma"},
	)
	s := testServer(t)

	text := searchAndDownload(t, s, SearchAndDownloadParams{
		Query:   "combinatorics papers",
		Indices: []int{1, 3, 99},
	})

	if !strings.Contains(text, "2501.00001: downloaded") || !strings.Contains(text, "2501.00003: downloaded") {
		t.Errorf("selected indices not downloaded:\n%s", text)
	}
	if strings.Contains(text, "2501.00002: downloaded") {
		t.Errorf("unselected index downloaded:\n%s", text)
	}
	// The out-of-range index is ignored, not fatal.
	if !strings.Contains(text, "Batch summary: 2 downloaded") {
		t.Errorf("summary wrong:\n%s", text)
	}
}

func TestSearchAndDownloadAll(t *testing.T) {
	fakeArxiv(t,
		fakePaper{"2501.00001", "Alpha"},
		fakePaper{"2501.00002", "Beta"},
	)
	s := testServer(t)

	text := searchAndDownload(t, s, SearchAndDownloadParams{
		Query:       "combinatorics papers",
		DownloadAll: true,
	})
	if !strings.Contains(text, "Batch summary: 2 downloaded, 0 already present, 0 failed (total: 2)") {
		t.Errorf("summary wrong:\n%s", text)
	}
}

func TestDownloadToolCustomDir(t *testing.T) {
	fakeArxiv(t, fakePaper{"2501.00001", "Alpha"})
	s := testServer(t)

	custom := t.TempDir()
	res, err := s.DownloadTool(context.Background(), nil,
		&mcp.CallToolParamsFor[DownloadParams]{Arguments: DownloadParams{
			ArxivID:   "2501.00001",
			CustomDir: custom,
		}})
	if err != nil {
		t.Fatalf("DownloadTool: %v", err)
	}
	text := res.Content[0].(*mcp.TextContent).Text
	if !strings.Contains(text, custom) {
		t.Errorf("reported path not under custom dir %q:\n%s", custom, text)
	}
	if !strings.Contains(text, "2501.00001: downloaded") {
		t.Errorf("want download confirmation:\n%s", text)
	}
}

func TestStatsToolEmptyTree(t *testing.T) {
	fakeArxiv(t)
	s := testServer(t)

	res, err := s.StatsTool(context.Background(), nil,
		&mcp.CallToolParamsFor[StatsParams]{})
	if err != nil {
		t.Fatalf("StatsTool: %v", err)
	}
	text := res.Content[0].(*mcp.TextContent).Text
	if !strings.Contains(text, "Total papers: 0") {
		t.Errorf("want zero totals, got:\n%s", text)
	}
}
