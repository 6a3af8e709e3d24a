// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package arxiv queries the arXiv API and normalizes its Atom feed into
// Paper records. Query construction and result ordering are deterministic
// pass-throughs: the client never re-ranks what the API returns.
package arxiv

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/arxiv-mcp/internal/httputil"
	"github.com/pdiddy/arxiv-mcp/pkg/types"
)

// APIBase is the arXiv query endpoint. Declared as a var so tests can
// substitute an httptest server.
var APIBase = "https://export.arxiv.org/api/query"

// pdfBase builds the fallback PDF URL when the feed entry carries no pdf link.
var pdfBase = "https://arxiv.org/pdf/"

// feed body size cap.
const maxFeedBytes = 10 << 20

// Client issues structured queries against the arXiv API.
type Client struct {
	http    *http.Client
	cfg     types.SearchConfig
	limiter *rate.Limiter
}

// New returns a client using the configured timeout and user agent. A
// positive RequestDelay paces consecutive API requests; arXiv asks
// automated clients to leave about 3 seconds between calls.
func New(cfg types.SearchConfig) *Client {
	if cfg.DefaultResults <= 0 {
		cfg.DefaultResults = 10
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 50
	}
	c := &Client{
		http: &http.Client{Timeout: cfg.Timeout},
		cfg:  cfg,
	}
	if cfg.RequestDelay > 0 {
		c.limiter = rate.NewLimiter(rate.Every(cfg.RequestDelay), 1)
	}
	return c
}

// NewWithHTTPClient returns a client with a caller-supplied http.Client,
// useful for tests.
func NewWithHTTPClient(cfg types.SearchConfig, hc *http.Client) *Client {
	c := New(cfg)
	c.http = hc
	return c
}

// Search issues the query and returns up to query.MaxResults papers in
// feed order. Date filtering happens client-side on the parsed feed (the
// arXiv query syntax has no clean published-date range), preserving the
// relative order of kept entries. Zero matches yield an empty slice, not
// an error.
func (c *Client) Search(ctx context.Context, query types.SearchQuery) ([]types.Paper, error) {
	query.ClampMaxResults(c.cfg.DefaultResults, c.cfg.MaxResults)

	fetch := query.MaxResults
	if query.HasDateFilter() {
		// Over-fetch so client-side date filtering still fills the page.
		fetch *= 2
	}

	sortBy := query.SortBy
	if sortBy == "" {
		sortBy = c.cfg.SortBy
	}
	if sortBy == "" {
		sortBy = types.SortSubmittedDate
	}

	params := url.Values{}
	params.Set("search_query", BuildQuery(query))
	params.Set("start", "0")
	params.Set("max_results", strconv.Itoa(fetch))
	params.Set("sortBy", string(sortBy))
	params.Set("sortOrder", "descending")

	entries, err := c.fetchFeed(ctx, params)
	if err != nil {
		return nil, err
	}

	var papers []types.Paper
	for _, entry := range entries {
		paper, ok := entryToPaper(entry)
		if !ok {
			continue
		}
		if !keepDate(paper.Published, query.DateFrom, query.DateTo) {
			continue
		}
		papers = append(papers, paper)
		if len(papers) >= query.MaxResults {
			break
		}
	}
	return papers, nil
}

// Lookup fetches papers by exact arXiv ID via the id_list parameter.
// Unknown IDs are simply absent from the result.
func (c *Client) Lookup(ctx context.Context, ids []string) ([]types.Paper, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	params := url.Values{}
	params.Set("id_list", strings.Join(ids, ","))
	params.Set("max_results", strconv.Itoa(len(ids)))

	entries, err := c.fetchFeed(ctx, params)
	if err != nil {
		return nil, err
	}

	var papers []types.Paper
	for _, entry := range entries {
		if paper, ok := entryToPaper(entry); ok {
			papers = append(papers, paper)
		}
	}
	return papers, nil
}

func (c *Client) fetchFeed(ctx context.Context, params url.Values) ([]atomEntry, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	reqURL := APIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.http, req, 0)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed atomFeed
	if err := xml.NewDecoder(io.LimitReader(resp.Body, maxFeedBytes)).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}
	return feed.Entries, nil
}

// BuildQuery constructs the search_query parameter from structured fields
// using arXiv's boolean field syntax.
func BuildQuery(q types.SearchQuery) string {
	var parts []string

	if len(q.Keywords) > 0 {
		kw := make([]string, len(q.Keywords))
		for i, k := range q.Keywords {
			kw[i] = fmt.Sprintf("all:%q", k)
		}
		parts = append(parts, "("+strings.Join(kw, " AND ")+")")
	}
	if q.Title != "" {
		parts = append(parts, fmt.Sprintf("ti:%q", q.Title))
	}
	if q.Author != "" {
		parts = append(parts, fmt.Sprintf("au:%q", q.Author))
	}
	if q.Abstract != "" {
		parts = append(parts, fmt.Sprintf("abs:%q", q.Abstract))
	}
	if len(q.Categories) > 0 {
		cats := make([]string, len(q.Categories))
		for i, c := range q.Categories {
			cats[i] = "cat:" + c
		}
		parts = append(parts, "("+strings.Join(cats, " OR ")+")")
	}

	if len(parts) == 0 {
		return "all:*"
	}
	return strings.Join(parts, " AND ")
}

// keepDate applies the half-open interval [from, to).
func keepDate(published, from, to time.Time) bool {
	if published.IsZero() {
		return from.IsZero() && to.IsZero()
	}
	if !from.IsZero() && published.Before(from) {
		return false
	}
	if !to.IsZero() && !published.Before(to) {
		return false
	}
	return true
}

// arXiv Atom feed XML structures.
type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID              string         `xml:"id"`
	Title           string         `xml:"title"`
	Summary         string         `xml:"summary"`
	Published       string         `xml:"published"`
	Updated         string         `xml:"updated"`
	Authors         []atomAuthor   `xml:"author"`
	Categories      []atomCategory `xml:"category"`
	PrimaryCategory atomCategory   `xml:"primary_category"`
	Links           []atomLink     `xml:"link"`
	Comment         string         `xml:"comment"`
	JournalRef      string         `xml:"journal_ref"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomCategory struct {
	Term string `xml:"term,attr"`
}

type atomLink struct {
	Href  string `xml:"href,attr"`
	Rel   string `xml:"rel,attr"`
	Title string `xml:"title,attr"`
}

// entryToPaper normalizes one feed entry. Entries without a usable ID are
// dropped.
func entryToPaper(entry atomEntry) (types.Paper, bool) {
	id := ExtractID(entry.ID)
	if id == "" {
		return types.Paper{}, false
	}

	p := types.Paper{
		ArxivID:         id,
		Title:           collapseSpace(entry.Title),
		Abstract:        collapseSpace(entry.Summary),
		PrimaryCategory: entry.PrimaryCategory.Term,
		Comment:         collapseSpace(entry.Comment),
		JournalRef:      collapseSpace(entry.JournalRef),
	}

	for _, a := range entry.Authors {
		p.Authors = append(p.Authors, strings.TrimSpace(a.Name))
	}
	for _, c := range entry.Categories {
		if c.Term != "" {
			p.Categories = append(p.Categories, c.Term)
		}
	}
	if p.PrimaryCategory == "" && len(p.Categories) > 0 {
		p.PrimaryCategory = p.Categories[0]
	}

	if t, err := time.Parse(time.RFC3339, entry.Published); err == nil {
		p.Published = t
	}
	if t, err := time.Parse(time.RFC3339, entry.Updated); err == nil {
		p.Updated = t
	}

	for _, l := range entry.Links {
		if l.Title == "pdf" || strings.Contains(l.Href, "/pdf/") {
			p.PDFURL = l.Href
			break
		}
	}
	if p.PDFURL == "" {
		p.PDFURL = pdfBase + id
	}

	return p, true
}

// versionSuffix matches a trailing version marker ("v1", "v12").
var versionSuffix = regexp.MustCompile(`v\d+$`)

// ExtractID pulls the arXiv ID from an entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" → "2301.07041"). Old-style
// IDs like "math.CO/0601001" are preserved.
func ExtractID(idURL string) string {
	const prefix = "/abs/"
	id := idURL
	if idx := strings.Index(idURL, prefix); idx >= 0 {
		id = idURL[idx+len(prefix):]
	}
	return StripVersion(strings.TrimSpace(id))
}

// StripVersion removes a trailing version suffix from an arXiv ID.
func StripVersion(id string) string {
	return versionSuffix.ReplaceAllString(id, "")
}

// collapseSpace trims and folds internal newlines the feed wraps long
// fields with.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
