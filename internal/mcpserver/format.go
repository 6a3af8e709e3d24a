// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcpserver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/arxiv-mcp/pkg/types"
)

// abstractLimit bounds abstracts in tool output so a results page stays
// readable in the host.
const abstractLimit = 500

// formatPapers renders numbered search results. The numbering is what
// search_and_download's indices refer to.
func formatPapers(papers []types.Paper) string {
	var b strings.Builder
	for i, p := range papers {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "[%d] %s\n", i+1, p.Title)
		fmt.Fprintf(&b, "    arXiv ID: %s\n", p.ArxivID)
		fmt.Fprintf(&b, "    Authors: %s\n", formatAuthors(p.Authors))
		fmt.Fprintf(&b, "    Categories: %s\n", strings.Join(p.Categories, ", "))
		if !p.Published.IsZero() {
			fmt.Fprintf(&b, "    Published: %s", p.Published.Format("2006-01-02"))
			if !p.Updated.IsZero() && !p.Updated.Equal(p.Published) {
				fmt.Fprintf(&b, " (updated %s)", p.Updated.Format("2006-01-02"))
			}
			b.WriteString("\n")
		}
		if p.JournalRef != "" {
			fmt.Fprintf(&b, "    Journal: %s\n", p.JournalRef)
		}
		fmt.Fprintf(&b, "    PDF: %s\n", p.PDFURL)
		fmt.Fprintf(&b, "    %s\n", truncateAbstract(p.Abstract))
	}
	return b.String()
}

func formatAuthors(authors []string) string {
	if len(authors) <= 3 {
		return strings.Join(authors, ", ")
	}
	return strings.Join(authors[:3], ", ") + " et al."
}

func truncateAbstract(abstract string) string {
	if len(abstract) <= abstractLimit {
		return abstract
	}
	return abstract[:abstractLimit] + "..."
}

// formatResult renders one download outcome.
func formatResult(r types.DownloadResult) string {
	switch r.Status {
	case types.StatusSucceeded:
		return fmt.Sprintf("%s: downloaded to %s (%d bytes)", r.ArxivID, r.Path, r.Bytes)
	case types.StatusAlreadyExists:
		return fmt.Sprintf("%s: already downloaded at %s (%d bytes)", r.ArxivID, r.Path, r.Bytes)
	default:
		return fmt.Sprintf("%s: failed (%s)", r.ArxivID, r.Error)
	}
}

// formatReport renders a batch report with per-item lines and tallies.
func formatReport(report types.BatchReport) string {
	var b strings.Builder
	for _, r := range report.Results {
		b.WriteString(formatResult(r))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nBatch summary: %d downloaded, %d already present, %d failed (total: %d)",
		report.Succeeded, report.Skipped, report.Failed, report.Total())
	return b.String()
}

// formatStats renders the download-directory statistics.
func formatStats(stats types.DownloadStats, recent []types.DownloadResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Download directory: %s\n", stats.Dir)
	fmt.Fprintf(&b, "Total papers: %d\n", stats.TotalFiles)
	fmt.Fprintf(&b, "Total size: %.2f MB\n", float64(stats.TotalBytes)/(1024*1024))

	if len(stats.ByMonth) > 0 {
		b.WriteString("\nBy month and category:\n")
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
				fmt.Fprintf(&b, "  %s/%s: %d\n", m, c, stats.ByMonth[m][c])
			}
		}
	}

	if len(recent) > 0 {
		b.WriteString("\nRecent attempts:\n")
		for _, r := range recent {
			fmt.Fprintf(&b, "  %s %s (%s)\n",
				r.AttemptedAt.Format("2006-01-02 15:04"), r.ArxivID, r.Status)
		}
	} else if len(stats.Recent) > 0 {
		b.WriteString("\nRecent files:\n")
		for _, name := range stats.Recent {
			fmt.Fprintf(&b, "  %s\n", name)
		}
	}

	return b.String()
}
