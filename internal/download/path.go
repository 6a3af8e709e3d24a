// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package download

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pdiddy/arxiv-mcp/pkg/types"
)

// maxTitleLen bounds the sanitized title component of the filename.
const maxTitleLen = 200

// unsafeFilenameChars matches characters that are unsafe in filenames.
var unsafeFilenameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

// DestPath resolves the deterministic destination for a paper:
// <base>/<YYYY-MM>/<category>/<arxiv_id>_<sanitized title>.pdf. The
// layout is a contract shared with the stats tracker and must not change.
func DestPath(baseDir string, paper types.Paper) string {
	month := "undated"
	if !paper.Published.IsZero() {
		month = paper.Published.Format("2006-01")
	}

	category := sanitizeCategory(paper.PrimaryCategory)
	filename := sanitizeID(paper.ArxivID) + "_" + sanitizeTitle(paper.Title) + ".pdf"

	return filepath.Join(baseDir, month, category, filename)
}

// sanitizeCategory turns an arXiv category into a directory name: dots
// become underscores ("math.CO" → "math_CO").
func sanitizeCategory(category string) string {
	if category == "" {
		return "uncategorized"
	}
	category = strings.ReplaceAll(category, ".", "_")
	return unsafeFilenameChars.ReplaceAllString(category, "_")
}

// sanitizeID makes an arXiv ID filename-safe. Old-style IDs contain a
// slash ("math.CO/0601001") which becomes a hyphen.
func sanitizeID(id string) string {
	return unsafeFilenameChars.ReplaceAllString(id, "-")
}

// sanitizeTitle strips filesystem-unsafe characters, replaces spaces with
// underscores, and truncates to a bounded length.
func sanitizeTitle(title string) string {
	safe := unsafeFilenameChars.ReplaceAllString(title, "")
	safe = strings.ReplaceAll(strings.TrimSpace(safe), " ", "_")
	if len(safe) > maxTitleLen {
		safe = safe[:maxTitleLen]
	}
	if safe == "" {
		safe = "untitled"
	}
	return safe
}
