// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package download

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-mcp/pkg/types"
)

// recentLimit bounds the recent-downloads list in the stats report.
const recentLimit = 10

// CollectStats walks the download tree and aggregates PDF counts by month
// and category, total bytes, and the most recent downloads. A missing base
// directory yields zero counts, not an error. Symbolic links are not
// followed, so the walk never escapes the base directory.
func CollectStats(baseDir string) (types.DownloadStats, error) {
	stats := types.DownloadStats{
		Dir:     baseDir,
		ByMonth: make(map[string]map[string]int),
	}

	if _, err := os.Stat(baseDir); os.IsNotExist(err) {
		return stats, nil
	}

	type pdfFile struct {
		name    string
		modTime time.Time
	}
	var files []pdfFile

	err := filepath.WalkDir(baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees degrade to partial stats.
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".pdf") {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}

		stats.TotalFiles++
		stats.TotalBytes += info.Size()
		files = append(files, pdfFile{name: d.Name(), modTime: info.ModTime()})

		// Attribute to <month>/<category> when the file sits at the
		// contract depth; stray PDFs still count in the totals.
		rel, relErr := filepath.Rel(baseDir, path)
		if relErr != nil {
			return nil
		}
		parts := strings.Split(rel, string(filepath.Separator))
		if len(parts) >= 3 {
			month, category := parts[0], parts[1]
			if stats.ByMonth[month] == nil {
				stats.ByMonth[month] = make(map[string]int)
			}
			stats.ByMonth[month][category]++
		}
		return nil
	})
	if err != nil {
		return stats, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].modTime.After(files[j].modTime)
	})
	for i, f := range files {
		if i >= recentLimit {
			break
		}
		stats.Recent = append(stats.Recent, f.name)
	}

	return stats, nil
}
