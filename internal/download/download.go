// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package download fetches paper PDFs into the organized download tree
// and aggregates batch outcomes. Batches are strictly sequential:
// consecutive attempt starts are spaced at least the configured delay
// apart, anchored to the previous attempt's actual start time, honoring
// arXiv's rate-limit contract regardless of whether the previous attempt
// succeeded, was skipped, or failed.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-mcp/internal/arxiv"
	"github.com/pdiddy/arxiv-mcp/internal/history"
	"github.com/pdiddy/arxiv-mcp/internal/logger"
	"github.com/pdiddy/arxiv-mcp/pkg/types"
)

const (
	defaultDelay        = 3 * time.Second
	defaultMaxRetries   = 3
	defaultRetryBackoff = 5 * time.Second
	defaultBaseDir      = "downloads"
)

// Resolver turns arXiv IDs into Paper records. Satisfied by *arxiv.Client.
type Resolver interface {
	Lookup(ctx context.Context, ids []string) ([]types.Paper, error)
}

// Downloader is the download orchestrator. The download tree under
// cfg.BaseDir is its only mutable state, and it is append-only in effect:
// existing files are never overwritten, only skipped.
type Downloader struct {
	resolver Resolver
	http     *http.Client
	cfg      types.DownloadConfig
	ledger   *history.Ledger
}

// New returns a Downloader. The ledger may be nil; attempts are then not
// recorded. Unset config fields get package defaults.
func New(resolver Resolver, cfg types.DownloadConfig, ledger *history.Ledger) *Downloader {
	if cfg.BaseDir == "" {
		cfg.BaseDir = defaultBaseDir
	}
	if cfg.Delay <= 0 {
		cfg.Delay = defaultDelay
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = defaultRetryBackoff
	}
	return &Downloader{
		resolver: resolver,
		http:     &http.Client{Timeout: cfg.Timeout},
		cfg:      cfg,
		ledger:   ledger,
	}
}

// BaseDir returns the root of the download tree.
func (d *Downloader) BaseDir() string { return d.cfg.BaseDir }

// DownloadOne resolves the identifier, downloads the PDF to its
// deterministic destination path under the configured base directory, and
// returns the attempt outcome. If the destination already exists the
// download is skipped without any network fetch. Failures are captured in
// the result, never raised.
func (d *Downloader) DownloadOne(ctx context.Context, arxivID string) types.DownloadResult {
	return d.DownloadOneTo(ctx, arxivID, "")
}

// DownloadOneTo is DownloadOne with a per-call base directory. An empty
// baseDir uses the configured one.
func (d *Downloader) DownloadOneTo(ctx context.Context, arxivID, baseDir string) types.DownloadResult {
	if baseDir == "" {
		baseDir = d.cfg.BaseDir
	}

	// Cancellation takes effect between attempts, never inside one: a
	// started attempt runs to completion, HTTP timeout, or retry
	// exhaustion.
	ctx = context.WithoutCancel(ctx)

	result := types.DownloadResult{
		ArxivID:     arxiv.StripVersion(arxivID),
		AttemptedAt: time.Now(),
	}
	defer d.record(ctx, &result)

	papers, err := d.resolver.Lookup(ctx, []string{result.ArxivID})
	if err != nil {
		result.Status = types.StatusFailed
		result.Error = fmt.Sprintf("resolving %s: %v", result.ArxivID, err)
		return result
	}
	if len(papers) == 0 {
		result.Status = types.StatusFailed
		result.Error = fmt.Sprintf("paper %s not found", result.ArxivID)
		return result
	}
	paper := papers[0]
	result.Title = paper.Title
	result.Path = DestPath(baseDir, paper)

	// Path identity is the dedup key: an existing file means done.
	if info, statErr := os.Stat(result.Path); statErr == nil {
		result.Status = types.StatusAlreadyExists
		result.Bytes = info.Size()
		return result
	}

	if err := os.MkdirAll(filepath.Dir(result.Path), 0o755); err != nil {
		result.Status = types.StatusFailed
		result.Error = fmt.Sprintf("creating directory: %v", err)
		return result
	}

	bytes, err := d.fetchWithRetry(ctx, paper.PDFURL, result.Path)
	if err != nil {
		result.Status = types.StatusFailed
		result.Error = fmt.Sprintf("downloading %s: %v", result.ArxivID, err)
		return result
	}

	result.Status = types.StatusSucceeded
	result.Bytes = bytes
	d.writeSidecar(paper, result.Path)
	return result
}

// Batch downloads the identifiers strictly sequentially. Consecutive
// attempt starts are at least the configured delay apart. A single item's
// failure never aborts the batch; cancellation takes effect between
// items, never mid-fetch.
func (d *Downloader) Batch(ctx context.Context, arxivIDs []string) types.BatchReport {
	return d.BatchTo(ctx, arxivIDs, "")
}

// BatchTo is Batch with a per-call base directory. An empty baseDir uses
// the configured one.
func (d *Downloader) BatchTo(ctx context.Context, arxivIDs []string, baseDir string) types.BatchReport {
	var report types.BatchReport
	var prevStart time.Time
	for _, id := range arxivIDs {
		if err := d.waitTurn(ctx, prevStart); err != nil {
			// Batch abandoned; the report covers what was attempted.
			break
		}
		prevStart = time.Now()
		report.Add(d.DownloadOneTo(ctx, id, baseDir))
	}
	return report
}

// waitTurn blocks until at least cfg.Delay has passed since prevStart.
// Pacing is anchored to the previous attempt's actual start rather than a
// token schedule, so the wall-clock gap between consecutive starts never
// undershoots the delay. A zero prevStart (first item) passes through
// after the context check.
func (d *Downloader) waitTurn(ctx context.Context, prevStart time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if prevStart.IsZero() {
		return nil
	}
	remaining := d.cfg.Delay - time.Since(prevStart)
	if remaining <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(remaining):
		return nil
	}
}

// fetchWithRetry downloads url to destPath, retrying transient failures a
// bounded number of times with a fixed backoff. HTTP 404 is permanent and
// fails immediately.
func (d *Downloader) fetchWithRetry(ctx context.Context, url, destPath string) (int64, error) {
	var lastErr error
	for attempt := 0; attempt <= d.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return 0, ctx.Err()
			case <-time.After(d.cfg.RetryBackoff):
			}
		}

		bytes, retryAgain, err := d.fetchOnce(ctx, url, destPath)
		if err == nil {
			return bytes, nil
		}
		lastErr = err
		if !retryAgain {
			break
		}
	}
	return 0, lastErr
}

// fetchOnce performs a single fetch attempt. The PDF is written to a
// temporary file in the destination directory and renamed into place on
// success, so a failed attempt never leaves a partial download behind.
func (d *Downloader) fetchOnce(ctx context.Context, url, destPath string) (written int64, retryAgain bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", d.cfg.UserAgent)
	req.Header.Set("Accept", "application/pdf")

	resp, err := d.http.Do(req)
	if err != nil {
		return 0, true, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// Proceed.
	case resp.StatusCode == http.StatusNotFound:
		return 0, false, fmt.Errorf("HTTP 404 from %s", url)
	default:
		return 0, true, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".download-*.tmp")
	if err != nil {
		return 0, false, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	written, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return 0, true, fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return 0, false, fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return 0, false, fmt.Errorf("renaming temp file: %w", err)
	}
	return written, false, nil
}

// writeSidecar stores the paper metadata next to the PDF. Best effort: a
// sidecar failure never fails the download.
func (d *Downloader) writeSidecar(paper types.Paper, pdfPath string) {
	data, err := yaml.Marshal(paper)
	if err != nil {
		logger.GetLogger().Warn("marshaling metadata sidecar",
			zap.String("arxivID", paper.ArxivID), zap.Error(err))
		return
	}
	sidecar := pdfPath[:len(pdfPath)-len(filepath.Ext(pdfPath))] + ".yaml"
	if err := os.WriteFile(sidecar, data, 0o644); err != nil {
		logger.GetLogger().Warn("writing metadata sidecar",
			zap.String("path", sidecar), zap.Error(err))
	}
}

// record appends the attempt to the history ledger, best effort. The
// caller's context is already detached from cancellation, so a cancelled
// batch still gets its attempts recorded.
func (d *Downloader) record(ctx context.Context, result *types.DownloadResult) {
	if d.ledger == nil {
		return
	}
	if err := d.ledger.Record(ctx, *result); err != nil {
		logger.GetLogger().Warn("recording download attempt",
			zap.String("arxivID", result.ArxivID), zap.Error(err))
	}
}
