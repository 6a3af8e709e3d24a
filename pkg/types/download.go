// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// DownloadStatus is the terminal state of one download attempt.
type DownloadStatus string

const (
	StatusSucceeded     DownloadStatus = "succeeded"
	StatusAlreadyExists DownloadStatus = "already_exists"
	StatusFailed        DownloadStatus = "failed"
)

// DownloadResult records the outcome of a single download attempt. It is
// constructed once per attempt and never mutated afterward.
type DownloadResult struct {
	// ArxivID is the requested identifier, version suffix stripped.
	ArxivID string `json:"arxiv_id" yaml:"arxiv_id"`

	// Title is the paper title when it could be resolved.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Path is the resolved destination path. Empty when the identifier
	// could not be resolved.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// Status is the terminal state of the attempt.
	Status DownloadStatus `json:"status" yaml:"status"`

	// Error is the human-readable cause, set iff Status is failed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// Bytes is the file size, set iff Status is succeeded or already_exists.
	Bytes int64 `json:"bytes,omitempty" yaml:"bytes,omitempty"`

	// AttemptedAt is when the attempt started.
	AttemptedAt time.Time `json:"attempted_at" yaml:"attempted_at"`
}

// BatchReport aggregates the per-item results of a batch download. The
// counters are exact tallies over Results.
type BatchReport struct {
	Results   []DownloadResult `json:"results" yaml:"results"`
	Succeeded int              `json:"succeeded" yaml:"succeeded"`
	Skipped   int              `json:"skipped" yaml:"skipped"`
	Failed    int              `json:"failed" yaml:"failed"`
}

// Add appends a result and updates the tallies.
func (r *BatchReport) Add(res DownloadResult) {
	r.Results = append(r.Results, res)
	switch res.Status {
	case StatusSucceeded:
		r.Succeeded++
	case StatusAlreadyExists:
		r.Skipped++
	case StatusFailed:
		r.Failed++
	}
}

// Total returns the number of identifiers processed.
func (r BatchReport) Total() int {
	return r.Succeeded + r.Skipped + r.Failed
}

// HasFailures reports whether any item failed.
func (r BatchReport) HasFailures() bool {
	return r.Failed > 0
}

// DownloadStats summarizes the on-disk download tree.
type DownloadStats struct {
	// Dir is the base download directory that was scanned.
	Dir string `json:"dir" yaml:"dir"`

	// TotalFiles is the number of PDFs under Dir.
	TotalFiles int `json:"total_files" yaml:"total_files"`

	// TotalBytes is the combined size of all PDFs.
	TotalBytes int64 `json:"total_bytes" yaml:"total_bytes"`

	// ByMonth maps "YYYY-MM" to per-category PDF counts.
	ByMonth map[string]map[string]int `json:"by_month" yaml:"by_month"`

	// Recent lists the most recently modified PDF filenames, newest first.
	Recent []string `json:"recent" yaml:"recent"`
}
