// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for arxiv-mcp: the
// structured search query, paper metadata, download results, and the
// per-stage configuration blocks.
package types

import "time"

// SortOrder selects how arXiv orders search results.
type SortOrder string

const (
	SortRelevance     SortOrder = "relevance"
	SortSubmittedDate SortOrder = "submittedDate"
)

// SearchQuery is a structured arXiv query produced by the query translator.
// A zero time.Time means the bound is unset. Date bounds are half-open:
// DateFrom is inclusive, DateTo is exclusive.
type SearchQuery struct {
	// Keywords are general search terms matched against all fields.
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`

	// Title restricts matching to paper titles.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Author is an author name filter.
	Author string `json:"author,omitempty" yaml:"author,omitempty"`

	// Abstract restricts matching to paper abstracts.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Categories are arXiv category codes (e.g. "math.CO", "cs.AI").
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`

	// DateFrom is the inclusive lower bound on the published date.
	DateFrom time.Time `json:"date_from,omitempty" yaml:"date_from,omitempty"`

	// DateTo is the exclusive upper bound on the published date.
	DateTo time.Time `json:"date_to,omitempty" yaml:"date_to,omitempty"`

	// MaxResults is the maximum number of papers to return.
	MaxResults int `json:"max_results" yaml:"max_results"`

	// SortBy selects the upstream ordering (default submittedDate).
	SortBy SortOrder `json:"sort_by,omitempty" yaml:"sort_by,omitempty"`
}

// IsEmpty reports whether the query contains no searchable terms. Such a
// query would match essentially all of arXiv; callers should ask the user
// to narrow it instead of issuing it.
func (q SearchQuery) IsEmpty() bool {
	return len(q.Keywords) == 0 && q.Title == "" && q.Author == "" &&
		q.Abstract == "" && len(q.Categories) == 0
}

// HasDateFilter reports whether either date bound is set.
func (q SearchQuery) HasDateFilter() bool {
	return !q.DateFrom.IsZero() || !q.DateTo.IsZero()
}

// ClampMaxResults applies the default when MaxResults is unset and the
// ceiling when it exceeds max.
func (q *SearchQuery) ClampMaxResults(def, max int) {
	if q.MaxResults <= 0 {
		q.MaxResults = def
	}
	if max > 0 && q.MaxResults > max {
		q.MaxResults = max
	}
}
