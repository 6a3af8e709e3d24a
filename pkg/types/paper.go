// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Paper holds the metadata for one arXiv paper as returned by the API.
// Instances are built by the search client and read-only afterward.
type Paper struct {
	// ArxivID is the canonical identifier without version suffix
	// (e.g. "2301.07041").
	ArxivID string `json:"arxiv_id" yaml:"arxiv_id"`

	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Abstract is the paper abstract.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Categories are the arXiv categories, primary first.
	Categories []string `json:"categories" yaml:"categories"`

	// PrimaryCategory is the primary arXiv category (e.g. "cs.LG").
	PrimaryCategory string `json:"primary_category" yaml:"primary_category"`

	// Published is the first submission date.
	Published time.Time `json:"published" yaml:"published"`

	// Updated is the date of the most recent version.
	Updated time.Time `json:"updated" yaml:"updated"`

	// PDFURL is the direct link to the PDF.
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`

	// Comment is the optional author comment (page count, venue, etc.).
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`

	// JournalRef is the optional journal reference.
	JournalRef string `json:"journal_ref,omitempty" yaml:"journal_ref,omitempty"`
}
