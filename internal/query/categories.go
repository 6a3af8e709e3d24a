// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query translates natural-language requests into structured
// arXiv search queries. Two translators share the Parser interface: a
// rule-based one built on regex heuristics and a static category table,
// and an optional OpenAI-backed one that falls back to the rules on any
// backend failure.
package query

import "strings"

// categoryMapping binds a subject phrase to its arXiv category codes.
// Matching is by case-insensitive substring, first table entry wins for
// ordering, and overlapping phrases may each contribute codes.
type categoryMapping struct {
	phrase string
	codes  []string
}

// categoryTable maps common subject phrases to arXiv categories. More
// specific phrases come before the general ones that contain them so
// "machine learning" is tried before "machine".
var categoryTable = []categoryMapping{
	{"combinatorics", []string{"math.CO"}},
	{"algebra", []string{"math.AG", "math.RA"}},
	{"geometry", []string{"math.DG", "math.AG"}},
	{"analysis", []string{"math.CA", "math.FA"}},
	{"probability", []string{"math.PR"}},
	{"number theory", []string{"math.NT"}},
	{"statistics", []string{"stat", "math.ST"}},
	{"mathematics", []string{"math"}},
	{"quantum", []string{"quant-ph"}},
	{"high energy", []string{"hep-th"}},
	{"condensed matter", []string{"cond-mat"}},
	{"astrophysics", []string{"astro-ph"}},
	{"physics", []string{"physics"}},
	{"artificial intelligence", []string{"cs.AI"}},
	{"machine learning", []string{"cs.LG", "stat.ML"}},
	{"deep learning", []string{"cs.LG"}},
	{"computer vision", []string{"cs.CV"}},
	{"natural language", []string{"cs.CL"}},
	{"nlp", []string{"cs.CL"}},
	{"cryptography", []string{"cs.CR"}},
	{"robotics", []string{"cs.RO"}},
	{"computer science", []string{"cs"}},
	{"biology", []string{"q-bio"}},
	{"finance", []string{"q-fin"}},
	{"economics", []string{"econ"}},
}

// MapCategories returns the arXiv category codes for every subject phrase
// found in text. Unknown text yields an empty slice; callers fall back to
// treating the words as keywords. Codes are returned in table order
// without duplicates.
func MapCategories(text string) []string {
	lower := strings.ToLower(text)

	var codes []string
	seen := make(map[string]bool)
	for _, m := range categoryTable {
		if !strings.Contains(lower, m.phrase) {
			continue
		}
		for _, code := range m.codes {
			if !seen[code] {
				seen[code] = true
				codes = append(codes, code)
			}
		}
	}
	return codes
}

// categoryPhrases returns the table phrases present in text, used by the
// rule parser to drop matched phrases from the keyword pool.
func categoryPhrases(lower string) []string {
	var phrases []string
	for _, m := range categoryTable {
		if strings.Contains(lower, m.phrase) {
			phrases = append(phrases, m.phrase)
		}
	}
	return phrases
}
