// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/arxiv-mcp/pkg/types"
)

const (
	// DefaultMaxResults is used when a caller gives no result count.
	DefaultMaxResults = 10

	// ResultCeiling is the hard cap on requested result counts.
	ResultCeiling = 50

	// maxKeywords bounds the keyword list extracted from free text.
	maxKeywords = 5
)

// Parser translates natural-language text into a structured SearchQuery.
// Translate never fails: the worst input yields an empty-filter query that
// the caller should treat as too broad. The maxResults hint is clamped to
// the configured ceiling.
type Parser interface {
	Translate(ctx context.Context, text string, maxResults int) types.SearchQuery
}

// New selects the translator strategy once, at startup: the OpenAI-backed
// parser when an API key is configured, the rule-based parser otherwise.
func New(cfg types.ParserConfig) Parser {
	if cfg.OpenAIAPIKey != "" {
		return newLLMParser(cfg)
	}
	return NewRuleParser(cfg)
}

// RuleParser is the regex/heuristic translator. It is deterministic and
// has no external dependencies, which also makes it the fallback for the
// LLM-backed parser.
type RuleParser struct {
	defaultResults int
	maxResults     int
}

// NewRuleParser returns a rule-based parser using the configured result
// bounds, with package defaults for unset values.
func NewRuleParser(cfg types.ParserConfig) *RuleParser {
	p := &RuleParser{
		defaultResults: cfg.DefaultResults,
		maxResults:     cfg.MaxResults,
	}
	if p.defaultResults <= 0 {
		p.defaultResults = DefaultMaxResults
	}
	if p.maxResults <= 0 {
		p.maxResults = ResultCeiling
	}
	return p
}

// stopwords are dropped from the keyword pool. The set covers query
// scaffolding ("find", "papers about") and the connectives consumed by
// the date and author extractors.
var stopwords = map[string]bool{
	"find": true, "search": true, "papers": true, "paper": true,
	"articles": true, "article": true, "results": true, "about": true,
	"on": true, "the": true, "a": true, "an": true, "in": true, "by": true,
	"after": true, "before": true, "since": true, "until": true,
	"published": true, "recent": true, "latest": true, "new": true,
	"from": true, "with": true, "for": true, "and": true, "or": true,
	"research": true, "show": true, "me": true, "get": true, "author": true,
	"authors": true,
}

// monthNames are dropped alongside stopwords so date fragments the
// resolver already consumed never leak into keywords.
var monthNames = map[string]bool{
	"january": true, "february": true, "march": true, "april": true,
	"may": true, "june": true, "july": true, "august": true,
	"september": true, "october": true, "november": true, "december": true,
}

// authorPattern finds capitalized name sequences following "by" or
// "author(s)" in the original-cased text.
var authorPattern = regexp.MustCompile(`\b(?:by|authors?)[\s:]+((?:[A-Z][A-Za-z'.-]+)(?:\s+[A-Z][A-Za-z'.-]+)+)`)

// limitPattern extracts an explicit result count ("5 papers on ...").
var limitPattern = regexp.MustCompile(`\b(\d+)\s+(?:papers?|results?|articles?)\b`)

// categoryCodePattern matches explicit arXiv category codes ("math.CO",
// "quant-ph") so a user who already knows the code bypasses the phrase table.
// Hyphenated archives come before their prefixes so "math-ph" is not
// consumed as "math".
var categoryCodePattern = regexp.MustCompile(`\b(quant-ph|astro-ph|cond-mat|gr-qc|hep-ex|hep-lat|hep-ph|hep-th|math-ph|nucl-ex|nucl-th|q-bio|q-fin|math|cs|stat|eess|econ|physics|nlin)(\.[A-Za-z]{2})?\b`)

// Translate tokenizes the input, strips stopwords, and applies the
// category table, the date resolver, and the author extractor. Remaining
// significant tokens become keywords.
func (p *RuleParser) Translate(_ context.Context, text string, maxResults int) types.SearchQuery {
	q := types.SearchQuery{MaxResults: maxResults}

	text = strings.TrimSpace(text)
	if text == "" {
		q.ClampMaxResults(p.defaultResults, p.maxResults)
		return q
	}

	lower := strings.ToLower(text)
	consumed := make(map[string]bool)

	// Dates.
	q.DateFrom, q.DateTo = ResolveDates(text)
	for _, phrase := range datePhrases(lower) {
		markConsumed(consumed, phrase)
	}

	// Categories: explicit codes first, then the phrase table.
	seen := make(map[string]bool)
	for _, m := range categoryCodePattern.FindAllStringSubmatch(text, -1) {
		code := m[1] + m[2]
		// A bare archive name like "physics" stays a phrase-table concern;
		// only dotted codes and hyphenated archives are explicit.
		if m[2] == "" && !strings.Contains(m[1], "-") {
			continue
		}
		if !seen[code] {
			seen[code] = true
			q.Categories = append(q.Categories, code)
			markConsumed(consumed, strings.ToLower(code))
		}
	}
	for _, code := range MapCategories(lower) {
		if !seen[code] {
			seen[code] = true
			q.Categories = append(q.Categories, code)
		}
	}
	for _, phrase := range categoryPhrases(lower) {
		markConsumed(consumed, phrase)
	}

	// Author.
	if m := authorPattern.FindStringSubmatch(text); m != nil {
		q.Author = m[1]
		markConsumed(consumed, strings.ToLower(m[1]))
	}

	// Explicit result count overrides the hint.
	if m := limitPattern.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			q.MaxResults = n
		}
	}

	// Remaining significant tokens become keywords.
	for _, tok := range strings.Fields(lower) {
		tok = strings.Trim(tok, ".,;:!?()\"'")
		if len(tok) <= 2 || stopwords[tok] || monthNames[tok] || consumed[tok] {
			continue
		}
		if _, err := strconv.Atoi(tok); err == nil {
			continue
		}
		q.Keywords = append(q.Keywords, tok)
		if len(q.Keywords) >= maxKeywords {
			break
		}
	}

	q.ClampMaxResults(p.defaultResults, p.maxResults)
	return q
}

// markConsumed records every word of phrase so keyword extraction skips it.
func markConsumed(consumed map[string]bool, phrase string) {
	for _, w := range strings.Fields(phrase) {
		consumed[strings.Trim(w, ".,;:!?()\"'")] = true
	}
}
