// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date phrase patterns. Each captures a date expression: an ISO date
// ("2024-12-01"), a month-year pair ("December 2024"), or a bare year.
var (
	dateFromPattern = regexp.MustCompile(`(?:published\s+)?(?:after|since)\s+((?:\d{4}-\d{2}-\d{2})|(?:[a-z]+\s+\d{4})|(?:\d{4}))`)
	dateToPattern   = regexp.MustCompile(`(?:published\s+)?(?:before|until)\s+((?:\d{4}-\d{2}-\d{2})|(?:[a-z]+\s+\d{4})|(?:\d{4}))`)
	inYearPattern   = regexp.MustCompile(`\bin\s+(\d{4})\b`)
)

// ResolveDates extracts date expressions from free text and returns a
// half-open interval: from is inclusive, to is exclusive, and a zero time
// means the bound is open. Partially specified dates resolve to the first
// day of the stated period, so "before 2024" and "before January 2024"
// both mean strictly earlier than 2024-01-01. Fragments that do not parse
// are ignored; resolution degrades to no filter rather than failing.
func ResolveDates(text string) (from, to time.Time) {
	lower := strings.ToLower(text)

	if m := dateFromPattern.FindStringSubmatch(lower); m != nil {
		if t, ok := parseDatePhrase(m[1]); ok {
			from = t
		}
	}
	if m := dateToPattern.FindStringSubmatch(lower); m != nil {
		if t, ok := parseDatePhrase(m[1]); ok {
			to = t
		}
	}

	// "in 2024" means the whole year: [2024-01-01, 2025-01-01).
	if from.IsZero() && to.IsZero() {
		if m := inYearPattern.FindStringSubmatch(lower); m != nil {
			if year, err := strconv.Atoi(m[1]); err == nil && plausibleYear(year) {
				from = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
				to = from.AddDate(1, 0, 0)
			}
		}
	}

	// A crossed interval would exclude everything; drop the filter instead.
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return time.Time{}, time.Time{}
	}
	return from, to
}

// parseDatePhrase parses one captured date expression to the first day of
// the stated period.
func parseDatePhrase(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)

	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse("January 2006", titleCase(s)); err == nil {
		return t, true
	}
	if year, err := strconv.Atoi(s); err == nil && plausibleYear(year) {
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// datePhrases returns the date expressions found in lowered text so the
// rule parser can exclude their words from the keyword pool.
func datePhrases(lower string) []string {
	var phrases []string
	for _, p := range []*regexp.Regexp{dateFromPattern, dateToPattern} {
		if m := p.FindStringSubmatch(lower); m != nil {
			phrases = append(phrases, m[1])
		}
	}
	if m := inYearPattern.FindStringSubmatch(lower); m != nil {
		phrases = append(phrases, m[1])
	}
	return phrases
}

func plausibleYear(year int) bool {
	return year >= 1991 && year <= 2100
}

// titleCase uppercases the first letter of each word ("december 2024" →
// "December 2024") so month names parse with the stdlib layout.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
