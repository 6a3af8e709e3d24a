// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/pdiddy/arxiv-mcp/pkg/types"
)

func ruleParser() *RuleParser {
	return NewRuleParser(types.ParserConfig{})
}

func TestRuleParserEmptyInput(t *testing.T) {
	for _, text := range []string{"", "   ", "\t\n"} {
		q := ruleParser().Translate(context.Background(), text, 0)
		if !q.IsEmpty() {
			t.Errorf("Translate(%q) not empty: %+v", text, q)
		}
		if q.MaxResults != DefaultMaxResults {
			t.Errorf("MaxResults = %d, want %d", q.MaxResults, DefaultMaxResults)
		}
	}
}

func TestRuleParserSubjectAndDate(t *testing.T) {
	q := ruleParser().Translate(context.Background(), "find combinatorics papers after December 2024", 0)

	if want := []string{"math.CO"}; !reflect.DeepEqual(q.Categories, want) {
		t.Errorf("Categories = %v, want %v", q.Categories, want)
	}
	if want := time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC); !q.DateFrom.Equal(want) {
		t.Errorf("DateFrom = %v, want %v", q.DateFrom, want)
	}
	if !q.DateTo.IsZero() {
		t.Errorf("DateTo = %v, want zero", q.DateTo)
	}
	// The subject phrase and the date fragment must not leak into keywords.
	if len(q.Keywords) != 0 {
		t.Errorf("Keywords = %v, want none", q.Keywords)
	}
}

func TestRuleParserAuthorAndLimit(t *testing.T) {
	q := ruleParser().Translate(context.Background(), "5 papers on quantum entanglement by John Smith", 0)

	if q.Author != "John Smith" {
		t.Errorf("Author = %q, want %q", q.Author, "John Smith")
	}
	if q.MaxResults != 5 {
		t.Errorf("MaxResults = %d, want 5", q.MaxResults)
	}
	if want := []string{"quant-ph"}; !reflect.DeepEqual(q.Categories, want) {
		t.Errorf("Categories = %v, want %v", q.Categories, want)
	}
	if want := []string{"entanglement"}; !reflect.DeepEqual(q.Keywords, want) {
		t.Errorf("Keywords = %v, want %v", q.Keywords, want)
	}
}

func TestRuleParserExplicitCategoryCodes(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"dotted code", "math.CO papers", []string{"math.CO"}},
		{"hyphenated archive", "quant-ph papers on teleportation", []string{"quant-ph"}},
		{"multiple dotted codes", "cs.LG and stat.ML papers", []string{"cs.LG", "stat.ML"}},
		{"bare archive name falls to phrase table", "physics papers", []string{"physics"}},
		{"math-ph not consumed as math", "math-ph papers", []string{"math-ph"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := ruleParser().Translate(context.Background(), tt.text, 0)
			if !reflect.DeepEqual(q.Categories, tt.want) {
				t.Errorf("Categories = %v, want %v", q.Categories, tt.want)
			}
		})
	}
}

func TestRuleParserKeywordFiltering(t *testing.T) {
	q := ruleParser().Translate(context.Background(), "show me recent research about transformer architectures", 0)
	want := []string{"transformer", "architectures"}
	if !reflect.DeepEqual(q.Keywords, want) {
		t.Errorf("Keywords = %v, want %v", q.Keywords, want)
	}
}

func TestRuleParserKeywordCap(t *testing.T) {
	q := ruleParser().Translate(context.Background(),
		"alpha bravo charlie delta echo foxtrot golf hotel", 0)
	if len(q.Keywords) != maxKeywords {
		t.Errorf("len(Keywords) = %d, want %d", len(q.Keywords), maxKeywords)
	}
}

func TestRuleParserClampsMaxResults(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		maxResults int
		want       int
	}{
		{"hint respected", "quantum computing", 25, 25},
		{"hint above ceiling", "quantum computing", 500, ResultCeiling},
		{"zero hint gets default", "quantum computing", 0, DefaultMaxResults},
		{"negative hint gets default", "quantum computing", -3, DefaultMaxResults},
		{"explicit count wins over hint", "200 papers about transformers", 5, ResultCeiling},
		{"explicit count within ceiling", "20 papers about transformers", 0, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := ruleParser().Translate(context.Background(), tt.text, tt.maxResults)
			if q.MaxResults != tt.want {
				t.Errorf("MaxResults = %d, want %d", q.MaxResults, tt.want)
			}
		})
	}
}

func TestRuleParserNeverFails(t *testing.T) {
	// Garbage in, empty-but-valid query out.
	inputs := []string{
		"!!! ??? ...",
		"a b c",
		"1234 5678",
		"の 量子 コンピュータ",
	}
	for _, text := range inputs {
		q := ruleParser().Translate(context.Background(), text, 0)
		if q.MaxResults <= 0 {
			t.Errorf("Translate(%q): MaxResults = %d, want positive", text, q.MaxResults)
		}
	}
}

func TestNewSelectsParser(t *testing.T) {
	if _, ok := New(types.ParserConfig{}).(*RuleParser); !ok {
		t.Error("New without key should return the rule parser")
	}
	if _, ok := New(types.ParserConfig{OpenAIAPIKey: "sk-test"}).(*LLMParser); !ok {
		t.Error("New with key should return the LLM parser")
	}
}
