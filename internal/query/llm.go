// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
	"go.uber.org/zap"

	"github.com/pdiddy/arxiv-mcp/internal/logger"
	"github.com/pdiddy/arxiv-mcp/pkg/types"
)

const defaultModel = "gpt-4o-mini"

const systemPrompt = `You are an arXiv search query parser. Convert natural language queries into structured search parameters.

Extract:
- keywords: general search terms
- title: if searching specifically in titles
- author: author names
- abstract: if searching in abstracts
- categories: arXiv category codes (e.g. math.CO for combinatorics, cs.LG for machine learning, quant-ph for quantum physics)
- date_from / date_to: ISO dates (YYYY-MM-DD); resolve relative phrases like "after December 2024" to actual dates

Only fill fields the query actually asks for. Leave everything else empty.`

// llmQuery is the JSON shape requested from the completion backend.
type llmQuery struct {
	Keywords   []string `json:"keywords,omitempty"`
	Title      string   `json:"title,omitempty"`
	Author     string   `json:"author,omitempty"`
	Abstract   string   `json:"abstract,omitempty"`
	Categories []string `json:"categories,omitempty"`
	DateFrom   string   `json:"date_from,omitempty"`
	DateTo     string   `json:"date_to,omitempty"`
	MaxResults int      `json:"max_results,omitempty"`
}

// querySchema is the JSON schema sent with the structured-output request.
var querySchema = &jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"keywords":    {Type: jsonschema.Array, Items: &jsonschema.Definition{Type: jsonschema.String}},
		"title":       {Type: jsonschema.String},
		"author":      {Type: jsonschema.String},
		"abstract":    {Type: jsonschema.String},
		"categories":  {Type: jsonschema.Array, Items: &jsonschema.Definition{Type: jsonschema.String}},
		"date_from":   {Type: jsonschema.String},
		"date_to":     {Type: jsonschema.String},
		"max_results": {Type: jsonschema.Integer},
	},
	AdditionalProperties: false,
}

// completionClient is the slice of the OpenAI client the parser uses,
// narrowed so tests can substitute a stub.
type completionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// LLMParser sends a structured-extraction prompt to a completion backend
// and maps the response onto a SearchQuery. Any backend or parse failure
// degrades to the rule-based parser rather than failing the search.
type LLMParser struct {
	client   completionClient
	model    string
	fallback *RuleParser
}

func newLLMParser(cfg types.ParserConfig) *LLMParser {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	return &LLMParser{
		client:   openai.NewClient(cfg.OpenAIAPIKey),
		model:    model,
		fallback: NewRuleParser(cfg),
	}
}

// Translate implements Parser.
func (p *LLMParser) Translate(ctx context.Context, text string, maxResults int) types.SearchQuery {
	l := logger.GetLogger()

	parsed, err := p.extract(ctx, text)
	if err != nil {
		l.Warn("LLM query parse failed, using rule-based parser",
			zap.String("query", text),
			zap.Error(err),
		)
		return p.fallback.Translate(ctx, text, maxResults)
	}

	q := types.SearchQuery{
		Keywords:   parsed.Keywords,
		Title:      parsed.Title,
		Author:     parsed.Author,
		Abstract:   parsed.Abstract,
		Categories: parsed.Categories,
		MaxResults: maxResults,
	}
	if parsed.MaxResults > 0 {
		q.MaxResults = parsed.MaxResults
	}
	if t, err := time.Parse("2006-01-02", parsed.DateFrom); err == nil {
		q.DateFrom = t
	}
	if t, err := time.Parse("2006-01-02", parsed.DateTo); err == nil {
		q.DateTo = t
	}

	// A crossed interval from the backend is as useless as an unparseable
	// one; drop the filter.
	if !q.DateFrom.IsZero() && !q.DateTo.IsZero() && q.DateTo.Before(q.DateFrom) {
		q.DateFrom, q.DateTo = time.Time{}, time.Time{}
	}

	// The backend occasionally returns nothing usable for vague input;
	// the rule parser at least salvages keywords.
	if q.IsEmpty() {
		return p.fallback.Translate(ctx, text, maxResults)
	}

	q.ClampMaxResults(p.fallback.defaultResults, p.fallback.maxResults)
	return q
}

func (p *LLMParser) extract(ctx context.Context, text string) (llmQuery, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "search_query",
				Schema: querySchema,
			},
		},
	})
	if err != nil {
		return llmQuery{}, err
	}
	if len(resp.Choices) == 0 {
		return llmQuery{}, errEmptyCompletion
	}

	var parsed llmQuery
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &parsed); err != nil {
		return llmQuery{}, err
	}
	return parsed, nil
}

var errEmptyCompletion = errors.New("completion backend returned no choices")
