package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kilianp07/skejul/core/model"
	"github.com/kilianp07/skejul/core/prompts"
)

// StructuredExtractor implements Extractor with a structured output call.
type StructuredExtractor struct {
	Client Client
}

// NewExtractor wraps c.
func NewExtractor(c Client) *StructuredExtractor { return &StructuredExtractor{Client: c} }

// Extract sends the text to the model and decodes the answer. An empty
// answer object yields empty data rather than an error.
func (e *StructuredExtractor) Extract(ctx context.Context, input string) (*model.TimetableData, error) {
	raw, err := e.Client.Complete(ctx, Request{
		Kind:       KindExtract,
		System:     prompts.ExtractSystemPrompt,
		User:       input,
		SchemaName: prompts.ExtractionSchemaName,
		Schema:     prompts.ExtractionSchema(),
	})
	if err != nil {
		return nil, err
	}
	body := StripCodeFences(raw)
	if body == "" || body == "null" {
		return nil, nil
	}
	var data model.TimetableData
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		return nil, fmt.Errorf("%w: extraction: %v", ErrMalformedOutput, err)
	}
	data.Normalize()
	return &data, nil
}

// ScheduleGenerator implements Generator by sending the request as JSON.
type ScheduleGenerator struct {
	Client Client
}

// NewGenerator wraps c.
func NewGenerator(c Client) *ScheduleGenerator { return &ScheduleGenerator{Client: c} }

// Generate sends req and returns the raw answer.
func (g *ScheduleGenerator) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	payload, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode generation request: %w", err)
	}
	raw, err := g.Client.Complete(ctx, Request{
		Kind:   KindGenerate,
		Tag:    req.Group(),
		System: prompts.GenerateSystemPrompt,
		User:   string(payload),
	})
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(raw) == "" {
		return "", ErrEmptyCompletion
	}
	return raw, nil
}
