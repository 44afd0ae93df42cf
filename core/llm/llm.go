// Package llm defines how the pipeline talks to a language model. Providers
// in infra/llm implement Client; Extractor and Generator compose prompts on
// top of it.
package llm

import (
	"context"
	"errors"

	"github.com/kilianp07/skejul/core/model"
)

// Kind tells a provider which call is being made.
type Kind string

const (
	KindExtract  Kind = "extract"
	KindGenerate Kind = "generate"
)

var (
	// ErrMalformedOutput is returned when a model answer cannot be decoded.
	ErrMalformedOutput = errors.New("malformed model output")
	// ErrEmptyCompletion is returned when a provider answers with no content.
	ErrEmptyCompletion = errors.New("empty completion")
)

// Request is a single completion call.
type Request struct {
	Kind   Kind
	Tag    string
	System string
	User   string
	// SchemaName and Schema request structured output when set.
	SchemaName string
	Schema     map[string]any
}

// Client returns the raw text answer of a model.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Extractor turns free text into structured timetable fields.
type Extractor interface {
	Extract(ctx context.Context, input string) (*model.TimetableData, error)
}

// GenerationRequest is the payload sent for one class group.
type GenerationRequest struct {
	Days               []model.DayOfWeek  `json:"days"`
	StartTime          string             `json:"start_time"`
	EndTime            string             `json:"end_time"`
	Periods            []model.TimePeriod `json:"periods"`
	ClassGroups        []model.ClassGroup `json:"class_groups"`
	TeacherConstraints model.TeacherBusy  `json:"teacher_constraints"`
}

// Group returns the name of the single class group in the request.
func (r GenerationRequest) Group() string {
	if len(r.ClassGroups) == 0 {
		return ""
	}
	return r.ClassGroups[0].Name
}

// Generator asks the model for the week of one class group and returns its
// raw answer.
type Generator interface {
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}
