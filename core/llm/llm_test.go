package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/skejul/core/model"
)

type fakeClient struct {
	answer string
	err    error
	reqs   []Request
}

func (f *fakeClient) Complete(_ context.Context, req Request) (string, error) {
	f.reqs = append(f.reqs, req)
	return f.answer, f.err
}

func TestStripCodeFences(t *testing.T) {
	cases := []struct{ in, want string }{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```python\nx = 1\n```", "x = 1"},
		{"```\n[1,2]\n```", "[1,2]"},
		{"  {\"plain\":true}  ", `{"plain":true}`},
		{"before ```json {\"b\":2}``` after", `before {"b":2} after`},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, StripCodeFences(c.in))
	}
}

func TestStructuredExtractor(t *testing.T) {
	fc := &fakeClient{answer: "```json\n" + `{
	  "days": ["monday", "Tue"],
	  "start_time": "7:30 AM",
	  "end_time": "2:00 PM",
	  "periods": [{"type": "Break", "start": "10:00 AM", "end": "10:20 AM"}],
	  "class_groups": [{"name": " JSS 1 ", "subjects": [{"name": "Maths", "teacher": "Mr. Ade", "slots_per_week": 5}]}]
	}` + "\n```"}
	data, err := NewExtractor(fc).Extract(context.Background(), "some text")
	require.NoError(t, err)
	require.NotNil(t, data)
	assert.Equal(t, []model.DayOfWeek{model.Monday, model.Tuesday}, data.Days)
	assert.Equal(t, model.PeriodBreak, data.Periods[0].Type)
	assert.Equal(t, "JSS 1", data.ClassGroups[0].Name)
	assert.Equal(t, 5, data.ClassGroups[0].Subjects[0].SlotsPerWeek)

	require.Len(t, fc.reqs, 1)
	assert.Equal(t, KindExtract, fc.reqs[0].Kind)
	assert.Equal(t, "some text", fc.reqs[0].User)
	assert.NotEmpty(t, fc.reqs[0].Schema)
}

func TestStructuredExtractorErrors(t *testing.T) {
	_, err := NewExtractor(&fakeClient{answer: "not json"}).Extract(context.Background(), "x")
	assert.ErrorIs(t, err, ErrMalformedOutput)

	boom := errors.New("boom")
	_, err = NewExtractor(&fakeClient{err: boom}).Extract(context.Background(), "x")
	assert.ErrorIs(t, err, boom)

	data, err := NewExtractor(&fakeClient{answer: "null"}).Extract(context.Background(), "x")
	assert.NoError(t, err)
	assert.Nil(t, data)
}

func TestScheduleGeneratorPayload(t *testing.T) {
	fc := &fakeClient{answer: `{"JSS 1": {}}`}
	req := GenerationRequest{
		Days:               []model.DayOfWeek{model.Monday},
		StartTime:          "7:30 AM",
		EndTime:            "2:00 PM",
		ClassGroups:        []model.ClassGroup{{Name: "JSS 1"}},
		TeacherConstraints: model.TeacherBusy{"Mr. Ade": {"Monday 08:00-08:40"}},
	}
	raw, err := NewGenerator(fc).Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, `{"JSS 1": {}}`, raw)

	sent := fc.reqs[0]
	assert.Equal(t, KindGenerate, sent.Kind)
	assert.Equal(t, "JSS 1", sent.Tag)
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(sent.User), &payload))
	for _, k := range []string{"days", "start_time", "end_time", "periods", "class_groups", "teacher_constraints"} {
		assert.Contains(t, payload, k)
	}

	_, err = NewGenerator(&fakeClient{answer: "  "}).Generate(context.Background(), req)
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}
