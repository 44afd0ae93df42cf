package timetables

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/skejul/core/model"
	"github.com/kilianp07/skejul/core/pipeline"
)

type stubRunner struct {
	input string
	state *pipeline.State
	err   error
}

func (s *stubRunner) Run(_ context.Context, input string) (*pipeline.State, error) {
	s.input = input
	return s.state, s.err
}

func post(h http.Handler, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/timetables", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHandlerSuccess(t *testing.T) {
	state := &pipeline.State{RunID: "r1", Validated: true, Groups: []string{"JSS 1"},
		Timetables: model.ClassTimetables{"JSS 1": {"Monday": {}}}}
	runner := &stubRunner{state: state}
	h := &Handler{Runner: runner}

	rr := post(h, "text/plain", "Our school runs Monday to Friday")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Our school runs Monday to Friday", runner.input)
	var out map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&out))
	assert.Equal(t, "r1", out["run_id"])
	assert.Contains(t, out, "class_timetables")

	rr = post(h, "application/json; charset=utf-8", `{"text": "from json"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "from json", runner.input)
}

func TestHandlerInvalidInput(t *testing.T) {
	runner := &stubRunner{
		state: &pipeline.State{RunID: "r2"},
		err:   &pipeline.ValidationError{Missing: []string{pipeline.MissingGroups}},
	}
	rr := post(&Handler{Runner: runner}, "", "just some text")
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	var out errorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&out))
	assert.Equal(t, []string{pipeline.MissingGroups}, out.Missing)
	assert.Equal(t, "r2", out.RunID)
}

func TestHandlerErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"malformed", pipeline.ErrMalformedOutput, http.StatusBadGateway},
		{"missing group", pipeline.ErrGroupMissing, http.StatusBadGateway},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := post(&Handler{Runner: &stubRunner{err: tc.err}}, "", "text")
			assert.Equal(t, tc.code, rr.Code)
		})
	}
}

func TestHandlerBadBody(t *testing.T) {
	h := &Handler{Runner: &stubRunner{}, MaxBody: 8}
	assert.Equal(t, http.StatusBadRequest, post(h, "", "   ").Code)
	assert.Equal(t, http.StatusBadRequest, post(h, "application/json", `{"text":`).Code)
	assert.Equal(t, http.StatusBadRequest, post(h, "", strings.Repeat("x", 20)).Code)
}
