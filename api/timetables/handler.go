package timetables

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/kilianp07/skejul/core/logger"
	"github.com/kilianp07/skejul/core/pipeline"
)

// Runner executes one pipeline run.
type Runner interface {
	Run(ctx context.Context, input string) (*pipeline.State, error)
}

// Handler serves POST /api/timetables. The body is either plain text or a
// JSON object {"text": "..."}.
type Handler struct {
	Runner  Runner
	MaxBody int64
	Timeout time.Duration
	Log     logger.Logger
}

type request struct {
	Text string `json:"text"`
}

type errorResponse struct {
	RunID   string   `json:"run_id,omitempty"`
	Error   string   `json:"error"`
	Missing []string `json:"missing,omitempty"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger.OrNop(h.Log)
	input, err := h.readInput(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	ctx := r.Context()
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}
	state, err := h.Runner.Run(ctx, input)
	if err == nil {
		writeJSON(w, http.StatusOK, state)
		return
	}

	resp := errorResponse{Error: err.Error()}
	if state != nil {
		resp.RunID = state.RunID
	}
	var verr *pipeline.ValidationError
	switch {
	case errors.As(err, &verr):
		resp.Missing = verr.Missing
		writeJSON(w, http.StatusUnprocessableEntity, resp)
	case errors.Is(err, pipeline.ErrMalformedOutput), errors.Is(err, pipeline.ErrGroupMissing):
		writeJSON(w, http.StatusBadGateway, resp)
	case errors.Is(err, context.DeadlineExceeded):
		writeJSON(w, http.StatusGatewayTimeout, resp)
	default:
		log.Errorf("timetable run failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, resp)
	}
}

func (h *Handler) readInput(w http.ResponseWriter, r *http.Request) (string, error) {
	body := r.Body
	if h.MaxBody > 0 {
		body = http.MaxBytesReader(w, r.Body, h.MaxBody)
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	text := string(b)
	if ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); ct == "application/json" {
		var req request
		if err := json.Unmarshal(b, &req); err != nil {
			return "", err
		}
		text = req.Text
	}
	if strings.TrimSpace(text) == "" {
		return "", errors.New("empty school description")
	}
	return text, nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
