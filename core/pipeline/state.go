package pipeline

import (
	"time"

	"github.com/kilianp07/skejul/core/grid"
	"github.com/kilianp07/skejul/core/model"
	"github.com/kilianp07/skejul/core/report"
)

// State is threaded through the steps of one run. It is owned by that run
// and must not be shared.
type State struct {
	RunID     string    `json:"run_id"`
	StartedAt time.Time `json:"started_at"`
	Input     string    `json:"-"`

	Data      *model.TimetableData `json:"data,omitempty"`
	Validated bool                 `json:"validated"`
	Missing   []string             `json:"missing,omitempty"`

	Groups     []string              `json:"class_groups"`
	Index      int                   `json:"-"`
	Timetables model.ClassTimetables `json:"class_timetables"`
	Busy       model.TeacherBusy     `json:"teacher_busy"`

	Grids             []grid.Grid              `json:"grids,omitempty"`
	TeacherTimetables report.TeacherTimetables `json:"teacher_timetables,omitempty"`
	Report            *report.Report           `json:"report,omitempty"`
	Files             []string                 `json:"files,omitempty"`

	// Trail lists the steps executed so far.
	Trail []string `json:"trail"`
}

// Current returns the name of the class group being generated.
func (s *State) Current() string {
	if s.Index < 0 || s.Index >= len(s.Groups) {
		return ""
	}
	return s.Groups[s.Index]
}
