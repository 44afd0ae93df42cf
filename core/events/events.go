package events

import "time"

// Event is any value published on the pipeline bus.
type Event interface {
	isEvent()
}

// StepEvent is published after every step.
type StepEvent struct {
	RunID      string
	Step       string
	ClassGroup string
	Duration   time.Duration
	Err        error
	Time       time.Time
}

// GenerationEvent is published once a class group schedule is stored.
type GenerationEvent struct {
	RunID      string
	ClassGroup string
	Periods    int
	BusySlots  int
	Time       time.Time
}

// RunEvent is published when a run ends, successfully or not.
type RunEvent struct {
	RunID     string
	Validated bool
	// Rejected is set when the run stopped at validation.
	Rejected    bool
	ClassGroups int
	Files       int
	Duration    time.Duration
	Err         error
	Time        time.Time
}

func (StepEvent) isEvent()       {}
func (GenerationEvent) isEvent() {}
func (RunEvent) isEvent()        {}
