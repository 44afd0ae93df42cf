package metrics

import "time"

// StepResult describes one finished step of a run.
type StepResult struct {
	RunID      string
	Step       string
	ClassGroup string
	Duration   time.Duration
	Failed     bool
	Time       time.Time
}

// MetricsSink records pipeline activity for observability purposes.
type MetricsSink interface {
	RecordStep(res StepResult) error
}

// GenerationResult describes one generated class group schedule.
type GenerationResult struct {
	RunID      string
	ClassGroup string
	Periods    int
	BusySlots  int
	Time       time.Time
}

// GenerationRecorder records generated schedules.
type GenerationRecorder interface {
	RecordGeneration(res GenerationResult) error
}

// RunResult summarises a finished run.
type RunResult struct {
	RunID       string
	Validated   bool
	Failed      bool
	ClassGroups int
	Files       int
	Duration    time.Duration
	Time        time.Time
}

// Outcome labels a run for counters: "ok", "invalid" or "failed". Failed
// is set for errors other than rejected input.
func (r RunResult) Outcome() string {
	switch {
	case r.Failed:
		return "failed"
	case !r.Validated:
		return "invalid"
	}
	return "ok"
}

// RunRecorder records finished runs.
type RunRecorder interface {
	RecordRun(res RunResult) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordStep(StepResult) error             { return nil }
func (NopSink) RecordGeneration(GenerationResult) error { return nil }
func (NopSink) RecordRun(RunResult) error               { return nil }
