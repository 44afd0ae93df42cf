package metrics

import (
	"errors"
	"io"
)

// MultiSink fans records out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordStep forwards the record to all sinks. Every sink is called; the
// errors are joined.
func (m *MultiSink) RecordStep(res StepResult) error {
	var errs []error
	for _, s := range m.Sinks {
		errs = append(errs, s.RecordStep(res))
	}
	return errors.Join(errs...)
}

// RecordGeneration forwards generation records to sinks supporting them.
func (m *MultiSink) RecordGeneration(res GenerationResult) error {
	var errs []error
	for _, s := range m.Sinks {
		if rec, ok := s.(GenerationRecorder); ok {
			errs = append(errs, rec.RecordGeneration(res))
		}
	}
	return errors.Join(errs...)
}

// RecordRun forwards run records to sinks supporting them.
func (m *MultiSink) RecordRun(res RunResult) error {
	var errs []error
	for _, s := range m.Sinks {
		if rec, ok := s.(RunRecorder); ok {
			errs = append(errs, rec.RecordRun(res))
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink that holds resources.
func (m *MultiSink) Close() error {
	var errs []error
	for _, s := range m.Sinks {
		if c, ok := s.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}
