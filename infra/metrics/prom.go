package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/skejul/core/metrics"
)

// PromSink records pipeline activity in Prometheus metrics.
type PromSink struct {
	steps       *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	periods     *prometheus.CounterVec
	busy        prometheus.Gauge
	runs        *prometheus.CounterVec
	runDuration prometheus.Histogram
}

// NewPromSink registers pipeline metrics on the default Prometheus registerer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "skejul_steps_total",
			Help: "Total number of executed pipeline steps",
		}, []string{"step", "failed"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "skejul_step_duration_seconds",
			Help:    "Duration of pipeline steps",
			Buckets: prometheus.ExponentialBuckets(0.01, 3, 10),
		}, []string{"step"}),
		periods: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "skejul_generated_periods_total",
			Help: "Periods generated per class group",
		}, []string{"class_group"}),
		busy: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "skejul_teacher_busy_slots",
			Help: "Teacher busy slots after the latest generation",
		}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "skejul_runs_total",
			Help: "Finished pipeline runs by outcome",
		}, []string{"outcome"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "skejul_run_duration_seconds",
			Help:    "Duration of whole pipeline runs",
			Buckets: prometheus.ExponentialBuckets(0.1, 3, 10),
		}),
	}
	var err error
	if s.steps, err = register(reg, s.steps); err != nil {
		return nil, err
	}
	if s.duration, err = register(reg, s.duration); err != nil {
		return nil, err
	}
	if s.periods, err = register(reg, s.periods); err != nil {
		return nil, err
	}
	if s.busy, err = register(reg, s.busy); err != nil {
		return nil, err
	}
	if s.runs, err = register(reg, s.runs); err != nil {
		return nil, err
	}
	if s.runDuration, err = register(reg, s.runDuration); err != nil {
		return nil, err
	}
	return s, nil
}

// register returns the already registered collector when one exists so that
// several sinks can share the default registry.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordStep counts the step and observes its duration.
func (s *PromSink) RecordStep(res coremetrics.StepResult) error {
	s.steps.WithLabelValues(res.Step, strconv.FormatBool(res.Failed)).Inc()
	s.duration.WithLabelValues(res.Step).Observe(res.Duration.Seconds())
	return nil
}

// RecordGeneration counts generated periods and tracks the busy map size.
func (s *PromSink) RecordGeneration(res coremetrics.GenerationResult) error {
	s.periods.WithLabelValues(res.ClassGroup).Add(float64(res.Periods))
	s.busy.Set(float64(res.BusySlots))
	return nil
}

// RecordRun counts the run by outcome.
func (s *PromSink) RecordRun(res coremetrics.RunResult) error {
	s.runs.WithLabelValues(res.Outcome()).Inc()
	s.runDuration.Observe(res.Duration.Seconds())
	return nil
}
