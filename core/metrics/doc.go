// Package metrics defines the sink interfaces used to observe pipeline runs.
// Sinks record step durations, generated schedules and run outcomes;
// optional recorders are discovered by type assertion. NewMetricsSink builds
// sinks from configuration and returns a MultiSink when several remain
// after nop entries are dropped.
package metrics
