// Package infra contains technical adapters: model providers, metrics
// exporters, the MQTT timetable publisher, tracing and error reporting.
// These packages depend only on the interfaces defined in core.
package infra
