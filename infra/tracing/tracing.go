// Package tracing installs an OpenTelemetry tracer provider exporting
// pipeline spans as JSON to stdout or a file.
package tracing

import (
	"context"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Config selects where spans are written.
type Config struct {
	Enabled     bool   `json:"enabled"`
	ServiceName string `json:"service_name"`
	// Output is a file path. Empty or "stdout" writes to stdout.
	Output string `json:"output"`
}

// SetDefaults fills the service name.
func (c *Config) SetDefaults() {
	if c.ServiceName == "" {
		c.ServiceName = "skejul"
	}
}

// Shutdown flushes and stops the provider.
type Shutdown func(ctx context.Context) error

// Init installs a global provider when cfg is enabled. The returned
// Shutdown is always non-nil.
func Init(cfg Config, version string) (Shutdown, error) {
	nop := func(context.Context) error { return nil }
	if !cfg.Enabled {
		return nop, nil
	}
	cfg.SetDefaults()

	var w io.Writer = os.Stdout
	var file *os.File
	if cfg.Output != "" && cfg.Output != "stdout" {
		f, err := os.Create(cfg.Output)
		if err != nil {
			return nop, err
		}
		w, file = f, f
	}
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nop, err
	}
	tp, err := NewProvider(cfg.ServiceName, version, exporter)
	if err != nil {
		return nop, err
	}
	otel.SetTracerProvider(tp)
	return func(ctx context.Context) error {
		err := tp.Shutdown(ctx)
		if file != nil {
			if cerr := file.Close(); err == nil {
				err = cerr
			}
		}
		return err
	}, nil
}

// NewProvider builds a provider exporting synchronously through exporter.
func NewProvider(service, version string, exporter sdktrace.SpanExporter) (*sdktrace.TracerProvider, error) {
	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			attribute.String("service.name", service),
			attribute.String("service.version", version),
		),
	)
	if err != nil {
		return nil, err
	}
	return sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
		sdktrace.WithResource(res),
	), nil
}
