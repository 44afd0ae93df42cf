package metrics_test

import (
	"encoding/json"
	"errors"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/skejul/core/factory"
	metrics "github.com/kilianp07/skejul/core/metrics"
	_ "github.com/kilianp07/skejul/infra/metrics"
)

type countingSink struct{ steps int }

func (c *countingSink) RecordStep(metrics.StepResult) error {
	c.steps++
	return nil
}

func init() {
	_ = metrics.RegisterMetricsSink("counting", func(map[string]any) (metrics.MetricsSink, error) {
		return &countingSink{}, nil
	})
}

/*
TestNewMetricsSink covers how sink lists collapse.

	Cases:
	- no config or only nop entries -> NopSink
	- one real sink -> that sink
	- two real sinks -> MultiSink
*/
func TestNewMetricsSink(t *testing.T) {
	for _, cfgs := range [][]factory.ModuleConfig{nil, {{Type: "nop"}}, {{Type: "nop"}, {Type: "nop"}}} {
		s, err := metrics.NewMetricsSink(cfgs)
		if err != nil {
			t.Fatalf("create %v: %v", cfgs, err)
		}
		if _, ok := s.(metrics.NopSink); !ok {
			t.Fatalf("expected NopSink for %v, got %T", cfgs, s)
		}
	}

	s, err := metrics.NewMetricsSink([]factory.ModuleConfig{{Type: "nop"}, {Type: "counting"}})
	if err != nil {
		t.Fatalf("create single: %v", err)
	}
	if _, ok := s.(*countingSink); !ok {
		t.Fatalf("expected countingSink, got %T", s)
	}

	s, err = metrics.NewMetricsSink([]factory.ModuleConfig{{Type: "counting"}, {Type: "counting"}})
	if err != nil {
		t.Fatalf("create multi: %v", err)
	}
	m, ok := s.(*metrics.MultiSink)
	if !ok {
		t.Fatalf("expected MultiSink, got %T", s)
	}
	if len(m.Sinks) != 2 {
		t.Fatalf("expected 2 sinks, got %d", len(m.Sinks))
	}
}

// Test decoding a sink list from YAML as written in config files.
func TestMetricsConfigDecodeYAML(t *testing.T) {
	data := `sinks:
  - type: counting
  - type: nop
`
	var cfg metrics.Config
	if err := yaml.Unmarshal([]byte(data), &cfg); err != nil {
		t.Fatalf("yaml unmarshal: %v", err)
	}
	s, err := metrics.NewMetricsSink(cfg.Sinks)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.RecordStep(metrics.StepResult{Step: "generate"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if c, ok := s.(*countingSink); !ok || c.steps != 1 {
		t.Fatalf("expected one recorded step, got %T %+v", s, s)
	}
}

func TestMetricsConfigDecodeJSON_Unknown(t *testing.T) {
	data := `{"sinks":[{"type":"missing"}]}`
	var cfg metrics.Config
	if err := json.Unmarshal([]byte(data), &cfg); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	_, err := metrics.NewMetricsSink(cfg.Sinks)
	if !errors.Is(err, factory.ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}

func TestSinkTypes(t *testing.T) {
	types := metrics.SinkTypes()
	for _, want := range []string{"counting", "influx", "nop", "prometheus"} {
		found := false
		for _, got := range types {
			found = found || got == want
		}
		if !found {
			t.Fatalf("expected %s in %v", want, types)
		}
	}
}
