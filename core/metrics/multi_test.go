package metrics

import (
	"errors"
	"testing"
)

type recordSink struct {
	steps, generations int
	err                error
}

func (r *recordSink) RecordStep(StepResult) error {
	r.steps++
	return r.err
}

func (r *recordSink) RecordGeneration(GenerationResult) error {
	r.generations++
	return nil
}

// stepOnly does not implement the optional recorders.
type stepOnly struct{ steps int }

func (s *stepOnly) RecordStep(StepResult) error {
	s.steps++
	return nil
}

func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &stepOnly{}
	m := NewMultiSink(s1, s2)
	if err := m.RecordStep(StepResult{Step: "extract"}); err != nil {
		t.Fatalf("record step: %v", err)
	}
	if err := m.RecordGeneration(GenerationResult{ClassGroup: "JSS 1"}); err != nil {
		t.Fatalf("record generation: %v", err)
	}
	if err := m.RecordRun(RunResult{}); err != nil {
		t.Fatalf("record run: %v", err)
	}
	if s1.steps != 1 || s2.steps != 1 || s1.generations != 1 {
		t.Fatalf("results not forwarded")
	}
}

func TestMultiSinkKeepsGoingOnError(t *testing.T) {
	boom := errors.New("boom")
	s1 := &recordSink{err: boom}
	s2 := &stepOnly{}
	err := NewMultiSink(s1, s2).RecordStep(StepResult{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if s2.steps != 1 {
		t.Fatal("second sink skipped")
	}
}

func TestRunOutcome(t *testing.T) {
	cases := []struct {
		res  RunResult
		want string
	}{
		{RunResult{Validated: true}, "ok"},
		{RunResult{Validated: false}, "invalid"},
		{RunResult{Validated: true, Failed: true}, "failed"},
		{RunResult{Failed: true}, "failed"},
	}
	for _, c := range cases {
		if got := c.res.Outcome(); got != c.want {
			t.Errorf("expected %s got %s", c.want, got)
		}
	}
}
