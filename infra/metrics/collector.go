package metrics

import (
	"context"

	"github.com/kilianp07/skejul/core/events"
	coremetrics "github.com/kilianp07/skejul/core/metrics"
	"github.com/kilianp07/skejul/core/monitoring"
	"github.com/kilianp07/skejul/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and records metrics for events.
// It stops when the context is canceled or the bus is closed. The returned
// channel is closed once the collector has exited.
func StartEventCollector(ctx context.Context, bus *eventbus.TypedBus[events.Event], sink coremetrics.MetricsSink) <-chan struct{} {
	done := make(chan struct{})
	if bus == nil || sink == nil {
		close(done)
		return done
	}
	sub := bus.Subscribe()
	monitoring.Go(func() {
		defer close(done)
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				record(sink, ev)
			}
		}
	})
	return done
}

func record(sink coremetrics.MetricsSink, ev events.Event) {
	switch e := ev.(type) {
	case events.StepEvent:
		_ = sink.RecordStep(coremetrics.StepResult{
			RunID:      e.RunID,
			Step:       e.Step,
			ClassGroup: e.ClassGroup,
			Duration:   e.Duration,
			Failed:     e.Err != nil,
			Time:       e.Time,
		})
	case events.GenerationEvent:
		if r, ok := sink.(coremetrics.GenerationRecorder); ok {
			_ = r.RecordGeneration(coremetrics.GenerationResult{
				RunID:      e.RunID,
				ClassGroup: e.ClassGroup,
				Periods:    e.Periods,
				BusySlots:  e.BusySlots,
				Time:       e.Time,
			})
		}
	case events.RunEvent:
		if r, ok := sink.(coremetrics.RunRecorder); ok {
			_ = r.RecordRun(coremetrics.RunResult{
				RunID:       e.RunID,
				Validated:   e.Validated,
				Failed:      e.Err != nil && !e.Rejected,
				ClassGroups: e.ClassGroups,
				Files:       e.Files,
				Duration:    e.Duration,
				Time:        e.Time,
			})
		}
	}
}
