package pipeline

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/kilianp07/skejul/core/events"
	"github.com/kilianp07/skejul/core/grid"
	"github.com/kilianp07/skejul/core/logger"
	"github.com/kilianp07/skejul/core/model"
	"github.com/kilianp07/skejul/core/report"
	"github.com/kilianp07/skejul/core/runlog"
	"github.com/kilianp07/skejul/internal/eventbus"
)

// Exporter writes the results of a run.
type Exporter interface {
	ExportClass(g grid.Grid) ([]string, error)
	ExportSummary(tt model.ClassTimetables, teachers report.TeacherTimetables, rep report.Report) ([]string, error)
}

// Publisher pushes a finished class schedule to subscribers.
type Publisher interface {
	PublishTimetable(ctx context.Context, class string, sched model.ClassSchedule) error
}

// Option configures a Pipeline.
type Option func(p *Pipeline)

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(p *Pipeline) { p.log = logger.OrNop(l) }
}

// WithEventBus publishes step, generation and run events on bus.
func WithEventBus(bus *eventbus.TypedBus[events.Event]) Option {
	return func(p *Pipeline) { p.bus = bus }
}

// WithExporter enables the export step.
func WithExporter(e Exporter) Option {
	return func(p *Pipeline) { p.exporter = e }
}

// WithPublisher publishes every class schedule once grids are built.
func WithPublisher(pub Publisher) Option {
	return func(p *Pipeline) { p.publisher = pub }
}

// WithRunLog appends a record to store at the end of every run.
func WithRunLog(store runlog.Store) Option {
	return func(p *Pipeline) { p.store = store }
}

// WithTracer replaces the tracer taken from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(p *Pipeline) { p.tracer = t }
}
