// Package pipeline sequences the steps that turn a free-text school
// description into class timetables: extract, validate, generate each class
// group in turn while tracking busy teachers, build grids and export.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kilianp07/skejul/core/events"
	"github.com/kilianp07/skejul/core/grid"
	"github.com/kilianp07/skejul/core/llm"
	"github.com/kilianp07/skejul/core/logger"
	"github.com/kilianp07/skejul/core/model"
	"github.com/kilianp07/skejul/core/monitoring"
	"github.com/kilianp07/skejul/core/report"
	"github.com/kilianp07/skejul/core/runlog"
	"github.com/kilianp07/skejul/internal/eventbus"
)

// Step names. StepEnd terminates a run.
const (
	StepExtract    = "extract"
	StepValidate   = "validate"
	StepInvalid    = "invalid"
	StepInitialize = "initialize"
	StepGenerate   = "generate"
	StepUpdateBusy = "update_busy"
	StepAdvance    = "advance"
	StepBuildGrids = "build_grids"
	StepExport     = "export"
	StepEnd        = ""
)

const tracerName = "github.com/kilianp07/skejul/core/pipeline"

// step runs one node of the graph and names the next one.
type step func(ctx context.Context, s *State) (string, error)

// Pipeline runs the step graph. A Pipeline may serve several runs at once;
// each run owns its State.
type Pipeline struct {
	extractor llm.Extractor
	generator llm.Generator

	log       logger.Logger
	bus       *eventbus.TypedBus[events.Event]
	exporter  Exporter
	publisher Publisher
	store     runlog.Store
	tracer    trace.Tracer

	steps map[string]step
}

// New returns a pipeline calling ex and gen for the model steps.
func New(ex llm.Extractor, gen llm.Generator, opts ...Option) *Pipeline {
	p := &Pipeline{
		extractor: ex,
		generator: gen,
		log:       logger.NopLogger{},
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.steps = map[string]step{
		StepExtract:    p.extract,
		StepValidate:   p.validate,
		StepInvalid:    p.invalid,
		StepInitialize: p.initialize,
		StepGenerate:   p.generate,
		StepUpdateBusy: p.updateBusy,
		StepAdvance:    p.advance,
		StepBuildGrids: p.buildGrids,
		StepExport:     p.export,
	}
	return p
}

// Run executes the whole graph on input. The returned state is never nil
// and reflects every step that ran, including on error. Invalid input
// yields a *ValidationError.
func (p *Pipeline) Run(ctx context.Context, input string) (*State, error) {
	return p.run(ctx, input, StepEnd)
}

// Check extracts and validates input without generating anything. Check
// runs are not written to the run log.
func (p *Pipeline) Check(ctx context.Context, input string) (*State, error) {
	return p.run(ctx, input, StepInitialize)
}

func (p *Pipeline) run(ctx context.Context, input, stop string) (*State, error) {
	s := &State{
		RunID:      uuid.NewString(),
		StartedAt:  time.Now(),
		Input:      input,
		Timetables: model.ClassTimetables{},
		Busy:       model.TeacherBusy{},
	}
	ctx, span := p.tracer.Start(ctx, "pipeline.run", trace.WithAttributes(attribute.String("run.id", s.RunID)))
	defer span.End()

	var err error
	next := StepExtract
	for next != StepEnd && next != stop {
		if cerr := ctx.Err(); cerr != nil {
			err = cerr
			break
		}
		next, err = p.exec(ctx, s, next)
		if err != nil {
			break
		}
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	p.finish(ctx, s, err, stop == StepEnd)
	return s, err
}

func (p *Pipeline) exec(ctx context.Context, s *State, name string) (string, error) {
	fn, ok := p.steps[name]
	if !ok {
		return StepEnd, fmt.Errorf("unknown step %q", name)
	}
	group := ""
	if name == StepGenerate || name == StepUpdateBusy {
		group = s.Current()
	}
	ctx, span := p.tracer.Start(ctx, "pipeline."+name)
	if group != "" {
		span.SetAttributes(attribute.String("class_group", group))
	}
	start := time.Now()
	s.Trail = append(s.Trail, name)
	p.log.Debugf("[%s] step %s %s", s.RunID, name, group)

	next, err := fn(ctx, s)
	dur := time.Since(start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
	p.publish(events.StepEvent{RunID: s.RunID, Step: name, ClassGroup: group, Duration: dur, Err: err, Time: time.Now()})
	return next, err
}

func (p *Pipeline) extract(ctx context.Context, s *State) (string, error) {
	data, err := p.extractor.Extract(ctx, s.Input)
	if err != nil {
		return StepEnd, fmt.Errorf("extract: %w", err)
	}
	s.Data = data
	if data != nil {
		p.log.Infow("timetable data extracted", map[string]any{
			"run_id":       s.RunID,
			"days":         len(data.Days),
			"periods":      len(data.Periods),
			"class_groups": len(data.ClassGroups),
		})
	}
	return StepValidate, nil
}

func (p *Pipeline) validate(_ context.Context, s *State) (string, error) {
	s.Missing = Validate(s.Data)
	s.Validated = len(s.Missing) == 0
	if !s.Validated {
		return StepInvalid, nil
	}
	return StepInitialize, nil
}

func (p *Pipeline) invalid(_ context.Context, s *State) (string, error) {
	p.log.Warnf("[%s] cannot build a timetable, missing: %s", s.RunID, strings.Join(s.Missing, ", "))
	return StepEnd, &ValidationError{Missing: append([]string(nil), s.Missing...)}
}

func (p *Pipeline) initialize(_ context.Context, s *State) (string, error) {
	s.Groups = GroupNames(s.Data)
	s.Index = 0
	s.Busy = model.TeacherBusy{}
	s.Timetables = model.ClassTimetables{}
	p.log.Infof("[%s] generating %d class groups: %s", s.RunID, len(s.Groups), strings.Join(s.Groups, ", "))
	return StepGenerate, nil
}

func (p *Pipeline) generate(ctx context.Context, s *State) (string, error) {
	group := s.Current()
	cg, _ := s.Data.Group(group)
	req := llm.GenerationRequest{
		Days:               s.Data.Days,
		StartTime:          s.Data.StartTime,
		EndTime:            s.Data.EndTime,
		Periods:            s.Data.Periods,
		ClassGroups:        []model.ClassGroup{cg},
		TeacherConstraints: s.Busy.Clone(),
	}
	raw, err := p.generator.Generate(ctx, req)
	if err != nil {
		return StepEnd, fmt.Errorf("generate %s: %w", group, err)
	}
	sched, err := ParseSchedule(raw, group)
	if err != nil {
		return StepEnd, err
	}
	s.Timetables[group] = sched
	return StepUpdateBusy, nil
}

func (p *Pipeline) updateBusy(_ context.Context, s *State) (string, error) {
	group := s.Current()
	sched := s.Timetables[group]
	added := s.Busy.Absorb(sched)
	p.log.Infof("[%s] %s: %d periods, %d teacher slots added", s.RunID, group, countPeriods(sched), added)
	p.publish(events.GenerationEvent{
		RunID:      s.RunID,
		ClassGroup: group,
		Periods:    countPeriods(sched),
		BusySlots:  s.Busy.Slots(),
		Time:       time.Now(),
	})
	return StepAdvance, nil
}

func (p *Pipeline) advance(_ context.Context, s *State) (string, error) {
	s.Index++
	if s.Index < len(s.Groups) {
		return StepGenerate, nil
	}
	return StepBuildGrids, nil
}

func (p *Pipeline) buildGrids(_ context.Context, s *State) (string, error) {
	s.Grids = grid.Build(s.Groups, s.Timetables, s.Data.Days)
	s.TeacherTimetables = report.BuildTeacherTimetables(s.Timetables)
	rep := report.Build(s.Timetables, s.Data.Days)
	s.Report = &rep
	for _, c := range rep.Clashes {
		p.log.Warnf("[%s] %s teaches %s and %s on %s at overlapping times (%s, %s)",
			s.RunID, c.Teacher, c.First.ClassGroup, c.Second.ClassGroup, c.Day, c.First.Slot(), c.Second.Slot())
	}
	return StepExport, nil
}

// export never fails the run; writer and publisher errors are logged.
func (p *Pipeline) export(ctx context.Context, s *State) (string, error) {
	if p.publisher != nil {
		for _, group := range s.Groups {
			if err := p.publisher.PublishTimetable(ctx, group, s.Timetables[group]); err != nil {
				p.log.Warnf("[%s] publish %s: %v", s.RunID, group, err)
			}
		}
	}
	if p.exporter == nil {
		return StepEnd, nil
	}
	for _, g := range s.Grids {
		files, err := p.exporter.ExportClass(g)
		s.Files = append(s.Files, files...)
		if err != nil {
			p.log.Warnf("[%s] export %s incomplete: %v", s.RunID, g.Class, err)
		}
	}
	rep := report.Report{}
	if s.Report != nil {
		rep = *s.Report
	}
	files, err := p.exporter.ExportSummary(s.Timetables, s.TeacherTimetables, rep)
	s.Files = append(s.Files, files...)
	if err != nil {
		p.log.Warnf("[%s] export summary incomplete: %v", s.RunID, err)
	}
	return StepEnd, nil
}

func (p *Pipeline) finish(ctx context.Context, s *State, err error, record bool) {
	dur := time.Since(s.StartedAt)
	rejected := errors.Is(err, ErrInvalidInput)
	p.publish(events.RunEvent{
		RunID:       s.RunID,
		Validated:   s.Validated,
		Rejected:    rejected,
		ClassGroups: len(s.Timetables),
		Files:       len(s.Files),
		Duration:    dur,
		Err:         err,
		Time:        time.Now(),
	})
	switch {
	case err == nil:
		p.log.Infof("[%s] run finished in %s: %d class groups, %d files", s.RunID, dur.Round(time.Millisecond), len(s.Timetables), len(s.Files))
	case !rejected:
		p.log.Errorf("[%s] run failed: %v", s.RunID, err)
		monitoring.CaptureException(err, map[string]string{"run_id": s.RunID})
	}

	if p.store == nil || !record {
		return
	}
	rec := runlog.RunRecord{
		RunID:       s.RunID,
		Timestamp:   s.StartedAt,
		Validated:   s.Validated,
		Missing:     s.Missing,
		ClassGroups: s.Groups,
		Files:       s.Files,
		DurationMS:  dur.Milliseconds(),
		InputChars:  len([]rune(s.Input)),
	}
	if err != nil {
		rec.Error = err.Error()
	}
	// the record is written even when the run context was cancelled
	if aerr := p.store.Append(context.WithoutCancel(ctx), rec); aerr != nil {
		p.log.Errorf("[%s] append run log: %v", s.RunID, aerr)
	}
}

func (p *Pipeline) publish(ev events.Event) {
	if p.bus != nil {
		p.bus.Publish(ev)
	}
}

func countPeriods(s model.ClassSchedule) int {
	n := 0
	for _, entries := range s {
		n += len(entries)
	}
	return n
}
