// Package app wires configuration into a ready pipeline and the HTTP
// service around it.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kilianp07/skejul/api"
	"github.com/kilianp07/skejul/api/runs"
	"github.com/kilianp07/skejul/api/timetables"
	"github.com/kilianp07/skejul/config"
	"github.com/kilianp07/skejul/core/events"
	corellm "github.com/kilianp07/skejul/core/llm"
	coremetrics "github.com/kilianp07/skejul/core/metrics"
	coremon "github.com/kilianp07/skejul/core/monitoring"
	"github.com/kilianp07/skejul/core/pipeline"
	"github.com/kilianp07/skejul/core/runlog"
	"github.com/kilianp07/skejul/infra/llm"
	"github.com/kilianp07/skejul/infra/logger"
	"github.com/kilianp07/skejul/infra/metrics"
	"github.com/kilianp07/skejul/infra/monitoring"
	"github.com/kilianp07/skejul/infra/mqtt"
	"github.com/kilianp07/skejul/infra/tracing"
	"github.com/kilianp07/skejul/internal/eventbus"
	"github.com/kilianp07/skejul/pkg/export"
)

// Version is reported to tracing and error monitoring.
var Version = "dev"

// Options tunes what New builds.
type Options struct {
	// Export writes files for every run. The HTTP service leaves it off
	// and returns results as JSON.
	Export bool
	// Extractor and Generator replace the clients built from config.
	Extractor corellm.Client
	Generator corellm.Client
}

// Service holds the pipeline and every collaborator it was built with.
type Service struct {
	Pipeline *pipeline.Pipeline
	Store    runlog.Store
	Exporter *export.Writer

	cfg       *config.Config
	bus       *eventbus.TypedBus[events.Event]
	sink      coremetrics.MetricsSink
	collector <-chan struct{}
	publisher *mqtt.Publisher
	tracing   tracing.Shutdown
	log       logger.Logger
}

// New creates a Service from the configuration.
func New(ctx context.Context, cfg *config.Config, opt Options) (svc *Service, err error) {
	logg := logger.New("service")
	s := &Service{cfg: cfg, log: logg}
	defer func() {
		if err != nil {
			_ = s.Close()
		}
	}()

	sentryCfg := cfg.Sentry
	if sentryCfg.Release == "" {
		sentryCfg.Release = "skejul@" + Version
	}
	mon, err := monitoring.NewSentryMonitor(sentryCfg)
	if err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}
	coremon.Init(mon)

	if s.tracing, err = tracing.Init(cfg.Tracing, Version); err != nil {
		return nil, fmt.Errorf("tracing: %w", err)
	}

	extractClient := opt.Extractor
	if extractClient == nil {
		if extractClient, err = llm.NewClient(cfg.Extractor); err != nil {
			return nil, fmt.Errorf("extractor: %w", err)
		}
	}
	generateClient := opt.Generator
	if generateClient == nil {
		if generateClient, err = llm.NewClient(cfg.Generator); err != nil {
			return nil, fmt.Errorf("generator: %w", err)
		}
	}

	if s.sink, err = coremetrics.NewMetricsSink(cfg.Metrics.Sinks); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	s.bus = eventbus.NewTypedWithBuffer[events.Event](256)
	s.collector = metrics.StartEventCollector(ctx, s.bus, s.sink)

	if s.Store, err = runlog.Open(cfg.RunLog.Options()); err != nil {
		return nil, fmt.Errorf("runlog: %w", err)
	}

	opts := []pipeline.Option{
		pipeline.WithLogger(logger.New("pipeline")),
		pipeline.WithEventBus(s.bus),
		pipeline.WithRunLog(s.Store),
	}
	if opt.Export {
		s.Exporter = export.NewWriter(cfg.Output.Options(), logger.New("export"))
		opts = append(opts, pipeline.WithExporter(s.Exporter))
	}
	if cfg.Notify.Enabled() {
		if s.publisher, err = mqtt.NewPublisher(cfg.Notify); err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		opts = append(opts, pipeline.WithPublisher(s.publisher))
	}

	s.Pipeline = pipeline.New(corellm.NewExtractor(extractClient), corellm.NewGenerator(generateClient), opts...)
	return s, nil
}

// Router returns the HTTP routes of the service.
func (s *Service) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(api.ReportPanics)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(api.BearerAuth(s.cfg.Server.Token))
		r.Method(http.MethodGet, "/runs", runs.NewHandler(s.Store))
		r.Method(http.MethodPost, "/timetables", &timetables.Handler{
			Runner:  s.Pipeline,
			MaxBody: s.cfg.Server.MaxBodyBytes,
			Timeout: time.Duration(s.cfg.Server.TimeoutSeconds) * time.Second,
			Log:     logger.New("api"),
		})
	})
	return r
}

// Serve runs the HTTP service until ctx is cancelled.
func (s *Service) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	coremon.Go(func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("http server shutdown: %v", err)
		}
		cancel()
	})
	s.log.Infof("listening on %s", s.cfg.Server.Address)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close releases resources held by the service. Pending events are
// recorded before the sinks are closed.
func (s *Service) Close() error {
	var errs []error
	if s.bus != nil {
		s.bus.Close()
		<-s.collector
	}
	if c, ok := s.sink.(io.Closer); ok {
		errs = append(errs, c.Close())
	}
	if s.publisher != nil {
		s.publisher.Close()
	}
	if s.Store != nil {
		errs = append(errs, s.Store.Close())
	}
	if s.tracing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		errs = append(errs, s.tracing(ctx))
		cancel()
	}
	coremon.Flush(2 * time.Second)
	return errors.Join(errs...)
}
