// Package monitoring reports pipeline failures to Sentry.
package monitoring

import (
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/kilianp07/skejul/config"
	coremon "github.com/kilianp07/skejul/core/monitoring"
)

// NewSentryMonitor initializes Sentry from cfg. Without a DSN reports are
// dropped.
func NewSentryMonitor(cfg config.SentryConfig) (coremon.Monitor, error) {
	if !cfg.Enabled() {
		return coremon.NopMonitor{}, nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		TracesSampleRate: cfg.TracesSampleRate,
		Release:          cfg.Release,
		ServerName:       cfg.ServerName,
	})
	if err != nil {
		return nil, err
	}
	return &sentryMonitor{}, nil
}

type sentryMonitor struct{}

func (s *sentryMonitor) CaptureException(err error, tags map[string]string) {
	if err == nil {
		return
	}
	withTags(tags, func(hub *sentry.Hub) { hub.CaptureException(err) })
}

func (s *sentryMonitor) CapturePanic(v any, tags map[string]string) {
	withTags(tags, func(hub *sentry.Hub) { hub.Recover(v) })
}

func (s *sentryMonitor) Flush(timeout time.Duration) { sentry.Flush(timeout) }

// withTags runs fn on a cloned hub whose scope carries tags.
func withTags(tags map[string]string, fn func(*sentry.Hub)) {
	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("component", "skejul")
		scope.SetTags(tags)
	})
	fn(hub)
}
