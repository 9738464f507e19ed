package monitoring

import (
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/kilianp07/energydash/config"
	coremon "github.com/kilianp07/energydash/core/monitoring"
)

// NewSentryMonitor initializes Sentry using the provided configuration and
// returns a Monitor implementation. An empty DSN yields the no-op monitor.
func NewSentryMonitor(cfg config.SentryConfig) (coremon.Monitor, error) {
	if cfg.DSN == "" {
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
	sentry.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("service", "energydash")
	})
	return &sentryMonitor{}, nil
}

type sentryMonitor struct{}

func (s *sentryMonitor) CaptureException(err error, tags map[string]string) {
	if err == nil {
		return
	}
	if len(tags) == 0 {
		sentry.CaptureException(err)
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		if fp := fingerprint(tags); fp != nil {
			scope.SetFingerprint(fp)
		}
		sentry.CaptureException(err)
	})
}

// fingerprint groups events per failing chart or source instead of per stack.
func fingerprint(tags map[string]string) []string {
	switch {
	case tags["chart"] != "":
		return []string{"{{ default }}", "chart", tags["chart"]}
	case tags["source"] != "":
		return []string{"{{ default }}", "source", tags["source"]}
	}
	return nil
}

func (s *sentryMonitor) CapturePanic(v any) { sentry.CurrentHub().Recover(v) }

func (s *sentryMonitor) Flush(timeout time.Duration) { sentry.Flush(timeout) }
