// Package app wires the configuration into a running dashboard service.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	apidash "github.com/kilianp07/energydash/api/dashboard"
	"github.com/kilianp07/energydash/config"
	coredash "github.com/kilianp07/energydash/core/dashboard"
	coremetrics "github.com/kilianp07/energydash/core/metrics"
	coremon "github.com/kilianp07/energydash/core/monitoring"
	"github.com/kilianp07/energydash/core/source"
	"github.com/kilianp07/energydash/infra/chartjs"
	"github.com/kilianp07/energydash/infra/echarts"
	"github.com/kilianp07/energydash/infra/logger"
	"github.com/kilianp07/energydash/infra/metrics"
	"github.com/kilianp07/energydash/infra/monitoring"

	// built-in data sources
	_ "github.com/kilianp07/energydash/infra/source"
)

// NewFrontend returns the chart library registered under name.
func NewFrontend(name string) (apidash.Frontend, error) {
	switch name {
	case config.LibraryECharts:
		return echarts.New(), nil
	case config.LibraryChartJS:
		return chartjs.New(), nil
	default:
		return nil, fmt.Errorf("unknown chart library %q", name)
	}
}

// Service serves the dashboard over HTTP.
type Service struct {
	Dashboard *coredash.Dashboard
	Source    source.Source
	server    *http.Server
	log       logger.Logger
	promAddr  string
	closeLog  func() error
}

var configureLogger = logger.Configure

// New creates a Service from the configuration. Resources acquired before a
// failing step are released before the error is returned.
func New(cfg *config.Config) (svc *Service, err error) {
	closeLog, err := configureLogger(logger.Options{
		Level:      cfg.Logging.Level,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	var src source.Source
	defer func() {
		if err == nil {
			return
		}
		if src != nil {
			_ = src.Close()
		}
		if closeLog != nil {
			_ = closeLog()
		}
	}()
	logg := logger.New("service")

	mon, merr := monitoring.NewSentryMonitor(cfg.Sentry)
	if merr != nil {
		logg.Warnf("sentry disabled: %v", merr)
	} else {
		coremon.Init(mon)
	}

	sink, err := newSink(cfg.Metrics)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	front, err := NewFrontend(cfg.Server.Library)
	if err != nil {
		return nil, err
	}
	dash, err := coredash.New(cfg.Dashboard, front, sink, logger.New("renderer"))
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	src, err = source.New(cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", cfg.Source.Type, err)
	}
	loc, err := cfg.Server.Location()
	if err != nil {
		return nil, err
	}
	api, err := apidash.NewServer(apidash.Options{
		Dashboard: dash,
		Frontend:  front,
		Source:    src,
		Sink:      sink,
		Location:  loc,
		APIToken:  cfg.Server.APIToken,
		Logger:    logger.New("http"),
	})
	if err != nil {
		return nil, err
	}

	svc = &Service{
		Dashboard: dash,
		Source:    src,
		server:    &http.Server{Addr: cfg.Server.Addr, Handler: api.Handler(), ReadHeaderTimeout: 10 * time.Second},
		log:       logg,
		closeLog:  closeLog,
	}
	if cfg.Metrics.PrometheusEnabled {
		svc.promAddr = cfg.Metrics.PrometheusPort
	}
	return svc, nil
}

// newSink builds the configured sinks. Enabling the prometheus server adds a
// prometheus sink when none is listed.
func newSink(cfg coremetrics.Config) (coremetrics.RenderSink, error) {
	sink, err := coremetrics.NewRenderSink(cfg.Sinks)
	if err != nil {
		return nil, err
	}
	if !cfg.PrometheusEnabled {
		return sink, nil
	}
	for _, s := range cfg.Sinks {
		if s.Type == "prometheus" {
			return sink, nil
		}
	}
	prom, err := metrics.NewPromSink()
	if err != nil {
		return nil, err
	}
	if _, ok := sink.(coremetrics.NopSink); ok {
		return prom, nil
	}
	return coremetrics.NewMultiSink(sink, prom), nil
}

// Handler returns the dashboard routes.
func (s *Service) Handler() http.Handler { return s.server.Handler }

// Run starts the servers and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if n, ok := s.Source.(source.Notifier); ok {
		go s.watch(ctx, n.Updates())
	}
	if s.promAddr != "" {
		go func() {
			defer coremon.Recover()
			if err := metrics.StartPromServer(ctx, s.promAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("dashboard listening on %s", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

func (s *Service) watch(ctx context.Context, updates <-chan time.Time) {
	defer coremon.Recover()
	for {
		select {
		case <-ctx.Done():
			return
		case at, ok := <-updates:
			if !ok {
				return
			}
			s.log.Infof("new %s snapshot at %s", s.Source.Name(), at.Format(time.RFC3339))
		}
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	err := s.Source.Close()
	coremon.Flush(2 * time.Second)
	if s.closeLog != nil {
		if cerr := s.closeLog(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
