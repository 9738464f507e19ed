// Package source defines where dashboard data comes from.
package source

import (
	"context"
	"errors"
	"time"

	"github.com/kilianp07/energydash/core/dashboard"
	"github.com/kilianp07/energydash/core/factory"
)

// ErrNoData is returned by sources that have nothing to serve yet.
var ErrNoData = errors.New("no data available")

// Source loads the dashboard data for a day.
type Source interface {
	Fetch(ctx context.Context, day time.Time) (dashboard.Data, error)
	Name() string
	Close() error
}

// Notifier is implemented by push sources. A value is sent on the channel
// every time new data is accepted.
type Notifier interface {
	Updates() <-chan time.Time
}

var registry = factory.NewRegistry[Source]()

// Register adds a source factory identified by name.
func Register(name string, f factory.Factory[Source]) error {
	return registry.Register(name, f)
}

// New builds the source described by cfg.
func New(cfg factory.ModuleConfig) (Source, error) {
	return registry.Create(cfg)
}

// Types lists the registered source types.
func Types() []string { return registry.Types() }

// DayKey formats day the way sources expect it in paths and queries.
func DayKey(day time.Time) string { return day.Format("2006-01-02") }
