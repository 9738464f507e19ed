package metrics

import "time"

// Render outcomes.
const (
	OutcomeOK            = "ok"
	OutcomeMissingTarget = "missing_target"
	OutcomeDataShape     = "data_shape"
	OutcomeError         = "error"
)

// RenderEvent describes one RenderChart call.
type RenderEvent struct {
	Placeholder string
	Kind        string
	Outcome     string
	Series      int
	Points      int
	Duration    time.Duration
	Time        time.Time
}

// RenderSink records chart renders for observability purposes.
type RenderSink interface {
	RecordRender(ev RenderEvent) error
}

// FetchEvent describes one data source fetch.
type FetchEvent struct {
	Source   string
	Outcome  string
	Duration time.Duration
	Time     time.Time
}

// FetchRecorder is implemented by sinks able to record source fetches.
type FetchRecorder interface {
	RecordFetch(ev FetchEvent) error
}

// NopSink implements RenderSink and FetchRecorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordRender(RenderEvent) error { return nil }
func (NopSink) RecordFetch(FetchEvent) error   { return nil }

// MultiSink fans events out to several sinks.
type MultiSink struct {
	Sinks []RenderSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...RenderSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordRender forwards the event to all sinks, returning the first error encountered.
func (m *MultiSink) RecordRender(ev RenderEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordRender(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordFetch forwards fetch events to the sinks that support them.
func (m *MultiSink) RecordFetch(ev FetchEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(FetchRecorder); ok {
			if err := rec.RecordFetch(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordFetch records ev on sink when it supports fetch events.
func RecordFetch(sink RenderSink, ev FetchEvent) error {
	if rec, ok := sink.(FetchRecorder); ok {
		return rec.RecordFetch(ev)
	}
	return nil
}
