// Package render binds chart specs to drawable surfaces.
//
// A Renderer validates a chart.Spec, asks the configured Library for a chart
// and draws it on exactly one Surface of its Canvas. A failed render never
// touches the canvas.
package render

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/energydash/core/chart"
	"github.com/kilianp07/energydash/core/logger"
	"github.com/kilianp07/energydash/core/metrics"
)

// Chart is a library-specific chart ready to be mounted in the browser.
type Chart interface {
	Kind() chart.Kind
	// Config returns the option object consumed by the browser-side library.
	Config() ([]byte, error)
}

// Library constructs charts of a given kind bound to a surface.
type Library interface {
	Name() string
	NewChart(placeholderID string, spec chart.Spec) Chart
}

// Surface is one drawable region of a page.
type Surface interface {
	ID() string
	Draw(c Chart)
}

// Canvas resolves placeholder ids to surfaces.
type Canvas interface {
	Surface(id string) (Surface, bool)
}

// RenderedChart is the handle returned for a successful render.
type RenderedChart struct {
	ID          string
	Placeholder string
	Title       string
	Kind        chart.Kind
	Series      int
	Points      int
	Chart       Chart
}

// Renderer draws chart specs on a canvas.
type Renderer struct {
	canvas Canvas
	lib    Library
	sink   metrics.RenderSink
	log    logger.Logger
}

// New returns a Renderer drawing on canvas with lib. Nil sink and logger are
// replaced by no-op implementations.
func New(canvas Canvas, lib Library, sink metrics.RenderSink, log logger.Logger) *Renderer {
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Renderer{canvas: canvas, lib: lib, sink: sink, log: logger.OrNop(log)}
}

// RenderChart draws spec on the surface identified by placeholderID.
func (r *Renderer) RenderChart(placeholderID string, spec chart.Spec) (*RenderedChart, error) {
	start := time.Now()
	rc, err := r.render(placeholderID, spec)
	ev := metrics.RenderEvent{
		Placeholder: placeholderID,
		Kind:        spec.Kind.String(),
		Outcome:     outcome(err),
		Series:      len(spec.Datasets),
		Points:      spec.Points(),
		Duration:    time.Since(start),
		Time:        start,
	}
	if serr := r.sink.RecordRender(ev); serr != nil {
		r.log.Warnf("record render %s: %v", placeholderID, serr)
	}
	if err != nil {
		r.log.Errorf("render %s: %v", placeholderID, err)
		return nil, err
	}
	r.log.Debugw("chart rendered", map[string]any{
		"placeholder": placeholderID,
		"kind":        spec.Kind.String(),
		"series":      ev.Series,
		"points":      ev.Points,
	})
	return rc, nil
}

func (r *Renderer) render(placeholderID string, spec chart.Spec) (*RenderedChart, error) {
	surface, ok := r.canvas.Surface(placeholderID)
	if !ok {
		return nil, &MissingTargetError{Placeholder: placeholderID}
	}
	if err := Validate(placeholderID, spec); err != nil {
		return nil, err
	}
	c := r.lib.NewChart(placeholderID, spec)
	surface.Draw(c)
	return &RenderedChart{
		ID:          uuid.NewString(),
		Placeholder: placeholderID,
		Title:       spec.Title,
		Kind:        spec.Kind,
		Series:      len(spec.Datasets),
		Points:      spec.Points(),
		Chart:       c,
	}, nil
}

// Validate checks that spec has at least one dataset and that every dataset
// has exactly one value per label.
func Validate(placeholderID string, spec chart.Spec) error {
	if len(spec.Datasets) == 0 {
		return &DataShapeError{Placeholder: placeholderID}
	}
	for _, ds := range spec.Datasets {
		if len(ds.Values) != len(spec.Labels) {
			return &DataShapeError{
				Placeholder: placeholderID,
				Dataset:     ds.Label,
				Want:        len(spec.Labels),
				Got:         len(ds.Values),
			}
		}
	}
	return nil
}

func outcome(err error) string {
	var mt *MissingTargetError
	var ds *DataShapeError
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.As(err, &mt):
		return metrics.OutcomeMissingTarget
	case errors.As(err, &ds):
		return metrics.OutcomeDataShape
	default:
		return metrics.OutcomeError
	}
}
