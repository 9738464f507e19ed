// Package dashboard describes the energy dashboard charts as data and renders
// them onto a page.
package dashboard

import (
	"fmt"

	"github.com/kilianp07/energydash/core/logger"
	"github.com/kilianp07/energydash/core/metrics"
	"github.com/kilianp07/energydash/core/monitoring"
	"github.com/kilianp07/energydash/core/page"
	"github.com/kilianp07/energydash/core/render"
)

// Panel is the outcome of rendering one chart of the dashboard.
type Panel struct {
	Key         string
	Placeholder string
	Title       string
	Chart       *render.RenderedChart
	Err         error
	// Message is the text shown in place of the chart when Err is set.
	Message string
}

// OK reports whether the panel holds a chart.
func (p Panel) OK() bool { return p.Err == nil && p.Chart != nil }

// Dashboard renders the enabled charts with one charting library.
type Dashboard struct {
	title string
	defs  []Definition
	lib   render.Library
	sink  metrics.RenderSink
	log   logger.Logger
}

// New applies cfg to the chart table and returns the dashboard.
func New(cfg Config, lib render.Library, sink metrics.RenderSink, log logger.Logger) (*Dashboard, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if lib == nil {
		return nil, fmt.Errorf("chart library is required")
	}
	var defs []Definition
	for _, def := range Definitions {
		cc := cfg.Charts[def.Key]
		if !cc.active() {
			continue
		}
		if cc.Title != "" {
			def.Title = cc.Title
		}
		defs = append(defs, def)
	}
	return &Dashboard{title: cfg.Title, defs: defs, lib: lib, sink: sink, log: logger.OrNop(log)}, nil
}

// Title returns the page title.
func (d *Dashboard) Title() string { return d.title }

// Library returns the charting library used by the dashboard.
func (d *Dashboard) Library() render.Library { return d.lib }

// Definitions returns the enabled charts in page order.
func (d *Dashboard) Definitions() []Definition {
	out := make([]Definition, len(d.defs))
	copy(out, d.defs)
	return out
}

// Lookup finds an enabled chart by key.
func (d *Dashboard) Lookup(key string) (Definition, bool) { return lookup(d.defs, key) }

// NewPage declares a page with one placeholder per enabled chart.
func (d *Dashboard) NewPage() *page.Page {
	ids := make([]string, len(d.defs))
	for i, def := range d.defs {
		ids[i] = def.Placeholder
	}
	return page.New(ids...)
}

// Render draws every enabled chart on p. A failing chart yields an error
// panel and does not prevent the others from rendering.
func (d *Dashboard) Render(p render.Canvas, data Data) []Panel {
	r := render.New(p, d.lib, d.sink, d.log)
	panels := make([]Panel, 0, len(d.defs))
	for _, def := range d.defs {
		panels = append(panels, d.renderPanel(r, def, data))
	}
	return panels
}

// RenderChart renders a single chart on its own page.
func (d *Dashboard) RenderChart(key string, data Data) (*render.RenderedChart, error) {
	def, ok := d.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("unknown chart %q", key)
	}
	pn := d.renderPanel(render.New(page.New(def.Placeholder), d.lib, d.sink, d.log), def, data)
	return pn.Chart, pn.Err
}

func (d *Dashboard) renderPanel(r *render.Renderer, def Definition, data Data) Panel {
	pn := Panel{Key: def.Key, Placeholder: def.Placeholder, Title: def.Title}
	rc, err := r.RenderChart(def.Placeholder, Build(def, data))
	if err != nil {
		monitoring.CaptureException(err, map[string]string{"chart": def.Key})
		pn.Err = err
		pn.Message = fmt.Sprintf("Unable to render %s: %v", def.Title, err)
		return pn
	}
	pn.Chart = rc
	return pn
}

// Failed returns one error panel per enabled chart, used when the data
// could not be fetched at all.
func (d *Dashboard) Failed(err error) []Panel {
	panels := make([]Panel, 0, len(d.defs))
	for _, def := range d.defs {
		panels = append(panels, Panel{
			Key:         def.Key,
			Placeholder: def.Placeholder,
			Title:       def.Title,
			Err:         err,
			Message:     fmt.Sprintf("Unable to get data for %s...", def.Title),
		})
	}
	return panels
}
