// Package chartjs emits Chart.js 2 configurations, the format the dashboard
// page was originally written against.
package chartjs

import (
	"fmt"
	"html/template"
	"strconv"

	gojson "github.com/goccy/go-json"

	"github.com/kilianp07/energydash/core/chart"
	"github.com/kilianp07/energydash/core/render"
)

// DefaultScript is the Chart.js build the configurations target.
const DefaultScript = "https://cdn.jsdelivr.net/npm/chart.js@2.9.4/dist/Chart.min.js"

const (
	fontFamily = `-apple-system,system-ui,BlinkMacSystemFont,"Segoe UI",Roboto,"Helvetica Neue",Arial,sans-serif`
	fontColor  = "#292b2c"
)

// Library implements render.Library for Chart.js.
type Library struct {
	Script string
}

// New returns a Library loading DefaultScript.
func New() *Library { return &Library{Script: DefaultScript} }

func (l *Library) Name() string { return "chartjs" }

type config struct {
	Type    string  `json:"type"`
	Data    data    `json:"data"`
	Options options `json:"options"`
}

type data struct {
	Labels   []string  `json:"labels"`
	Datasets []dataset `json:"datasets"`
}

type dataset struct {
	Label                     string    `json:"label"`
	LineTension               *float64  `json:"lineTension,omitempty"`
	BackgroundColor           string    `json:"backgroundColor,omitempty"`
	BorderColor               string    `json:"borderColor,omitempty"`
	BorderWidth               *float64  `json:"borderWidth,omitempty"`
	PointRadius               *float64  `json:"pointRadius,omitempty"`
	PointBackgroundColor      string    `json:"pointBackgroundColor,omitempty"`
	PointBorderColor          string    `json:"pointBorderColor,omitempty"`
	PointHoverBackgroundColor string    `json:"pointHoverBackgroundColor,omitempty"`
	PointHitRadius            *float64  `json:"pointHitRadius,omitempty"`
	PointBorderWidth          *float64  `json:"pointBorderWidth,omitempty"`
	Fill                      *bool     `json:"fill,omitempty"`
	Data                      []float64 `json:"data"`
}

type options struct {
	Scales scales `json:"scales"`
	Legend legend `json:"legend"`
}

type scales struct {
	XAxes []xAxis `json:"xAxes"`
	YAxes []yAxis `json:"yAxes"`
}

type xAxis struct {
	Time      timeOpts   `json:"time"`
	GridLines *gridLines `json:"gridLines,omitempty"`
	Ticks     *ticks     `json:"ticks,omitempty"`
}

type timeOpts struct {
	Unit string `json:"unit"`
}

type gridLines struct {
	Display *bool  `json:"display,omitempty"`
	Color   string `json:"color,omitempty"`
}

type ticks struct {
	MaxTicksLimit int `json:"maxTicksLimit"`
}

type yAxis struct {
	GridLines  gridLines  `json:"gridLines"`
	ScaleLabel scaleLabel `json:"scaleLabel"`
}

type scaleLabel struct {
	Display     bool   `json:"display"`
	LabelString string `json:"labelString"`
}

type legend struct {
	Display bool `json:"display"`
}

// Chart is a Chart.js configuration.
type Chart struct {
	kind chart.Kind
	cfg  config
}

func (c *Chart) Kind() chart.Kind { return c.kind }

// Config encodes the configuration passed to new Chart(ctx, cfg).
func (c *Chart) Config() ([]byte, error) {
	b, err := gojson.Marshal(c.cfg)
	if err != nil {
		return nil, fmt.Errorf("encode chart.js config: %w", err)
	}
	return b, nil
}

// NewChart builds the Chart.js configuration for spec.
func (l *Library) NewChart(_ string, spec chart.Spec) render.Chart {
	kind := spec.Kind
	if kind != chart.KindBar {
		kind = chart.KindLine
	}
	labels := spec.Labels
	if labels == nil {
		labels = []string{}
	}
	cfg := config{
		Type: kind.String(),
		Data: data{Labels: labels, Datasets: make([]dataset, 0, len(spec.Datasets))},
		Options: options{
			Scales: scales{
				XAxes: []xAxis{newXAxis(spec.XAxis)},
				YAxes: []yAxis{{
					GridLines:  gridLines{Display: boolPtr(spec.YAxis.GridLines), Color: spec.YAxis.GridColor},
					ScaleLabel: scaleLabel{Display: spec.YAxis.Label != "", LabelString: spec.YAxis.Label},
				}},
			},
			Legend: legend{Display: spec.Legend},
		},
	}
	for _, ds := range spec.Datasets {
		cfg.Data.Datasets = append(cfg.Data.Datasets, newDataset(kind, ds))
	}
	return &Chart{kind: kind, cfg: cfg}
}

func newXAxis(x chart.XAxis) xAxis {
	ax := xAxis{Time: timeOpts{Unit: string(x.Unit)}}
	if !x.GridLines {
		ax.GridLines = &gridLines{Display: boolPtr(false)}
	}
	if x.TickLimit > 0 {
		ax.Ticks = &ticks{MaxTicksLimit: x.TickLimit}
	}
	return ax
}

func newDataset(kind chart.Kind, ds chart.Dataset) dataset {
	values := ds.Values
	if values == nil {
		values = []float64{}
	}
	st := ds.Style
	out := dataset{
		Label:           ds.Label,
		BackgroundColor: st.BackgroundColor,
		BorderColor:     st.BorderColor,
		Data:            values,
	}
	if kind == chart.KindBar {
		return out
	}
	out.BackgroundColor = ""
	out.LineTension = floatPtr(st.LineTension)
	out.BorderWidth = floatPtr(st.BorderWidth)
	out.PointRadius = floatPtr(st.PointRadius)
	out.PointBackgroundColor = st.BorderColor
	out.PointBorderColor = st.PointBorderColor
	out.PointHoverBackgroundColor = st.BorderColor
	out.PointHitRadius = floatPtr(st.PointHitRadius)
	out.PointBorderWidth = floatPtr(st.PointBorderWidth)
	// Without Fill, fill and backgroundColor are left to Chart.js, which
	// draws its default area under the line.
	if st.Fill {
		out.BackgroundColor = st.BackgroundColor
		out.Fill = boolPtr(true)
	}
	return out
}

func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }

// Assets lists the scripts the page must load.
func (l *Library) Assets() []string { return []string{l.Script} }

// Element returns the canvas for a placeholder.
func (l *Library) Element(id string) template.HTML {
	return template.HTML(fmt.Sprintf(`<canvas id=%q class="chart" width="100%%" height="30"></canvas>`, template.HTMLEscapeString(id)))
}

// Preamble sets the Bootstrap-like font defaults once per page.
func (l *Library) Preamble() template.JS {
	return template.JS(fmt.Sprintf("Chart.defaults.global.defaultFontFamily = %s;\nChart.defaults.global.defaultFontColor = %s;",
		strconv.Quote(fontFamily), strconv.Quote(fontColor)))
}

// Mount returns the script drawing config into the placeholder.
func (l *Library) Mount(id string, config []byte) template.JS {
	return template.JS(fmt.Sprintf("new Chart(document.getElementById(%s), %s);", strconv.Quote(id), config))
}
