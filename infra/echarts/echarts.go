// Package echarts draws dashboard charts with go-echarts. The browser mounts
// the produced option objects with echarts.setOption.
package echarts

import (
	"encoding/json"
	"fmt"
	"html/template"
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/kilianp07/energydash/core/chart"
	"github.com/kilianp07/energydash/core/render"
)

// DefaultAssetsHost serves echarts.min.js.
const DefaultAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

// Library implements render.Library on top of go-echarts.
type Library struct {
	AssetsHost string
	Height     string
}

// New returns a Library using the default assets host.
func New() *Library { return &Library{AssetsHost: DefaultAssetsHost, Height: "320px"} }

func (l *Library) Name() string { return "echarts" }

type optioner interface {
	Validate()
	JSON() map[string]interface{}
}

// Chart wraps a go-echarts chart.
type Chart struct {
	kind chart.Kind
	c    optioner
}

func (c *Chart) Kind() chart.Kind { return c.kind }

// Config returns the echarts option object.
func (c *Chart) Config() ([]byte, error) {
	c.c.Validate()
	b, err := json.Marshal(c.c.JSON())
	if err != nil {
		return nil, fmt.Errorf("encode echarts options: %w", err)
	}
	return b, nil
}

// NewChart builds a line or bar chart bound to placeholderID.
func (l *Library) NewChart(placeholderID string, spec chart.Spec) render.Chart {
	global := globalOpts(placeholderID, spec, l.AssetsHost)
	switch spec.Kind {
	case chart.KindBar:
		bar := charts.NewBar()
		bar.SetGlobalOptions(global...)
		bar.SetXAxis(spec.Labels)
		for _, ds := range spec.Datasets {
			bar.AddSeries(ds.Label, barData(ds.Values),
				charts.WithItemStyleOpts(opts.ItemStyle{Color: ds.Style.BackgroundColor, BorderColor: ds.Style.BorderColor}),
			)
		}
		return &Chart{kind: chart.KindBar, c: bar}
	default:
		line := charts.NewLine()
		line.SetGlobalOptions(global...)
		line.SetXAxis(spec.Labels)
		for _, ds := range spec.Datasets {
			line.AddSeries(ds.Label, lineData(ds.Values),
				charts.WithLineChartOpts(opts.LineChart{
					Smooth:     opts.Bool(ds.Style.LineTension > 0),
					ShowSymbol: opts.Bool(ds.Style.PointRadius > 0),
				}),
				charts.WithLineStyleOpts(opts.LineStyle{Color: ds.Style.BorderColor, Width: float32(ds.Style.BorderWidth)}),
				charts.WithItemStyleOpts(opts.ItemStyle{Color: ds.Style.BorderColor}),
			)
		}
		return &Chart{kind: chart.KindLine, c: line}
	}
}

func globalOpts(id string, spec chart.Spec, assetsHost string) []charts.GlobalOpts {
	yGrid := &opts.SplitLine{Show: opts.Bool(spec.YAxis.GridLines)}
	if spec.YAxis.GridColor != "" {
		yGrid.LineStyle = &opts.LineStyle{Color: spec.YAxis.GridColor}
	}
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{ChartID: id, AssetsHost: assetsHost}),
		charts.WithTitleOpts(opts.Title{Title: spec.Title}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(spec.Legend), Top: "bottom"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{
			Type:      "category",
			AxisLabel: &opts.AxisLabel{Interval: labelInterval(len(spec.Labels), spec.XAxis.TickLimit)},
			SplitLine: &opts.SplitLine{Show: opts.Bool(spec.XAxis.GridLines)},
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: spec.YAxis.Label, SplitLine: yGrid}),
	}
}

// labelInterval maps a maximum tick count to the echarts category label
// interval, which counts the labels skipped between two shown ones.
func labelInterval(n, limit int) string {
	if limit <= 0 || n <= limit {
		return "0"
	}
	step := int(math.Ceil(float64(n) / float64(limit)))
	return strconv.Itoa(step - 1)
}

func lineData(values []float64) []opts.LineData {
	items := make([]opts.LineData, len(values))
	for i, v := range values {
		items[i] = opts.LineData{Value: v}
	}
	return items
}

func barData(values []float64) []opts.BarData {
	items := make([]opts.BarData, len(values))
	for i, v := range values {
		items[i] = opts.BarData{Value: v}
	}
	return items
}

// Assets lists the scripts the page must load.
func (l *Library) Assets() []string { return []string{l.AssetsHost + "echarts.min.js"} }

// Element returns the container for a placeholder.
func (l *Library) Element(id string) template.HTML {
	return template.HTML(fmt.Sprintf(`<div id=%q class="chart" style="width:100%%;height:%s"></div>`,
		template.HTMLEscapeString(id), template.HTMLEscapeString(l.Height)))
}

// Mount returns the script drawing config into the placeholder.
func (l *Library) Mount(id string, config []byte) template.JS {
	return template.JS(fmt.Sprintf("echarts.init(document.getElementById(%s)).setOption(%s);",
		strconv.Quote(id), config))
}

// Preamble returns page-wide setup code. echarts needs none.
func (l *Library) Preamble() template.JS { return "" }
