// Package chart holds the declarative description of one dashboard chart.
//
// A Spec is built once per render from explicit data, handed to a render.Library and
// then discarded. Nothing in this package draws anything.
package chart

// Kind selects the chart type drawn by the charting library.
type Kind string

const (
	KindLine Kind = "line"
	KindBar  Kind = "bar"
)

func (k Kind) String() string { return string(k) }

// TimeUnit is the granularity of the category axis.
type TimeUnit string

const (
	UnitDate  TimeUnit = "date"
	UnitMonth TimeUnit = "month"
)

// SeriesStyle holds static visual attributes of one dataset.
type SeriesStyle struct {
	BackgroundColor  string
	BorderColor      string
	BorderWidth      float64
	LineTension      float64
	PointRadius      float64
	PointHitRadius   float64
	PointBorderColor string
	PointBorderWidth float64
	Fill             bool
}

// Dataset is one named, styled sequence of values plotted against the shared labels.
type Dataset struct {
	Label  string
	Values []float64
	Style  SeriesStyle
}

// XAxis configures the label axis.
type XAxis struct {
	Unit TimeUnit
	// TickLimit caps the number of visible labels. Zero means no limit.
	TickLimit int
	GridLines bool
}

// YAxis configures the value axis.
type YAxis struct {
	// Label is the unit shown next to the axis, e.g. "[kW]".
	Label     string
	GridLines bool
	GridColor string
}

// Spec fully describes one chart instance.
type Spec struct {
	Title    string
	Kind     Kind
	Labels   []string
	Datasets []Dataset
	XAxis    XAxis
	YAxis    YAxis
	Legend   bool
}

// Points returns the number of points per series.
func (s Spec) Points() int { return len(s.Labels) }
