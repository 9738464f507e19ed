package dashboard

import "github.com/kilianp07/energydash/core/chart"

// Chart keys.
const (
	KeyPower  = "power"
	KeyEnergy = "energy"
	KeyGas    = "gas"
	KeyCost   = "cost"
)

const (
	green     = "#28a745"
	red       = "#dc3545"
	blue      = "rgba(2,117,216,1)"
	silver    = "rgba(192,192,192,1)"
	grey      = "rgba(128,128,128,1)"
	gridColor = "rgba(0, 0, 0, .125)"

	barTickLimit = 6
)

// SeriesDef describes one dataset of a chart and where its values come from.
type SeriesDef struct {
	Label  string
	Style  chart.SeriesStyle
	Values func(Data) []float64
}

// Definition is one row of the chart table.
type Definition struct {
	Key         string
	Placeholder string
	Title       string
	Kind        chart.Kind
	Unit        string
	TimeUnit    chart.TimeUnit
	TickLimit   int
	XGridLines  bool
	YGridColor  string
	Labels      func(Data) []string
	Series      []SeriesDef
}

// Definitions is the fixed set of dashboard charts, in page order.
var Definitions = []Definition{
	{
		Key:         KeyPower,
		Placeholder: "power_log",
		Title:       "Daily power",
		Kind:        chart.KindLine,
		Unit:        "[kW]",
		TimeUnit:    chart.UnitDate,
		XGridLines:  true,
		YGridColor:  gridColor,
		Labels:      func(d Data) []string { return d.TodayTime },
		Series: []SeriesDef{
			{Label: "Solar Power", Style: lineStyle(green), Values: func(d Data) []float64 { return d.TodaySolarPower }},
			{Label: "Consumption", Style: lineStyle(blue), Values: func(d Data) []float64 { return d.TodayConsumption }},
		},
	},
	{
		Key:         KeyEnergy,
		Placeholder: "daily_energy_chart",
		Title:       "Daily energy",
		Kind:        chart.KindBar,
		Unit:        "[kWh]",
		TimeUnit:    chart.UnitMonth,
		TickLimit:   barTickLimit,
		Labels:      func(d Data) []string { return d.ElecTime },
		Series: []SeriesDef{
			{Label: "daily elec used", Style: barStyle(red), Values: func(d Data) []float64 { return d.ElecConsumed }},
			{Label: "daily elec returned", Style: barStyle(blue), Values: func(d Data) []float64 { return d.ElecReturned }},
			{Label: "daily solar energy", Style: barStyle(green), Values: func(d Data) []float64 { return d.ElecGenerated }},
		},
	},
	{
		Key:         KeyGas,
		Placeholder: "gas_log",
		Title:       "Gas usage",
		Kind:        chart.KindBar,
		Unit:        "[m³]",
		TimeUnit:    chart.UnitMonth,
		TickLimit:   barTickLimit,
		Labels:      func(d Data) []string { return d.GasTime },
		Series: []SeriesDef{
			{Label: "Gas used", Style: barStyle(red), Values: func(d Data) []float64 { return d.GasUsed }},
		},
	},
	{
		Key:         KeyCost,
		Placeholder: "daily_cost_chart",
		Title:       "Daily cost",
		Kind:        chart.KindBar,
		Unit:        "[€]",
		TimeUnit:    chart.UnitMonth,
		TickLimit:   barTickLimit,
		Labels:      func(d Data) []string { return d.CostTime },
		Series: []SeriesDef{
			{Label: "daily cost prosument formula", Style: barStyle(silver), Values: func(d Data) []float64 { return d.CostProsument }},
			{Label: "daily cost smart formula", Style: barStyle(grey), Values: func(d Data) []float64 { return d.CostSmart }},
		},
	},
}

func lineStyle(color string) chart.SeriesStyle {
	return chart.SeriesStyle{
		BackgroundColor:  color,
		BorderColor:      color,
		BorderWidth:      2,
		LineTension:      0.3,
		PointRadius:      0,
		PointHitRadius:   20,
		PointBorderColor: "rgba(255,255,255,0.8)",
		PointBorderWidth: 1,
	}
}

func barStyle(color string) chart.SeriesStyle {
	return chart.SeriesStyle{BackgroundColor: color, BorderColor: color}
}

// Build turns a definition and the injected data into a chart spec.
func Build(def Definition, d Data) chart.Spec {
	spec := chart.Spec{
		Title:  def.Title,
		Kind:   def.Kind,
		Labels: def.Labels(d),
		XAxis: chart.XAxis{
			Unit:      def.TimeUnit,
			TickLimit: def.TickLimit,
			GridLines: def.XGridLines,
		},
		YAxis: chart.YAxis{
			Label:     def.Unit,
			GridLines: true,
			GridColor: def.YGridColor,
		},
		Legend: true,
	}
	for _, s := range def.Series {
		spec.Datasets = append(spec.Datasets, chart.Dataset{
			Label:  s.Label,
			Values: s.Values(d),
			Style:  s.Style,
		})
	}
	return spec
}
