package chartjs

import (
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/energydash/core/chart"
	"github.com/kilianp07/energydash/core/dashboard"
)

func build(t *testing.T, key string, d dashboard.Data) config {
	t.Helper()
	for _, def := range dashboard.Definitions {
		if def.Key != key {
			continue
		}
		c := New().NewChart(def.Placeholder, dashboard.Build(def, d))
		b, err := c.Config()
		require.NoError(t, err)
		var cfg config
		require.NoError(t, gojson.Unmarshal(b, &cfg))
		return cfg
	}
	t.Fatalf("unknown chart %s", key)
	return config{}
}

func TestEnergyChartConfig(t *testing.T) {
	cfg := build(t, dashboard.KeyEnergy, dashboard.Data{
		ElecTime:      []string{"Jan", "Feb"},
		ElecConsumed:  []float64{120, 110},
		ElecReturned:  []float64{20, 25},
		ElecGenerated: []float64{40, 45},
	})
	assert.Equal(t, "bar", cfg.Type)
	assert.Equal(t, []string{"Jan", "Feb"}, cfg.Data.Labels)
	require.Len(t, cfg.Data.Datasets, 3)
	assert.Equal(t, "daily elec used", cfg.Data.Datasets[0].Label)
	assert.Equal(t, "#dc3545", cfg.Data.Datasets[0].BackgroundColor)
	assert.Nil(t, cfg.Data.Datasets[0].LineTension)

	x := cfg.Options.Scales.XAxes[0]
	assert.Equal(t, "month", x.Time.Unit)
	require.NotNil(t, x.Ticks)
	assert.Equal(t, 6, x.Ticks.MaxTicksLimit)
	require.NotNil(t, x.GridLines)
	assert.False(t, *x.GridLines.Display)

	y := cfg.Options.Scales.YAxes[0]
	assert.Equal(t, "[kWh]", y.ScaleLabel.LabelString)
	assert.True(t, y.ScaleLabel.Display)
	assert.True(t, *y.GridLines.Display)
	assert.True(t, cfg.Options.Legend.Display)
}

func TestPowerChartConfig(t *testing.T) {
	cfg := build(t, dashboard.KeyPower, dashboard.Data{
		TodayTime:        []string{"00:00", "00:05"},
		TodaySolarPower:  []float64{0.0, 0.1},
		TodayConsumption: []float64{0.3, 0.25},
	})
	assert.Equal(t, "line", cfg.Type)
	require.Len(t, cfg.Data.Datasets, 2)
	solar := cfg.Data.Datasets[0]
	assert.Equal(t, 0.3, *solar.LineTension)
	assert.Equal(t, float64(0), *solar.PointRadius)
	assert.Equal(t, float64(20), *solar.PointHitRadius)
	assert.Equal(t, "#28a745", solar.BorderColor)
	assert.Equal(t, "rgba(255,255,255,0.8)", solar.PointBorderColor)
	assert.Len(t, solar.Data, 2)

	x := cfg.Options.Scales.XAxes[0]
	assert.Equal(t, "date", x.Time.Unit)
	assert.Nil(t, x.Ticks)
	assert.Nil(t, x.GridLines)
	assert.Equal(t, "rgba(0, 0, 0, .125)", cfg.Options.Scales.YAxes[0].GridLines.Color)
	assert.Equal(t, "[kW]", cfg.Options.Scales.YAxes[0].ScaleLabel.LabelString)
}

func TestLineDatasetsKeepDefaultAreaFill(t *testing.T) {
	spec := dashboard.Build(dashboard.Definitions[0], dashboard.Data{
		TodayTime:        []string{"00:00"},
		TodaySolarPower:  []float64{0.1},
		TodayConsumption: []float64{0.3},
	})
	b, err := New().NewChart("power_log", spec).Config()
	require.NoError(t, err)
	assert.NotContains(t, string(b), `"fill"`)
	assert.NotContains(t, string(b), `"backgroundColor"`)

	spec.Datasets[0].Style.Fill = true
	b, err = New().NewChart("power_log", spec).Config()
	require.NoError(t, err)
	assert.Contains(t, string(b), `"fill":true`)
	assert.Contains(t, string(b), `"backgroundColor":"#28a745"`)
}

func TestEmptyChartEncodesArrays(t *testing.T) {
	c := New().NewChart("gas_log", chart.Spec{Kind: chart.KindBar, Datasets: []chart.Dataset{{Label: "Gas used"}}})
	b, err := c.Config()
	require.NoError(t, err)
	assert.Contains(t, string(b), `"labels":[]`)
	assert.Contains(t, string(b), `"data":[]`)
}

func TestFrontend(t *testing.T) {
	l := New()
	assert.Equal(t, DefaultScript, l.Assets()[0])
	assert.Contains(t, string(l.Element("gas_log")), `<canvas id="gas_log"`)
	assert.Equal(t, `new Chart(document.getElementById("gas_log"), {});`, string(l.Mount("gas_log", []byte("{}"))))
	assert.Contains(t, string(l.Preamble()), "defaultFontColor")
}
