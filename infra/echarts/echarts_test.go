package echarts

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/energydash/core/chart"
	"github.com/kilianp07/energydash/core/dashboard"
)

func definition(key string) dashboard.Definition {
	for _, d := range dashboard.Definitions {
		if d.Key == key {
			return d
		}
	}
	return dashboard.Definition{}
}

func options(t *testing.T, spec chart.Spec) map[string]any {
	t.Helper()
	b, err := New().NewChart("power_log", spec).Config()
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	return m
}

func TestPowerChartOptions(t *testing.T) {
	data := dashboard.Data{
		TodayTime:        []string{"00:00", "00:05"},
		TodaySolarPower:  []float64{0.0, 0.1},
		TodayConsumption: []float64{0.3, 0.25},
	}
	c := New().NewChart("power_log", dashboard.Build(definition(dashboard.KeyPower), data))
	assert.Equal(t, chart.KindLine, c.Kind())

	m := options(t, dashboard.Build(definition(dashboard.KeyPower), data))
	series, ok := m["series"].([]any)
	require.True(t, ok)
	require.Len(t, series, 2)
	for _, s := range series {
		sm := s.(map[string]any)
		assert.Equal(t, "line", sm["type"])
		assert.Equal(t, false, sm["showSymbol"])
		assert.Equal(t, true, sm["smooth"])
		assert.Len(t, sm["data"], 2)
	}
	yAxis := m["yAxis"].([]any)[0].(map[string]any)
	assert.Equal(t, "[kW]", yAxis["name"])
}

func TestBarChartOptions(t *testing.T) {
	labels := make([]string, 12)
	vals := make([]float64, 12)
	for i := range labels {
		labels[i] = "d"
	}
	data := dashboard.Data{ElecTime: labels, ElecConsumed: vals, ElecReturned: vals, ElecGenerated: vals}
	m := options(t, dashboard.Build(definition(dashboard.KeyEnergy), data))

	series := m["series"].([]any)
	require.Len(t, series, 3)
	assert.Equal(t, "bar", series[0].(map[string]any)["type"])
	xAxis := m["xAxis"].([]any)[0].(map[string]any)
	assert.Equal(t, "1", xAxis["axisLabel"].(map[string]any)["interval"])
	yAxis := m["yAxis"].([]any)[0].(map[string]any)
	assert.Equal(t, "[kWh]", yAxis["name"])
}

func TestConfigDeterministic(t *testing.T) {
	spec := dashboard.Build(definition(dashboard.KeyGas), dashboard.Data{GasTime: []string{"Jan"}, GasUsed: []float64{2}})
	a, err := New().NewChart("gas_log", spec).Config()
	require.NoError(t, err)
	b, err := New().NewChart("gas_log", spec).Config()
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestLabelInterval(t *testing.T) {
	cases := []struct {
		n, limit int
		want     string
	}{
		{0, 6, "0"},
		{6, 6, "0"},
		{7, 6, "1"},
		{30, 6, "4"},
		{100, 0, "0"},
	}
	for _, c := range cases {
		if got := labelInterval(c.n, c.limit); got != c.want {
			t.Errorf("labelInterval(%d,%d)=%s want %s", c.n, c.limit, got, c.want)
		}
	}
}

func TestFrontend(t *testing.T) {
	l := New()
	assert.True(t, strings.HasSuffix(l.Assets()[0], "echarts.min.js"))
	assert.Contains(t, string(l.Element("gas_log")), `id="gas_log"`)
	js := string(l.Mount("gas_log", []byte(`{"a":1}`)))
	assert.Equal(t, `echarts.init(document.getElementById("gas_log")).setOption({"a":1});`, js)
}
