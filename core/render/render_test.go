package render_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/energydash/core/chart"
	"github.com/kilianp07/energydash/core/metrics"
	"github.com/kilianp07/energydash/core/page"
	"github.com/kilianp07/energydash/core/render"
)

type fakeChart struct {
	id   string
	spec chart.Spec
}

func (c fakeChart) Kind() chart.Kind { return c.spec.Kind }
func (c fakeChart) Config() ([]byte, error) {
	return json.Marshal(struct {
		ID   string
		Spec chart.Spec
	}{c.id, c.spec})
}

type fakeLib struct{ built int }

func (l *fakeLib) Name() string { return "fake" }
func (l *fakeLib) NewChart(id string, spec chart.Spec) render.Chart {
	l.built++
	return fakeChart{id: id, spec: spec}
}

type recSink struct{ events []metrics.RenderEvent }

func (s *recSink) RecordRender(ev metrics.RenderEvent) error {
	s.events = append(s.events, ev)
	return nil
}

func powerSpec() chart.Spec {
	return chart.Spec{
		Title:  "power",
		Kind:   chart.KindLine,
		Labels: []string{"00:00", "00:05"},
		Datasets: []chart.Dataset{
			{Label: "Solar Power", Values: []float64{0.0, 0.1}},
			{Label: "Consumption", Values: []float64{0.3, 0.25}},
		},
		YAxis:  chart.YAxis{Label: "[kW]"},
		Legend: true,
	}
}

func TestRenderChart_DrawsOnlyTarget(t *testing.T) {
	p := page.New("power_log", "gas_log")
	sink := &recSink{}
	r := render.New(p, &fakeLib{}, sink, nil)

	rc, err := r.RenderChart("power_log", powerSpec())
	require.NoError(t, err)
	assert.Equal(t, "power_log", rc.Placeholder)
	assert.Equal(t, chart.KindLine, rc.Kind)
	assert.Equal(t, 2, rc.Series)
	assert.Equal(t, 2, rc.Points)
	assert.NotEmpty(t, rc.ID)

	target, _ := p.Lookup("power_log")
	other, _ := p.Lookup("gas_log")
	assert.Equal(t, 1, target.Draws())
	assert.Equal(t, rc.Chart, target.Chart())
	assert.Equal(t, 0, other.Draws())

	require.Len(t, sink.events, 1)
	assert.Equal(t, metrics.OutcomeOK, sink.events[0].Outcome)
}

func TestRenderChart_MissingTarget(t *testing.T) {
	p := page.New("gas_log")
	lib := &fakeLib{}
	sink := &recSink{}
	r := render.New(p, lib, sink, nil)

	_, err := r.RenderChart("power_log", powerSpec())
	var mt *render.MissingTargetError
	require.True(t, errors.As(err, &mt), "expected MissingTargetError, got %v", err)
	assert.Equal(t, "power_log", mt.Placeholder)
	assert.Equal(t, 0, lib.built)
	assert.Empty(t, p.Charts())
	assert.Equal(t, metrics.OutcomeMissingTarget, sink.events[0].Outcome)
}

func TestRenderChart_DataShapeMismatch(t *testing.T) {
	cases := map[string]func(*chart.Spec){
		"short series":  func(s *chart.Spec) { s.Datasets[1].Values = []float64{0.3} },
		"long series":   func(s *chart.Spec) { s.Datasets[0].Values = []float64{0, 0.1, 0.2} },
		"no datasets":   func(s *chart.Spec) { s.Datasets = nil },
		"missing label": func(s *chart.Spec) { s.Labels = s.Labels[:1] },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := page.New("power_log")
			lib := &fakeLib{}
			sink := &recSink{}
			spec := powerSpec()
			mutate(&spec)

			_, err := render.New(p, lib, sink, nil).RenderChart("power_log", spec)
			var ds *render.DataShapeError
			require.True(t, errors.As(err, &ds), "expected DataShapeError, got %v", err)
			assert.Equal(t, 0, lib.built)
			s, _ := p.Lookup("power_log")
			assert.Equal(t, 0, s.Draws())
			assert.Equal(t, metrics.OutcomeDataShape, sink.events[0].Outcome)
		})
	}
}

func TestRenderChart_EmptyIsValid(t *testing.T) {
	p := page.New("power_log")
	spec := chart.Spec{
		Kind:     chart.KindLine,
		Labels:   []string{},
		Datasets: []chart.Dataset{{Label: "Solar Power"}, {Label: "Consumption", Values: []float64{}}},
	}
	rc, err := render.New(p, &fakeLib{}, nil, nil).RenderChart("power_log", spec)
	require.NoError(t, err)
	assert.Equal(t, 0, rc.Points)
}

func TestRenderChart_Idempotent(t *testing.T) {
	p := page.New("power_log")
	r := render.New(p, &fakeLib{}, nil, nil)

	first, err := r.RenderChart("power_log", powerSpec())
	require.NoError(t, err)
	a, err := first.Chart.Config()
	require.NoError(t, err)

	p.ClearAll()
	second, err := r.RenderChart("power_log", powerSpec())
	require.NoError(t, err)
	b, err := second.Chart.Config()
	require.NoError(t, err)

	assert.Equal(t, string(a), string(b))
	assert.NotEqual(t, first.ID, second.ID)
	s, _ := p.Lookup("power_log")
	assert.Equal(t, 1, s.Draws())
}

func TestDataShapeError_Message(t *testing.T) {
	err := &render.DataShapeError{Placeholder: "gas_log", Dataset: "Gas used", Want: 2, Got: 1}
	assert.Contains(t, err.Error(), `dataset "Gas used" has 1 values, want 2`)
	empty := &render.DataShapeError{Placeholder: "gas_log"}
	assert.Contains(t, empty.Error(), "no datasets")
}
