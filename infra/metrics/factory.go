package metrics

import (
	"github.com/kilianp07/energydash/core/factory"
	coremetrics "github.com/kilianp07/energydash/core/metrics"
)

// init registers built-in render sinks.
func init() {
	_ = coremetrics.RegisterRenderSink("nop", func(map[string]any) (coremetrics.RenderSink, error) {
		return coremetrics.NopSink{}, nil
	})

	_ = coremetrics.RegisterRenderSink("prometheus", func(map[string]any) (coremetrics.RenderSink, error) {
		return NewPromSink()
	})

	_ = coremetrics.RegisterRenderSink("influx", func(conf map[string]any) (coremetrics.RenderSink, error) {
		var c struct {
			URL    string `json:"url"`
			Token  string `json:"token"`
			Org    string `json:"org"`
			Bucket string `json:"bucket"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewInfluxSinkWithFallback(c.URL, c.Token, c.Org, c.Bucket), nil
	})
}
