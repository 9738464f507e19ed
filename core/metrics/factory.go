package metrics

import "github.com/kilianp07/energydash/core/factory"

var sinkRegistry = factory.NewRegistry[RenderSink]()

// RegisterRenderSink adds a render sink factory identified by name.
func RegisterRenderSink(name string, f factory.Factory[RenderSink]) error {
	return sinkRegistry.Register(name, f)
}

// NewRenderSink creates a RenderSink from the provided configuration.
func NewRenderSink(cfgs []factory.ModuleConfig) (RenderSink, error) {
	if len(cfgs) == 0 {
		return NopSink{}, nil
	}
	if len(cfgs) == 1 {
		return sinkRegistry.Create(cfgs[0])
	}
	sinks := make([]RenderSink, len(cfgs))
	for i, c := range cfgs {
		s, err := sinkRegistry.Create(c)
		if err != nil {
			return nil, err
		}
		sinks[i] = s
	}
	return NewMultiSink(sinks...), nil
}
