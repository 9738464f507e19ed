package source

import (
	"github.com/kilianp07/energydash/core/factory"
	coresource "github.com/kilianp07/energydash/core/source"
	"github.com/kilianp07/energydash/infra/mqtt"
)

// init registers the built-in sources.
func init() {
	_ = coresource.Register("file", func(conf map[string]any) (coresource.Source, error) {
		var c FileConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewFile(c)
	})

	_ = coresource.Register("http", func(conf map[string]any) (coresource.Source, error) {
		var c HTTPConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewHTTP(c)
	})

	_ = coresource.Register("influx", func(conf map[string]any) (coresource.Source, error) {
		var c InfluxConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewInflux(c)
	})

	_ = coresource.Register("mqtt", func(conf map[string]any) (coresource.Source, error) {
		var c mqtt.Config
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewMQTT(c)
	})
}
