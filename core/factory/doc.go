// Package factory provides a small generic registry used to instantiate modules
// from configuration. A module is a type string plus a map of raw settings;
// data sources and metrics sinks are both built this way.
//
//	reg := factory.NewRegistry[source.Source]()
//	reg.Register("file", func(conf map[string]any) (source.Source, error) {
//	    var c struct{ Path string `json:"path"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return NewFileSource(c.Path), nil
//	})
//	src, err := reg.Create(factory.ModuleConfig{Type: "file", Conf: map[string]any{"path": "today.json"}})
package factory
