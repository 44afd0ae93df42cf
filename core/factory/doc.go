// Package factory provides a small generic registry used to instantiate
// pluggable modules (model providers, metrics sinks) from configuration.
// Modules are defined by a type string and a map of raw settings. Factories
// decode the settings into typed structs and return the implementation.
//
//	reg := factory.NewRegistry[llm.Client]()
//	reg.Register("fixture", func(conf map[string]any) (llm.Client, error) {
//	    var c struct{ Path string `json:"path"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return NewFixture(c.Path)
//	})
//	c, err := reg.Create(factory.ModuleConfig{Type: "fixture", Conf: map[string]any{"path": "answers.yaml"}})
package factory
