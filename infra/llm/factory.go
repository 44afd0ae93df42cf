// Package llm provides language model clients: an OpenAI compatible chat
// completion client and a fixture client replaying canned answers.
package llm

import (
	"fmt"

	"github.com/kilianp07/skejul/core/factory"
	corellm "github.com/kilianp07/skejul/core/llm"
)

var providers = factory.NewRegistry[corellm.Client]()

func init() {
	_ = providers.Register("openai", func(conf map[string]any) (corellm.Client, error) {
		var c OpenAIConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewOpenAIClient(c)
	})
	_ = providers.Register("fixture", func(conf map[string]any) (corellm.Client, error) {
		var c FixtureConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.Path == "" {
			return nil, fmt.Errorf("fixture provider: path is required")
		}
		return NewFixtureClient(c.Path)
	})
}

// RegisterProvider adds a client factory identified by name.
func RegisterProvider(name string, f factory.Factory[corellm.Client]) error {
	return providers.Register(name, f)
}

// NewClient creates the client described by cfg.
func NewClient(cfg factory.ModuleConfig) (corellm.Client, error) {
	c, err := providers.Create(cfg)
	if err != nil {
		return nil, fmt.Errorf("model provider %s: %w", cfg.Type, err)
	}
	return c, nil
}

// Providers lists the registered provider names.
func Providers() []string { return providers.Types() }
