package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/skejul/core/factory"
	"github.com/kilianp07/skejul/core/metrics"
	"github.com/kilianp07/skejul/infra/mqtt"
	"github.com/kilianp07/skejul/infra/tracing"
)

// EnvPrefix prefixes environment overrides. Nested keys are separated by a
// double underscore: SKEJUL_OUTPUT__DIR=out sets output.dir.
const EnvPrefix = "SKEJUL_"

type Config struct {
	Extractor factory.ModuleConfig `json:"extractor"`
	Generator factory.ModuleConfig `json:"generator"`
	Output    OutputConfig         `json:"output"`
	RunLog    RunLogConfig         `json:"runlog"`
	Metrics   metrics.Config       `json:"metrics"`
	Sentry    SentryConfig         `json:"sentry"`
	Tracing   tracing.Config       `json:"tracing"`
	Notify    mqtt.Config          `json:"notify"`
	Server    ServerConfig         `json:"server"`
	School    SchoolConfig         `json:"school"`
}

// Load reads the file at path, applies environment overrides, defaults and
// validation.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	return finish(k)
}

// Default returns the configuration used when no file is given. Environment
// overrides still apply.
func Default() (*Config, error) {
	return finish(koanf.New("."))
}

func finish(k *koanf.Koanf) (*Config, error) {
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults applies the defaults of every section.
func (c *Config) SetDefaults() {
	setModelDefaults(&c.Extractor)
	setModelDefaults(&c.Generator)
	c.Output.SetDefaults()
	c.RunLog.SetDefaults()
	if len(c.Metrics.Sinks) == 0 {
		c.Metrics.Sinks = []factory.ModuleConfig{{Type: "nop"}}
	}
	c.Sentry.SetDefaults()
	c.Tracing.SetDefaults()
	if c.Notify.Enabled() {
		c.Notify.SetDefaults()
	}
	c.Server.SetDefaults()
	c.School.SetDefaults()
}

// Validate checks every section and joins the failures.
func (c Config) Validate() error {
	var errs []error
	if c.Extractor.Type == "" {
		errs = append(errs, fmt.Errorf("extractor: type is required"))
	}
	if c.Generator.Type == "" {
		errs = append(errs, fmt.Errorf("generator: type is required"))
	}
	for _, v := range []struct {
		name string
		err  error
	}{
		{"output", c.Output.Validate()},
		{"runlog", c.RunLog.Validate()},
		{"sentry", c.Sentry.Validate()},
		{"notify", c.Notify.Validate()},
		{"server", c.Server.Validate()},
		{"school", c.School.Validate()},
	} {
		if v.err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", v.name, v.err))
		}
	}
	return errors.Join(errs...)
}

// DefaultModelProvider is used when extractor or generator has no type.
const DefaultModelProvider = "openai"

func setModelDefaults(m *factory.ModuleConfig) {
	if m.Type == "" {
		m.Type = DefaultModelProvider
	}
	if m.Conf == nil {
		m.Conf = map[string]any{}
	}
}
