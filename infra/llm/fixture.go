package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	corellm "github.com/kilianp07/skejul/core/llm"
)

// FixtureConfig points at a file of canned answers.
type FixtureConfig struct {
	Path string `json:"path"`
}

// fixtureFile is the on-disk layout. Answers may be written as raw strings
// or as YAML/JSON structures which are re-encoded to JSON.
type fixtureFile struct {
	Extract  any            `yaml:"extract"`
	Generate map[string]any `yaml:"generate"`
	Default  any            `yaml:"default_generate"`
}

// FixtureClient answers completions from a file. It is used for offline runs
// and tests.
type FixtureClient struct {
	mu       sync.Mutex
	extract  string
	generate map[string]string
	fallback string
	calls    []corellm.Request
}

// NewFixtureClient loads the answers at path. YAML is a superset of JSON so
// both formats are accepted.
func NewFixtureClient(path string) (*FixtureClient, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture builds a client from raw fixture content.
func ParseFixture(data []byte) (*FixtureClient, error) {
	var f fixtureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	c := &FixtureClient{generate: make(map[string]string, len(f.Generate))}
	var err error
	if c.extract, err = answer(f.Extract); err != nil {
		return nil, fmt.Errorf("fixture extract: %w", err)
	}
	if c.fallback, err = answer(f.Default); err != nil {
		return nil, fmt.Errorf("fixture default_generate: %w", err)
	}
	for group, v := range f.Generate {
		if c.generate[group], err = answer(v); err != nil {
			return nil, fmt.Errorf("fixture generate %q: %w", group, err)
		}
	}
	return c, nil
}

// Complete returns the canned answer for the request kind and tag.
func (c *FixtureClient) Complete(ctx context.Context, req corellm.Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, req)
	switch req.Kind {
	case corellm.KindExtract:
		return c.extract, nil
	case corellm.KindGenerate:
		if a, ok := c.generate[req.Tag]; ok {
			return a, nil
		}
		if c.fallback != "" {
			return c.fallback, nil
		}
		return "", fmt.Errorf("fixture: no generation answer for %q", req.Tag)
	}
	return "", fmt.Errorf("fixture: unsupported request kind %q", req.Kind)
}

// Calls returns the requests seen so far.
func (c *FixtureClient) Calls() []corellm.Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]corellm.Request(nil), c.calls...)
}

func answer(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
