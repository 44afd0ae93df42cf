package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/skejul/auth"
	"github.com/kilianp07/skejul/core/factory"
	corellm "github.com/kilianp07/skejul/core/llm"
)

const completion = `{"id":"c1","object":"chat.completion","created":1,"model":"m",
"choices":[{"index":0,"message":{"role":"assistant","content":"{\"ok\":true}"},"finish_reason":"stop"}],
"usage":{"prompt_tokens":3,"completion_tokens":2,"total_tokens":5}}`

func chatServer(t *testing.T, bodies *[]map[string]any, auths *[]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		data, _ := io.ReadAll(r.Body)
		var m map[string]any
		_ = json.Unmarshal(data, &m)
		*bodies = append(*bodies, m)
		*auths = append(*auths, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completion))
	}))
}

func TestOpenAIClientComplete(t *testing.T) {
	var bodies []map[string]any
	var auths []string
	srv := chatServer(t, &bodies, &auths)
	defer srv.Close()

	c, err := NewOpenAIClient(OpenAIConfig{BaseURL: srv.URL + "/v1/", APIKey: "k", Model: "test-model", StructuredOutput: true})
	require.NoError(t, err)

	out, err := c.Complete(context.Background(), corellm.Request{
		Kind: corellm.KindExtract, System: "sys", User: "hello",
		SchemaName: "s", Schema: map[string]any{"type": "object"},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, out)
	require.Len(t, bodies, 1)
	assert.Equal(t, "test-model", bodies[0]["model"])
	assert.Equal(t, "Bearer k", auths[0])
	rf := bodies[0]["response_format"].(map[string]any)
	assert.Equal(t, "json_schema", rf["type"])

	_, err = c.Complete(context.Background(), corellm.Request{Kind: corellm.KindGenerate, User: "x"})
	require.NoError(t, err)
	rf = bodies[1]["response_format"].(map[string]any)
	assert.Equal(t, "json_object", rf["type"])
}

func TestOpenAIClientGatewayAuth(t *testing.T) {
	tokens := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"gw","token_type":"bearer","expires_in":3600}`))
	}))
	defer tokens.Close()
	var bodies []map[string]any
	var auths []string
	srv := chatServer(t, &bodies, &auths)
	defer srv.Close()

	c, err := NewOpenAIClient(OpenAIConfig{
		BaseURL:           srv.URL + "/v1",
		RequestsPerMinute: 600,
		Auth:              auth.Conf{ClientID: "id", ClientSecret: "s", TokenURL: tokens.URL},
	})
	require.NoError(t, err)
	_, err = c.Complete(context.Background(), corellm.Request{Kind: corellm.KindGenerate, User: "x"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer gw", auths[0])
}

func TestOpenAIClientNeedsKey(t *testing.T) {
	t.Setenv(DefaultAPIKeyEnv, "")
	_, err := NewOpenAIClient(OpenAIConfig{})
	assert.Error(t, err)
}

const fixtureYAML = `
extract: |
  {"days": ["Monday"], "start_time": "8:00 AM", "end_time": "9:00 AM",
   "periods": [], "class_groups": [{"name": "A", "subjects": []}]}
generate:
  A:
    A:
      Monday:
        - {period_no: 1, start: "8:00 AM", end: "9:00 AM", type: class, subject: {name: Maths, teacher_name: Ade}}
default_generate: '{"any": {}}'
`

func TestFixtureClient(t *testing.T) {
	c, err := ParseFixture([]byte(fixtureYAML))
	require.NoError(t, err)
	ctx := context.Background()

	out, err := c.Complete(ctx, corellm.Request{Kind: corellm.KindExtract})
	require.NoError(t, err)
	assert.Contains(t, out, `"class_groups"`)

	out, err = c.Complete(ctx, corellm.Request{Kind: corellm.KindGenerate, Tag: "A"})
	require.NoError(t, err)
	var parsed map[string]map[string][]map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, "Maths", parsed["A"]["Monday"][0]["subject"].(map[string]any)["name"])

	out, err = c.Complete(ctx, corellm.Request{Kind: corellm.KindGenerate, Tag: "B"})
	require.NoError(t, err)
	assert.Equal(t, `{"any": {}}`, out)
	assert.Len(t, c.Calls(), 3)
}

func TestProviderFactory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixtureYAML), 0o644))

	c, err := NewClient(factory.ModuleConfig{Type: "fixture", Conf: map[string]any{"path": path}})
	require.NoError(t, err)
	_, ok := c.(*FixtureClient)
	assert.True(t, ok)

	_, err = NewClient(factory.ModuleConfig{Type: "fixture"})
	assert.Error(t, err)

	_, err = NewClient(factory.ModuleConfig{Type: "missing"})
	assert.True(t, errors.Is(err, factory.ErrUnknownType))
	assert.Equal(t, []string{"fixture", "openai"}, Providers())
}
