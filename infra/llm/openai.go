package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/kilianp07/skejul/auth"
	corellm "github.com/kilianp07/skejul/core/llm"
	"github.com/kilianp07/skejul/infra/logger"
)

// Defaults target the OpenAI compatible endpoint of Gemini.
const (
	DefaultBaseURL   = "https://generativelanguage.googleapis.com/v1beta/openai"
	DefaultModel     = "gemini-2.5-flash"
	DefaultAPIKeyEnv = "GEMINI_API_KEY"
	defaultTimeout   = 120
)

// OpenAIConfig configures an OpenAI compatible chat completion provider.
type OpenAIConfig struct {
	Model     string `json:"model"`
	BaseURL   string `json:"base_url"`
	APIKey    string `json:"api_key"`
	APIKeyEnv string `json:"api_key_env"`
	// Temperature zero is omitted from requests and leaves the provider default.
	Temperature       float32   `json:"temperature"`
	TimeoutSeconds    int       `json:"timeout_seconds"`
	RequestsPerMinute int       `json:"requests_per_minute"`
	StructuredOutput  bool      `json:"structured_output"`
	Auth              auth.Conf `json:"auth"`
}

// SetDefaults fills empty fields.
func (c *OpenAIConfig) SetDefaults() {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.APIKeyEnv == "" {
		c.APIKeyEnv = DefaultAPIKeyEnv
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = defaultTimeout
	}
}

// OpenAIClient implements corellm.Client with go-openai.
type OpenAIClient struct {
	client      *openai.Client
	model       string
	temperature float32
	structured  bool
	limiter     *rate.Limiter
	log         logger.Logger
}

// NewOpenAIClient builds a client from cfg. The API key falls back to the
// environment variable named by APIKeyEnv.
func NewOpenAIClient(cfg OpenAIConfig) (*OpenAIClient, error) {
	cfg.SetDefaults()
	key := cfg.APIKey
	if key == "" {
		key = os.Getenv(cfg.APIKeyEnv)
	}
	if key == "" && !cfg.Auth.Enabled() {
		return nil, fmt.Errorf("openai provider: no api key (set api_key or %s)", cfg.APIKeyEnv)
	}
	oc := openai.DefaultConfig(key)
	oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	httpClient := &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}
	if cfg.Auth.Enabled() {
		httpClient = auth.NewClientCred(context.Background(), cfg.Auth).HTTPClient(httpClient)
	}
	oc.HTTPClient = httpClient

	c := &OpenAIClient{
		client:      openai.NewClientWithConfig(oc),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		structured:  cfg.StructuredOutput,
		log:         logger.New("llm-openai"),
	}
	if cfg.RequestsPerMinute > 0 {
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1)
	}
	return c, nil
}

// Complete sends one chat completion and returns the first choice.
func (c *OpenAIClient) Complete(ctx context.Context, req corellm.Request) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limit wait: %w", err)
		}
	}
	creq := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
	}
	rf, err := c.responseFormat(req)
	if err != nil {
		return "", err
	}
	creq.ResponseFormat = rf

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, creq)
	if err != nil {
		return "", fmt.Errorf("%s completion: %w", req.Kind, err)
	}
	c.log.Debugw("completion", map[string]any{
		"kind":              string(req.Kind),
		"tag":               req.Tag,
		"model":             c.model,
		"prompt_tokens":     resp.Usage.PromptTokens,
		"completion_tokens": resp.Usage.CompletionTokens,
		"duration_ms":       time.Since(start).Milliseconds(),
	})
	if len(resp.Choices) == 0 {
		return "", corellm.ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) responseFormat(req corellm.Request) (*openai.ChatCompletionResponseFormat, error) {
	if req.Schema == nil || !c.structured {
		return &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject}, nil
	}
	raw, err := json.Marshal(req.Schema)
	if err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}
	return &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
		JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
			Name:   req.SchemaName,
			Schema: json.RawMessage(raw),
			Strict: true,
		},
	}, nil
}
