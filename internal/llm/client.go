// Package llm provides the chat-completion client and response cleaning used
// by resume content generation. The provider speaks the OpenAI-compatible
// chat completions protocol, so any endpoint implementing it can be swapped
// in through configuration.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// Client is an abstraction over chat-completion providers.
type Client interface {
	// Complete sends a single-message prompt and returns the reply text.
	Complete(ctx context.Context, prompt string, opts CallOptions) (string, error)
	// CompleteJSON is Complete with markdown code fences stripped from the
	// reply, for prompts that ask for raw JSON.
	CompleteJSON(ctx context.Context, prompt string, opts CallOptions) (string, error)
	// Model returns the configured model identifier.
	Model() string
}

// CallOptions carries the per-call sampling parameters.
type CallOptions struct {
	MaxTokens   int
	Temperature float64
}

// Config holds endpoint settings for the chat client.
type Config struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// DefaultConfig returns the default DeepSeek endpoint configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL: "https://api.deepseek.com/v1",
		Model:   "deepseek-chat",
		Timeout: 90 * time.Second,
	}
}

// ChatClient implements Client against an OpenAI-compatible endpoint.
type ChatClient struct {
	http   *resty.Client
	config *Config
}

// NewChatClient creates a chat client. The API key is required and always
// comes from configuration, never from source.
func NewChatClient(config *Config, apiKey string) (*ChatClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config == nil {
		config = DefaultConfig()
	}

	httpClient := resty.New().
		SetBaseURL(config.BaseURL).
		SetTimeout(config.Timeout).
		SetHeader("Authorization", "Bearer "+apiKey).
		SetHeader("Content-Type", "application/json")

	return &ChatClient{http: httpClient, config: config}, nil
}

// Complete sends the prompt as a single user message and returns the reply.
func (c *ChatClient) Complete(ctx context.Context, prompt string, opts CallOptions) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"model": c.config.Model,
			"messages": []map[string]string{
				{"role": "user", "content": prompt},
			},
			"max_tokens":  opts.MaxTokens,
			"temperature": opts.Temperature,
		}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("chat completion failed: status %d: %s", resp.StatusCode(), resp.String())
	}

	text := gjson.Get(resp.String(), "choices.0.message.content").String()
	if text == "" {
		return "", fmt.Errorf("empty completion response")
	}
	return strings.TrimSpace(text), nil
}

// CompleteJSON generates a reply and strips any markdown code fences.
func (c *ChatClient) CompleteJSON(ctx context.Context, prompt string, opts CallOptions) (string, error) {
	text, err := c.Complete(ctx, prompt, opts)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

// Model returns the configured model identifier.
func (c *ChatClient) Model() string {
	return c.config.Model
}
