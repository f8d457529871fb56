package agent

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"
)

// Provider is the externally supplied text-completion service. Replies
// stream back fragment by fragment through the callback.
type Provider interface {
	ChatStream(ctx context.Context, req *ChatRequest, callback StreamCallback) error
	Name() string
}

// StreamCallback is invoked for each streaming chunk.
type StreamCallback func(chunk *StreamChunk) error

// Message is one turn of a conversation.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ChatRequest is a chat completion request.
type ChatRequest struct {
	Model        string    `json:"model"`
	Messages     []Message `json:"messages"`
	MaxTokens    int       `json:"max_tokens,omitempty"`
	Temperature  float64   `json:"temperature,omitempty"`
	SystemPrompt string    `json:"system,omitempty"`
}

// StreamChunk is one streamed fragment of a reply.
type StreamChunk struct {
	Delta      string `json:"delta,omitempty"`
	StopReason string `json:"stop_reason,omitempty"`
}

// ProviderConfig selects and configures a provider backend.
type ProviderConfig struct {
	Provider string `json:"provider"` // anthropic, openai, openrouter, deepseek
	APIKey   string `json:"api_key"`
	Model    string `json:"model"`
	BaseURL  string `json:"base_url,omitempty"`
}

// NewProvider creates a provider from config.
func NewProvider(cfg ProviderConfig) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "anthropic":
		return NewAnthropicProvider(cfg.APIKey, cfg.Model), nil
	case "openai":
		baseURL := "https://api.openai.com/v1"
		if cfg.BaseURL != "" {
			baseURL = cfg.BaseURL
		}
		return NewOpenAIProvider(cfg.APIKey, cfg.Model, baseURL), nil
	case "openrouter":
		baseURL := "https://openrouter.ai/api/v1"
		if cfg.BaseURL != "" {
			baseURL = cfg.BaseURL
		}
		return NewOpenAIProvider(cfg.APIKey, cfg.Model, baseURL), nil
	case "deepseek":
		return NewOpenAIProvider(cfg.APIKey, cfg.Model, "https://api.deepseek.com/v1"), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}

// httpClient is shared by all providers. Requests are not retried: a failed
// model call is terminal and the user re-issues the message.
var httpClient = &http.Client{
	Timeout: 10 * time.Minute,
	Transport: &http.Transport{
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}
