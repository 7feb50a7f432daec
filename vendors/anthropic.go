package vendors

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/https-dhanesh/Classifieds-App-Base/config"
	"github.com/https-dhanesh/Classifieds-App-Base/log"
)

var (
	anthropicClient     *AnthropicClient
	anthropicClientOnce sync.Once
)

// ErrAnthropicNotConfigured is returned when no API key is set
var ErrAnthropicNotConfigured = errors.New("anthropic: ANTHROPIC_API_KEY not configured")

// AnthropicClient wraps the Anthropic SDK client
type AnthropicClient struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// GetAnthropicClient returns the singleton Anthropic client, or nil when
// no API key is configured.
func GetAnthropicClient() *AnthropicClient {
	anthropicClientOnce.Do(func() {
		cfg := config.Get()

		if cfg.AnthropicAPIKey == "" {
			log.Warn().Msg("ANTHROPIC_API_KEY not configured, chat disabled")
			return
		}

		opts := []option.RequestOption{
			option.WithAPIKey(cfg.AnthropicAPIKey),
			option.WithHTTPClient(&http.Client{Timeout: cfg.AnthropicTimeout}),
		}
		if cfg.AnthropicBaseURL != "" {
			opts = append(opts, option.WithBaseURL(cfg.AnthropicBaseURL))
		}

		anthropicClient = &AnthropicClient{
			client:    anthropic.NewClient(opts...),
			model:     cfg.AnthropicModel,
			maxTokens: int64(cfg.AnthropicMaxTokens),
		}

		log.Info().Str("model", cfg.AnthropicModel).Msg("anthropic initialized")
	})

	return anthropicClient
}

// NewAnthropicClient creates a client against a specific endpoint. Used by
// tests to point the SDK at a fake server.
func NewAnthropicClient(baseURL, apiKey, model string, maxTokens int64) *AnthropicClient {
	return &AnthropicClient{
		client: anthropic.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(baseURL),
		),
		model:     model,
		maxTokens: maxTokens,
	}
}

// Model returns the configured model name
func (a *AnthropicClient) Model() string {
	return a.model
}

// MaxTokens returns the configured completion token limit
func (a *AnthropicClient) MaxTokens() int64 {
	return a.maxTokens
}

// RawCreateMessage performs a single synchronous Messages API call
func (a *AnthropicClient) RawCreateMessage(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	if a == nil {
		return nil, ErrAnthropicNotConfigured
	}
	return a.client.Messages.New(ctx, params)
}
