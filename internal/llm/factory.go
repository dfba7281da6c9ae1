package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Davg883/Vibe-AI-Canvas/internal/config"
)

// New creates the client for the configured provider, bounded to
// cfg.MaxConcurrentRequests in-flight calls. It fails with
// ErrCredentialMissing when the provider's API key is not set.
func New(ctx context.Context, cfg config.LLMConfig) (Client, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	var (
		client Client
		err    error
	)
	switch cfg.Provider {
	case config.ProviderGemini:
		client, err = NewGeminiClient(ctx, Options{
			APIKey:      cfg.GeminiAPIKey,
			Model:       cfg.GeminiModel,
			Temperature: cfg.Temperature,
			HTTPClient:  httpClient,
		})
	case config.ProviderOpenAI:
		client, err = NewOpenAIClient(Options{
			APIKey:      cfg.OpenAIAPIKey,
			BaseURL:     cfg.OpenAIBaseURL,
			Model:       cfg.OpenAIModel,
			Temperature: cfg.Temperature,
			HTTPClient:  httpClient,
		})
	case config.ProviderDeepSeek:
		client, err = NewDeepSeekClient(Options{
			APIKey:      cfg.DeepSeekAPIKey,
			BaseURL:     cfg.DeepSeekBaseURL,
			Model:       cfg.DeepSeekModel,
			Temperature: cfg.Temperature,
			HTTPClient:  httpClient,
		})
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	return Limit(client, int64(cfg.MaxConcurrentRequests)), nil
}

type unavailableClient struct {
	err error
}

// Unavailable returns a client that fails every call with err without
// touching the network. It stands in when New could not build a provider
// so the failure reaches the user on first use instead of at startup.
func Unavailable(err error) Client {
	return &unavailableClient{err: err}
}

func (c *unavailableClient) GenerateStructured(context.Context, string, *Schema) (string, error) {
	return "", c.err
}

func (c *unavailableClient) GenerateText(context.Context, string) (string, error) {
	return "", c.err
}

func (c *unavailableClient) ModelName() string {
	return "unavailable"
}
