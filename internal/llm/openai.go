package llm

import (
	"context"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// Options configures a provider client
type Options struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	HTTPClient  *http.Client
}

// OpenAIClient implements the Client interface for OpenAI-compatible chat APIs
type OpenAIClient struct {
	client      *openai.Client
	model       string
	provider    string
	temperature float32
	// strictSchema sends the schema as a strict json_schema response format.
	// Providers without json_schema support get json_object mode instead.
	strictSchema bool
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(opts Options) (*OpenAIClient, error) {
	if opts.Model == "" {
		opts.Model = openai.GPT4oMini
	}
	return newChatClient("OpenAI", opts, true)
}

func newChatClient(provider string, opts Options, strictSchema bool) (*OpenAIClient, error) {
	if opts.APIKey == "" {
		return nil, ErrCredentialMissing
	}

	config := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		config.BaseURL = opts.BaseURL
	}
	if opts.HTTPClient != nil {
		config.HTTPClient = opts.HTTPClient
	}

	return &OpenAIClient{
		client:       openai.NewClientWithConfig(config),
		model:        opts.Model,
		provider:     provider,
		temperature:  opts.Temperature,
		strictSchema: strictSchema,
	}, nil
}

// ModelName returns the model name
func (c *OpenAIClient) ModelName() string {
	return c.model
}

// GenerateStructured requests a JSON reply matching schema
func (c *OpenAIClient) GenerateStructured(ctx context.Context, prompt string, schema *Schema) (string, error) {
	format := &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject}
	if c.strictSchema && schema != nil {
		format = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:        schema.Name,
				Description: schema.Description,
				Schema:      schema.OpenAI(),
				Strict:      true,
			},
		}
	}

	return c.complete(ctx, prompt, format)
}

// GenerateText requests a free-form reply
func (c *OpenAIClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	return c.complete(ctx, prompt, nil)
}

func (c *OpenAIClient) complete(ctx context.Context, prompt string, format *openai.ChatCompletionResponseFormat) (string, error) {
	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature:    c.temperature,
			ResponseFormat: format,
		},
	)
	if err != nil {
		return "", transportError(c.provider, err)
	}

	if len(resp.Choices) == 0 {
		return "", NewError(KindMalformedResponse, nil, "no response from %s API", c.provider)
	}

	return resp.Choices[0].Message.Content, nil
}
