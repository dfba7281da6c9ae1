package scribe

import (
	"context"

	"go.uber.org/zap"

	"github.com/Davg883/Vibe-AI-Canvas/internal/llm"
	"github.com/Davg883/Vibe-AI-Canvas/internal/prompt"
)

// Client makes the two completion calls of a weave session
type Client struct {
	llm    llm.Client
	logger *zap.Logger
}

// NewClient creates a new scribe client
func NewClient(c llm.Client, logger *zap.Logger) *Client {
	return &Client{llm: c, logger: logger}
}

// RequestStructured sends a weave prompt with the response schema and
// decodes the reply. All failures are *llm.ServiceError.
func (c *Client) RequestStructured(ctx context.Context, weavePrompt string) (*Result, error) {
	raw, err := c.llm.GenerateStructured(ctx, weavePrompt, ResponseSchema)
	if err != nil {
		c.logger.Warn("structured completion failed", zap.String("model", c.llm.ModelName()), zap.Error(err))
		return nil, failure("Failed to generate response from AI", err)
	}

	result, err := Decode(raw)
	if err != nil {
		c.logger.Warn("structured completion rejected",
			zap.String("model", c.llm.ModelName()),
			zap.Int("reply_len", len(raw)),
			zap.Error(err))
		return nil, err
	}

	return result, nil
}

// RequestExplanation asks for a beginner explanation of code and returns
// the reply text as is, blank replies included.
func (c *Client) RequestExplanation(ctx context.Context, code string) (string, error) {
	text, err := c.llm.GenerateText(ctx, prompt.Explain(code))
	if err != nil {
		c.logger.Warn("explanation completion failed", zap.String("model", c.llm.ModelName()), zap.Error(err))
		return "", failure("Failed to generate explanation from AI", err)
	}

	return text, nil
}

// failure prefixes transport failures with the operation. A missing
// credential keeps its own message.
func failure(op string, err error) *llm.ServiceError {
	se := llm.AsServiceError(err)
	if se.Kind == llm.KindCredentialMissing || se.Kind == llm.KindUnknown {
		return se
	}
	return llm.NewError(se.Kind, err, "%s: %s", op, se.Message)
}
