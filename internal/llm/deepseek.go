package llm

// NewDeepSeekClient creates a new DeepSeek client.
// DeepSeek speaks the OpenAI chat protocol but only supports json_object
// replies, so the schema is enforced by the prompt alone.
func NewDeepSeekClient(opts Options) (*OpenAIClient, error) {
	if opts.Model == "" {
		opts.Model = "deepseek-chat"
	}
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.deepseek.com"
	}
	return newChatClient("DeepSeek", opts, false)
}
