package llm

import (
	"context"
	"fmt"

	"github.com/ollama/ollama/api"
)

// OllamaClient talks to a locally running Ollama server.
type OllamaClient struct {
	client *api.Client
	model  string
}

// NewOllamaClient reads OLLAMA_HOST from the environment.
func NewOllamaClient(model string) (*OllamaClient, error) {
	client, err := api.ClientFromEnvironment()
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}
	return &OllamaClient{client: client, model: model}, nil
}

func (c *OllamaClient) GetModel() string {
	return c.model
}

func (c *OllamaClient) GenerateInference(ctx context.Context, messages []Message, callback func(chunk string) error, opts ...LLMOption) error {
	settings := newSettings(c.model, opts)

	stream := false
	req := &api.ChatRequest{
		Model:    settings.model,
		Messages: toOllamaMessages(settings.system, messages),
		Stream:   &stream,
		Options:  ollamaOptions(settings),
	}

	err := c.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		if resp.Message.Content == "" {
			return nil
		}
		return callback(resp.Message.Content)
	})
	if err != nil {
		return fmt.Errorf("ollama chat failed: %w", err)
	}
	return nil
}

func toOllamaMessages(system string, messages []Message) []api.Message {
	out := make([]api.Message, 0, len(messages)+1)
	if system != "" {
		out = append(out, api.Message{Role: RoleSystem, Content: system})
	}
	for _, m := range messages {
		out = append(out, api.Message{Role: m.Role, Content: m.Content})
	}
	return out
}

func ollamaOptions(settings LLMSettings) map[string]any {
	options := map[string]any{
		"temperature": settings.temperature,
	}
	if settings.topP > 0 {
		options["top_p"] = settings.topP
	}
	if settings.maxTokens > 0 {
		options["num_predict"] = settings.maxTokens
	}
	return options
}
