package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-3-flash-preview"

// GeminiClient generates replies with Google's Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiClient{client: client, model: model}, nil
}

func (c *GeminiClient) GetModel() string {
	return c.model
}

func (c *GeminiClient) GenerateInference(ctx context.Context, messages []Message, callback func(chunk string) error, opts ...LLMOption) error {
	settings := newSettings(c.model, opts)

	resp, err := c.client.Models.GenerateContent(ctx, settings.model, toGeminiContents(messages), geminiConfig(settings))
	if err != nil {
		return fmt.Errorf("GenAI generate failed: %w", err)
	}

	if text := resp.Text(); text != "" {
		return callback(text)
	}
	return nil
}

// toGeminiContents maps the transcript onto Gemini roles: assistant turns
// become "model", everything else is sent as "user". System messages are
// dropped since Gemini takes the system instruction in the request config.
func toGeminiContents(messages []Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		var role genai.Role = genai.RoleUser
		switch m.Role {
		case RoleSystem:
			continue
		case RoleAssistant:
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}
	return contents
}

func geminiConfig(settings LLMSettings) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(settings.temperature)),
	}
	if settings.topP > 0 {
		cfg.TopP = genai.Ptr(float32(settings.topP))
	}
	if settings.system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(settings.system, genai.RoleUser)
	}
	return cfg
}
