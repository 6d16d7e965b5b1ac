package completion

import (
	"context"
	"strings"
	"time"

	"github.com/SaiNageswarS/edu-assist/llm"
	"github.com/SaiNageswarS/edu-assist/schema"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.uber.org/zap"
)

const (
	FallbackErrorReply = "There was an error connecting to the AI service. Please check your connection."
	FallbackEmptyReply = "I'm sorry, I couldn't generate a response. Please try again."

	DefaultTemperature = 0.7
	DefaultTopP        = 0.8
)

type Config struct {
	SystemPrompt string
	Temperature  float64
	TopP         float64
	MaxTokens    int
	// Timeout bounds a single request. Zero means no bound beyond ctx.
	Timeout time.Duration
}

// Gateway turns a transcript into a single reply. Failures never reach the
// caller: they are logged and replaced by a fixed apology string.
type Gateway struct {
	client llm.LLMClient
	config Config
}

func NewGateway(client llm.LLMClient, config Config) *Gateway {
	if config.Temperature == 0 {
		config.Temperature = DefaultTemperature
	}
	if config.TopP == 0 {
		config.TopP = DefaultTopP
	}
	return &Gateway{client: client, config: config}
}

func (g *Gateway) Complete(ctx context.Context, history []schema.Message) string {
	if g.client == nil {
		logger.Error("Completion requested without an LLM client")
		return FallbackErrorReply
	}

	if g.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.config.Timeout)
		defer cancel()
	}

	opts := []llm.LLMOption{
		llm.WithTemperature(g.config.Temperature),
		llm.WithTopP(g.config.TopP),
	}
	if g.config.SystemPrompt != "" {
		opts = append(opts, llm.WithSystemPrompt(g.config.SystemPrompt))
	}
	if g.config.MaxTokens > 0 {
		opts = append(opts, llm.WithMaxTokens(g.config.MaxTokens))
	}

	var reply strings.Builder
	err := g.client.GenerateInference(ctx, toLLMMessages(history), func(chunk string) error {
		reply.WriteString(chunk)
		return nil
	}, opts...)
	if err != nil {
		logger.Error("LLM completion failed", zap.String("model", g.client.GetModel()), zap.Error(err))
		return FallbackErrorReply
	}

	if strings.TrimSpace(reply.String()) == "" {
		return FallbackEmptyReply
	}
	return reply.String()
}

func toLLMMessages(history []schema.Message) []llm.Message {
	messages := make([]llm.Message, len(history))
	for i, m := range history {
		role := llm.RoleUser
		if m.Role == schema.RoleAssistant {
			role = llm.RoleAssistant
		}
		messages[i] = llm.Message{Role: role, Content: m.Content}
	}
	return messages
}
