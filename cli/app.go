package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/SaiNageswarS/edu-assist/appconfig"
	"github.com/SaiNageswarS/edu-assist/completion"
	"github.com/SaiNageswarS/edu-assist/conversation"
	"github.com/SaiNageswarS/edu-assist/llm"
	"github.com/SaiNageswarS/edu-assist/memory"
	"github.com/SaiNageswarS/edu-assist/prompts"
	"github.com/SaiNageswarS/edu-assist/schema"
	"github.com/SaiNageswarS/edu-assist/session"
	"github.com/SaiNageswarS/edu-assist/store"
	"github.com/SaiNageswarS/edu-assist/ticket"
)

// App wires the helpdesk components for one process. The LLM client is
// created lazily so ticket and session commands work without API keys.
type App struct {
	cfg     *appconfig.AppConfig
	closer  io.Closer
	gateway *memory.Gateway

	Sessions *session.Manager
	Tickets  *ticket.Intake

	client      llm.LLMClient
	engine      *conversation.Engine
	initialized bool
}

func NewApp(cfg *appconfig.AppConfig, inMemory bool) (*App, error) {
	var (
		kv     store.KeyValueStore
		closer io.Closer
	)
	if inMemory {
		mem := store.NewMemoryStore()
		kv, closer = mem, mem
	} else {
		sqliteStore, err := store.OpenSQLite(cfg.StoragePath)
		if err != nil {
			return nil, err
		}
		kv, closer = sqliteStore, sqliteStore
	}

	gateway := memory.NewGateway(kv, cfg.StorageNamespace)
	return &App{
		cfg:      cfg,
		closer:   closer,
		gateway:  gateway,
		Sessions: session.NewManager(gateway),
		Tickets:  ticket.NewIntake(gateway),
	}, nil
}

// WithLLMClient overrides the configured provider.
func (a *App) WithLLMClient(client llm.LLMClient) *App {
	a.client = client
	return a
}

// EnsureSessions runs the one-time session bootstrap.
func (a *App) EnsureSessions(ctx context.Context) {
	if a.initialized {
		return
	}
	a.Sessions.Initialize(ctx)
	a.initialized = true
}

// Engine builds the conversation engine on first use.
func (a *App) Engine(ctx context.Context, reporter conversation.TurnReporter) (*conversation.Engine, error) {
	if a.engine != nil {
		return a.engine, nil
	}

	if a.client == nil {
		client, err := newLLMClient(ctx, a.cfg)
		if err != nil {
			return nil, err
		}
		a.client = client
	}

	systemPrompt, err := prompts.RenderHelpdeskSystemPrompt(a.cfg.AssistantName, a.cfg.UniversityName)
	if err != nil {
		return nil, fmt.Errorf("failed to render system prompt: %w", err)
	}

	completer := completion.NewGateway(a.client, completion.Config{
		SystemPrompt: systemPrompt,
		Temperature:  a.cfg.Temperature,
		TopP:         a.cfg.TopP,
		MaxTokens:    a.cfg.MaxTokens,
		Timeout:      a.cfg.RequestTimeout(),
	})

	opts := []conversation.Option{}
	if reporter != nil {
		opts = append(opts, conversation.WithReporter(reporter))
	}
	a.engine = conversation.NewEngine(a.Sessions, completer, opts...)
	return a.engine, nil
}

// StoredSessions reads persisted sessions, most recent first, without the
// bootstrap that EnsureSessions performs.
func (a *App) StoredSessions(ctx context.Context) ([]*schema.ChatSession, error) {
	sessions, err := a.gateway.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	schema.SortByRecency(sessions)
	return sessions, nil
}

// DeleteStoredSession removes a persisted session without loading the
// session list into the manager.
func (a *App) DeleteStoredSession(ctx context.Context, id string) error {
	sessions, err := a.StoredSessions(ctx)
	if err != nil {
		return err
	}
	for _, s := range sessions {
		if s.ID == id {
			return a.gateway.DeleteSession(ctx, id)
		}
	}
	return fmt.Errorf("session %s not found", id)
}

func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

func newLLMClient(ctx context.Context, cfg *appconfig.AppConfig) (llm.LLMClient, error) {
	switch cfg.LLMProvider {
	case appconfig.ProviderGemini:
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			apiKey = os.Getenv("API_KEY")
		}
		return llm.NewGeminiClient(ctx, apiKey, cfg.GeminiModel)
	case appconfig.ProviderOllama:
		return llm.NewOllamaClient(cfg.OllamaModel)
	case appconfig.ProviderGroq:
		return llm.NewGroqClient(os.Getenv("GROQ_API_KEY"), cfg.GroqModel)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLMProvider)
	}
}
