package conversation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/SaiNageswarS/edu-assist/schema"
	"github.com/SaiNageswarS/edu-assist/session"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"go.uber.org/zap"
)

var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrTurnInFlight = errors.New("a reply is already pending for this session")
)

type TurnStatus string

const (
	TurnIdle    TurnStatus = "idle"
	TurnPending TurnStatus = "pending"
)

// SessionUpdater owns the current state of each session and receives every
// change to it. session.Manager satisfies it.
type SessionUpdater interface {
	Get(id string) (*schema.ChatSession, bool)
	UpdateSession(ctx context.Context, s *schema.ChatSession) error
}

// Completer returns a displayable reply for a transcript and never fails.
// completion.Gateway satisfies it.
type Completer interface {
	Complete(ctx context.Context, history []schema.Message) string
}

type Option func(*Engine)

func WithReporter(reporter TurnReporter) Option {
	return func(e *Engine) { e.reporter = reporter }
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

// Engine runs conversation turns. At most one turn per session is in flight;
// turns on different sessions run independently.
type Engine struct {
	sessions  SessionUpdater
	completer Completer
	reporter  TurnReporter
	now       func() time.Time
	newID     func() string

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewEngine(sessions SessionUpdater, completer Completer, opts ...Option) *Engine {
	e := &Engine{
		sessions:  sessions,
		completer: completer,
		reporter:  &NoOpTurnReporter{},
		now:       time.Now,
		newID:     schema.NewID,
		inFlight:  map[string]struct{}{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SubmitUserMessage runs one turn on the session identified by s and returns
// the final session state. The turn always builds on the current stored state
// of the session, never on the copy passed in. Blank text and a second
// submission while a reply is pending are rejected without side effects.
func (e *Engine) SubmitUserMessage(ctx context.Context, s *schema.ChatSession, text string) (*schema.ChatSession, error) {
	current, err := e.begin(s, text)
	if err != nil {
		return nil, err
	}
	defer e.finish(current.ID)

	return e.runTurn(ctx, current, text)
}

// SubmitUserMessageAsync is SubmitUserMessage on a background goroutine. The
// turn is marked pending before this returns.
func (e *Engine) SubmitUserMessageAsync(ctx context.Context, s *schema.ChatSession, text string) <-chan async.Result[*schema.ChatSession] {
	current, err := e.begin(s, text)
	if err != nil {
		return async.Go(func() (*schema.ChatSession, error) {
			return nil, err
		})
	}

	return async.Go(func() (*schema.ChatSession, error) {
		defer e.finish(current.ID)
		return e.runTurn(ctx, current, text)
	})
}

// Status reports whether a reply is pending for the session.
func (e *Engine) Status(sessionID string) TurnStatus {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.inFlight[sessionID]; ok {
		return TurnPending
	}
	return TurnIdle
}

func (e *Engine) runTurn(ctx context.Context, turn *schema.ChatSession, text string) (*schema.ChatSession, error) {
	turn.Messages = append(turn.Messages, e.newMessage(schema.RoleUser, text))
	turn.UpdatedAt = e.now().UnixMilli()
	firstExchange := len(turn.Messages) <= 2

	if err := e.sessions.UpdateSession(ctx, turn); err != nil {
		logger.Error("Failed to record user message", zap.String("sessionId", turn.ID), zap.Error(err))
		return nil, err
	}
	e.report(NewTurnEvent(StagePending, turn))

	// the request is not cancellable once issued
	history := turn.Clone().Messages
	reply := e.completer.Complete(context.WithoutCancel(ctx), history)

	final := turn.Clone()
	final.Messages = append(final.Messages, e.newMessage(schema.RoleAssistant, reply))
	if firstExchange {
		final.Title = schema.DeriveTitle(text)
	}
	final.UpdatedAt = e.now().UnixMilli()

	if err := e.sessions.UpdateSession(context.WithoutCancel(ctx), final); err != nil {
		logger.Error("Failed to record assistant reply", zap.String("sessionId", final.ID), zap.Error(err))
		return nil, err
	}
	e.report(NewTurnEvent(StageComplete, final))

	return final, nil
}

// begin marks the session in flight and returns its current state.
func (e *Engine) begin(s *schema.ChatSession, text string) (*schema.ChatSession, error) {
	if s == nil {
		return nil, session.ErrSessionNotFound
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, busy := e.inFlight[s.ID]; busy {
		return nil, ErrTurnInFlight
	}
	current, ok := e.sessions.Get(s.ID)
	if !ok {
		return nil, session.ErrSessionNotFound
	}
	e.inFlight[s.ID] = struct{}{}
	return current, nil
}

func (e *Engine) finish(sessionID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.inFlight, sessionID)
}

func (e *Engine) newMessage(role schema.Role, content string) schema.Message {
	return schema.Message{
		ID:        e.newID(),
		Role:      role,
		Content:   content,
		Timestamp: e.now().UnixMilli(),
	}
}

func (e *Engine) report(event *TurnEvent) {
	if err := e.reporter.Send(event); err != nil {
		logger.Error("Failed to report turn progress", zap.String("stage", string(event.Stage)), zap.Error(err))
	}
}
