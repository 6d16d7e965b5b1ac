package conversation

import (
	"time"

	"github.com/SaiNageswarS/edu-assist/schema"
)

type Stage string

const (
	// StagePending: the user message is saved and a reply is awaited.
	StagePending Stage = "pending"
	// StageComplete: the assistant reply is appended and saved.
	StageComplete Stage = "complete"
)

type TurnEvent struct {
	SessionID string
	Stage     Stage
	Timestamp int64
	Session   *schema.ChatSession
}

// TurnReporter is notified as a turn moves from pending to complete, so a
// presentation layer can show a "thinking" indicator.
type TurnReporter interface {
	Send(event *TurnEvent) error
}

// NoOpTurnReporter implements TurnReporter with no-op operations
type NoOpTurnReporter struct{}

func (r *NoOpTurnReporter) Send(event *TurnEvent) error {
	return nil
}

// TurnReporterFunc adapts a function to TurnReporter.
type TurnReporterFunc func(event *TurnEvent) error

func (f TurnReporterFunc) Send(event *TurnEvent) error {
	return f(event)
}

func NewTurnEvent(stage Stage, session *schema.ChatSession) *TurnEvent {
	return &TurnEvent{
		SessionID: session.ID,
		Stage:     stage,
		Timestamp: time.Now().UnixMilli(),
		Session:   session.Clone(),
	}
}
