package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/SaiNageswarS/edu-assist/schema"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.uber.org/zap"
)

var ErrSessionNotFound = errors.New("session not found")

// Store is the durable side of the session list.
type Store interface {
	SaveSession(ctx context.Context, session *schema.ChatSession) error
	ListSessions(ctx context.Context) ([]*schema.ChatSession, error)
	DeleteSession(ctx context.Context, id string) error
}

type Option func(*Manager)

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(m *Manager) { m.newID = newID }
}

// Manager owns the in-memory session list and the active session pointer.
// It is the only writer of sessions to the store. Sessions are kept most
// recently updated first; callers always receive copies.
type Manager struct {
	// writeMu serializes store writes; the store upserts read-then-write.
	writeMu  sync.Mutex
	mu       sync.RWMutex
	store    Store
	sessions []*schema.ChatSession
	activeID string

	now   func() time.Time
	newID func() string
}

func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store: store,
		now:   time.Now,
		newID: schema.NewID,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Initialize loads persisted sessions. With nothing stored it creates one
// fresh session; otherwise the first loaded session becomes active.
// It has no guard against repeated calls: each call on an empty store
// creates another session.
func (m *Manager) Initialize(ctx context.Context) {
	loaded, err := m.store.ListSessions(ctx)
	if err != nil {
		logger.Error("Failed to load sessions, starting empty", zap.Error(err))
	}

	m.mu.Lock()
	m.sessions = make([]*schema.ChatSession, 0, len(loaded))
	for _, s := range loaded {
		m.sessions = append(m.sessions, s.Clone())
	}
	if len(m.sessions) > 0 {
		m.activeID = m.sessions[0].ID
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	m.CreateSession(ctx)
}

// CreateSession adds an empty session at the front and makes it active.
func (m *Manager) CreateSession(ctx context.Context) *schema.ChatSession {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	created := &schema.ChatSession{
		ID:        m.newID(),
		Title:     schema.DefaultTitle,
		Messages:  []schema.Message{},
		UpdatedAt: m.now().UnixMilli(),
	}

	m.mu.Lock()
	m.sessions = append([]*schema.ChatSession{created}, m.sessions...)
	m.activeID = created.ID
	m.mu.Unlock()

	m.persist(ctx, created)
	return created.Clone()
}

// UpdateSession replaces the stored copy of session and moves it to the
// front. Other sessions keep their relative order.
func (m *Manager) UpdateSession(ctx context.Context, session *schema.ChatSession) error {
	if session == nil {
		return ErrSessionNotFound
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	updated := session.Clone()

	m.mu.Lock()
	idx := m.indexOf(updated.ID)
	if idx < 0 {
		m.mu.Unlock()
		return ErrSessionNotFound
	}

	reordered := make([]*schema.ChatSession, 0, len(m.sessions))
	reordered = append(reordered, updated)
	reordered = append(reordered, m.sessions[:idx]...)
	reordered = append(reordered, m.sessions[idx+1:]...)
	m.sessions = reordered
	m.mu.Unlock()

	m.persist(ctx, updated)
	return nil
}

// DeleteSession removes the session from memory and storage. When the active
// session is removed the new front of the list becomes active, or none.
func (m *Manager) DeleteSession(ctx context.Context, id string) {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	m.mu.Lock()
	if idx := m.indexOf(id); idx >= 0 {
		m.sessions = append(m.sessions[:idx:idx], m.sessions[idx+1:]...)
	}
	if m.activeID == id {
		m.activeID = ""
		if len(m.sessions) > 0 {
			m.activeID = m.sessions[0].ID
		}
	}
	m.mu.Unlock()

	if err := m.store.DeleteSession(ctx, id); err != nil {
		logger.Error("Failed to delete session", zap.String("sessionId", id), zap.Error(err))
	}
}

// SelectSession points the active session at id. Unknown ids are ignored.
func (m *Manager) SelectSession(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.indexOf(id) < 0 {
		return false
	}
	m.activeID = id
	return true
}

func (m *Manager) ActiveID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.activeID
}

func (m *Manager) Active() (*schema.ChatSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.getLocked(m.activeID)
}

func (m *Manager) Get(id string) (*schema.ChatSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.getLocked(id)
}

// Sessions returns copies of all sessions, most recently updated first.
func (m *Manager) Sessions() []*schema.ChatSession {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*schema.ChatSession, len(m.sessions))
	for i, s := range m.sessions {
		out[i] = s.Clone()
	}
	return out
}

func (m *Manager) getLocked(id string) (*schema.ChatSession, bool) {
	if id == "" {
		return nil, false
	}
	if idx := m.indexOf(id); idx >= 0 {
		return m.sessions[idx].Clone(), true
	}
	return nil, false
}

func (m *Manager) indexOf(id string) int {
	for i, s := range m.sessions {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// persist writes through to the store. A failed write keeps the in-memory
// state and is only logged.
func (m *Manager) persist(ctx context.Context, session *schema.ChatSession) {
	if err := m.store.SaveSession(ctx, session); err != nil {
		logger.Error("Failed to save session", zap.String("sessionId", session.ID), zap.Error(err))
	}
}
