package memory

import (
	"context"
	"testing"

	"github.com/SaiNageswarS/edu-assist/schema"
	"github.com/SaiNageswarS/edu-assist/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSession(id string, updatedAt int64) *schema.ChatSession {
	return &schema.ChatSession{
		ID:    id,
		Title: "Exam prep",
		Messages: []schema.Message{
			{ID: id + "-u", Role: schema.RoleUser, Content: "When is the calculus final?", Timestamp: updatedAt - 10},
			{ID: id + "-a", Role: schema.RoleAssistant, Content: "Check the **syllabus** \"Dates\" section.\n", Timestamp: updatedAt},
		},
		UpdatedAt: updatedAt,
	}
}

func sessionIDs(sessions []*schema.ChatSession) []string {
	ids := make([]string, len(sessions))
	for i, s := range sessions {
		ids[i] = s.ID
	}
	return ids
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		session schema.ChatSession
	}{
		{name: "empty messages", session: schema.ChatSession{ID: "1", Title: schema.DefaultTitle, Messages: []schema.Message{}, UpdatedAt: 1700000000000}},
		{name: "nil messages", session: schema.ChatSession{ID: "2", Title: "", UpdatedAt: 0}},
		{name: "full history", session: *sampleSession("3", 1700000000123)},
		{name: "unicode content", session: schema.ChatSession{
			ID:    "4",
			Title: "Überblick ✨",
			Messages: []schema.Message{
				{ID: "m", Role: schema.RoleUser, Content: "日本語 <tag> & \"quotes\"", Timestamp: 42},
			},
			UpdatedAt: 42,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := encode([]schema.ChatSession{tt.session})
			require.NoError(t, err)

			decoded, err := decode[schema.ChatSession](raw)
			require.NoError(t, err)
			require.Len(t, decoded, 1)
			assert.Equal(t, tt.session, decoded[0])
		})
	}
}

func TestGateway_SaveSession(t *testing.T) {
	ctx := context.Background()

	t.Run("new sessions are inserted at the front", func(t *testing.T) {
		g := NewGateway(store.NewMemoryStore(), "")
		require.NoError(t, g.SaveSession(ctx, sampleSession("a", 100)))
		require.NoError(t, g.SaveSession(ctx, sampleSession("b", 200)))
		require.NoError(t, g.SaveSession(ctx, sampleSession("c", 300)))

		sessions, err := g.ListSessions(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "b", "a"}, sessionIDs(sessions))
	})

	t.Run("updates keep position and never duplicate", func(t *testing.T) {
		g := NewGateway(store.NewMemoryStore(), "")
		require.NoError(t, g.SaveSession(ctx, sampleSession("a", 100)))
		require.NoError(t, g.SaveSession(ctx, sampleSession("b", 200)))

		updated := sampleSession("a", 500)
		updated.Title = "Renamed"
		require.NoError(t, g.SaveSession(ctx, updated))

		sessions, err := g.ListSessions(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "a"}, sessionIDs(sessions))
		assert.Equal(t, updated, sessions[1])
	})

	t.Run("round trips through the store", func(t *testing.T) {
		g := NewGateway(store.NewMemoryStore(), "")
		original := sampleSession("x", 1700000000999)
		require.NoError(t, g.SaveSession(ctx, original))

		sessions, err := g.ListSessions(ctx)
		require.NoError(t, err)
		require.Len(t, sessions, 1)
		assert.Equal(t, original, sessions[0])
	})

	t.Run("store unavailable", func(t *testing.T) {
		kv := store.NewMemoryStore()
		require.NoError(t, kv.Close())
		g := NewGateway(kv, "")

		err := g.SaveSession(ctx, sampleSession("a", 1))
		assert.ErrorIs(t, err, ErrStoreUnavailable)
	})

	t.Run("corrupt collection is replaced", func(t *testing.T) {
		kv := store.NewMemoryStore()
		require.NoError(t, kv.Set(ctx, "eduassist_chats", "{not json"))
		g := NewGateway(kv, "")

		require.NoError(t, g.SaveSession(ctx, sampleSession("a", 1)))

		sessions, err := g.ListSessions(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, sessionIDs(sessions))
	})
}

func TestGateway_ListSessions(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing stored", func(t *testing.T) {
		g := NewGateway(store.NewMemoryStore(), "")
		sessions, err := g.ListSessions(ctx)
		require.NoError(t, err)
		assert.Empty(t, sessions)
	})

	t.Run("corrupt data fails open", func(t *testing.T) {
		kv := store.NewMemoryStore()
		require.NoError(t, kv.Set(ctx, "eduassist_chats", "[{]"))
		g := NewGateway(kv, "")

		sessions, err := g.ListSessions(ctx)
		assert.ErrorIs(t, err, ErrCorruptData)
		assert.NotNil(t, sessions)
		assert.Empty(t, sessions)
	})

	t.Run("store unavailable fails open", func(t *testing.T) {
		kv := store.NewMemoryStore()
		require.NoError(t, kv.Close())
		g := NewGateway(kv, "")

		sessions, err := g.ListSessions(ctx)
		assert.ErrorIs(t, err, ErrStoreUnavailable)
		assert.Empty(t, sessions)
	})

	t.Run("null collection reads as empty", func(t *testing.T) {
		kv := store.NewMemoryStore()
		require.NoError(t, kv.Set(ctx, "eduassist_chats", "null"))
		g := NewGateway(kv, "")

		sessions, err := g.ListSessions(ctx)
		require.NoError(t, err)
		assert.Empty(t, sessions)
	})
}

func TestGateway_DeleteSession(t *testing.T) {
	ctx := context.Background()
	g := NewGateway(store.NewMemoryStore(), "")
	require.NoError(t, g.SaveSession(ctx, sampleSession("a", 1)))
	require.NoError(t, g.SaveSession(ctx, sampleSession("b", 2)))

	require.NoError(t, g.DeleteSession(ctx, "a"))
	require.NoError(t, g.DeleteSession(ctx, "missing"))

	sessions, err := g.ListSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, sessionIDs(sessions))
}

func TestGateway_Queries(t *testing.T) {
	ctx := context.Background()
	g := NewGateway(store.NewMemoryStore(), "")

	first := &schema.StudentQuery{ID: "q1", StudentID: "S-1", Subject: "Grades", Description: "Missing grade", Status: schema.QueryPending, CreatedAt: 10}
	second := &schema.StudentQuery{ID: "q2", StudentID: "S-2", Subject: "Library", Description: "Fine dispute", Status: schema.QueryPending, CreatedAt: 20}
	require.NoError(t, g.SaveQuery(ctx, first))
	require.NoError(t, g.SaveQuery(ctx, second))

	queries, err := g.ListQueries(ctx)
	require.NoError(t, err)
	require.Len(t, queries, 2)
	assert.Equal(t, second, queries[0])
	assert.Equal(t, first, queries[1])
}

func TestGateway_NamespaceIsolation(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	campusA := NewGateway(kv, "campus_a")
	campusB := NewGateway(kv, "campus_b")

	require.NoError(t, campusA.SaveSession(ctx, sampleSession("a", 1)))

	sessions, err := campusB.ListSessions(ctx)
	require.NoError(t, err)
	assert.Empty(t, sessions)

	_, found, err := kv.Get(ctx, "campus_a_chats")
	require.NoError(t, err)
	assert.True(t, found)
}
