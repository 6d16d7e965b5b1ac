package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "short text", input: "hello", expected: "hello"},
		{name: "exactly max length", input: strings.Repeat("a", 35), expected: strings.Repeat("a", 35)},
		{name: "one over max length", input: strings.Repeat("b", 36), expected: strings.Repeat("b", 35) + "..."},
		{name: "fifty characters", input: strings.Repeat("c", 50), expected: strings.Repeat("c", 35) + "..."},
		{name: "multibyte runes", input: strings.Repeat("é", 40), expected: strings.Repeat("é", 35) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveTitle(tt.input))
		})
	}
}

func TestChatSession_Clone(t *testing.T) {
	original := &ChatSession{
		ID:       "s1",
		Title:    "Title",
		Messages: []Message{{ID: "m1", Role: RoleUser, Content: "hi", Timestamp: 1}},
	}

	clone := original.Clone()
	assert.Equal(t, original, clone)

	clone.Messages[0].Content = "changed"
	clone.Messages = append(clone.Messages, Message{ID: "m2"})
	assert.Equal(t, "hi", original.Messages[0].Content)
	assert.Len(t, original.Messages, 1)

	var nilSession *ChatSession
	assert.Nil(t, nilSession.Clone())
}

func TestChatSession_DisplayTitle(t *testing.T) {
	assert.Equal(t, "Untitled Chat", ChatSession{}.DisplayTitle())
	assert.Equal(t, "Exams", ChatSession{Title: "Exams"}.DisplayTitle())
}

func TestSortByRecency(t *testing.T) {
	sessions := []*ChatSession{
		{ID: "old", UpdatedAt: 100},
		{ID: "new", UpdatedAt: 300},
		{ID: "mid-a", UpdatedAt: 200},
		{ID: "mid-b", UpdatedAt: 200},
	}

	SortByRecency(sessions)

	ids := make([]string, len(sessions))
	for i, s := range sessions {
		ids[i] = s.ID
	}
	assert.Equal(t, []string{"new", "mid-a", "mid-b", "old"}, ids)
}

func TestNewID(t *testing.T) {
	seen := map[string]bool{}
	prev := ""
	for i := 0; i < 100; i++ {
		id := NewID()
		assert.False(t, seen[id])
		seen[id] = true
		assert.Greater(t, id, prev)
		prev = id
	}
}
