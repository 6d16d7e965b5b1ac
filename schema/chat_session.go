package schema

import (
	"sort"
	"unicode/utf8"
)

const (
	DefaultTitle   = "New Discussion"
	UntitledTitle  = "Untitled Chat"
	MaxTitleLength = 35
	TitleEllipsis  = "..."
)

// ChatSession is one conversation thread. Messages are kept in append order.
type ChatSession struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	UpdatedAt int64     `json:"updatedAt"` // unix millis
}

func (s ChatSession) Id() string {
	return s.ID
}

// DisplayTitle is the label shown in session listings.
func (s ChatSession) DisplayTitle() string {
	if s.Title == "" {
		return UntitledTitle
	}
	return s.Title
}

// Clone returns a copy that shares no slice storage with s.
func (s *ChatSession) Clone() *ChatSession {
	if s == nil {
		return nil
	}

	c := *s
	if s.Messages != nil {
		c.Messages = make([]Message, len(s.Messages))
		copy(c.Messages, s.Messages)
	}
	return &c
}

// DeriveTitle builds a session title from the first user message: the first
// MaxTitleLength characters, with TitleEllipsis appended when cut.
func DeriveTitle(text string) string {
	if utf8.RuneCountInString(text) <= MaxTitleLength {
		return text
	}
	runes := []rune(text)
	return string(runes[:MaxTitleLength]) + TitleEllipsis
}

// SortByRecency orders sessions most recently updated first. Ties keep their
// relative order.
func SortByRecency(sessions []*ChatSession) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt > sessions[j].UpdatedAt
	})
}
