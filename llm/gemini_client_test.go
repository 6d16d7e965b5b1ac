package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(t.Context(), "", "")
	assert.Error(t, err)
}

func TestToGeminiContents(t *testing.T) {
	contents := toGeminiContents([]Message{
		{Role: RoleSystem, Content: "ignored"},
		{Role: RoleUser, Content: "What is recursion?"},
		{Role: RoleAssistant, Content: "A function calling itself."},
		{Role: RoleUser, Content: "Example?"},
	})

	require.Len(t, contents, 3)
	assert.Equal(t, genai.Role(genai.RoleUser), genai.Role(contents[0].Role))
	assert.Equal(t, genai.Role(genai.RoleModel), genai.Role(contents[1].Role))
	assert.Equal(t, genai.Role(genai.RoleUser), genai.Role(contents[2].Role))
	assert.Equal(t, "A function calling itself.", contents[1].Parts[0].Text)
}

func TestGeminiConfig(t *testing.T) {
	cfg := geminiConfig(newSettings("m", []LLMOption{
		WithTemperature(0.7),
		WithTopP(0.8),
		WithSystemPrompt("You are EduAssist"),
	}))

	require.NotNil(t, cfg.Temperature)
	require.NotNil(t, cfg.TopP)
	assert.InDelta(t, 0.7, *cfg.Temperature, 1e-6)
	assert.InDelta(t, 0.8, *cfg.TopP, 1e-6)
	require.NotNil(t, cfg.SystemInstruction)
	assert.Equal(t, "You are EduAssist", cfg.SystemInstruction.Parts[0].Text)

	bare := geminiConfig(newSettings("m", nil))
	assert.Nil(t, bare.TopP)
	assert.Nil(t, bare.SystemInstruction)
}
