package prompts

import (
	"bytes"
	"embed"
	"strings"
	"text/template"
)

//go:embed templates/*
var templatesFS embed.FS

const (
	DefaultAssistantName  = "EduAssist AI"
	DefaultUniversityName = "Global Tech University"
)

// RenderHelpdeskSystemPrompt renders the system instruction sent with every
// completion request. Empty names fall back to the defaults.
func RenderHelpdeskSystemPrompt(assistantName, universityName string) (string, error) {
	if assistantName == "" {
		assistantName = DefaultAssistantName
	}
	if universityName == "" {
		universityName = DefaultUniversityName
	}

	templateContent, err := templatesFS.ReadFile("templates/helpdesk_system.md")
	if err != nil {
		return "", err
	}

	tmpl, err := template.New("helpdesk_system").Parse(string(templateContent))
	if err != nil {
		return "", err
	}

	data := struct {
		AssistantName  string
		UniversityName string
	}{
		AssistantName:  assistantName,
		UniversityName: universityName,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return strings.TrimSpace(buf.String()), nil
}
