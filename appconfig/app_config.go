package appconfig

import (
	"time"

	"github.com/SaiNageswarS/go-api-boot/config"
)

type AppConfig struct {
	config.BootConfig `ini:",extends"`

	StoragePath      string `env:"EDUASSIST-STORAGE-PATH" ini:"storage_path"`
	StorageNamespace string `ini:"storage_namespace"`

	LLMProvider           string  `env:"EDUASSIST-LLM-PROVIDER" ini:"llm_provider"`
	GeminiModel           string  `ini:"gemini_model"`
	OllamaModel           string  `ini:"ollama_model"`
	GroqModel             string  `ini:"groq_model"`
	Temperature           float64 `ini:"temperature"`
	TopP                  float64 `ini:"top_p"`
	MaxTokens             int     `ini:"max_tokens"`
	RequestTimeoutSeconds int     `ini:"request_timeout_seconds"`

	AssistantName  string `ini:"assistant_name"`
	UniversityName string `ini:"university_name"`
}

const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
	ProviderGroq   = "groq"
)

// Load reads path into a config with defaults applied for anything left
// unset.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := config.LoadConfig(path, cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

func (c *AppConfig) ApplyDefaults() {
	if c.StoragePath == "" {
		c.StoragePath = "eduassist.db"
	}
	if c.StorageNamespace == "" {
		c.StorageNamespace = "eduassist"
	}
	if c.LLMProvider == "" {
		c.LLMProvider = ProviderGemini
	}
	if c.GeminiModel == "" {
		c.GeminiModel = "gemini-3-flash-preview"
	}
	if c.OllamaModel == "" {
		c.OllamaModel = "llama3.2"
	}
	if c.GroqModel == "" {
		c.GroqModel = "llama-3.3-70b-versatile"
	}
	if c.Temperature == 0 {
		c.Temperature = 0.7
	}
	if c.TopP == 0 {
		c.TopP = 0.8
	}
	if c.RequestTimeoutSeconds == 0 {
		c.RequestTimeoutSeconds = 60
	}
}

func (c *AppConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}
