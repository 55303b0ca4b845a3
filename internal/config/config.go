package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"github.com/respondentai/backend/internal/model/dialog"
)

// Config aggregates the service configuration.
type Config struct {
	Server     ServerConfig
	LLM        LLMConfig
	Dialog     DialogConfig
	Personas   PersonaConfig
	Transcript TranscriptConfig
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	llm, err := loadLLMConfig()
	if err != nil {
		return nil, err
	}

	dlg, err := loadDialogConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:     server,
		LLM:        llm,
		Dialog:     dlg,
		Personas:   loadPersonaConfig(),
		Transcript: loadTranscriptConfig(),
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept full addresses such as ":8080" or "127.0.0.1:8080".
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// LLMConfig describes the chat-completion backend.
type LLMConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

func loadLLMConfig() (LLMConfig, error) {
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		return LLMConfig{}, fmt.Errorf("OPENAI_API_KEY is required")
	}

	timeoutSeconds := 30
	if override, err := parseOptionalIntEnv("LLM_TIMEOUT"); err != nil {
		return LLMConfig{}, err
	} else if override != nil {
		if *override <= 0 {
			return LLMConfig{}, fmt.Errorf("invalid LLM_TIMEOUT value %d: must be positive", *override)
		}
		timeoutSeconds = *override
	}

	return LLMConfig{
		APIKey:  apiKey,
		Model:   getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		BaseURL: strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
		Timeout: time.Duration(timeoutSeconds) * time.Second,
	}, nil
}

// NewChatModel creates the backing chat model from the configuration.
func (c LLMConfig) NewChatModel(ctx context.Context) (model.BaseChatModel, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}

	return openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  c.APIKey,
		Model:   c.Model,
		BaseURL: c.BaseURL,
		Timeout: c.Timeout,
	})
}

// DialogConfig tunes the conversation state machine.
type DialogConfig struct {
	HistoryLimit int
}

func loadDialogConfig() (DialogConfig, error) {
	limit := dialog.DefaultHistoryLimit
	if override, err := parseOptionalIntEnv("DIALOG_HISTORY_LIMIT"); err != nil {
		return DialogConfig{}, err
	} else if override != nil {
		if *override < 1 {
			limit = 1
		} else {
			limit = *override
		}
	}

	return DialogConfig{HistoryLimit: limit}, nil
}

// PersonaConfig points at the persona sources read once at startup.
type PersonaConfig struct {
	DefaultPath string
	LibraryPath string
}

func loadPersonaConfig() PersonaConfig {
	return PersonaConfig{
		DefaultPath: getEnvOrDefault("PERSONA_FILE", "persona.json"),
		LibraryPath: getEnvOrDefault("PERSONA_LIBRARY_FILE", "personas_library.json"),
	}
}

// TranscriptConfig describes where per-user transcripts are appended.
type TranscriptConfig struct {
	Dir string
}

func loadTranscriptConfig() TranscriptConfig {
	return TranscriptConfig{Dir: getEnvOrDefault("TRANSCRIPT_DIR", "logs")}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
