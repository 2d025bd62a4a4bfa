package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/KaanSezen1923/MovieRag/internal/config"
)

func NewClient(ctx context.Context, cfg config.LLMConfig) (LLMClient, error) {
	provider := strings.ToLower(cfg.Provider)

	switch provider {
	case "gemini":
		return NewGeminiClient(ctx, cfg)

	case "openai":
		return NewOpenAIClient(cfg), nil

	case "claude":
		return NewClaudeClient(cfg), nil

	case "ollama":
		// Ollama speaks the OpenAI chat API; point the OpenAI client at it.
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL = fmt.Sprintf("%s/v1", strings.TrimRight(baseURL, "/"))
		}
		cfg.BaseURL = baseURL
		if cfg.APIKey == "" {
			cfg.APIKey = "ollama" // required by the client, ignored by the server
		}
		return NewOpenAIClient(cfg), nil

	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}
}
