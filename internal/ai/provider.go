package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"tripcraft/internal/config"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// NewProvider builds the provider named by cfg.Provider. The returned close
// function releases client resources and is always non-nil on success.
func NewProvider(ctx context.Context, cfg config.AIConfig) (Provider, func() error, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", ProviderGemini:
		slog.Info("initializing llm provider", "provider", ProviderGemini, "model", cfg.GeminiModel)
		p, err := NewGeminiProvider(ctx, cfg.GeminiKey, cfg.GeminiModel)
		if err != nil {
			return nil, nil, err
		}
		return p, p.Close, nil
	case ProviderOpenAI:
		slog.Info("initializing llm provider", "provider", ProviderOpenAI, "model", cfg.OpenAIModel)
		p, err := NewOpenAIProvider(cfg.OpenAIKey, cfg.OpenAIModel)
		if err != nil {
			return nil, nil, err
		}
		return p, func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported llm provider: %s. Use 'gemini' or 'openai'", cfg.Provider)
	}
}
