package llm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/glytehq/glyte-engine/pkg/apperrors"
	"github.com/glytehq/glyte-engine/pkg/config"
)

// NewClient builds an LLM client from configuration. Returns
// apperrors.ErrAINotConfigured when no provider is set; callers treat that as
// "run without AI features" rather than a startup failure.
func NewClient(cfg config.AIConfig, logger *zap.Logger) (Client, error) {
	if !cfg.Enabled() {
		return nil, apperrors.ErrAINotConfigured
	}

	switch cfg.Provider {
	case "openai":
		return NewOpenAIClient(cfg.Endpoint, cfg.Model, cfg.APIKey, cfg.MaxTokens, logger)
	case "anthropic":
		return NewAnthropicClient(cfg.Model, cfg.APIKey, cfg.MaxTokens, logger)
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}
