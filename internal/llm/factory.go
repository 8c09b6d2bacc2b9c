package llm

import (
	"fmt"
	"strings"
)

// NewProvider creates an entailment provider from configuration. An
// empty provider name returns (nil, nil): the fallback is disabled and
// the groundedness checker stays purely lexical.
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, anthropic, ollama)", config.Provider)
	}
}
