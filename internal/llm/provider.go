// Package llm provides the optional semantic-entailment fallback for
// groundedness checking. The cheap lexical pass handles most verdicts;
// a provider is consulted only for claims the lexical pass cannot
// decide, and the whole package is disabled unless configured.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/lexdrift/lexdrift/internal/model"
)

// Provider defines the interface for entailment providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Entail judges whether the evidence text supports the claim
	Entail(ctx context.Context, req EntailmentRequest) (*EntailmentResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// EntailmentRequest contains one claim/evidence pair to judge.
type EntailmentRequest struct {
	// Claim is the sentence from the generated answer, marker stripped
	Claim string

	// Evidence is the retrieved chunk the citation marker points to
	Evidence string

	// Model overrides the configured model (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// EntailmentResponse is the provider's verdict.
type EntailmentResponse struct {
	Supported  bool
	Reason     string // Populated when unsupported
	Model      string
	TokensUsed int
}

// Config holds entailment provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests, seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:  mc.Provider,
		Model:     mc.Model,
		APIKey:    mc.APIKey,
		BaseURL:   mc.BaseURL,
		Timeout:   mc.Timeout,
		MaxTokens: mc.MaxTokens,
	}
}

const entailmentSystem = "You judge whether a quoted evidence passage supports a claim. " +
	"You never use outside knowledge: only the evidence text counts. " +
	"Answer with exactly one line starting with SUPPORTED or UNSUPPORTED."

// BuildEntailmentPrompt constructs the provider-independent user prompt.
func BuildEntailmentPrompt(req EntailmentRequest) string {
	return fmt.Sprintf(`Claim from a generated answer:
%q

Evidence passage the answer cites for it:
%q

Does the evidence passage, on its own, support the claim?
Reply with one line: "SUPPORTED" or "UNSUPPORTED: <short reason>".
If the evidence contradicts the claim or does not mention it, reply UNSUPPORTED.`,
		req.Claim, req.Evidence)
}

// ParseVerdict extracts the supported/unsupported decision from a
// provider's raw completion. Unparseable output is an error, not a
// silent verdict either way.
func ParseVerdict(raw string) (supported bool, reason string, err error) {
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		line = strings.TrimSpace(line)
		upper := strings.ToUpper(line)
		switch {
		case strings.HasPrefix(upper, "SUPPORTED"):
			return true, "", nil
		case strings.HasPrefix(upper, "UNSUPPORTED"):
			reason = strings.TrimSpace(strings.TrimPrefix(line[len("UNSUPPORTED"):], ":"))
			if reason == "" {
				reason = "evidence does not support the claim"
			}
			return false, reason, nil
		}
	}
	return false, "", fmt.Errorf("unparseable entailment verdict: %q", raw)
}
