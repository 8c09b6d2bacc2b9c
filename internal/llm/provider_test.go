package llm

import (
	"strings"
	"testing"
)

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		raw       string
		supported bool
		wantErr   bool
	}{
		{"SUPPORTED", true, false},
		{"supported", true, false},
		{"SUPPORTED - the passage states the same period", true, false},
		{"UNSUPPORTED: the evidence says 28 days, not 14", false, false},
		{"UNSUPPORTED", false, false},
		{"Let me think.\nUNSUPPORTED: no mention of service", false, false},
		{"maybe?", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		supported, reason, err := ParseVerdict(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseVerdict(%q): expected error", tt.raw)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseVerdict(%q): %v", tt.raw, err)
			continue
		}
		if supported != tt.supported {
			t.Errorf("ParseVerdict(%q) = %v, want %v", tt.raw, supported, tt.supported)
		}
		if !supported && reason == "" {
			t.Errorf("ParseVerdict(%q): unsupported verdict must carry a reason", tt.raw)
		}
	}
}

func TestBuildEntailmentPrompt_ContainsBothTexts(t *testing.T) {
	prompt := BuildEntailmentPrompt(EntailmentRequest{
		Claim:    "Service must occur within 14 days.",
		Evidence: "The claim form must be served within 28 days.",
	})
	if !strings.Contains(prompt, "within 14 days") || !strings.Contains(prompt, "within 28 days") {
		t.Errorf("prompt missing claim or evidence: %q", prompt)
	}
}

func TestNewProvider_DisabledAndUnknown(t *testing.T) {
	p, err := NewProvider(Config{})
	if p != nil || err != nil {
		t.Errorf("empty provider should disable the fallback, got %v, %v", p, err)
	}

	if _, err := NewProvider(Config{Provider: "carrier-pigeon"}); err == nil {
		t.Error("unknown provider should error")
	}
}

func TestNewProvider_RequiresKeys(t *testing.T) {
	if _, err := NewProvider(Config{Provider: "openai"}); err == nil {
		t.Error("openai without API key should error")
	}
	if _, err := NewProvider(Config{Provider: "anthropic"}); err == nil {
		t.Error("anthropic without API key should error")
	}
}
