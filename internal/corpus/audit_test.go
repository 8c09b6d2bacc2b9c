package corpus

import (
	"os"
	"path/filepath"
	"testing"
)

func writeAuditFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "answer.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAuditInput(t *testing.T) {
	path := writeAuditFile(t, `{
		"answer": "Service must occur within 14 days [1].",
		"chunks": ["The particulars of claim must be served within 28 days."]
	}`)

	input, err := NewLoader().LoadAuditInput(path)
	if err != nil {
		t.Fatalf("LoadAuditInput failed: %v", err)
	}
	if input.Answer != "Service must occur within 14 days [1]." {
		t.Errorf("answer = %q", input.Answer)
	}
	if len(input.Chunks) != 1 {
		t.Errorf("chunks = %d, want 1", len(input.Chunks))
	}
}

func TestLoadAuditInputEmptyAnswer(t *testing.T) {
	path := writeAuditFile(t, `{"answer": "", "chunks": ["text"]}`)
	if _, err := NewLoader().LoadAuditInput(path); err == nil {
		t.Error("expected error for empty answer")
	}
}

func TestLoadAuditInputBadJSON(t *testing.T) {
	path := writeAuditFile(t, `{"answer": `)
	if _, err := NewLoader().LoadAuditInput(path); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
