package corpus

import (
	"encoding/json"
	"fmt"
	"os"
)

// AuditInput is the file format the audit command consumes: one
// generated answer plus the retrieved chunks its markers refer to,
// in marker order.
type AuditInput struct {
	Answer string   `json:"answer"`
	Chunks []string `json:"chunks"`
}

// LoadAuditInput reads and validates an audit input file.
func (l *Loader) LoadAuditInput(path string) (*AuditInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read audit input: %w", err)
	}

	var input AuditInput
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("parse audit input %s: %w", path, err)
	}
	if input.Answer == "" {
		return nil, fmt.Errorf("audit input %s has no answer", path)
	}
	return &input, nil
}
