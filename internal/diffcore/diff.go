// Package diffcore computes line-level drift between the indexed and
// freshly scraped copies of a document.
package diffcore

import "github.com/lexdrift/lexdrift/internal/model"

// Engine diffs normalized line bodies as multisets. Line order is
// ignored on purpose: CPR Parts get renumbered and reordered across
// revisions, and sequence alignment reports those as walls of change.
type Engine struct{}

// NewEngine creates a new diff engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Diff computes the DiffRecord for one pair. Both bodies are assumed
// already normalized.
func (e *Engine) Diff(pair *model.DocumentPair) model.DiffRecord {
	var indexed, local []string
	if pair.Indexed != nil {
		indexed = pair.Indexed.Body
	}
	if pair.Local != nil {
		local = pair.Local.Body
	}

	record := model.DiffRecord{
		SourceFile:   pair.SourceFile,
		RemovedLines: subtract(indexed, local),
		AddedLines:   subtract(local, indexed),
	}

	denom := len(indexed)
	if denom < 1 {
		denom = 1
	}
	record.ChangeRatio = float64(len(record.RemovedLines)+len(record.AddedLines)) / float64(denom)

	return record
}

// subtract returns the multiset difference a - b, preserving a's order.
func subtract(a, b []string) []string {
	counts := make(map[string]int, len(b))
	for _, line := range b {
		counts[line]++
	}

	var out []string
	for _, line := range a {
		if counts[line] > 0 {
			counts[line]--
			continue
		}
		out = append(out, line)
	}
	return out
}
