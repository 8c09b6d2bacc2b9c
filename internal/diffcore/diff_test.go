package diffcore

import (
	"math"
	"reflect"
	"testing"

	"github.com/lexdrift/lexdrift/internal/model"
)

func pairOf(indexed, local []string) *model.DocumentPair {
	return &model.DocumentPair{
		SourceFile: "Part 31",
		Indexed:    &model.LegalDocument{SourceFile: "Part 31", Body: indexed},
		Local:      &model.LegalDocument{SourceFile: "Part 31", Body: local},
	}
}

func TestEngine_Diff_Basic(t *testing.T) {
	engine := NewEngine()

	indexed := []string{"The fee is £19 per hour.", "Disclosure continues.", "Rule 31.6 applies."}
	local := []string{"The fee is £24 per hour.", "Disclosure continues.", "Rule 31.6 applies."}

	record := engine.Diff(pairOf(indexed, local))

	if !reflect.DeepEqual(record.RemovedLines, []string{"The fee is £19 per hour."}) {
		t.Errorf("unexpected removed lines: %v", record.RemovedLines)
	}
	if !reflect.DeepEqual(record.AddedLines, []string{"The fee is £24 per hour."}) {
		t.Errorf("unexpected added lines: %v", record.AddedLines)
	}

	want := 2.0 / 3.0
	if math.Abs(record.ChangeRatio-want) > 1e-9 {
		t.Errorf("ChangeRatio = %f, want %f", record.ChangeRatio, want)
	}
}

func TestEngine_Diff_IgnoresReordering(t *testing.T) {
	engine := NewEngine()

	indexed := []string{"a", "b", "c"}
	local := []string{"c", "a", "b"}

	record := engine.Diff(pairOf(indexed, local))
	if record.HasDrift() {
		t.Errorf("reordered lines should not drift: removed=%v added=%v",
			record.RemovedLines, record.AddedLines)
	}
	if record.ChangeRatio != 0 {
		t.Errorf("ChangeRatio = %f, want 0", record.ChangeRatio)
	}
}

func TestEngine_Diff_DuplicateLinesCounted(t *testing.T) {
	engine := NewEngine()

	// Indexed has the sentence twice, local only once: one copy drifted.
	indexed := []string{"x", "x", "y"}
	local := []string{"x", "y"}

	record := engine.Diff(pairOf(indexed, local))
	if len(record.RemovedLines) != 1 || record.RemovedLines[0] != "x" {
		t.Errorf("expected one removed duplicate, got %v", record.RemovedLines)
	}
	if len(record.AddedLines) != 0 {
		t.Errorf("expected no added lines, got %v", record.AddedLines)
	}
}

func TestEngine_Diff_Symmetry(t *testing.T) {
	engine := NewEngine()

	indexed := []string{"old one", "shared", "old two"}
	local := []string{"new one", "shared"}

	forward := engine.Diff(pairOf(indexed, local))
	reversed := engine.Diff(pairOf(local, indexed))

	if !reflect.DeepEqual(forward.RemovedLines, reversed.AddedLines) {
		t.Errorf("swap should swap removed/added: %v vs %v",
			forward.RemovedLines, reversed.AddedLines)
	}
	if !reflect.DeepEqual(forward.AddedLines, reversed.RemovedLines) {
		t.Errorf("swap should swap added/removed: %v vs %v",
			forward.AddedLines, reversed.RemovedLines)
	}

	// Ratio recomputes against the new denominator.
	wantReversed := float64(len(reversed.RemovedLines)+len(reversed.AddedLines)) / float64(len(local))
	if math.Abs(reversed.ChangeRatio-wantReversed) > 1e-9 {
		t.Errorf("reversed ChangeRatio = %f, want %f", reversed.ChangeRatio, wantReversed)
	}
}

func TestEngine_Diff_EmptyIndexedDenominator(t *testing.T) {
	engine := NewEngine()

	record := engine.Diff(pairOf(nil, []string{"only local"}))
	if record.ChangeRatio != 1.0 {
		t.Errorf("ChangeRatio with empty indexed = %f, want 1.0", record.ChangeRatio)
	}
}
