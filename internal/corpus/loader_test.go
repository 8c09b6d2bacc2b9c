package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lexdrift/lexdrift/internal/model"
)

func writeFeed(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write feed: %v", err)
	}
	return path
}

func TestLoader_LoadFeed_NormalizesBodies(t *testing.T) {
	dir := t.TempDir()
	path := writeFeed(t, dir, "local.json", `[
		{"sourcefile": "Part 31", "content": "Disclosure\n\n  of “documents”  ", "origin_url": "https://example.org/part31"},
		{"sourcefile": "", "content": "ignored, no identifier"}
	]`)

	loader := NewLoader()
	docs, err := loader.LoadFeed(path)
	if err != nil {
		t.Fatalf("LoadFeed: %v", err)
	}

	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	if docs[0].Body[1] != `of "documents"` {
		t.Errorf("body not normalized: %v", docs[0].Body)
	}
}

func TestLoader_LoadFeed_MissingFile(t *testing.T) {
	loader := NewLoader()
	if _, err := loader.LoadFeed(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing feed file")
	}
}

func TestLoader_LoadFeed_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := writeFeed(t, dir, "bad.json", `{"not": "an array"`)

	loader := NewLoader()
	if _, err := loader.LoadFeed(path); err == nil {
		t.Error("expected error for malformed feed")
	}
}

func TestLoader_Pair_EmitsMissingCounterparts(t *testing.T) {
	loader := NewLoader()

	local := []*model.LegalDocument{
		{SourceFile: "Part 31", Body: []string{"a"}},
		{SourceFile: "Part 63", Body: []string{"b"}},
	}
	indexed := []*model.LegalDocument{
		{SourceFile: "Part 31", Body: []string{"a"}},
	}

	pairs := loader.Pair(local, indexed)
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(pairs))
	}

	// Sorted by sourcefile.
	if pairs[0].SourceFile != "Part 31" || pairs[1].SourceFile != "Part 63" {
		t.Errorf("unexpected pair order: %s, %s", pairs[0].SourceFile, pairs[1].SourceFile)
	}
	if !pairs[0].HasIndexed() {
		t.Error("Part 31 should have an indexed counterpart")
	}
	if pairs[1].HasIndexed() {
		t.Error("Part 63 should be a coverage gap")
	}
}

func TestLoader_Pair_KeepsIndexedOnlyDocuments(t *testing.T) {
	loader := NewLoader()

	local := []*model.LegalDocument{
		{SourceFile: "Part 31", Body: []string{"a"}},
	}
	indexed := []*model.LegalDocument{
		{SourceFile: "Part 31", Body: []string{"a"}},
		{SourceFile: "PD 57AC", Body: []string{"stale entry"}},
	}

	pairs := loader.Pair(local, indexed)
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(pairs))
	}

	gap := pairs[0]
	if gap.SourceFile != "PD 57AC" {
		t.Fatalf("expected PD 57AC first, got %s", gap.SourceFile)
	}
	if gap.HasLocal() {
		t.Error("indexed-only document should have no local copy")
	}
	if !gap.HasIndexed() {
		t.Error("indexed-only document should keep its indexed side")
	}
}

func TestDocumentPair_EmptyIndexedBodyIsCoverageGap(t *testing.T) {
	pair := &model.DocumentPair{
		SourceFile: "PD 57AC",
		Local:      &model.LegalDocument{SourceFile: "PD 57AC", Body: []string{"text"}},
		Indexed:    &model.LegalDocument{SourceFile: "PD 57AC"},
	}
	if pair.HasIndexed() {
		t.Error("indexed document with empty body should count as missing")
	}
}
