package worker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lexdrift/lexdrift/internal/model"
)

type stubVerifier struct {
	calls   int32
	failFor string
}

func (v *stubVerifier) VerifyPair(ctx context.Context, pair *model.DocumentPair) (*model.PairResult, error) {
	atomic.AddInt32(&v.calls, 1)
	if pair.SourceFile == v.failFor {
		return nil, errors.New("verify failed")
	}
	return &model.PairResult{
		SourceFile: pair.SourceFile,
		Cause:      model.CauseMixedOrInconclusive,
	}, nil
}

func makePairs(n int) []*model.DocumentPair {
	pairs := make([]*model.DocumentPair, n)
	for i := range pairs {
		name := fmt.Sprintf("part%02d.pdf", i)
		pairs[i] = &model.DocumentPair{
			SourceFile: name,
			Local:      &model.LegalDocument{SourceFile: name, Body: []string{"some rule text"}},
		}
	}
	return pairs
}

func TestBatchProcessor_ProcessPairs(t *testing.T) {
	verifier := &stubVerifier{}
	processor := NewBatchProcessor(verifier, 4)

	results := processor.ProcessPairs(context.Background(), makePairs(10))
	if len(results) != 10 {
		t.Fatalf("expected 10 results, got %d", len(results))
	}
	if got := atomic.LoadInt32(&verifier.calls); got != 10 {
		t.Errorf("expected 10 verifier calls, got %d", got)
	}

	seen := make(map[string]bool)
	for _, r := range results {
		if r.Err() != nil {
			t.Errorf("unexpected error for %s: %v", r.SourceFile, r.Err())
		}
		if r.Result == nil {
			t.Errorf("missing result for %s", r.SourceFile)
		}
		seen[r.SourceFile] = true
	}
	if len(seen) != 10 {
		t.Errorf("expected 10 distinct source files, got %d", len(seen))
	}
}

func TestBatchProcessor_PartialFailure(t *testing.T) {
	verifier := &stubVerifier{failFor: "part03.pdf"}
	processor := NewBatchProcessor(verifier, 2)

	results := processor.ProcessPairs(context.Background(), makePairs(5))
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}

	failed := 0
	for _, r := range results {
		if r.Err() != nil {
			failed++
			if r.SourceFile != "part03.pdf" {
				t.Errorf("unexpected failing source file %s", r.SourceFile)
			}
		}
	}
	if failed != 1 {
		t.Errorf("expected 1 failure, got %d", failed)
	}
}

func TestBatchProcessor_LargeCorpus(t *testing.T) {
	verifier := &stubVerifier{}
	processor := NewBatchProcessor(verifier, 2)

	done := make(chan []*VerifyResult, 1)
	go func() { done <- processor.ProcessPairs(context.Background(), makePairs(100)) }()

	select {
	case results := <-done:
		if len(results) != 100 {
			t.Fatalf("expected 100 results, got %d", len(results))
		}
		if got := atomic.LoadInt32(&verifier.calls); got != 100 {
			t.Errorf("expected 100 verifier calls, got %d", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ProcessPairs stalled on 100 pairs with 2 workers")
	}
}

func TestBatchProcessor_Empty(t *testing.T) {
	processor := NewBatchProcessor(&stubVerifier{}, 2)
	if results := processor.ProcessPairs(context.Background(), nil); len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestReadListFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "only.txt")
	content := `# tracked documents
part07.pdf
part07.pdf

pd_57ac.pdf
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	entries, err := ReadListFile(path)
	if err != nil {
		t.Fatalf("ReadListFile failed: %v", err)
	}
	want := []string{"part07.pdf", "pd_57ac.pdf"}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d: %v", len(want), len(entries), entries)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, entries[i], want[i])
		}
	}
}

func TestReadListFile_Missing(t *testing.T) {
	if _, err := ReadListFile(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}
