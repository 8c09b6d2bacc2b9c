package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/lexdrift/lexdrift/internal/model"
)

// Verifier runs the drift checks for a single document pair.
type Verifier interface {
	VerifyPair(ctx context.Context, pair *model.DocumentPair) (*model.PairResult, error)
}

// VerifyJob verifies one pair on the pool.
type VerifyJob struct {
	Pair     *model.DocumentPair
	Verifier Verifier
}

// Execute implements Job.
func (j *VerifyJob) Execute(ctx context.Context) Result {
	result, err := j.Verifier.VerifyPair(ctx, j.Pair)
	return &VerifyResult{
		SourceFile: j.Pair.SourceFile,
		Result:     result,
		Error:      err,
	}
}

// VerifyResult carries one pair's outcome off the pool.
type VerifyResult struct {
	SourceFile string
	Result     *model.PairResult
	Error      error
}

// Err implements Result.
func (r *VerifyResult) Err() error {
	return r.Error
}

// BatchProcessor verifies many document pairs concurrently.
type BatchProcessor struct {
	verifier    Verifier
	concurrency int
}

// NewBatchProcessor creates a batch processor running at most
// concurrency verifications at once.
func NewBatchProcessor(verifier Verifier, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		verifier:    verifier,
		concurrency: concurrency,
	}
}

// ProcessPairs verifies every pair and returns one result each, in
// completion order.
func (b *BatchProcessor) ProcessPairs(ctx context.Context, pairs []*model.DocumentPair) []*VerifyResult {
	if len(pairs) == 0 {
		return []*VerifyResult{}
	}

	pool := NewPoolContext(ctx, b.concurrency)
	pool.Start()

	// Submission and collection overlap; a corpus larger than the pool's
	// channel buffers would otherwise wedge on a full results channel.
	go func() {
		for _, pair := range pairs {
			pool.Submit(&VerifyJob{Pair: pair, Verifier: b.verifier})
		}
		pool.Close()
	}()

	results := pool.Wait()

	verifyResults := make([]*VerifyResult, 0, len(results))
	for _, result := range results {
		verifyResults = append(verifyResults, result.(*VerifyResult))
	}
	return verifyResults
}

// ReadListFile reads one entry per line from a file, skipping blanks
// and # comments and dropping duplicates. Used for source-file filter
// lists.
func ReadListFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var entries []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			entries = append(entries, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return entries, nil
}
