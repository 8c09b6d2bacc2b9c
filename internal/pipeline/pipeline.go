// Package pipeline wires the loaders, diff engine, classifier, scorer
// and groundedness checker into the two top-level runs: feed
// verification and answer auditing.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/lexdrift/lexdrift/internal/cache"
	"github.com/lexdrift/lexdrift/internal/cite"
	"github.com/lexdrift/lexdrift/internal/classify"
	"github.com/lexdrift/lexdrift/internal/corpus"
	"github.com/lexdrift/lexdrift/internal/diffcore"
	"github.com/lexdrift/lexdrift/internal/fetch"
	"github.com/lexdrift/lexdrift/internal/ground"
	"github.com/lexdrift/lexdrift/internal/impact"
	"github.com/lexdrift/lexdrift/internal/llm"
	"github.com/lexdrift/lexdrift/internal/model"
	"github.com/lexdrift/lexdrift/internal/worker"
)

// Pipeline orchestrates verification and audit runs.
type Pipeline struct {
	loader     *corpus.Loader
	differ     *diffcore.Engine
	classifier *classify.Classifier
	scorer     *impact.Scorer
	extractor  *cite.Extractor
	checker    *ground.Checker
	renderer   *Renderer
	config     *model.Config
}

// NewPipeline builds a pipeline from the configuration. A misconfigured
// entailment provider degrades to lexical-only auditing with a warning
// rather than failing the run.
func NewPipeline(cfg *model.Config) *Pipeline {
	// The classifier treats a nil fetcher as "no corroboration
	// available", which is exactly what offline mode wants.
	var fetcher classify.LiveFetcher
	if !cfg.HTTP.DisableLiveFetch {
		pageCache := cache.ForCacheConfig(cfg.Cache.Enabled, cfg.Cache.Dir, cfg.Cache.TTL)
		fetcher = fetch.NewFetcher(cfg.HTTP, cfg.RateLimiting, pageCache)
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: entailment provider unavailable: %v\n", err)
		provider = nil
	}

	extractor := cite.NewExtractor(nil)

	return &Pipeline{
		loader:     corpus.NewLoader(),
		differ:     diffcore.NewEngine(),
		classifier: classify.NewClassifier(fetcher, cfg.Classifier),
		scorer:     impact.NewScorer(cfg.Impact),
		extractor:  extractor,
		checker:    ground.NewChecker(extractor, provider, cfg.Ground),
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
		config:     cfg,
	}
}

// VerifyPair runs diff, corroboration and impact scoring for one pair.
// Fetch failures never surface as errors: the classifier records them
// and downgrades the cause instead.
func (p *Pipeline) VerifyPair(ctx context.Context, pair *model.DocumentPair) (*model.PairResult, error) {
	diff := p.differ.Diff(pair)
	cause, corroboration := p.classifier.Classify(ctx, pair, diff)

	result := &model.PairResult{
		SourceFile:    pair.SourceFile,
		Diff:          diff,
		Corroboration: corroboration,
		Cause:         cause,
		Impact:        p.scorer.Score(diff),
	}
	if pair.Local != nil {
		result.OriginURL = pair.Local.OriginURL
	}
	return result, nil
}

// Verify loads both feeds, pairs them by source file and verifies every
// pair concurrently. When only is non-empty, verification is restricted
// to the named source files.
func (p *Pipeline) Verify(ctx context.Context, localPath, indexedPath string, only []string) (*model.DriftReport, error) {
	pairs, err := p.loader.LoadPairs(localPath, indexedPath)
	if err != nil {
		return nil, fmt.Errorf("load feeds: %w", err)
	}
	pairs = filterPairs(pairs, only)

	batch := worker.NewBatchProcessor(p, p.config.Concurrency.Workers)
	results := batch.ProcessPairs(ctx, pairs)

	report := &model.DriftReport{
		GeneratedAt: time.Now().UTC(),
		LocalFeed:   localPath,
		IndexedFeed: indexedPath,
	}
	for _, r := range results {
		if r.Result != nil {
			report.Pairs = append(report.Pairs, *r.Result)
		}
	}

	// Highest impact first, then by name for a stable triage order.
	sort.Slice(report.Pairs, func(i, j int) bool {
		a, b := report.Pairs[i], report.Pairs[j]
		if a.Impact.Score != b.Impact.Score {
			return a.Impact.Score > b.Impact.Score
		}
		return a.SourceFile < b.SourceFile
	})

	report.Summarize()
	return report, nil
}

// Audit extracts the citations from a generated answer and judges every
// numeric marker against its retrieved chunk.
func (p *Pipeline) Audit(ctx context.Context, answer string, chunks []string) *model.AuditReport {
	verdicts := p.checker.Check(ctx, answer, chunks)

	unsupported := 0
	for _, v := range verdicts {
		if !v.Supported {
			unsupported++
		}
	}

	return &model.AuditReport{
		GeneratedAt: time.Now().UTC(),
		Answer:      answer,
		Citations:   p.extractor.Extract(answer),
		Verdicts:    verdicts,
		Unsupported: unsupported,
	}
}

func filterPairs(pairs []*model.DocumentPair, only []string) []*model.DocumentPair {
	if len(only) == 0 {
		return pairs
	}
	keep := make(map[string]bool, len(only))
	for _, name := range only {
		keep[name] = true
	}
	var filtered []*model.DocumentPair
	for _, pair := range pairs {
		if keep[pair.SourceFile] {
			filtered = append(filtered, pair)
		}
	}
	return filtered
}
