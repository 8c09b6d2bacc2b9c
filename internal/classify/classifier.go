// Package classify decides why a document pair's bodies diverged,
// using a freshly fetched live copy of the page as a third witness.
package classify

import (
	"context"
	"strings"

	"github.com/lexdrift/lexdrift/internal/model"
	"github.com/lexdrift/lexdrift/internal/normalize"
)

// LiveFetcher is the subset of the fetcher the classifier needs,
// narrowed for testability.
type LiveFetcher interface {
	FetchLines(ctx context.Context, originURL string) ([]string, error)
}

// Classifier assigns one of four causes to a diff record. Each record
// is classified independently and statelessly.
type Classifier struct {
	fetcher LiveFetcher
	config  model.ClassifierConfig
}

// NewClassifier creates a classifier. fetcher may be nil, in which case
// every drifted pair is mixed_or_inconclusive (no corroboration means
// no asserted cause).
func NewClassifier(fetcher LiveFetcher, config model.ClassifierConfig) *Classifier {
	return &Classifier{fetcher: fetcher, config: config}
}

// Classify determines the cause for one pair given its diff record.
// The returned CorroborationResult is nil when no live fetch was
// attempted (coverage gaps and no-drift pairs).
func (c *Classifier) Classify(ctx context.Context, pair *model.DocumentPair, diff model.DiffRecord) (model.Cause, *model.CorroborationResult) {
	// Coverage gap on either side: nothing to corroborate, terminal.
	if !pair.HasIndexed() || !pair.HasLocal() {
		return model.CauseMissingInIndex, nil
	}

	// No drift means nothing to explain; callers should not normally
	// ask, but answering inconclusively is harmless.
	if !diff.HasDrift() {
		return model.CauseMixedOrInconclusive, nil
	}

	originURL := ""
	if pair.Local != nil {
		originURL = pair.Local.OriginURL
	}
	if c.fetcher == nil || originURL == "" {
		return model.CauseMixedOrInconclusive, &model.CorroborationResult{
			FetchFailed: true,
			FetchError:  "no live fetch available",
		}
	}

	liveLines, err := c.fetcher.FetchLines(ctx, originURL)
	if err != nil {
		// Fetch failure downgrades, never fails the pair.
		return model.CauseMixedOrInconclusive, &model.CorroborationResult{
			FetchFailed: true,
			FetchError:  err.Error(),
		}
	}

	corr := &model.CorroborationResult{
		AddedHitRate:   HitRate(diff.AddedLines, liveLines),
		RemovedHitRate: HitRate(diff.RemovedLines, liveLines),
	}

	return c.decide(diff, corr), corr
}

// decide applies the threshold rule. The band between low and high
// stays inconclusive: wrongly calling a scraper defect "website
// changed" leaves a stale index un-refreshed, so the bias is toward
// admitting uncertainty.
func (c *Classifier) decide(diff model.DiffRecord, corr *model.CorroborationResult) model.Cause {
	high := c.config.HighHitRate
	low := c.config.LowHitRate

	addedHigh := rateHigh(corr.AddedHitRate, high, len(diff.AddedLines))
	addedLow := rateLow(corr.AddedHitRate, low, len(diff.AddedLines))
	removedHigh := rateHigh(corr.RemovedHitRate, high, len(diff.RemovedLines))
	removedLow := rateLow(corr.RemovedHitRate, low, len(diff.RemovedLines))

	switch {
	case addedHigh && removedLow:
		return model.CauseWebsiteChanged
	case removedHigh && addedLow:
		return model.CauseScraperIssue
	default:
		return model.CauseMixedOrInconclusive
	}
}

// An empty side carries no evidence against the other side's verdict:
// a pure addition has no removed lines to test, and the removed rate
// is vacuously low, not vacuously high.
func rateHigh(rate, threshold float64, n int) bool {
	return n > 0 && rate >= threshold
}

func rateLow(rate, threshold float64, n int) bool {
	return n == 0 || rate <= threshold
}

// HitRate returns the fraction of candidate lines found in the live
// text, matching with whitespace/punctuation slack via normalize.Key.
// Short keys (stray numbering fragments) still count only on exact
// line match to avoid spurious substring hits.
func HitRate(candidates, liveLines []string) float64 {
	if len(candidates) == 0 {
		return 0
	}

	liveSet := make(map[string]bool, len(liveLines))
	var liveBlob strings.Builder
	for _, line := range liveLines {
		key := normalize.Key(line)
		liveSet[key] = true
		liveBlob.WriteString(key)
		liveBlob.WriteString(" ")
	}
	blob := liveBlob.String()

	hits := 0
	for _, candidate := range candidates {
		key := normalize.Key(candidate)
		if key == "" {
			continue
		}
		if liveSet[key] {
			hits++
			continue
		}
		// Near-exact: the candidate appears inside a longer live line,
		// or spans a line break in the live rendering.
		if len(key) >= 12 && strings.Contains(blob, key) {
			hits++
		}
	}

	return float64(hits) / float64(len(candidates))
}
