package model

// DiffRecord captures how one document pair's two bodies differ.
// Lines are compared as multisets, not aligned sequences: legal texts
// get renumbered and reordered across revisions, and positional diffs
// turn every renumbering into noise.
type DiffRecord struct {
	SourceFile   string   `json:"sourcefile"`
	RemovedLines []string `json:"removed_lines,omitempty"` // In indexed, not in local
	AddedLines   []string `json:"added_lines,omitempty"`   // In local, not in indexed
	ChangeRatio  float64  `json:"change_ratio"`            // (|removed|+|added|) / max(1, |indexed|)
}

// HasDrift reports whether there is anything to classify.
func (d *DiffRecord) HasDrift() bool {
	return len(d.RemovedLines) > 0 || len(d.AddedLines) > 0
}

// CorroborationResult holds the hit rates of disputed diff lines
// against a freshly fetched live copy of the page. Transient, never
// persisted.
type CorroborationResult struct {
	AddedHitRate   float64 `json:"added_hit_rate"`   // Fraction of added lines found live
	RemovedHitRate float64 `json:"removed_hit_rate"` // Fraction of removed lines found live
	FetchFailed    bool    `json:"fetch_failed"`
	FetchError     string  `json:"fetch_error,omitempty"`
}

// Cause explains why a pair's local and indexed bodies diverged.
type Cause string

const (
	// CauseWebsiteChanged: live text matches local; the source moved on
	// and the index is stale.
	CauseWebsiteChanged Cause = "website_changed"
	// CauseScraperIssue: live text still matches indexed; the latest
	// scrape likely mis-extracted content.
	CauseScraperIssue Cause = "scraper_issue"
	// CauseMissingInIndex: no indexed counterpart exists at all.
	CauseMissingInIndex Cause = "missing_in_index"
	// CauseMixedOrInconclusive: corroboration does not cleanly favor
	// either side, or the live page was unreachable.
	CauseMixedOrInconclusive Cause = "mixed_or_inconclusive"
)

// ImpactBucket is the coarse severity bucket for triage ordering.
type ImpactBucket string

const (
	ImpactHigh   ImpactBucket = "HIGH"
	ImpactMedium ImpactBucket = "MEDIUM"
	ImpactLow    ImpactBucket = "LOW"
)

// ImpactScore combines keyword-family signals with diff magnitude.
type ImpactScore struct {
	Score    int          `json:"score"`
	Bucket   ImpactBucket `json:"bucket"`
	Families []string     `json:"families,omitempty"` // Keyword families that matched
}

// PairResult is the complete outcome for one document pair: the diff,
// the corroboration evidence, the classified cause and its impact.
type PairResult struct {
	SourceFile    string               `json:"sourcefile"`
	OriginURL     string               `json:"origin_url,omitempty"`
	Diff          DiffRecord           `json:"diff"`
	Corroboration *CorroborationResult `json:"corroboration,omitempty"`
	Cause         Cause                `json:"cause"`
	Impact        ImpactScore          `json:"impact"`
}
