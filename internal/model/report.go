package model

import "time"

// DriftReport is the complete output of one verification run.
type DriftReport struct {
	GeneratedAt time.Time    `json:"generated_at"`
	LocalFeed   string       `json:"local_feed"`
	IndexedFeed string       `json:"indexed_feed"`
	Pairs       []PairResult `json:"pairs"`
	Summary     DriftSummary `json:"summary"`
}

// DriftSummary gives the per-cause and per-bucket counts used for
// triage ordering.
type DriftSummary struct {
	Total          int `json:"total"`
	WebsiteChanged int `json:"website_changed"`
	ScraperIssues  int `json:"scraper_issues"`
	MissingInIndex int `json:"missing_in_index"`
	Inconclusive   int `json:"inconclusive"`
	Unchanged      int `json:"unchanged"`
	HighImpact     int `json:"high_impact"`
	MediumImpact   int `json:"medium_impact"`
	LowImpact      int `json:"low_impact"`
}

// Summarize recomputes the summary from the pair results. Pairs without
// drift are counted as unchanged and excluded from cause tallies.
func (r *DriftReport) Summarize() {
	s := DriftSummary{Total: len(r.Pairs)}
	for _, p := range r.Pairs {
		if p.Cause != CauseMissingInIndex && !p.Diff.HasDrift() {
			s.Unchanged++
			continue
		}
		switch p.Cause {
		case CauseWebsiteChanged:
			s.WebsiteChanged++
		case CauseScraperIssue:
			s.ScraperIssues++
		case CauseMissingInIndex:
			s.MissingInIndex++
		case CauseMixedOrInconclusive:
			s.Inconclusive++
		}
		switch p.Impact.Bucket {
		case ImpactHigh:
			s.HighImpact++
		case ImpactMedium:
			s.MediumImpact++
		case ImpactLow:
			s.LowImpact++
		}
	}
	r.Summary = s
}

// AuditReport is the output of auditing one generated answer against
// its retrieved chunks.
type AuditReport struct {
	GeneratedAt time.Time             `json:"generated_at"`
	Answer      string                `json:"answer"`
	Citations   []Citation            `json:"citations,omitempty"` // Legal references found in the answer
	Verdicts    []GroundednessVerdict `json:"verdicts"`
	Unsupported int                   `json:"unsupported"` // Candidate hallucinations, never dropped
}
