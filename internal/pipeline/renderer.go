package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/lexdrift/lexdrift/internal/model"
)

// sampleLines caps how many removed/added lines the Markdown detail
// sections quote per document.
const sampleLines = 5

// Renderer writes reports as JSON and Markdown and prints run
// summaries.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes v as indented JSON to path.
func (r *Renderer) RenderJSON(v any, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderDriftMarkdown writes a human-readable drift report to path.
func (r *Renderer) RenderDriftMarkdown(report *model.DriftReport, path string) error {
	var b strings.Builder

	b.WriteString("# Corpus Drift Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "- Local feed: `%s`\n", report.LocalFeed)
	fmt.Fprintf(&b, "- Indexed feed: `%s`\n\n", report.IndexedFeed)

	s := report.Summary
	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "| Total | Unchanged | Website changed | Scraper issues | Missing in index | Inconclusive |\n")
	fmt.Fprintf(&b, "|------:|----------:|----------------:|---------------:|-----------------:|-------------:|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d | %d | %d |\n\n",
		s.Total, s.Unchanged, s.WebsiteChanged, s.ScraperIssues, s.MissingInIndex, s.Inconclusive)
	fmt.Fprintf(&b, "Impact: %d high, %d medium, %d low\n\n", s.HighImpact, s.MediumImpact, s.LowImpact)

	b.WriteString("## Documents\n\n")
	b.WriteString("| Source file | Cause | Impact | Score | -Lines | +Lines | Change ratio |\n")
	b.WriteString("|-------------|-------|--------|------:|-------:|-------:|-------------:|\n")
	for _, p := range report.Pairs {
		if p.Cause != model.CauseMissingInIndex && !p.Diff.HasDrift() {
			continue
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %d | %d | %d | %.3f |\n",
			p.SourceFile, p.Cause, p.Impact.Bucket, p.Impact.Score,
			len(p.Diff.RemovedLines), len(p.Diff.AddedLines), p.Diff.ChangeRatio)
	}
	b.WriteString("\n")

	for _, p := range report.Pairs {
		if !p.Diff.HasDrift() {
			continue
		}
		fmt.Fprintf(&b, "### %s\n\n", p.SourceFile)
		if p.OriginURL != "" {
			fmt.Fprintf(&b, "Origin: %s\n\n", p.OriginURL)
		}
		if len(p.Impact.Families) > 0 {
			fmt.Fprintf(&b, "Keyword families: %s\n\n", strings.Join(p.Impact.Families, ", "))
		}
		if p.Corroboration != nil {
			if p.Corroboration.FetchFailed {
				fmt.Fprintf(&b, "Live fetch failed: %s\n\n", p.Corroboration.FetchError)
			} else {
				fmt.Fprintf(&b, "Live hit rates: added %.2f, removed %.2f\n\n",
					p.Corroboration.AddedHitRate, p.Corroboration.RemovedHitRate)
			}
		}
		writeSample(&b, "Removed", p.Diff.RemovedLines)
		writeSample(&b, "Added", p.Diff.AddedLines)
	}

	if r.includeFooter {
		b.WriteString("---\n\nGenerated by lexdrift\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func writeSample(b *strings.Builder, label string, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(b, "%s (%d):\n\n", label, len(lines))
	for i, line := range lines {
		if i == sampleLines {
			fmt.Fprintf(b, "> … %d more\n", len(lines)-sampleLines)
			break
		}
		fmt.Fprintf(b, "> %s\n", line)
	}
	b.WriteString("\n")
}

// RenderAuditMarkdown writes a human-readable audit report to path.
func (r *Renderer) RenderAuditMarkdown(report *model.AuditReport, path string) error {
	var b strings.Builder

	b.WriteString("# Groundedness Audit\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))

	if len(report.Citations) > 0 {
		b.WriteString("## Citations\n\n")
		for _, c := range report.Citations {
			fmt.Fprintf(&b, "- %s (%s)\n", c.NormalizedRef, c.Kind)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Verdicts\n\n")
	b.WriteString("| Marker | Supported | Method | Claim |\n")
	b.WriteString("|-------:|-----------|--------|-------|\n")
	for _, v := range report.Verdicts {
		fmt.Fprintf(&b, "| [%d] | %t | %s | %s |\n", v.Marker, v.Supported, v.Method, v.Claim)
	}
	b.WriteString("\n")

	if report.Unsupported > 0 {
		fmt.Fprintf(&b, "## Unsupported claims (%d)\n\n", report.Unsupported)
		for _, v := range report.Verdicts {
			if v.Supported {
				continue
			}
			fmt.Fprintf(&b, "- [%d] %s\n  - %s\n", v.Marker, v.Claim, v.Reason)
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\nGenerated by lexdrift\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderDriftSummary prints the verification outcome to stdout.
func (r *Renderer) RenderDriftSummary(report *model.DriftReport) {
	s := report.Summary
	fmt.Printf("\nVerified %d documents: %d unchanged, %d website changed, %d scraper issues, %d missing in index, %d inconclusive\n",
		s.Total, s.Unchanged, s.WebsiteChanged, s.ScraperIssues, s.MissingInIndex, s.Inconclusive)
	if s.HighImpact > 0 {
		fmt.Printf("High impact changes: %d\n", s.HighImpact)
	}
}

// RenderAuditSummary prints the audit outcome to stdout.
func (r *Renderer) RenderAuditSummary(report *model.AuditReport) {
	fmt.Printf("\nAudited %d markers: %d supported, %d unsupported\n",
		len(report.Verdicts), len(report.Verdicts)-report.Unsupported, report.Unsupported)
	for _, v := range report.Verdicts {
		if !v.Supported {
			fmt.Printf("  [%d] %s\n", v.Marker, v.Reason)
		}
	}
}

// RenderDriftReport writes the requested output files and prints the
// summary.
func (p *Pipeline) RenderDriftReport(report *model.DriftReport, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}
	if mdPath != "" {
		if err := p.renderer.RenderDriftMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}
	p.renderer.RenderDriftSummary(report)
	return nil
}

// RenderAuditReport writes the requested output files and prints the
// summary.
func (p *Pipeline) RenderAuditReport(report *model.AuditReport, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}
	if mdPath != "" {
		if err := p.renderer.RenderAuditMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}
	p.renderer.RenderAuditSummary(report)
	return nil
}
