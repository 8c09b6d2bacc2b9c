// Package ground validates that a generated answer's citation markers
// point at evidence that actually supports the adjoining claim. A cheap
// lexical pass decides the clear cases; only inconclusive claims reach
// the optional semantic-entailment provider.
package ground

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/lexdrift/lexdrift/internal/cite"
	"github.com/lexdrift/lexdrift/internal/llm"
	"github.com/lexdrift/lexdrift/internal/model"
	"github.com/lexdrift/lexdrift/internal/normalize"
)

// markerRe matches inline numeric citation markers like "[2]".
var markerRe = regexp.MustCompile(`\[(\d+)\]`)

// figureRe matches the figures (periods, amounts, rule numbers) whose
// disagreement between claim and evidence is decisive on its own.
var figureRe = regexp.MustCompile(`£?\d+(?:\.\d+)*%?`)

// stopwords excluded from the lexical overlap computation.
var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "of": true, "to": true, "in": true,
	"and": true, "or": true, "is": true, "are": true, "be": true, "by": true,
	"for": true, "on": true, "with": true, "that": true, "this": true,
	"must": true, "may": true, "shall": true, "any": true, "not": true,
	"as": true, "at": true, "it": true, "its": true, "was": true, "were": true,
}

// Checker judges claim/evidence support.
type Checker struct {
	extractor *cite.Extractor
	provider  llm.Provider // nil disables the semantic fallback
	config    model.GroundConfig
}

// NewChecker creates a checker. extractor may be nil for the default
// pattern library; provider may be nil to run purely lexically.
func NewChecker(extractor *cite.Extractor, provider llm.Provider, config model.GroundConfig) *Checker {
	if extractor == nil {
		extractor = cite.NewExtractor(nil)
	}
	return &Checker{extractor: extractor, provider: provider, config: config}
}

// ClaimAt identifies one marker occurrence and the claim sentence it
// terminates.
type ClaimAt struct {
	Marker int    // Numeric index inside the brackets
	Claim  string // Text from the previous sentence boundary or marker
}

// ExtractClaims finds every numeric marker in the answer with the
// factual claim preceding it.
func ExtractClaims(answer string) []ClaimAt {
	var claims []ClaimAt

	locs := markerRe.FindAllStringSubmatchIndex(answer, -1)
	prevEnd := 0
	for _, loc := range locs {
		var marker int
		_, _ = fmt.Sscanf(answer[loc[2]:loc[3]], "%d", &marker)

		claim := claimBefore(answer[prevEnd:loc[0]])
		claims = append(claims, ClaimAt{Marker: marker, Claim: claim})
		prevEnd = loc[1]
	}
	return claims
}

// claimBefore trims a segment back to the text after the last sentence
// boundary, so each marker is judged against its own sentence only.
func claimBefore(segment string) string {
	cut := -1
	for _, term := range []string{". ", "! ", "? ", "\n"} {
		if idx := strings.LastIndex(segment, term); idx > cut {
			cut = idx + len(term) - 1
		}
	}
	if cut >= 0 {
		segment = segment[cut+1:]
	}
	return strings.TrimSpace(segment)
}

// Check audits one answer against its ordered evidence chunks. Chunk
// numbering is 1-based, matching the markers the answer carries. Every
// marker yields a verdict; unsupported ones are never dropped.
func (c *Checker) Check(ctx context.Context, answer string, chunks []string) []model.GroundednessVerdict {
	var verdicts []model.GroundednessVerdict

	for _, claim := range ExtractClaims(answer) {
		verdict := model.GroundednessVerdict{
			Marker: claim.Marker,
			Claim:  claim.Claim,
		}

		if claim.Marker < 1 || claim.Marker > len(chunks) {
			verdict.Supported = false
			verdict.Reason = fmt.Sprintf("marker [%d] points at no retrieved chunk", claim.Marker)
			verdict.Method = "lexical"
			verdicts = append(verdicts, verdict)
			continue
		}
		chunk := chunks[claim.Marker-1]
		verdict.EvidenceChunk = chunk

		if claim.Claim == "" {
			verdict.Supported = false
			verdict.Reason = "marker has no preceding claim text"
			verdict.Method = "lexical"
			verdicts = append(verdicts, verdict)
			continue
		}

		verdicts = append(verdicts, c.judge(ctx, verdict, claim.Claim, chunk))
	}

	return verdicts
}

// lexicalOutcome is the three-way result of the cheap pass.
type lexicalOutcome int

const (
	lexSupported lexicalOutcome = iota
	lexUnsupported
	lexInconclusive
)

func (c *Checker) judge(ctx context.Context, verdict model.GroundednessVerdict, claim, chunk string) model.GroundednessVerdict {
	outcome, reason := c.lexicalPass(claim, chunk)
	verdict.Method = "lexical"

	switch outcome {
	case lexSupported:
		verdict.Supported = true
		return verdict
	case lexUnsupported:
		verdict.Supported = false
		verdict.Reason = reason
		return verdict
	}

	// Inconclusive: escalate if a provider is configured.
	if c.provider != nil {
		resp, err := c.provider.Entail(ctx, llm.EntailmentRequest{Claim: claim, Evidence: chunk})
		if err == nil {
			verdict.Method = "semantic"
			verdict.Supported = resp.Supported
			verdict.Reason = resp.Reason
			return verdict
		}
		reason = fmt.Sprintf("lexical pass inconclusive; entailment check failed: %v", err)
	} else {
		reason = "lexical pass inconclusive and no entailment provider configured"
	}

	// Conservative default: a claim we cannot verify is reported as
	// unsupported, with the reason explaining why.
	verdict.Supported = false
	verdict.Reason = reason
	return verdict
}

// lexicalPass applies three cheap signals in order: conflicting
// figures (decisive rejection), citation-kind agreement (decisive
// support), then content-word overlap.
func (c *Checker) lexicalPass(claim, chunk string) (lexicalOutcome, string) {
	if conflict, detail := figuresConflict(claim, chunk); conflict {
		return lexUnsupported, detail
	}

	// A citation in the claim whose normalized reference also appears
	// in the chunk ties the two texts together strongly.
	claimCites := c.extractor.Extract(claim)
	if len(claimCites) > 0 {
		chunkRefs := make(map[string]bool)
		for _, cc := range c.extractor.Extract(chunk) {
			chunkRefs[cc.NormalizedRef] = true
		}
		matched := false
		for _, cc := range claimCites {
			if chunkRefs[cc.NormalizedRef] {
				matched = true
				break
			}
		}
		if matched && overlapRatio(claim, chunk) >= c.config.InconclusiveOverlap {
			return lexSupported, ""
		}
	}

	overlap := overlapRatio(claim, chunk)
	switch {
	case overlap >= c.config.SupportOverlap:
		return lexSupported, ""
	case overlap < c.config.InconclusiveOverlap:
		return lexUnsupported, fmt.Sprintf(
			"claim shares too little text with the cited chunk (overlap %.2f)", overlap)
	default:
		return lexInconclusive, ""
	}
}

// figuresConflict reports whether the claim asserts a figure the chunk
// contradicts: the claim's figure is absent from the chunk while the
// chunk carries figures of its own.
func figuresConflict(claim, chunk string) (bool, string) {
	claimFigs := figureRe.FindAllString(normalize.Line(claim), -1)
	if len(claimFigs) == 0 {
		return false, ""
	}
	chunkFigs := figureRe.FindAllString(normalize.Line(chunk), -1)
	if len(chunkFigs) == 0 {
		return false, ""
	}

	chunkSet := make(map[string]bool, len(chunkFigs))
	for _, f := range chunkFigs {
		chunkSet[f] = true
	}
	for _, f := range claimFigs {
		if !chunkSet[f] {
			return true, fmt.Sprintf(
				"claim states %q but the cited chunk gives %s", f, strings.Join(chunkFigs, ", "))
		}
	}
	return false, ""
}

// overlapRatio is the fraction of the claim's content words present in
// the chunk, both sides normalized for case and punctuation.
func overlapRatio(claim, chunk string) float64 {
	claimWords := contentWords(claim)
	if len(claimWords) == 0 {
		return 0
	}

	chunkSet := make(map[string]bool)
	for _, w := range contentWords(chunk) {
		chunkSet[w] = true
	}

	hits := 0
	for _, w := range claimWords {
		if chunkSet[w] {
			hits++
		}
	}
	return float64(hits) / float64(len(claimWords))
}

func contentWords(s string) []string {
	var words []string
	for _, w := range strings.Fields(normalize.Key(s)) {
		if !stopwords[w] {
			words = append(words, w)
		}
	}
	return words
}
