package cite

import (
	"sort"

	"github.com/lexdrift/lexdrift/internal/model"
)

// Extractor applies a pattern library to text and returns typed,
// non-overlapping citation spans.
type Extractor struct {
	library *Library
}

// NewExtractor creates an extractor over the given library.
func NewExtractor(library *Library) *Extractor {
	if library == nil {
		library = DefaultLibrary()
	}
	return &Extractor{library: library}
}

// candidate is one raw pattern hit before overlap resolution.
type candidate struct {
	kind     model.CitationKind
	start    int
	end      int
	raw      string
	ref      string
	priority int
}

// Extract returns all citations in the text, ordered by position. When
// candidate spans overlap, the longer match wins; equal spans fall back
// to the library's priority order. A Practice Direction reference that
// contains a rule-shaped number therefore never also emits a standalone
// rule citation for the same span.
func (e *Extractor) Extract(text string) []model.Citation {
	var candidates []candidate

	for _, p := range e.library.Patterns() {
		for _, loc := range p.Re.FindAllStringSubmatchIndex(text, -1) {
			groups := expandGroups(text, loc)
			ref := p.Normalize(groups)
			if ref == "" {
				continue
			}
			candidates = append(candidates, candidate{
				kind:     p.Kind,
				start:    loc[0],
				end:      loc[1],
				raw:      text[loc[0]:loc[1]],
				ref:      ref,
				priority: e.library.priority(p.Kind),
			})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.start != b.start {
			return a.start < b.start
		}
		if a.end != b.end {
			return a.end > b.end // longer match first
		}
		return a.priority < b.priority
	})

	var citations []model.Citation
	lastEnd := -1
	for _, c := range candidates {
		if c.start < lastEnd {
			continue
		}
		citations = append(citations, model.Citation{
			Kind:          c.kind,
			RawText:       c.raw,
			NormalizedRef: c.ref,
			SourceSpan:    model.Span{Start: c.start, End: c.end},
		})
		lastEnd = c.end
	}

	return citations
}

// expandGroups converts a submatch index slice into group strings, with
// "" for unmatched optional groups.
func expandGroups(text string, loc []int) []string {
	groups := make([]string, len(loc)/2)
	for i := range groups {
		start, end := loc[2*i], loc[2*i+1]
		if start < 0 {
			continue
		}
		groups[i] = text[start:end]
	}
	return groups
}
