// Package cite recognizes legal references (statutes, CPR rules,
// Practice Directions, annexes, case law) in free text.
package cite

import (
	"regexp"
	"strings"

	"github.com/lexdrift/lexdrift/internal/model"
)

// Pattern couples one compiled expression with the kind it emits and a
// normalizer that renders the canonical reference from its submatches.
type Pattern struct {
	Kind      model.CitationKind
	Re        *regexp.Regexp
	Normalize func(groups []string) string
}

// Library is the full pattern set, ordered by disambiguation priority:
// when two kinds claim the same span, the earlier pattern's kind wins.
// Built once and passed by reference, never a package-level global, so
// tests can run the extractor against reduced or custom sets.
type Library struct {
	patterns []Pattern
}

// NewLibrary builds a library from an explicit pattern list. Priority
// follows list order.
func NewLibrary(patterns ...Pattern) *Library {
	return &Library{patterns: patterns}
}

// Patterns returns the ordered pattern list.
func (l *Library) Patterns() []Pattern {
	return l.patterns
}

// priority returns the index of the first pattern of the given kind,
// lower meaning stronger.
func (l *Library) priority(kind model.CitationKind) int {
	for i, p := range l.patterns {
		if p.Kind == kind {
			return i
		}
	}
	return len(l.patterns)
}

var (
	// PD 57AC, Practice Direction 6B para 3.1
	rePracticeDirection = regexp.MustCompile(
		`\b(?:PD|[Pp]ractice\s+[Dd]irection)\s+(\d+[A-Z]{0,2})(?:,?\s*para(?:graph)?s?\.?\s*(\d+(?:\.\d+)*))?`)

	// CPR 63.1(3), CPR r 31.6, CPR Part 36. Part numbers are at most
	// three digits, which keeps years ("Rules 1998") from matching.
	reCPR = regexp.MustCompile(
		`\bCPR\s+(?:r(?:ule)?\.?\s*|Part\s+)?(\d{1,3})\b((?:\.\d+)*)((?:\(\w+\))*)`)

	// rule 6.14, Rule 31.6(2)
	reRule = regexp.MustCompile(
		`\b[Rr]ules?\s+(\d{1,3})\b((?:\.\d+)*)((?:\(\w+\))*)`)

	// Annex G, Appendix 9
	reAnnex = regexp.MustCompile(
		`\b(Annex|Appendix)\s+([A-Z0-9]+)\b`)

	// Guide section 14.1, Court Guide paragraph 7.3
	reGuideSection = regexp.MustCompile(
		`\b(?:Court\s+)?Guide\s+(?:section|para(?:graph)?)s?\.?\s*(\d+(?:\.\d+)*)`)

	// s.33 of the Limitation Act 1980
	reStatuteInverted = regexp.MustCompile(
		`\b[Ss](?:ection)?s?\.?\s*(\d+[A-Z]?(?:\(\d+\))*(?:\([a-z]\))*)\s+of\s+the\s+((?:[A-Z][A-Za-z]*\s+)+Act\s+\d{4})`)

	// Limitation Act 1980, s.33 (section optional)
	reStatuteDirect = regexp.MustCompile(
		`\b((?:[A-Z][A-Za-z]*\s+)+Act\s+\d{4})(?:,?\s+[Ss](?:ection)?s?\.?\s*(\d+[A-Z]?(?:\(\d+\))*(?:\([a-z]\))*))?`)

	// Smith v Jones [2019] EWHC 2098 (Ch) (neutral citation optional)
	reCaseLaw = regexp.MustCompile(
		`\b([A-Z][\w'’\-\.]*(?:\s+(?:[A-Z&][\w'’\-\.]*|of|for|and|the))*)\s+v\.?\s+([A-Z][\w'’\-\.]*(?:\s+(?:[A-Z&][\w'’\-\.]*|of|for|and|the))*)(?:,?\s+(\[\d{4}\]\s+(?:UKSC|UKHL|UKPC|EWCA\s+(?:Civ|Crim)|EWHC)\s+\d+(?:\s+\((?:Ch|KB|QB|Admin|Comm|TCC|Pat|Fam)\))?))?`)
)

// DefaultLibrary returns the standard pattern set in the fixed priority
// order practiceDirection > cprRule > annex > statute > caseLaw. The
// order is a documented design choice for ambiguous spans, not a
// guaranteed-correct disambiguation.
func DefaultLibrary() *Library {
	return NewLibrary(
		Pattern{
			Kind: model.KindPracticeDirection,
			Re:   rePracticeDirection,
			Normalize: func(g []string) string {
				ref := "PD " + g[1]
				if g[2] != "" {
					ref += " para " + g[2]
				}
				return ref
			},
		},
		Pattern{
			Kind: model.KindCPRRule,
			Re:   reCPR,
			Normalize: func(g []string) string {
				return "CPR " + g[1] + g[2] + g[3]
			},
		},
		Pattern{
			Kind: model.KindCPRRule,
			Re:   reRule,
			Normalize: func(g []string) string {
				return "CPR " + g[1] + g[2] + g[3]
			},
		},
		Pattern{
			Kind: model.KindAnnex,
			Re:   reAnnex,
			Normalize: func(g []string) string {
				return g[1] + " " + g[2]
			},
		},
		Pattern{
			Kind: model.KindAnnex,
			Re:   reGuideSection,
			Normalize: func(g []string) string {
				return "Guide section " + g[1]
			},
		},
		Pattern{
			Kind: model.KindStatute,
			Re:   reStatuteInverted,
			Normalize: func(g []string) string {
				return statuteRef(g[2], g[1])
			},
		},
		Pattern{
			Kind: model.KindStatute,
			Re:   reStatuteDirect,
			Normalize: func(g []string) string {
				return statuteRef(g[1], g[2])
			},
		},
		Pattern{
			Kind: model.KindCaseLaw,
			Re:   reCaseLaw,
			Normalize: func(g []string) string {
				ref := collapseSpaces(g[1]) + " v " + collapseSpaces(g[2])
				if g[3] != "" {
					ref += " " + collapseSpaces(g[3])
				}
				return ref
			},
		},
	)
}

// statuteRef renders "<Act name> <year>, s.<section>". A leading "The"
// captured from sentence position is not part of the short title.
func statuteRef(name, section string) string {
	name = collapseSpaces(name)
	name = strings.TrimPrefix(name, "The ")
	if section == "" {
		return name
	}
	return name + ", s." + section
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
