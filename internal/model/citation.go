package model

// CitationKind categorizes an extracted legal reference.
type CitationKind string

const (
	KindStatute           CitationKind = "statute"           // Act name + year + section
	KindCPRRule           CitationKind = "cprRule"           // CPR part and sub-rule
	KindPracticeDirection CitationKind = "practiceDirection" // PD number and paragraph
	KindAnnex             CitationKind = "annex"             // Annex/Appendix/Guide section
	KindCaseLaw           CitationKind = "caseLaw"           // Party v Party, neutral citation
)

// Span is a half-open [Start, End) byte-offset range in the originating text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Citation is a typed legal reference found in text. NormalizedRef is
// the canonical rendering (e.g. "CPR 63.1(3)", "PD 57AC para 3.4") used
// to compare citations across documents.
type Citation struct {
	Kind          CitationKind `json:"kind"`
	RawText       string       `json:"raw_text"`
	NormalizedRef string       `json:"normalized_ref"`
	SourceSpan    Span         `json:"source_span"`
}

// GroundednessVerdict records whether one citation marker in a
// generated answer is actually supported by the chunk it points to.
type GroundednessVerdict struct {
	Marker        int    `json:"marker"`           // Numeric index from the answer, e.g. 2 for "[2]"
	Claim         string `json:"claim"`            // Sentence text the marker terminates
	EvidenceChunk string `json:"evidence_chunk"`   // Retrieved text the marker points to
	Supported     bool   `json:"supported"`        // Final verdict after both passes
	Reason        string `json:"reason,omitempty"` // Populated when unsupported
	Method        string `json:"method,omitempty"` // "lexical" or "semantic"
}
