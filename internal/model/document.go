package model

import "time"

// LegalDocument is one source unit of the corpus (e.g. a CPR Part or a
// Practice Direction page), reduced to normalized lines.
type LegalDocument struct {
	SourceFile string    `json:"sourcefile"`           // Human title, e.g. "Part 31"
	SourcePage string    `json:"sourcepage,omitempty"` // Section/heading label
	Body       []string  `json:"body"`                 // Ordered normalized lines
	Updated    time.Time `json:"updated,omitempty"`    // Timestamp claimed by the source
	OriginURL  string    `json:"origin_url,omitempty"` // Public page the text was scraped from
}

// IsEmpty reports whether the document carries no usable text.
func (d *LegalDocument) IsEmpty() bool {
	return d == nil || len(d.Body) == 0
}

// DocumentPair joins the freshly scraped copy of a document with its
// counterpart from the search index. Indexed is nil when the index has
// no counterpart at all (a coverage gap).
type DocumentPair struct {
	SourceFile string         `json:"sourcefile"`
	Local      *LegalDocument `json:"local"`
	Indexed    *LegalDocument `json:"indexed,omitempty"`
}

// HasIndexed reports whether an indexed counterpart with text exists.
// An indexed document with an empty body is treated the same as a
// missing one: there is nothing meaningful to diff against.
func (p *DocumentPair) HasIndexed() bool {
	return p.Indexed != nil && !p.Indexed.IsEmpty()
}

// HasLocal reports whether a local copy with text exists, with the
// same empty-body rule as HasIndexed.
func (p *DocumentPair) HasLocal() bool {
	return p.Local != nil && !p.Local.IsEmpty()
}
