// Package normalize canonicalizes legal text into a stable line
// representation. Local, indexed and live-fetched text must all pass
// through the same normalization or the classifier's corroboration
// comparisons fall apart.
package normalize

import (
	"strings"
	"unicode"
)

// charFolds maps Unicode typography back to the ASCII the source
// documents originally used. Re-scrapes flip between the two, and a
// curly quote must never count as a changed line.
var charFolds = map[rune]string{
	'\u2018': "'",   // left single quote
	'\u2019': "'",   // right single quote
	'\u201a': "'",   // single low quote
	'\u201c': `"`,   // left double quote
	'\u201d': `"`,   // right double quote
	'\u201e': `"`,   // double low quote
	'\u2013': "-",   // en dash
	'\u2014': "-",   // em dash
	'\u2212': "-",   // minus sign
	'\u00a0': " ",   // no-break space
	'\u2009': " ",   // thin space
	'\u200b': "",    // zero-width space
	'\u00ad': "",    // soft hyphen
	'\ufeff': "",    // byte order mark
	'\u2026': "...", // ellipsis
}

// Text folds typography and strips control characters from a single
// string without touching line structure. Idempotent.
func Text(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if fold, ok := charFolds[r]; ok {
			b.WriteString(fold)
			continue
		}
		if r != '\n' && r != '\t' && unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Line normalizes one line: character folding, tab-to-space, interior
// whitespace collapsed to single spaces, ends trimmed. Idempotent.
func Line(s string) string {
	s = Text(s)
	return strings.Join(strings.Fields(s), " ")
}

// Lines splits raw text into normalized, non-empty lines. Applying
// Lines to its own joined output returns the same lines.
func Lines(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")

	var out []string
	for _, line := range strings.Split(raw, "\n") {
		if n := Line(line); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// Key reduces a line to a comparison key with punctuation and case
// slack: lowercased, punctuation dropped, whitespace collapsed. Used
// when checking whether a disputed diff line appears in live text,
// where exact-byte matching is too brittle.
func Key(s string) string {
	s = strings.ToLower(Line(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
