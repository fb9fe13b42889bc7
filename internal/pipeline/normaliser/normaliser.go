// Package normaliser cleans raw medical text before entity extraction
// and chunking.
package normaliser

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Correction is a pattern-based character substitution applied to
// repair recurring OCR artefacts. Corrections are heuristic and can
// corrupt legitimate text, so the set is configuration, not a fixed
// part of the algorithm.
type Correction struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// DefaultCorrections repairs common digit/letter confusions seen in
// scanned clinical documents. Deliberately conservative: each pattern
// anchors on a digit so ordinary prose is left alone.
var DefaultCorrections = []Correction{
	// lowercase l misread for 1 in front of digits: "l0 mg" -> "10 mg"
	{Pattern: regexp.MustCompile(`\bl([0-9])`), Replacement: "1$1"},
	// capital O misread for 0 after digits: "12O" -> "120"
	{Pattern: regexp.MustCompile(`([0-9])O`), Replacement: "${1}0"},
}

// abbreviations expands dosage shorthand to its full phrase. Matched
// case-insensitively as whole tokens; the trailing period of the
// abbreviation is kept so sentence boundaries survive.
var abbreviations = []struct {
	pattern *regexp.Regexp
	full    string
}{
	{regexp.MustCompile(`(?i)\bb\.i\.d\b`), "twice daily"},
	{regexp.MustCompile(`(?i)\bt\.i\.d\b`), "three times daily"},
	{regexp.MustCompile(`(?i)\bq\.i\.d\b`), "four times daily"},
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	// The trailing \s? keeps whitespace collapsed after a URL is cut
	// out mid-sentence, which keeps Clean idempotent.
	urlRe = regexp.MustCompile(`https?://\S+\s?`)
)

// Normaliser cleans text deterministically and idempotently:
// Clean(Clean(x)) == Clean(x) for any input.
type Normaliser struct {
	corrections []Correction
}

// Option configures the normaliser.
type Option func(*Normaliser)

// WithCorrections replaces the OCR correction set.
func WithCorrections(corrections []Correction) Option {
	return func(n *Normaliser) {
		n.corrections = corrections
	}
}

// New creates a normaliser with the default correction set.
func New(opts ...Option) *Normaliser {
	n := &Normaliser{corrections: DefaultCorrections}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Clean normalises raw text. Steps, in order, over the whole string:
// unicode NFKC normalisation, OCR corrections, whitespace collapse,
// abbreviation expansion, URL removal, trim. Empty input maps to the
// empty string.
func (n *Normaliser) Clean(text string) string {
	if text == "" {
		return ""
	}

	text = norm.NFKC.String(text)

	// Corrections run to a fixpoint: runs of artefacts ("1OO") need a
	// second pass, and Clean must stay idempotent.
	for _, c := range n.corrections {
		for {
			replaced := c.Pattern.ReplaceAllString(text, c.Replacement)
			if replaced == text {
				break
			}
			text = replaced
		}
	}

	text = whitespaceRe.ReplaceAllString(text, " ")

	for _, a := range abbreviations {
		text = a.pattern.ReplaceAllString(text, a.full)
	}

	text = urlRe.ReplaceAllString(text, "")

	return strings.TrimSpace(text)
}
