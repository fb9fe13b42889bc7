// Package entities extracts medical entity mentions from normalised
// text using fixed patterns. Extraction is best-effort: a pattern pass,
// not a statistical model, and no semantic correctness is guaranteed.
package entities

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/medrag-cli/internal/core/domain"
)

var (
	// Capitalised word (optionally followed by a lowercase word)
	// adjacent to a dosage or form keyword, e.g. "Metformin tablets".
	// Capitalisation is matched case-sensitively.
	medicationRe = regexp.MustCompile(`[A-Z][a-z]+(?:\s+[a-z]+)?\s+(?:tablets?|capsules?|mg|mcg|dose|injection|infusion)\b`)

	// Numeric value plus clinical unit, e.g. "120 mmHg" or "70kg".
	measurementRe = regexp.MustCompile(`\b\d+(?:\.\d+)?\s*(?:mg|ml|kg|cm|mm|mmHg|bpm)\b`)

	// Short fixed list of named conditions. The scorer counts the same
	// names as domain terms, so tagging keeps both views consistent.
	conditionRe = regexp.MustCompile(`(?i)\b(?:diabetes|hypertension|asthma|cancer|arthritis)\b`)
)

// Tagger extracts medical entities from text.
type Tagger struct{}

// New creates a tagger.
func New() *Tagger {
	return &Tagger{}
}

// Extract returns the entity mentions found in text, each category in
// order of first occurrence. Categories with no matches are empty,
// never nil, and no entry is ever an empty string.
func (t *Tagger) Extract(text string) domain.EntitySet {
	set := domain.EntitySet{
		Medications:  []string{},
		Conditions:   []string{},
		Measurements: []string{},
	}
	if text == "" {
		return set
	}

	for _, m := range medicationRe.FindAllString(text, -1) {
		if trimmed := strings.TrimSpace(m); trimmed != "" {
			set.Medications = append(set.Medications, trimmed)
		}
	}

	seen := make(map[string]bool)
	for _, c := range conditionRe.FindAllString(text, -1) {
		key := strings.ToLower(c)
		if !seen[key] {
			seen[key] = true
			set.Conditions = append(set.Conditions, key)
		}
	}

	set.Measurements = append(set.Measurements, measurementRe.FindAllString(text, -1)...)

	return set
}
