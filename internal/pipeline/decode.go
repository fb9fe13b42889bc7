package pipeline

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// DecodeText converts raw bytes to a string at the ingestion boundary.
// Valid UTF-8 passes through unchanged; anything else is decoded as
// Latin-1. Latin-1 maps every byte to a code point, so the fallback is
// total and the result is always valid UTF-8.
func DecodeText(content []byte) string {
	if utf8.Valid(content) {
		return string(content)
	}

	decoded, _ := charmap.ISO8859_1.NewDecoder().Bytes(content)
	return string(decoded)
}
