// Package util provides string normalization helpers shared by the map client.
package util

import (
	"html"
	"strings"
)

// CollapseNewlines replaces carriage-return/newline sequences with single
// spaces. Pair sequences are handled before lone characters so "\r\n" maps
// to one space, not two.
func CollapseNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}

// DecodeEntities replaces HTML entities with their literal characters,
// e.g. "Caf&eacute;" becomes "Café".
func DecodeEntities(s string) string {
	return html.UnescapeString(s)
}

// QuoteFilter doubles double-quotes into paired single-quotes so field
// values survive the form transport without breaking the server-side decode.
func QuoteFilter(s string) string {
	return strings.ReplaceAll(s, `"`, `''`)
}

// NormalizeText applies the full text-field normalization chain:
// trim, newline collapse, entity decode.
func NormalizeText(s string) string {
	return DecodeEntities(CollapseNewlines(strings.TrimSpace(s)))
}
