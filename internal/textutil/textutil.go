package textutil

import "strings"

// punctuationReplacer removes the stray space speech models sometimes emit
// before sentence punctuation.
var punctuationReplacer = strings.NewReplacer(
	" ,", ",",
	" .", ".",
	" !", "!",
	" ?", "?",
	" ;", ";",
	" :", ":",
)

// NormalizeWhitespace collapses runs of whitespace to single spaces and trims
// leading/trailing whitespace.
func NormalizeWhitespace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// NormalizeText cleans transcribed text: whitespace runs collapse to single
// spaces and spaces before punctuation are dropped.
func NormalizeText(value string) string {
	normalized := NormalizeWhitespace(value)
	if normalized == "" {
		return ""
	}
	return punctuationReplacer.Replace(normalized)
}

// Ternary is a generic conditional helper that returns a if cond is true, b otherwise.
func Ternary[T any](cond bool, a, b T) T {
	if cond {
		return a
	}
	return b
}
