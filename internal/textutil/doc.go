// Package textutil provides text cleanup helpers for transcribed speech.
//
// Speech models pad segment text with leading whitespace and occasionally
// leave a space before sentence punctuation; NormalizeText fixes both so
// serialized transcripts read naturally. Normalization happens once, when
// model output is parsed, keeping the serializers pure.
package textutil
