// Package language provides unified language code normalization and mapping.
//
// All language-related conversions (ISO 639-1, ISO 639-2, display names,
// container tag extraction) are consolidated here so the transcription,
// probe, and CLI layers agree on what a language code means.
package language
