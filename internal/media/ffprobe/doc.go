// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// This package has no transcriptor-specific dependencies and could be
// extracted as a standalone library.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual audio/video/subtitle stream properties plus tags
//   - Format: container-level metadata (duration, size, bitrate)
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns parsed Result
//
// Helper methods on Result answer the questions the pipeline asks before
// extraction: stream counts, audio presence, duration, and size.
package ffprobe
