// Package pipeline sequences the extraction, transcription, and
// serialization stages for one media file and owns the model pool shared
// across runs. Path derivation, the per-audio run lock, and the run report
// live here; the stage implementations live under services.
package pipeline
