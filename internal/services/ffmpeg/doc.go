// Package ffmpeg wraps the external media tool that extracts audio tracks.
//
// The Extractor builds a quality-dependent ffmpeg invocation (sample rate,
// bit depth, filter chain) and writes a mono WAV file. All heavy lifting
// (codec handling, resampling DSP) happens inside ffmpeg itself; this
// package only constructs arguments and classifies failures.
package ffmpeg
