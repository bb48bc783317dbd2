// Package transcript holds the transcript data model and its serializers.
//
// A Transcript is an ordered sequence of timed Segments plus the language
// and concatenated text the model reported. Render converts a transcript
// into one of the four supported output formats (txt, json, srt, vtt);
// ParseJSON reverses the json form. Rendering is pure, so the formats can
// be tested without touching either external tool.
package transcript
