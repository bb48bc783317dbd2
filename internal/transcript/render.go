package transcript

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"transcriptor/internal/services"
)

// Render serializes the transcript in the requested format. Rendering is a
// pure function: the transcript is never modified and repeated calls produce
// identical output.
func Render(t Transcript, format Format) (string, error) {
	switch format {
	case FormatText:
		return renderText(t), nil
	case FormatSRT:
		return renderSRT(t), nil
	case FormatVTT:
		return renderVTT(t), nil
	case FormatJSON:
		return renderJSON(t)
	}
	return "", services.Wrap(services.ErrUnsupportedFormat, "serialize", "render",
		fmt.Sprintf("format %q is not one of txt, json, srt, vtt", string(format)), nil)
}

// renderText emits timestamped entries without index lines. Each entry is a
// timestamp line, the segment text, then a blank line.
func renderText(t Transcript) string {
	var sb strings.Builder
	for _, seg := range t.Segments {
		sb.WriteString(fmt.Sprintf("%s --> %s\n", srtTimestamp(seg.Start), srtTimestamp(seg.End)))
		sb.WriteString(strings.TrimSpace(seg.Text))
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// renderSRT emits SubRip cues: a 1-based index line, the timestamp line, the
// text, then a blank line.
func renderSRT(t Transcript) string {
	var sb strings.Builder
	for i, seg := range t.Segments {
		sb.WriteString(fmt.Sprintf("%d\n", i+1))
		sb.WriteString(fmt.Sprintf("%s --> %s\n", srtTimestamp(seg.Start), srtTimestamp(seg.End)))
		sb.WriteString(strings.TrimSpace(seg.Text))
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// renderVTT emits WebVTT: the literal WEBVTT header and a blank line, then
// dot-separator cues without index lines. The header is present even when
// there are no segments.
func renderVTT(t Transcript) string {
	var sb strings.Builder
	sb.WriteString("WEBVTT\n\n")
	for _, seg := range t.Segments {
		sb.WriteString(fmt.Sprintf("%s --> %s\n", vttTimestamp(seg.Start), vttTimestamp(seg.End)))
		sb.WriteString(strings.TrimSpace(seg.Text))
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// renderJSON emits the full document: concatenated text, language, and the
// segment array with numeric offsets, indented for readability.
func renderJSON(t Transcript) (string, error) {
	doc := t
	if doc.Segments == nil {
		doc.Segments = []Segment{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("render json: %w", err)
	}
	return buf.String(), nil
}
