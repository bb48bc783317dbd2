package transcript

import "strings"

// Segment is a timed span of transcribed text. Offsets are seconds from the
// start of the audio.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Transcript is the full result of one transcription: the concatenated text,
// the language the model settled on, and the ordered segment sequence.
// Segments are immutable once produced; rendering never modifies them.
type Transcript struct {
	Text                string    `json:"text"`
	Language            string    `json:"language"`
	LanguageProbability float64   `json:"language_probability,omitempty"`
	Segments            []Segment `json:"segments"`
}

// Duration returns the end offset of the last segment, which is the best
// available estimate of the spoken duration.
func (t Transcript) Duration() float64 {
	if len(t.Segments) == 0 {
		return 0
	}
	return t.Segments[len(t.Segments)-1].End
}

// SegmentCount returns the number of segments.
func (t Transcript) SegmentCount() int {
	return len(t.Segments)
}

// JoinedText concatenates the segment texts with single spaces, skipping
// blank segments. Used when the model reports no top-level text.
func (t Transcript) JoinedText() string {
	parts := make([]string, 0, len(t.Segments))
	for _, seg := range t.Segments {
		if text := strings.TrimSpace(seg.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}
