package transcript

import (
	"encoding/json"
	"fmt"
	"os"
)

// ParseJSON decodes a transcript document produced by Render with FormatJSON.
// It also accepts the richer JSON the transcription model writes, since that
// document carries the same text/language/segments keys plus extras that are
// ignored here.
func ParseJSON(data []byte) (Transcript, error) {
	var t Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		return Transcript{}, fmt.Errorf("parse transcript json: %w", err)
	}
	return t, nil
}

// LoadJSON reads and decodes a transcript JSON file.
func LoadJSON(path string) (Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Transcript{}, fmt.Errorf("read transcript json: %w", err)
	}
	return ParseJSON(data)
}
