package transcript

import (
	"fmt"
	"strings"

	"transcriptor/internal/services"
)

// Format identifies one of the supported transcript output formats.
type Format string

const (
	FormatText Format = "txt"
	FormatJSON Format = "json"
	FormatSRT  Format = "srt"
	FormatVTT  Format = "vtt"
)

// Formats lists the supported formats in display order.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatSRT, FormatVTT}
}

// ParseFormat resolves a user-supplied format name. The match is
// case-insensitive and tolerates a leading dot so file extensions work too.
func ParseFormat(value string) (Format, error) {
	cleaned := strings.ToLower(strings.TrimSpace(value))
	cleaned = strings.TrimPrefix(cleaned, ".")
	switch Format(cleaned) {
	case FormatText, FormatJSON, FormatSRT, FormatVTT:
		return Format(cleaned), nil
	case "text":
		return FormatText, nil
	}
	return "", services.Wrap(services.ErrUnsupportedFormat, "serialize", "parse format",
		fmt.Sprintf("format %q is not one of txt, json, srt, vtt", strings.TrimSpace(value)), nil)
}

// Extension returns the file extension for the format, without the dot.
func (f Format) Extension() string {
	return string(f)
}

// String implements fmt.Stringer.
func (f Format) String() string {
	return string(f)
}
