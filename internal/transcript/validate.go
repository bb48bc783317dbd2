package transcript

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ParseTimestamp converts a cue timestamp back to seconds. Both the SRT
// comma and the VTT period millisecond separators are accepted.
func ParseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}

// CueCount reports how many cue blocks a rendered transcript contains.
// Blocks are separated by blank lines; the WEBVTT header does not count.
func CueCount(content string, format Format) int {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return 0
	}
	count := 0
	for _, block := range strings.Split(trimmed, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		if format == FormatVTT && block == "WEBVTT" {
			continue
		}
		count++
	}
	return count
}

// cueBounds scans "-->" lines and returns the earliest start and latest end
// in seconds. found is false when no line parsed.
func cueBounds(content string) (first, last float64, found bool) {
	for _, line := range strings.Split(content, "\n") {
		if !strings.Contains(line, "-->") {
			continue
		}
		parts := strings.Split(line, "-->")
		if len(parts) != 2 {
			continue
		}
		if start, err := ParseTimestamp(parts[0]); err == nil {
			if !found || start < first {
				first = start
			}
			found = true
		}
		if end, err := ParseTimestamp(parts[1]); err == nil && end > last {
			last = end
		}
	}
	return first, last, found
}

// Validate checks rendered transcript content for format issues. It returns
// a list of issues found; an empty slice means the content passed.
func Validate(content string, format Format) []string {
	var issues []string

	if strings.TrimSpace(content) == "" {
		issues = append(issues, "empty_transcript_file")
		return issues
	}

	switch format {
	case FormatJSON:
		if _, err := ParseJSON([]byte(content)); err != nil {
			issues = append(issues, fmt.Sprintf("invalid_json: %v", err))
		}
	case FormatSRT, FormatVTT:
		if format == FormatVTT && !strings.HasPrefix(strings.TrimSpace(content), "WEBVTT") {
			issues = append(issues, "missing_webvtt_header")
		}
		if CueCount(content, format) == 0 {
			issues = append(issues, "no_cues")
			return issues
		}
		if _, _, found := cueBounds(content); !found {
			issues = append(issues, "no_valid_timestamps")
		}
	case FormatText:
		if CueCount(content, format) == 0 {
			issues = append(issues, "no_cues")
		}
	default:
		issues = append(issues, fmt.Sprintf("unknown_format: %s", format))
	}

	return issues
}

// ValidateFile reads a transcript file and validates it against the format
// implied by its extension.
func ValidateFile(path string) []string {
	format, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return []string{fmt.Sprintf("unknown_format: %s", filepath.Ext(path))}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return []string{fmt.Sprintf("read_error: %v", err)}
	}
	return Validate(string(data), format)
}
