package pipeline

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Report summarizes one pipeline run for the CLI and the logs.
type Report struct {
	Input      string
	Audio      string
	Transcript string
	Language   string
	Duration   float64
	Segments   int
	Device     string
	Elapsed    time.Duration
}

// Summary renders the report as aligned label/value lines, omitting fields
// the run did not produce (audio-only runs have no transcript).
func (r Report) Summary() string {
	var b strings.Builder
	write := func(label, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		fmt.Fprintf(&b, "%-12s%s\n", label+":", value)
	}

	write("Input", r.Input)
	write("Audio", r.Audio)
	write("Transcript", r.Transcript)
	write("Language", r.Language)
	if r.Duration > 0 {
		write("Duration", formatSeconds(r.Duration))
	}
	if r.Segments > 0 {
		write("Segments", strconv.Itoa(r.Segments))
	}
	write("Device", r.Device)
	if r.Elapsed > 0 {
		write("Elapsed", r.Elapsed.Round(time.Millisecond).String())
	}
	return b.String()
}

// formatSeconds renders a duration in seconds as a clock-style string for
// audible lengths and plain seconds for short ones.
func formatSeconds(seconds float64) string {
	if seconds < 60 {
		return fmt.Sprintf("%.1fs", seconds)
	}
	total := int64(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	if hours > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", hours, minutes, secs)
	}
	return fmt.Sprintf("%dm%02ds", minutes, secs)
}
