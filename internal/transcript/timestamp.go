package transcript

import (
	"fmt"
	"math"
)

// timestamp renders seconds as HH:MM:SS<sep>mmm with zero padding. The
// separator is "," for SRT-style output and "." for VTT. Values are rounded
// to the nearest millisecond; negatives and NaN clamp to zero.
func timestamp(seconds float64, sep string) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	msTotal := int64(seconds*1000 + 0.5)
	hours := msTotal / 3_600_000
	msTotal %= 3_600_000
	minutes := msTotal / 60_000
	msTotal %= 60_000
	secs := msTotal / 1_000
	millis := msTotal % 1_000
	return fmt.Sprintf("%02d:%02d:%02d%s%03d", hours, minutes, secs, sep, millis)
}

func srtTimestamp(seconds float64) string {
	return timestamp(seconds, ",")
}

func vttTimestamp(seconds float64) string {
	return timestamp(seconds, ".")
}
