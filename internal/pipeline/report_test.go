package pipeline

import (
	"strings"
	"testing"
	"time"
)

func TestReportSummaryFullRun(t *testing.T) {
	report := Report{
		Input:      "/media/lecture.mp4",
		Audio:      "/media/lecture_audio.wav",
		Transcript: "/media/lecture_audio_transcript.srt",
		Language:   "tr",
		Duration:   3725.4,
		Segments:   482,
		Device:     "cpu",
		Elapsed:    4*time.Minute + 12*time.Second,
	}

	summary := report.Summary()
	for _, want := range []string{
		"/media/lecture.mp4",
		"/media/lecture_audio.wav",
		"/media/lecture_audio_transcript.srt",
		"tr",
		"1h02m05s",
		"482",
		"cpu",
		"4m12s",
	} {
		if !strings.Contains(summary, want) {
			t.Fatalf("summary missing %q:\n%s", want, summary)
		}
	}
}

func TestReportSummaryAudioOnly(t *testing.T) {
	report := Report{
		Input:   "/media/lecture.mp4",
		Audio:   "/media/lecture_audio.wav",
		Elapsed: 3 * time.Second,
	}

	summary := report.Summary()
	if strings.Contains(summary, "Transcript:") {
		t.Fatalf("audio-only summary must omit the transcript line:\n%s", summary)
	}
	if strings.Contains(summary, "Segments:") {
		t.Fatalf("audio-only summary must omit the segments line:\n%s", summary)
	}
	if !strings.Contains(summary, "lecture_audio.wav") {
		t.Fatalf("summary missing audio path:\n%s", summary)
	}
}

func TestFormatSeconds(t *testing.T) {
	for _, tt := range []struct {
		seconds float64
		want    string
	}{
		{12.34, "12.3s"},
		{61, "1m01s"},
		{3725.4, "1h02m05s"},
	} {
		if got := formatSeconds(tt.seconds); got != tt.want {
			t.Fatalf("formatSeconds(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
