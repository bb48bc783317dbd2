package transcript

import (
	"errors"
	"testing"

	"transcriptor/internal/services"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
	}{
		{"txt", FormatText},
		{"TXT", FormatText},
		{"text", FormatText},
		{" json ", FormatJSON},
		{".srt", FormatSRT},
		{"vtt", FormatVTT},
		{".VTT", FormatVTT},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			format, err := ParseFormat(tt.input)
			if err != nil {
				t.Fatalf("ParseFormat(%q): %v", tt.input, err)
			}
			if format != tt.expected {
				t.Fatalf("ParseFormat(%q) = %q, want %q", tt.input, format, tt.expected)
			}
		})
	}
}

func TestParseFormatRejectsUnknown(t *testing.T) {
	for _, input := range []string{"", "yaml", "doc", "sub"} {
		_, err := ParseFormat(input)
		if err == nil {
			t.Fatalf("ParseFormat(%q) expected error", input)
		}
		if !errors.Is(err, services.ErrUnsupportedFormat) {
			t.Fatalf("ParseFormat(%q) = %v, want ErrUnsupportedFormat", input, err)
		}
		if services.ExitCode(err) != 2 {
			t.Fatalf("ParseFormat(%q) exit code %d, want 2", input, services.ExitCode(err))
		}
	}
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	_, err := Render(Transcript{}, Format("yaml"))
	if !errors.Is(err, services.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestFormatExtension(t *testing.T) {
	if FormatSRT.Extension() != "srt" {
		t.Fatalf("unexpected extension: %s", FormatSRT.Extension())
	}
	if len(Formats()) != 4 {
		t.Fatalf("expected 4 formats, got %d", len(Formats()))
	}
}
