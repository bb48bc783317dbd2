package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDependencyMissing   = errors.New("dependency missing")
	ErrInputNotFound       = errors.New("input not found")
	ErrExtractionFailed    = errors.New("extraction failed")
	ErrTranscriptionFailed = errors.New("transcription failed")
	ErrUnsupportedFormat   = errors.New("unsupported format")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrExtractionFailed
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ExitCode maps a pipeline error to the process exit status. Usage mistakes
// (bad format, missing input) exit 2 so scripts can tell them apart from
// runtime failures in the external tools.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrUnsupportedFormat), errors.Is(err, ErrInputNotFound):
		return 2
	default:
		return 1
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
