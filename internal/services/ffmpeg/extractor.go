package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"transcriptor/internal/services"
)

// DefaultBinary is the executable name used when none is configured.
const DefaultBinary = "ffmpeg"

// Extractor shells out to ffmpeg to demux and resample a media file's audio
// track into a mono WAV file.
type Extractor struct {
	binary        string
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// New creates an Extractor bound to the given ffmpeg binary.
func New(binary string) *Extractor {
	if strings.TrimSpace(binary) == "" {
		binary = DefaultBinary
	}
	return &Extractor{binary: binary}
}

// WithCommandRunner sets a custom command runner (for testing).
func (e *Extractor) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	e.commandRunner = runner
}

// Binary returns the configured ffmpeg executable name.
func (e *Extractor) Binary() string {
	return e.binary
}

// Request describes one extraction: the source media file, the mandatory
// output WAV path, and the quality preset to apply.
type Request struct {
	Input   string
	Output  string
	Quality Quality
}

// Extract runs ffmpeg and returns the output path on success. The output
// file is overwritten when present. A failing ffmpeg process surfaces its
// trimmed stderr in the returned error; any partial output file is left on
// disk exactly as ffmpeg left it.
func (e *Extractor) Extract(ctx context.Context, req Request) (string, error) {
	input := strings.TrimSpace(req.Input)
	if input == "" {
		return "", services.Wrap(services.ErrInputNotFound, "extraction", "validate input", "input path is empty", nil)
	}
	if _, err := os.Stat(input); err != nil {
		if os.IsNotExist(err) {
			return "", services.Wrap(services.ErrInputNotFound, "extraction", "validate input",
				fmt.Sprintf("video file not found: %s", input), nil)
		}
		return "", services.Wrap(services.ErrInputNotFound, "extraction", "validate input", input, err)
	}
	output := strings.TrimSpace(req.Output)
	if output == "" {
		return "", services.Wrap(services.ErrExtractionFailed, "extraction", "validate output", "output path is empty", nil)
	}
	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", services.Wrap(services.ErrExtractionFailed, "extraction", "create output directory", dir, err)
		}
	}

	preset, err := PresetFor(req.Quality)
	if err != nil {
		return "", err
	}

	if e.commandRunner == nil {
		if _, err := exec.LookPath(e.binary); err != nil {
			return "", services.Wrap(services.ErrDependencyMissing, "extraction", "locate ffmpeg",
				fmt.Sprintf("binary %q not found", e.binary), nil)
		}
	}

	args := buildExtractArgs(input, output, preset)
	if err := e.run(ctx, args); err != nil {
		return "", services.Wrap(services.ErrExtractionFailed, "extraction", "ffmpeg", "", err)
	}
	return output, nil
}

// buildExtractArgs constructs the ffmpeg argument list for a preset.
func buildExtractArgs(input, output string, preset Preset) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", input,
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", strconv.Itoa(preset.SampleRate),
		"-af", preset.Filters,
		"-c:a", preset.Codec,
		output,
	}
}

func (e *Extractor) run(ctx context.Context, args []string) error {
	if e.commandRunner != nil {
		return e.commandRunner(ctx, e.binary, args...)
	}
	cmd := exec.CommandContext(ctx, e.binary, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", e.binary, err, strings.TrimSpace(string(output)))
	}
	return nil
}
