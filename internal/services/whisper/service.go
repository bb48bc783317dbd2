package whisper

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"transcriptor/internal/language"
	"transcriptor/internal/logging"
	"transcriptor/internal/services"
	"transcriptor/internal/textutil"
	"transcriptor/internal/transcript"
)

// DefaultBinary is the executable name used when none is configured.
const DefaultBinary = "whisper"

// Service invokes the external recognition model over its CLI and parses
// the JSON it writes back into a Transcript.
type Service struct {
	binary        string
	opts          Options
	logger        *slog.Logger
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a Service bound to the given whisper binary.
func NewService(binary string, opts Options) *Service {
	if strings.TrimSpace(binary) == "" {
		binary = DefaultBinary
	}
	return &Service{binary: binary, opts: opts, logger: logging.NewNop()}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// WithLogger routes the service's diagnostics to the given logger.
func (s *Service) WithLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Binary returns the configured whisper executable name.
func (s *Service) Binary() string {
	return s.binary
}

// Request describes one transcription: the audio file, the model size, an
// optional language hint, and the inference device. An empty device means
// CPU; callers wanting acceleration resolve the device beforehand via
// Prober.Resolve.
type Request struct {
	Audio    string
	Model    ModelSize
	Language string
	Device   Device
}

// Transcribe runs the model on the audio file and returns the parsed
// transcript. Segments come back in the model's emission order; a
// non-chronological sequence is logged and passed through unchanged. The
// call blocks until inference finishes and is never retried.
func (s *Service) Transcribe(ctx context.Context, req Request) (transcript.Transcript, error) {
	audio := strings.TrimSpace(req.Audio)
	if audio == "" {
		return transcript.Transcript{}, services.Wrap(services.ErrInputNotFound, "transcription", "validate input", "audio path is empty", nil)
	}
	if _, err := os.Stat(audio); err != nil {
		if os.IsNotExist(err) {
			return transcript.Transcript{}, services.Wrap(services.ErrInputNotFound, "transcription", "validate input",
				fmt.Sprintf("audio file not found: %s", audio), nil)
		}
		return transcript.Transcript{}, services.Wrap(services.ErrInputNotFound, "transcription", "validate input", audio, err)
	}

	size, err := ParseModelSize(string(req.Model))
	if err != nil {
		return transcript.Transcript{}, err
	}

	lang := strings.TrimSpace(req.Language)
	if lang != "" {
		normalized, err := language.Normalize(lang)
		if err != nil {
			return transcript.Transcript{}, services.Wrap(services.ErrUnsupportedFormat, "transcription", "normalize language", "", err)
		}
		lang = normalized
	}

	device := req.Device
	switch device {
	case "", DeviceAuto:
		device = DeviceCPU
	case DeviceCUDA, DeviceCPU:
	default:
		return transcript.Transcript{}, services.Wrap(services.ErrUnsupportedFormat, "transcription", "validate device",
			fmt.Sprintf("device %q is not one of auto, cuda, cpu", string(device)), nil)
	}

	if s.commandRunner == nil {
		if _, err := exec.LookPath(s.binary); err != nil {
			return transcript.Transcript{}, services.Wrap(services.ErrDependencyMissing, "transcription", "locate whisper",
				fmt.Sprintf("binary %q not found", s.binary), nil)
		}
	}

	outDir, err := os.MkdirTemp("", "transcriptor-whisper-")
	if err != nil {
		return transcript.Transcript{}, services.Wrap(services.ErrTranscriptionFailed, "transcription", "create work dir", "", err)
	}
	defer os.RemoveAll(outDir)

	args := s.buildArgs(audio, outDir, size, lang, device)
	if err := s.run(ctx, args); err != nil {
		return transcript.Transcript{}, services.Wrap(services.ErrTranscriptionFailed, "transcription", "whisper", "", err)
	}

	stem := strings.TrimSuffix(filepath.Base(audio), filepath.Ext(audio))
	jsonPath := filepath.Join(outDir, stem+".json")
	result, err := transcript.LoadJSON(jsonPath)
	if err != nil {
		return transcript.Transcript{}, services.Wrap(services.ErrTranscriptionFailed, "transcription", "read model output", "", err)
	}

	s.finish(&result, lang)
	return result, nil
}

// finish applies text normalization, fills gaps the model left, and logs
// ordering violations without repairing them.
func (s *Service) finish(result *transcript.Transcript, lang string) {
	for i := range result.Segments {
		if s.opts.NormalizeText {
			result.Segments[i].Text = textutil.NormalizeText(result.Segments[i].Text)
		}
	}
	if s.opts.NormalizeText {
		result.Text = textutil.NormalizeText(result.Text)
	}
	if strings.TrimSpace(result.Text) == "" {
		result.Text = result.JoinedText()
	}
	if result.Language == "" {
		result.Language = lang
	}

	breaks := 0
	for i := 1; i < len(result.Segments); i++ {
		if result.Segments[i].Start < result.Segments[i-1].Start {
			breaks++
		}
	}
	if breaks > 0 {
		s.logger.Warn("model emitted segments out of chronological order",
			logging.Int("violations", breaks),
			logging.Int("segments", len(result.Segments)))
	}
}

// buildArgs constructs the whisper CLI argument list.
func (s *Service) buildArgs(audio, outDir string, size ModelSize, lang string, device Device) []string {
	args := []string{
		audio,
		"--model", string(size),
		"--device", string(device),
		"--output_dir", outDir,
		"--output_format", "json",
		"--task", "transcribe",
		"--verbose", "False",
		"--fp16", "False",
		"--temperature", formatFloat(s.opts.Temperature),
		"--best_of", strconv.Itoa(s.opts.BestOf),
		"--beam_size", strconv.Itoa(s.opts.BeamSize),
		"--patience", formatFloat(s.opts.Patience),
		"--condition_on_previous_text", pyBool(s.opts.ConditionOnPreviousText),
		"--compression_ratio_threshold", formatFloat(s.opts.CompressionRatioThreshold),
		"--logprob_threshold", formatFloat(s.opts.LogprobThreshold),
		"--no_speech_threshold", formatFloat(s.opts.NoSpeechThreshold),
	}
	if lang != "" {
		args = append(args, "--language", lang)
	}
	if prompt := strings.TrimSpace(s.opts.InitialPrompt); prompt != "" {
		args = append(args, "--initial_prompt", prompt)
	}
	return args
}

func (s *Service) run(ctx context.Context, args []string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, s.binary, args...)
	}
	cmd := exec.CommandContext(ctx, s.binary, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", s.binary, err, strings.TrimSpace(string(output)))
	}
	return nil
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}

// pyBool renders a bool the way the model's CLI parser expects.
func pyBool(value bool) string {
	if value {
		return "True"
	}
	return "False"
}
