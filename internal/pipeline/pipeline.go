package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"transcriptor/internal/fileutil"
	"transcriptor/internal/logging"
	"transcriptor/internal/media/ffprobe"
	"transcriptor/internal/services"
	"transcriptor/internal/services/ffmpeg"
	"transcriptor/internal/services/whisper"
	"transcriptor/internal/transcript"
)

// Extractor is the audio-extraction seam. The ffmpeg-backed implementation
// lives in services/ffmpeg; tests substitute stubs.
type Extractor interface {
	Extract(ctx context.Context, req ffmpeg.Request) (string, error)
}

// Options carries the per-run parameters. Enum-valued fields arrive already
// parsed; the zero value of a path field means "derive it".
type Options struct {
	Quality          ffmpeg.Quality
	Model            whisper.ModelSize
	Language         string
	Format           transcript.Format
	Device           whisper.Device
	AudioOutput      string
	TranscriptOutput string
	OutputDir        string
	AudioOnly        bool
	SkipExtraction   bool
}

// Pipeline sequences extraction, transcription, and serialization for one
// input file. It owns the model pool for its lifetime; a single Pipeline
// instance serves many runs but never concurrently.
type Pipeline struct {
	extractor Extractor
	pool      *whisper.Pool
	ffprobe   string
	inspect   func(ctx context.Context, binary, path string) (ffprobe.Result, error)
	logger    *slog.Logger
	newRunID  func() string
}

// New creates a Pipeline from its stage components. The pool is required
// unless every run is audio-only.
func New(extractor Extractor, pool *whisper.Pool, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{
		extractor: extractor,
		pool:      pool,
		inspect:   ffprobe.Inspect,
		logger:    logging.NewComponentLogger(logger, "pipeline"),
		newRunID:  uuid.NewString,
	}
}

// WithFFprobe enables probe-based input classification using the given
// binary. Without it classification falls back to the file extension.
func (p *Pipeline) WithFFprobe(binary string) {
	p.ffprobe = strings.TrimSpace(binary)
}

// WithInspector sets a custom probe function (for testing).
func (p *Pipeline) WithInspector(inspect func(ctx context.Context, binary, path string) (ffprobe.Result, error)) {
	p.inspect = inspect
}

// Run executes the minimal stage subset the options ask for and returns a
// Report. The first stage failure is returned verbatim; a transcription
// failure leaves the extracted audio in place so the run can be retried
// with skip-extraction.
func (p *Pipeline) Run(ctx context.Context, input string, opts Options) (*Report, error) {
	start := time.Now()

	input = strings.TrimSpace(input)
	if input == "" {
		return nil, services.Wrap(services.ErrInputNotFound, "pipeline", "validate input", "input path is empty", nil)
	}
	if _, err := os.Stat(input); err != nil {
		if os.IsNotExist(err) {
			return nil, services.Wrap(services.ErrInputNotFound, "pipeline", "validate input",
				fmt.Sprintf("input file not found: %s", input), nil)
		}
		return nil, services.Wrap(services.ErrInputNotFound, "pipeline", "validate input", input, err)
	}
	if !opts.AudioOnly {
		format, err := transcript.ParseFormat(string(opts.Format))
		if err != nil {
			return nil, err
		}
		opts.Format = format
	}

	ctx = services.WithRunID(ctx, p.newRunID())
	logger := logging.WithContext(ctx, p.logger)

	if !opts.SkipExtraction {
		isAudio, err := p.classifyInput(ctx, logger, input)
		if err != nil {
			return nil, err
		}
		if isAudio && !opts.AudioOnly {
			logger.Info("input is already audio, transcribing directly",
				logging.String(logging.FieldInput, input))
			opts.SkipExtraction = true
		}
	}

	paths := DerivePaths(input, opts)
	logger.Info("run starting",
		logging.String(logging.FieldInput, paths.Input),
		logging.String("audio", paths.Audio),
		logging.String("transcript", paths.Transcript),
		logging.Bool("audio_only", opts.AudioOnly),
		logging.Bool("skip_extraction", opts.SkipExtraction))

	lock, err := acquireRunLock(paths.Audio)
	if err != nil {
		return nil, err
	}
	defer lock.Release()

	report := &Report{Input: paths.Input, Audio: paths.Audio, Device: string(opts.Device)}

	if !opts.SkipExtraction {
		if err := p.extract(ctx, paths, opts); err != nil {
			return nil, err
		}
	}

	if opts.AudioOnly {
		report.Elapsed = time.Since(start)
		logger.Info("run completed",
			logging.String("audio", report.Audio),
			logging.Duration("elapsed", report.Elapsed))
		return report, nil
	}

	result, err := p.transcribe(ctx, paths.Audio, opts)
	if err != nil {
		return nil, err
	}

	if err := p.write(ctx, result, paths.Transcript, opts.Format); err != nil {
		return nil, err
	}

	report.Transcript = paths.Transcript
	report.Language = result.Language
	report.Duration = result.Duration()
	report.Segments = result.SegmentCount()
	report.Elapsed = time.Since(start)
	logger.Info("run completed",
		logging.String("transcript", report.Transcript),
		logging.Int("segments", report.Segments),
		logging.Duration("elapsed", report.Elapsed))
	return report, nil
}

// classifyInput decides whether the input already is audio. ffprobe is
// consulted when configured; a container with zero audio streams fails here
// rather than deep inside ffmpeg. Probe failures degrade to extension-based
// classification.
func (p *Pipeline) classifyInput(ctx context.Context, logger *slog.Logger, input string) (bool, error) {
	if p.ffprobe != "" && p.inspect != nil {
		result, err := p.inspect(ctx, p.ffprobe, input)
		if err == nil {
			if !result.HasAudio() {
				return false, services.Wrap(services.ErrExtractionFailed, "extraction", "inspect input",
					fmt.Sprintf("no audio stream in %s", input), nil)
			}
			return !result.HasVideo(), nil
		}
		logger.Debug("ffprobe classification failed, falling back to file extension",
			logging.String(logging.FieldInput, input),
			logging.Error(err))
	}
	return IsAudioPath(input), nil
}

func (p *Pipeline) extract(ctx context.Context, paths Paths, opts Options) error {
	stageCtx := services.WithStage(ctx, "extraction")
	logger := logging.WithContext(stageCtx, p.logger)
	stageStart := time.Now()

	logger.Info("stage started",
		logging.String(logging.FieldInput, paths.Input),
		logging.String("output", paths.Audio),
		logging.String("quality", string(opts.Quality)))

	if _, err := p.extractor.Extract(stageCtx, ffmpeg.Request{
		Input:   paths.Input,
		Output:  paths.Audio,
		Quality: opts.Quality,
	}); err != nil {
		logger.Error("stage failed", logging.Error(err))
		return err
	}

	logger.Info("stage completed",
		logging.String("audio", paths.Audio),
		logging.Duration("elapsed", time.Since(stageStart)))
	return nil
}

func (p *Pipeline) transcribe(ctx context.Context, audio string, opts Options) (transcript.Transcript, error) {
	stageCtx := services.WithStage(ctx, "transcription")
	logger := logging.WithContext(stageCtx, p.logger)
	stageStart := time.Now()

	logger.Info("stage started",
		logging.String("audio", audio),
		logging.String("model", string(opts.Model)),
		logging.String("language", opts.Language),
		logging.String("device", string(opts.Device)))

	if p.pool == nil {
		return transcript.Transcript{}, services.Wrap(services.ErrTranscriptionFailed, "transcription", "load model",
			"no model pool configured", nil)
	}
	model, err := p.pool.Get(stageCtx, opts.Model)
	if err != nil {
		logger.Error("stage failed", logging.Error(err))
		return transcript.Transcript{}, err
	}

	result, err := model.Transcribe(stageCtx, audio, opts.Language)
	if err != nil {
		logger.Error("stage failed", logging.Error(err))
		return transcript.Transcript{}, err
	}

	logger.Info("stage completed",
		logging.Int("segments", result.SegmentCount()),
		logging.String("language", result.Language),
		logging.Float64("duration_seconds", result.Duration()),
		logging.Duration("elapsed", time.Since(stageStart)))
	return result, nil
}

// write serializes fully in memory and lands the file with a temp+rename so
// no partial transcript is ever visible.
func (p *Pipeline) write(ctx context.Context, result transcript.Transcript, path string, format transcript.Format) error {
	stageCtx := services.WithStage(ctx, "serialize")
	logger := logging.WithContext(stageCtx, p.logger)

	data, err := transcript.Render(result, format)
	if err != nil {
		logger.Error("stage failed", logging.Error(err))
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create transcript directory: %w", err)
		}
	}
	if err := fileutil.WriteFileAtomic(path, []byte(data), 0o644); err != nil {
		logger.Error("stage failed", logging.Error(err))
		return fmt.Errorf("write transcript: %w", err)
	}

	logger.Info("transcript written",
		logging.String("path", path),
		logging.String("format", string(format)),
		logging.Int("bytes", len(data)))
	return nil
}
