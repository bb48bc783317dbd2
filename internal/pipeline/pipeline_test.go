package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"transcriptor/internal/fileutil"
	"transcriptor/internal/media/ffprobe"
	"transcriptor/internal/services"
	"transcriptor/internal/services/ffmpeg"
	"transcriptor/internal/services/whisper"
	"transcriptor/internal/transcript"
)

type stubModel struct {
	result transcript.Transcript
	err    error
	calls  int
	audio  string
	lang   string
}

func (m *stubModel) Transcribe(ctx context.Context, audio, lang string) (transcript.Transcript, error) {
	m.calls++
	m.audio = audio
	m.lang = lang
	if m.err != nil {
		return transcript.Transcript{}, m.err
	}
	return m.result, nil
}

type stubLoader struct {
	model whisper.Model
	err   error
	loads int
}

func (l *stubLoader) Load(ctx context.Context, size whisper.ModelSize) (whisper.Model, error) {
	l.loads++
	if l.err != nil {
		return nil, l.err
	}
	return l.model, nil
}

func sampleResult() transcript.Transcript {
	return transcript.Transcript{
		Text:     "Merhaba dünya. İkinci bölüm.",
		Language: "tr",
		Segments: []transcript.Segment{
			{Start: 0, End: 2.5, Text: "Merhaba dünya."},
			{Start: 2.5, End: 7.8, Text: "İkinci bölüm."},
		},
	}
}

func writeVideoFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("fake container bytes"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

// stubExtractor wraps the real ffmpeg service with a runner that fakes the
// WAV output, so path handling and overwrite behavior stay real.
func stubExtractor(payload string, calls *int) *ffmpeg.Extractor {
	extractor := ffmpeg.New("ffmpeg")
	extractor.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		if calls != nil {
			*calls++
		}
		return os.WriteFile(args[len(args)-1], []byte(payload), 0o644)
	})
	return extractor
}

func defaultOptions() Options {
	return Options{
		Quality:  ffmpeg.QualityHigh,
		Model:    whisper.ModelLargeV3,
		Language: "tr",
		Format:   transcript.FormatSRT,
		Device:   whisper.DeviceCPU,
	}
}

func TestRunFullPipeline(t *testing.T) {
	input := writeVideoFile(t, "lecture.mp4")
	model := &stubModel{result: sampleResult()}
	loader := &stubLoader{model: model}

	p := New(stubExtractor("RIFF fake audio", nil), whisper.NewPool(loader), nil)
	report, err := p.Run(context.Background(), input, defaultOptions())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	dir := filepath.Dir(input)
	if report.Audio != filepath.Join(dir, "lecture_audio.wav") {
		t.Fatalf("audio path = %q", report.Audio)
	}
	if report.Transcript != filepath.Join(dir, "lecture_audio_transcript.srt") {
		t.Fatalf("transcript path = %q", report.Transcript)
	}

	data, err := os.ReadFile(report.Transcript)
	if err != nil {
		t.Fatalf("read transcript: %v", err)
	}
	if !strings.HasPrefix(string(data), "1\n00:00:00,000 --> 00:00:02,500\n") {
		t.Fatalf("unexpected transcript content:\n%s", data)
	}

	if model.audio != report.Audio {
		t.Fatalf("model transcribed %q, want %q", model.audio, report.Audio)
	}
	if model.lang != "tr" {
		t.Fatalf("model language = %q", model.lang)
	}
	if report.Language != "tr" || report.Segments != 2 {
		t.Fatalf("report fields wrong: %+v", report)
	}
	if report.Duration != 7.8 {
		t.Fatalf("report duration = %v", report.Duration)
	}
	if report.Elapsed <= 0 {
		t.Fatal("report elapsed not set")
	}

	if _, err := os.Stat(report.Audio + ".lock"); !os.IsNotExist(err) {
		t.Fatalf("run lock not cleaned up: %v", err)
	}
}

func TestRunAudioOnly(t *testing.T) {
	input := writeVideoFile(t, "lecture.mp4")
	loader := &stubLoader{model: &stubModel{result: sampleResult()}}

	p := New(stubExtractor("RIFF fake audio", nil), whisper.NewPool(loader), nil)
	opts := defaultOptions()
	opts.AudioOnly = true

	report, err := p.Run(context.Background(), input, opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if loader.loads != 0 {
		t.Fatal("audio-only run must not load a model")
	}
	if report.Transcript != "" {
		t.Fatalf("audio-only report has transcript path %q", report.Transcript)
	}
	if _, err := os.Stat(report.Audio); err != nil {
		t.Fatalf("audio file missing: %v", err)
	}
}

func TestRunSkipExtraction(t *testing.T) {
	input := writeVideoFile(t, "talk.wav")
	model := &stubModel{result: sampleResult()}
	extractCalls := 0

	p := New(stubExtractor("RIFF", &extractCalls), whisper.NewPool(&stubLoader{model: model}), nil)
	opts := defaultOptions()
	opts.Format = transcript.FormatText
	opts.SkipExtraction = true

	report, err := p.Run(context.Background(), input, opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if extractCalls != 0 {
		t.Fatal("skip-extraction run must not invoke ffmpeg")
	}
	if report.Audio != input {
		t.Fatalf("audio path = %q, want the input", report.Audio)
	}
	want := filepath.Join(filepath.Dir(input), "talk_transcript.txt")
	if report.Transcript != want {
		t.Fatalf("transcript path = %q, want %q", report.Transcript, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("transcript missing: %v", err)
	}
}

func TestRunTranscriptionFailureLeavesAudio(t *testing.T) {
	input := writeVideoFile(t, "lecture.mp4")
	failing := &stubModel{err: services.Wrap(services.ErrTranscriptionFailed, "transcription", "whisper", "model exploded", nil)}

	p := New(stubExtractor("RIFF fake audio", nil), whisper.NewPool(&stubLoader{model: failing}), nil)
	_, err := p.Run(context.Background(), input, defaultOptions())
	if !errors.Is(err, services.ErrTranscriptionFailed) {
		t.Fatalf("expected ErrTranscriptionFailed, got %v", err)
	}

	audio := filepath.Join(filepath.Dir(input), "lecture_audio.wav")
	sumBefore, err := fileutil.ChecksumSHA256(audio)
	if err != nil {
		t.Fatalf("audio must survive a transcription failure: %v", err)
	}

	if entries, _ := filepath.Glob(filepath.Join(filepath.Dir(input), "*transcript*")); len(entries) != 0 {
		t.Fatalf("no transcript artifacts may exist after failure, found %v", entries)
	}

	// Retry without re-extracting.
	good := &stubModel{result: sampleResult()}
	retry := New(stubExtractor("DIFFERENT BYTES", nil), whisper.NewPool(&stubLoader{model: good}), nil)
	opts := defaultOptions()
	opts.SkipExtraction = true

	if _, err := retry.Run(context.Background(), audio, opts); err != nil {
		t.Fatalf("retry run: %v", err)
	}
	sumAfter, err := fileutil.ChecksumSHA256(audio)
	if err != nil {
		t.Fatalf("checksum after retry: %v", err)
	}
	if sumBefore != sumAfter {
		t.Fatal("retry with skip-extraction must not touch the audio file")
	}
}

func TestRunLockBlocksConcurrentRun(t *testing.T) {
	input := writeVideoFile(t, "lecture.mp4")
	audio := filepath.Join(filepath.Dir(input), "lecture_audio.wav")

	held, err := acquireRunLock(audio)
	if err != nil {
		t.Fatalf("hold lock: %v", err)
	}
	defer held.Release()

	p := New(stubExtractor("RIFF", nil), whisper.NewPool(&stubLoader{model: &stubModel{result: sampleResult()}}), nil)
	_, err = p.Run(context.Background(), input, defaultOptions())
	if err == nil {
		t.Fatal("run must fail while another instance holds the lock")
	}
	if !strings.Contains(err.Error(), "another transcriptor run") {
		t.Fatalf("unexpected lock error: %v", err)
	}
}

func TestRunClassifiesAudioInputViaProbe(t *testing.T) {
	input := writeVideoFile(t, "talk.ogg")
	model := &stubModel{result: sampleResult()}
	extractCalls := 0

	p := New(stubExtractor("RIFF", &extractCalls), whisper.NewPool(&stubLoader{model: model}), nil)
	p.WithFFprobe("ffprobe")
	p.WithInspector(func(ctx context.Context, binary, path string) (ffprobe.Result, error) {
		return ffprobe.Result{Streams: []ffprobe.Stream{{CodecType: "audio", CodecName: "vorbis"}}}, nil
	})

	opts := defaultOptions()
	opts.Format = transcript.FormatText

	report, err := p.Run(context.Background(), input, opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if extractCalls != 0 {
		t.Fatal("audio-classified input must skip extraction")
	}
	if report.Audio != input {
		t.Fatalf("audio path = %q, want the input", report.Audio)
	}
	if model.calls != 1 {
		t.Fatalf("model calls = %d", model.calls)
	}
}

func TestRunFailsEarlyWithoutAudioStream(t *testing.T) {
	input := writeVideoFile(t, "silent.mp4")
	extractCalls := 0

	p := New(stubExtractor("RIFF", &extractCalls), whisper.NewPool(&stubLoader{model: &stubModel{}}), nil)
	p.WithFFprobe("ffprobe")
	p.WithInspector(func(ctx context.Context, binary, path string) (ffprobe.Result, error) {
		return ffprobe.Result{Streams: []ffprobe.Stream{{CodecType: "video", CodecName: "h264"}}}, nil
	})

	_, err := p.Run(context.Background(), input, defaultOptions())
	if !errors.Is(err, services.ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "no audio stream") {
		t.Fatalf("error should name the missing stream, got %v", err)
	}
	if extractCalls != 0 {
		t.Fatal("ffmpeg must not run against a container without audio")
	}
}

func TestRunProbeFailureFallsBackToExtension(t *testing.T) {
	input := writeVideoFile(t, "lecture.mp4")
	extractCalls := 0

	p := New(stubExtractor("RIFF", &extractCalls), whisper.NewPool(&stubLoader{model: &stubModel{result: sampleResult()}}), nil)
	p.WithFFprobe("ffprobe")
	p.WithInspector(func(ctx context.Context, binary, path string) (ffprobe.Result, error) {
		return ffprobe.Result{}, errors.New("ffprobe blew up")
	})

	if _, err := p.Run(context.Background(), input, defaultOptions()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if extractCalls != 1 {
		t.Fatalf(".mp4 input must extract after probe failure, calls = %d", extractCalls)
	}
}

func TestRunReusesPooledModel(t *testing.T) {
	loader := &stubLoader{model: &stubModel{result: sampleResult()}}
	p := New(stubExtractor("RIFF", nil), whisper.NewPool(loader), nil)

	for _, name := range []string{"first.mp4", "second.mp4"} {
		input := writeVideoFile(t, name)
		if _, err := p.Run(context.Background(), input, defaultOptions()); err != nil {
			t.Fatalf("Run %s: %v", name, err)
		}
	}
	if loader.loads != 1 {
		t.Fatalf("loader invoked %d times across two runs, want 1", loader.loads)
	}
}

func TestRunMissingInput(t *testing.T) {
	p := New(stubExtractor("RIFF", nil), whisper.NewPool(&stubLoader{model: &stubModel{}}), nil)

	_, err := p.Run(context.Background(), filepath.Join(t.TempDir(), "absent.mp4"), defaultOptions())
	if !errors.Is(err, services.ErrInputNotFound) {
		t.Fatalf("expected ErrInputNotFound, got %v", err)
	}
	if services.ExitCode(err) != 2 {
		t.Fatalf("exit code = %d, want 2", services.ExitCode(err))
	}
}

func TestRunRejectsUnknownFormat(t *testing.T) {
	input := writeVideoFile(t, "lecture.mp4")
	extractCalls := 0

	p := New(stubExtractor("RIFF", &extractCalls), whisper.NewPool(&stubLoader{model: &stubModel{}}), nil)
	opts := defaultOptions()
	opts.Format = transcript.Format("yaml")

	_, err := p.Run(context.Background(), input, opts)
	if !errors.Is(err, services.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if extractCalls != 0 {
		t.Fatal("an invalid format must fail before any stage runs")
	}
}
