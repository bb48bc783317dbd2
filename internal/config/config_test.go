package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"transcriptor/internal/config"
)

func TestLoadReturnsDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("TRANSCRIPTOR_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, _, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected missing config file")
	}
	if cfg.Pipeline.Quality != "high" {
		t.Fatalf("expected default quality high, got %q", cfg.Pipeline.Quality)
	}
	if cfg.Pipeline.Model != "large-v3" {
		t.Fatalf("expected default model large-v3, got %q", cfg.Pipeline.Model)
	}
	if cfg.Pipeline.Language != "tr" {
		t.Fatalf("expected default language tr, got %q", cfg.Pipeline.Language)
	}
	if cfg.Tools.FFmpeg != "ffmpeg" {
		t.Fatalf("expected default ffmpeg binary, got %q", cfg.Tools.FFmpeg)
	}
	if cfg.Decode.BestOf != 5 {
		t.Fatalf("expected default best_of 5, got %d", cfg.Decode.BestOf)
	}
}

func TestLoadParsesAndNormalizesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[pipeline]
quality = "HIGH"
model = "large-v3"
language = "TR"
format = "SRT"
device = "CUDA"

[watch]
extensions = ["MP4", ".mkv", "mp4"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if cfg.Pipeline.Quality != "high" {
		t.Fatalf("expected quality high, got %q", cfg.Pipeline.Quality)
	}
	if cfg.Pipeline.Language != "tr" {
		t.Fatalf("expected language tr, got %q", cfg.Pipeline.Language)
	}
	if cfg.Pipeline.Format != "srt" {
		t.Fatalf("expected format srt, got %q", cfg.Pipeline.Format)
	}
	if cfg.Pipeline.Device != "cuda" {
		t.Fatalf("expected device cuda, got %q", cfg.Pipeline.Device)
	}
	want := []string{".mp4", ".mkv"}
	if len(cfg.Watch.Extensions) != len(want) {
		t.Fatalf("expected %d extensions, got %v", len(want), cfg.Watch.Extensions)
	}
	for i, ext := range want {
		if cfg.Watch.Extensions[i] != ext {
			t.Fatalf("extension %d: expected %q, got %q", i, ext, cfg.Watch.Extensions[i])
		}
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[pipeline]\nqualityy = \"high\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoadRejectsInvalidEnums(t *testing.T) {
	cases := []struct {
		name    string
		content string
		keyword string
	}{
		{"quality", "[pipeline]\nquality = \"ultra\"\n", "pipeline.quality"},
		{"model", "[pipeline]\nmodel = \"huge\"\n", "pipeline.model"},
		{"format", "[pipeline]\nformat = \"pdf\"\n", "pipeline.format"},
		{"device", "[pipeline]\ndevice = \"tpu\"\n", "pipeline.device"},
		{"log level", "[logging]\nlevel = \"loud\"\n", "logging.level"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.keyword) {
				t.Fatalf("expected %q in error, got %v", tc.keyword, err)
			}
		})
	}
}

func TestValidateDecodeRanges(t *testing.T) {
	cfg := config.Default()
	cfg.Decode.NoSpeechThreshold = 1.5
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "decode.no_speech_threshold") {
		t.Fatalf("expected no_speech_threshold error, got %v", err)
	}

	cfg = config.Default()
	cfg.Decode.BeamSize = 0
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "decode.beam_size") {
		t.Fatalf("expected beam_size error, got %v", err)
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	expanded, err := config.ExpandPath("~/transcripts")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	if expanded != filepath.Join(home, "transcripts") {
		t.Fatalf("unexpected expansion: %q", expanded)
	}
}

func TestCreateSampleProducesLoadableConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load on sample returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if cfg.Pipeline.Quality != "high" {
		t.Fatalf("sample should carry defaults, got quality %q", cfg.Pipeline.Quality)
	}
}

func TestEnvOverrideResolvesPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	if err := os.WriteFile(path, []byte("[pipeline]\nmodel = \"tiny\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TRANSCRIPTOR_CONFIG", path)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected env config %q to be used, got %q (exists=%v)", path, resolved, exists)
	}
	if cfg.Pipeline.Model != "tiny" {
		t.Fatalf("expected model tiny, got %q", cfg.Pipeline.Model)
	}
}
