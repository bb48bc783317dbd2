package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Pipeline contains the default stage parameters applied when the matching
// command-line flag is not given.
type Pipeline struct {
	Quality       string `toml:"quality"`
	Model         string `toml:"model"`
	Language      string `toml:"language"`
	Format        string `toml:"format"`
	Device        string `toml:"device"`
	OutputDir     string `toml:"output_dir"`
	NormalizeText bool   `toml:"normalize_text"`
}

// Tools contains the executable names for the external programs the pipeline
// shells out to. Names are resolved against PATH unless given as paths.
type Tools struct {
	FFmpeg    string `toml:"ffmpeg"`
	FFprobe   string `toml:"ffprobe"`
	Whisper   string `toml:"whisper"`
	NvidiaSMI string `toml:"nvidia_smi"`
}

// Decode contains the decoding options forwarded to the speech model.
type Decode struct {
	Temperature               float64 `toml:"temperature"`
	BestOf                    int     `toml:"best_of"`
	BeamSize                  int     `toml:"beam_size"`
	Patience                  float64 `toml:"patience"`
	ConditionOnPreviousText   bool    `toml:"condition_on_previous_text"`
	CompressionRatioThreshold float64 `toml:"compression_ratio_threshold"`
	LogprobThreshold          float64 `toml:"logprob_threshold"`
	NoSpeechThreshold         float64 `toml:"no_speech_threshold"`
	InitialPrompt             string  `toml:"initial_prompt"`
}

// Watch contains configuration for directory watch mode.
type Watch struct {
	SettleSeconds int      `toml:"settle_seconds"`
	Extensions    []string `toml:"extensions"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   string `toml:"file"`
}

// Config encapsulates all configuration values for transcriptor.
//
// Configuration sections by subsystem:
//   - Pipeline: default quality/model/language/format/device and output dir
//   - Tools: external executable names (ffmpeg, ffprobe, whisper, nvidia-smi)
//   - Decode: speech model decoding options
//   - Watch: directory watch mode settle delay and extension filter
//   - Logging: log format, level, and optional log file
type Config struct {
	Pipeline Pipeline `toml:"pipeline"`
	Tools    Tools    `toml:"tools"`
	Decode   Decode   `toml:"decode"`
	Watch    Watch    `toml:"watch"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/transcriptor/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The bool result reports
// whether a file existed at the resolved path; when it does not, defaults are
// returned.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		path = strings.TrimSpace(os.Getenv("TRANSCRIPTOR_CONFIG"))
	}
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("transcriptor.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the configured output directory when one is set.
func (c *Config) EnsureDirectories() error {
	if dir := strings.TrimSpace(c.Pipeline.OutputDir); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// FFmpegBinary returns the ffmpeg executable name used for audio extraction.
func (c *Config) FFmpegBinary() string {
	return c.Tools.FFmpeg
}

// FFprobeBinary returns the ffprobe executable name used for media inspection.
func (c *Config) FFprobeBinary() string {
	return c.Tools.FFprobe
}

// WhisperBinary returns the whisper executable name used for transcription.
func (c *Config) WhisperBinary() string {
	return c.Tools.Whisper
}

// NvidiaSMIBinary returns the nvidia-smi executable name used for CUDA probing.
func (c *Config) NvidiaSMIBinary() string {
	return c.Tools.NvidiaSMI
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	sample := sampleConfig

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
