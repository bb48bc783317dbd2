package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePipeline(); err != nil {
		return err
	}
	c.normalizeTools()
	c.Decode.InitialPrompt = strings.TrimSpace(c.Decode.InitialPrompt)
	c.normalizeWatch()
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizePipeline() error {
	c.Pipeline.Quality = strings.ToLower(strings.TrimSpace(c.Pipeline.Quality))
	if c.Pipeline.Quality == "" {
		c.Pipeline.Quality = defaultQuality
	}
	c.Pipeline.Model = strings.ToLower(strings.TrimSpace(c.Pipeline.Model))
	if c.Pipeline.Model == "" {
		c.Pipeline.Model = defaultModel
	}
	c.Pipeline.Language = strings.ToLower(strings.TrimSpace(c.Pipeline.Language))
	c.Pipeline.Format = strings.ToLower(strings.TrimSpace(c.Pipeline.Format))
	if c.Pipeline.Format == "" {
		c.Pipeline.Format = defaultFormat
	}
	c.Pipeline.Device = strings.ToLower(strings.TrimSpace(c.Pipeline.Device))
	if c.Pipeline.Device == "" {
		c.Pipeline.Device = defaultDevice
	}

	c.Pipeline.OutputDir = strings.TrimSpace(c.Pipeline.OutputDir)
	if c.Pipeline.OutputDir != "" {
		expanded, err := expandPath(c.Pipeline.OutputDir)
		if err != nil {
			return fmt.Errorf("pipeline.output_dir: %w", err)
		}
		c.Pipeline.OutputDir = expanded
	}
	return nil
}

func (c *Config) normalizeTools() {
	if c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg); c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = defaultFFmpegBinary
	}
	if c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe); c.Tools.FFprobe == "" {
		c.Tools.FFprobe = defaultFFprobeBinary
	}
	if c.Tools.Whisper = strings.TrimSpace(c.Tools.Whisper); c.Tools.Whisper == "" {
		c.Tools.Whisper = defaultWhisperBinary
	}
	if c.Tools.NvidiaSMI = strings.TrimSpace(c.Tools.NvidiaSMI); c.Tools.NvidiaSMI == "" {
		c.Tools.NvidiaSMI = defaultNvidiaSMI
	}
}

func (c *Config) normalizeWatch() {
	if c.Watch.SettleSeconds <= 0 {
		c.Watch.SettleSeconds = defaultSettleSeconds
	}
	if len(c.Watch.Extensions) == 0 {
		c.Watch.Extensions = defaultWatchExtensions()
		return
	}
	normalized := make([]string, 0, len(c.Watch.Extensions))
	seen := make(map[string]struct{}, len(c.Watch.Extensions))
	for _, ext := range c.Watch.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, exists := seen[ext]; exists {
			continue
		}
		seen[ext] = struct{}{}
		normalized = append(normalized, ext)
	}
	if len(normalized) == 0 {
		normalized = defaultWatchExtensions()
	}
	c.Watch.Extensions = normalized
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.File = strings.TrimSpace(c.Logging.File)
	if c.Logging.File != "" {
		expanded, err := expandPath(c.Logging.File)
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = expanded
	}
	return nil
}
