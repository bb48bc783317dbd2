package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	validQualities = []string{"low", "medium", "high"}
	validModels    = []string{"tiny", "base", "small", "medium", "large", "large-v2", "large-v3"}
	validFormats   = []string{"txt", "json", "srt", "vtt"}
	validDevices   = []string{"auto", "cuda", "cpu"}
	validLogFmts   = []string{"console", "json"}
	validLogLevels = []string{"debug", "info", "warn", "error"}
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePipeline(); err != nil {
		return err
	}
	if err := c.validateDecode(); err != nil {
		return err
	}
	if err := c.validateWatch(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePipeline() error {
	if !containsString(validQualities, c.Pipeline.Quality) {
		return fmt.Errorf("pipeline.quality must be one of %s, got %q", strings.Join(validQualities, ", "), c.Pipeline.Quality)
	}
	if !containsString(validModels, c.Pipeline.Model) {
		return fmt.Errorf("pipeline.model must be one of %s, got %q", strings.Join(validModels, ", "), c.Pipeline.Model)
	}
	if !containsString(validFormats, c.Pipeline.Format) {
		return fmt.Errorf("pipeline.format must be one of %s, got %q", strings.Join(validFormats, ", "), c.Pipeline.Format)
	}
	if !containsString(validDevices, c.Pipeline.Device) {
		return fmt.Errorf("pipeline.device must be one of %s, got %q", strings.Join(validDevices, ", "), c.Pipeline.Device)
	}
	return nil
}

func (c *Config) validateDecode() error {
	if c.Decode.Temperature < 0 || c.Decode.Temperature > 1 {
		return errors.New("decode.temperature must be between 0 and 1")
	}
	if c.Decode.BestOf <= 0 {
		return errors.New("decode.best_of must be positive")
	}
	if c.Decode.BeamSize <= 0 {
		return errors.New("decode.beam_size must be positive")
	}
	if c.Decode.Patience <= 0 {
		return errors.New("decode.patience must be positive")
	}
	if c.Decode.CompressionRatioThreshold <= 0 {
		return errors.New("decode.compression_ratio_threshold must be positive")
	}
	if c.Decode.NoSpeechThreshold < 0 || c.Decode.NoSpeechThreshold > 1 {
		return errors.New("decode.no_speech_threshold must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateWatch() error {
	if c.Watch.SettleSeconds <= 0 {
		return errors.New("watch.settle_seconds must be positive")
	}
	if len(c.Watch.Extensions) == 0 {
		return errors.New("watch.extensions must include at least one extension")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !containsString(validLogFmts, c.Logging.Format) {
		return fmt.Errorf("logging.format must be one of %s, got %q", strings.Join(validLogFmts, ", "), c.Logging.Format)
	}
	if !containsString(validLogLevels, c.Logging.Level) {
		return fmt.Errorf("logging.level must be one of %s, got %q", strings.Join(validLogLevels, ", "), c.Logging.Level)
	}
	return nil
}

func containsString(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}
