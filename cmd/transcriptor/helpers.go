package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"transcriptor/internal/config"
	"transcriptor/internal/deps"
	"transcriptor/internal/logging"
	"transcriptor/internal/pipeline"
	"transcriptor/internal/services/ffmpeg"
	"transcriptor/internal/services/whisper"
)

// flagOr returns the flag's value when the user set it explicitly and the
// configured default otherwise, so an empty flag value can still override.
func flagOr(cmd *cobra.Command, name, flagValue, configValue string) string {
	if cmd.Flags().Changed(name) {
		return flagValue
	}
	return configValue
}

// resolveLanguage maps the auto keyword to the empty code (the model
// detects); anything else is normalized by the transcriber.
func resolveLanguage(value string) string {
	cleaned := strings.ToLower(strings.TrimSpace(value))
	if cleaned == "auto" || cleaned == "none" {
		return ""
	}
	return strings.TrimSpace(value)
}

// resolveDevice parses the requested device and settles auto with a CUDA
// probe, so every later stage sees a concrete target.
func resolveDevice(ctx context.Context, cfg *config.Config, requested string) (whisper.Device, error) {
	parsed, err := whisper.ParseDevice(requested)
	if err != nil {
		return "", err
	}
	return whisper.NewProber(cfg.NvidiaSMIBinary()).Resolve(ctx, parsed), nil
}

// decodeOptions translates configuration into transcriber options.
func decodeOptions(cfg *config.Config) whisper.Options {
	return whisper.Options{
		Temperature:               cfg.Decode.Temperature,
		BestOf:                    cfg.Decode.BestOf,
		BeamSize:                  cfg.Decode.BeamSize,
		Patience:                  cfg.Decode.Patience,
		ConditionOnPreviousText:   cfg.Decode.ConditionOnPreviousText,
		CompressionRatioThreshold: cfg.Decode.CompressionRatioThreshold,
		LogprobThreshold:          cfg.Decode.LogprobThreshold,
		NoSpeechThreshold:         cfg.Decode.NoSpeechThreshold,
		InitialPrompt:             cfg.Decode.InitialPrompt,
		NormalizeText:             cfg.Pipeline.NormalizeText,
	}
}

// buildPipeline assembles the stage components for one device choice. The
// returned pipeline owns a fresh model pool.
func buildPipeline(cfg *config.Config, logger *slog.Logger, device whisper.Device) *pipeline.Pipeline {
	extractor := ffmpeg.New(cfg.FFmpegBinary())
	service := whisper.NewService(cfg.WhisperBinary(), decodeOptions(cfg))
	service.WithLogger(logging.NewComponentLogger(logger, "whisper"))
	pool := whisper.NewPool(whisper.ServiceLoader{Service: service, Device: device})

	p := pipeline.New(extractor, pool, logger)
	p.WithFFprobe(cfg.FFprobeBinary())
	return p
}

// runDependencyCheck prints one status line per requirement and returns a
// DependencyMissing error when a required one is absent.
func runDependencyCheck(cmd *cobra.Command, statuses []deps.Status) error {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	for _, status := range statuses {
		kind := statusOK
		message := status.Command
		if !status.Available {
			kind = statusError
			if status.Optional {
				kind = statusWarn
			}
			message = status.Detail
		}
		fmt.Fprintln(out, renderStatusLine(status.Name, kind, message, colorize))
	}
	return deps.MissingError(statuses)
}

func printReport(cmd *cobra.Command, report *pipeline.Report) {
	fmt.Fprint(cmd.OutOrStdout(), report.Summary())
}
