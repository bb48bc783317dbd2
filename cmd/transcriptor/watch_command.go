package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"transcriptor/internal/pipeline"
	"transcriptor/internal/services/ffmpeg"
	"transcriptor/internal/services/whisper"
	"transcriptor/internal/transcript"
	"transcriptor/internal/watch"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var qualityFlag string
	var modelFlag string
	var languageFlag string
	var formatFlag string
	var deviceFlag string
	var settleFlag int

	cmd := &cobra.Command{
		Use:   "watch DIR",
		Short: "Transcribe media files as they appear in a directory",
		Long: `Watch observes DIR and runs the full pipeline for every media file that
is created or moved into it, one file at a time in arrival order. A file
counts as complete once no write has touched it for the settle period.
Files whose transcript already exists are skipped. Stop with Ctrl-C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			quality, err := ffmpeg.ParseQuality(flagOr(cmd, "quality", qualityFlag, cfg.Pipeline.Quality))
			if err != nil {
				return err
			}
			model, err := whisper.ParseModelSize(flagOr(cmd, "model", modelFlag, cfg.Pipeline.Model))
			if err != nil {
				return err
			}
			format, err := transcript.ParseFormat(flagOr(cmd, "format", formatFlag, cfg.Pipeline.Format))
			if err != nil {
				return err
			}
			device, err := resolveDevice(cmd.Context(), cfg, flagOr(cmd, "device", deviceFlag, cfg.Pipeline.Device))
			if err != nil {
				return err
			}

			settle := time.Duration(cfg.Watch.SettleSeconds) * time.Second
			if cmd.Flags().Changed("settle") {
				settle = time.Duration(settleFlag) * time.Second
			}

			p := buildPipeline(cfg, logger, device)
			watcher, err := watch.New(args[0], p, pipeline.Options{
				Quality:   quality,
				Model:     model,
				Language:  resolveLanguage(flagOr(cmd, "language", languageFlag, cfg.Pipeline.Language)),
				Format:    format,
				Device:    device,
				OutputDir: cfg.Pipeline.OutputDir,
			}, cfg.Watch.Extensions, settle, logger)
			if err != nil {
				return err
			}
			watcher.OnReport(func(report *pipeline.Report) {
				printReport(cmd, report)
			})

			watchCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := watcher.Watch(watchCtx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&qualityFlag, "quality", "q", "", "Audio quality preset (low, medium, high)")
	cmd.Flags().StringVarP(&modelFlag, "model", "m", "", "Model size (tiny, base, small, medium, large, large-v2, large-v3)")
	cmd.Flags().StringVarP(&languageFlag, "language", "l", "", "Spoken language code, or auto to detect")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Transcript format (txt, json, srt, vtt)")
	cmd.Flags().StringVarP(&deviceFlag, "device", "d", "", "Inference device (auto, cuda, cpu)")
	cmd.Flags().IntVar(&settleFlag, "settle", 0, "Seconds of quiet before a new file is processed")
	return cmd
}
