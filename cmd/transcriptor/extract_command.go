package main

import (
	"errors"

	"github.com/spf13/cobra"

	"transcriptor/internal/deps"
	"transcriptor/internal/pipeline"
	"transcriptor/internal/services/ffmpeg"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var qualityFlag string
	var outputFlag string
	var checkDeps bool

	cmd := &cobra.Command{
		Use:   "extract INPUT",
		Short: "Extract a mono WAV audio track from a video file",
		Long: `Extract demuxes and resamples the audio track of a video file into a
mono WAV using the selected quality preset. The output lands next to the
input as <name>_audio.wav unless -o or an output directory is configured.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if checkDeps {
				return runDependencyCheck(cmd, deps.CheckBinaries(deps.ExtractionRequirements(cfg)))
			}
			if len(args) != 1 {
				return errors.New("extract requires exactly one INPUT argument")
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			quality, err := ffmpeg.ParseQuality(flagOr(cmd, "quality", qualityFlag, cfg.Pipeline.Quality))
			if err != nil {
				return err
			}

			p := buildPipeline(cfg, logger, "")
			report, err := p.Run(cmd.Context(), args[0], pipeline.Options{
				Quality:     quality,
				AudioOutput: outputFlag,
				OutputDir:   cfg.Pipeline.OutputDir,
				AudioOnly:   true,
			})
			if err != nil {
				return err
			}
			printReport(cmd, report)
			return nil
		},
	}

	cmd.Flags().StringVarP(&qualityFlag, "quality", "q", "", "Audio quality preset (low, medium, high)")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Explicit output WAV path")
	cmd.Flags().BoolVar(&checkDeps, "check-deps", false, "Verify the extraction tools are installed and exit")
	return cmd
}
