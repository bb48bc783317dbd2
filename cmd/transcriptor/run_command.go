package main

import (
	"errors"

	"github.com/spf13/cobra"

	"transcriptor/internal/deps"
	"transcriptor/internal/pipeline"
	"transcriptor/internal/services/ffmpeg"
	"transcriptor/internal/services/whisper"
	"transcriptor/internal/transcript"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var qualityFlag string
	var modelFlag string
	var languageFlag string
	var formatFlag string
	var deviceFlag string
	var outputFlag string
	var audioOutputFlag string
	var audioOnly bool
	var skipExtraction bool
	var checkDeps bool

	cmd := &cobra.Command{
		Use:   "run INPUT",
		Short: "Run the full extraction and transcription pipeline",
		Long: `Run extracts the audio track of INPUT and transcribes it in one pass.
Outputs follow the naming convention <name>_audio.wav and
<name>_audio_transcript.<ext> next to the input unless overridden. Inputs
that already contain only audio skip extraction automatically.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if checkDeps {
				return runDependencyCheck(cmd, deps.CheckBinaries(deps.SystemRequirements(cfg)))
			}
			if len(args) != 1 {
				return errors.New("run requires exactly one INPUT argument")
			}
			if audioOnly && skipExtraction {
				return errors.New("--audio-only and --skip-extraction are mutually exclusive")
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

			p := buildPipeline(cfg, logger, device)
			report, err := p.Run(cmd.Context(), args[0], pipeline.Options{
				Quality:          quality,
				Model:            model,
				Language:         resolveLanguage(flagOr(cmd, "language", languageFlag, cfg.Pipeline.Language)),
				Format:           format,
				Device:           device,
				TranscriptOutput: outputFlag,
				AudioOutput:      audioOutputFlag,
				OutputDir:        cfg.Pipeline.OutputDir,
				AudioOnly:        audioOnly,
				SkipExtraction:   skipExtraction,
			})
			if err != nil {
				return err
			}
			printReport(cmd, report)
			return nil
		},
	}

	cmd.Flags().StringVarP(&qualityFlag, "quality", "q", "", "Audio quality preset (low, medium, high)")
	cmd.Flags().StringVarP(&modelFlag, "model", "m", "", "Model size (tiny, base, small, medium, large, large-v2, large-v3)")
	cmd.Flags().StringVarP(&languageFlag, "language", "l", "", "Spoken language code, or auto to detect")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Transcript format (txt, json, srt, vtt)")
	cmd.Flags().StringVarP(&deviceFlag, "device", "d", "", "Inference device (auto, cuda, cpu)")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Explicit transcript output path")
	cmd.Flags().StringVar(&audioOutputFlag, "audio-output", "", "Explicit intermediate WAV path")
	cmd.Flags().BoolVar(&audioOnly, "audio-only", false, "Stop after audio extraction")
	cmd.Flags().BoolVar(&skipExtraction, "skip-extraction", false, "Treat INPUT as audio and skip extraction")
	cmd.Flags().BoolVar(&checkDeps, "check-deps", false, "Verify all pipeline tools are installed and exit")
	return cmd
}
