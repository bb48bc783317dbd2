package main

import (
	"errors"

	"github.com/spf13/cobra"

	"transcriptor/internal/deps"
	"transcriptor/internal/pipeline"
	"transcriptor/internal/services/whisper"
	"transcriptor/internal/transcript"
)

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	var modelFlag string
	var languageFlag string
	var formatFlag string
	var outputFlag string
	var deviceFlag string
	var checkDeps bool

	cmd := &cobra.Command{
		Use:   "transcribe INPUT",
		Short: "Transcribe an audio file to text",
		Long: `Transcribe runs the speech-recognition model over an audio file and
writes the transcript as <name>_transcript.<ext> next to the audio unless
-o or an output directory is configured. Pass --language auto to let the
model detect the spoken language.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if checkDeps {
				return runDependencyCheck(cmd, deps.CheckBinaries(deps.TranscriptionRequirements(cfg)))
			}
			if len(args) != 1 {
				return errors.New("transcribe requires exactly one INPUT argument")
			}
			logger, err := ctx.ensureLogger()
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
				Model:            model,
				Language:         resolveLanguage(flagOr(cmd, "language", languageFlag, cfg.Pipeline.Language)),
				Format:           format,
				Device:           device,
				TranscriptOutput: outputFlag,
				OutputDir:        cfg.Pipeline.OutputDir,
				SkipExtraction:   true,
			})
			if err != nil {
				return err
			}
			printReport(cmd, report)
			return nil
		},
	}

	cmd.Flags().StringVarP(&modelFlag, "model", "m", "", "Model size (tiny, base, small, medium, large, large-v2, large-v3)")
	cmd.Flags().StringVarP(&languageFlag, "language", "l", "", "Spoken language code, or auto to detect")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Transcript format (txt, json, srt, vtt)")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Explicit transcript output path")
	cmd.Flags().StringVarP(&deviceFlag, "device", "d", "", "Inference device (auto, cuda, cpu)")
	cmd.Flags().BoolVar(&checkDeps, "check-deps", false, "Verify the transcription tools are installed and exit")
	return cmd
}
