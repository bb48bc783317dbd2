package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"transcriptor/internal/language"
	"transcriptor/internal/media/ffprobe"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "probe INPUT",
		Short: "Inspect the streams and container of a media file",
		Long: `Probe runs ffprobe against INPUT and prints the stream layout and
container metadata. Use --json for the raw ffprobe payload.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("probe requires exactly one INPUT argument")
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			result, err := ffprobe.Inspect(cmd.Context(), cfg.FFprobeBinary(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				fmt.Fprintln(out, strings.TrimSpace(string(result.RawJSON())))
				return nil
			}

			rows := make([][]string, 0, len(result.Streams))
			for _, stream := range result.Streams {
				rows = append(rows, []string{
					strconv.Itoa(stream.Index),
					stream.CodecType,
					stream.CodecName,
					streamDetail(stream),
					streamLanguage(stream),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Type", "Codec", "Detail", "Language"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
			))

			fmt.Fprintf(out, "Container: %s\n", result.Format.FormatName)
			if duration := result.DurationSeconds(); duration > 0 {
				fmt.Fprintf(out, "Duration:  %.1fs\n", duration)
			}
			if size := result.SizeBytes(); size > 0 {
				fmt.Fprintf(out, "Size:      %d bytes\n", size)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the raw ffprobe JSON payload")
	return cmd
}

func streamDetail(stream ffprobe.Stream) string {
	switch stream.CodecType {
	case "audio":
		parts := make([]string, 0, 3)
		if stream.SampleRate != "" {
			parts = append(parts, stream.SampleRate+" Hz")
		}
		if stream.Channels > 0 {
			layout := stream.ChannelLayout
			if layout == "" {
				layout = fmt.Sprintf("%dch", stream.Channels)
			}
			parts = append(parts, layout)
		}
		return strings.Join(parts, ", ")
	case "video":
		if stream.Width > 0 && stream.Height > 0 {
			return fmt.Sprintf("%dx%d", stream.Width, stream.Height)
		}
	}
	return ""
}

func streamLanguage(stream ffprobe.Stream) string {
	code := language.ExtractFromTags(stream.Tags)
	if code == "" {
		return ""
	}
	return language.DisplayName(code)
}
