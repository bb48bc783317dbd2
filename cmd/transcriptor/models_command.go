package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"transcriptor/internal/services/whisper"
)

func newModelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "models",
		Short:       "List the available speech model sizes",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, len(whisper.Models()))
			for _, info := range whisper.Models() {
				rows = append(rows, []string{
					string(info.Size),
					info.Parameters,
					info.VRAM,
					info.RelativeSpeed,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Model", "Parameters", "VRAM", "Relative Speed"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}
}
