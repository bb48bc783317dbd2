package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"transcriptor/internal/language"
)

func newLangsCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "langs",
		Short:       "List the language codes accepted by --language",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			supported := language.Supported()
			rows := make([][]string, 0, len(supported))
			for _, info := range supported {
				rows = append(rows, []string{info.Code, info.ISO3, info.Name})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Code", "ISO 639-2", "Language"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))
			fmt.Fprintln(out, "Other well-formed BCP 47 codes are accepted and passed to the model as-is.")
			return nil
		},
	}
}
