package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"transcriptor/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check that the external tools are installed",
		Long: `Deps verifies every external program the pipeline can invoke and prints
one status row per requirement. The exit status is non-zero when a required
dependency is missing; optional ones only produce a warning.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckSystem(cfg)
			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				rows = append(rows, []string{
					status.Name,
					status.Command,
					depsStatusCell(status),
					status.Description,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Dependency", "Command", "Status", "Notes"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return deps.MissingError(statuses)
		},
	}
}

func depsStatusCell(status deps.Status) string {
	if status.Available {
		return "found"
	}
	if status.Optional {
		return "missing (optional): " + status.Detail
	}
	return "MISSING: " + status.Detail
}
