package main

import (
	"github.com/spf13/cobra"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status <course>",
		Short: "Show recorded progress for a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := ctx.openTracker(args[0], true)
			if err != nil {
				return err
			}
			con := ctx.console(cmd)
			t.DisplaySummary(con)
			if t.HasIntegrityViolations() {
				con.Warn("Some registered files are missing or empty; run `coursecast validate %s` for details", args[0])
			}
			return nil
		},
	}
}
