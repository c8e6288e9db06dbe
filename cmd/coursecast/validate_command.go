package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"coursecast/internal/console"
	"coursecast/internal/course"
)

func newValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <course>",
		Short: "Check that every registered file still exists and is non-empty",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := ctx.openTracker(args[0], true)
			if err != nil {
				return err
			}
			con := ctx.console(cmd)

			missing := t.ValidateFileIntegrity()
			total := 0
			rows := make([][]string, 0)
			for _, category := range course.Categories() {
				for _, path := range missing[category] {
					rows = append(rows, []string{string(category), path})
					total++
				}
			}
			if total == 0 {
				con.Success("All registered files are present")
				return nil
			}

			con.Table(
				[]string{"Category", "Missing or empty"},
				rows,
				[]console.Alignment{console.AlignLeft, console.AlignLeft},
			)
			return fmt.Errorf("%d registered files are missing or empty", total)
		},
	}
}
