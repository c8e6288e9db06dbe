package main

import (
	"github.com/spf13/cobra"

	"coursecast/internal/console"
	"coursecast/internal/course"
)

func newDetectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "detect <course>",
		Short: "Reconcile recorded progress with files on disk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := ctx.openTracker(args[0], true)
			if err != nil {
				return err
			}
			detected, err := t.AutoDetectCompletedSteps()
			if err != nil {
				return err
			}
			if err := t.UpdateCourseStatistics(); err != nil {
				return err
			}

			con := ctx.console(cmd)
			rows := make([][]string, 0, len(course.Steps()))
			for _, info := range course.Infos() {
				status := "pending"
				if detected[info.Step] {
					status = "done"
				}
				evidence := "tracked flag only"
				if info.Evidence != nil {
					evidence = info.Evidence.Dir + "/"
				}
				rows = append(rows, []string{string(info.Step), evidence, status})
			}
			con.Table(
				[]string{"Step", "Evidence", "Status"},
				rows,
				[]console.Alignment{console.AlignLeft, console.AlignLeft, console.AlignLeft},
			)
			con.Printf("Registered files: %d\n", t.State().FileCount())
			return nil
		},
	}
}
