package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"coursecast/internal/course"
)

func newResetCommand(ctx *commandContext) *cobra.Command {
	var stepsFlag []string
	var all bool

	cmd := &cobra.Command{
		Use:   "reset <course>",
		Short: "Mark steps as pending again",
		Long: `Reset clears completion flags so steps run again on the next process.
Resetting a step does not reset the steps after it; pass every step you want
rerun explicitly, or --all to start the course over.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && len(stepsFlag) == 0 {
				return fmt.Errorf("pass --steps or --all")
			}
			if all && len(stepsFlag) > 0 {
				return fmt.Errorf("--steps and --all are mutually exclusive")
			}

			t, err := ctx.openTracker(args[0], true)
			if err != nil {
				return err
			}
			con := ctx.console(cmd)

			if all {
				if err := t.ResetProgress(); err != nil {
					return err
				}
				con.Success("Reset all progress for %s", t.CourseName())
				return nil
			}

			steps := make([]course.Step, 0, len(stepsFlag))
			for _, raw := range stepsFlag {
				steps = append(steps, course.Step(strings.TrimSpace(raw)))
			}
			if err := t.ResetSteps(steps); err != nil {
				return err
			}
			con.Success("Reset %d steps for %s", len(steps), t.CourseName())
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&stepsFlag, "steps", nil, "Comma-separated step names to reset")
	cmd.Flags().BoolVar(&all, "all", false, "Reset every step and registered file")
	return cmd
}
