package main

import (
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"coursecast/internal/console"
	"coursecast/internal/course"
	"coursecast/internal/fileutil"
	"coursecast/internal/migration"
	"coursecast/internal/tracker"
)

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	var modeFlag string
	var nameFlag string
	var analyzeOnly bool

	cmd := &cobra.Command{
		Use:   "migrate <source-dir> <target-dir>",
		Short: "Move or copy a course directory and rebuild its state there",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			con := ctx.console(cmd)

			mode, err := migration.ParseMode(modeFlag)
			if err != nil {
				return err
			}

			if analyzeOnly {
				plan, err := migration.Analyze(args[0], args[1])
				if err != nil {
					return err
				}
				renderPlan(con, plan)
				return nil
			}

			name := nameFlag
			if name == "" {
				abs, err := filepath.Abs(args[1])
				if err != nil {
					return err
				}
				name = filepath.Base(abs)
			}

			summary, err := migration.MigrateCourse(cmd.Context(), args[0], args[1], name, mode,
				course.NewStore(), logger,
				tracker.WithLogger(logger),
				tracker.WithAudioExtensions(cfg.AudioExtension()),
				tracker.WithRecursiveScan(cfg.Scan.Recursive),
			)
			if err != nil {
				return err
			}

			renderPlan(con, summary.Plan)
			if summary.Result.Failed() {
				for _, failure := range summary.Result.Failures {
					con.Errorf("failed: %s: %v", failure.Path, failure.Err)
				}
				con.Warn("%s", summary.Message)
			} else {
				con.Success("%s", summary.Message)
			}

			rows := make([][]string, 0, len(course.Categories()))
			for _, category := range course.Categories() {
				rows = append(rows, []string{string(category), strconv.Itoa(summary.Counts[category])})
			}
			con.Table(
				[]string{"Category", "Registered"},
				rows,
				[]console.Alignment{console.AlignLeft, console.AlignRight},
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&modeFlag, "mode", "copy", "Migration mode: copy or move")
	cmd.Flags().StringVar(&nameFlag, "name", "", "Course name at the target (default: target directory name)")
	cmd.Flags().BoolVar(&analyzeOnly, "analyze", false, "Show the migration plan without touching any files")
	return cmd
}

func renderPlan(con *console.Console, plan *migration.Plan) {
	rows := make([][]string, 0, len(migration.Kinds()))
	for _, kind := range migration.Kinds() {
		if plan.Counts[kind] == 0 {
			continue
		}
		rows = append(rows, []string{string(kind), strconv.Itoa(plan.Counts[kind])})
	}
	con.Table(
		[]string{"Kind", "Files"},
		rows,
		[]console.Alignment{console.AlignLeft, console.AlignRight},
	)
	con.Printf("Total: %d files, %s\n", len(plan.Files), fileutil.FormatSize(plan.TotalBytes))
	if plan.TargetFreeBytes > 0 {
		con.Printf("Free at target: %s\n", fileutil.FormatSize(plan.TargetFreeBytes))
		if plan.TotalBytes > plan.TargetFreeBytes {
			con.Warn("Planned data exceeds free space at the target")
		}
	}
}
