package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"coursecast/internal/console"
	"coursecast/internal/course"
	"coursecast/internal/registry"
)

func newCoursesCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "courses",
		Short: "List every course in the registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := registry.Open(cfg.Paths.RegistryPath)
			if err != nil {
				return err
			}
			defer store.Close()

			courses, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			con := ctx.console(cmd)
			if len(courses) == 0 {
				con.Println("No courses registered yet")
				return nil
			}

			stateStore := course.NewStore()
			rows := make([][]string, 0, len(courses))
			totalFiles := 0
			for _, entry := range courses {
				files := "-"
				progress := "-"
				if state, err := stateStore.Load(entry.Name, entry.Directory); err == nil {
					count := state.FileCount()
					totalFiles += count
					files = strconv.Itoa(count)
					progress = strconv.Itoa(len(state.CompletedSteps())) + "/" + strconv.Itoa(len(course.Steps()))
				}
				rows = append(rows, []string{entry.Name, entry.Directory, progress, files})
			}
			con.Table(
				[]string{"Course", "Directory", "Steps", "Files"},
				rows,
				[]console.Alignment{console.AlignLeft, console.AlignLeft, console.AlignRight, console.AlignRight},
			)
			con.Printf("%d courses, %d registered files\n", len(courses), totalFiles)
			return nil
		},
	}

	cmd.AddCommand(newCoursesRemoveCommand(ctx))
	return cmd
}

func newCoursesRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a course from the registry",
		Long:  "Remove deletes only the registry entry. Course files and state on disk are untouched.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := registry.Open(cfg.Paths.RegistryPath)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			ctx.console(cmd).Success("Removed %s from the registry", args[0])
			return nil
		},
	}
}
