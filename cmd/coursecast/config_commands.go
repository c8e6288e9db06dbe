package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"coursecast/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			}

			if err := config.WriteSample(target); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit the file to set llm.api_key before running the pipeline.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			var flagPath string
			if ctx.configFlag != nil {
				flagPath = strings.TrimSpace(*ctx.configFlag)
			}
			cfg, path, exists, err := config.Load(flagPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Config file did not exist; defaults shown")
			}
			fmt.Fprintf(out, "Courses directory: %s\n", cfg.Paths.CoursesDir)
			fmt.Fprintf(out, "Log directory: %s\n", cfg.Paths.LogDir)
			fmt.Fprintf(out, "Registry: %s\n", cfg.Paths.RegistryPath)
			fmt.Fprintf(out, "Audio: %s @ %s\n", cfg.Audio.Format, cfg.Audio.Bitrate)
			fmt.Fprintf(out, "Transcription: %s (%s)\n", cfg.Transcription.Model, cfg.Transcription.Language)
			fmt.Fprintf(out, "LLM model: %s\n", cfg.LLM.Model)
			fmt.Fprintf(out, "LLM key set: %t\n", cfg.LLM.APIKey != "")
			fmt.Fprintf(out, "TTS voice: %s\n", cfg.TTS.Voice)
			fmt.Fprintf(out, "Drive remote: %s\n", cfg.Drive.Remote)
			fmt.Fprintf(out, "GitHub repo: %s (%s)\n", cfg.GitHub.RepoDir, cfg.GitHub.Branch)
			return nil
		},
	}
}
