package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"coursecast/internal/config"
	"coursecast/internal/console"
	"coursecast/internal/course"
	"coursecast/internal/logging"
	"coursecast/internal/tracker"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger builds the process logger: console format to stderr plus a
// JSON file under the configured log directory.
func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	c.loggerOnce.Do(func() {
		opts := logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		}
		if strings.TrimSpace(cfg.Paths.LogDir) != "" {
			opts.Format = "json"
			opts.OutputPaths = []string{filepath.Join(cfg.Paths.LogDir, "coursecast.log")}
		}
		c.logger, c.loggerErr = logging.New(opts)
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) console(cmd *cobra.Command) *console.Console {
	out := cmd.OutOrStdout()
	if out == os.Stdout {
		return console.New(os.Stdout)
	}
	return console.NewPlain(out)
}

// resolveCourse maps a command argument to a course name and directory. An
// argument containing a path separator (or naming an existing directory) is
// treated as the course directory itself; anything else is looked up under
// the configured courses directory.
func (c *commandContext) resolveCourse(arg string) (name, dir string, err error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", "", err
	}
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", "", fmt.Errorf("course name or directory required")
	}

	if strings.ContainsRune(arg, os.PathSeparator) || arg == "." || arg == ".." {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return "", "", err
		}
		return filepath.Base(abs), abs, nil
	}
	if info, statErr := os.Stat(arg); statErr == nil && info.IsDir() {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return "", "", err
		}
		return filepath.Base(abs), abs, nil
	}
	return arg, filepath.Join(cfg.Paths.CoursesDir, arg), nil
}

// openTracker resolves the course argument and initializes its tracker. The
// course directory must already exist for read-style commands to avoid
// scaffolding state in the wrong place.
func (c *commandContext) openTracker(arg string, requireDir bool) (*tracker.Tracker, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	name, dir, err := c.resolveCourse(arg)
	if err != nil {
		return nil, err
	}
	if requireDir {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("course directory %s: %w", dir, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("not a directory: %s", dir)
		}
	}
	return tracker.New(name, dir, course.NewStore(),
		tracker.WithLogger(logger),
		tracker.WithAudioExtensions(cfg.AudioExtension()),
		tracker.WithRecursiveScan(cfg.Scan.Recursive),
	)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
