// Package cli provides the command-line interface with injectable io.Writer for testing.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/jmcdonald/lowercase/internal/config"
	"github.com/jmcdonald/lowercase/internal/renamer"
	"github.com/jmcdonald/lowercase/internal/report"
)

// ConfigService provides configuration operations for the CLI.
type ConfigService interface {
	Load(args []string) (config.Config, error)
}

// RenameService provides the rename pass for the CLI.
type RenameService interface {
	Run(cfg config.Config, emit func(renamer.Outcome), onListError func(dir string, err error)) renamer.Summary
}

// CLI represents the command-line interface with injectable dependencies.
type CLI struct {
	Out     io.Writer // Standard output
	Err     io.Writer // Standard error
	Version string    // Application version
	Args    []string  // Command arguments (like os.Args)

	// Exit function for testability (defaults to os.Exit)
	Exit func(code int)

	// Now returns the current time (defaults to time.Now)
	Now func() time.Time

	// Injectable dependencies (nil means use defaults)
	ConfigSvc ConfigService
	RenameSvc RenameService

	// Color functions (can be disabled for testing)
	green  func(a ...interface{}) string
	yellow func(a ...interface{}) string
	cyan   func(a ...interface{}) string
	gray   func(a ...interface{}) string
	red    func(a ...interface{}) string
}

// New creates a new CLI with default settings.
func New(version string) *CLI {
	return &CLI{
		Out:     os.Stdout,
		Err:     os.Stderr,
		Version: version,
		Args:    os.Args,
		Exit:    os.Exit,
		Now:     time.Now,
		green:   color.New(color.FgGreen, color.Bold).SprintFunc(),
		yellow:  color.New(color.FgYellow).SprintFunc(),
		cyan:    color.New(color.FgCyan).SprintFunc(),
		gray:    color.New(color.FgHiBlack).SprintFunc(),
		red:     color.New(color.FgRed).SprintFunc(),
	}
}

// NewForTesting creates a CLI configured for testing (no colors, captured output).
func NewForTesting(out, errOut io.Writer, args []string) *CLI {
	noColor := func(a ...interface{}) string { return fmt.Sprint(a...) }
	return &CLI{
		Out:     out,
		Err:     errOut,
		Version: "test",
		Args:    args,
		Exit:    func(code int) {},
		Now:     time.Now,
		green:   noColor,
		yellow:  noColor,
		cyan:    noColor,
		gray:    noColor,
		red:     noColor,
	}
}

// defaultConfigService wraps the config package functions.
type defaultConfigService struct{}

func (d *defaultConfigService) Load(args []string) (config.Config, error) {
	return config.Load(args, os.Getenv)
}

// defaultRenameService runs the renamer against the real filesystem.
type defaultRenameService struct{}

func (d *defaultRenameService) Run(cfg config.Config, emit func(renamer.Outcome), onListError func(dir string, err error)) renamer.Summary {
	svc := renamer.NewDefaultService()
	svc.OnListError(onListError)
	return svc.Run(cfg, emit)
}

// Helper methods to get the service or default
func (c *CLI) configSvc() ConfigService {
	if c.ConfigSvc != nil {
		return c.ConfigSvc
	}
	return &defaultConfigService{}
}

func (c *CLI) renameSvc() RenameService {
	if c.RenameSvc != nil {
		return c.RenameSvc
	}
	return &defaultRenameService{}
}

// Run executes the CLI with the configured arguments.
// With no command, or when the first argument is a flag or path, it renames.
func (c *CLI) Run() {
	if len(c.Args) < 2 {
		c.RunRename(nil)
		return
	}

	switch c.Args[1] {
	case "run":
		c.RunRename(c.Args[2:])
	case "version", "-v", "--version":
		fmt.Fprintf(c.Out, "lowercase v%s\n", c.Version)
	case "help", "-h", "--help":
		c.PrintUsage()
	default:
		c.RunRename(c.Args[1:])
	}
}

// PrintUsage prints the help message.
func (c *CLI) PrintUsage() {
	fmt.Fprintln(c.Out, `lowercase - Recursively rename files and directories to lowercase

Usage:
  lowercase [run] [PATH] [flags]           Rename everything below PATH (default: .)
  lowercase ui [PATH] [flags]              Preview the renames interactively
  lowercase version, -v                    Show version
  lowercase help, -h                       Show this help

Flags:
  --dry-run, -n                            Report what would change without renaming
  --target-dir=PATH                        Directory to process (same as PATH)
  --report=FILE                            Write a YAML report of every outcome
  --no-color                               Disable colored output

Environment:
  LOWERCASE_DRY_RUN, LOWERCASE_TARGET_DIR, LOWERCASE_REPORT, NO_COLOR`)
}

// RunRename runs the rename pass.
func (c *CLI) RunRename(args []string) {
	cfg, err := c.configSvc().Load(args)
	if err != nil {
		fmt.Fprintf(c.Err, "Error: %v\n", err)
		fmt.Fprintln(c.Err, "Use 'lowercase help' for usage.")
		c.Exit(1)
		return
	}

	cfg, err = cfg.Resolve()
	if err != nil {
		fmt.Fprintf(c.Err, "Error: %v\n", err)
		c.Exit(1)
		return
	}

	if cfg.NoColor {
		c.disableColor()
	}

	fmt.Fprintf(c.Out, "Starting rename in: %s\n", cfg.TargetDir)
	if cfg.DryRun {
		fmt.Fprintln(c.Out, c.yellow("--- DRY RUN MODE (No changes will be applied) ---"))
	}

	rep := report.New(cfg.TargetDir, cfg.DryRun, c.now())

	emit := func(o renamer.Outcome) {
		c.printOutcome(cfg.TargetDir, o)
		rep.Add(o)
	}
	warn := func(dir string, err error) {
		fmt.Fprintf(c.Err, "%s Cannot read %s: %v\n", c.yellow("!"), c.display(cfg.TargetDir, dir), err)
	}

	summary := c.renameSvc().Run(cfg, emit, warn)
	rep.Finish(summary, c.now())

	// The summary stays the last line of output.
	var saveErr error
	if cfg.ReportPath != "" {
		if saveErr = rep.Save(cfg.ReportPath); saveErr != nil {
			fmt.Fprintf(c.Err, "Error writing report: %v\n", saveErr)
		} else {
			fmt.Fprintf(c.Out, "Report written to %s\n", cfg.ReportPath)
		}
	}

	c.printSummary(cfg, summary)

	if saveErr != nil {
		c.Exit(1)
	}
}

// printOutcome writes the single console line for one outcome.
func (c *CLI) printOutcome(root string, o renamer.Outcome) {
	from := c.display(root, o.OldPath())

	switch o.Kind {
	case renamer.SkippedCollision:
		fmt.Fprintf(c.Out, "%s SKIPPING: '%s' -> '%s' %s\n",
			c.yellow("!"), from, o.NewName, c.gray("(target already exists)"))
	case renamer.Simulated:
		fmt.Fprintf(c.Out, "%s Would rename: '%s' -> '%s'\n", c.cyan("[DRY RUN]"), from, o.NewName)
	case renamer.Renamed:
		fmt.Fprintf(c.Out, "%s Renamed: '%s' -> '%s'\n", c.green("*"), from, o.NewName)
	case renamer.Failed:
		fmt.Fprintf(c.Out, "%s Error renaming '%s': %v\n", c.red("x"), from, o.Err)
	}
}

func (c *CLI) printSummary(cfg config.Config, s renamer.Summary) {
	fmt.Fprintln(c.Out)
	if cfg.DryRun {
		fmt.Fprintf(c.Out, "Done: %s would be renamed, %s skipped",
			c.cyan(fmt.Sprintf("%d", s.Simulated)),
			c.gray(fmt.Sprintf("%d", s.Collisions)))
	} else {
		fmt.Fprintf(c.Out, "Done: %s renamed, %s skipped",
			c.green(fmt.Sprintf("%d", s.Renamed)),
			c.gray(fmt.Sprintf("%d", s.Collisions)))
	}
	if s.Failed > 0 {
		fmt.Fprintf(c.Out, ", %s errors", c.red(fmt.Sprintf("%d", s.Failed)))
	}
	fmt.Fprintln(c.Out)
}

// display returns path relative to root when it lies below it.
func (c *CLI) display(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}

func (c *CLI) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *CLI) disableColor() {
	noColor := func(a ...interface{}) string { return fmt.Sprint(a...) }
	c.green = noColor
	c.yellow = noColor
	c.cyan = noColor
	c.gray = noColor
	c.red = noColor
}
