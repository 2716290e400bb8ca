// Package config builds the run configuration from command-line arguments
// and environment variables. There is no configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Environment variables consulted by Load. Arguments take precedence.
const (
	EnvDryRun    = "LOWERCASE_DRY_RUN"
	EnvTargetDir = "LOWERCASE_TARGET_DIR"
	EnvReport    = "LOWERCASE_REPORT"
	EnvNoColor   = "NO_COLOR"
)

var (
	// ErrTargetNotFound is returned by Resolve when the target directory does not exist.
	ErrTargetNotFound = errors.New("target directory does not exist")
	// ErrNotDirectory is returned by Resolve when the target exists but is not a directory.
	ErrNotDirectory = errors.New("target is not a directory")
)

// Config is built once at startup and passed by value from then on.
type Config struct {
	TargetDir  string // Root of the tree to rename
	DryRun     bool   // Report intended renames without applying them
	ReportPath string // Optional YAML report destination
	NoColor    bool   // Disable ANSI colors in console output
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		TargetDir: ".",
	}
}

// Load builds a Config from defaults, then the environment, then args.
// args excludes the program name and subcommand. getenv is usually os.Getenv.
func Load(args []string, getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()

	if getenv != nil {
		if err := cfg.applyEnv(getenv); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyArgs(args); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvTargetDir); v != "" {
		c.TargetDir = v
	}
	if v := getenv(EnvReport); v != "" {
		c.ReportPath = v
	}
	if v := getenv(EnvDryRun); v != "" {
		dry, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvDryRun, v, err)
		}
		c.DryRun = dry
	}
	// https://no-color.org: any non-empty value disables color
	if getenv(EnvNoColor) != "" {
		c.NoColor = true
	}
	return nil
}

func (c *Config) applyArgs(args []string) error {
	positional := false

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--dry-run" || arg == "-n":
			c.DryRun = true
		case arg == "--no-color":
			c.NoColor = true
		case strings.HasPrefix(arg, "--target-dir="):
			c.TargetDir = strings.TrimPrefix(arg, "--target-dir=")
		case arg == "--target-dir":
			if i+1 >= len(args) {
				return errors.New("--target-dir requires a path")
			}
			i++
			c.TargetDir = args[i]
		case strings.HasPrefix(arg, "--report="):
			c.ReportPath = strings.TrimPrefix(arg, "--report=")
		case arg == "--report":
			if i+1 >= len(args) {
				return errors.New("--report requires a path")
			}
			i++
			c.ReportPath = args[i]
		case strings.HasPrefix(arg, "-") && arg != "-":
			return fmt.Errorf("unknown flag: %s", arg)
		default:
			if positional {
				return fmt.Errorf("unexpected argument: %s", arg)
			}
			positional = true
			c.TargetDir = arg
		}
	}

	if c.TargetDir == "" {
		return errors.New("target directory must not be empty")
	}
	return nil
}

// Resolve returns a copy of c whose TargetDir is absolute and known to be
// an existing, readable directory.
func (c Config) Resolve() (Config, error) {
	dir, err := ExpandPath(c.TargetDir)
	if err != nil {
		return Config{}, err
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return Config{}, fmt.Errorf("resolving %s: %w", c.TargetDir, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, fmt.Errorf("%w: %s", ErrTargetNotFound, abs)
		}
		return Config{}, fmt.Errorf("stat %s: %w", abs, err)
	}
	if !info.IsDir() {
		return Config{}, fmt.Errorf("%w: %s", ErrNotDirectory, abs)
	}
	if _, err := os.ReadDir(abs); err != nil {
		return Config{}, fmt.Errorf("reading %s: %w", abs, err)
	}

	c.TargetDir = abs
	return c, nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expanding %s: %w", path, err)
	}
	return filepath.Join(home, path[1:]), nil
}
