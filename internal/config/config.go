// Package config holds runtime configuration: defaults, CLI flag parsing, and
// validation. Numeric defaults match the legacy MineGraph.py driver for parity.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// --- Enum types for validated string fields ---

// Runtime selects the container runtime binary used to run the stages.
type Runtime string

const (
	RuntimeDocker Runtime = "docker" // Docker CLI (default).
	RuntimePodman Runtime = "podman" // Podman CLI (docker-compatible run surface).
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig] and
// then mutated by [ParseFlags] before being passed (by pointer) to packages
// that need it. It is read-only after flag parsing; the five stage
// invocations are derived from it.
type Config struct {
	// Paths.
	DataDir   string // --data_dir: host directory with the raw FASTA files.
	OutputDir string // --output_dir: host directory the stages write into.
	Metadata  string // --metadata: optional CSV/XLSX manifest of filenames.

	// Stage parameters.
	Threads         int // Default: 16. Parallelism inside the containerized tools.
	TreePars        int // Default: 10. Parsimonious trees for stage 5.
	TreeBS          int // Default: 10. Bootstrap trees for stage 5.
	QuantilePercent int // Default: 25. Integer percent; see QuantileFraction.
	TopN            int // Default: 50. Top nodes kept in stage 5 visualization.

	// Container runtime.
	ContainerRuntime Runtime // Default: "docker".

	// Behavior flags.
	DryRun bool // Print stage commands without running them.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
	CheckOnly bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with all defaults matching the legacy
// MineGraph.py driver. Used as the base before [ParseFlags] applies CLI
// overrides.
func DefaultConfig() Config {
	return Config{
		Threads:          16,
		TreePars:         10,
		TreeBS:           10,
		QuantilePercent:  25,
		TopN:             50,
		ContainerRuntime: RuntimeDocker,
		ColorMode:        ColorAuto,
	}
}

// QuantileFraction converts the percent flag value to the fraction the
// stage 5 tool expects. This is the single conversion point: the flag
// surface speaks integer percent, everything downstream speaks fraction.
func (c *Config) QuantileFraction() float64 {
	return float64(c.QuantilePercent) / 100
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields and numeric parameter ranges. When not in
// CheckOnly mode, it also requires the data and output directory paths.
// It runs before any stage is attempted; a failure here means no external
// process is ever started.
func (c *Config) Validate() error {
	switch c.ContainerRuntime {
	case RuntimeDocker, RuntimePodman:
		// valid
	default:
		return errors.New("invalid runtime (use 'docker' or 'podman')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.Threads <= 0 {
		return fmt.Errorf("threads must be positive (got %d)", c.Threads)
	}
	if c.TreePars <= 0 {
		return fmt.Errorf("tree_pars must be positive (got %d)", c.TreePars)
	}
	if c.TreeBS <= 0 {
		return fmt.Errorf("tree_bs must be positive (got %d)", c.TreeBS)
	}
	if c.QuantilePercent <= 0 || c.QuantilePercent > 100 {
		return fmt.Errorf("quantile must be a percent in (0,100] (got %d)", c.QuantilePercent)
	}
	if c.TopN <= 0 {
		return fmt.Errorf("top_n must be positive (got %d)", c.TopN)
	}

	if c.Metadata != "" {
		ext := strings.ToLower(filepath.Ext(c.Metadata))
		if ext != ".csv" && ext != ".xlsx" {
			return fmt.Errorf("unsupported manifest format %q (use .csv or .xlsx)", filepath.Ext(c.Metadata))
		}
	}

	if c.CheckOnly {
		return nil
	}
	if c.DataDir == "" || c.OutputDir == "" {
		return errors.New("need both --data_dir and --output_dir")
	}
	return nil
}

// ValidatePaths ensures the resolved output directory is not inside (or equal
// to) the resolved data directory. Stage 1 would otherwise rediscover the
// downsampled FASTA it wrote as an input on a rerun. Both arguments must be
// absolute, symlink-resolved paths.
func (c *Config) ValidatePaths(dataAbs, outputAbs string) error {
	sep := string(filepath.Separator)
	if outputAbs == dataAbs || strings.HasPrefix(outputAbs+sep, dataAbs+sep) {
		return errors.New("output directory must not be inside data directory")
	}
	return nil
}
