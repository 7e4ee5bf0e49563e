package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into paths, stage parameters, behavior, display, and utility.
// Color override flags (--color / --no-color) are applied after Parse so
// Config defaults hold unless set.

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// ParseFlags parses args (normally os.Args[1:]) into cfg. On --help or
// --version it prints and exits. On error it returns non-nil (e.g. unknown
// flag, bad numeric value).
func ParseFlags(cfg *Config, version string, args []string) error {
	fs := flag.NewFlagSet("minegraph", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs, version) }

	// Override flags: we capture bools then apply to cfg after Parse,
	// so that defaults from DefaultConfig() hold unless the user passes the flag.
	var over overrideFlags

	definePathFlags(fs, cfg)
	defineStageFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &over)
	defineUtilityFlags(fs, &over)

	if err := fs.Parse(args); err != nil {
		return err
	}

	applyOverrideFlags(cfg, &over)

	if over.showHelp {
		printUsage(fs, version)
		os.Exit(0)
	}
	if over.showVersion {
		fmt.Fprintln(os.Stdout, "minegraph v"+version)
		os.Exit(0)
	}

	if narg := fs.NArg(); narg > 0 {
		return fmt.Errorf("unexpected argument %q (all inputs are flags)", fs.Arg(0))
	}

	cfg.DataDir = NormalizeDirArg(cfg.DataDir)
	cfg.OutputDir = NormalizeDirArg(cfg.OutputDir)
	return nil
}

// overrideFlags holds boolean flags that are applied after Parse.
// These either override a default (forceColor/noColor) or trigger exit (showHelp, showVersion).
type overrideFlags struct {
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// definePathFlags registers --data_dir, --output_dir, --metadata.
func definePathFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.DataDir, "data_dir", "", "Directory containing the raw FASTA files")
	fs.StringVar(&cfg.OutputDir, "output_dir", "", "Directory the stages write results into")
	fs.StringVar(&cfg.Metadata, "metadata", "", "CSV or XLSX manifest listing FASTA files to process")
}

// defineStageFlags registers --threads, --tree_pars, --tree_bs, --quantile, --top_n.
func defineStageFlags(fs *flag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.Threads, "threads", cfg.Threads, "Threads for the containerized tools")
	fs.IntVar(&cfg.TreePars, "tree_pars", cfg.TreePars, "Parsimonious trees for the stats stage")
	fs.IntVar(&cfg.TreeBS, "tree_bs", cfg.TreeBS, "Bootstrap trees for the stats stage")
	fs.IntVar(&cfg.QuantilePercent, "quantile", cfg.QuantilePercent, "Quantile threshold as integer percent")
	fs.IntVar(&cfg.TopN, "top_n", cfg.TopN, "Top nodes kept in the stats visualization")
}

// defineBehaviorFlags registers --runtime, --dry-run.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config) {
	fs.Var(&runtimeValue{&cfg.ContainerRuntime}, "runtime", "Container runtime: docker | podman")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Print stage commands without running them")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
}

// defineDisplayFlags registers --color, --no-color, verbose, --check, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, o *overrideFlags) {
	fs.BoolVar(&o.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&o.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output (stream stage output)")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run container runtime diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
}

// defineUtilityFlags registers --version and --help (exit after printing).
func defineUtilityFlags(fs *flag.FlagSet, o *overrideFlags) {
	fs.BoolVar(&o.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&o.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&o.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&o.showHelp, "h", false, "Same as --help")
}

// applyOverrideFlags copies override flag values into cfg.
func applyOverrideFlags(cfg *Config, o *overrideFlags) {
	if o.noColor {
		cfg.ColorMode = ColorNever
	} else if o.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet, version string) {
	const col1 = 28 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "MineGraph v" + version + " — pangenome graph analysis workflow"},
		{"", ""},
		{"  minegraph [OPTIONS] --data_dir <path> --output_dir <path>", ""},
		{"", ""},
		{"Paths", ""},
		{"  --data_dir <path>", "Directory containing the raw FASTA files (required)"},
		{"  --output_dir <path>", "Directory for results; created if absent (required)"},
		{"  --metadata <path>", "CSV/XLSX with a 'fasta_files' column selecting inputs"},
		{"", ""},
		{"Stage parameters", ""},
		{"  --threads <n>", "Threads for PGGB, RepeatMasker and stats (default: 16)"},
		{"  --tree_pars <n>", "Parsimonious trees for the stats stage (default: 10)"},
		{"  --tree_bs <n>", "Bootstrap trees for the stats stage (default: 10)"},
		{"  --quantile <pct>", "Quantile threshold in percent (default: 25)"},
		{"  --top_n <n>", "Top nodes in the visualization (default: 50)"},
		{"", ""},
		{"Behavior", ""},
		{"  --runtime <docker|podman>", "Container runtime (default: docker)"},
		{"  -d, --dry-run", "Print stage commands without running them"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Stream stage output and debug logs"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "Container runtime diagnostics (binary, daemon, images)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
		{"", ""},
		{"", "Without --metadata, every *.fasta file in --data_dir is processed."},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapter so we can use the Runtime enum with flag.Var.

type runtimeValue struct{ p *Runtime }

func (r *runtimeValue) String() string {
	if r.p == nil {
		return ""
	}
	return string(*r.p)
}

func (r *runtimeValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "docker":
		*r.p = RuntimeDocker
	case "podman":
		*r.p = RuntimePodman
	default:
		return fmt.Errorf("invalid runtime %q (use 'docker' or 'podman')", s)
	}
	return nil
}
