// Command minegraph is the CLI entrypoint for the MineGraph workflow driver.
//
// It parses flags, validates configuration and paths, and either runs
// container runtime diagnostics (--check) or the five-stage analysis
// pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rakanhaib/MineGraph/internal/check"
	"github.com/rakanhaib/MineGraph/internal/config"
	"github.com/rakanhaib/MineGraph/internal/container"
	"github.com/rakanhaib/MineGraph/internal/display"
	"github.com/rakanhaib/MineGraph/internal/logging"
	"github.com/rakanhaib/MineGraph/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build", these retain their defaults.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap — the logger doesn't exist yet, so errors go
	// directly to stderr via fmt. Once NewLogger succeeds, all output
	// goes through the logger for consistent formatting and log-file capture.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, version, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "minegraph: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "minegraph: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "minegraph: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available — all output goes through log from here on.
	display.PrintBanner()

	if cfg.CheckOnly {
		check.RunCheck(&cfg, log)
		return 0
	}

	// Resolve and validate paths: the data dir must exist, the output dir
	// is created if needed, and output must not be inside data (stage 1
	// would rediscover its own downsampled FASTA on a rerun).
	dataAbs, err := absPath(cfg.DataDir)
	if err != nil {
		log.Error("Data directory not found: %s", cfg.DataDir)
		return 1
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		log.Error("Cannot create output directory: %s", cfg.OutputDir)
		return 1
	}
	outputAbs, err := absPath(cfg.OutputDir)
	if err != nil {
		log.Error("Cannot resolve output path: %s", cfg.OutputDir)
		return 1
	}
	if err := cfg.ValidatePaths(dataAbs, outputAbs); err != nil {
		log.Error("%v", err)
		log.Error("Choose an output path outside: %s", cfg.DataDir)
		return 1
	}
	// Mounts need absolute host paths; the runtime rejects relative ones.
	cfg.DataDir = dataAbs
	cfg.OutputDir = outputAbs

	log.Info("=== MineGraph v%s (%s) ===", version, commit)
	log.Info("Data:   %s", cfg.DataDir)
	log.Info("Output: %s", cfg.OutputDir)
	log.Info("Threads: %d | Trees: %d pars / %d bs | Quantile: %g | Top N: %d",
		cfg.Threads, cfg.TreePars, cfg.TreeBS, cfg.QuantileFraction(), cfg.TopN)
	if cfg.DryRun {
		log.Warn("DRY RUN — no containers will be started")
	}
	log.Info("")

	// Fail fast if the container runtime is unusable.
	if !cfg.DryRun {
		if err := check.CheckDeps(&cfg); err != nil {
			log.Error("%v", err)
			return 1
		}
	}

	// Phase 3: Signal handling — cancel context on SIGINT/SIGTERM so the
	// running stage is stopped and no later stage starts.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, stopping…")
		cancel()
	}()

	// Phase 4: Run the pipeline (resolve → prepare → mask → extract →
	// align → stats), fail-fast on the first non-zero stage exit.
	var runner container.Runner
	if cfg.DryRun {
		runner = &container.DryRunner{Printf: log.Info, Runtime: string(cfg.ContainerRuntime)}
	} else {
		runner = &container.ExecRunner{Runtime: string(cfg.ContainerRuntime), Verbose: cfg.Verbose}
	}

	if _, err := pipeline.Run(ctx, &cfg, log, runner); err != nil {
		log.Error("%v", err)
		return 1
	}
	return 0
}

// absPath returns the absolute, symlink-resolved path for safe comparison
// of data vs output directory hierarchies.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
