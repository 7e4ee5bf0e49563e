// Package pipeline resolves the input file set and drives the five workflow
// stages strictly in order, stopping at the first failure.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rakanhaib/MineGraph/internal/config"
	"github.com/rakanhaib/MineGraph/internal/container"
	"github.com/rakanhaib/MineGraph/internal/display"
	"github.com/rakanhaib/MineGraph/internal/logging"
)

// Run executes the whole workflow: resolve the file set, then run each
// stage to completion before the next. A non-zero exit from any stage
// aborts the run immediately; artifacts already written stay on disk.
// The returned stats cover only what actually ran.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, runner container.Runner) (RunStats, error) {
	var stats RunStats

	files, err := Resolve(cfg)
	if err != nil {
		return stats, err
	}

	if cfg.Metadata != "" {
		log.Info("Processing %d selected files from %s", len(files), cfg.Metadata)
	} else {
		log.Info("No metadata given; processing all FASTA files in %s", cfg.DataDir)
	}
	log.Info("Files: %s", display.FormatFileList(files, 8))
	log.Info("")

	stages := Stages()
	stats.Total = len(stages)

	for i, st := range stages {
		if ctx.Err() != nil {
			return stats, fmt.Errorf("interrupted before %s", st.Name())
		}

		log.Info("[STEP %d/%d] Running %s...", i+1, len(stages), st.Name())
		inv := st.Invocation(cfg, files)
		log.Debug(cfg.Verbose, "  %s", strings.Join(inv.CommandLine(string(cfg.ContainerRuntime)), " "))

		start := time.Now()
		res := runner.Run(ctx, inv)
		elapsed := time.Since(start)

		if res.Err != nil {
			logStderrTail(log, res.Stderr)
			return stats, fmt.Errorf("stage %d (%s): %w", i+1, st.Name(), res.Err)
		}

		stats.Completed++
		stats.Elapsed += elapsed
		log.Success("%s completed in %s", capitalize(st.Name()), display.FormatDuration(elapsed))
	}

	log.Info("")
	log.Success("Workflow complete: %d/%d stages in %s. Results are in %s",
		stats.Completed, stats.Total, display.FormatDuration(stats.Elapsed), cfg.OutputDir)
	return stats, nil
}

// logStderrTail reports the last lines of a failed stage's captured stderr.
func logStderrTail(log *logging.Logger, stderr string) {
	if stderr == "" {
		return
	}
	log.Error("Last stage output:")
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	start := 0
	if len(lines) > 20 {
		start = len(lines) - 20
	}
	for _, l := range lines[start:] {
		log.Error("  %s", l)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
