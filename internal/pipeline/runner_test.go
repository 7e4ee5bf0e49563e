package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rakanhaib/MineGraph/internal/config"
	"github.com/rakanhaib/MineGraph/internal/container"
	"github.com/rakanhaib/MineGraph/internal/logging"
)

// fakeRunner records invocations and fails at a chosen stage.
type fakeRunner struct {
	calls  []container.Invocation
	failAt int // 1-based call index to fail at; 0 means never
}

func (f *fakeRunner) Run(_ context.Context, inv container.Invocation) container.Result {
	f.calls = append(f.calls, inv)
	if f.failAt == len(f.calls) {
		return container.Result{Stderr: "tool exploded\n", Err: errors.New("exit status 1")}
	}
	return container.Result{}
}

func testLogger(t *testing.T) *logging.Logger {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	log, err := logging.NewLogger(&cfg)
	require.NoError(t, err)
	t.Cleanup(func() { log.Close() })
	return log
}

func runConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.OutputDir = t.TempDir()
	touch(t, cfg.DataDir, "a.fasta")
	touch(t, cfg.DataDir, "b.fasta")
	return cfg
}

func TestRun_AllStagesInOrder(t *testing.T) {
	cfg := runConfig(t)
	runner := &fakeRunner{}

	stats, err := Run(context.Background(), &cfg, testLogger(t), runner)
	require.NoError(t, err)

	require.Len(t, runner.calls, 5)
	assert.True(t, stats.Finished())
	assert.Equal(t, 5, stats.Completed)

	// Stage 1 gets the resolved files positionally; stages 2-5 mount only
	// the output directory.
	assert.Equal(t, ImageOPGGB, runner.calls[0].Image)
	assert.Equal(t, []string{"a.fasta", "b.fasta"}, runner.calls[0].Args[len(runner.calls[0].Args)-2:])
	for i, inv := range runner.calls[1:] {
		assert.Equal(t, []container.Mount{{Host: cfg.OutputDir, Container: "/output"}}, inv.Mounts,
			"stage %d mounts", i+2)
	}
	assert.Equal(t, ImageRepeatMasker, runner.calls[1].Image)
}

func TestRun_FailFast(t *testing.T) {
	for failAt := 1; failAt <= 5; failAt++ {
		cfg := runConfig(t)
		runner := &fakeRunner{failAt: failAt}

		stats, err := Run(context.Background(), &cfg, testLogger(t), runner)
		require.Error(t, err, "failAt=%d", failAt)
		assert.Len(t, runner.calls, failAt, "no stage after the failed one may run")
		assert.Equal(t, failAt-1, stats.Completed)
		assert.False(t, stats.Finished())
	}
}

func TestRun_ResolveFailureRunsNothing(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir() // no FASTA files
	cfg.OutputDir = t.TempDir()
	runner := &fakeRunner{}

	_, err := Run(context.Background(), &cfg, testLogger(t), runner)
	require.Error(t, err)
	assert.Empty(t, runner.calls, "no stage may start when resolution fails")
}

func TestRun_BadManifestRunsNothing(t *testing.T) {
	cfg := runConfig(t)
	cfg.Metadata = filepath.Join(t.TempDir(), "list.csv")
	require.NoError(t, os.WriteFile(cfg.Metadata,
		[]byte("fasta_files,extra\na.fasta,x\n"), 0o644))
	runner := &fakeRunner{}

	_, err := Run(context.Background(), &cfg, testLogger(t), runner)
	require.Error(t, err)
	assert.Empty(t, runner.calls)
}

func TestRun_CancelledContext(t *testing.T) {
	cfg := runConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	runner := &fakeRunner{}

	_, err := Run(ctx, &cfg, testLogger(t), runner)
	require.Error(t, err)
	assert.Empty(t, runner.calls)
}

// End-to-end scenario: manifest-selected files, 8 threads.
func TestRun_ManifestScenario(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.OutputDir = t.TempDir()
	cfg.Threads = 8
	cfg.Metadata = filepath.Join(t.TempDir(), "list.csv")
	require.NoError(t, os.WriteFile(cfg.Metadata,
		[]byte("fasta_files\na.fasta\nb.fasta\n"), 0o644))

	runner := &fakeRunner{}
	_, err := Run(context.Background(), &cfg, testLogger(t), runner)
	require.NoError(t, err)
	require.Len(t, runner.calls, 5)

	prepare := runner.calls[0]
	assert.Equal(t,
		[]string{"python", "/prepare_and_mash_input.py", "/data", "/output", "a.fasta", "b.fasta"},
		prepare.Args)

	mask := runner.calls[1]
	assert.Contains(t, mask.Args[2], "-pa 8")

	stats := runner.calls[4]
	assert.Contains(t, stats.Args, "0.25")
}
