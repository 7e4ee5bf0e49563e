package container

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Result holds the outcome of a single container invocation.
type Result struct {
	Stderr string
	Err    error
}

// Runner executes container invocations. The pipeline depends on this
// interface so stages can be driven against a recording fake in tests.
type Runner interface {
	Run(ctx context.Context, inv Invocation) Result
}

// ExecRunner runs invocations through the container runtime CLI. When
// verbose, the tool's output is tee'd to the terminal in real time;
// otherwise stderr is captured silently for failure reporting.
type ExecRunner struct {
	Runtime string
	Verbose bool
}

// Run blocks until the container exits. A non-zero exit status is returned
// in Result.Err together with the captured stderr.
func (r *ExecRunner) Run(ctx context.Context, inv Invocation) Result {
	argv := inv.CommandLine(r.Runtime)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	var stderrBuf bytes.Buffer
	switch {
	case inv.DiscardOutput:
		cmd.Stdout = io.Discard
		cmd.Stderr = io.Discard
	case r.Verbose:
		cmd.Stdout = os.Stdout
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	default:
		cmd.Stdout = os.Stdout
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	return Result{
		Stderr: stderrBuf.String(),
		Err:    err,
	}
}

// DryRunner renders invocations without executing anything. Commands are
// reported through Printf (the pipeline passes its logger).
type DryRunner struct {
	Printf  func(format string, args ...interface{})
	Runtime string
}

// Run logs the rendered command line and reports success.
func (r *DryRunner) Run(ctx context.Context, inv Invocation) Result {
	r.Printf("[DRY] %s", strings.Join(inv.CommandLine(r.Runtime), " "))
	return Result{}
}
