// Package check provides container runtime diagnostics (--check mode) and
// pre-pipeline dependency validation (CheckDeps) for the runtime binary,
// its daemon, and the stage images.
package check

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/rakanhaib/MineGraph/internal/config"
	"github.com/rakanhaib/MineGraph/internal/pipeline"
)

// Sentinel errors returned by CheckDeps when the container runtime is unusable.
var (
	ErrRuntimeNotFound    = errors.New("container runtime not found on PATH")
	ErrRuntimeUnreachable = errors.New("container runtime found but not responding (is the daemon running?)")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck runs the interactive --check flow: prints availability of the
// runtime binary, daemon reachability, and local presence of both stage
// images. This is informational only; it does not stop on failure.
func RunCheck(cfg *config.Config, log Logger) {
	log.Info("=== System Check ===")

	rt := string(cfg.ContainerRuntime)
	checkRuntime(rt, log)
	checkImage(rt, pipeline.ImageOPGGB, log)
	checkImage(rt, pipeline.ImageRepeatMasker, log)
}

// checkRuntime verifies the runtime binary is on PATH, logs its version,
// and probes the daemon.
func checkRuntime(rt string, log Logger) {
	if _, err := exec.LookPath(rt); err != nil {
		log.Error("%s not found on PATH", rt)
		return
	}
	out, err := exec.Command(rt, "--version").Output()
	if err != nil {
		log.Warn("%s found but --version failed: %v", rt, err)
	} else {
		log.Success("%s", firstLine(string(out)))
	}

	if err := exec.Command(rt, "info").Run(); err != nil {
		log.Error("%s daemon not responding", rt)
		return
	}
	log.Success("%s daemon reachable", rt)
}

// checkImage reports whether image is present locally. A missing image is a
// warning only; the runtime pulls it on first use.
func checkImage(rt, image string, log Logger) {
	if err := exec.Command(rt, "image", "inspect", image).Run(); err != nil {
		log.Warn("image %s not present locally (will be pulled on first run)", image)
		return
	}
	log.Success("image %s present", image)
}

// CheckDeps is the pre-pipeline gate: the runtime binary must be on PATH
// and its daemon reachable. Image presence is not required here.
func CheckDeps(cfg *config.Config) error {
	rt := string(cfg.ContainerRuntime)
	if _, err := exec.LookPath(rt); err != nil {
		return ErrRuntimeNotFound
	}
	if err := exec.Command(rt, "info").Run(); err != nil {
		return ErrRuntimeUnreachable
	}
	return nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "\n"); idx > 0 {
		s = s[:idx]
	}
	return s
}
