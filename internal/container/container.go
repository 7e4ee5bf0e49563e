// Package container models a single container-runtime invocation and runs it.
// The rendered command line is the integration contract with the stage
// images: argument order, flag names, and mount targets must stay bit-exact.
package container

import "fmt"

// Canonical in-container mount points shared by all stage images.
const (
	DataMount   = "/data"
	OutputMount = "/output"
)

// Mount binds a host directory to an in-container path.
type Mount struct {
	Host      string
	Container string
}

func (m Mount) String() string {
	return fmt.Sprintf("%s:%s", m.Host, m.Container)
}

// Invocation describes one `<runtime> run` call: the image, the ordered
// volume mounts, and the argv executed inside the container.
type Invocation struct {
	Image  string
	Mounts []Mount
	Args   []string

	// DiscardOutput silences the tool's stdout and stderr entirely
	// (RepeatMasker is noisy and its output is not consulted).
	DiscardOutput bool
}

// CommandLine renders the full host command line for the given runtime
// binary: `<runtime> run --rm -v host:ctr ... <image> <args...>`.
func (inv Invocation) CommandLine(runtime string) []string {
	cmd := []string{runtime, "run", "--rm"}
	for _, m := range inv.Mounts {
		cmd = append(cmd, "-v", m.String())
	}
	cmd = append(cmd, inv.Image)
	cmd = append(cmd, inv.Args...)
	return cmd
}
