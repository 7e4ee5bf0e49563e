package pipeline

import (
	"strconv"

	"github.com/rakanhaib/MineGraph/internal/config"
	"github.com/rakanhaib/MineGraph/internal/container"
)

// Stage images and entry scripts. Fixed names are part of the integration
// contract with the published containers.
const (
	ImageOPGGB        = "rakanhaib/opggb"
	ImageRepeatMasker = "pegi3s/repeat_masker"

	scriptPrepare = "/prepare_and_mash_input.py"
	scriptExtract = "/run_repeatmask.py"
	scriptPGGB    = "/run_pggb.py"
	scriptStats   = "/run_stats.py"

	// Merged, downsampled FASTA written by stage 1 and masked by stage 2.
	downsampledFasta = "downsampled_panSN_output.fasta"
)

// A Stage builds one external-process invocation of the workflow. Stages
// hold no state; everything is derived from the Run Configuration and the
// resolved file list.
type Stage interface {
	Name() string
	Invocation(cfg *config.Config, files []string) container.Invocation
}

// Stages returns the five workflow stages in execution order.
func Stages() []Stage {
	return []Stage{
		prepareStage{},
		maskStage{},
		extractStage{},
		alignStage{},
		statsStage{},
	}
}

func dataMount(cfg *config.Config) container.Mount {
	return container.Mount{Host: cfg.DataDir, Container: container.DataMount}
}

func outputMount(cfg *config.Config) container.Mount {
	return container.Mount{Host: cfg.OutputDir, Container: container.OutputMount}
}

// prepareStage merges and downsamples the selected FASTA files. The resolved
// filenames are appended as positional arguments; the tool reads them from
// /data and writes the downsampled FASTA into /output.
type prepareStage struct{}

func (prepareStage) Name() string { return "FASTA preparation and mash input" }

func (prepareStage) Invocation(cfg *config.Config, files []string) container.Invocation {
	args := []string{"python", scriptPrepare, container.DataMount, container.OutputMount}
	args = append(args, files...)
	return container.Invocation{
		Image:  ImageOPGGB,
		Mounts: []container.Mount{dataMount(cfg), outputMount(cfg)},
		Args:   args,
	}
}

// maskStage runs RepeatMasker over the downsampled FASTA. RepeatMasker has
// no direct container entrypoint in the pegi3s image, so the command goes
// through bash -c. Its own output is discarded; only the exit status and
// the files it leaves in /output matter.
type maskStage struct{}

func (maskStage) Name() string { return "RepeatMasker tandem repeat analysis" }

func (maskStage) Invocation(cfg *config.Config, _ []string) container.Invocation {
	cmd := "RepeatMasker -species viridiplantae" +
		" -s " + container.OutputMount + "/" + downsampledFasta +
		" -pa " + strconv.Itoa(cfg.Threads) +
		" -no_is"
	return container.Invocation{
		Image:         ImageRepeatMasker,
		Mounts:        []container.Mount{outputMount(cfg)},
		Args:          []string{"bash", "-c", cmd},
		DiscardOutput: true,
	}
}

// extractStage picks the longest tandem repeat from the RepeatMasker output
// and updates the parameter file that stage 4 consumes. The driver never
// inspects that file.
type extractStage struct{}

func (extractStage) Name() string { return "longest tandem repeat extraction" }

func (extractStage) Invocation(cfg *config.Config, _ []string) container.Invocation {
	return container.Invocation{
		Image:  ImageOPGGB,
		Mounts: []container.Mount{outputMount(cfg)},
		Args:   []string{"python", scriptExtract, container.OutputMount},
	}
}

// alignStage runs PGGB graph construction and alignment.
type alignStage struct{}

func (alignStage) Name() string { return "PGGB alignment and graph generation" }

func (alignStage) Invocation(cfg *config.Config, _ []string) container.Invocation {
	return container.Invocation{
		Image:  ImageOPGGB,
		Mounts: []container.Mount{outputMount(cfg)},
		Args:   []string{"python", scriptPGGB, strconv.Itoa(cfg.Threads)},
	}
}

// statsStage produces the final statistics and visualization artifacts.
// The quantile crosses the wire as a fraction; the percent-to-fraction
// conversion happens exactly once, in config.QuantileFraction.
type statsStage struct{}

func (statsStage) Name() string { return "graph statistics and visualization" }

func (statsStage) Invocation(cfg *config.Config, _ []string) container.Invocation {
	return container.Invocation{
		Image:  ImageOPGGB,
		Mounts: []container.Mount{outputMount(cfg)},
		Args: []string{
			"python", scriptStats,
			"--threads", strconv.Itoa(cfg.Threads),
			"--tree-pars", strconv.Itoa(cfg.TreePars),
			"--tree-bs", strconv.Itoa(cfg.TreeBS),
			"--quantile", strconv.FormatFloat(cfg.QuantileFraction(), 'g', -1, 64),
			"--top-n", strconv.Itoa(cfg.TopN),
			"--input", container.OutputMount + "/pggb",
			"--output", container.OutputMount + "/stats",
		},
	}
}
