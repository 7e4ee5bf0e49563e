package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rakanhaib/MineGraph/internal/config"
	"github.com/rakanhaib/MineGraph/internal/container"
)

func stageConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.DataDir = "/d"
	cfg.OutputDir = "/o"
	return cfg
}

func TestStages_OrderAndCount(t *testing.T) {
	stages := Stages()
	require.Len(t, stages, 5)

	names := make([]string, len(stages))
	for i, st := range stages {
		names[i] = st.Name()
	}
	assert.Equal(t, []string{
		"FASTA preparation and mash input",
		"RepeatMasker tandem repeat analysis",
		"longest tandem repeat extraction",
		"PGGB alignment and graph generation",
		"graph statistics and visualization",
	}, names)
}

func TestPrepareStage(t *testing.T) {
	cfg := stageConfig()
	inv := prepareStage{}.Invocation(&cfg, []string{"a.fasta", "b.fasta"})

	assert.Equal(t, ImageOPGGB, inv.Image)
	assert.Equal(t, []container.Mount{
		{Host: "/d", Container: "/data"},
		{Host: "/o", Container: "/output"},
	}, inv.Mounts)
	assert.Equal(t,
		[]string{"python", "/prepare_and_mash_input.py", "/data", "/output", "a.fasta", "b.fasta"},
		inv.Args)
	assert.False(t, inv.DiscardOutput)
}

func TestMaskStage(t *testing.T) {
	cfg := stageConfig()
	cfg.Threads = 8
	inv := maskStage{}.Invocation(&cfg, nil)

	assert.Equal(t, ImageRepeatMasker, inv.Image)
	assert.Equal(t, []container.Mount{{Host: "/o", Container: "/output"}}, inv.Mounts)
	require.Len(t, inv.Args, 3)
	assert.Equal(t, "bash", inv.Args[0])
	assert.Equal(t, "-c", inv.Args[1])
	assert.Equal(t,
		"RepeatMasker -species viridiplantae -s /output/downsampled_panSN_output.fasta -pa 8 -no_is",
		inv.Args[2])
	assert.True(t, inv.DiscardOutput, "RepeatMasker output is discarded")
}

func TestExtractStage(t *testing.T) {
	cfg := stageConfig()
	inv := extractStage{}.Invocation(&cfg, nil)

	assert.Equal(t, ImageOPGGB, inv.Image)
	assert.Equal(t, []container.Mount{{Host: "/o", Container: "/output"}}, inv.Mounts)
	assert.Equal(t, []string{"python", "/run_repeatmask.py", "/output"}, inv.Args)
}

func TestAlignStage(t *testing.T) {
	cfg := stageConfig()
	cfg.Threads = 32
	inv := alignStage{}.Invocation(&cfg, nil)

	assert.Equal(t, ImageOPGGB, inv.Image)
	assert.Equal(t, []string{"python", "/run_pggb.py", "32"}, inv.Args)
}

func TestStatsStage(t *testing.T) {
	t.Run("quantile percent crosses the wire as a fraction", func(t *testing.T) {
		cfg := stageConfig()
		cfg.QuantilePercent = 25
		inv := statsStage{}.Invocation(&cfg, nil)
		assert.Contains(t, inv.Args, "0.25")
		assert.NotContains(t, inv.Args, "25")
	})

	t.Run("full argument surface", func(t *testing.T) {
		cfg := stageConfig()
		cfg.Threads = 8
		cfg.TreePars = 20
		cfg.TreeBS = 30
		cfg.QuantilePercent = 50
		cfg.TopN = 100

		inv := statsStage{}.Invocation(&cfg, nil)
		assert.Equal(t, []string{
			"python", "/run_stats.py",
			"--threads", "8",
			"--tree-pars", "20",
			"--tree-bs", "30",
			"--quantile", "0.5",
			"--top-n", "100",
			"--input", "/output/pggb",
			"--output", "/output/stats",
		}, inv.Args)
		assert.Equal(t, []container.Mount{{Host: "/o", Container: "/output"}}, inv.Mounts)
	})
}
