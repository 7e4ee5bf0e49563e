package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rakanhaib/MineGraph/internal/config"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(">seq\nACGT\n"), 0o644))
}

func TestResolve_FromDirectory(t *testing.T) {
	t.Run("lists fasta files sorted", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "zebra.fasta")
		touch(t, dir, "apple.fasta")
		touch(t, dir, "notes.txt")
		touch(t, dir, "reads.fastq")

		cfg := config.DefaultConfig()
		cfg.DataDir = dir

		files, err := Resolve(&cfg)
		require.NoError(t, err)
		assert.Equal(t, []string{"apple.fasta", "zebra.fasta"}, files)
	})

	t.Run("extension match is case-insensitive", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "GENOME.FASTA")

		cfg := config.DefaultConfig()
		cfg.DataDir = dir

		files, err := Resolve(&cfg)
		require.NoError(t, err)
		assert.Equal(t, []string{"GENOME.FASTA"}, files)
	})

	t.Run("subdirectories ignored", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "top.fasta")
		sub := filepath.Join(dir, "nested")
		require.NoError(t, os.MkdirAll(sub, 0o755))
		touch(t, sub, "deep.fasta")

		cfg := config.DefaultConfig()
		cfg.DataDir = dir

		files, err := Resolve(&cfg)
		require.NoError(t, err)
		assert.Equal(t, []string{"top.fasta"}, files)
	})

	t.Run("empty directory is an error", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.DataDir = t.TempDir()

		_, err := Resolve(&cfg)
		assert.ErrorContains(t, err, "no FASTA files")
	})

	t.Run("missing directory is an error", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.DataDir = filepath.Join(t.TempDir(), "absent")

		_, err := Resolve(&cfg)
		assert.Error(t, err)
	})
}

func TestResolve_FromManifest(t *testing.T) {
	t.Run("manifest order wins over directory contents", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "ignored.fasta")

		manifestPath := filepath.Join(t.TempDir(), "list.csv")
		require.NoError(t, os.WriteFile(manifestPath,
			[]byte("fasta_files\nb.fasta\na.fasta\n"), 0o644))

		cfg := config.DefaultConfig()
		cfg.DataDir = dir
		cfg.Metadata = manifestPath

		files, err := Resolve(&cfg)
		require.NoError(t, err)
		assert.Equal(t, []string{"b.fasta", "a.fasta"}, files)
	})

	t.Run("empty manifest is an error", func(t *testing.T) {
		manifestPath := filepath.Join(t.TempDir(), "list.csv")
		require.NoError(t, os.WriteFile(manifestPath, []byte("fasta_files\n"), 0o644))

		cfg := config.DefaultConfig()
		cfg.DataDir = t.TempDir()
		cfg.Metadata = manifestPath

		_, err := Resolve(&cfg)
		assert.ErrorContains(t, err, "no FASTA files")
	})

	t.Run("bad manifest propagates", func(t *testing.T) {
		manifestPath := filepath.Join(t.TempDir(), "list.csv")
		require.NoError(t, os.WriteFile(manifestPath,
			[]byte("fasta_files,species\na.fasta,rice\n"), 0o644))

		cfg := config.DefaultConfig()
		cfg.Metadata = manifestPath

		_, err := Resolve(&cfg)
		assert.Error(t, err)
	})
}
