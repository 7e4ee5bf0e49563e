package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rakanhaib/MineGraph/internal/config"
	"github.com/rakanhaib/MineGraph/internal/manifest"
)

const fastaExtension = ".fasta"

// Resolve determines the set of FASTA filenames a run processes: from the
// manifest when one is configured, otherwise every FASTA file directly in
// the data directory. An empty result is an error; stage 1 must never run
// on nothing.
func Resolve(cfg *config.Config) ([]string, error) {
	var (
		files []string
		err   error
	)
	if cfg.Metadata != "" {
		files, err = manifest.Load(cfg.Metadata)
	} else {
		files, err = listFasta(cfg.DataDir)
	}
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no FASTA files to process (data dir %s, metadata %q)", cfg.DataDir, cfg.Metadata)
	}
	return files, nil
}

// listFasta returns the basenames of FASTA files directly in dir (no
// recursion), sorted lexicographically for deterministic stage 1 arguments.
func listFasta(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), fastaExtension) {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}
