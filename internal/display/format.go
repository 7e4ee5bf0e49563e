package display

import (
	"fmt"
	"strings"
	"time"
)

// FormatDuration returns a compact human-readable duration (e.g. "42s",
// "3m12s", "1h05m"). Sub-second runs round up to "1s" so a completed stage
// never reports zero time.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return "1s"
	}
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh%02dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm%02ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// FormatFileList joins filenames for log output, truncating after max names
// (e.g. "a.fasta, b.fasta, … (+12 more)").
func FormatFileList(files []string, max int) string {
	if len(files) <= max {
		return strings.Join(files, ", ")
	}
	return fmt.Sprintf("%s, … (+%d more)", strings.Join(files[:max], ", "), len(files)-max)
}
