package pipeline

import "time"

// RunStats tracks how far the workflow got and how long the completed
// stages took.
type RunStats struct {
	Total     int
	Completed int
	Elapsed   time.Duration
}

// Finished reports whether every stage ran to completion.
func (s *RunStats) Finished() bool {
	return s.Total > 0 && s.Completed == s.Total
}
