package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// RunContext fixes the clock and output layout of one run so that every
// file written during the run shares the same timestamp suffix. Built once
// in main and passed down; tests inject a fixed time and a temp dir.
type RunContext struct {
	StartedAt time.Time
	OutputDir string
}

// NewRunContext returns a run context rooted at dir, stamped with now.
func NewRunContext(dir string, now time.Time) *RunContext {
	return &RunContext{StartedAt: now, OutputDir: dir}
}

// Stamp returns the run's filename timestamp (20060102_150405).
func (rc *RunContext) Stamp() string {
	return rc.StartedAt.Format("20060102_150405")
}

// Path builds a timestamped output path, e.g.
// Path("raw", "materials", "csv") → <out>/raw/materials_20250611_104500.csv.
func (rc *RunContext) Path(subdir, name, ext string) string {
	return filepath.Join(rc.OutputDir, subdir, fmt.Sprintf("%s_%s.%s", name, rc.Stamp(), ext))
}
