package report

import (
	"fmt"
	"path/filepath"

	"github.com/golang/glog"

	"github.com/gangmuk/bufferbloater/telemetry"
)

// Replicates is how many replicates are loaded per run directory.
const Replicates = 1

// Result is what one Generate call produced.
type Result struct {
	Path    string
	Summary Summary
}

// Generate loads the telemetry in dataDir, renders its report and writes
// it to Path(dataDir, opts.Format).
func Generate(dataDir string, opts Options) (*Result, error) {
	reps, err := telemetry.LoadRun(dataDir, Replicates, opts.Strict)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", dataDir, err)
	}
	rep := reps[0]

	l, err := NewLayout(rep, opts)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", dataDir, err)
	}
	glog.V(1).Infof("%s: %v, %.1fs, %d+%d timeout buckets", dataDir, l.Origin,
		l.Duration, len(l.Timeouts), len(l.TimeoutOrigins))

	path := Path(dataDir, opts.Format)
	if err := WriteFile(path, l, opts.Format); err != nil {
		return nil, err
	}
	return &Result{Path: path, Summary: Summarize(rep, l)}, nil
}

// SummaryPath is where Generate's caller stores the JSON summary.
func SummaryPath(dataDir string) string {
	return filepath.Join(dataDir, "report.summary.json")
}
