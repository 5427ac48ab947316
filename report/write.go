package report

import (
	"fmt"
	"os"
	"path/filepath"
)

// Path is where the report of a run directory is written.
func Path(dataDir, format string) string {
	return filepath.Join(dataDir, "report."+format)
}

// WriteFile renders l into a temporary file next to path and renames it
// into place, so a failed render never leaves a partial report behind. An
// existing report at path is replaced.
func WriteFile(path string, l *Layout, format string) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".report-*")
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = Render(tmp, l, format); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("chmod report: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename report: %w", err)
	}
	return nil
}
