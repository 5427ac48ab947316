// Command generate-report renders the diagnostic report of one
// bufferbloater run directory.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/golang/glog"

	"github.com/gangmuk/bufferbloater/env"
	"github.com/gangmuk/bufferbloater/report"
	"github.com/gangmuk/bufferbloater/simconfig"
)

var (
	format     = flag.String("format", env.ReportFormat, "Report format: pdf, png or svg")
	interval   = flag.Float64("interval", env.ReportInterval, "Stats dump interval in seconds, used to turn counts into rates")
	resolution = flag.Float64("resolution", env.ReportResolution, "Timeout bucket width in seconds")
	strict     = flag.Bool("strict", env.ReportStrict, "Abort on the first malformed telemetry row")
	configPath = flag.String("config", "", "Simulator config for the report title (default <data_dir>/"+simconfig.FileName+" if present)")
	summary    = flag.Bool("summary", false, "Also write the run summary as JSON next to the report")
)

func usage(w io.Writer) {
	fmt.Fprintf(w, "usage: %s [flags] <data_dir>\n", os.Args[0])
	flag.CommandLine.SetOutput(w)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = func() {
		usage(os.Stderr)
		os.Exit(1)
	}
	flag.Parse()
	code := run(flag.Args(), os.Stdout, os.Stderr)
	glog.Flush()
	os.Exit(code)
}

// run renders the report for the single data directory in args and returns
// the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) != 1 {
		usage(stderr)
		return 1
	}
	dataDir := args[0]
	if st, err := os.Stat(dataDir); err != nil || !st.IsDir() {
		fmt.Fprintln(stderr, "No data directory provided or found:", dataDir)
		return 1
	}

	opts := report.Options{
		Interval:   *interval,
		Resolution: *resolution,
		Format:     *format,
		Strict:     *strict,
		Title:      title(dataDir),
	}
	res, err := report.Generate(dataDir, opts)
	if err != nil {
		glog.Error("Report failed: ", err)
		fmt.Fprintln(stderr, "Report failed:", err)
		return 1
	}
	fmt.Fprint(stdout, res.Summary)
	if *summary {
		if err := res.Summary.WriteJSON(report.SummaryPath(dataDir)); err != nil {
			fmt.Fprintln(stderr, "Could not write summary:", err)
			return 1
		}
	}
	fmt.Fprintf(stdout, "Report saved to %s\n", res.Path)
	return 0
}

// title labels the report with the run's configuration when one is found.
func title(dataDir string) string {
	path := *configPath
	if path == "" {
		path = filepath.Join(dataDir, simconfig.FileName)
	}
	cfg, err := simconfig.Load(path)
	if errors.Is(err, os.ErrNotExist) && *configPath == "" {
		return filepath.Base(dataDir)
	} else if err != nil {
		glog.Warningf("Ignoring config %s: %v", path, err)
		return filepath.Base(dataDir)
	}
	return filepath.Base(dataDir) + ": " + cfg.Title()
}
