// Command bloatrun runs one bufferbloater simulation into a fresh output
// directory, renders its report and archives the configuration.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/golang/glog"

	"github.com/gangmuk/bufferbloater/archive"
	"github.com/gangmuk/bufferbloater/bench"
	"github.com/gangmuk/bufferbloater/clientlib"
	"github.com/gangmuk/bufferbloater/env"
	"github.com/gangmuk/bufferbloater/report"
	"github.com/gangmuk/bufferbloater/simconfig"
)

var (
	simulator  = flag.String("simulator", env.SimulatorBinary, "Path of the bufferbloater simulator binary")
	outputRoot = flag.String("output_root", env.OutputRoot, "Directory holding one output directory per run")
	bucket     = flag.String("bucket", env.StorageBucket, "Cloud Storage bucket to upload the run to (optional)")
	format     = flag.String("format", env.ReportFormat, "Report format: pdf, png or svg")
	interval   = flag.Float64("interval", env.ReportInterval, "Stats dump interval in seconds")
	resolution = flag.Float64("resolution", env.ReportResolution, "Timeout bucket width in seconds")
	strict     = flag.Bool("strict", env.ReportStrict, "Abort the report on the first malformed telemetry row")
	timeout    = flag.Duration("timeout", 0, "Abort the simulation after this long (0 waits for it)")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [flags] <config_path> <output_postfix>\n", os.Args[0])
	flag.PrintDefaults()
	os.Exit(1)
}

func main() {
	flag.Usage = usage
	flag.Parse()
	defer glog.Flush()

	if flag.NArg() != 2 {
		usage()
	}
	configPath, postfix := flag.Arg(0), flag.Arg(1)

	cfg, title := readConfig(configPath, postfix)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	outDir := filepath.Join(*outputRoot, postfix)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		glog.Exit("Could not mkdir: ", outDir, ": ", err)
	}

	args := clientlib.SimulatorArgs(*simulator, configPath, outDir)
	prov := bench.NewProvenance(args)
	if cfg != nil {
		env.Print("Running", args, "for about", cfg.Duration())
	}

	simCtx := ctx
	if *timeout > 0 {
		var cancel context.CancelFunc
		simCtx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}
	err := clientlib.NewProcess(args...).Run(simCtx)
	prov.Finish(clientlib.ExitCode(err))
	if _, perr := prov.WriteFile(outDir); perr != nil {
		glog.Error("Could not write provenance: ", perr)
	}
	if err != nil {
		glog.Exit("Simulation failed: ", err)
	}
	env.Print("Simulation finished in", prov.Elapsed().Round(time.Millisecond))

	res, err := report.Generate(outDir, report.Options{
		Interval:   *interval,
		Resolution: *resolution,
		Format:     *format,
		Strict:     *strict,
		Title:      title,
	})
	if err != nil {
		glog.Exit("Report failed: ", err)
	}
	fmt.Print(res.Summary)
	if err := res.Summary.WriteJSON(report.SummaryPath(outDir)); err != nil {
		glog.Error("Could not write summary: ", err)
	}
	fmt.Printf("Report saved to %s\n", res.Path)

	if err := archive.CopyFile(ctx, archive.Dir(outDir), configPath, simconfig.FileName); err != nil {
		glog.Exit(err)
	}

	if *bucket != "" {
		b, err := archive.NewBucket(ctx, *bucket, postfix)
		if err != nil {
			glog.Exit("Could not open bucket ", *bucket, ": ", err)
		}
		defer b.Close()
		names, err := archive.Tree(ctx, b, outDir)
		if err != nil {
			glog.Exit("Upload failed: ", err)
		}
		env.Print("Uploaded", len(names), "files to", *bucket)
	}
}

// readConfig labels the run from its config. A config this package cannot
// read is passed to the simulator unchanged and the run is labelled by
// postfix alone.
func readConfig(path, postfix string) (*simconfig.Config, string) {
	cfg, err := simconfig.Load(path)
	if err != nil {
		glog.Warningf("Could not read config %s, running it anyway: %v", path, err)
		return nil, postfix
	}
	return cfg, postfix + ": " + cfg.Title()
}
