package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"
	"golang.org/x/xerrors"

	"ngcsmooth/pkg/cfg"
	"ngcsmooth/pkg/geometry"
	"ngcsmooth/pkg/toolpath"
)

type options struct {
	output    string
	tolerance float64
	plane     string
	metric    bool
	sort      bool
	verbose   bool
	mill      toolpath.Mill
}

func main() {
	var opts options
	flag.StringVarP(&opts.output, "output", "o", "", "Output file (default: stdout)")
	flag.Float64Var(&opts.tolerance, "tolerance", cfg.Tolerance, "Maximum deviation from the input path")
	flag.StringVar(&opts.plane, "plane", "xy", "Arc plane: xy, xz, yz or none")
	flag.BoolVar(&opts.metric, "metric", false, "Write millimeters (G21) instead of inches (G20)")
	flag.BoolVar(&opts.sort, "sort", false, "Reorder paths to shorten rapid moves")
	flag.BoolVarP(&opts.verbose, "verbose", "v", false, "Log flushes to stderr")
	flag.Float64Var(&opts.mill.Feed, "feed", cfg.Feed, "Cutting feed rate")
	flag.Float64Var(&opts.mill.Speed, "speed", cfg.SpindleSpeed, "Spindle speed in RPM")
	flag.Float64Var(&opts.mill.ZChange, "zchange", cfg.HomeHeight, "Tool change height")
	flag.Float64Var(&opts.mill.ZSafe, "zsafe", cfg.SafetyHeight, "Safety height for moves between paths")
	flag.Float64Var(&opts.mill.ZWork, "zwork", cfg.WorkHeight, "Cutting depth")
	flag.Float64Var(&opts.mill.StepSize, "stepsize", 0, "Depth of each pass (0 cuts in one pass)")
	flag.SetInterspersed(true)
	flag.Parse()

	if len(flag.Args()) != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] paths-file\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(&opts, flag.Args()[0]); err != nil {
		log.Fatalf("error: %s", err)
	}
}

func run(opts *options, input string) error {
	plane, ok := geometry.ParsePlane(opts.plane)
	if !ok {
		return xerrors.Errorf("unknown plane %q", opts.plane)
	}

	in, err := os.Open(input)
	if err != nil {
		return xerrors.Errorf("opening input: %w", err)
	}
	defer in.Close()

	paths, err := toolpath.ReadPaths(in)
	if err != nil {
		return xerrors.Errorf("reading %s: %w", input, err)
	}

	out := os.Stdout
	if opts.output != "" {
		out, err = os.Create(opts.output)
		if err != nil {
			return xerrors.Errorf("creating output: %w", err)
		}
		defer out.Close()
	}
	w := bufio.NewWriter(out)

	var logger *log.Logger
	if opts.verbose {
		logger = log.New(os.Stderr, "", 0)
	}

	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	layer := toolpath.Layer{
		Name:   name,
		Header: []string{"Generated by ngcsmooth from " + filepath.Base(input)},
		Paths:  paths,
		Mill:   opts.mill,
	}
	err = toolpath.ExportLayer(w, layer, toolpath.Options{
		Tolerance: opts.tolerance,
		Metric:    opts.metric,
		Plane:     plane,
		Sort:      opts.sort,
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return xerrors.Errorf("writing output: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %d paths\n", len(paths))
	return nil
}
