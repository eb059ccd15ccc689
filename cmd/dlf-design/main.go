// Command dlf-design designs a digital linear filter from the command
// line and optionally saves it as JSON.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	dlf "github.com/geomodeling/go-dlf"
)

const (
	defaultLength  = 201
	defaultSpacing = "0.01,0.2,100"
	defaultShift   = "-4,0,100"
)

func main() {
	var (
		kernel    = flag.String("kernel", "j0", "Kernel to design for: j0, j1, sin, cos")
		length    = flag.Int("n", defaultLength, "Filter length")
		spacing   = flag.String("spacing", defaultSpacing, "Spacing axis: single value or start,stop,count")
		shift     = flag.String("shift", defaultShift, "Shift axis: single value or start,stop,count")
		objective = flag.String("objective", "amp", "Score reduction: amp (minimize amplitude) or r (maximize range)")
		refine    = flag.Bool("refine", false, "Refine the best grid point with Nelder-Mead")
		parallel  = flag.Bool("parallel", true, "Evaluate grid points on all CPUs")
		name      = flag.String("name", "", "Filter name (defaults to dlf_<n>)")
		outDir    = flag.String("out", "", "Directory to save the filter JSON into (omit to skip saving)")
		quiet     = flag.Bool("quiet", false, "Suppress progress output")
	)
	flag.Parse()

	spacingSpec, err := parseAxis(*spacing)
	if err != nil {
		log.Fatalf("Invalid -spacing: %v", err)
	}
	shiftSpec, err := parseAxis(*shift)
	if err != nil {
		log.Fatalf("Invalid -shift: %v", err)
	}

	config := dlf.Config{
		Length:    *length,
		Spacing:   spacingSpec,
		Shift:     shiftSpec,
		Inversion: []dlf.TransformPair{kernelPair(*kernel)},
		Objective: parseObjective(*objective),
		Name:      *name,
		Refine:    *refine,
		Verbosity: dlf.VerbProgress,
		Output:    os.Stdout,
	}
	if *quiet {
		config.Verbosity = dlf.VerbWarnings
	}
	if *parallel {
		config.Workers = runtime.NumCPU()
	}
	if *outDir != "" {
		config.Store = dlf.NewDirStore(*outDir)
	}

	filt, res, err := dlf.Design(&config)
	if err != nil {
		log.Fatalf("Design failed: %v", err)
	}

	if *quiet {
		dlf.PrintResult(os.Stdout, filt, res, config.Objective)
	}
	fmt.Printf("   Evaluations     : %d\n", res.Evaluations)
	fmt.Printf("   Runtime         : %s\n", res.Elapsed.Round(time.Millisecond))
	if *outDir != "" {
		fmt.Printf("   Saved           : %s\n", filt.Name)
	}
}

// parseAxis parses a single float or a comma-separated
// start,stop,count triple.
func parseAxis(s string) (dlf.AxisSpec, error) {
	parts := strings.Split(s, ",")
	spec := make(dlf.AxisSpec, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", p, err)
		}
		spec = append(spec, v)
	}
	return spec, nil
}

func kernelPair(kernel string) dlf.TransformPair {
	switch kernel {
	case "j1":
		return dlf.J1Pair1(1)
	case "sin":
		return dlf.SinPair1(1)
	case "cos":
		return dlf.CosPair1(1)
	default:
		return dlf.J0Pair1(1)
	}
}

func parseObjective(s string) dlf.Objective {
	if s == "r" {
		return dlf.MaximizeRange
	}
	return dlf.MinimizeAmplitude
}
