// Command dlf-inspect prints a summary of a previously saved filter.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	dlf "github.com/geomodeling/go-dlf"
)

func main() {
	var (
		dir       = flag.String("dir", "filters", "Directory the filter was saved into")
		name      = flag.String("name", "", "Filter name (required)")
		objective = flag.String("objective", "amp", "Score reduction used at design time: amp or r")
	)
	flag.Parse()

	if *name == "" {
		flag.Usage()
		os.Exit(2)
	}

	filt, res, err := dlf.NewDirStore(*dir).Load(*name)
	if err != nil {
		if errors.Is(err, dlf.ErrNotFound) {
			log.Fatalf("No filter named %q in %s", *name, *dir)
		}
		log.Fatalf("Loading filter: %v", err)
	}

	obj := dlf.MinimizeAmplitude
	if *objective == "r" {
		obj = dlf.MaximizeRange
	}

	dlf.PrintResult(os.Stdout, filt, res, obj)
	for kernel, coeff := range filt.Coefficients {
		fmt.Printf("   > Kernel %-6s : %d coefficients\n", kernel, len(coeff))
	}
}
