// Command smith demonstrates the smith-core output toolkit: structured
// rendering, progress tracking and domain error display.
package main

import (
	"os"
)

// Set via ldflags at build time.
var (
	Version   = "0.0.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	a := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := a.execute(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
