package main

import (
	"fmt"
	"os"

	"github.com/nixlim/fuel-top/internal/config"
)

// RunSetup writes a default config file to path, or the default location
// when path is empty. An existing file is never overwritten.
//
// Exit codes:
//   - 0: success
//   - 1: error
func RunSetup(path string) {
	if path == "" {
		path = config.DefaultPath()
	}
	if path == "" {
		fmt.Fprintln(os.Stderr, "Error: cannot determine home directory; pass -config")
		os.Exit(1)
	}

	if err := config.Write(path, config.DefaultConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote default config to %s\n", path)
	os.Exit(0)
}
