// Package main is the entry point for the portfolio API server.
//
// MAIN PACKAGE IN GO:
// Every Go program starts execution in the main() function of the "main" package.
// The main package should be kept minimal. Flags, configuration and wiring
// live in internal/cli and internal/server; main only runs the root command
// and turns an error into a non-zero exit code.
//
// WHY cmd/server/?
// The cmd/ directory is a Go convention for executable entry points.
// Each executable gets its own directory with its own main.go.
package main

import (
	"fmt"
	"os"

	"github.com/sakif/portfolio-api/internal/cli"
)

// version is overridden at build time:
//
//	go build -ldflags "-X main.version=1.2.0" ./cmd/server
var version = "dev"

func main() {
	if err := cli.NewRootCommand(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
