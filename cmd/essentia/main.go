// Command essentia runs scenario-described discrete-time reactive-mixture
// simulations and reports the evolving flask tick by tick.
package main

import (
	"os"

	"github.com/irrelephant-io/essentia/internal/interfaces/cli"
)

// Build-time variables injected via ldflags.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func init() {
	cli.Version = version
	cli.GitCommit = commit
	cli.BuildDate = buildDate
}

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
