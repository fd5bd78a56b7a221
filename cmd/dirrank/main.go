// Command dirrank ranks the folders of a drive or mount point by size.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/dirrank/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "unknown - unofficial & generated by unknown"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "dirrank: %v\n", err)
		os.Exit(1)
	}
}
