// Command workbench opens the pane workbench.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/waozixyz/workbench/internal/cli"
)

// Set via ldflags.
var version = "dev"

func init() {
	// Window backends must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := cli.NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
