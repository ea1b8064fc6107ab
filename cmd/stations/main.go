// Command stations drives the parallel algorithms of the stations module on
// integer workloads and reports their timings.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
