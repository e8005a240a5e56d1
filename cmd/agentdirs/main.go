// Command agentdirs discovers, validates, and provisions
// coding-agent project directories and reports their session
// history as JSON for a surrounding UI layer to consume.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
