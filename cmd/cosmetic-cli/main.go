// Command cosmetic-cli parses cosmetic filter lists, builds the filter
// cache, and resolves scriptlet invocations from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/bnema/cosmetic-filter/cmd/cosmetic-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
