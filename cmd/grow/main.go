// Command grow runs lattice growth sessions from the command line.
package main

import (
	"fmt"
	"os"

	"growfield/internal/cli"
)

func main() {
	if err := cli.NewRoot(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
