// Command zcheck encodes, decodes and verifies Morton keys from the shell.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "zcheck:", err)
		os.Exit(1)
	}
}
