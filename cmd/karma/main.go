// Command karma is the Dharma interpreter's entry point.
package main

import (
	"fmt"
	"os"

	"github.com/Akarai77/Dharma/cmd/karma/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
