package main

import (
	"fmt"
	"os"
	"testing"

	"github.com/Akarai77/Dharma/cmd/karma/cmd"
	"github.com/rogpeppe/go-internal/testscript"
)

// TestMain lets "go test" re-exec this binary as the karma command
// itself, the standard testscript.Main harness shape.
func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"karma": func() int {
			if err := cmd.Execute(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			return 0
		},
	}))
}

func TestCLI(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
	})
}
