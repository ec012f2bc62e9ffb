package cmd

import (
	"fmt"
	"os"

	derrors "github.com/Akarai77/Dharma/internal/errors"
	"github.com/kr/pretty"
	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Parse a script and pretty-print its AST, without running it",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, args []string) error {
	path := args[0]
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	sm := derrors.NewSourceMap(string(content))
	reporter := derrors.NewReporter(sm, !noColor)
	statements := parseSource(string(content), reporter)
	if len(reporter.Diagnostics()) > 0 {
		fmt.Fprint(os.Stderr, reporter.Render())
	}
	if reporter.HasErrors() {
		return fmt.Errorf("%s failed to parse", path)
	}

	pretty.Println(statements)
	return nil
}
