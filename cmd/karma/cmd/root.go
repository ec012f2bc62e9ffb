package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	derrors "github.com/Akarai77/Dharma/internal/errors"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "karma [script]",
	Short: "Dharma interpreter",
	Long: `karma is a tree-walking interpreter for Dharma, a small dynamically
typed scripting language with a dynamic, spec.md-described numeric
tower (integer/decimal/BigDecimal promotion), classes, closures, and a
handful of JSON built-ins.

With no arguments it opens an interactive prompt. Given a single path
to a ".dh" file, it runs that script. Anything else is a usage error.`,
	Version:       Version,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "echo lex/parse/resolve/eval stage timings to stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable ANSI color in diagnostics")
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", configFileName, err)
	}
	colorSet := cmd.Flags().Changed("no-color")
	color := resolveBool(colorSet, !noColor, cfg.Color, true)

	if len(args) == 0 {
		runREPL(color)
		return nil
	}

	path := args[0]
	if filepath.Ext(path) != ".dh" {
		return fmt.Errorf("script file must have a .dh extension: %s", path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	sm := derrors.NewSourceMap(string(content))
	reporter := derrors.NewReporter(sm, color)
	runSource(string(content), reporter, os.Stdout, os.Stderr, verbose)
	if len(reporter.Diagnostics()) > 0 {
		fmt.Fprint(os.Stderr, reporter.Render())
	}
	if reporter.HasErrors() {
		return fmt.Errorf("%s failed", path)
	}
	return nil
}

// runREPL reproduces original_source/src/main.cpp's runPrompt loop: a
// "> " prompt, one line of input interpreted standalone, an empty line
// ending the session with a farewell banner (no trailing newline).
func runREPL(color bool) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			break
		}

		sm := derrors.NewSourceMap(line)
		reporter := derrors.NewReporter(sm, color)
		runSource(line, reporter, os.Stdout, os.Stderr, verbose)
		if len(reporter.Diagnostics()) > 0 {
			fmt.Fprint(os.Stderr, reporter.Render())
		}
		fmt.Println()
	}
	fmt.Print("Thank You! May Your soul find the right path!")
}
