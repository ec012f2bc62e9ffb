package cmd

import (
	"fmt"
	"sort"

	"github.com/Akarai77/Dharma/internal/interp/evaluator"
	"github.com/maruel/natural"
	"github.com/spf13/cobra"
)

var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "List registered built-in function names",
	Run: func(cmd *cobra.Command, args []string) {
		names := evaluator.BuiltinNames()
		sort.Slice(names, func(i, j int) bool { return natural.Less(names[i], names[j]) })
		for _, name := range names {
			fmt.Println(name)
		}
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
