// Command bitblast exercises the SAT toolkit: a toy block-cipher key
// recovery, random 3-SAT solving, and a DIMACS front end.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/petersn/bitblast/logger"
)

func main() {
	var verbose bool
	root := &cobra.Command{
		Use:           "bitblast",
		Short:         "A DPLL SAT solver with a bit-blasting circuit compiler",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.Set(logger.Logger().Level(zerolog.DebugLevel))
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.AddCommand(newToyfishCmd())
	root.AddCommand(newRandomCmd())
	root.AddCommand(newSolveCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
