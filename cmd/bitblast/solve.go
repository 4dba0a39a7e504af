package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/petersn/bitblast/cnf"
	"github.com/petersn/bitblast/solver"
)

func newSolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve [input.cnf]",
		Short: "Solve a DIMACS CNF file",
		Long: `Solve reads a problem in the DIMACS CNF format, from the given file or from
standard input. The output follows the usual convention: either the first
line is UNSAT, or the first line is SAT and the second line lists the decided
literals in clause format. Variables the search left free may be assigned
either way.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = os.Stdin
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			instance, err := cnf.ParseDimacs(r)
			if err != nil {
				return err
			}
			for assignment := range solver.Solve(instance) {
				fmt.Println("SAT")
				printModel(assignment)
				return nil
			}
			fmt.Println("UNSAT")
			return nil
		},
	}
	return cmd
}

func printModel(assignment cnf.Assignment) {
	vars := make([]cnf.Var, 0, len(assignment))
	for v := range assignment {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i] < vars[j] })
	for i, v := range vars {
		if i > 0 {
			fmt.Print(" ")
		}
		if assignment[v] {
			fmt.Printf("%d", v)
		} else {
			fmt.Printf("-%d", v)
		}
	}
	fmt.Println()
}
