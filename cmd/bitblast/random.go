package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/petersn/bitblast/solver"
)

func newRandomCmd() *cobra.Command {
	var varCount, clauseCount, width int
	var seed int64
	cmd := &cobra.Command{
		Use:   "random",
		Short: "Solve a random k-SAT instance up to the first satisfying assignment",
		RunE: func(cmd *cobra.Command, args []string) error {
			if clauseCount == 0 {
				// The classic hard region for random 3-SAT sits near a
				// clause-to-variable ratio of 4.2.
				clauseCount = int(4.2 * float64(varCount))
			}
			rng := rand.New(rand.NewSource(seed))
			instance := solver.RandomInstance(rng, varCount, clauseCount, []int{width})
			fmt.Printf("Performing a test solve on a random %d-SAT instance with %d variables and %d clauses.\n",
				width, varCount, clauseCount)
			fmt.Println("SAT instance:")
			fmt.Println()
			fmt.Println(instance)
			fmt.Println()
			fmt.Println("Solving up to first satisfying assignment...")
			start := time.Now()
			solved := false
			for assignment := range solver.Solve(instance) {
				fmt.Println()
				for v, truth := range assignment {
					bit := 0
					if truth {
						bit = 1
					}
					fmt.Printf("%d=%d ", v, bit)
				}
				fmt.Println()
				solved = true
				break
			}
			if !solved {
				fmt.Println("No solution.")
			}
			fmt.Printf("Completed in %.3f seconds.\n", time.Since(start).Seconds())
			return nil
		},
	}
	cmd.Flags().IntVar(&varCount, "vars", 80, "number of variables")
	cmd.Flags().IntVar(&clauseCount, "clauses", 0, "number of clauses (0 picks 4.2x vars)")
	cmd.Flags().IntVar(&width, "width", 3, "literals per clause")
	cmd.Flags().Int64Var(&seed, "seed", 1, "rng seed")
	return cmd
}
