package frontend_test

import (
	"fmt"

	"github.com/petersn/bitblast/frontend"
	"github.com/petersn/bitblast/solver"
)

// Enumerate the truth table of a single AND gate by solving its clauses and
// expanding the don't-care variables of each model.
func Example() {
	b := frontend.NewBuilder()
	x := b.NewVar("x")
	y := b.NewVar("y")
	z := b.NewVar("z")
	b.AndGate(x, y, z)
	instance := b.MakeInstance()

	bit := func(truth bool) int {
		if truth {
			return 1
		}
		return 0
	}
	for assignment := range solver.Solve(instance) {
		for total := range b.Totalize(assignment) {
			fmt.Printf("%d AND %d = %d\n", bit(total[x]), bit(total[y]), bit(total[z]))
		}
	}
	// Output:
	// 0 AND 0 = 0
	// 0 AND 1 = 0
	// 1 AND 0 = 0
	// 1 AND 1 = 1
}
