package solver

import (
	"math/rand"

	"github.com/petersn/bitblast/cnf"
)

// RandomInstance generates a random CNF instance over variables 1..varCount.
// Each clause's width is drawn from widths and each literal picks a uniform
// variable with a uniform polarity, so a clause may end up shorter than its
// drawn width through duplicates, or tautological; the solver's pre-filter
// copes with both. A fixed rng seed reproduces the instance exactly.
func RandomInstance(rng *rand.Rand, varCount, clauseCount int, widths []int) *cnf.Instance {
	clauses := make([]*cnf.Clause, 0, clauseCount)
	for i := 0; i < clauseCount; i++ {
		var positive, negative []cnf.Var
		width := widths[rng.Intn(len(widths))]
		for j := 0; j < width; j++ {
			v := cnf.Var(1 + rng.Intn(varCount))
			if rng.Intn(2) == 0 {
				positive = append(positive, v)
			} else {
				negative = append(negative, v)
			}
		}
		clauses = append(clauses, cnf.NewClause(positive, negative))
	}
	return cnf.NewInstance(clauses, nil)
}
