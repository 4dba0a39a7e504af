package frontend

import (
	"iter"

	"github.com/petersn/bitblast/cnf"
)

// MakeTotal completes a partial assignment by setting every unassigned
// builder variable to false. The input is not modified.
func (b *Builder) MakeTotal(partial cnf.Assignment) cnf.Assignment {
	total := partial.Clone()
	for i, ok := b.vars.NextSet(0); ok; i, ok = b.vars.NextSet(i + 1) {
		if _, assigned := total[cnf.Var(i)]; !assigned {
			total[cnf.Var(i)] = false
		}
	}
	return total
}

// Totalize enumerates every total assignment extending partial over all
// builder variables. The sequence has 2^k elements for k free variables and
// is lazy; consumers typically stop early. Free variables advance
// lexicographically in allocation order with false before true.
func (b *Builder) Totalize(partial cnf.Assignment) iter.Seq[cnf.Assignment] {
	missing := make([]cnf.Var, 0)
	for i, ok := b.vars.NextSet(0); ok; i, ok = b.vars.NextSet(i + 1) {
		if _, assigned := partial[cnf.Var(i)]; !assigned {
			missing = append(missing, cnf.Var(i))
		}
	}
	return expand(partial, missing)
}

// TotalizeOver is the scoped variant of Totalize: it expands only over the
// given variables, leaving other free variables untouched. Drivers use it to
// enumerate just the bits they intend to decode, since expanding the full
// builder universe is 2^k in all free variables.
func (b *Builder) TotalizeOver(partial cnf.Assignment, vars []cnf.Var) iter.Seq[cnf.Assignment] {
	missing := make([]cnf.Var, 0, len(vars))
	for _, v := range vars {
		if _, assigned := partial[v]; !assigned {
			missing = append(missing, v)
		}
	}
	return expand(partial, missing)
}

func expand(partial cnf.Assignment, missing []cnf.Var) iter.Seq[cnf.Assignment] {
	return func(yield func(cnf.Assignment) bool) {
		scratch := partial.Clone()
		var recurse func(i int) bool
		recurse = func(i int) bool {
			if i == len(missing) {
				return yield(scratch.Clone())
			}
			for _, truth := range []bool{false, true} {
				scratch[missing[i]] = truth
				if !recurse(i + 1) {
					return false
				}
			}
			delete(scratch, missing[i])
			return true
		}
		recurse(0)
	}
}
