// Package solver implements a plain DPLL search over cnf.Instance: unit
// propagation and pure-literal elimination to fixpoint, then branching with
// deep-copy snapshots. Satisfying assignments are enumerated lazily; there is
// no clause learning and no watched-literal scheme.
package solver

import (
	"fmt"
	"iter"

	"github.com/petersn/bitblast/cnf"
	"github.com/petersn/bitblast/logger"
)

// Solve enumerates the satisfying assignments of the instance as a lazy
// sequence. Yielded assignments are partial: variables the search never had
// to decide are free, and every completion of them satisfies the instance.
// Assignments arrive in DPLL tree order, with each branch variable's false
// subtree fully enumerated before its true subtree. Breaking out of the
// range abandons the remaining search. The input instance is not mutated.
func Solve(original *cnf.Instance) iter.Seq[cnf.Assignment] {
	return func(yield func(cnf.Assignment) bool) {
		log := logger.Logger()
		state := original.Clone()
		// Clauses holding a variable in both polarities are trivially
		// satisfied. DPLL never creates new ones, so one pass suffices.
		// Yields are checked against a snapshot of the filtered instance:
		// a dropped tautology is satisfied by every completion, but the
		// partial-assignment check below cannot see that.
		state.DropTautologies()
		reference := state.Clone()
		log.Debug().
			Int("nb_clauses", state.NumClauses()).
			Uint("nb_variables", state.Vars().Count()).
			Msg("starting DPLL search")
		solveInner(state, func(a cnf.Assignment) bool {
			if !reference.VerifyAgainst(a) {
				panic(fmt.Sprintf("solver: produced assignment violating instance: %v", a))
			}
			return yield(a)
		})
	}
}

// solveInner owns state and reports whether enumeration should continue.
func solveInner(state *cnf.Instance, yield func(cnf.Assignment) bool) bool {
	if err := state.Propagate(); err != nil {
		// A clause emptied: this branch is dead, enumeration continues.
		return true
	}
	if state.NumClauses() == 0 {
		return yield(state.Assignments.Clone())
	}
	v := pickBranchVar(state)
	snapshot := state.Clone()
	// Explore v=false first; propagation catches any immediate conflict on
	// the next recursion, so substitution errors just kill the branch.
	if state.ApplySubst(v, false) == nil {
		if !solveInner(state, yield) {
			return false
		}
	}
	if snapshot.ApplySubst(v, true) == nil {
		return solveInner(snapshot, yield)
	}
	return true
}

// pickBranchVar selects the branching variable: the lowest positive variable
// of the first remaining clause, falling back to its lowest negative one.
// The clause cannot be empty, or propagation would have rejected the state.
func pickBranchVar(state *cnf.Instance) cnf.Var {
	first := state.Clauses[0]
	if v, ok := first.Positive.NextSet(0); ok {
		return cnf.Var(v)
	}
	v, ok := first.Negative.NextSet(0)
	if !ok {
		panic("solver: empty clause survived propagation")
	}
	return cnf.Var(v)
}

// BruteForce enumerates satisfying total assignments over the variables
// referenced by the instance's clauses, in ascending variable order with
// false tried before true. It is exponential and exists as a reference
// oracle for testing the search.
func BruteForce(in *cnf.Instance) iter.Seq[cnf.Assignment] {
	return func(yield func(cnf.Assignment) bool) {
		vars := setToVars(in)
		assignment := make(cnf.Assignment, len(vars))
		var recurse func(i int) bool
		recurse = func(i int) bool {
			if i == len(vars) {
				if !in.VerifyAgainst(assignment) {
					return true
				}
				return yield(assignment.Clone())
			}
			for _, truth := range []bool{false, true} {
				assignment[vars[i]] = truth
				if !recurse(i + 1) {
					return false
				}
			}
			delete(assignment, vars[i])
			return true
		}
		recurse(0)
	}
}

func setToVars(in *cnf.Instance) []cnf.Var {
	set := in.Vars()
	out := make([]cnf.Var, 0, set.Count())
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		out = append(out, cnf.Var(i))
	}
	return out
}
