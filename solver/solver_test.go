package solver

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/petersn/bitblast/cnf"
)

// canon renders a total assignment over vars as a stable key.
func canon(a cnf.Assignment, vars []cnf.Var) string {
	parts := make([]string, len(vars))
	for i, v := range vars {
		bit := 0
		if a[v] {
			bit = 1
		}
		parts[i] = fmt.Sprintf("%d=%d", v, bit)
	}
	return strings.Join(parts, " ")
}

// expandedModels solves the instance and expands every yielded partial
// assignment to totals over the instance's clause variables.
func expandedModels(in *cnf.Instance) map[string]struct{} {
	vars := setToVars(in)
	models := make(map[string]struct{})
	for assignment := range Solve(in) {
		var missing []cnf.Var
		for _, v := range vars {
			if _, ok := assignment[v]; !ok {
				missing = append(missing, v)
			}
		}
		total := assignment.Clone()
		var recurse func(i int)
		recurse = func(i int) {
			if i == len(missing) {
				models[canon(total, vars)] = struct{}{}
				return
			}
			for _, truth := range []bool{false, true} {
				total[missing[i]] = truth
				recurse(i + 1)
			}
			delete(total, missing[i])
		}
		recurse(0)
	}
	return models
}

func bruteModels(in *cnf.Instance) map[string]struct{} {
	vars := setToVars(in)
	models := make(map[string]struct{})
	for a := range BruteForce(in) {
		models[canon(a, vars)] = struct{}{}
	}
	return models
}

func TestSolveSimple(t *testing.T) {
	// (¬1 ∨ ¬2) (¬2 ∨ 3) (1 ∨ ¬3 ∨ 2) (2) is unsatisfiable on 2=true with
	// 1=true, leaving exactly the model 1=false, 2=true, 3=true.
	in := cnf.NewInstance([]*cnf.Clause{
		cnf.NewClause(nil, []cnf.Var{1, 2}),
		cnf.NewClause([]cnf.Var{3}, []cnf.Var{2}),
		cnf.NewClause([]cnf.Var{1, 2}, []cnf.Var{3}),
		cnf.NewClause([]cnf.Var{2}, nil),
	}, nil)
	var got []cnf.Assignment
	for a := range Solve(in) {
		got = append(got, a)
	}
	require.Len(t, got, 1)
	require.Equal(t, cnf.Assignment{1: false, 2: true, 3: true}, got[0])
}

func TestSolveUnsat(t *testing.T) {
	in := cnf.NewInstance([]*cnf.Clause{
		cnf.NewClause([]cnf.Var{1}, nil),
		cnf.NewClause(nil, []cnf.Var{1}),
	}, nil)
	for range Solve(in) {
		t.Fatal("unexpected assignment for unsatisfiable instance")
	}
}

func TestSolveDoesNotMutateInput(t *testing.T) {
	in := cnf.NewInstance([]*cnf.Clause{
		cnf.NewClause([]cnf.Var{1, 2}, nil),
		cnf.NewClause([]cnf.Var{1}, []cnf.Var{1}),
	}, nil)
	for range Solve(in) {
	}
	require.Equal(t, 2, in.NumClauses())
	require.Empty(t, in.Assignments)
}

// TestSolveEnumerationOrder pins the DPLL tree order on an xor constraint
// 3 = 1 ⊕ 2: branches explore false before true, so models arrive with
// variable 1 at false first.
func TestSolveEnumerationOrder(t *testing.T) {
	build := func() *cnf.Instance {
		return cnf.NewInstance([]*cnf.Clause{
			cnf.NewClause([]cnf.Var{1, 2}, []cnf.Var{3}),
			cnf.NewClause([]cnf.Var{1, 3}, []cnf.Var{2}),
			cnf.NewClause([]cnf.Var{2, 3}, []cnf.Var{1}),
			cnf.NewClause(nil, []cnf.Var{1, 2, 3}),
		}, nil)
	}
	var got []cnf.Assignment
	for a := range Solve(build()) {
		got = append(got, a)
	}
	want := []cnf.Assignment{
		{1: false, 2: false, 3: false},
		{1: false, 2: true, 3: true},
		{1: true, 2: false, 3: true},
		{1: true, 2: true, 3: false},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected model order (-want +got):\n%s", diff)
	}

	// Identical inputs produce the identical sequence.
	var again []cnf.Assignment
	for a := range Solve(build()) {
		again = append(again, a)
	}
	if diff := cmp.Diff(got, again); diff != "" {
		t.Errorf("solve is not deterministic (-first +second):\n%s", diff)
	}
}

func TestSolveEarlyStop(t *testing.T) {
	in := cnf.NewInstance([]*cnf.Clause{
		cnf.NewClause([]cnf.Var{1, 2, 3}, nil),
	}, nil)
	count := 0
	for range Solve(in) {
		count++
		break
	}
	require.Equal(t, 1, count)
}

func TestTautologyPreFilter(t *testing.T) {
	base := func() []*cnf.Clause {
		return []*cnf.Clause{
			cnf.NewClause([]cnf.Var{1, 2}, nil),
			cnf.NewClause(nil, []cnf.Var{1, 2}),
		}
	}
	plain := cnf.NewInstance(base(), nil)
	tautological := cnf.NewInstance(append(base(),
		cnf.NewClause([]cnf.Var{1, 3}, []cnf.Var{1})), nil)

	var plainModels, tautModels []cnf.Assignment
	for a := range Solve(plain) {
		plainModels = append(plainModels, a)
	}
	for a := range Solve(tautological) {
		tautModels = append(tautModels, a)
	}
	if diff := cmp.Diff(plainModels, tautModels); diff != "" {
		t.Errorf("tautology changed the models (-plain +tautological):\n%s", diff)
	}
}

// TestSolveAgainstBruteForce checks model soundness and decision agreement on
// random instances. Expanded DPLL models must all be genuine models; the
// pure-literal rule prunes dominated models from the enumeration, so the
// expansion can be a strict subset of the brute-force set.
func TestSolveAgainstBruteForce(t *testing.T) {
	for seed := int64(0); seed < 30; seed++ {
		rng := rand.New(rand.NewSource(seed))
		varCount := 5 + rng.Intn(8)
		clauseCount := 2 * varCount
		in := RandomInstance(rng, varCount, clauseCount, []int{2, 3})

		brute := bruteModels(in)
		expanded := expandedModels(in)
		require.Equal(t, len(brute) > 0, len(expanded) > 0,
			"seed %d: DPLL and brute force disagree on satisfiability", seed)
		for model := range expanded {
			_, ok := brute[model]
			require.True(t, ok, "seed %d: DPLL produced non-model %s", seed, model)
		}
	}
}

func TestSolveYieldsVerifiedAssignments(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	in := RandomInstance(rng, 10, 30, []int{3})
	for a := range Solve(in) {
		// Free variables may be completed arbitrarily.
		total := a.Clone()
		for _, v := range setToVars(in) {
			if _, ok := total[v]; !ok {
				total[v] = rng.Intn(2) == 0
			}
		}
		require.True(t, in.VerifyAgainst(total))
	}
}

// giniVerdict runs an instance through the gini CDCL solver.
func giniVerdict(t *testing.T, in *cnf.Instance) bool {
	g := gini.New()
	for _, c := range in.Clauses {
		for _, v := range c.PositiveVars() {
			g.Add(z.Dimacs2Lit(int(v)))
		}
		for _, v := range c.NegativeVars() {
			g.Add(z.Dimacs2Lit(-int(v)))
		}
		g.Add(z.LitNull)
	}
	switch r := g.Solve(); r {
	case 1:
		return true
	case -1:
		return false
	default:
		t.Fatalf("gini returned %d", r)
		return false
	}
}

// TestSolveAgainstGini cross-checks satisfiability verdicts against an
// industrial solver on random instances too large to brute force happily.
func TestSolveAgainstGini(t *testing.T) {
	for seed := int64(100); seed < 120; seed++ {
		rng := rand.New(rand.NewSource(seed))
		in := RandomInstance(rng, 15, 60, []int{3})
		sat := false
		for range Solve(in) {
			sat = true
			break
		}
		require.Equal(t, giniVerdict(t, in), sat, "seed %d", seed)
	}
}

func TestRandomInstanceDeterminism(t *testing.T) {
	a := RandomInstance(rand.New(rand.NewSource(42)), 10, 20, []int{3})
	b := RandomInstance(rand.New(rand.NewSource(42)), 10, 20, []int{3})
	require.Equal(t, a.String(), b.String())
}

func TestBruteForceOrder(t *testing.T) {
	// Single clause (1 ∨ 2): brute force walks ascending variables with
	// false before true, skipping only 1=2=false.
	in := cnf.NewInstance([]*cnf.Clause{
		cnf.NewClause([]cnf.Var{1, 2}, nil),
	}, nil)
	var got []string
	for a := range BruteForce(in) {
		got = append(got, canon(a, []cnf.Var{1, 2}))
	}
	want := []string{"1=0 2=1", "1=1 2=0", "1=1 2=1"}
	require.Equal(t, want, got)
	require.True(t, sort.StringsAreSorted(got))
}
