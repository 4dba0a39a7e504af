package frontend_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/petersn/bitblast/cnf"
	"github.com/petersn/bitblast/frontend"
	"github.com/petersn/bitblast/solver"
)

func TestBuilderPinnedConstants(t *testing.T) {
	b := frontend.NewBuilder()
	require.Equal(t, b.False, b.Bool(0))
	require.Equal(t, b.True, b.Bool(1))
	require.Panics(t, func() { b.Bool(2) })
	require.Equal(t, "false", b.VarName(b.False))
	require.Equal(t, "true", b.VarName(b.True))

	// The unit clauses pin both variables in the only model.
	var models []cnf.Assignment
	for a := range solver.Solve(b.MakeInstance()) {
		models = append(models, a)
	}
	require.Equal(t, []cnf.Assignment{{b.False: false, b.True: true}}, models)
}

func TestEquate(t *testing.T) {
	b := frontend.NewBuilder()
	v1 := b.NewVar("v1")
	v2 := b.NewVar("v2")
	b.Equate(v1, v2)
	count := 0
	for a := range solver.Solve(b.MakeInstance()) {
		require.Equal(t, a[v1], a[v2])
		count++
	}
	require.Equal(t, 2, count)
}

func TestMakeInstanceSnapshot(t *testing.T) {
	b := frontend.NewBuilder()
	v := b.NewVar("v")
	first := b.MakeInstance()
	b.AddClause([]cnf.Var{v}, nil)
	second := b.MakeInstance()
	require.Equal(t, 2, first.NumClauses())
	require.Equal(t, 3, second.NumClauses())

	// The snapshot owns its clauses.
	require.NoError(t, second.ApplySubst(v, true))
	require.Equal(t, 3, b.MakeInstance().NumClauses())
}

// Identical builder call sequences emit identical clause lists and solve to
// identical model sequences.
func TestBuilderDeterminism(t *testing.T) {
	build := func() (*frontend.Builder, *frontend.Integer) {
		b := frontend.NewBuilder()
		x := b.NewInteger(3)
		y := b.NewInteger(3)
		sum := b.Add(x, y)
		b.ConstrainConstant(x, 5)
		cmp2 := b.Compare(sum.Integer, y)
		b.Equate(cmp2.GreaterThan, b.True)
		return b, y
	}
	b1, _ := build()
	b2, _ := build()
	require.Equal(t, b1.NumVars(), b2.NumVars())
	require.Equal(t, b1.MakeInstance().String(), b2.MakeInstance().String())

	var models1, models2 []cnf.Assignment
	for a := range solver.Solve(b1.MakeInstance()) {
		models1 = append(models1, a)
	}
	for a := range solver.Solve(b2.MakeInstance()) {
		models2 = append(models2, a)
	}
	if diff := cmp.Diff(models1, models2); diff != "" {
		t.Errorf("model sequences differ (-first +second):\n%s", diff)
	}
}
