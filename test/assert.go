// Package test provides assertion helpers for exercising circuits built with
// the frontend against the DPLL solver.
package test

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/petersn/bitblast/cnf"
	"github.com/petersn/bitblast/frontend"
	"github.com/petersn/bitblast/solver"
)

// Assert wraps require.Assertions with circuit-level checks.
type Assert struct {
	*require.Assertions
	t *testing.T
}

// NewAssert returns an Assert bound to t.
func NewAssert(t *testing.T) *Assert {
	return &Assert{Assertions: require.New(t), t: t}
}

// Run executes fn inside a subtest named by joining descs with '/'.
func (assert *Assert) Run(fn func(assert *Assert), descs ...string) {
	assert.t.Run(strings.Join(descs, "/"), func(t *testing.T) {
		fn(NewAssert(t))
	})
}

// BuildFunc constructs a circuit on a fresh builder and returns the integers
// acting as inputs and outputs.
type BuildFunc func(b *frontend.Builder) (inputs, outputs []*frontend.Integer)

// CircuitFunc is the concrete counterpart of a circuit: it computes the
// expected output values for the given input values.
type CircuitFunc func(inputs []uint64) []uint64

// CheckCircuit replays a circuit against its concrete counterpart. For every
// input vector it compiles a fresh instance with the inputs pinned to
// constants, solves it, decodes the outputs from the first model, and
// requires them to match concrete's results. The circuit must be satisfiable
// for every vector.
func (assert *Assert) CheckCircuit(build BuildFunc, concrete CircuitFunc, inputVectors ...[]uint64) {
	for _, values := range inputVectors {
		b := frontend.NewBuilder()
		inputs, outputs := build(b)
		assert.Equal(len(values), len(inputs), "input vector arity mismatch")
		for i, x := range inputs {
			b.ConstrainConstant(x, values[i])
		}
		instance := b.MakeInstance()
		solved := false
		for assignment := range solver.Solve(instance) {
			total := b.MakeTotal(assignment)
			got := make([]uint64, len(outputs))
			for i, out := range outputs {
				got[i] = out.Decode(total)
			}
			assert.Equal(concrete(values), got, "circuit disagrees with concrete function on %v", values)
			solved = true
			break
		}
		assert.True(solved, "circuit unsatisfiable for inputs %v", values)
	}
}

// SolutionValues collects every value the integer x can take in a model of
// the instance, deduplicated and sorted. Each solver assignment is expanded
// only over x's bits.
func SolutionValues(b *frontend.Builder, instance *cnf.Instance, x *frontend.Integer) []uint64 {
	seen := make(map[uint64]struct{})
	for assignment := range solver.Solve(instance) {
		for total := range b.TotalizeOver(assignment, x.Bits()) {
			seen[x.Decode(total)] = struct{}{}
		}
	}
	values := make([]uint64, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	return values
}
