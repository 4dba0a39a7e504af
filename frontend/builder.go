// Package frontend implements the bit-blasting circuit compiler: a Builder
// that allocates boolean variables and accumulates CNF clauses, a gate
// library, and fixed-width integer circuits (xor, addition, rotation,
// comparison) whose constraints compile down to clauses for the solver.
package frontend

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/petersn/bitblast/cnf"
	"github.com/petersn/bitblast/logger"
)

// Builder accumulates variables and clauses for one circuit. It owns a
// monotonically increasing variable counter and a debug name for every
// variable it allocated.
type Builder struct {
	counter cnf.Var
	clauses []*cnf.Clause
	vars    *bitset.BitSet
	names   map[cnf.Var]string

	// False and True are pinned by unit clauses at construction. They are
	// nearly free: the first unit-propagation pass eliminates both.
	False cnf.Var
	True  cnf.Var

	bools [2]cnf.Var
}

// NewBuilder returns an empty builder with the distinguished False and True
// variables already allocated and constrained.
func NewBuilder() *Builder {
	b := &Builder{
		vars:  bitset.New(64),
		names: make(map[cnf.Var]string),
	}
	b.False = b.NewVar("false")
	b.True = b.NewVar("true")
	b.AddClause(nil, []cnf.Var{b.False})
	b.AddClause([]cnf.Var{b.True}, nil)
	b.bools = [2]cnf.Var{b.False, b.True}
	return b
}

// NewVar allocates a fresh variable under the given debug name.
func (b *Builder) NewVar(name string) cnf.Var {
	b.counter++
	v := b.counter
	b.vars.Set(uint(v))
	b.names[v] = name
	return v
}

// Bool maps the constant bit 0 or 1 to the corresponding pinned variable.
func (b *Builder) Bool(bit uint64) cnf.Var {
	if bit > 1 {
		panic(fmt.Sprintf("frontend: Bool called with %d", bit))
	}
	return b.bools[bit]
}

// AddClause appends the clause (positive... ∨ ¬negative...). Duplicate
// literals collapse through the set representation.
func (b *Builder) AddClause(positive, negative []cnf.Var) {
	b.clauses = append(b.clauses, cnf.NewClause(positive, negative))
}

// Equate constrains v1 = v2 with the clause pair (v1 ∨ ¬v2), (v2 ∨ ¬v1).
// TODO: rewrite existing clauses under the equality instead of adding new
// clauses, so the substitution happens at compile time rather than in the
// solver's first propagation pass.
func (b *Builder) Equate(v1, v2 cnf.Var) {
	b.AddClause([]cnf.Var{v1}, []cnf.Var{v2})
	b.AddClause([]cnf.Var{v2}, []cnf.Var{v1})
}

// MakeInstance snapshots the accumulated clauses into a solver instance with
// an empty assignment. The builder can keep emitting clauses afterwards;
// later instances include them.
func (b *Builder) MakeInstance() *cnf.Instance {
	clauses := make([]*cnf.Clause, len(b.clauses))
	for i, c := range b.clauses {
		clauses[i] = c.Clone()
	}
	logger.Logger().Debug().
		Int("nb_variables", b.NumVars()).
		Int("nb_clauses", len(clauses)).
		Msg("compiled instance")
	return cnf.NewInstance(clauses, nil)
}

// NumVars returns the number of variables allocated so far.
func (b *Builder) NumVars() int {
	return int(b.counter)
}

// NumClauses returns the number of clauses emitted so far.
func (b *Builder) NumClauses() int {
	return len(b.clauses)
}

// VarName returns the debug name v was allocated under.
func (b *Builder) VarName(v cnf.Var) string {
	return b.names[v]
}

// Vars returns the set of all allocated variables.
func (b *Builder) Vars() *bitset.BitSet {
	return b.vars.Clone()
}
