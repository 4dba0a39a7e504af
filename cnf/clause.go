// Package cnf implements the clause database shared by the DPLL solver and
// the bit-blasting front end: variables, assignments, clauses in
// positive/negative set form, and instances supporting substitution, unit
// propagation and pure-literal elimination.
package cnf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// ErrUnsatisfiable is reported when a substitution empties a clause. It is
// used for branch pruning inside the solver and never escapes Solve.
var ErrUnsatisfiable = errors.New("cnf: unsatisfiable")

// Var identifies a boolean variable. Variables are allocated starting from 1
// and are never recycled.
type Var uint

// Assignment maps decided variables to their truth values. Variables absent
// from the map are free.
type Assignment map[Var]bool

// Clone returns an independent copy of the assignment.
func (a Assignment) Clone() Assignment {
	out := make(Assignment, len(a))
	for v, truth := range a {
		out[v] = truth
	}
	return out
}

// Clause is a disjunction of literals stored as two variable sets: variables
// occurring positively and variables occurring negatively. The set form
// dedupes literals and makes membership O(1); iteration is in ascending
// variable order, which keeps the solver deterministic.
type Clause struct {
	Positive *bitset.BitSet
	Negative *bitset.BitSet
}

// NewClause builds a clause from positive and negative variable lists.
// Duplicates collapse. A variable appearing in both lists yields a tautology,
// which the solver discards before search.
func NewClause(positive, negative []Var) *Clause {
	c := &Clause{
		Positive: bitset.New(8),
		Negative: bitset.New(8),
	}
	for _, v := range positive {
		c.Positive.Set(uint(v))
	}
	for _, v := range negative {
		c.Negative.Set(uint(v))
	}
	return c
}

// Clone returns a deep copy of the clause.
func (c *Clause) Clone() *Clause {
	return &Clause{
		Positive: c.Positive.Clone(),
		Negative: c.Negative.Clone(),
	}
}

// IsEmpty reports whether no literals remain. An empty clause is falsity.
func (c *Clause) IsEmpty() bool {
	return c.Positive.None() && c.Negative.None()
}

// IsUnit reports whether exactly one literal remains.
func (c *Clause) IsUnit() bool {
	return c.Positive.Count()+c.Negative.Count() == 1
}

// IsTautology reports whether some variable occurs with both polarities.
func (c *Clause) IsTautology() bool {
	return c.Positive.IntersectionCardinality(c.Negative) > 0
}

// Contains reports whether the clause references v with either polarity.
func (c *Clause) Contains(v Var) bool {
	return c.Positive.Test(uint(v)) || c.Negative.Test(uint(v))
}

// PositiveVars returns the positively occurring variables in ascending order.
func (c *Clause) PositiveVars() []Var {
	return setToVars(c.Positive)
}

// NegativeVars returns the negatively occurring variables in ascending order.
func (c *Clause) NegativeVars() []Var {
	return setToVars(c.Negative)
}

// SatisfiedBy reports whether the assignment satisfies the clause: some
// positive variable is assigned true or some negative variable is assigned
// false. Free variables never satisfy a clause.
func (c *Clause) SatisfiedBy(a Assignment) bool {
	for i, ok := c.Positive.NextSet(0); ok; i, ok = c.Positive.NextSet(i + 1) {
		if truth, assigned := a[Var(i)]; assigned && truth {
			return true
		}
	}
	for i, ok := c.Negative.NextSet(0); ok; i, ok = c.Negative.NextSet(i + 1) {
		if truth, assigned := a[Var(i)]; assigned && !truth {
			return true
		}
	}
	return false
}

// ApplySubst substitutes a truth value for v. The opposite-polarity
// occurrence is dropped; if that empties the clause, ErrUnsatisfiable is
// returned. Otherwise the result reports whether the clause is now satisfied,
// in which case the caller removes it from the active set.
func (c *Clause) ApplySubst(v Var, truth bool) (satisfied bool, err error) {
	if truth {
		c.Negative.Clear(uint(v))
		if c.IsEmpty() {
			return false, ErrUnsatisfiable
		}
		return c.Positive.Test(uint(v)), nil
	}
	c.Positive.Clear(uint(v))
	if c.IsEmpty() {
		return false, ErrUnsatisfiable
	}
	return c.Negative.Test(uint(v)), nil
}

func (c *Clause) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range c.PositiveVars() {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", v)
	}
	b.WriteByte(':')
	for i, v := range c.NegativeVars() {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", v)
	}
	b.WriteByte(']')
	return b.String()
}

func setToVars(s *bitset.BitSet) []Var {
	out := make([]Var, 0, s.Count())
	for i, ok := s.NextSet(0); ok; i, ok = s.NextSet(i + 1) {
		out = append(out, Var(i))
	}
	return out
}
