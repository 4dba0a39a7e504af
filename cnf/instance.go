package cnf

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Instance is a CNF formula under a partial assignment. Clauses is the
// residual: clauses satisfied by Assignments have been removed and decided
// variables no longer occur in any clause.
type Instance struct {
	Clauses     []*Clause
	Assignments Assignment
}

// NewInstance wraps clauses and an optional initial assignment. Ownership of
// both transfers to the instance.
func NewInstance(clauses []*Clause, assignments Assignment) *Instance {
	if assignments == nil {
		assignments = make(Assignment)
	}
	return &Instance{Clauses: clauses, Assignments: assignments}
}

// Clone returns a deep copy. Solvers snapshot the instance at branch points.
func (in *Instance) Clone() *Instance {
	clauses := make([]*Clause, len(in.Clauses))
	for i, c := range in.Clauses {
		clauses[i] = c.Clone()
	}
	return &Instance{
		Clauses:     clauses,
		Assignments: in.Assignments.Clone(),
	}
}

// NumClauses returns the number of active clauses.
func (in *Instance) NumClauses() int {
	return len(in.Clauses)
}

// Vars returns the set of variables referenced by the active clauses.
func (in *Instance) Vars() *bitset.BitSet {
	vars := bitset.New(64)
	for _, c := range in.Clauses {
		vars.InPlaceUnion(c.Positive)
		vars.InPlaceUnion(c.Negative)
	}
	return vars
}

// ApplySubst records v=truth and substitutes it through every active clause,
// removing the clauses it satisfies. Assigning an already-decided variable is
// a programmer error. ErrUnsatisfiable propagates out when a clause empties.
func (in *Instance) ApplySubst(v Var, truth bool) error {
	if _, assigned := in.Assignments[v]; assigned {
		panic(fmt.Sprintf("cnf: variable %d assigned twice", v))
	}
	in.Assignments[v] = truth
	kept := in.Clauses[:0]
	var failure error
	for _, c := range in.Clauses {
		if failure != nil {
			kept = append(kept, c)
			continue
		}
		satisfied, err := c.ApplySubst(v, truth)
		if err != nil {
			failure = err
			kept = append(kept, c)
			continue
		}
		if !satisfied {
			kept = append(kept, c)
		}
	}
	in.Clauses = kept
	return failure
}

// UnitPropagateOnce finds one unit clause and assigns its literal. It reports
// whether a unit clause was found.
func (in *Instance) UnitPropagateOnce() (bool, error) {
	for _, c := range in.Clauses {
		if !c.IsUnit() {
			continue
		}
		if v, ok := c.Positive.NextSet(0); ok {
			return true, in.ApplySubst(Var(v), true)
		}
		v, _ := c.Negative.NextSet(0)
		return true, in.ApplySubst(Var(v), false)
	}
	return false, nil
}

// PureLiteralEliminateOnce assigns every variable that occurs with a single
// polarity across the active clauses: pure-positive variables become true,
// pure-negative become false. It reports whether any assignment was made.
func (in *Instance) PureLiteralEliminateOnce() (bool, error) {
	positive := bitset.New(64)
	negative := bitset.New(64)
	for _, c := range in.Clauses {
		positive.InPlaceUnion(c.Positive)
		negative.InPlaceUnion(c.Negative)
	}
	onlyPositive := positive.Difference(negative)
	onlyNegative := negative.Difference(positive)
	for i, ok := onlyPositive.NextSet(0); ok; i, ok = onlyPositive.NextSet(i + 1) {
		if err := in.ApplySubst(Var(i), true); err != nil {
			return true, err
		}
	}
	for i, ok := onlyNegative.NextSet(0); ok; i, ok = onlyNegative.NextSet(i + 1) {
		if err := in.ApplySubst(Var(i), false); err != nil {
			return true, err
		}
	}
	return onlyPositive.Any() || onlyNegative.Any(), nil
}

// Propagate runs unit propagation and pure-literal elimination to fixpoint.
// It is idempotent once the fixpoint is reached.
func (in *Instance) Propagate() error {
	for {
		progress := false
		unit, err := in.UnitPropagateOnce()
		if err != nil {
			return err
		}
		progress = progress || unit
		pure, err := in.PureLiteralEliminateOnce()
		if err != nil {
			return err
		}
		progress = progress || pure
		if !progress {
			return nil
		}
	}
}

// DropTautologies removes clauses containing a variable with both polarities.
// DPLL never creates new tautologies, so a single pass before search
// suffices.
func (in *Instance) DropTautologies() {
	kept := in.Clauses[:0]
	for _, c := range in.Clauses {
		if !c.IsTautology() {
			kept = append(kept, c)
		}
	}
	in.Clauses = kept
}

// VerifyAgainst reports whether the assignment satisfies every active clause.
func (in *Instance) VerifyAgainst(a Assignment) bool {
	for _, c := range in.Clauses {
		if !c.SatisfiedBy(a) {
			return false
		}
	}
	return true
}

func (in *Instance) String() string {
	parts := make([]string, len(in.Clauses))
	for i, c := range in.Clauses {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
