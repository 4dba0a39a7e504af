package frontend

import "github.com/petersn/bitblast/cnf"

// Comparison relates two equal-width integers through bit-blasted
// subtraction. Exactly one of LessThan, Equal, GreaterThan holds in any
// model.
type Comparison struct {
	// Subtraction is x + (-y); its overflow feeds the ordering bits.
	Subtraction *Addition

	GreaterOrEqual cnf.Var
	Equal          cnf.Var
	GreaterThan    cnf.Var
	LessThan       cnf.Var
}

// Compare builds the comparison circuit for x against y.
//
// x ≥ y is detected as: the subtraction x + (2^w - y) carried out of the top
// bit, or negating y itself carried out (which happens exactly when y = 0,
// making x ≥ 0 unconditionally true).
func (b *Builder) Compare(x, y *Integer) *Comparison {
	sameWidth(x, y)
	negativeY := b.Negate(y)
	cmp := &Comparison{
		Subtraction: b.Add(x, negativeY.Integer),
	}
	cmp.GreaterOrEqual = b.NewVar("cmp.ge")
	b.OrGate(cmp.Subtraction.Overflow, negativeY.Overflow, cmp.GreaterOrEqual)

	cmp.Equal = b.EqualsZero(cmp.Subtraction.Integer)

	// greater_than = ge ⊕ equal.
	cmp.GreaterThan = b.NewVar("cmp.gt")
	b.XorGate(cmp.GreaterOrEqual, cmp.Equal, cmp.GreaterThan)

	// less_than = ¬ge.
	cmp.LessThan = b.NewVar("cmp.lt")
	b.NotGate(cmp.GreaterOrEqual, cmp.LessThan)
	return cmp
}
