package frontend

import "github.com/petersn/bitblast/cnf"

// The gate emitters below constrain an output variable to equal a boolean
// function of the inputs. Every assignment of inputs and output that agrees
// with the function satisfies all emitted clauses, and every assignment that
// contradicts it falsifies at least one. For NOT and XOR that is exactly one
// clause; AND with both inputs false and OR with both inputs true falsify
// two.

// NotGate constrains out = ¬a.
func (b *Builder) NotGate(a, out cnf.Var) {
	b.AddClause([]cnf.Var{a, out}, nil)
	b.AddClause(nil, []cnf.Var{a, out})
}

// AndGate constrains out = a ∧ c.
func (b *Builder) AndGate(a, c, out cnf.Var) {
	b.AddClause([]cnf.Var{a}, []cnf.Var{out})
	b.AddClause([]cnf.Var{c}, []cnf.Var{out})
	b.AddClause([]cnf.Var{out}, []cnf.Var{a, c})
}

// OrGate constrains out = a ∨ c.
func (b *Builder) OrGate(a, c, out cnf.Var) {
	b.AddClause([]cnf.Var{out}, []cnf.Var{a})
	b.AddClause([]cnf.Var{out}, []cnf.Var{c})
	b.AddClause([]cnf.Var{a, c}, []cnf.Var{out})
}

// XorGate constrains out = a ⊕ c.
func (b *Builder) XorGate(a, c, out cnf.Var) {
	// If a and c are (0, 0) then out can't be 1.
	b.AddClause([]cnf.Var{a, c}, []cnf.Var{out})
	// If a and c are (0, 1) then out can't be 0.
	b.AddClause([]cnf.Var{a, out}, []cnf.Var{c})
	// If a and c are (1, 0) then out can't be 0.
	b.AddClause([]cnf.Var{c, out}, []cnf.Var{a})
	// All three bits can't be 1 at once.
	b.AddClause(nil, []cnf.Var{a, c, out})
}

// FullAdder constrains sum = a ⊕ c ⊕ carryIn and carryOut to the majority of
// the three inputs, introducing three helper variables: the half sum a ⊕ c
// and the two partial products.
func (b *Builder) FullAdder(a, c, carryIn, sum, carryOut cnf.Var) {
	half := b.NewVar("fa.0")
	b.XorGate(a, c, half)
	b.XorGate(carryIn, half, sum)
	ab := b.NewVar("fa.1")
	ch := b.NewVar("fa.2")
	b.AndGate(a, c, ab)
	b.AndGate(carryIn, half, ch)
	b.OrGate(ab, ch, carryOut)
}
