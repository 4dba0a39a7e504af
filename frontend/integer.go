package frontend

import (
	"fmt"

	"github.com/petersn/bitblast/cnf"
)

// Integer is a fixed-width unsigned value represented by one boolean
// variable per bit, little-endian (bit 0 is least significant). Bits are
// never mutated after construction; circuits relate them to other bits by
// emitting clauses.
type Integer struct {
	bits []cnf.Var
}

// NewInteger allocates width fresh bit variables. Widths up to 64 are
// supported so values round-trip through uint64.
func (b *Builder) NewInteger(width int) *Integer {
	if width <= 0 || width > 64 {
		panic(fmt.Sprintf("frontend: unsupported integer width %d", width))
	}
	bits := make([]cnf.Var, width)
	for i := range bits {
		bits[i] = b.NewVar(fmt.Sprintf("i%d", i))
	}
	return &Integer{bits: bits}
}

// BitLength returns the width in bits.
func (x *Integer) BitLength() int {
	return len(x.bits)
}

// Bit returns the variable backing bit i.
func (x *Integer) Bit(i int) cnf.Var {
	return x.bits[i]
}

// Bits returns the bit variables in little-endian order.
func (x *Integer) Bits() []cnf.Var {
	out := make([]cnf.Var, len(x.bits))
	copy(out, x.bits)
	return out
}

// Decode reads the integer's value out of a total assignment. Every bit must
// be assigned.
func (x *Integer) Decode(total cnf.Assignment) uint64 {
	var value uint64
	for i, v := range x.bits {
		truth, ok := total[v]
		if !ok {
			panic(fmt.Sprintf("frontend: decoding with unassigned bit variable %d", v))
		}
		if truth {
			value |= 1 << uint(i)
		}
	}
	return value
}

// Rotate returns x rotated left by k bit positions. This is pure rewiring:
// the result shares bit-variable identities with x and no clauses are
// emitted.
func (b *Builder) Rotate(x *Integer, k int) *Integer {
	width := x.BitLength()
	k = ((k % width) + width) % width
	bits := make([]cnf.Var, width)
	for i := range bits {
		bits[i] = x.bits[((i-k)%width+width)%width]
	}
	return &Integer{bits: bits}
}

// Xor returns a new integer constrained to the bitwise xor of x and y.
func (b *Builder) Xor(x, y *Integer) *Integer {
	width := sameWidth(x, y)
	out := b.NewInteger(width)
	for i := 0; i < width; i++ {
		b.XorGate(x.Bit(i), y.Bit(i), out.Bit(i))
	}
	return out
}

// Addition is the result of a ripple-carry add. It is an Integer plus the
// carry chain; Overflow is the carry out of the most significant bit.
type Addition struct {
	*Integer
	Carries  *Integer
	Overflow cnf.Var
}

// Add returns x + y mod 2^width as a ripple-carry full-adder chain. The
// carry into the least significant bit is the pinned false variable.
func (b *Builder) Add(x, y *Integer) *Addition {
	width := sameWidth(x, y)
	sum := &Addition{
		Integer: b.NewInteger(width),
		Carries: b.NewInteger(width),
	}
	previousCarry := b.False
	for i := 0; i < width; i++ {
		currentCarry := sum.Carries.Bit(i)
		b.FullAdder(x.Bit(i), y.Bit(i), previousCarry, sum.Bit(i), currentCarry)
		previousCarry = currentCarry
	}
	sum.Overflow = previousCarry
	return sum
}

// BitInverse returns a new integer constrained to the bitwise complement of
// x.
func (b *Builder) BitInverse(x *Integer) *Integer {
	out := b.NewInteger(x.BitLength())
	for i := 0; i < x.BitLength(); i++ {
		b.NotGate(x.Bit(i), out.Bit(i))
	}
	return out
}

// Negate returns the two's complement of x, computed as bitwise complement
// plus one. The returned Addition's Overflow is the carry out of the +1
// step, which is set exactly when x is zero.
func (b *Builder) Negate(x *Integer) *Addition {
	inverse := b.BitInverse(x)
	one := b.NewInteger(x.BitLength())
	b.ConstrainConstant(one, 1)
	return b.Add(inverse, one)
}

// EqualsZero returns a fresh variable constrained to be true exactly when
// every bit of x is zero.
func (b *Builder) EqualsZero(x *Integer) cnf.Var {
	result := b.NewVar("allz")
	// At least one bit must be 1, or the result bit must be 1.
	b.AddClause(append(x.Bits(), result), nil)
	// If any bit is 1 the result must be 0.
	for i := 0; i < x.BitLength(); i++ {
		b.AddClause(nil, []cnf.Var{x.Bit(i), result})
	}
	return result
}

// ConstrainConstant pins x to the constant k by equating each bit with the
// pinned true or false variable. Bits of k beyond x's width are ignored.
func (b *Builder) ConstrainConstant(x *Integer, k uint64) {
	for i := 0; i < x.BitLength(); i++ {
		b.Equate(x.Bit(i), b.Bool((k>>uint(i))&1))
	}
}

func sameWidth(x, y *Integer) int {
	if x.BitLength() != y.BitLength() {
		panic(fmt.Sprintf("frontend: width mismatch %d vs %d", x.BitLength(), y.BitLength()))
	}
	return x.BitLength()
}
