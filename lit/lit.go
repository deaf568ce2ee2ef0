package lit

import "fmt"

// Relation names the comparison a literal asserts about a variable.
type Relation int

const (
	// RelGt is "variable > value" (a lower-bound literal).
	RelGt Relation = iota
	// RelLeq is "variable <= value" (an upper-bound literal).
	RelLeq
)

func (r Relation) String() string {
	if r == RelLeq {
		return "<="
	}
	return ">"
}

// Lit is a literal: an assertion that a variable's bound is at least as
// tight as a given value. Every Lit is either "var <= k" (an upper-bound
// literal) or "var > k" (a lower-bound literal, stored internally as
// "var >= k+1"); Leq/Lt/Geq/Gt normalize arbitrary comparisons to one of
// these two shapes.
//
// Lit is a plain value (two int32s) and is cheap to copy, hash, and use
// as a map key.
type Lit struct {
	varBound VarBound
	value    BoundValue
}

// TRUE is the literal that always holds: ZERO.ub <= 0.
var TRUE = Lit{varBound: UB(ZERO), value: UBValue(0)}

// FALSE is the negation of TRUE.
var FALSE = TRUE.Not()

// FromParts builds a literal directly from its packed components. Used
// internally and by code that already has a VarBound/BoundValue pair
// (e.g. propagation code that computed a new bound).
func FromParts(vb VarBound, value BoundValue) Lit {
	return Lit{varBound: vb, value: value}
}

// New builds the literal "variable <rel> value".
func New(variable VarRef, rel Relation, value int32) Lit {
	if rel == RelLeq {
		return Lit{varBound: UB(variable), value: UBValue(value)}
	}
	return Lit{varBound: LB(variable), value: LBValue(value + 1)}
}

// Leq builds "variable <= value".
func Leq(variable VarRef, value int32) Lit {
	return New(variable, RelLeq, value)
}

// Lt builds "variable < value" (equivalently "variable <= value-1").
func Lt(variable VarRef, value int32) Lit {
	return Leq(variable, value-1)
}

// Geq builds "variable >= value" (equivalently "variable > value-1").
func Geq(variable VarRef, value int32) Lit {
	return Gt(variable, value-1)
}

// Gt builds "variable > value".
func Gt(variable VarRef, value int32) Lit {
	return New(variable, RelGt, value)
}

// Variable returns the variable this literal constrains.
func (l Lit) Variable() VarRef {
	return l.varBound.Variable()
}

// Relation returns whether this literal is an upper- or lower-bound
// assertion.
func (l Lit) Relation() Relation {
	if l.varBound.IsUB() {
		return RelLeq
	}
	return RelGt
}

// Value returns the threshold this literal compares against, in the
// original (non-normalized) sense: for "x > k" this returns k, not k+1.
func (l Lit) Value() int32 {
	if l.Relation() == RelLeq {
		return l.value.AsUB()
	}
	return l.value.AsLB() - 1
}

// AffectedBound returns the packed VarBound this literal constrains.
func (l Lit) AffectedBound() VarBound {
	return l.varBound
}

// BoundValue returns the packed raw bound value carried by this literal.
func (l Lit) BoundValue() BoundValue {
	return l.value
}

// Not returns the logical negation of l: "x <= k" negates to "x > k",
// and vice versa.
func (l Lit) Not() Lit {
	return Lit{varBound: l.varBound.SymmetricBound(), value: l.value.Neg()}
}

// Entails reports whether l being true implies other is true: same
// VarBound, and l's raw value is at least as tight as other's.
func (l Lit) Entails(other Lit) bool {
	return l.varBound == other.varBound && l.value.Stronger(other.value)
}

// Unpack decomposes the literal into its three logical components.
func (l Lit) Unpack() (VarRef, Relation, int32) {
	return l.Variable(), l.Relation(), l.Value()
}

// Less defines the total order over literals: first by variable, then
// by affected bound (lower before upper), then by raw value. Sorting a
// mixed slice of literals with this order groups them by variable, and
// within one variable's run each literal entails its right neighbor.
func (l Lit) Less(other Lit) bool {
	if l.varBound != other.varBound {
		return l.varBound < other.varBound
	}
	return l.value < other.value
}

func (l Lit) String() string {
	switch l {
	case TRUE:
		return "true"
	case FALSE:
		return "false"
	}
	v, rel, val := l.Unpack()
	if rel == RelGt && val == 0 {
		return fmt.Sprintf("%s", v)
	}
	if rel == RelLeq && val == 0 {
		return fmt.Sprintf("!%s", v)
	}
	return fmt.Sprintf("%s %s %d", v, rel, val)
}

// FromBool converts a boolean into the corresponding constant literal.
func FromBool(b bool) Lit {
	if b {
		return TRUE
	}
	return FALSE
}
