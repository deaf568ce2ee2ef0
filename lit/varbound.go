package lit

// VarBound names one side (lower or upper) of a variable's domain.
//
// Encoding: (var << 1) | side, side=0 for the lower bound and side=1 for
// the upper bound. Two consequences fall out of this encoding for free:
//
//   - SymmetricBound flips sides with a single XOR.
//   - A VarBound is a dense index with two slots per variable, so it can
//     back a plain slice-indexed table (used throughout domain and stn).
type VarBound int32

const (
	sideLower int32 = 0
	sideUpper int32 = 1
)

// LB returns the VarBound naming v's lower bound.
func LB(v VarRef) VarBound {
	return VarBound(int32(v)<<1 | sideLower)
}

// UB returns the VarBound naming v's upper bound.
func UB(v VarRef) VarBound {
	return VarBound(int32(v)<<1 | sideUpper)
}

// IsLB reports whether vb names a lower bound.
func (vb VarBound) IsLB() bool {
	return int32(vb)&1 == sideLower
}

// IsUB reports whether vb names an upper bound.
func (vb VarBound) IsUB() bool {
	return int32(vb)&1 == sideUpper
}

// Variable returns the variable that vb is a bound of.
func (vb VarBound) Variable() VarRef {
	return VarRef(int32(vb) >> 1)
}

// SymmetricBound returns the opposite side of the same variable: the
// lower bound of vb's upper bound, or vice versa.
func (vb VarBound) SymmetricBound() VarBound {
	return vb ^ 1
}

// Index returns vb as a dense table index, for use as a slice subscript.
func (vb VarBound) Index() int {
	return int(vb)
}

func (vb VarBound) String() string {
	if vb.IsLB() {
		return vb.Variable().String() + ".lb"
	}
	return vb.Variable().String() + ".ub"
}
