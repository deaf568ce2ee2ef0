package lit

// BoundValue is the numeric value carried by a literal, stored so that
// entailment between two bounds on the same VarBound reduces to a single
// integer comparison regardless of which side (lower/upper) is involved.
//
// Upper bounds store their raw value directly: "x <= k" stores k.
// Lower bounds store their raw value negated: "x >= k" stores -k.
// With this convention, bound A strengthens (entails) bound B exactly
// when raw(A) <= raw(B) — a smaller raw value is always the tighter one,
// on either side.
type BoundValue int32

// UBValue builds the raw BoundValue for an upper bound "x <= k".
func UBValue(k int32) BoundValue {
	return BoundValue(k)
}

// LBValue builds the raw BoundValue for a lower bound "x >= k".
func LBValue(k int32) BoundValue {
	return BoundValue(-k)
}

// AsUB interprets the raw value as an upper-bound threshold k in "x <= k".
func (b BoundValue) AsUB() int32 {
	return int32(b)
}

// AsLB interprets the raw value as a lower-bound threshold k in "x >= k".
func (b BoundValue) AsLB() int32 {
	return -int32(b)
}

// Stronger reports whether b strengthens (is at least as tight as) other,
// for two bound values on the same VarBound.
func (b BoundValue) Stronger(other BoundValue) bool {
	return b <= other
}

// Neg converts a bound's raw value into the raw value its symmetric
// (opposite-side, strict-negation) bound would carry: "x<=k" negates to
// "x>=k+1", and "x>=k" (raw -k) negates to "x<=k-1" — in both cases the
// one's-complement transform -b-1, not a plain sign flip.
func (b BoundValue) Neg() BoundValue {
	return -b - 1
}

// Add returns the raw value offset by delta. Because both sides store
// raw values as plain integers, addition of a BoundValueAdd is always
// ordinary integer addition regardless of side.
func (b BoundValue) Add(delta BoundValueAdd) BoundValue {
	return BoundValue(int32(b) + int32(delta))
}

// Sub returns the signed delta between two raw values on the same side.
func (b BoundValue) Sub(other BoundValue) BoundValueAdd {
	return BoundValueAdd(int32(b) - int32(other))
}

// BoundValueAdd is a signed delta between two BoundValues on the same
// side (the weight of an STN edge, or a distance accumulated along a
// path of edges). Addition of deltas, and of a delta to a BoundValue, is
// plain integer arithmetic on the raw representation.
type BoundValueAdd int32

// ZeroAdd is the additive identity.
const ZeroAdd BoundValueAdd = 0

// OnUB builds a BoundValueAdd representing a plain weight w applied on
// the upper-bound side (no sign flip).
func OnUB(w int32) BoundValueAdd {
	return BoundValueAdd(w)
}

// OnLB builds a BoundValueAdd representing a weight w applied on the
// lower-bound side, where raw values are negated.
func OnLB(w int32) BoundValueAdd {
	return BoundValueAdd(-w)
}

// RawValue returns the underlying signed delta.
func (d BoundValueAdd) RawValue() int32 {
	return int32(d)
}

// IsTightening reports whether applying this delta as a self-loop weight
// (source == target) would tighten the bound, i.e. the delta is negative
// and therefore encodes an inconsistency if ever applied to itself.
func (d BoundValueAdd) IsTightening() bool {
	return d < 0
}

// Plus adds two deltas.
func (d BoundValueAdd) Plus(other BoundValueAdd) BoundValueAdd {
	return d + other
}

// Neg returns the additive inverse of d.
func (d BoundValueAdd) Neg() BoundValueAdd {
	return -d
}

// AsUBAdd interprets the delta as a plain upper-bound weight.
func (d BoundValueAdd) AsUBAdd() int32 {
	return int32(d)
}

// AsLBAdd interprets the delta as a plain lower-bound weight.
func (d BoundValueAdd) AsLBAdd() int32 {
	return int32(d)
}
