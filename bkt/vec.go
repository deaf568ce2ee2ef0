// Package bkt provides small dense, index-keyed containers for
// per-variable and per-edge side tables: a growable Vec keyed by a typed
// dense id, a bitset Set over the same kind of id, and a sparse Map for
// keys that are not allocated densely from zero. Within this module,
// only the stn package uses one of them (a Set).
package bkt

// Index is any integer type usable as a dense id. stncore's typed ids
// are backed by int32 (lit.VarRef, lit.VarBound) or uint32 (stn.EdgeID,
// stn.DirEdge), so the bound covers those widths as well as plain int
// and the 64-bit kinds.
type Index interface {
	~int | ~int32 | ~int64 | ~uint32 | ~uint64
}

// Vec is a dense, growable array indexed by a typed integer id. It is
// the generic form of the per-variable tables the domain and stn
// packages keep (bounds, watch lists, activation state): rather than a
// map keyed by id, storage grows to fit the largest id seen so growth
// and lookup both stay O(1) amortized.
type Vec[K Index, V any] struct {
	items []V
}

// NewVec creates an empty Vec.
func NewVec[K Index, V any]() *Vec[K, V] {
	return &Vec[K, V]{}
}

// Len returns the number of slots currently allocated.
func (v *Vec[K, V]) Len() int {
	return len(v.items)
}

// Push appends a value, returning the id it was stored under.
func (v *Vec[K, V]) Push(val V) K {
	id := K(len(v.items))
	v.items = append(v.items, val)
	return id
}

// Get returns the value stored at id. id must be less than Len().
func (v *Vec[K, V]) Get(id K) V {
	return v.items[id]
}

// Set overwrites the value stored at id. id must be less than Len().
func (v *Vec[K, V]) Set(id K, val V) {
	v.items[id] = val
}

// GetMut returns a pointer into the backing array for id, letting
// callers mutate a struct value in place without a Get/Set round trip.
func (v *Vec[K, V]) GetMut(id K) *V {
	return &v.items[id]
}

// EnsureLen grows the Vec with zero values until it has room for id,
// inclusive. Used when ids may be reserved out of order.
func (v *Vec[K, V]) EnsureLen(id K) {
	for K(len(v.items)) <= id {
		var zero V
		v.items = append(v.items, zero)
	}
}

// Keys returns every allocated id, in allocation order.
func (v *Vec[K, V]) Keys() []K {
	keys := make([]K, len(v.items))
	for i := range v.items {
		keys[i] = K(i)
	}
	return keys
}
