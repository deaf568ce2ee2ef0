// Package stn implements an incremental Simple Temporal Network: a
// difference-logic propagator maintaining `target - source <= weight`
// constraints over a shared domain.Domains, with Cesta96 incremental
// propagation, Dijkstra-based theory propagation, and negative-cycle
// explanation.
package stn

import (
	"fmt"

	"github.com/katalvlaran/stncore/lit"
)

// EdgeID identifies an edge in the STN. An edge and its negation share
// the same base id and differ only in the negated bit, since inserting
// "a - b <= w" always implicitly makes "a - b > w" representable too.
type EdgeID uint32

// newEdgeID packs a base id and negation flag.
func newEdgeID(base uint32, negated bool) EdgeID {
	if negated {
		return EdgeID(base<<1 + 1)
	}
	return EdgeID(base << 1)
}

// BaseID returns the id shared by an edge and its negation.
func (e EdgeID) BaseID() uint32 {
	return uint32(e) >> 1
}

// IsNegated reports whether this is the negated view of its base edge.
func (e EdgeID) IsNegated() bool {
	return uint32(e)&1 == 1
}

// Not returns the id of the opposite (negated vs. canonical) edge.
func (e EdgeID) Not() EdgeID {
	return EdgeID(uint32(e) ^ 1)
}

func (e EdgeID) forward() DirEdge {
	return forwardEdge(e)
}

func (e EdgeID) backward() DirEdge {
	return backwardEdge(e)
}

// Edge is a difference constraint `target - source <= weight`, in
// either canonical or negated form. Given two edges (tgt-src<=w) and
// (tgt-src>w), exactly one is canonical.
type Edge struct {
	Source lit.VarRef
	Target lit.VarRef
	Weight int32
}

// IsCanonical reports whether this is the canonical representative of
// the edge/negation pair.
func (e Edge) IsCanonical() bool {
	return e.Source < e.Target || (e.Source == e.Target && e.Weight >= 0)
}

// Negated returns the logical negation of e: not(tgt-src<=w) is
// tgt-src>w, equivalently src-tgt <= -w-1.
func (e Edge) Negated() Edge {
	return Edge{Source: e.Target, Target: e.Source, Weight: -e.Weight - 1}
}

func (e Edge) String() string {
	return fmt.Sprintf("%s - %s <= %d", e.Target, e.Source, e.Weight)
}

// DirEdge is an edge together with a propagation direction: forward
// (source's bound implies a target bound) or backward.
type DirEdge uint32

func forwardEdge(e EdgeID) DirEdge {
	return DirEdge(uint32(e) << 1)
}

func backwardEdge(e EdgeID) DirEdge {
	return DirEdge(uint32(e)<<1 + 1)
}

// IsForward reports whether this is the forward view of its edge.
func (d DirEdge) IsForward() bool {
	return uint32(d)&1 == 0
}

// Edge returns the EdgeID this projection belongs to.
func (d DirEdge) Edge() EdgeID {
	return EdgeID(uint32(d) >> 1)
}
