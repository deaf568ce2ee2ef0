package stn

import "github.com/katalvlaran/stncore/lit"

// DirConstraint is one directional projection of an edge: "source's
// bound at least X implies target's bound at least X + weight". An
// edge contributes two DirConstraints (forward, on upper bounds;
// backward, on lower bounds), and each of those may itself be inactive
// (not yet entailed) or active (participating in propagation).
type DirConstraint struct {
	Active       bool
	AlwaysActive bool
	Source       lit.VarBound
	Target       lit.VarBound
	Weight       lit.BoundValueAdd
	Enablers     []lit.Lit
}

// forwardConstraint builds "source <= X => target <= X + weight".
func forwardConstraint(e Edge) DirConstraint {
	return DirConstraint{
		Source: lit.UB(e.Source),
		Target: lit.UB(e.Target),
		Weight: lit.OnUB(e.Weight),
	}
}

// backwardConstraint builds "target >= X => source >= X - weight".
func backwardConstraint(e Edge) DirConstraint {
	return DirConstraint{
		Source: lit.LB(e.Target),
		Target: lit.LB(e.Source),
		Weight: lit.OnLB(-e.Weight),
	}
}

// asEdge reconstructs the Edge this constraint was derived from.
func (c DirConstraint) asEdge() Edge {
	if c.Source.IsUB() {
		return Edge{Source: c.Source.Variable(), Target: c.Target.Variable(), Weight: c.Weight.AsUBAdd()}
	}
	return Edge{Source: c.Target.Variable(), Target: c.Source.Variable(), Weight: c.Weight.AsLBAdd()}
}

// constraintPair holds the four DirConstraints an inserted edge
// produces: forward/backward views of both the canonical edge and its
// negation.
type constraintPair struct {
	baseForward     DirConstraint
	baseBackward    DirConstraint
	negatedForward  DirConstraint
	negatedBackward DirConstraint
}

func newInactivePair(e Edge) constraintPair {
	if !e.IsCanonical() {
		e = e.Negated()
	}
	neg := e.Negated()
	return constraintPair{
		baseForward:     forwardConstraint(e),
		baseBackward:    backwardConstraint(e),
		negatedForward:  forwardConstraint(neg),
		negatedBackward: backwardConstraint(neg),
	}
}

// Propagator is a compact view of an active DirConstraint used on the
// propagation hot path: source's adjacency list holds one of these per
// active outgoing edge.
type Propagator struct {
	Target lit.VarBound
	Weight lit.BoundValueAdd
	ID     DirEdge
}

// edgeTarget records a potential (not-yet-necessarily-active) edge
// reachable from a VarBound, indexed by source for theory propagation's
// predecessor/successor search.
type edgeTarget struct {
	target  lit.VarBound
	weight  lit.BoundValueAdd
	enabler lit.Lit
}

// constraintDB owns every DirConstraint ever created (four per inserted
// edge: forward/backward of the edge and of its negation) along with
// the indexes used to unify repeated insertions and to watch for
// enabling literals becoming true.
type constraintDB struct {
	constraints []DirConstraint
	lookup      map[Edge]uint32
	watches     map[lit.Lit][]DirEdge
	outEdges    map[lit.VarBound][]edgeTarget
}

func newConstraintDB() *constraintDB {
	return &constraintDB{
		lookup:   make(map[Edge]uint32),
		watches:  make(map[lit.Lit][]DirEdge),
		outEdges: make(map[lit.VarBound][]edgeTarget),
	}
}

func (db *constraintDB) get(d DirEdge) *DirConstraint {
	return &db.constraints[d]
}

func (db *constraintDB) makeAlwaysActive(e EdgeID) {
	db.get(e.forward()).AlwaysActive = true
	db.get(e.backward()).AlwaysActive = true
}

// addEnabler records that l becoming true should activate e in both
// directions.
func (db *constraintDB) addEnabler(e EdgeID, l lit.Lit) {
	db.addDirectedEnabler(e.forward(), l)
	db.addDirectedEnabler(e.backward(), l)
}

func (db *constraintDB) addDirectedEnabler(d DirEdge, l lit.Lit) {
	db.watches[l] = append(db.watches[l], d)
	c := db.get(d)
	c.Enablers = append(c.Enablers, l)
	db.outEdges[c.Source] = append(db.outEdges[c.Source], edgeTarget{target: c.Target, weight: c.Weight, enabler: l})
}

func (db *constraintDB) potentialOutEdges(source lit.VarBound) []edgeTarget {
	return db.outEdges[source]
}

func (db *constraintDB) findExisting(e Edge) (EdgeID, bool) {
	if e.IsCanonical() {
		base, ok := db.lookup[e]
		return newEdgeID(base, false), ok
	}
	base, ok := db.lookup[e.Negated()]
	return newEdgeID(base, true), ok
}

// pushEdge inserts e, unifying with an existing edge if one is already
// present. created is false when the edge was merged with a prior
// insertion rather than allocated fresh.
func (db *constraintDB) pushEdge(e Edge) (id EdgeID, created bool) {
	if existing, ok := db.findExisting(e); ok {
		return existing, false
	}
	pair := newInactivePair(e)
	base := pair.baseForward.asEdge()
	baseID := uint32(len(db.constraints)) / 4
	db.constraints = append(db.constraints, pair.baseForward, pair.baseBackward, pair.negatedForward, pair.negatedBackward)
	db.lookup[base] = baseID
	edgeID := newEdgeID(baseID, !e.IsCanonical())
	return edgeID, true
}

// popLast removes the four constraints created by the most recent
// pushEdge call that actually created a new edge (pushEdge returned
// created=true).
func (db *constraintDB) popLast() {
	n := len(db.constraints)
	base := db.constraints[n-4]
	delete(db.lookup, base.asEdge())
	db.constraints = db.constraints[:n-4]
}

func (db *constraintDB) hasEdge(e EdgeID) bool {
	return uint64(e.BaseID())*4 < uint64(len(db.constraints))
}
