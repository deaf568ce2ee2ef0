package stn

import (
	"fmt"

	"github.com/katalvlaran/stncore/bkt"
	"github.com/katalvlaran/stncore/domain"
	"github.com/katalvlaran/stncore/lit"
	"github.com/katalvlaran/stncore/trail"
)

// eventKind distinguishes the three kinds of undoable STN-local event.
type eventKind uint8

const (
	eventEdgeAdded eventKind = iota
	eventEdgeActivated
	eventTheoryPropagationCauseAdded
)

// stnEvent is one entry in the STN's own trail, distinct from the
// shared domain.Domains trail: it records structural changes to the
// constraint database (edges added/activated) rather than bound
// changes.
type stnEvent struct {
	kind eventKind
	edge DirEdge
}

// theoryPropagationCause records the endpoints of the active shortest
// path that justified a theory propagation, so explainTheoryPropagation
// can later reconstruct it.
type theoryPropagationCause struct {
	source lit.VarBound
	target lit.VarBound
}

// edgePropagationCause packs a DirEdge into the payload carried by
// domain.Cause, tagged so the STN can later tell which kind of STN
// inference produced a given bound change.
func edgePropagationCause(e DirEdge) uint64 {
	return uint64(e) << 1
}

// theoryPropagationCauseIndex packs an index into theoryPropagationCauses.
func theoryPropagationCauseIndex(idx int) uint64 {
	return uint64(idx)<<1 | 1
}

// decodeCause splits a payload produced by edgePropagationCause or
// theoryPropagationCauseIndex back into its parts.
func decodeCause(payload uint64) (edge DirEdge, causeIdx int, isTheory bool) {
	if payload&1 == 0 {
		return DirEdge(payload >> 1), 0, false
	}
	return 0, int(payload >> 1), true
}

type stats struct {
	numPropagations uint64
	distanceUpdates uint64
}

// IncStn is an incremental Simple Temporal Network. It supports
// incremental edge addition with Cesta96 consistency checking, undoing
// the latest changes, unification of edges added more than once, and
// explanation of inconsistencies as a culprit set of constraints.
//
// IncStn is not safe for concurrent use: it is the single writer (along
// with any bound theories) of its associated domain.Domains, driven
// cooperatively from one goroutine, per the package's concurrency
// model.
//
// A signed 32-bit weight is used for both edge weights and absolute
// bounds; overflow during propagation is the caller's responsibility to
// avoid by choice of initial bounds.
type IncStn struct {
	constraints *constraintDB

	// activePropagators holds, for each VarBound, the active outgoing
	// edges from it.
	activePropagators map[lit.VarBound][]Propagator
	pendingUpdates    bkt.Set[lit.VarBound]

	stnTrail *trail.ObsTrail[stnEvent]

	pendingActivations fifo[DirEdge]
	internalQueue      fifo[lit.VarBound]

	stats stats

	identity domain.WriterID

	modelEvents *trail.Cursor[domain.VarEvent]

	theoryPropagationCauses []theoryPropagationCause
}

// New creates an empty STN identified by identity for the purposes of
// conflict-analysis explanation routing.
func New(identity domain.WriterID) *IncStn {
	return &IncStn{
		constraints:       newConstraintDB(),
		activePropagators: make(map[lit.VarBound][]Propagator),
		stnTrail:          trail.New[stnEvent](),
		identity:          identity,
		modelEvents:       trail.NewCursor[domain.VarEvent](),
	}
}

// NumNodes returns the number of timepoints reserved so far.
func (s *IncStn) NumNodes() int {
	return len(s.activePropagators) / 2
}

// PrintStats reports the propagator's internal counters, for diagnostics.
func (s *IncStn) PrintStats() {
	fmt.Printf("stn: nodes=%d propagations=%d distance_updates=%d\n",
		s.NumNodes(), s.stats.numPropagations, s.stats.distanceUpdates)
}

// ReserveTimepoint allocates propagator adjacency slots for a new
// timepoint. Callers normally rely on AddReifiedEdge/AddOptionalTrueEdge
// to reserve timepoints automatically; this is exposed for callers that
// need slots reserved ahead of any edge (e.g. isolated timepoints).
func (s *IncStn) ReserveTimepoint() {
	n := lit.VarRef(s.NumNodes())
	s.activePropagators[lit.UB(n)] = nil
	s.activePropagators[lit.LB(n)] = nil
}

func (s *IncStn) hasEdges(v lit.VarRef) bool {
	return uint32(v) < uint32(s.NumNodes())
}

func (s *IncStn) ensureReserved(v lit.VarRef) {
	for uint32(v) >= uint32(s.NumNodes()) {
		s.ReserveTimepoint()
	}
}

// addInactiveConstraint inserts (or unifies with) the difference
// constraint target-source<=weight, reserving timepoints as needed.
func (s *IncStn) addInactiveConstraint(source, target lit.VarRef, weight int32) (EdgeID, bool) {
	s.ensureReserved(source)
	s.ensureReserved(target)
	id, created := s.constraints.pushEdge(Edge{Source: source, Target: target, Weight: weight})
	if created {
		s.stnTrail.Push(stnEvent{kind: eventEdgeAdded})
	}
	return id, created
}

// AddReifiedEdge inserts the constraint target-source<=weight, active
// exactly when l holds. If l is already entailed at the root level, the
// edge is made always-active and immediately marked for activation;
// otherwise l becomes the enabler of both directions of the edge, and
// l's negation the enabler of both directions of the negated edge.
func (s *IncStn) AddReifiedEdge(l lit.Lit, source, target lit.VarRef, weight int32, store *domain.Domains) EdgeID {
	e, _ := s.addInactiveConstraint(source, target, weight)
	if store.Entails(l) {
		s.constraints.makeAlwaysActive(e)
		s.MarkActive(e)
	} else {
		s.constraints.addEnabler(e, l)
		s.constraints.addEnabler(e.Not(), l.Not())
	}
	return e
}

// AddOptionalTrueEdge inserts an edge that is unconditionally true
// (never negated) but only propagates in each direction once the
// corresponding enabler holds — used for edges between optional
// timepoints, where forward and backward propagation must each be
// gated on both endpoints' presence.
func (s *IncStn) AddOptionalTrueEdge(source, target lit.VarRef, weight int32, fwdEnabler, bwdEnabler lit.Lit, store *domain.Domains) EdgeID {
	e, _ := s.addInactiveConstraint(source, target, weight)

	s.constraints.addDirectedEnabler(e.forward(), fwdEnabler)
	if store.Entails(fwdEnabler) {
		s.pendingActivations.pushBack(e.forward())
	}
	s.constraints.addDirectedEnabler(e.backward(), bwdEnabler)
	if store.Entails(bwdEnabler) {
		s.pendingActivations.pushBack(e.backward())
	}
	return e
}

// MarkActive enqueues both directional views of e for activation. No
// change is committed until the next PropagateAll call.
func (s *IncStn) MarkActive(e EdgeID) {
	s.pendingActivations.pushBack(e.forward())
	s.pendingActivations.pushBack(e.backward())
}

func (s *IncStn) active(d DirEdge) bool {
	return s.constraints.get(d).Active
}

// isTrulyActive reports whether d is active AND (always-active, or one
// of its enablers currently holds). An edge can be marked Active from a
// since-undone activation while explanation code is still inspecting a
// stale view of the model; callers walking paths for explanation must
// use this instead of active.
func (s *IncStn) isTrulyActive(d DirEdge, store *domain.Domains) bool {
	c := s.constraints.get(d)
	if c.AlwaysActive {
		return true
	}
	for _, en := range c.Enablers {
		if store.Entails(en) {
			return true
		}
	}
	return false
}

// enablingLiteral returns an enabler of d that currently holds, or
// false if d is always-active (and so has no enabler to report). It
// panics if d has no entailed enabler (a caller bug).
func (s *IncStn) enablingLiteral(d DirEdge, store *domain.Domains) (lit.Lit, bool) {
	c := s.constraints.get(d)
	if c.AlwaysActive {
		return lit.Lit{}, false
	}
	for _, en := range c.Enablers {
		if store.Entails(en) {
			return en, true
		}
	}
	panic("stn: active edge has no entailed enabler")
}

func (s *IncStn) undoStnEvent(ev stnEvent) {
	switch ev.kind {
	case eventEdgeAdded:
		s.constraints.popLast()
	case eventEdgeActivated:
		c := s.constraints.get(ev.edge)
		props := s.activePropagators[c.Source]
		s.activePropagators[c.Source] = props[:len(props)-1]
		c.Active = false
	case eventTheoryPropagationCauseAdded:
		s.theoryPropagationCauses = s.theoryPropagationCauses[:len(s.theoryPropagationCauses)-1]
	}
}

// SetBacktrackPoint marks a backtrack point at the STN's current state.
// It is a caller error to call this while a propagation is pending
// (PropagateAll has not yet drained pendingActivations).
func (s *IncStn) SetBacktrackPoint() int {
	if !s.pendingActivations.empty() {
		panic("stn: cannot set a backtrack point with a propagation pending")
	}
	return s.stnTrail.SaveState()
}

// UndoToLastBacktrackPoint undoes every structural change made since
// the most recent SetBacktrackPoint, discarding any not-yet-applied
// pending activations (the invariant enforced by SetBacktrackPoint
// guarantees there were none when the save-point was created, but a
// caller may have queued more since via MarkActive before deciding to
// backtrack instead of propagating).
func (s *IncStn) UndoToLastBacktrackPoint() {
	s.pendingActivations.clear()
	s.stnTrail.RestoreLast(s.undoStnEvent)
}
