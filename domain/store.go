// Package domain holds the integer-domain store shared by the STN
// propagator and any theory bound to it: a dense table of [lb,ub]
// intervals, the event trail recording every tightening, and the
// conflict-analysis routine that turns an empty domain into a learnt
// clause.
package domain

import (
	"fmt"

	"github.com/katalvlaran/stncore/lit"
	"github.com/katalvlaran/stncore/trail"
)

// IntDomain is the current bounds of one variable.
type IntDomain struct {
	Lb int32
	Ub int32
}

// Empty reports whether the interval is inverted (no value satisfies
// both bounds).
func (d IntDomain) Empty() bool {
	return d.Lb > d.Ub
}

// EventKind distinguishes which bound a VarEvent tightened.
type EventKind uint8

const (
	// NewLB records a lower-bound tightening.
	NewLB EventKind = iota
	// NewUB records an upper-bound tightening.
	NewUB
)

// VarEvent is one trail entry: a bound on Var moved from Prev to New.
type VarEvent struct {
	Var   lit.VarRef
	Kind  EventKind
	Prev  int32
	New   int32
	Cause Cause
}

// ErrEmptyDomain reports that tightening Var's bound would invert its
// interval.
type ErrEmptyDomain struct {
	Var lit.VarRef
}

func (e *ErrEmptyDomain) Error() string {
	return fmt.Sprintf("domain: variable %s has an empty domain", e.Var)
}

// presence is the three-valued lattice element attached to an optional
// variable: Unknown until its presence literal is decided one way or
// the other.
type presence struct {
	lit      lit.Lit
	hasLit   bool
	requires []lit.VarRef
}

// Domains is the dense store of variable bounds, the trail of events
// that produced them, and the presence lattice for optional variables.
//
// Domains is not safe for concurrent use: the STN and any bound theory
// share one writer, cooperatively, on a single goroutine.
type Domains struct {
	labels      []string
	domains     []IntDomain
	presences   []presence
	trail       *trail.ObsTrail[VarEvent]
	exprBinding map[uint64]lit.Lit
}

// New creates a store pre-populated with lit.ZERO, the reserved [0,0]
// variable that backs lit.TRUE/lit.FALSE.
func New() *Domains {
	d := &Domains{
		trail:       trail.New[VarEvent](),
		exprBinding: make(map[uint64]lit.Lit),
	}
	zero := d.NewVar(0, 0, "ZERO")
	if zero != lit.ZERO {
		panic("domain: ZERO variable did not land at VarRef 0")
	}
	return d
}

// NewVar allocates a variable with initial bounds [lb, ub] and returns
// its reference. label is used only for diagnostics.
func (d *Domains) NewVar(lb, ub int32, label string) lit.VarRef {
	id := lit.VarRef(len(d.domains))
	d.domains = append(d.domains, IntDomain{Lb: lb, Ub: ub})
	d.labels = append(d.labels, label)
	d.presences = append(d.presences, presence{})
	return id
}

// Label returns the diagnostic label a variable was created with.
func (d *Domains) Label(v lit.VarRef) string {
	return d.labels[v]
}

// DomainOf returns the current bounds of v.
func (d *Domains) DomainOf(v lit.VarRef) IntDomain {
	return d.domains[v]
}

// Optional returns the presence literal of v, if any was attached with
// SetOptional. ok is false for always-present variables.
func (d *Domains) Optional(v lit.VarRef) (lit.Lit, bool) {
	p := d.presences[v]
	return p.lit, p.hasLit
}

// SetOptional marks v as present only when presenceLit holds.
func (d *Domains) SetOptional(v lit.VarRef, presenceLit lit.Lit) {
	d.presences[v] = presence{lit: presenceLit, hasLit: true}
}

// OnlyPresentWith records that v can only be present when u is: every
// edge or constraint touching v must be guarded by u's presence too.
// This is a partial order over variables; cycles are a caller bug and
// are not checked here.
func (d *Domains) OnlyPresentWith(v, u lit.VarRef) {
	p := &d.presences[v]
	p.requires = append(p.requires, u)
}

// Requires returns the variables v can only be present alongside.
func (d *Domains) Requires(v lit.VarRef) []lit.VarRef {
	return d.presences[v].requires
}

// SetLb tightens v's lower bound to lb if it is currently looser,
// recording the event under cause. tightened is false if lb was not an
// improvement; err is *ErrEmptyDomain if the tightening would invert
// the domain (the bound is still applied so the caller can explain the
// conflict from the resulting state).
func (d *Domains) SetLb(v lit.VarRef, lb int32, cause Cause) (tightened bool, err error) {
	dom := &d.domains[v]
	if dom.Lb >= lb {
		return false, nil
	}
	prev := dom.Lb
	dom.Lb = lb
	d.trail.Push(VarEvent{Var: v, Kind: NewLB, Prev: prev, New: lb, Cause: cause})
	if dom.Empty() {
		return true, &ErrEmptyDomain{Var: v}
	}
	return true, nil
}

// SetUb tightens v's upper bound to ub if it is currently looser. See
// SetLb for the tightened/err contract.
func (d *Domains) SetUb(v lit.VarRef, ub int32, cause Cause) (tightened bool, err error) {
	dom := &d.domains[v]
	if dom.Ub <= ub {
		return false, nil
	}
	prev := dom.Ub
	dom.Ub = ub
	d.trail.Push(VarEvent{Var: v, Kind: NewUB, Prev: prev, New: ub, Cause: cause})
	if dom.Empty() {
		return true, &ErrEmptyDomain{Var: v}
	}
	return true, nil
}

// Entails reports whether l currently holds given the variable's
// bounds, in O(1).
func (d *Domains) Entails(l lit.Lit) bool {
	v, rel, val := l.Unpack()
	dom := d.domains[v]
	if rel == lit.RelLeq {
		return dom.Ub <= val
	}
	return dom.Lb > val
}

// eventMakesTrue reports whether ev is the event that made l true, i.e.
// ev tightened the bound l constrains to at least l's threshold.
func eventMakesTrue(ev VarEvent, l lit.Lit) bool {
	v, rel, val := l.Unpack()
	if ev.Var != v {
		return false
	}
	if rel == lit.RelLeq {
		return ev.Kind == NewUB && ev.New <= val
	}
	return ev.Kind == NewLB && ev.New > val
}

// ImplyingEvent finds the trail location of the event that made l true,
// if any. No event is found when l holds in the variable's initial
// domain (it was never tightened into truth).
func (d *Domains) ImplyingEvent(l lit.Lit) (trail.TrailLoc, bool) {
	te, ok := d.trail.LastEventMatching(
		func(ev VarEvent) bool { return eventMakesTrue(ev, l) },
		func(decisionLevel, eventIndex int) bool { return true },
	)
	if !ok {
		var zero trail.TrailLoc
		return zero, false
	}
	return te.Loc, true
}

func (d *Domains) undo(ev VarEvent) {
	dom := &d.domains[ev.Var]
	switch ev.Kind {
	case NewLB:
		dom.Lb = ev.Prev
	case NewUB:
		dom.Ub = ev.Prev
	}
}

// SaveState marks a backtrack point and returns its 0-based index, which
// is one less than CurrentDecisionLevel afterwards.
func (d *Domains) SaveState() int {
	return d.trail.SaveState()
}

// RestoreLast undoes every bound change made since the most recent
// SaveState.
func (d *Domains) RestoreLast() {
	d.trail.RestoreLast(d.undo)
}

// CurrentDecisionLevel returns the number of active save-points.
func (d *Domains) CurrentDecisionLevel() int {
	return d.trail.CurrentDecisionLevel()
}

// Trail exposes the underlying event log, e.g. so a cursor can be
// attached to it from another package.
func (d *Domains) Trail() *trail.ObsTrail[VarEvent] {
	return d.trail
}

// InternedExpr returns the literal previously bound to handle, if any.
func (d *Domains) InternedExpr(handle uint64) (lit.Lit, bool) {
	l, ok := d.exprBinding[handle]
	return l, ok
}

// InternExprWith returns the literal already bound to handle, or calls
// makeLit to create and bind one.
func (d *Domains) InternExprWith(handle uint64, makeLit func() lit.Lit) lit.Lit {
	if l, ok := d.exprBinding[handle]; ok {
		return l
	}
	l := makeLit()
	d.exprBinding[handle] = l
	return l
}
