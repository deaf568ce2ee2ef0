// Package theorybind adapts integer-atom expressions (Leq, Eq) to a
// propagator that can be bound into a shared domain.Domains and
// explain the bounds it derives, the role a solver-facing theory
// interface plays for a constraint propagator.
package theorybind

import (
	"github.com/katalvlaran/stncore/domain"
	"github.com/katalvlaran/stncore/lit"
)

// BindResult reports how a Theory handled a Bind request.
type BindResult uint8

const (
	// Enforced means the theory translated expr into its own internal
	// representation; l now holds exactly when that representation is
	// satisfied, and no further binding of expr is needed.
	Enforced BindResult = iota
	// Refined means the theory could not enforce expr directly and
	// instead pushed a decomposition onto the PendingQueue for the
	// caller to bind in its place.
	Refined
	// Unsupported means the theory has no translation for expr's kind.
	Unsupported
)

// IAtom is a variable plus a constant shift: Var + Shift.
type IAtom struct {
	Var   lit.VarRef
	Shift int32
}

// Expr is an integer-valued expression a Theory may be asked to bind to
// a literal. The set of implementations is closed to this package.
type Expr interface {
	isExpr()
}

// LeqExpr is the expression A <= B.
type LeqExpr struct {
	A, B IAtom
}

func (LeqExpr) isExpr() {}

// EqExpr is the expression A == B.
type EqExpr struct {
	A, B IAtom
}

func (EqExpr) isExpr() {}

// AndExpr is the conjunction of two expressions, both of which must
// hold together for the conjunction to hold.
type AndExpr struct {
	X, Y Expr
}

func (AndExpr) isExpr() {}

// Binding is a deferred request to bind l to expr, queued by a theory
// that returned Refined rather than enforcing expr itself.
type Binding struct {
	L    lit.Lit
	Expr Expr
}

// PendingQueue collects Bindings a theory could not handle directly.
type PendingQueue struct {
	items []Binding
	head  int
}

// Push enqueues a Binding.
func (q *PendingQueue) Push(b Binding) {
	q.items = append(q.items, b)
}

// PopFront dequeues the oldest pending Binding, if any.
func (q *PendingQueue) PopFront() (Binding, bool) {
	var zero Binding
	if q.head >= len(q.items) {
		return zero, false
	}
	b := q.items[q.head]
	q.items[q.head] = zero
	q.head++
	if q.head > len(q.items)/2 && q.head > 16 {
		q.items = append([]Binding(nil), q.items[q.head:]...)
		q.head = 0
	}
	return b, true
}

// Len reports the number of Bindings still pending.
func (q *PendingQueue) Len() int {
	return len(q.items) - q.head
}

// Theory is a module that translates expressions into constraints on a
// shared domain.Domains, propagates them to a fixpoint, and justifies
// whatever bounds it tightens along the way.
type Theory interface {
	// Identity returns the writer ID this theory stamps on every
	// domain.Cause it produces, so conflict analysis can route an
	// explanation request back to it.
	Identity() domain.WriterID

	// Bind translates expr, known to hold exactly when l does, into
	// the theory's internal representation.
	Bind(l lit.Lit, expr Expr, store *domain.Domains, queue *PendingQueue) (BindResult, error)

	// Propagate runs the theory's propagation to a fixpoint, tightening
	// store and returning an error if it derives a contradiction.
	Propagate(store *domain.Domains) error

	// Explain justifies why payload caused l to hold, appending to out
	// the literals whose conjunction implies l.
	Explain(l lit.Lit, payload uint64, store *domain.Domains, out *[]lit.Lit) error

	// PrintStats reports the theory's internal counters, for diagnostics.
	PrintStats()
}
