package theorybind

import (
	"fmt"

	"github.com/katalvlaran/stncore/domain"
	"github.com/katalvlaran/stncore/lit"
	"github.com/katalvlaran/stncore/stn"
)

// StnTheory adapts an *stn.IncStn to Theory, translating Leq/Eq
// int-atom expressions into reified STN edges.
type StnTheory struct {
	net      *stn.IncStn
	identity domain.WriterID

	binds      uint64
	refinals   uint64
	propagates uint64
}

// NewStnTheory wraps net so it can be bound expressions under identity.
func NewStnTheory(identity domain.WriterID, net *stn.IncStn) *StnTheory {
	return &StnTheory{net: net, identity: identity}
}

// Identity returns the writer ID this theory stamps on every cause it
// produces.
func (t *StnTheory) Identity() domain.WriterID {
	return t.identity
}

// Bind translates expr into a reified edge on the wrapped network.
//
// Leq(a, b) becomes the edge a.Var - b.Var <= b.Shift - a.Shift, active
// exactly when l holds, since a.Var+a.Shift <= b.Var+b.Shift is
// equivalent to a.Var - b.Var <= b.Shift - a.Shift.
//
// Eq(a, b) cannot be enforced as a single edge; it decomposes into
// Leq(a, b) AND Leq(b, a) and is handed back to the caller as a single
// Refined Binding for it to bind in turn.
func (t *StnTheory) Bind(l lit.Lit, expr Expr, store *domain.Domains, queue *PendingQueue) (BindResult, error) {
	switch e := expr.(type) {
	case LeqExpr:
		t.binds++
		t.net.AddReifiedEdge(l, e.B.Var, e.A.Var, e.B.Shift-e.A.Shift, store)
		return Enforced, nil
	case EqExpr:
		t.refinals++
		queue.Push(Binding{
			L: l,
			Expr: AndExpr{
				X: LeqExpr{A: e.A, B: e.B},
				Y: LeqExpr{A: e.B, B: e.A},
			},
		})
		return Refined, nil
	default:
		return Unsupported, fmt.Errorf("theorybind: unsupported expression %T", expr)
	}
}

// Propagate runs the wrapped network's Cesta96/Dijkstra propagation to
// a fixpoint.
func (t *StnTheory) Propagate(store *domain.Domains) error {
	t.propagates++
	return t.net.PropagateAll(store)
}

// Explain reconstructs the domain.Cause payload encodes and delegates
// to the wrapped network's own Explainer implementation, since IncStn
// already knows how to distinguish an edge-propagation payload from a
// theory-propagation one.
func (t *StnTheory) Explain(l lit.Lit, payload uint64, store *domain.Domains, out *[]lit.Lit) error {
	var explanation domain.Explanation
	cause := domain.Inference(t.identity, payload)
	if err := t.net.Explain(cause, l, store, &explanation); err != nil {
		return err
	}
	*out = append(*out, explanation.Lits()...)
	return nil
}

// PrintStats reports this adapter's own bind/propagate counters
// alongside the wrapped network's.
func (t *StnTheory) PrintStats() {
	fmt.Printf("theorybind: binds=%d refinals=%d propagates=%d\n", t.binds, t.refinals, t.propagates)
	t.net.PrintStats()
}
