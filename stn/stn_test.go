package stn

import (
	"testing"

	"github.com/katalvlaran/stncore/domain"
	"github.com/katalvlaran/stncore/lit"
	"github.com/stretchr/testify/require"
)

func TestBasicPropagationTightensTarget(t *testing.T) {
	store := domain.New()
	s := New(0)
	a := store.NewVar(0, 10, "a")
	b := store.NewVar(0, 10, "b")

	_, err := store.SetUb(a, 3, domain.Decision)
	require.NoError(t, err)

	s.AddReifiedEdge(lit.TRUE, a, b, 5, store)
	require.NoError(t, s.PropagateAll(store))

	require.Equal(t, domain.IntDomain{Lb: 0, Ub: 3}, store.DomainOf(a))
	require.Equal(t, domain.IntDomain{Lb: 0, Ub: 8}, store.DomainOf(b))

	_, err = store.SetUb(a, 1, domain.Decision)
	require.NoError(t, err)
	require.NoError(t, s.PropagateAll(store))
	require.Equal(t, int32(6), store.DomainOf(b).Ub)
}

func TestNegativeSelfLoopIsAlwaysInconsistent(t *testing.T) {
	store := domain.New()
	s := New(0)
	a := store.NewVar(0, 1, "a")

	s.AddReifiedEdge(lit.TRUE, a, a, -1, store)
	err := s.PropagateAll(store)
	require.Error(t, err)

	var contradiction *Contradiction
	require.ErrorAs(t, err, &contradiction)
	require.Nil(t, contradiction.EmptyDomain)
	require.Empty(t, contradiction.Explanation, "the self-loop edge is always active, so it has no enabler to blame")
}

func TestEdgeUnificationAndNegation(t *testing.T) {
	s := New(0)
	a := lit.VarRef(0)
	b := lit.VarRef(1)

	id1, created1 := s.addInactiveConstraint(a, b, 1)
	id2, created2 := s.addInactiveConstraint(a, b, 1)
	require.True(t, created1)
	require.False(t, created2)
	require.Equal(t, id1, id2)

	e := Edge{Source: a, Target: b, Weight: 3}
	notE := e.Negated()
	require.Equal(t, Edge{Source: b, Target: a, Weight: -4}, notE)

	id, _ := s.addInactiveConstraint(e.Source, e.Target, e.Weight)
	nid, _ := s.addInactiveConstraint(notE.Source, notE.Target, notE.Weight)
	require.Equal(t, id.BaseID(), nid.BaseID())
	require.NotEqual(t, id.IsNegated(), nid.IsNegated())
}

// TestOptionalChainDelayPropagation builds a chain v0..v9 where each
// v_i is only present alongside v_i-1, with a minimum delay of 1
// between consecutive timepoints, and checks that the delay chain
// propagates lb(v_i) = i.
func TestOptionalChainDelayPropagation(t *testing.T) {
	store := domain.New()
	s := New(0)

	const n = 10
	vars := make([]lit.VarRef, n)
	for i := 0; i < n; i++ {
		vars[i] = store.NewVar(0, 20, "v")
	}
	for i := 1; i < n; i++ {
		store.OnlyPresentWith(vars[i], vars[i-1])
		// vars[i] - vars[i-1] >= 1, via the backward (LB) view of an
		// edge whose forward (UB) view runs the opposite way.
		s.AddReifiedEdge(lit.TRUE, vars[i], vars[i-1], -1, store)
	}
	require.NoError(t, s.PropagateAll(store))

	for i := 0; i < n; i++ {
		require.Equal(t, int32(i), store.DomainOf(vars[i]).Lb, "v%d", i)
	}
	for i := 1; i < n; i++ {
		require.Equal(t, []lit.VarRef{vars[i-1]}, store.Requires(vars[i]))
	}

	_, err := store.SetUb(vars[5], 4, domain.Decision)
	require.Error(t, err, "lb(v5)=5 already exceeds the newly tightened ub(v5)=4")
	var empty *domain.ErrEmptyDomain
	require.ErrorAs(t, err, &empty)
	require.Equal(t, vars[5], empty.Var)
}

func TestAddOptionalTrueEdgeGatesPerDirection(t *testing.T) {
	store := domain.New()
	s := New(0)
	a := store.NewVar(0, 10, "a")
	b := store.NewVar(0, 10, "b")
	fwdGate := store.NewVar(0, 1, "fwdGate")
	bwdGate := store.NewVar(0, 1, "bwdGate")
	fwdLit := lit.Geq(fwdGate, 1)
	bwdLit := lit.Geq(bwdGate, 1)

	s.AddOptionalTrueEdge(a, b, 0, fwdLit, bwdLit, store)
	require.NoError(t, s.PropagateAll(store))
	require.Equal(t, int32(10), store.DomainOf(b).Ub, "forward direction not yet gated active")

	_, err := store.SetUb(a, 3, domain.Decision)
	require.NoError(t, err)
	require.NoError(t, s.PropagateAll(store))
	require.Equal(t, int32(10), store.DomainOf(b).Ub, "still gated off")

	_, err = store.SetLb(fwdGate, 1, domain.Decision)
	require.NoError(t, err)
	require.NoError(t, s.PropagateAll(store))
	require.Equal(t, int32(3), store.DomainOf(b).Ub, "forward gate now open")
}

// TestTheoryPropagationForcesEnablerFalse mirrors two timepoints each
// shadowed by a twin held at zero delay in both directions, with an
// inactive edge requiring the twins to be ordered the opposite way
// from a decided ordering of the originals. Closing that order on the
// twins would form a negative cycle, so theory propagation must force
// the twin edge's enabler false as soon as the original ordering is
// decided.
func TestTheoryPropagationForcesEnablerFalse(t *testing.T) {
	store := domain.New()
	s := New(0)

	a := store.NewVar(10, 20, "a")
	a1 := store.NewVar(0, 30, "a1")
	b := store.NewVar(10, 20, "b")
	b1 := store.NewVar(0, 30, "b1")

	s.AddReifiedEdge(lit.TRUE, a, a1, 0, store)
	s.AddReifiedEdge(lit.TRUE, a1, a, 0, store)
	s.AddReifiedEdge(lit.TRUE, b, b1, 0, store)
	s.AddReifiedEdge(lit.TRUE, b1, b, 0, store)

	topGate := store.NewVar(0, 1, "topGate")
	bottomGate := store.NewVar(0, 1, "bottomGate")
	topLit := lit.Geq(topGate, 1)
	bottomLit := lit.Geq(bottomGate, 1)

	// top: a strictly before b. bottom: b1 strictly before a1.
	s.AddReifiedEdge(topLit, b, a, -1, store)
	s.AddReifiedEdge(bottomLit, a1, b1, -1, store)

	require.NoError(t, s.PropagateAll(store))
	require.Equal(t, domain.IntDomain{Lb: 10, Ub: 20}, store.DomainOf(a1))
	require.Equal(t, domain.IntDomain{Lb: 10, Ub: 20}, store.DomainOf(b1))

	_, err := store.SetLb(topGate, 1, domain.Decision)
	require.NoError(t, err)
	require.NoError(t, s.PropagateAll(store))

	require.True(t, store.Entails(bottomLit.Not()), "the bottom ordering would close a negative cycle via the zero-delay twins")
}

func TestExplainEmptyDomainViaReifiedEdges(t *testing.T) {
	store := domain.New()
	s := New(0)

	n := store.NewVar(0, 10, "n")
	aVar := store.NewVar(0, 1, "a")
	bVar := store.NewVar(0, 1, "b")
	aLit := lit.Geq(aVar, 1)
	bLit := lit.Geq(bVar, 1)

	// a => n<=4: ZERO<=X => n<=X+4, and ZERO is fixed at 0.
	s.AddReifiedEdge(aLit, lit.ZERO, n, 4, store)
	// b => n>=5: an edge "ZERO - n <= -5" means n >= ZERO-(-5) = 5 once
	// active, via its backward view with lb(ZERO) fixed at 0.
	s.AddReifiedEdge(bLit, n, lit.ZERO, -5, store)
	require.NoError(t, s.PropagateAll(store))

	store.SaveState()
	_, err := store.SetLb(aVar, 1, domain.Decision)
	require.NoError(t, err)
	require.NoError(t, s.PropagateAll(store))

	store.SaveState()
	_, err = store.SetLb(bVar, 1, domain.Decision)
	require.NoError(t, err)
	err = s.PropagateAll(store)
	require.Error(t, err)

	clause, explainErr := store.ExplainEmptyDomain(n, s)
	require.NoError(t, explainErr)
	require.ElementsMatch(t, []lit.Lit{lit.Gt(n, 4), lit.Leq(bVar, 0)}, clause)
}

func TestSetBacktrackPointUndoesEdgeActivation(t *testing.T) {
	store := domain.New()
	s := New(0)
	a := store.NewVar(0, 10, "a")
	b := store.NewVar(0, 10, "b")

	_, err := store.SetUb(a, 1, domain.Decision)
	require.NoError(t, err)
	require.NoError(t, s.PropagateAll(store))

	store.SaveState()
	s.SetBacktrackPoint()
	s.AddReifiedEdge(lit.TRUE, a, b, 5, store)
	require.NoError(t, s.PropagateAll(store))
	require.Equal(t, int32(6), store.DomainOf(b).Ub)

	s.UndoToLastBacktrackPoint()
	store.RestoreLast()
	require.Equal(t, int32(10), store.DomainOf(b).Ub)
}
