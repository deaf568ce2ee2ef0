package domain

import (
	"container/heap"
	"math"

	"github.com/katalvlaran/stncore/lit"
	"github.com/katalvlaran/stncore/trail"
)

// Explanation is working memory an Explainer fills in with the
// literals whose conjunction implies the literal it was asked to
// justify. Reused across resolution steps to avoid reallocating.
type Explanation struct {
	lits []lit.Lit
}

// Push adds a literal to the explanation.
func (e *Explanation) Push(l lit.Lit) {
	e.lits = append(e.lits, l)
}

func (e *Explanation) drain() []lit.Lit {
	out := e.lits
	e.lits = nil
	return out
}

// Lits returns the literals pushed so far, without clearing them. For
// use by callers outside this package that drive an Explainer directly
// (e.g. a theory adapter answering its own Explain obligation).
func (e *Explanation) Lits() []lit.Lit {
	return e.lits
}

// Explainer justifies an inference: given the cause recorded for l and
// the store as it stood just before l was undone, it must push literals
// whose conjunction entails l.
type Explainer interface {
	Explain(cause Cause, l lit.Lit, store *Domains, out *Explanation) error
}

type inQueueLit struct {
	loc trail.TrailLoc
	l   lit.Lit
}

// litHeap is a max-heap ordered by trail location: the latest-falsified
// literal pops first, matching the 1-UIP resolution order.
type litHeap []inQueueLit

func (h litHeap) Len() int            { return len(h) }
func (h litHeap) Less(i, j int) bool  { return h[j].loc.Less(h[i].loc) }
func (h litHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *litHeap) Push(x interface{}) { *h = append(*h, x.(inQueueLit)) }
func (h *litHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// ExplainEmptyDomain performs 1-UIP resolution over the trail to turn an
// empty domain on v into a learnt clause: a set of literals, at least
// one of which must be false, that together with the propagators
// already applied explains why v's interval collapsed.
//
// It seeds resolution with the two literals bracketing the empty
// interval, then repeatedly resolves the latest-falsified literal at
// the current decision level against whatever explains it, undoing the
// trail as it goes, until only literals from earlier decision levels
// remain (the 1-UIP point) or a search decision is reached.
func (d *Domains) ExplainEmptyDomain(v lit.VarRef, explainer Explainer) ([]lit.Lit, error) {
	var queue litHeap
	var result []lit.Lit

	var explanation Explanation
	dom := d.domains[v]
	if dom.Lb > math.MinInt32 {
		explanation.Push(lit.Gt(v, dom.Lb-1))
	}
	if dom.Ub < math.MaxInt32 {
		explanation.Push(lit.Leq(v, dom.Ub))
	}

	decisionLevel := d.CurrentDecisionLevel()

	for {
		for _, l := range explanation.drain() {
			loc, ok := d.ImplyingEvent(l)
			if !ok {
				// Holds in the initial domain; nothing to explain.
				continue
			}
			if loc.DecisionLevel == decisionLevel {
				heap.Push(&queue, inQueueLit{loc: loc, l: l})
			} else {
				result = append(result, l.Not())
			}
		}

		if queue.Len() == 0 {
			// Every literal left comes from an earlier decision level.
			return result, nil
		}
		top := heap.Pop(&queue).(inQueueLit)

		var cause Cause
		for d.trail.Len() > top.loc.EventIndex {
			ev, _ := d.trail.PopWithinLevel()
			d.undo(ev)
			cause = ev.Cause
		}

		if cause.IsDecision() {
			result = append(result, top.l.Not())
			return result, nil
		}
		if err := explainer.Explain(cause, top.l, d, &explanation); err != nil {
			return nil, err
		}
	}
}
