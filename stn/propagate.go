package stn

import (
	"fmt"

	"github.com/katalvlaran/stncore/domain"
	"github.com/katalvlaran/stncore/lit"
)

// Contradiction is returned when propagation detects an inconsistency:
// a negative cycle (via a newly-activated edge) or an empty domain (a
// bound set by edge or theory propagation that inverts some variable's
// interval). Explanation holds the literals whose
// conjunction enabled the offending edges; at least one must be made
// false to restore consistency.
type Contradiction struct {
	Explanation []lit.Lit
	// EmptyDomain is set instead of Explanation when the contradiction
	// was an empty domain rather than a negative cycle.
	EmptyDomain error
}

func (c *Contradiction) Error() string {
	if c.EmptyDomain != nil {
		return c.EmptyDomain.Error()
	}
	return fmt.Sprintf("stn: inconsistent network (%d culprit literals)", len(c.Explanation))
}

// buildContradiction turns a set of active culprit edges into the
// literals that enabled them. Always-active edges contribute nothing
// (there is no enabler to blame).
func (s *IncStn) buildContradiction(culprits []DirEdge, store *domain.Domains) *Contradiction {
	expl := make([]lit.Lit, 0, len(culprits))
	for _, d := range culprits {
		c := s.constraints.get(d)
		if c.AlwaysActive {
			continue
		}
		l, ok := s.enablingLiteral(d, store)
		if !ok {
			panic("stn: active edge has no entailed enabler")
		}
		expl = append(expl, l)
	}
	return &Contradiction{Explanation: expl}
}

func literalFromEvent(ev domain.VarEvent) lit.Lit {
	if ev.Kind == domain.NewUB {
		return lit.Leq(ev.Var, ev.New)
	}
	return lit.Geq(ev.Var, ev.New)
}

// PropagateAll propagates every edge activation and bound change queued
// since the last call, to a fixpoint. It alternates between draining
// externally-made bound changes (applying their consequences to the
// STN) and draining pending edge activations (which may themselves
// trigger further bound changes), stopping only once both queues are
// empty.
func (s *IncStn) PropagateAll(store *domain.Domains) error {
	for s.modelEvents.NumPending(store.Trail()) > 0 || !s.pendingActivations.empty() {
		for {
			ev, ok := s.modelEvents.Pop(store.Trail())
			if !ok {
				break
			}
			l := literalFromEvent(ev)
			for _, d := range s.constraints.watches[l] {
				s.pendingActivations.pushBack(d)
			}
			if !ev.Cause.IsDecision() && ev.Cause.Writer() == s.identity {
				// We generated this event ourselves; its consequences
				// were already applied when we made it.
				continue
			}
			if err := s.propagateBoundChange(l, store); err != nil {
				return err
			}
		}

		for {
			d, ok := s.pendingActivations.popFront()
			if !ok {
				break
			}
			c := s.constraints.get(d)
			if c.Active {
				continue
			}
			c.Active = true
			if c.Source == c.Target {
				// Self loop: trivial to resolve without the general
				// propagation loop.
				if c.Weight.IsTightening() {
					return s.buildContradiction([]DirEdge{d}, store)
				}
				continue
			}
			s.activePropagators[c.Source] = append(s.activePropagators[c.Source], Propagator{Target: c.Target, Weight: c.Weight, ID: d})
			s.stnTrail.Push(stnEvent{kind: eventEdgeActivated, edge: d})
			if err := s.propagateNewEdge(d, store); err != nil {
				return err
			}
			if err := s.theoryPropagation(d, store); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *IncStn) propagateBoundChange(l lit.Lit, store *domain.Domains) error {
	if !s.hasEdges(l.Variable()) {
		return nil
	}
	return s.runPropagationLoop(l.AffectedBound(), store, false)
}

// propagateNewEdge implements the Cesta96 incremental step: propagate a
// newly-inserted edge in an otherwise consistent, fully-propagated STN.
func (s *IncStn) propagateNewEdge(newEdge DirEdge, store *domain.Domains) error {
	c := s.constraints.get(newEdge)
	cause := domain.Inference(s.identity, edgePropagationCause(newEdge))
	sourceBound := boundValueOf(store, c.Source)
	tightened, err := setBound(store, c.Target, sourceBound.Add(c.Weight), cause)
	if err != nil {
		return s.emptyDomainContradiction(err)
	}
	if tightened {
		return s.runPropagationLoop(c.Target, store, true)
	}
	return nil
}

func (s *IncStn) emptyDomainContradiction(err error) error {
	return &Contradiction{EmptyDomain: err}
}

func (s *IncStn) cleanUpPropagationState() {
	for _, vb := range s.internalQueue.items[s.internalQueue.head:] {
		s.pendingUpdates.Remove(vb)
	}
	s.internalQueue.clear()
}

// runPropagationLoop runs a single-source shortest-path relaxation from
// original, Bellman-Ford style over the dense active-propagator graph
// restricted to a queue of pending sources. When cycleOnUpdate is true
// (propagating a newly added edge), a relaxation that returns to
// original is a negative cycle and the propagation fails immediately.
func (s *IncStn) runPropagationLoop(original lit.VarBound, store *domain.Domains, cycleOnUpdate bool) error {
	s.cleanUpPropagationState()
	s.stats.numPropagations++

	s.internalQueue.pushBack(original)
	s.pendingUpdates.Insert(original)

	for {
		source, ok := s.internalQueue.popFront()
		if !ok {
			break
		}
		if !s.pendingUpdates.Contains(source) {
			continue
		}
		s.pendingUpdates.Remove(source)
		sourceBound := boundValueOf(store, source)

		for _, p := range s.activePropagators[source] {
			cause := domain.Inference(s.identity, edgePropagationCause(p.ID))
			candidate := sourceBound.Add(p.Weight)
			tightened, err := setBound(store, p.Target, candidate, cause)
			if err != nil {
				return s.emptyDomainContradiction(err)
			}
			if tightened {
				s.stats.distanceUpdates++
				if cycleOnUpdate && p.Target == original {
					return s.extractCycle(p.Target, store)
				}
				s.internalQueue.pushBack(p.Target)
				s.pendingUpdates.Insert(p.Target)
			}
		}
	}
	return nil
}

// extractCycle walks backward from vb along the chain of implying
// events until it returns to vb, collecting the edges that form the
// negative cycle just closed.
func (s *IncStn) extractCycle(vb lit.VarBound, store *domain.Domains) error {
	var culprits []DirEdge
	curr := vb
	for {
		val := boundValueOf(store, curr)
		l := lit.FromParts(curr, val)
		loc, ok := store.ImplyingEvent(l)
		if !ok {
			panic("stn: negative cycle edge has no implying event")
		}
		ev := store.Trail().Events()[loc.EventIndex]
		edge, _, isTheory := decodeCause(ev.Cause.Payload())
		if isTheory {
			panic("stn: negative cycle traced through a theory propagation")
		}
		culprits = append(culprits, edge)
		curr = s.constraints.get(edge).Source
		if curr == vb {
			break
		}
	}
	return s.buildContradiction(culprits, store)
}
