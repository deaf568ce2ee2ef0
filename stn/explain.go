package stn

import (
	"github.com/katalvlaran/stncore/domain"
	"github.com/katalvlaran/stncore/lit"
)

// Explain implements domain.Explainer, dispatching to the bound- or
// theory-propagation explainer depending on how cause was tagged when
// the inference was made.
func (s *IncStn) Explain(cause domain.Cause, l lit.Lit, store *domain.Domains, out *domain.Explanation) error {
	edge, causeIdx, isTheory := decodeCause(cause.Payload())
	if isTheory {
		// Undo the STN events recorded after this theory propagation, so
		// the path is rebuilt over the network as it stood when the
		// propagation was made.
		for len(s.theoryPropagationCauses) > causeIdx+1 {
			ev, ok := s.stnTrail.PopWithinLevel()
			if !ok {
				break
			}
			s.undoStnEvent(ev)
		}
		return s.explainTheoryPropagation(s.theoryPropagationCauses[causeIdx], store, out)
	}
	return s.explainBoundPropagation(l, edge, store, out)
}

// explainBoundPropagation explains a bound tightened by Cesta96
// relaxation along propagator: the cause is the source bound that, via
// the edge's weight, forced it, plus the edge's enabling literal (if
// any; always-active edges need none).
func (s *IncStn) explainBoundPropagation(event lit.Lit, propagator DirEdge, store *domain.Domains, out *domain.Explanation) error {
	c := s.constraints.get(propagator)
	val := event.BoundValue()
	out.Push(lit.FromParts(c.Source, val.Add(c.Weight.Neg())))
	if l, ok := s.enablingLiteral(propagator, store); ok {
		out.Push(l)
	}
	return nil
}

// explainTheoryPropagation explains an enabler forced false by theory
// propagation: the cause is the conjunction of enabling literals along
// the shortest active path that would otherwise close a negative cycle.
func (s *IncStn) explainTheoryPropagation(cause theoryPropagationCause, store *domain.Domains, out *domain.Explanation) error {
	path, ok := s.shortestPath(cause.source, cause.target, store)
	if !ok {
		panic("stn: no shortest path retrievable for a recorded theory propagation")
	}
	for _, edge := range path {
		if l, ok := s.enablingLiteral(edge, store); ok {
			out.Push(l)
		}
	}
	return nil
}
