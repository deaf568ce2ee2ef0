package stn

import "github.com/katalvlaran/stncore/domain"

// theoryPropagation runs after edge becomes active: it looks for every
// shortest path A -> B that now passes through edge, and for every
// inactive edge B -> A whose weight would close a negative cycle with
// that path, forces the would-be edge's enabler false rather than
// waiting for it to be activated and only then detecting the cycle.
func (s *IncStn) theoryPropagation(edge DirEdge, store *domain.Domains) error {
	c := s.constraints.get(edge)

	successors := s.distancesFrom(c.Target, store)
	predecessors := s.distancesFrom(c.Source.SymmetricBound(), store)

	for pred, predDist := range predecessors {
		for _, potential := range s.constraints.potentialOutEdges(pred) {
			forwardDist, ok := successors[potential.target.SymmetricBound()]
			if !ok {
				continue
			}
			backDist := predDist.Plus(potential.weight)
			totalDist := backDist.Plus(c.Weight).Plus(forwardDist)

			if totalDist.RawValue() >= 0 {
				continue
			}
			if store.Entails(potential.enabler.Not()) {
				continue
			}

			cause := theoryPropagationCause{source: pred.SymmetricBound(), target: potential.target.SymmetricBound()}
			causeIdx := len(s.theoryPropagationCauses)
			s.theoryPropagationCauses = append(s.theoryPropagationCauses, cause)
			s.stnTrail.Push(stnEvent{kind: eventTheoryPropagationCauseAdded})

			notEnabler := potential.enabler.Not()
			domainCause := domain.Inference(s.identity, theoryPropagationCauseIndex(causeIdx))
			_, err := setBound(store, notEnabler.AffectedBound(), notEnabler.BoundValue(), domainCause)
			if err != nil {
				return s.emptyDomainContradiction(err)
			}
		}
	}
	return nil
}
