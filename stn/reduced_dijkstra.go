package stn

import (
	"container/heap"

	"github.com/katalvlaran/stncore/domain"
	"github.com/katalvlaran/stncore/lit"
)

// distHeapItem is one entry in the reduced-distance priority queue:
// the smallest reduced distance pops first.
type distHeapItem struct {
	reducedDist lit.BoundValueAdd
	node        lit.VarBound
	inEdge      DirEdge
	hasInEdge   bool
}

type distHeap []distHeapItem

func (h distHeap) Len() int            { return len(h) }
func (h distHeap) Less(i, j int) bool  { return h[i].reducedDist < h[j].reducedDist }
func (h distHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *distHeap) Push(x interface{}) { *h = append(*h, x.(distHeapItem)) }
func (h *distHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// distancesFrom computes one-to-all shortest paths over the active
// propagator graph using Dijkstra's algorithm on reduced costs.
//
// The shortest paths are in the forward graph when origin is a
// variable's upper bound, or in the backward graph when origin is a
// lower bound; both directions are represented uniformly as edges
// between VarBounds, so one search serves both.
//
// Given the current value(vb) of every VarBound, a path's *reduced
// distance* is dist - value(target) + value(source). This is always
// non-negative when the STN is consistent and fully propagated
// (val(target) <= val(source) + weight for every active edge, by
// definition of propagation to a fixpoint), which is what lets an
// algorithm that requires non-negative weights run over a network
// whose raw weights may be negative.
func (s *IncStn) distancesFrom(origin lit.VarBound, store *domain.Domains) map[lit.VarBound]lit.BoundValueAdd {
	originBound := boundValueOf(store, origin)
	distances := make(map[lit.VarBound]lit.BoundValueAdd)

	var queue distHeap
	heap.Push(&queue, distHeapItem{reducedDist: lit.ZeroAdd, node: origin})

	for queue.Len() > 0 {
		curr := heap.Pop(&queue).(distHeapItem)
		if _, seen := distances[curr.node]; seen {
			continue
		}
		currBound := boundValueOf(store, curr.node)
		trueDistance := curr.reducedDist.Plus(currBound.Sub(originBound))
		distances[curr.node] = trueDistance

		for _, p := range s.activePropagators[curr.node] {
			if _, seen := distances[p.Target]; seen {
				continue
			}
			targetBound := boundValueOf(store, p.Target)
			reducedCost := p.Weight.Plus(currBound.Sub(targetBound))
			reducedDist := curr.reducedDist.Plus(reducedCost)
			heap.Push(&queue, distHeapItem{reducedDist: reducedDist, node: p.Target})
		}
	}
	return distances
}

// ForwardDist returns, for every variable reachable via active upper-
// bound edges from var, the minimal delay from var to it.
func (s *IncStn) ForwardDist(v lit.VarRef, store *domain.Domains) map[lit.VarRef]int32 {
	dists := s.distancesFrom(lit.UB(v), store)
	out := make(map[lit.VarRef]int32, len(dists))
	for vb, d := range dists {
		out[vb.Variable()] = d.AsUBAdd()
	}
	return out
}

// BackwardDist returns, for every variable reachable via active lower-
// bound edges from var, the minimal delay from var to it.
func (s *IncStn) BackwardDist(v lit.VarRef, store *domain.Domains) map[lit.VarRef]int32 {
	dists := s.distancesFrom(lit.LB(v), store)
	out := make(map[lit.VarRef]int32, len(dists))
	for vb, d := range dists {
		out[vb.Variable()] = d.AsLBAdd()
	}
	return out
}

// shortestPath finds the shortest path of truly-active edges from
// origin to target, returned as the list of DirEdges traversed (in no
// particular order). Returns false if no such path exists.
func (s *IncStn) shortestPath(origin, target lit.VarBound, store *domain.Domains) ([]DirEdge, bool) {
	if origin == target {
		return nil, true
	}
	predecessors := make(map[lit.VarBound]DirEdge)

	var queue distHeap
	heap.Push(&queue, distHeapItem{reducedDist: lit.OnUB(0), node: origin})

	for {
		if queue.Len() == 0 {
			return nil, false
		}
		curr := heap.Pop(&queue).(distHeapItem)
		if _, seen := predecessors[curr.node]; seen {
			continue
		}
		currBound := boundValueOf(store, curr.node)
		if curr.hasInEdge {
			predecessors[curr.node] = curr.inEdge
		}
		if curr.node == target {
			break
		}
		for _, p := range s.activePropagators[curr.node] {
			if !s.isTrulyActive(p.ID, store) {
				// The edge may be marked active from a propagation the
				// model has since partially unwound (e.g. mid-
				// explanation); treat it as absent rather than trust a
				// stale Active flag.
				continue
			}
			if _, seen := predecessors[p.Target]; seen {
				continue
			}
			targetBound := boundValueOf(store, p.Target)
			reducedCost := p.Weight.Plus(currBound.Sub(targetBound))
			reducedDist := curr.reducedDist.Plus(reducedCost)
			heap.Push(&queue, distHeapItem{reducedDist: reducedDist, node: p.Target, inEdge: p.ID, hasInEdge: true})
		}
	}

	var path []DirEdge
	edge, ok := predecessors[target]
	for ok {
		path = append(path, edge)
		edge, ok = predecessors[s.constraints.get(edge).Source]
	}
	return path, true
}
