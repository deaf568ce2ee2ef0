package fixtures

import (
	"fmt"

	"github.com/katalvlaran/stncore/domain"
	"github.com/katalvlaran/stncore/lit"
	"github.com/katalvlaran/stncore/stn"
)

// Topology builds a fixed-shape STN into s and store, returning the
// timepoints it created in a stable, shape-specific order.
type Topology func(s *stn.IncStn, store *domain.Domains, opts ...Option) ([]lit.VarRef, error)

func newTimepoints(store *domain.Domains, n int, cfg *config, label string) []lit.VarRef {
	vars := make([]lit.VarRef, n)
	for i := 0; i < n; i++ {
		vars[i] = store.NewVar(cfg.lb, cfg.ub, fmt.Sprintf("%s%d", label, i))
	}
	return vars
}

const (
	methodChain   = "Chain"
	methodCycle   = "Cycle"
	methodGrid    = "Grid"
	methodStar    = "Star"
	methodDiamond = "Diamond"

	minChainNodes   = 2
	minCycleNodes   = 3
	minGridDim      = 1
	minStarNodes    = 2
	diamondNumNodes = 4
)

// Chain builds a simple path of n timepoints v0..v(n-1), with a reified
// edge v(i-1) -> v(i) of a fresh weight for each consecutive pair.
func Chain(n int) Topology {
	return func(s *stn.IncStn, store *domain.Domains, opts ...Option) ([]lit.VarRef, error) {
		if n < minChainNodes {
			return nil, fmt.Errorf("%s: n=%d < min=%d: %w", methodChain, n, minChainNodes, ErrTooFewTimepoints)
		}
		cfg := newConfig(opts...)
		vars := newTimepoints(store, n, cfg, "chain")
		for i := 1; i < n; i++ {
			s.AddReifiedEdge(lit.TRUE, vars[i-1], vars[i], cfg.weight(), store)
		}
		return vars, nil
	}
}

// Cycle builds an n-timepoint ring: a Chain plus a closing edge from the
// last timepoint back to the first.
func Cycle(n int) Topology {
	return func(s *stn.IncStn, store *domain.Domains, opts ...Option) ([]lit.VarRef, error) {
		if n < minCycleNodes {
			return nil, fmt.Errorf("%s: n=%d < min=%d: %w", methodCycle, n, minCycleNodes, ErrTooFewTimepoints)
		}
		cfg := newConfig(opts...)
		vars := newTimepoints(store, n, cfg, "cycle")
		for i := 0; i < n; i++ {
			s.AddReifiedEdge(lit.TRUE, vars[i], vars[(i+1)%n], cfg.weight(), store)
		}
		return vars, nil
	}
}

// Grid builds a rows x cols orthogonal grid of timepoints, in row-major
// order, with a reified edge from each cell to its right and bottom
// neighbor (where they exist).
func Grid(rows, cols int) Topology {
	return func(s *stn.IncStn, store *domain.Domains, opts ...Option) ([]lit.VarRef, error) {
		if rows < minGridDim || cols < minGridDim {
			return nil, fmt.Errorf("%s: rows=%d, cols=%d (each must be >= %d): %w",
				methodGrid, rows, cols, minGridDim, ErrTooFewTimepoints)
		}
		cfg := newConfig(opts...)
		vars := newTimepoints(store, rows*cols, cfg, "grid")
		idx := func(r, c int) int { return r*cols + c }
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				u := vars[idx(r, c)]
				if c+1 < cols {
					s.AddReifiedEdge(lit.TRUE, u, vars[idx(r, c+1)], cfg.weight(), store)
				}
				if r+1 < rows {
					s.AddReifiedEdge(lit.TRUE, u, vars[idx(r+1, c)], cfg.weight(), store)
				}
			}
		}
		return vars, nil
	}
}

// Star builds a hub timepoint (index 0) and n-1 leaf timepoints, each
// connected hub -> leaf with a fresh weight.
func Star(n int) Topology {
	return func(s *stn.IncStn, store *domain.Domains, opts ...Option) ([]lit.VarRef, error) {
		if n < minStarNodes {
			return nil, fmt.Errorf("%s: n=%d < min=%d: %w", methodStar, n, minStarNodes, ErrTooFewTimepoints)
		}
		cfg := newConfig(opts...)
		vars := newTimepoints(store, n, cfg, "star")
		hub := vars[0]
		for i := 1; i < n; i++ {
			s.AddReifiedEdge(lit.TRUE, hub, vars[i], cfg.weight(), store)
		}
		return vars, nil
	}
}

// Diamond builds the canonical 4-timepoint two-path shape a -> {b, c} ->
// d, the smallest network exercising Cesta96 relaxation along two
// independent routes to the same target.
func Diamond() Topology {
	return func(s *stn.IncStn, store *domain.Domains, opts ...Option) ([]lit.VarRef, error) {
		cfg := newConfig(opts...)
		vars := newTimepoints(store, diamondNumNodes, cfg, "diamond")
		a, b, c, d := vars[0], vars[1], vars[2], vars[3]
		s.AddReifiedEdge(lit.TRUE, a, b, cfg.weight(), store)
		s.AddReifiedEdge(lit.TRUE, a, c, cfg.weight(), store)
		s.AddReifiedEdge(lit.TRUE, b, d, cfg.weight(), store)
		s.AddReifiedEdge(lit.TRUE, c, d, cfg.weight(), store)
		return vars, nil
	}
}
