// Package apsp computes all-pairs shortest paths by brute force, for use
// as a test oracle against the incremental Cesta96/Dijkstra propagation
// in package stn. It is not part of the public API.
package apsp

import (
	"math"

	"github.com/katalvlaran/stncore/lit"
)

// Inf represents "no path" between two timepoints.
const Inf = math.MaxInt32

// Matrix is a dense all-pairs distance table keyed by lit.VarRef: row i,
// column j holds the shortest target-source distance from i to j, or
// Inf if j is unreachable from i.
type Matrix struct {
	n    int
	data []int32
}

// NewMatrix builds an n-node matrix with every off-diagonal entry set to
// Inf and every diagonal entry set to 0.
func NewMatrix(n int) *Matrix {
	data := make([]int32, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			data[i*n+j] = Inf
		}
	}
	return &Matrix{n: n, data: data}
}

// Set records a direct edge target-source<=weight as a candidate
// distance from source to target, keeping the tighter of any existing
// entry and the new one.
func (m *Matrix) Set(source, target lit.VarRef, weight int32) {
	i, j := int(source), int(target)
	if weight < m.data[i*m.n+j] {
		m.data[i*m.n+j] = weight
	}
}

// At returns the current shortest distance from source to target, or
// Inf if none has been found.
func (m *Matrix) At(source, target lit.VarRef) int32 {
	return m.data[int(source)*m.n+int(target)]
}

// Close runs the Floyd-Warshall closure in place, relaxing every
// (i,k,j) triple in the fixed k-i-j order so two equivalent calls on the
// same edge set always produce the same matrix.
func (m *Matrix) Close() {
	n := m.n
	data := m.data
	for k := 0; k < n; k++ {
		baseK := k * n
		for i := 0; i < n; i++ {
			ik := data[i*n+k]
			if ik == Inf {
				continue
			}
			baseI := i * n
			for j := 0; j < n; j++ {
				kj := data[baseK+j]
				if kj == Inf {
					continue
				}
				cand := ik + kj
				if cand < data[baseI+j] {
					data[baseI+j] = cand
				}
			}
		}
	}
}

// HasNegativeCycle reports whether closure discovered a negative cycle,
// visible as a negative entry on the diagonal.
func (m *Matrix) HasNegativeCycle() bool {
	for i := 0; i < m.n; i++ {
		if m.data[i*m.n+i] < 0 {
			return true
		}
	}
	return false
}
