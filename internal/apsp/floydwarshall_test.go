package apsp

import (
	"testing"

	"github.com/katalvlaran/stncore/lit"
	"github.com/stretchr/testify/require"
)

func TestClosureFindsShortestPath(t *testing.T) {
	m := NewMatrix(4)
	a, b, c, d := lit.VarRef(0), lit.VarRef(1), lit.VarRef(2), lit.VarRef(3)

	m.Set(a, b, 5)
	m.Set(b, c, 3)
	m.Set(c, d, -2)
	m.Set(a, d, 100)

	m.Close()

	require.Equal(t, int32(6), m.At(a, d))
	require.Equal(t, int32(8), m.At(a, c))
	require.False(t, m.HasNegativeCycle())
}

func TestClosureUnreachableStaysInf(t *testing.T) {
	m := NewMatrix(3)
	a, b, c := lit.VarRef(0), lit.VarRef(1), lit.VarRef(2)
	m.Set(a, b, 1)

	m.Close()

	require.Equal(t, int32(Inf), m.At(a, c))
	require.Equal(t, int32(Inf), m.At(b, c))
	require.Equal(t, int32(Inf), m.At(c, a))
}

func TestClosureDetectsNegativeCycle(t *testing.T) {
	m := NewMatrix(3)
	a, b, c := lit.VarRef(0), lit.VarRef(1), lit.VarRef(2)
	m.Set(a, b, 1)
	m.Set(b, c, 1)
	m.Set(c, a, -3)

	m.Close()

	require.True(t, m.HasNegativeCycle())
}

func TestSetKeepsTighterOfDuplicateEdges(t *testing.T) {
	m := NewMatrix(2)
	a, b := lit.VarRef(0), lit.VarRef(1)
	m.Set(a, b, 5)
	m.Set(a, b, 2)
	m.Set(a, b, 9)

	require.Equal(t, int32(2), m.At(a, b))
}
