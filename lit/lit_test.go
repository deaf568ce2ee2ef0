package lit

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLitRoundtrip(t *testing.T) {
	cases := []struct {
		rel Relation
		val int32
	}{
		{RelLeq, 0}, {RelLeq, 5}, {RelLeq, -5},
		{RelGt, 0}, {RelGt, 5}, {RelGt, -5},
	}
	a := VarRef(3)
	for _, c := range cases {
		l := New(a, c.rel, c.val)
		gotVar, gotRel, gotVal := l.Unpack()
		require.Equal(t, a, gotVar)
		require.Equal(t, c.rel, gotRel)
		require.Equal(t, c.val, gotVal)
		require.Equal(t, l, l.Not().Not())
	}
}

func TestEntailment(t *testing.T) {
	a := VarRef(0)
	b := VarRef(1)

	require.True(t, Leq(a, 0).Entails(Leq(a, 0)))
	require.True(t, Leq(a, 0).Entails(Leq(a, 1)))
	require.False(t, Leq(a, 0).Entails(Leq(a, -1)))

	require.False(t, Leq(a, 0).Entails(Leq(b, 0)))
	require.False(t, Leq(a, 0).Entails(Leq(b, 1)))
	require.False(t, Leq(a, 0).Entails(Leq(b, -1)))

	require.True(t, Geq(a, 0).Entails(Geq(a, 0)))
	require.False(t, Geq(a, 0).Entails(Geq(a, 1)))
	require.True(t, Geq(a, 0).Entails(Geq(a, -1)))

	require.False(t, Geq(a, 0).Entails(Geq(b, 0)))
}

func TestEntailmentReflexiveTransitive(t *testing.T) {
	a := VarRef(4)
	lits := []Lit{Leq(a, 1), Leq(a, 2), Leq(a, 3)}
	for _, l := range lits {
		require.True(t, l.Entails(l))
	}
	require.True(t, lits[0].Entails(lits[1]))
	require.True(t, lits[1].Entails(lits[2]))
	require.True(t, lits[0].Entails(lits[2]))
}

func TestOrderGroupsByVariableThenSide(t *testing.T) {
	x := VarRef(1)
	y := VarRef(2)
	literals := []Lit{Geq(y, 4), Geq(x, 1), Leq(x, 3), Leq(x, 4), Leq(x, 6), Geq(x, 2)}
	sort.Slice(literals, func(i, j int) bool { return literals[i].Less(literals[j]) })

	want := []Lit{Geq(x, 2), Geq(x, 1), Leq(x, 3), Leq(x, 4), Leq(x, 6), Geq(y, 4)}
	require.Equal(t, want, literals)

	// Within one VarBound's run, each literal entails its right neighbor.
	for i := 0; i+1 < len(want); i++ {
		if want[i].AffectedBound() != want[i+1].AffectedBound() {
			continue
		}
		require.True(t, want[i].Entails(want[i+1]))
	}
}

func TestTrueFalse(t *testing.T) {
	require.Equal(t, TRUE, FALSE.Not())
	require.True(t, TRUE.Entails(TRUE))
	require.False(t, TRUE.Entails(FALSE))
	require.Equal(t, TRUE, FromBool(true))
	require.Equal(t, FALSE, FromBool(false))
}

func TestSymmetricBoundFlipsSide(t *testing.T) {
	v := VarRef(7)
	require.Equal(t, UB(v), LB(v).SymmetricBound())
	require.Equal(t, LB(v), UB(v).SymmetricBound())
}
