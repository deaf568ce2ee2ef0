package fixtures

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/katalvlaran/stncore/domain"
	"github.com/katalvlaran/stncore/stn"
	"github.com/stretchr/testify/require"
)

func fixedWeight(w int32) WeightFn {
	return func(_ *rand.Rand) int32 { return w }
}

func TestChainPropagatesAlongTheLine(t *testing.T) {
	store := domain.New()
	s := stn.New(0)

	vars, err := Chain(5)(s, store, WithWeightFn(fixedWeight(2)))
	require.NoError(t, err)

	_, err = store.SetUb(vars[0], 0, domain.Decision)
	require.NoError(t, err)
	require.NoError(t, s.PropagateAll(store))

	for i, v := range vars {
		require.Equal(t, int32(i*2), store.DomainOf(v).Ub)
	}
}

func TestChainRejectsTooFewTimepoints(t *testing.T) {
	store := domain.New()
	s := stn.New(0)

	_, err := Chain(1)(s, store)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrTooFewTimepoints))
}

func TestCycleClosesWithoutContradiction(t *testing.T) {
	store := domain.New()
	s := stn.New(0)

	vars, err := Cycle(4)(s, store, WithWeightFn(fixedWeight(1)), WithBounds(0, 100))
	require.NoError(t, err)

	_, err = store.SetUb(vars[0], 0, domain.Decision)
	require.NoError(t, err)
	require.NoError(t, s.PropagateAll(store))

	for i, v := range vars {
		require.Equal(t, int32(i), store.DomainOf(v).Ub, "v%d", i)
	}
	// The closing edge (weight sum 4) only loosely bounds v0 via the ring,
	// so it must not re-tighten v0's own ub below its decided value.
	require.Equal(t, int32(0), store.DomainOf(vars[0]).Ub)
}

func TestGridConnectsRightAndBottomNeighbors(t *testing.T) {
	store := domain.New()
	s := stn.New(0)

	vars, err := Grid(2, 3)(s, store, WithWeightFn(fixedWeight(1)))
	require.NoError(t, err)
	require.Len(t, vars, 6)

	_, err = store.SetUb(vars[0], 0, domain.Decision)
	require.NoError(t, err)
	require.NoError(t, s.PropagateAll(store))

	// (0,0) -> (0,1) -> (0,2): two hops right.
	require.Equal(t, int32(2), store.DomainOf(vars[2]).Ub)
	// (0,0) -> (1,0): one hop down.
	require.Equal(t, int32(1), store.DomainOf(vars[3]).Ub)
}

func TestStarHubReachesEveryLeaf(t *testing.T) {
	store := domain.New()
	s := stn.New(0)

	vars, err := Star(4)(s, store, WithWeightFn(fixedWeight(3)))
	require.NoError(t, err)

	_, err = store.SetUb(vars[0], 0, domain.Decision)
	require.NoError(t, err)
	require.NoError(t, s.PropagateAll(store))

	for _, leaf := range vars[1:] {
		require.Equal(t, int32(3), store.DomainOf(leaf).Ub)
	}
}

func TestDiamondBothPathsAgreeOnTheJoin(t *testing.T) {
	store := domain.New()
	s := stn.New(0)

	vars, err := Diamond()(s, store, WithWeightFn(fixedWeight(4)))
	require.NoError(t, err)

	_, err = store.SetUb(vars[0], 0, domain.Decision)
	require.NoError(t, err)
	require.NoError(t, s.PropagateAll(store))

	d := vars[3]
	require.Equal(t, int32(8), store.DomainOf(d).Ub)
}
