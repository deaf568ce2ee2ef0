// Package fixtures generates STN topologies (chains, cycles, grids, stars,
// diamonds) for tests that exercise stn propagation, playing the role the
// teacher's builder package plays for plain graphs.
package fixtures

import "math/rand"

// WeightFn produces an edge weight given an RNG (nil when the config was
// built without a seed, in which case implementations must return a fixed
// deterministic value).
type WeightFn func(rng *rand.Rand) int32

// DefaultWeightFn returns a constant weight of 1 when rng is nil, giving
// deterministic output when no seed is configured, and otherwise a
// weight drawn from rng in the range 1 to 10.
func DefaultWeightFn(rng *rand.Rand) int32 {
	if rng == nil {
		return 1
	}
	return int32(1 + rng.Intn(10))
}

// Option customizes a topology's timepoint bounds and edge weights.
type Option func(*config)

type config struct {
	rng      *rand.Rand
	weightFn WeightFn
	lb, ub   int32
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		weightFn: DefaultWeightFn,
		lb:       0,
		ub:       1000,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithSeed seeds a deterministic RNG used by the topology's WeightFn.
func WithSeed(seed int64) Option {
	return func(cfg *config) {
		cfg.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand installs an explicit RNG. Panics on nil, matching the rest of
// this package's option constructors.
func WithRand(rng *rand.Rand) Option {
	if rng == nil {
		panic("fixtures: WithRand(nil)")
	}
	return func(cfg *config) {
		cfg.rng = rng
	}
}

// WithWeightFn overrides the edge-weight generator. Panics on nil.
func WithWeightFn(fn WeightFn) Option {
	if fn == nil {
		panic("fixtures: WithWeightFn(nil)")
	}
	return func(cfg *config) {
		cfg.weightFn = fn
	}
}

// WithBounds sets the initial [lb,ub] domain every generated timepoint is
// created with. Panics if lb > ub.
func WithBounds(lb, ub int32) Option {
	if lb > ub {
		panic("fixtures: WithBounds(lb>ub)")
	}
	return func(cfg *config) {
		cfg.lb, cfg.ub = lb, ub
	}
}

func (cfg *config) weight() int32 {
	return cfg.weightFn(cfg.rng)
}
