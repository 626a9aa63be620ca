package pomdp

// Distribution is a discrete distribution supporting both sampling and
// probability-mass queries. Point-mass and weighted-discrete cases share
// this interface so drivers and solvers can treat them uniformly.
type Distribution[T any] interface {
	Sample(rng RandSource) T
	Prob(value T) float64
}

// Deterministic is a point-mass distribution. Sampling consumes no draws.
type Deterministic[T comparable] struct {
	Value T
}

func (d Deterministic[T]) Sample(_ RandSource) T {
	return d.Value
}

func (d Deterministic[T]) Prob(value T) float64 {
	if value == d.Value {
		return 1
	}
	return 0
}

// Bernoulli yields true with probability P, consuming one draw per sample.
type Bernoulli struct {
	P float64
}

func (b Bernoulli) Sample(rng RandSource) bool {
	return rng.Float64() < b.P
}

func (b Bernoulli) Prob(value bool) float64 {
	if value {
		return b.P
	}
	return 1 - b.P
}

// Categorical is a weighted discrete distribution over Values. Weights need
// not sum to one; Prob normalizes and Sample draws once against the
// cumulative weights. The zero value is unusable; use NewCategorical.
type Categorical[T comparable] struct {
	values  []T
	weights []float64
	total   float64
}

func NewCategorical[T comparable](values []T, weights []float64) (Categorical[T], error) {
	if len(values) == 0 {
		return Categorical[T]{}, errEmptySupport
	}
	if len(values) != len(weights) {
		return Categorical[T]{}, errWeightMismatch
	}
	total := 0.0
	for _, w := range weights {
		if w < 0 {
			return Categorical[T]{}, errNegativeWeight
		}
		total += w
	}
	if total <= 0 {
		return Categorical[T]{}, errZeroWeight
	}
	return Categorical[T]{
		values:  append([]T(nil), values...),
		weights: append([]float64(nil), weights...),
		total:   total,
	}, nil
}

func (c Categorical[T]) Sample(rng RandSource) T {
	u := rng.Float64() * c.total
	acc := 0.0
	for i, w := range c.weights {
		acc += w
		if u < acc {
			return c.values[i]
		}
	}
	// u landed on the closed upper bound through rounding.
	return c.values[len(c.values)-1]
}

func (c Categorical[T]) Prob(value T) float64 {
	mass := 0.0
	for i, v := range c.values {
		if v == value {
			mass += c.weights[i]
		}
	}
	return mass / c.total
}
