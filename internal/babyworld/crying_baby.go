// Package babyworld implements the crying-baby process: a two-state
// partially observable feeding task. The caregiver never sees hunger
// directly, only a noisy crying signal.
package babyworld

import (
	"errors"
	"fmt"

	"cradle/internal/pomdp"
)

// State, Action and Observation are all booleans on the wire; the named
// wrappers keep state/action/observation arguments from being swapped.
type State bool

const (
	Full   State = false
	Hungry State = true
)

type Action bool

const (
	Ignore Action = false
	Feed   Action = true
)

type Observation bool

const (
	Quiet  Observation = false
	Crying Observation = true
)

var ErrInvalidParameter = errors.New("invalid parameter")

// Params holds the scalar configuration of the process. A Params value is
// read-only once a Model is built from it and may be shared across
// goroutines without synchronization.
type Params struct {
	RFeed          float64 `json:"r_feed"`
	RHungry        float64 `json:"r_hungry"`
	PBecomeHungry  float64 `json:"p_become_hungry"`
	PCryWhenHungry float64 `json:"p_cry_when_hungry"`
	PCryWhenQuiet  float64 `json:"p_cry_when_quiet"`
	Discount       float64 `json:"discount"`
}

// DefaultParams is the canonical crying-baby configuration.
func DefaultParams() Params {
	return Params{
		RFeed:          -5.0,
		RHungry:        -10.0,
		PBecomeHungry:  0.1,
		PCryWhenHungry: 0.8,
		PCryWhenQuiet:  0.1,
		Discount:       0.9,
	}
}

func (p Params) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"p_become_hungry", p.PBecomeHungry},
		{"p_cry_when_hungry", p.PCryWhenHungry},
		{"p_cry_when_quiet", p.PCryWhenQuiet},
		{"discount", p.Discount},
	}
	for _, c := range checks {
		if c.value < 0 || c.value > 1 {
			return fmt.Errorf("%w: %s must be in [0,1], got %g", ErrInvalidParameter, c.name, c.value)
		}
	}
	return nil
}

// Model is the generative crying-baby model. It is stateless: the simulation
// driver owns the state between steps.
type Model struct {
	params Params
}

func New(params Params) (Model, error) {
	if err := params.Validate(); err != nil {
		return Model{}, err
	}
	return Model{params: params}, nil
}

// MustNew panics on invalid parameters. Intended for tests and the
// canonical preset.
func MustNew(params Params) Model {
	m, err := New(params)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Model) Params() Params {
	return m.params
}

func (m Model) Discount() float64 {
	return m.params.Discount
}

// Initial is the canonical starting distribution: the baby begins full,
// with probability one. Sampling consumes no draws.
func (m Model) Initial() pomdp.Distribution[State] {
	return pomdp.Deterministic[State]{Value: Full}
}

// Step advances the process one time step. Feeding always resolves hunger
// and hunger persists until fed, so the transition consumes a draw only
// from the full-and-ignored branch; the observation always consumes exactly
// one draw after the next state is fixed. Reward depends on the pre-step
// state and the action only.
func (m Model) Step(state State, action Action, rng pomdp.RandSource) (State, Observation, float64) {
	var next State
	switch {
	case action == Feed:
		next = Full
	case state == Hungry:
		next = Hungry
	default:
		next = State(rng.Float64() < m.params.PBecomeHungry)
	}

	var obs Observation
	if next == Hungry {
		obs = Observation(rng.Float64() < m.params.PCryWhenHungry)
	} else {
		obs = Observation(rng.Float64() < m.params.PCryWhenQuiet)
	}

	reward := 0.0
	if state == Hungry {
		reward += m.params.RHungry
	}
	if action == Feed {
		reward += m.params.RFeed
	}
	return next, obs, reward
}
