// Package sim drives generative models through episodes. The driver owns
// the state between steps; models stay stateless.
package sim

import (
	"context"
	"errors"

	"cradle/internal/policy"
	"cradle/internal/pomdp"
)

type Config struct {
	MaxSteps int
}

// Step records one transition of an episode.
type Step[S, A, O any] struct {
	State  S       `json:"state"`
	Action A       `json:"action"`
	Next   S       `json:"next"`
	Obs    O       `json:"obs"`
	Reward float64 `json:"reward"`
}

type Trajectory[S, A, O any] struct {
	Initial          S
	Steps            []Step[S, A, O]
	TotalReward      float64
	DiscountedReturn float64
}

var errMaxSteps = errors.New("max steps must be > 0")

// Run simulates one episode. The policy sees the most recent observation;
// before the first step that is the zero observation. Each step consults
// ctx so long runs cancel promptly.
func Run[S, A, O any](
	ctx context.Context,
	model pomdp.Model[S, A, O],
	pol policy.Policy[O, A],
	rng pomdp.RandSource,
	cfg Config,
) (Trajectory[S, A, O], error) {
	if cfg.MaxSteps <= 0 {
		return Trajectory[S, A, O]{}, errMaxSteps
	}

	state := model.Initial().Sample(rng)
	trajectory := Trajectory[S, A, O]{
		Initial: state,
		Steps:   make([]Step[S, A, O], 0, cfg.MaxSteps),
	}

	discount := model.Discount()
	weight := 1.0
	var obs O
	for step := 0; step < cfg.MaxSteps; step++ {
		if err := ctx.Err(); err != nil {
			return Trajectory[S, A, O]{}, err
		}

		action := pol.ChooseAction(obs)
		next, nextObs, reward := model.Step(state, action, rng)
		trajectory.Steps = append(trajectory.Steps, Step[S, A, O]{
			State:  state,
			Action: action,
			Next:   next,
			Obs:    nextObs,
			Reward: reward,
		})
		trajectory.TotalReward += reward
		trajectory.DiscountedReturn += weight * reward
		weight *= discount
		state = next
		obs = nextObs
	}
	return trajectory, nil
}
