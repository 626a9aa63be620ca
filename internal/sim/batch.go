package sim

import (
	"context"
	"errors"
	"math/rand"
	"sync"

	"cradle/internal/policy"
	"cradle/internal/pomdp"
)

type BatchConfig struct {
	Episodes int
	MaxSteps int
	Seed     int64
	Workers  int
}

// PolicyFactory builds a fresh policy for one episode. Stateful policies
// must draw from the supplied rng only, so episodes never share generator
// state across workers.
type PolicyFactory[O, A any] func(episode int, rng pomdp.RandSource) (policy.Policy[O, A], error)

var errEpisodes = errors.New("episodes must be > 0")

// RunBatch simulates Episodes independent episodes over a worker pool.
// Episode k draws from rand.NewSource(Seed+k), so results are identical
// for any worker count and two batches with the same seed match exactly.
func RunBatch[S, A, O any](
	ctx context.Context,
	model pomdp.Model[S, A, O],
	factory PolicyFactory[O, A],
	cfg BatchConfig,
) ([]Trajectory[S, A, O], error) {
	if cfg.Episodes <= 0 {
		return nil, errEpisodes
	}
	if cfg.MaxSteps <= 0 {
		return nil, errMaxSteps
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	type job struct {
		idx int
	}
	type result struct {
		idx        int
		trajectory Trajectory[S, A, O]
		err        error
	}

	jobs := make(chan job)
	results := make(chan result, cfg.Episodes)

	workerCount := cfg.Workers
	if workerCount > cfg.Episodes {
		workerCount = cfg.Episodes
	}

	var wg sync.WaitGroup
	wg.Add(workerCount)
	for w := 0; w < workerCount; w++ {
		go func() {
			defer wg.Done()
			for j := range jobs {
				if err := ctx.Err(); err != nil {
					results <- result{idx: j.idx, err: err}
					continue
				}

				rng := rand.New(rand.NewSource(cfg.Seed + int64(j.idx)))
				pol, err := factory(j.idx, rng)
				if err != nil {
					results <- result{idx: j.idx, err: err}
					continue
				}
				trajectory, err := Run(ctx, model, pol, rng, Config{MaxSteps: cfg.MaxSteps})
				if err != nil {
					results <- result{idx: j.idx, err: err}
					continue
				}
				results <- result{idx: j.idx, trajectory: trajectory}
			}
		}()
	}

	for i := 0; i < cfg.Episodes; i++ {
		jobs <- job{idx: i}
	}
	close(jobs)

	wg.Wait()
	close(results)

	trajectories := make([]Trajectory[S, A, O], cfg.Episodes)
	for res := range results {
		if res.err != nil {
			return nil, res.err
		}
		trajectories[res.idx] = res.trajectory
	}
	return trajectories, nil
}
