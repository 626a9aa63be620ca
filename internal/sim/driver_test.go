package sim

import (
	"context"
	"math/rand"
	"testing"

	"cradle/internal/babyworld"
	"cradle/internal/policy"
)

func TestRunTenStepAlwaysFeed(t *testing.T) {
	model := babyworld.MustNew(babyworld.DefaultParams())
	rng := rand.New(rand.NewSource(1))

	trajectory, err := Run(context.Background(), model, policy.AlwaysFeed{}, rng, Config{MaxSteps: 10})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if trajectory.Initial != babyworld.Full {
		t.Fatalf("initial state = %v, want Full", trajectory.Initial)
	}
	if len(trajectory.Steps) != 10 {
		t.Fatalf("expected 10 steps, got %d", len(trajectory.Steps))
	}
	for i, step := range trajectory.Steps {
		if step.State != babyworld.Full {
			t.Fatalf("step %d: pre-feed state = %v, want Full", i, step.State)
		}
		if step.Action != babyworld.Feed {
			t.Fatalf("step %d: action = %v, want Feed", i, step.Action)
		}
		if step.Next != babyworld.Full {
			t.Fatalf("step %d: next state = %v, want Full", i, step.Next)
		}
		if step.Reward != -5.0 {
			t.Fatalf("step %d: reward = %f, want -5.0", i, step.Reward)
		}
	}
	if trajectory.TotalReward != -50.0 {
		t.Fatalf("total reward = %f, want -50.0", trajectory.TotalReward)
	}

	// Geometric series: -5 * sum(0.9^k, k=0..9).
	want := 0.0
	weight := 1.0
	for i := 0; i < 10; i++ {
		want += weight * -5.0
		weight *= 0.9
	}
	if diff := trajectory.DiscountedReturn - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("discounted return = %f, want %f", trajectory.DiscountedReturn, want)
	}
}

func TestRunNeverFeedAccumulatesHungerPenalty(t *testing.T) {
	// PBecomeHungry = 1 forces hunger on the first ignored step; hunger
	// then persists, so every later step pays the full penalty.
	params := babyworld.DefaultParams()
	params.PBecomeHungry = 1.0
	model := babyworld.MustNew(params)
	rng := rand.New(rand.NewSource(2))

	trajectory, err := Run(context.Background(), model, policy.NeverFeed{}, rng, Config{MaxSteps: 5})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if trajectory.Steps[0].Reward != 0 {
		t.Fatalf("step 0 reward = %f, want 0", trajectory.Steps[0].Reward)
	}
	for i := 1; i < 5; i++ {
		if trajectory.Steps[i].Reward != -10.0 {
			t.Fatalf("step %d reward = %f, want -10.0", i, trajectory.Steps[i].Reward)
		}
	}
}

func TestRunFirstObservationIsQuiet(t *testing.T) {
	model := babyworld.MustNew(babyworld.DefaultParams())
	rng := rand.New(rand.NewSource(3))

	trajectory, err := Run(context.Background(), model, policy.FeedWhenCrying{}, rng, Config{MaxSteps: 1})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	// Feed-when-crying sees the zero observation before any step, so the
	// first action is always Ignore.
	if trajectory.Steps[0].Action != babyworld.Ignore {
		t.Fatalf("first action = %v, want Ignore", trajectory.Steps[0].Action)
	}
}

func TestRunIsReproducibleFromSeed(t *testing.T) {
	model := babyworld.MustNew(babyworld.DefaultParams())

	runOnce := func() Trajectory[babyworld.State, babyworld.Action, babyworld.Observation] {
		rng := rand.New(rand.NewSource(99))
		trajectory, err := Run(context.Background(), model, policy.NeverFeed{}, rng, Config{MaxSteps: 40})
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		return trajectory
	}

	first := runOnce()
	second := runOnce()
	if first.TotalReward != second.TotalReward {
		t.Fatalf("total rewards diverged: %f vs %f", first.TotalReward, second.TotalReward)
	}
	for i := range first.Steps {
		if first.Steps[i] != second.Steps[i] {
			t.Fatalf("step %d diverged: %+v vs %+v", i, first.Steps[i], second.Steps[i])
		}
	}
}

func TestRunRejectsNonPositiveMaxSteps(t *testing.T) {
	model := babyworld.MustNew(babyworld.DefaultParams())
	rng := rand.New(rand.NewSource(4))

	if _, err := Run(context.Background(), model, policy.AlwaysFeed{}, rng, Config{}); err == nil {
		t.Fatalf("expected error for zero max steps")
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	model := babyworld.MustNew(babyworld.DefaultParams())
	rng := rand.New(rand.NewSource(5))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Run(ctx, model, policy.AlwaysFeed{}, rng, Config{MaxSteps: 10}); err == nil {
		t.Fatalf("expected context error")
	}
}
