// Package policy defines action selection for simulation runs.
package policy

import (
	"fmt"
	"sort"
	"strings"

	"cradle/internal/babyworld"
	"cradle/internal/pomdp"
)

// Policy maps the most recent observation to the next action.
type Policy[O, A any] interface {
	ChooseAction(obs O) A
}

// BabyPolicy is a policy over the crying-baby types.
type BabyPolicy = Policy[babyworld.Observation, babyworld.Action]

// AlwaysFeed ignores the observation and always feeds.
type AlwaysFeed struct{}

func (AlwaysFeed) ChooseAction(_ babyworld.Observation) babyworld.Action {
	return babyworld.Feed
}

// NeverFeed ignores the observation and never feeds.
type NeverFeed struct{}

func (NeverFeed) ChooseAction(_ babyworld.Observation) babyworld.Action {
	return babyworld.Ignore
}

// FeedWhenCrying feeds exactly when the crying signal was observed.
type FeedWhenCrying struct{}

func (FeedWhenCrying) ChooseAction(obs babyworld.Observation) babyworld.Action {
	return babyworld.Action(obs == babyworld.Crying)
}

// RandomFeed feeds with probability P regardless of the observation. Each
// trajectory needs its own Rand so batches stay race-free and reproducible.
type RandomFeed struct {
	P    float64
	Rand pomdp.RandSource
}

func (p RandomFeed) ChooseAction(_ babyworld.Observation) babyworld.Action {
	return babyworld.Action(p.Rand.Float64() < p.P)
}

const (
	NameAlwaysFeed     = "always-feed"
	NameNeverFeed      = "never-feed"
	NameFeedWhenCrying = "feed-when-crying"
	NameRandom         = "random"
)

// FromName builds the named crying-baby policy. The random policy draws
// from rng; the deterministic policies ignore it.
func FromName(name string, randomFeedP float64, rng pomdp.RandSource) (BabyPolicy, error) {
	switch strings.TrimSpace(strings.ToLower(name)) {
	case "", NameAlwaysFeed:
		return AlwaysFeed{}, nil
	case NameNeverFeed:
		return NeverFeed{}, nil
	case NameFeedWhenCrying:
		return FeedWhenCrying{}, nil
	case NameRandom:
		if randomFeedP < 0 || randomFeedP > 1 {
			return nil, fmt.Errorf("random feed probability must be in [0,1], got %g", randomFeedP)
		}
		return RandomFeed{P: randomFeedP, Rand: rng}, nil
	default:
		return nil, fmt.Errorf("unsupported policy: %s", name)
	}
}

// Names lists the registered policy names in stable order.
func Names() []string {
	names := []string{NameAlwaysFeed, NameNeverFeed, NameFeedWhenCrying, NameRandom}
	sort.Strings(names)
	return names
}
