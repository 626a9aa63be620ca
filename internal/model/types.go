package model

import "cradle/internal/babyworld"

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

type RunRecord struct {
	VersionedRecord
	ID                   string           `json:"id"`
	CreatedAtUTC         string           `json:"created_at_utc"`
	Model                string           `json:"model"`
	Policy               string           `json:"policy"`
	Seed                 int64            `json:"seed"`
	Episodes             int              `json:"episodes"`
	StepsPerEpisode      int              `json:"steps_per_episode"`
	Params               babyworld.Params `json:"params"`
	MeanReward           float64          `json:"mean_reward"`
	MeanDiscountedReturn float64          `json:"mean_discounted_return"`
}

type TrajectoryRecord struct {
	VersionedRecord
	RunID            string       `json:"run_id"`
	Episode          int          `json:"episode"`
	Seed             int64        `json:"seed"`
	Steps            []StepRecord `json:"steps"`
	TotalReward      float64      `json:"total_reward"`
	DiscountedReturn float64      `json:"discounted_return"`
}

type StepRecord struct {
	Step       int     `json:"step"`
	Hungry     bool    `json:"hungry"`
	Fed        bool    `json:"fed"`
	Crying     bool    `json:"crying"`
	NextHungry bool    `json:"next_hungry"`
	Reward     float64 `json:"reward"`
}
