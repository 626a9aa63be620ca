package storage

import (
	"context"

	"cradle/internal/model"
)

// Store defines persistence operations for simulation runs and their
// trajectories.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run model.RunRecord) error
	GetRun(ctx context.Context, id string) (model.RunRecord, bool, error)
	ListRuns(ctx context.Context, limit int) ([]model.RunRecord, error)
	SaveTrajectories(ctx context.Context, runID string, trajectories []model.TrajectoryRecord) error
	GetTrajectories(ctx context.Context, runID string) ([]model.TrajectoryRecord, bool, error)
	SaveRewardHistory(ctx context.Context, runID string, history []float64) error
	GetRewardHistory(ctx context.Context, runID string) ([]float64, bool, error)
}
