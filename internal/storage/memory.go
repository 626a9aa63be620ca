package storage

import (
	"context"
	"sort"
	"sync"

	"cradle/internal/model"
)

type MemoryStore struct {
	mu           sync.RWMutex
	initialized  bool
	runs         map[string]model.RunRecord
	trajectories map[string][]model.TrajectoryRecord
	history      map[string][]float64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	s.initialized = true
	s.runs = make(map[string]model.RunRecord)
	s.trajectories = make(map[string][]model.TrajectoryRecord)
	s.history = make(map[string][]float64)
	return nil
}

func (s *MemoryStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs = make(map[string]model.RunRecord)
	s.trajectories = make(map[string][]model.TrajectoryRecord)
	s.history = make(map[string][]float64)
	return nil
}

func (s *MemoryStore) SaveRun(_ context.Context, run model.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[run.ID] = run
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id string) (model.RunRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	return run, ok, nil
}

func (s *MemoryStore) ListRuns(_ context.Context, limit int) ([]model.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]model.RunRecord, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].CreatedAtUTC != runs[j].CreatedAtUTC {
			return runs[i].CreatedAtUTC > runs[j].CreatedAtUTC
		}
		return runs[i].ID < runs[j].ID
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (s *MemoryStore) SaveTrajectories(_ context.Context, runID string, trajectories []model.TrajectoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]model.TrajectoryRecord, len(trajectories))
	for i, trajectory := range trajectories {
		trajectory.Steps = append([]model.StepRecord(nil), trajectory.Steps...)
		copied[i] = trajectory
	}
	s.trajectories[runID] = copied
	return nil
}

func (s *MemoryStore) GetTrajectories(_ context.Context, runID string) ([]model.TrajectoryRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trajectories, ok := s.trajectories[runID]
	if !ok {
		return nil, false, nil
	}
	copied := make([]model.TrajectoryRecord, len(trajectories))
	for i, trajectory := range trajectories {
		trajectory.Steps = append([]model.StepRecord(nil), trajectory.Steps...)
		copied[i] = trajectory
	}
	return copied, true, nil
}

func (s *MemoryStore) SaveRewardHistory(_ context.Context, runID string, history []float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history[runID] = append([]float64(nil), history...)
	return nil
}

func (s *MemoryStore) GetRewardHistory(_ context.Context, runID string) ([]float64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.history[runID]
	if !ok {
		return nil, false, nil
	}
	return append([]float64(nil), history...), true, nil
}
