// Package cradle is the public client for running and inspecting
// crying-baby simulations.
package cradle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"cradle/internal/babyworld"
	"cradle/internal/model"
	"cradle/internal/policy"
	"cradle/internal/pomdp"
	"cradle/internal/sim"
	"cradle/internal/stats"
	"cradle/internal/storage"
)

const (
	defaultExportsDir = "exports"
	defaultDBPath     = "cradle.db"

	ModelCryingBaby = "crying-baby"
)

type Options struct {
	StoreKind  string
	DBPath     string
	ExportsDir string
}

type Client struct {
	store      storage.Store
	exportsDir string
}

type SimulateRequest struct {
	Policy      string
	RandomFeedP float64
	Episodes    int
	Steps       int
	Seed        int64
	Workers     int
	// Params overrides the canonical configuration when non-nil.
	Params *babyworld.Params
}

type SimulateSummary struct {
	RunID                string
	Policy               string
	Episodes             int
	Steps                int
	Seed                 int64
	MeanReward           float64
	MeanDiscountedReturn float64
	CryingRate           float64
	EpisodeRewards       []float64
}

type RunsRequest struct {
	Limit int
}

type RunItem struct {
	RunID                string
	CreatedAtUTC         string
	Model                string
	Policy               string
	Seed                 int64
	Episodes             int
	StepsPerEpisode      int
	MeanReward           float64
	MeanDiscountedReturn float64
}

type HistoryRequest struct {
	RunID string
}

type ExportRequest struct {
	RunID  string
	OutDir string
}

type ExportSummary struct {
	RunID     string
	Directory string
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	exportsDir := opts.ExportsDir
	if exportsDir == "" {
		exportsDir = defaultExportsDir
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}

	return &Client{
		store:      store,
		exportsDir: exportsDir,
	}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Init(ctx context.Context) error {
	return c.store.Init(ctx)
}

// Reset clears all persisted runs from the configured store.
func (c *Client) Reset(ctx context.Context) error {
	if err := c.store.Init(ctx); err != nil {
		return err
	}
	return storage.ResetIfSupported(ctx, c.store)
}

// Simulate runs a batch of episodes, persists the run, and returns the
// aggregate summary. Zero-valued request fields take the canonical
// defaults: one ten-step always-feed episode.
func (c *Client) Simulate(ctx context.Context, req SimulateRequest) (SimulateSummary, error) {
	if req.Policy == "" {
		req.Policy = policy.NameAlwaysFeed
	}
	if req.Episodes <= 0 {
		req.Episodes = 1
	}
	if req.Steps <= 0 {
		req.Steps = 10
	}
	if req.Workers <= 0 {
		req.Workers = 4
	}

	params := babyworld.DefaultParams()
	if req.Params != nil {
		params = *req.Params
	}
	babyModel, err := babyworld.New(params)
	if err != nil {
		return SimulateSummary{}, err
	}

	if err := c.store.Init(ctx); err != nil {
		return SimulateSummary{}, err
	}

	// Validate the policy name up front so a bad request fails before
	// any worker starts.
	if _, err := policy.FromName(req.Policy, req.RandomFeedP, nil); err != nil {
		return SimulateSummary{}, err
	}
	factory := func(_ int, rng pomdp.RandSource) (policy.BabyPolicy, error) {
		return policy.FromName(req.Policy, req.RandomFeedP, rng)
	}

	trajectories, err := sim.RunBatch(ctx, babyModel, factory, sim.BatchConfig{
		Episodes: req.Episodes,
		MaxSteps: req.Steps,
		Seed:     req.Seed,
		Workers:  req.Workers,
	})
	if err != nil {
		return SimulateSummary{}, err
	}

	runID := uuid.NewString()
	records := make([]model.TrajectoryRecord, len(trajectories))
	rewards := make([]float64, len(trajectories))
	returns := make([]float64, len(trajectories))
	var cryingSteps []bool
	for i, trajectory := range trajectories {
		records[i] = trajectoryRecord(runID, i, req.Seed+int64(i), trajectory)
		rewards[i] = trajectory.TotalReward
		returns[i] = trajectory.DiscountedReturn
		for _, step := range trajectory.Steps {
			cryingSteps = append(cryingSteps, step.Obs == babyworld.Crying)
		}
	}

	rewardSummary := stats.Summarize(rewards)
	returnSummary := stats.Summarize(returns)
	run := model.RunRecord{
		VersionedRecord:      versionedRecord(),
		ID:                   runID,
		CreatedAtUTC:         time.Now().UTC().Format(time.RFC3339Nano),
		Model:                ModelCryingBaby,
		Policy:               req.Policy,
		Seed:                 req.Seed,
		Episodes:             req.Episodes,
		StepsPerEpisode:      req.Steps,
		Params:               params,
		MeanReward:           rewardSummary.Mean,
		MeanDiscountedReturn: returnSummary.Mean,
	}

	if err := c.store.SaveRun(ctx, run); err != nil {
		return SimulateSummary{}, err
	}
	if err := c.store.SaveTrajectories(ctx, runID, records); err != nil {
		return SimulateSummary{}, err
	}
	if err := c.store.SaveRewardHistory(ctx, runID, rewards); err != nil {
		return SimulateSummary{}, err
	}

	return SimulateSummary{
		RunID:                runID,
		Policy:               req.Policy,
		Episodes:             req.Episodes,
		Steps:                req.Steps,
		Seed:                 req.Seed,
		MeanReward:           rewardSummary.Mean,
		MeanDiscountedReturn: returnSummary.Mean,
		CryingRate:           stats.Rate(cryingSteps),
		EpisodeRewards:       rewards,
	}, nil
}

func (c *Client) Runs(ctx context.Context, req RunsRequest) ([]RunItem, error) {
	if req.Limit <= 0 {
		req.Limit = 20
	}
	if err := c.store.Init(ctx); err != nil {
		return nil, err
	}

	runs, err := c.store.ListRuns(ctx, req.Limit)
	if err != nil {
		return nil, err
	}

	out := make([]RunItem, 0, len(runs))
	for _, run := range runs {
		out = append(out, RunItem{
			RunID:                run.ID,
			CreatedAtUTC:         run.CreatedAtUTC,
			Model:                run.Model,
			Policy:               run.Policy,
			Seed:                 run.Seed,
			Episodes:             run.Episodes,
			StepsPerEpisode:      run.StepsPerEpisode,
			MeanReward:           run.MeanReward,
			MeanDiscountedReturn: run.MeanDiscountedReturn,
		})
	}
	return out, nil
}

// History returns per-episode total rewards for a run.
func (c *Client) History(ctx context.Context, req HistoryRequest) ([]float64, error) {
	if req.RunID == "" {
		return nil, errors.New("history requires a run id")
	}
	if err := c.store.Init(ctx); err != nil {
		return nil, err
	}
	history, ok, err := c.store.GetRewardHistory(ctx, req.RunID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no reward history for run %s", req.RunID)
	}
	return history, nil
}

// Export writes run artifacts (summary JSON, per-step CSV) to disk.
func (c *Client) Export(ctx context.Context, req ExportRequest) (ExportSummary, error) {
	if req.RunID == "" {
		return ExportSummary{}, errors.New("export requires a run id")
	}
	if req.OutDir == "" {
		req.OutDir = c.exportsDir
	}
	if err := c.store.Init(ctx); err != nil {
		return ExportSummary{}, err
	}

	run, ok, err := c.store.GetRun(ctx, req.RunID)
	if err != nil {
		return ExportSummary{}, err
	}
	if !ok {
		return ExportSummary{}, fmt.Errorf("unknown run %s", req.RunID)
	}
	trajectories, ok, err := c.store.GetTrajectories(ctx, req.RunID)
	if err != nil {
		return ExportSummary{}, err
	}
	if !ok {
		return ExportSummary{}, fmt.Errorf("no trajectories for run %s", req.RunID)
	}

	rewards := make([]float64, len(trajectories))
	returns := make([]float64, len(trajectories))
	var cryingSteps []bool
	for i, trajectory := range trajectories {
		rewards[i] = trajectory.TotalReward
		returns[i] = trajectory.DiscountedReturn
		for _, step := range trajectory.Steps {
			cryingSteps = append(cryingSteps, step.Crying)
		}
	}

	dir, err := stats.WriteRunArtifacts(req.OutDir, stats.RunArtifacts{
		Run:          run,
		Returns:      stats.Summarize(rewards),
		Discounted:   stats.Summarize(returns),
		CryingRate:   stats.Rate(cryingSteps),
		Trajectories: trajectories,
	})
	if err != nil {
		return ExportSummary{}, err
	}
	return ExportSummary{RunID: req.RunID, Directory: dir}, nil
}

func versionedRecord() model.VersionedRecord {
	return model.VersionedRecord{
		SchemaVersion: storage.CurrentSchemaVersion,
		CodecVersion:  storage.CurrentCodecVersion,
	}
}

func trajectoryRecord(runID string, episode int, seed int64, trajectory sim.Trajectory[babyworld.State, babyworld.Action, babyworld.Observation]) model.TrajectoryRecord {
	steps := make([]model.StepRecord, len(trajectory.Steps))
	for i, step := range trajectory.Steps {
		steps[i] = model.StepRecord{
			Step:       i,
			Hungry:     step.State == babyworld.Hungry,
			Fed:        step.Action == babyworld.Feed,
			Crying:     step.Obs == babyworld.Crying,
			NextHungry: step.Next == babyworld.Hungry,
			Reward:     step.Reward,
		}
	}
	return model.TrajectoryRecord{
		VersionedRecord:  versionedRecord(),
		RunID:            runID,
		Episode:          episode,
		Seed:             seed,
		Steps:            steps,
		TotalReward:      trajectory.TotalReward,
		DiscountedReturn: trajectory.DiscountedReturn,
	}
}
