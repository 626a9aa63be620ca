package storage

import (
	"encoding/json"
	"errors"

	"cradle/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

func EncodeRun(r model.RunRecord) ([]byte, error) {
	return json.Marshal(r)
}

func DecodeRun(data []byte) (model.RunRecord, error) {
	var run model.RunRecord
	if err := json.Unmarshal(data, &run); err != nil {
		return model.RunRecord{}, err
	}
	if err := checkVersion(run.VersionedRecord); err != nil {
		return model.RunRecord{}, err
	}
	return run, nil
}

func EncodeTrajectories(trajectories []model.TrajectoryRecord) ([]byte, error) {
	return json.Marshal(trajectories)
}

func DecodeTrajectories(data []byte) ([]model.TrajectoryRecord, error) {
	var trajectories []model.TrajectoryRecord
	if err := json.Unmarshal(data, &trajectories); err != nil {
		return nil, err
	}
	for _, trajectory := range trajectories {
		if err := checkVersion(trajectory.VersionedRecord); err != nil {
			return nil, err
		}
	}
	return trajectories, nil
}

func EncodeRewardHistory(history []float64) ([]byte, error) {
	return json.Marshal(history)
}

func DecodeRewardHistory(data []byte) ([]float64, error) {
	var history []float64
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, err
	}
	return history, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
