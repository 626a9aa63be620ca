package stats

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"cradle/internal/model"
)

const (
	summaryFile = "summary.json"
	stepsFile   = "steps.csv"
)

type RunArtifacts struct {
	Run          model.RunRecord          `json:"run"`
	Returns      Summary                  `json:"returns"`
	Discounted   Summary                  `json:"discounted_returns"`
	CryingRate   float64                  `json:"crying_rate"`
	Trajectories []model.TrajectoryRecord `json:"-"`
}

// WriteRunArtifacts writes summary.json and steps.csv under dir/<run-id>/.
// The directory is created if needed; the run directory path is returned.
func WriteRunArtifacts(dir string, artifacts RunArtifacts) (string, error) {
	if artifacts.Run.ID == "" {
		return "", fmt.Errorf("run artifacts require a run id")
	}

	runDir := filepath.Join(dir, artifacts.Run.ID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", err
	}

	payload, err := json.MarshalIndent(artifacts, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(runDir, summaryFile), payload, 0o644); err != nil {
		return "", err
	}

	if err := writeStepsCSV(filepath.Join(runDir, stepsFile), artifacts.Trajectories); err != nil {
		return "", err
	}
	return runDir, nil
}

func writeStepsCSV(path string, trajectories []model.TrajectoryRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"episode", "step", "hungry", "fed", "crying", "next_hungry", "reward"}); err != nil {
		return err
	}
	for _, trajectory := range trajectories {
		for _, step := range trajectory.Steps {
			record := []string{
				strconv.Itoa(trajectory.Episode),
				strconv.Itoa(step.Step),
				strconv.FormatBool(step.Hungry),
				strconv.FormatBool(step.Fed),
				strconv.FormatBool(step.Crying),
				strconv.FormatBool(step.NextHungry),
				strconv.FormatFloat(step.Reward, 'g', -1, 64),
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}
