// Package report persists the structured record of one optimization run.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/storyrec-dev/storyrec/internal/optimizer"
)

// Report captures one optimization run end to end.
type Report struct {
	RunID           string             `json:"run_id"`
	Timestamp       time.Time          `json:"timestamp"`
	Profile         string             `json:"profile"`
	TargetScore     float64            `json:"target_score"`
	MaxIterations   int                `json:"max_iterations"`
	BestScore       float64            `json:"best_score"`
	BestPrompt      string             `json:"best_prompt"`
	FinalScore      float64            `json:"final_score"`
	Recommendations []string           `json:"final_recommendations"`
	Feedback        []string           `json:"feedback"`
	History         []optimizer.Record `json:"optimization_history"`
}

// New creates a report shell with a fresh run id and timestamp.
func New(profileName string, targetScore float64, maxIterations int) *Report {
	return &Report{
		RunID:         uuid.NewString(),
		Timestamp:     time.Now().UTC(),
		Profile:       profileName,
		TargetScore:   targetScore,
		MaxIterations: maxIterations,
	}
}

// Save writes the report as indented JSON under dir and returns the
// file path.
func (r *Report) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}

	name := fmt.Sprintf("optimization_%s.json", r.Timestamp.Format("20060102_150405"))
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	return path, nil
}
