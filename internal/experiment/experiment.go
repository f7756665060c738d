package experiment

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Outcome error kinds. Single-attempt failures are always absorbed into the
// outcome; the kind lets consumers branch without string-matching messages.
const (
	ErrorKindService = "service_error"
	ErrorKindParse   = "parse_error"
)

// ErrNoSubjects is returned when a run is started with nothing to evaluate.
var ErrNoSubjects = errors.New("no subjects to evaluate")

// Subject is one demographic-variant document under test. The experiment
// treats it as an opaque triple; rendering is the caller's concern.
type Subject struct {
	ID          string
	Description string
	Text        string
}

// Outcome is the result of scoring one subject once. Created once per
// attempt and never mutated afterwards.
type Outcome struct {
	ProfileID          string    `json:"profile_id"`
	ProfileDescription string    `json:"profile_description"`
	Iteration          int       `json:"iteration"`
	Success            bool      `json:"success"`
	Scores             Record    `json:"scores,omitempty"`
	Error              string    `json:"error,omitempty"`
	ErrorKind          string    `json:"error_kind,omitempty"`
	Timestamp          time.Time `json:"timestamp"`
	RawResponse        string    `json:"raw_response,omitempty"`
}

// Metadata describes one full run.
type Metadata struct {
	RunID               string    `json:"run_id"`
	StartTime           time.Time `json:"start_time"`
	EndTime             time.Time `json:"end_time"`
	DurationSeconds     float64   `json:"duration_seconds"`
	Provider            string    `json:"provider"`
	ModelName           string    `json:"model_name"`
	Temperature         float64   `json:"temperature"`
	IterationsPerConfig int       `json:"iterations_per_config"`
	Concurrency         int       `json:"concurrency"`
	TotalProfiles       int       `json:"total_profiles"`
	TotalEvaluations    int       `json:"total_evaluations"`
}

// Result is the persisted unit of a run: metadata plus every outcome across
// all subjects, in subject order.
type Result struct {
	Metadata Metadata   `json:"metadata"`
	Results  []*Outcome `json:"results"`
}

// Save writes the result as a pretty-printed JSON artifact in dir, creating
// it when needed. Returns the path of the written file.
func (r *Result) Save(dir string) (string, error) {
	if dir == "" {
		dir = "results"
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create results dir: %w", err)
	}

	shortID := r.Metadata.RunID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}

	name := fmt.Sprintf("ats_experiment_%s_%s.json",
		r.Metadata.StartTime.Format("20060102_150405"), shortID)
	path := filepath.Join(dir, name)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}

	return path, nil
}

// Load reads a previously saved result artifact.
func Load(path string) (*Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var result Result
	if err := json.NewDecoder(file).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode result artifact %q: %w", path, err)
	}

	return &result, nil
}
