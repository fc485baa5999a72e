// Package trubric defines the report artifact produced by a validation run
// and its local persistence.
package trubric

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrPersistence marks a failure to write the report to local storage.
var ErrPersistence = errors.New("failed to persist trubric")

// Severity classifies how a failed validation should be treated downstream.
type Severity string

const (
	SeverityError      Severity = "error"
	SeverityWarning    Severity = "warning"
	SeverityExperiment Severity = "experiment"
)

// ValidSeverity reports whether s is one of the recognised severity levels.
func ValidSeverity(s Severity) bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityExperiment:
		return true
	}
	return false
}

// Result is the pass/fail outcome of a single validation.
type Result string

const (
	ResultPass Result = "pass"
	ResultFail Result = "fail"
)

// Outcome records the result of one executed validation. Outcomes are
// immutable once created and appended to the report in execution order.
type Outcome struct {
	Kind     string   `json:"validation_type"`
	Severity Severity `json:"severity"`
	Result   Result   `json:"outcome"`
}

// Trubric is the persisted report of a validation run. The order of
// Validations is the declaration/execution order and is significant for
// display and reproducible diffing.
type Trubric struct {
	RunID       string    `json:"run_id"`
	ModelName   string    `json:"model_name"`
	DatasetName string    `json:"dataset_name"`
	Validations []Outcome `json:"validations"`
}

// SaveLocal serialises the trubric to {dir}/{name} and returns the written
// path. The write goes through a temporary file followed by a rename so a
// crash mid-write never leaves a partially written report visible.
func SaveLocal(t *Trubric, dir, name string) (string, error) {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	data = append(data, '\n')

	path := filepath.Join(dir, name)
	tmp, err := os.CreateTemp(dir, name+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return path, nil
}

// Load reads a previously saved trubric back from disk. It is the inverse of
// SaveLocal: identifiers and the ordered outcome sequence round-trip exactly.
func Load(path string) (*Trubric, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read trubric file %s: %w", path, err)
	}
	var t Trubric
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to decode trubric file %s: %w", path, err)
	}
	return &t, nil
}
