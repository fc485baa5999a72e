// Package config reads and writes the persisted trubrics configuration
// record. One record lives per working directory, as .trubrics_config.json.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the name of the config record inside its directory.
const FileName = ".trubrics_config.json"

// ErrConfigNotFound is returned by Load when no record file exists at the
// expected location. The user must run `trubrics init` to create one.
var ErrConfigNotFound = errors.New("trubrics config file not found")

// Record is the persisted configuration. A record is either local-only
// (no APIURL/IdentityID) or remote-enabled (both present); Validate enforces
// the invariant before anything is written.
type Record struct {
	RunPath    string `json:"trubric_run_path"`
	APIURL     string `json:"api_url,omitempty"`
	IdentityID string `json:"user_id,omitempty"`
}

// RemoteEnabled reports whether the record carries an authenticated identity
// for remote persistence.
func (r *Record) RemoteEnabled() bool {
	return r.APIURL != "" && r.IdentityID != ""
}

// Validate checks the record's internal invariants.
func (r *Record) Validate() error {
	if r.RunPath == "" {
		return errors.New("trubric_run_path is a required configuration field and cannot be empty")
	}
	if (r.APIURL == "") != (r.IdentityID == "") {
		return errors.New("api_url and user_id must be set together or not at all")
	}
	return nil
}

// Load reads the config record from dir.
func Load(dir string) (*Record, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s (run `trubrics init` to create it)", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &rec, nil
}

// Save writes the record to dir, replacing any previous one. The write goes
// through a temporary file and a rename so a crash mid-write never leaves a
// partial record visible to a later Load.
func Save(dir string, rec *Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(rec, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode config record: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(dir, FileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Rename(tmpName, filepath.Join(dir, FileName)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
