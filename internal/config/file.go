package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// CurrentFileVersion is written into new config files
const CurrentFileVersion = "1.0.0"

// File is the on-disk config file (local or home)
type File struct {
	RepoRoot string    `json:"repoRoot"`
	Created  time.Time `json:"created"`
	Version  string    `json:"version"`
}

// ReadFile loads a config file. Returns nil, nil if it doesn't exist.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &f, nil
}

// WriteFile writes a config file for repoRoot, creating parent directories.
func WriteFile(path string, repoRoot string) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	f := &File{
		RepoRoot: repoRoot,
		Created:  time.Now().UTC(),
		Version:  CurrentFileVersion,
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write config: %w", err)
	}
	return f, nil
}
