package fleet

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// UpdateLog is the audit record of one update run
type UpdateLog struct {
	RunID      string           `json:"runId"`
	Branch     string           `json:"branch"`
	StartedAt  time.Time        `json:"startedAt"`
	FinishedAt time.Time        `json:"finishedAt"`
	Succeeded  int              `json:"succeeded"`
	Failed     int              `json:"failed"`
	Results    []UpdateLogEntry `json:"results"`
}

// UpdateLogEntry is one repository's line in the audit record
type UpdateLogEntry struct {
	Service      string `json:"service"`
	Success      bool   `json:"success"`
	Outcome      string `json:"outcome"`
	Branch       string `json:"branch,omitempty"`
	Commit       string `json:"commit,omitempty"`
	Stashed      bool   `json:"stashed,omitempty"`
	StashMessage string `json:"stashMessage,omitempty"`
	Deps         string `json:"deps,omitempty"`
	Error        string `json:"error,omitempty"`
}

// NewUpdateLog builds the audit record for a finished update run
func NewUpdateLog(branch string, startedAt, finishedAt time.Time, results []Result[UpdateDetails]) UpdateLog {
	summary := Summarize(results)
	log := UpdateLog{
		RunID:      uuid.New().String(),
		Branch:     branch,
		StartedAt:  startedAt.UTC(),
		FinishedAt: finishedAt.UTC(),
		Succeeded:  summary.Succeeded,
		Failed:     summary.Failed,
		Results:    make([]UpdateLogEntry, 0, len(results)),
	}
	for _, r := range results {
		log.Results = append(log.Results, UpdateLogEntry{
			Service:      r.Service,
			Success:      r.Success(),
			Outcome:      r.Outcome.String(),
			Branch:       r.Value.Branch,
			Commit:       r.Value.Commit,
			Stashed:      r.Value.Stashed,
			StashMessage: r.Value.StashMessage,
			Deps:         r.Value.DepsCommand,
			Error:        r.ErrorText(),
		})
	}
	return log
}

// WriteUpdateLog writes log to dir as update-<timestamp>.json, creating dir
// if needed, and returns the file path.
func WriteUpdateLog(dir string, log UpdateLog) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}

	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal update log: %w", err)
	}

	// colons are not portable in file names
	name := "update-" + log.StartedAt.UTC().Format("2006-01-02T15-04-05.000Z") + ".json"
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write update log: %w", err)
	}
	return path, nil
}
