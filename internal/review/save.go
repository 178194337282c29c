package review

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Saved describes the file written by Save
type Saved struct {
	Path     string
	Analyzed bool // false: Path holds a prompt for manual use
}

// Save analyzes report and writes the analysis to dir/review-<name>.md. When
// the analyzer is unavailable it writes the prompt to
// dir/review-<name>-prompt.md instead and reports Analyzed=false.
func Save(ctx context.Context, dir string, report Report, analyzer Analyzer) (Saved, error) {
	name := report.Ticket
	if name == "" {
		name = "all"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Saved{}, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	prompt := BuildPrompt(report)

	if analyzer == nil || !analyzer.Available() {
		path := filepath.Join(dir, "review-"+name+"-prompt.md")
		if err := os.WriteFile(path, []byte(prompt), 0644); err != nil {
			return Saved{}, fmt.Errorf("failed to write prompt: %w", err)
		}
		return Saved{Path: path}, nil
	}

	analysis, err := analyzer.Analyze(ctx, prompt)
	if err != nil {
		return Saved{}, err
	}
	path := filepath.Join(dir, "review-"+name+".md")
	content := fmt.Sprintf("# Review %s\n\n%s\n", name, analysis)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return Saved{}, fmt.Errorf("failed to write analysis: %w", err)
	}
	return Saved{Path: path, Analyzed: true}, nil
}
