package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/ktr0731/go-fuzzyfinder"
)

func init() {
	// Force lipgloss to detect the terminal before the finder takes over,
	// otherwise escape sequences leak into the finder input
	_ = lipgloss.NewStyle().Render("")
	_ = lipgloss.HasDarkBackground()
}

// Choice is one entry of a fuzzy finder menu
type Choice struct {
	Key         string
	Label       string
	Description string
}

// Select presents a fuzzy finder over choices and returns the selected key,
// or "" if the user cancelled.
func Select(prompt string, choices []Choice) (string, error) {
	os.Stdout.Sync()
	os.Stderr.Sync()

	idx, err := fuzzyfinder.Find(
		choices,
		func(i int) string {
			return choices[i].Label
		},
		fuzzyfinder.WithPromptString(prompt+" > "),
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			return choices[i].Description
		}),
	)
	if err == fuzzyfinder.ErrAbort {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return choices[idx].Key, nil
}
