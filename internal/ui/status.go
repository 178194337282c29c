package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bjulian5/fleet/internal/fleet"
)

// Status icons
const (
	IconOpen    = "●"
	IconDraft   = "◐"
	IconMerged  = "◆"
	IconClosed  = "○"
	IconOK      = "✓"
	IconFailed  = "✗"
	IconMissing = "∅"
	IconRefused = "⊘"
)

// Status is an icon and label rendered in one style
type Status struct {
	Icon  string
	Label string
	Style lipgloss.Style
}

// GetPRStatus returns the status for a PR state (any case); open drafts are
// shown as draft
func GetPRStatus(state string, draft bool) Status {
	state = strings.ToLower(state)
	if draft && state == "open" {
		return Status{Icon: IconDraft, Label: "Draft", Style: StatusDraftStyle}
	}
	switch state {
	case "open":
		return Status{Icon: IconOpen, Label: "Open", Style: StatusOpenStyle}
	case "merged":
		return Status{Icon: IconMerged, Label: "Merged", Style: StatusMergedStyle}
	default:
		return Status{Icon: IconClosed, Label: "Closed", Style: StatusClosedStyle}
	}
}

// GetOutcomeStatus maps a per-repository outcome to a status
func GetOutcomeStatus(o fleet.Outcome) Status {
	switch o {
	case fleet.OutcomeSucceeded:
		return Status{Icon: IconOK, Label: "ok", Style: SuccessStyle}
	case fleet.OutcomeNotFound:
		return Status{Icon: IconMissing, Label: "missing", Style: WarningStyle}
	case fleet.OutcomeRefused:
		return Status{Icon: IconRefused, Label: "refused", Style: WarningStyle}
	default:
		return Status{Icon: IconFailed, Label: "failed", Style: ErrorStyle}
	}
}

// Render returns the icon and label, e.g. "● Open"
func (s Status) Render() string {
	return s.Style.Render(s.Icon + " " + s.Label)
}

// RenderCompact returns just the styled icon
func (s Status) RenderCompact() string {
	return s.Style.Render(s.Icon)
}
