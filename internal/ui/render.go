package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bjulian5/fleet/internal/fleet"
	"github.com/bjulian5/fleet/internal/gh"
	"github.com/bjulian5/fleet/internal/git"
)

const maxTitleLength = 60

// RenderResultLine renders one service's outcome. detail is shown for
// successes; failures show the error text instead.
func RenderResultLine[T any](r fleet.Result[T], detail string) string {
	status := GetOutcomeStatus(r.Outcome)
	name := ServiceStyle.Render(Pad(r.Service, 14, lipgloss.Left))
	if r.Success() {
		return fmt.Sprintf("%s %s %s", status.RenderCompact(), name, detail)
	}
	return fmt.Sprintf("%s %s %s", status.RenderCompact(), name, status.Style.Render(r.ErrorText()))
}

// RenderSummary renders the closing line of a batch
func RenderSummary(s fleet.Summary) string {
	text := fmt.Sprintf("Summary: %d succeeded, %d failed (%d total)", s.Succeeded, s.Failed, s.Total)
	if s.Failed > 0 {
		return WarningStyle.Render(text)
	}
	return SuccessStyle.Render(text)
}

// RenderStatusTable renders one row per service
func RenderStatusTable(results []fleet.Result[fleet.RepositoryStatus]) string {
	t := NewFleetTable("Service", "Branch", "Changes", "Ahead", "Behind", "State")
	for _, r := range results {
		if !r.Success() {
			t.Row(r.Service, "", "", "", "", GetOutcomeStatus(r.Outcome).Style.Render(r.ErrorText()))
			continue
		}
		st := r.Value
		state := SuccessStyle.Render("clean")
		if !st.IsClean() {
			state = WarningStyle.Render(describeStatus(st))
		}
		t.Row(r.Service, st.Branch,
			strconv.Itoa(st.UncommittedFiles),
			strconv.Itoa(st.CommitsAhead),
			strconv.Itoa(st.CommitsBehind),
			state)
	}
	return t.String()
}

func describeStatus(st fleet.RepositoryStatus) string {
	var parts []string
	if st.HasStagedChanges {
		parts = append(parts, "staged")
	}
	if st.HasUnstagedChanges {
		parts = append(parts, "modified")
	}
	if st.UncommittedFiles > 0 && !st.HasStagedChanges && !st.HasUnstagedChanges {
		parts = append(parts, "untracked")
	}
	if st.CommitsAhead > 0 {
		parts = append(parts, "unpushed")
	}
	if st.CommitsBehind > 0 {
		parts = append(parts, "behind")
	}
	if st.Upstream == "" {
		parts = append(parts, "no upstream")
	}
	return strings.Join(parts, ", ")
}

// RenderChanges lists porcelain changes with their codes
func RenderChanges(cs fleet.ChangeSet) string {
	if len(cs.Files) == 0 {
		return Dim("  no uncommitted changes")
	}
	lines := make([]string, 0, len(cs.Files)+1)
	for _, f := range cs.Files {
		lines = append(lines, fmt.Sprintf("  %s %s", changeStyle(f).Render(f.Code()), f.Path))
	}
	lines = append(lines, Dim(fmt.Sprintf("  %d modified, %d staged, %d untracked",
		cs.Counts.Modified, cs.Counts.Staged, cs.Counts.Untracked)))
	return strings.Join(lines, "\n")
}

func changeStyle(f git.FileChange) lipgloss.Style {
	switch {
	case f.IsUntracked():
		return DimStyle
	case f.IsStaged():
		return SuccessStyle
	default:
		return WarningStyle
	}
}

// RenderMatches renders grep hits as path:line: text
func RenderMatches(matches []git.GrepMatch) string {
	lines := make([]string, 0, len(matches))
	for _, m := range matches {
		lines = append(lines, fmt.Sprintf("  %s%s %s",
			BranchStyle.Render(m.Path), Dim(fmt.Sprintf(":%d:", m.Line)), m.Text))
	}
	return strings.Join(lines, "\n")
}

// RenderCommits renders one line per commit
func RenderCommits(commits []git.Commit) string {
	if len(commits) == 0 {
		return Dim("  no recent commits")
	}
	lines := make([]string, 0, len(commits))
	for _, c := range commits {
		lines = append(lines, fmt.Sprintf("  %s %s %s",
			BranchStyle.Render(c.ShortHash()),
			Truncate(c.Title, maxTitleLength),
			Dim(fmt.Sprintf("(%s, %s)", c.Author, c.When.Format("2006-01-02")))))
	}
	return strings.Join(lines, "\n")
}

// PRRow pairs a PR with its service for cross-service tables
type PRRow struct {
	Service string
	PR      gh.PullRequest
}

// RenderPRTable renders PRs across services
func RenderPRTable(rows []PRRow) string {
	t := NewFleetTable("Service", "#", "Title", "Branch", "Author", "State")
	for _, r := range rows {
		t.Row(r.Service,
			strconv.Itoa(r.PR.Number),
			Truncate(r.PR.Title, maxTitleLength),
			r.PR.HeadRef,
			r.PR.Author,
			GetPRStatus(r.PR.State, r.PR.IsDraft).Render())
	}
	return t.String()
}

// RenderUpdateTable renders the per-service result of an update run
func RenderUpdateTable(results []fleet.Result[fleet.UpdateDetails]) string {
	t := NewFleetTable("Service", "Result", "Stashed", "Deps", "HEAD")
	for _, r := range results {
		status := GetOutcomeStatus(r.Outcome)
		head := Truncate(r.Value.Commit, maxTitleLength)
		if !r.Success() {
			head = status.Style.Render(Truncate(r.ErrorText(), maxTitleLength))
		}
		stashed := ""
		if r.Value.Stashed {
			stashed = "yes"
		}
		t.Row(r.Service, status.Render(), stashed, r.Value.DepsManager, head)
	}
	return t.String()
}
