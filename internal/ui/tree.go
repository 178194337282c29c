package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/tree"

	"github.com/bjulian5/fleet/internal/review"
)

// RenderReviewTree renders review groups as a tree:
//
//	REN-100 (multi-service: api, frontend)
//	├─ ● api #12 Add invoice endpoint +40/-2
//	╰─ ◐ frontend #9 Wire invoices +10/-1
func RenderReviewTree(r review.Report) string {
	var sections []string

	for _, g := range r.Groups {
		label := g.Key
		if g.MultiService {
			label += " " + WarningStyle.Render(fmt.Sprintf("(multi-service: %s)", strings.Join(g.Services, ", ")))
		}
		sections = append(sections, renderEntries(TreeRootStyle.Render(label), g.Entries))
	}

	if len(r.Ungrouped) > 0 {
		sections = append(sections, renderEntries(DimStyle.Render("Ungrouped"), r.Ungrouped))
	}

	totals := fmt.Sprintf("%s, %s, +%d/-%d",
		Plural(r.Totals.PRs, "PR"), Plural(r.Totals.Files, "file"),
		r.Totals.Additions, r.Totals.Deletions)
	sections = append(sections, Dim("Totals: "+totals))
	return strings.Join(sections, "\n\n")
}

func renderEntries(root string, entries []review.Entry) string {
	t := tree.Root(root)
	for _, e := range entries {
		status := GetPRStatus(e.PR.State, e.PR.IsDraft)
		t.Child(fmt.Sprintf("%s %s #%d %s %s",
			status.RenderCompact(),
			ServiceStyle.Render(e.Service),
			e.PR.Number,
			Truncate(e.PR.Title, maxTitleLength),
			Dim(fmt.Sprintf("+%d/-%d", e.PR.Additions, e.PR.Deletions))))
	}
	return t.Enumerator(roundedEnumerator).
		EnumeratorStyle(TreeEnumeratorStyle).
		String()
}

func roundedEnumerator(children tree.Children, i int) string {
	if i == children.Length()-1 {
		return "╰─"
	}
	return "├─"
}
