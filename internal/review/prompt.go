package review

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are a senior engineer reviewing a change set that may span several independently deployed services. Point out cross-service risks, deployment ordering and anything reviewers should look at first."

// BuildPrompt renders the report as the text sent to (or saved for) an analyst
func BuildPrompt(r Report) string {
	var sb strings.Builder

	if r.Ticket != "" {
		fmt.Fprintf(&sb, "Review the pull requests for ticket %s.\n\n", r.Ticket)
	} else {
		sb.WriteString("Review the following pull requests.\n\n")
	}
	fmt.Fprintf(&sb, "Totals: %d PRs, %d files, +%d/-%d lines\n\n",
		r.Totals.PRs, r.Totals.Files, r.Totals.Additions, r.Totals.Deletions)

	for _, g := range r.Groups {
		fmt.Fprintf(&sb, "## %s", g.Key)
		if g.MultiService {
			fmt.Fprintf(&sb, " (multi-service: %s)", strings.Join(g.Services, ", "))
		}
		sb.WriteString("\n\n")
		for _, e := range g.Entries {
			writeEntry(&sb, e)
		}
	}

	if len(r.Ungrouped) > 0 {
		sb.WriteString("## Ungrouped\n\n")
		for _, e := range r.Ungrouped {
			writeEntry(&sb, e)
		}
	}

	sb.WriteString("Please provide:\n")
	sb.WriteString("1. A summary of the overall change\n")
	sb.WriteString("2. Risks per service and across services\n")
	sb.WriteString("3. A suggested review and deploy order\n")
	return sb.String()
}

func writeEntry(sb *strings.Builder, e Entry) {
	pr := e.PR
	fmt.Fprintf(sb, "### [%s] #%d %s\n", e.Service, pr.Number, pr.Title)
	fmt.Fprintf(sb, "- State: %s\n", pr.State)
	fmt.Fprintf(sb, "- Author: %s\n", pr.Author)
	fmt.Fprintf(sb, "- Changes: %d files, +%d/-%d\n", pr.FilesChanged, pr.Additions, pr.Deletions)
	if decision := pr.ReviewDecision(); decision != "" {
		fmt.Fprintf(sb, "- Reviews: %s\n", decision)
	}
	if body := strings.TrimSpace(pr.Body); body != "" {
		fmt.Fprintf(sb, "\n%s\n", body)
	}
	sb.WriteString("\n")
}
