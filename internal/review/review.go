// Package review aggregates pull requests across services by ticket key and
// prepares them for analysis.
package review

import (
	"regexp"
	"sort"
	"strings"

	"github.com/bjulian5/fleet/internal/fleet"
	"github.com/bjulian5/fleet/internal/gh"
)

// Keys belong to the tracker project and stand apart from letters and digits,
// so "feature/REN-12_export" matches while "utf-8" and "XREN-12" do not.
var ticketKey = regexp.MustCompile(`(?i)(?:^|[^a-z0-9])(` + fleet.TicketPrefix + `-\d+)(?:\D|$)`)

// ExtractKey returns the first ticket key in s, upper-cased, or ""
func ExtractKey(s string) string {
	m := ticketKey.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return strings.ToUpper(m[1])
}

// KeyFor prefers a key in the title and falls back to the head branch
func KeyFor(pr gh.PullRequest) string {
	if key := ExtractKey(pr.Title); key != "" {
		return key
	}
	return ExtractKey(pr.HeadRef)
}

// Entry is one PR and the service it belongs to
type Entry struct {
	Service string
	PR      gh.PullRequest
}

// Group collects the PRs that share a ticket key
type Group struct {
	Key          string
	Entries      []Entry
	Services     []string
	MultiService bool
}

// Totals sums change sizes over every PR in a report
type Totals struct {
	PRs       int
	Files     int
	Additions int
	Deletions int
}

// Report is the aggregated view of a review run
type Report struct {
	Ticket    string
	Groups    []Group
	Ungrouped []Entry
	Totals    Totals
}

// MultiServiceGroups returns the groups spanning more than one service
func (r Report) MultiServiceGroups() []Group {
	var out []Group
	for _, g := range r.Groups {
		if g.MultiService {
			out = append(out, g)
		}
	}
	return out
}

// Aggregate groups entries by ticket key. PRs without a key end up in
// Ungrouped. Groups are sorted by key; entry order within a group follows
// the input.
func Aggregate(ticket string, entries []Entry) Report {
	report := Report{Ticket: ticket}
	index := map[string]int{}

	for _, e := range entries {
		report.Totals.PRs++
		report.Totals.Files += e.PR.FilesChanged
		report.Totals.Additions += e.PR.Additions
		report.Totals.Deletions += e.PR.Deletions

		key := KeyFor(e.PR)
		if key == "" {
			report.Ungrouped = append(report.Ungrouped, e)
			continue
		}

		i, ok := index[key]
		if !ok {
			i = len(report.Groups)
			index[key] = i
			report.Groups = append(report.Groups, Group{Key: key})
		}
		g := &report.Groups[i]
		g.Entries = append(g.Entries, e)
		if !contains(g.Services, e.Service) {
			g.Services = append(g.Services, e.Service)
		}
		g.MultiService = len(g.Services) > 1
	}

	sort.SliceStable(report.Groups, func(i, j int) bool {
		return report.Groups[i].Key < report.Groups[j].Key
	})
	return report
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
