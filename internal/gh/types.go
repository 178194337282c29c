package gh

import "time"

// PR states as reported by GitHub
const (
	StateOpen   = "OPEN"
	StateMerged = "MERGED"
	StateClosed = "CLOSED"
)

// PRSpec defines the parameters for creating a PR
type PRSpec struct {
	Title string // PR title
	Body  string // PR description
	Base  string // base branch name
	Head  string // head branch name
	Draft bool   // whether PR should be a draft
}

// ListOptions filters a PR listing
type ListOptions struct {
	State  string // "open", "closed", "merged" or "all"
	Search string // free-text search, e.g. a ticket key; empty lists everything
	Limit  int
}

// PullRequest is a PR as seen by the review and listing commands
type PullRequest struct {
	Number       int
	Title        string
	Body         string
	State        string // OPEN, MERGED or CLOSED
	URL          string
	IsDraft      bool
	Author       string
	HeadRef      string
	CreatedAt    time.Time
	FilesChanged int
	Additions    int
	Deletions    int
	Reviews      []string // review states, e.g. APPROVED, CHANGES_REQUESTED
}

// ReviewDecision summarises review states: CHANGES_REQUESTED wins over
// APPROVED; no reviews yields "".
func (p PullRequest) ReviewDecision() string {
	decision := ""
	for _, r := range p.Reviews {
		switch r {
		case "CHANGES_REQUESTED":
			return r
		case "APPROVED":
			decision = r
		}
	}
	return decision
}
