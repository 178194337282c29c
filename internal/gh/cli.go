package gh

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bjulian5/fleet/internal/runner"
)

const listFields = "number,title,body,state,url,isDraft,author,headRefName,createdAt"

// CLIHost provides GitHub operations via the gh CLI
type CLIHost struct {
	exec runner.Executor
}

// NewCLIHost creates a gh CLI backed host
func NewCLIHost(exec runner.Executor) *CLIHost {
	return &CLIHost{exec: exec}
}

// Kind identifies the host in output
func (c *CLIHost) Kind() string { return "gh" }

// prJSON mirrors the fields we request from gh's JSON output
type prJSON struct {
	Number       int       `json:"number"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	State        string    `json:"state"`
	URL          string    `json:"url"`
	IsDraft      bool      `json:"isDraft"`
	HeadRefName  string    `json:"headRefName"`
	CreatedAt    time.Time `json:"createdAt"`
	Additions    int       `json:"additions"`
	Deletions    int       `json:"deletions"`
	ChangedFiles int       `json:"changedFiles"`
	Author       struct {
		Login string `json:"login"`
	} `json:"author"`
	Reviews []struct {
		State string `json:"state"`
	} `json:"reviews"`
}

func (p *prJSON) toPR() PullRequest {
	pr := PullRequest{
		Number:       p.Number,
		Title:        p.Title,
		Body:         p.Body,
		State:        strings.ToUpper(p.State),
		URL:          p.URL,
		IsDraft:      p.IsDraft,
		Author:       p.Author.Login,
		HeadRef:      p.HeadRefName,
		CreatedAt:    p.CreatedAt,
		FilesChanged: p.ChangedFiles,
		Additions:    p.Additions,
		Deletions:    p.Deletions,
	}
	for _, r := range p.Reviews {
		pr.Reviews = append(pr.Reviews, r.State)
	}
	return pr
}

func (c *CLIHost) execGH(ctx context.Context, dir string, args ...string) (string, error) {
	out, err := c.exec.Run(ctx, dir, "gh", args...)
	if err != nil {
		return "", fmt.Errorf("gh CLI error: %w", err)
	}
	return out, nil
}

// DefaultBranch returns the repository's default branch
func (c *CLIHost) DefaultBranch(ctx context.Context, dir string) (string, error) {
	out, err := c.execGH(ctx, dir, "repo", "view", "--json", "defaultBranchRef", "--jq", ".defaultBranchRef.name")
	if err != nil {
		return "", fmt.Errorf("failed to get default branch: %w", err)
	}
	branch := strings.TrimSpace(out)
	if branch == "" {
		return "", fmt.Errorf("failed to get default branch: empty response")
	}
	return branch, nil
}

// CreatePR creates a PR and returns its URL (gh prints it on stdout)
func (c *CLIHost) CreatePR(ctx context.Context, dir string, spec PRSpec) (string, error) {
	args := []string{
		"pr", "create",
		"--title", spec.Title,
		"--body", spec.Body,
		"--base", spec.Base,
		"--head", spec.Head,
	}
	if spec.Draft {
		args = append(args, "--draft")
	}

	out, err := c.execGH(ctx, dir, args...)
	if err != nil {
		return "", fmt.Errorf("failed to create PR: %w", err)
	}
	return lastLine(out), nil
}

// ListPRs lists PRs, optionally filtered by a search string
func (c *CLIHost) ListPRs(ctx context.Context, dir string, opts ListOptions) ([]PullRequest, error) {
	args := []string{"pr", "list", "--json", listFields}
	if opts.State != "" {
		args = append(args, "--state", opts.State)
	}
	if opts.Search != "" {
		args = append(args, "--search", opts.Search)
	}
	if opts.Limit > 0 {
		args = append(args, "--limit", strconv.Itoa(opts.Limit))
	}

	out, err := c.execGH(ctx, dir, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list PRs: %w", err)
	}

	var raw []prJSON
	if err := json.Unmarshal([]byte(out), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse PR list: %w", err)
	}

	prs := make([]PullRequest, 0, len(raw))
	for i := range raw {
		prs = append(prs, raw[i].toPR())
	}
	return prs, nil
}

// GetPR fetches a PR including change counts and reviews
func (c *CLIHost) GetPR(ctx context.Context, dir string, number int) (PullRequest, error) {
	out, err := c.execGH(ctx, dir,
		"pr", "view", strconv.Itoa(number),
		"--json", listFields+",additions,deletions,changedFiles,reviews",
	)
	if err != nil {
		return PullRequest{}, fmt.Errorf("failed to fetch PR #%d: %w", number, err)
	}

	var raw prJSON
	if err := json.Unmarshal([]byte(out), &raw); err != nil {
		return PullRequest{}, fmt.Errorf("failed to parse PR JSON: %w", err)
	}
	return raw.toPR(), nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
