package gh

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v57/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/bjulian5/fleet/internal/git"
)

// SlugResolver maps a checkout directory to its GitHub owner and repo name
type SlugResolver func(dir string) (owner string, repo string, err error)

// ResolveSlugFromRemote reads the origin remote with go-git
func ResolveSlugFromRemote(dir string) (string, string, error) {
	return git.NewClient(nil, dir).RepoSlug()
}

// APIHost provides GitHub operations via the REST API
type APIHost struct {
	client  *github.Client
	resolve SlugResolver
	logger  *zap.Logger
}

// NewAPIHost creates an API host authenticated with token. A nil resolver
// reads owner/repo from the checkout's origin remote.
func NewAPIHost(token string, resolve SlugResolver, logger *zap.Logger) *APIHost {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)
	return newAPIHostWithClient(github.NewClient(tc), resolve, logger)
}

func newAPIHostWithClient(client *github.Client, resolve SlugResolver, logger *zap.Logger) *APIHost {
	if resolve == nil {
		resolve = ResolveSlugFromRemote
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &APIHost{client: client, resolve: resolve, logger: logger}
}

// newAPIHostForURL points the client at a test server
func newAPIHostForURL(baseURL string, httpClient *http.Client, resolve SlugResolver) (*APIHost, error) {
	client, err := github.NewClient(httpClient).WithEnterpriseURLs(baseURL, baseURL)
	if err != nil {
		return nil, err
	}
	return newAPIHostWithClient(client, resolve, nil), nil
}

// Kind identifies the host in output
func (a *APIHost) Kind() string { return "github-api" }

// DefaultBranch returns the repository's default branch
func (a *APIHost) DefaultBranch(ctx context.Context, dir string) (string, error) {
	owner, repo, err := a.resolve(dir)
	if err != nil {
		return "", err
	}
	r, _, err := a.client.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return "", fmt.Errorf("failed to get repository %s/%s: %w", owner, repo, err)
	}
	return r.GetDefaultBranch(), nil
}

// CreatePR creates a pull request and returns its URL
func (a *APIHost) CreatePR(ctx context.Context, dir string, spec PRSpec) (string, error) {
	owner, repo, err := a.resolve(dir)
	if err != nil {
		return "", err
	}

	pr, _, err := a.client.PullRequests.Create(ctx, owner, repo, &github.NewPullRequest{
		Title: github.String(spec.Title),
		Head:  github.String(spec.Head),
		Base:  github.String(spec.Base),
		Body:  github.String(spec.Body),
		Draft: github.Bool(spec.Draft),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create pull request: %w", err)
	}

	a.logger.Info("created pull request",
		zap.String("owner", owner),
		zap.String("repo", repo),
		zap.Int("pr_number", pr.GetNumber()),
		zap.String("pr_url", pr.GetHTMLURL()),
	)
	return pr.GetHTMLURL(), nil
}

// ListPRs lists PRs. With a search string it uses the issue search API,
// otherwise the pulls listing.
func (a *APIHost) ListPRs(ctx context.Context, dir string, opts ListOptions) ([]PullRequest, error) {
	owner, repo, err := a.resolve(dir)
	if err != nil {
		return nil, err
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 30
	}

	if opts.Search != "" {
		return a.search(ctx, owner, repo, opts, limit)
	}

	state := strings.ToLower(opts.State)
	apiState := "open"
	switch state {
	case "closed", "all":
		apiState = state
	case "merged":
		apiState = "closed"
	}

	pulls, _, err := a.client.PullRequests.List(ctx, owner, repo, &github.PullRequestListOptions{
		State:       apiState,
		ListOptions: github.ListOptions{PerPage: limit},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pull requests: %w", err)
	}

	prs := make([]PullRequest, 0, len(pulls))
	for _, p := range pulls {
		pr := fromGitHub(p)
		if state == "merged" && pr.State != StateMerged {
			continue
		}
		prs = append(prs, pr)
	}
	return prs, nil
}

func (a *APIHost) search(ctx context.Context, owner, repo string, opts ListOptions, limit int) ([]PullRequest, error) {
	query := fmt.Sprintf("repo:%s/%s is:pr %s", owner, repo, opts.Search)
	switch strings.ToLower(opts.State) {
	case "open":
		query += " is:open"
	case "closed":
		query += " is:closed"
	case "merged":
		query += " is:merged"
	}

	result, _, err := a.client.Search.Issues(ctx, query, &github.SearchOptions{
		ListOptions: github.ListOptions{PerPage: limit},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search pull requests: %w", err)
	}

	prs := []PullRequest{}
	for _, issue := range result.Issues {
		if !issue.IsPullRequest() {
			continue
		}
		pr, err := a.getPR(ctx, owner, repo, issue.GetNumber(), false)
		if err != nil {
			return nil, err
		}
		prs = append(prs, pr)
	}
	return prs, nil
}

// GetPR fetches a PR including change counts and reviews
func (a *APIHost) GetPR(ctx context.Context, dir string, number int) (PullRequest, error) {
	owner, repo, err := a.resolve(dir)
	if err != nil {
		return PullRequest{}, err
	}
	return a.getPR(ctx, owner, repo, number, true)
}

func (a *APIHost) getPR(ctx context.Context, owner, repo string, number int, withReviews bool) (PullRequest, error) {
	p, _, err := a.client.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return PullRequest{}, fmt.Errorf("failed to fetch PR #%d: %w", number, err)
	}
	pr := fromGitHub(p)

	if withReviews {
		reviews, _, err := a.client.PullRequests.ListReviews(ctx, owner, repo, number, nil)
		if err != nil {
			return PullRequest{}, fmt.Errorf("failed to list reviews for PR #%d: %w", number, err)
		}
		for _, r := range reviews {
			pr.Reviews = append(pr.Reviews, r.GetState())
		}
	}
	return pr, nil
}

func fromGitHub(p *github.PullRequest) PullRequest {
	state := strings.ToUpper(p.GetState())
	if p.GetMerged() || p.MergedAt != nil {
		state = StateMerged
	}
	return PullRequest{
		Number:       p.GetNumber(),
		Title:        p.GetTitle(),
		Body:         p.GetBody(),
		State:        state,
		URL:          p.GetHTMLURL(),
		IsDraft:      p.GetDraft(),
		Author:       p.GetUser().GetLogin(),
		HeadRef:      p.GetHead().GetRef(),
		CreatedAt:    p.GetCreatedAt().Time,
		FilesChanged: p.GetChangedFiles(),
		Additions:    p.GetAdditions(),
		Deletions:    p.GetDeletions(),
	}
}
