package gh

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjulian5/fleet/internal/testutil"
)

func TestCLIHost_ListPRs(t *testing.T) {
	exec := testutil.NewRecordingExecutor()
	exec.Responses["gh pr list"] = testutil.Response{Output: `[
		{"number": 42, "title": "REN-100: fix login", "state": "OPEN", "url": "https://github.com/acme/ren-auth/pull/42",
		 "isDraft": true, "author": {"login": "dana"}, "headRefName": "feature/REN-100", "createdAt": "2024-03-01T10:00:00Z"}
	]`}

	host := NewCLIHost(exec)
	prs, err := host.ListPRs(context.Background(), "/srv/ren-auth", ListOptions{State: "all", Search: "REN-100", Limit: 50})
	require.NoError(t, err)
	require.Len(t, prs, 1)

	assert.Equal(t, 42, prs[0].Number)
	assert.Equal(t, StateOpen, prs[0].State)
	assert.True(t, prs[0].IsDraft)
	assert.Equal(t, "dana", prs[0].Author)
	assert.Equal(t, "feature/REN-100", prs[0].HeadRef)
	assert.Equal(t, 2024, prs[0].CreatedAt.Year())

	require.Len(t, exec.Calls, 1)
	assert.Contains(t, exec.Calls[0], "--state all")
	assert.Contains(t, exec.Calls[0], "--search REN-100")
	assert.Contains(t, exec.Calls[0], "--limit 50")
}

func TestCLIHost_GetPR(t *testing.T) {
	exec := testutil.NewRecordingExecutor()
	exec.Responses["gh pr view 7"] = testutil.Response{Output: `{
		"number": 7, "title": "Cleanup", "state": "MERGED", "url": "u", "author": {"login": "lee"},
		"additions": 10, "deletions": 3, "changedFiles": 2,
		"reviews": [{"state": "COMMENTED"}, {"state": "APPROVED"}]
	}`}

	pr, err := NewCLIHost(exec).GetPR(context.Background(), "/srv/x", 7)
	require.NoError(t, err)
	assert.Equal(t, StateMerged, pr.State)
	assert.Equal(t, 2, pr.FilesChanged)
	assert.Equal(t, 10, pr.Additions)
	assert.Equal(t, 3, pr.Deletions)
	assert.Equal(t, []string{"COMMENTED", "APPROVED"}, pr.Reviews)
	assert.Equal(t, "APPROVED", pr.ReviewDecision())
}

func TestCLIHost_CreatePR(t *testing.T) {
	exec := testutil.NewRecordingExecutor()
	exec.Responses["gh pr create"] = testutil.Response{Output: "Creating pull request...\nhttps://github.com/acme/ren-api/pull/9"}

	url, err := NewCLIHost(exec).CreatePR(context.Background(), "/srv/ren-api", PRSpec{
		Title: "REN-9: thing", Body: "body", Base: "develop", Head: "feature/REN-9", Draft: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/acme/ren-api/pull/9", url)
	assert.True(t, exec.Called("gh pr create --title REN-9: thing --body body --base develop --head feature/REN-9 --draft"))
}

func TestCLIHost_DefaultBranch(t *testing.T) {
	exec := testutil.NewRecordingExecutor()
	exec.Responses["gh repo view"] = testutil.Response{Output: "develop\n"}

	branch, err := NewCLIHost(exec).DefaultBranch(context.Background(), "/srv/x")
	require.NoError(t, err)
	assert.Equal(t, "develop", branch)
}

func TestReviewDecision(t *testing.T) {
	assert.Equal(t, "", PullRequest{}.ReviewDecision())
	assert.Equal(t, "CHANGES_REQUESTED", PullRequest{Reviews: []string{"APPROVED", "CHANGES_REQUESTED"}}.ReviewDecision())
}
