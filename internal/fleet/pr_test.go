package fleet

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bjulian5/fleet/internal/gh"
	"github.com/bjulian5/fleet/internal/runner"
	"github.com/bjulian5/fleet/internal/testutil"
)

const prURL = "https://github.com/acme/ren-api/pull/7"

func TestCreatePR(t *testing.T) {
	t.Run("refuses default branch", func(t *testing.T) {
		exec := testutil.NewRecordingExecutor()
		exec.Responses["git rev-parse --abbrev-ref HEAD"] = testutil.Response{Output: "master"}
		host := &MockHost{}

		res := New(exec, WithHost(host)).CreatePR(context.Background(), existingRepo(t), PROptions{Title: "x"})

		assert.Equal(t, OutcomeRefused, res.Outcome)
		assert.ErrorIs(t, res.Err, ErrDefaultBranch)
		assert.False(t, exec.Called("git push"))
		host.AssertNotCalled(t, "CreatePR", mock.Anything, mock.Anything)
	})

	t.Run("pushes branch without upstream", func(t *testing.T) {
		exec := testutil.NewRecordingExecutor()
		exec.Responses["git rev-parse --abbrev-ref HEAD"] = testutil.Response{Output: "feature/REN-9"}
		exec.Responses["git rev-parse --abbrev-ref --symbolic-full-name"] = testutil.Response{
			Err: &runner.CommandError{ExitCode: 128, Message: "fatal: no upstream configured"},
		}
		repo := existingRepo(t)
		want := gh.PRSpec{Title: "REN-9 Fix", Base: "develop", Head: "feature/REN-9", Draft: true}

		host := &MockHost{}
		host.On("DefaultBranch", repo.Path).Return("develop", nil)
		host.On("CreatePR", repo.Path, want).Return(prURL, nil)

		res := New(exec, WithHost(host)).CreatePR(context.Background(), repo, PROptions{Title: "REN-9 Fix", Draft: true})

		require.True(t, res.Success(), res.ErrorText())
		assert.True(t, res.Value.Pushed)
		assert.True(t, exec.Called("git push -u origin feature/REN-9"))
		assert.Equal(t, prURL, res.Value.URL)
		host.AssertExpectations(t)
	})

	t.Run("falls back to main", func(t *testing.T) {
		exec := testutil.NewRecordingExecutor()
		exec.Responses["git rev-parse --abbrev-ref HEAD"] = testutil.Response{Output: "feature/REN-9"}
		repo := existingRepo(t)

		host := &MockHost{}
		host.On("DefaultBranch", repo.Path).Return("", errors.New("gh: not logged in"))
		host.On("CreatePR", repo.Path, mock.MatchedBy(func(s gh.PRSpec) bool { return s.Base == "main" })).Return(prURL, nil)

		res := New(exec, WithHost(host)).CreatePR(context.Background(), repo, PROptions{Title: "t"})

		require.True(t, res.Success(), res.ErrorText())
		assert.False(t, res.Value.Pushed)
		assert.Equal(t, "main", res.Value.Base)
		host.AssertExpectations(t)
	})

	t.Run("host failure", func(t *testing.T) {
		exec := testutil.NewRecordingExecutor()
		exec.Responses["git rev-parse --abbrev-ref HEAD"] = testutil.Response{Output: "feature/REN-9"}
		repo := existingRepo(t)

		host := &MockHost{}
		host.On("DefaultBranch", repo.Path).Return("main", nil)
		host.On("CreatePR", repo.Path, mock.Anything).Return("", errors.New("a pull request already exists"))

		res := New(exec, WithHost(host)).CreatePR(context.Background(), repo, PROptions{Title: "t"})

		assert.Equal(t, OutcomeCommandFailed, res.Outcome)
		assert.Contains(t, res.ErrorText(), "already exists")
	})
}

func TestPullRequests(t *testing.T) {
	repo := existingRepo(t)
	opts := gh.ListOptions{State: "open", Search: "REN-100", Limit: 10}
	prs := []gh.PullRequest{{Number: 3, Title: "REN-100 x"}}

	host := &MockHost{}
	host.On("ListPRs", repo.Path, opts).Return(prs, nil)
	host.On("GetPR", repo.Path, 3).Return(gh.PullRequest{Number: 3, Additions: 12}, nil)

	o := New(testutil.NewRecordingExecutor(), WithHost(host))

	list := o.PullRequests(context.Background(), repo, opts)
	require.True(t, list.Success())
	assert.Equal(t, prs, list.Value)

	detail := o.PullRequest(context.Background(), repo, 3)
	require.True(t, detail.Success())
	assert.Equal(t, 12, detail.Value.Additions)
	host.AssertExpectations(t)
}

func TestPullRequestsWithoutHost(t *testing.T) {
	res := New(testutil.NewRecordingExecutor()).PullRequests(context.Background(), existingRepo(t), gh.ListOptions{})
	assert.Equal(t, OutcomeCommandFailed, res.Outcome)
}
