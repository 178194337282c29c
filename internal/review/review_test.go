package review

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjulian5/fleet/internal/gh"
)

func TestExtractKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"REN-100: add invoices", "REN-100"},
		{"feature/ren-42", "REN-42"},
		{"Fix REN-7 regression", "REN-7"},
		{"feature/REN-123_invoice-export", "REN-123"},
		{"REN-9", "REN-9"},
		{"Fix utf-8 decoding in export", ""},
		{"Upgrade to php-8 runtime", ""},
		{"Fix ABC-7 regression", ""},
		{"XREN-12 is not ours", ""},
		{"Cleanup", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractKey(tt.in))
		})
	}
}

func TestAggregateIgnoresVersionWords(t *testing.T) {
	entries := []Entry{
		{Service: "api", PR: gh.PullRequest{Number: 1, Title: "Upgrade to php-8 runtime"}},
		{Service: "billing", PR: gh.PullRequest{Number: 2, Title: "Upgrade to php-8 runtime"}},
		{Service: "frontend", PR: gh.PullRequest{Number: 3, Title: "Fix utf-8 decoding in export", HeadRef: "feature/REN-123_invoice-export"}},
	}

	report := Aggregate("", entries)

	require.Len(t, report.Groups, 1)
	assert.Equal(t, "REN-123", report.Groups[0].Key)
	assert.False(t, report.Groups[0].MultiService)
	assert.Len(t, report.Ungrouped, 2)
	assert.Empty(t, report.MultiServiceGroups())
}

func TestKeyForFallsBackToBranch(t *testing.T) {
	pr := gh.PullRequest{Title: "Add endpoint", HeadRef: "feature/REN-5"}
	assert.Equal(t, "REN-5", KeyFor(pr))
}

func TestAggregate(t *testing.T) {
	entries := []Entry{
		{Service: "api", PR: gh.PullRequest{Number: 1, Title: "REN-100 add endpoint", FilesChanged: 3, Additions: 40, Deletions: 2}},
		{Service: "frontend", PR: gh.PullRequest{Number: 9, Title: "Wire new endpoint", HeadRef: "feature/REN-100", FilesChanged: 2, Additions: 10, Deletions: 1}},
		{Service: "api", PR: gh.PullRequest{Number: 2, Title: "REN-050 tidy", FilesChanged: 1, Additions: 1, Deletions: 1}},
		{Service: "billing", PR: gh.PullRequest{Number: 4, Title: "Cleanup", FilesChanged: 5, Additions: 0, Deletions: 30}},
	}

	report := Aggregate("", entries)

	assert.Equal(t, Totals{PRs: 4, Files: 11, Additions: 51, Deletions: 34}, report.Totals)
	require.Len(t, report.Groups, 2)

	assert.Equal(t, "REN-050", report.Groups[0].Key)
	assert.False(t, report.Groups[0].MultiService)

	ren100 := report.Groups[1]
	assert.Equal(t, "REN-100", ren100.Key)
	assert.True(t, ren100.MultiService)
	assert.Equal(t, []string{"api", "frontend"}, ren100.Services)
	assert.Len(t, ren100.Entries, 2)

	require.Len(t, report.Ungrouped, 1)
	assert.Equal(t, "Cleanup", report.Ungrouped[0].PR.Title)
	assert.Len(t, report.MultiServiceGroups(), 1)
}

func TestAggregateSameServiceIsNotMultiService(t *testing.T) {
	report := Aggregate("REN-1", []Entry{
		{Service: "api", PR: gh.PullRequest{Number: 1, Title: "REN-1 part one"}},
		{Service: "api", PR: gh.PullRequest{Number: 2, Title: "REN-1 part two"}},
	})
	require.Len(t, report.Groups, 1)
	assert.False(t, report.Groups[0].MultiService)
}

func TestBuildPrompt(t *testing.T) {
	report := Aggregate("REN-100", []Entry{
		{Service: "api", PR: gh.PullRequest{Number: 1, Title: "REN-100 api", State: "open", Author: "dev", Body: "Adds the endpoint", Reviews: []string{"APPROVED"}}},
		{Service: "cms", PR: gh.PullRequest{Number: 3, Title: "REN-100 cms", State: "open"}},
	})

	prompt := BuildPrompt(report)

	assert.Contains(t, prompt, "ticket REN-100")
	assert.Contains(t, prompt, "multi-service: api, cms")
	assert.Contains(t, prompt, "[api] #1 REN-100 api")
	assert.Contains(t, prompt, "Reviews: APPROVED")
	assert.Contains(t, prompt, "Adds the endpoint")
}

type stubAnalyzer struct {
	out string
	err error
}

func (s stubAnalyzer) Available() bool { return true }

func (s stubAnalyzer) Analyze(ctx context.Context, prompt string) (string, error) {
	return s.out, s.err
}

func TestSave(t *testing.T) {
	report := Aggregate("REN-100", []Entry{{Service: "api", PR: gh.PullRequest{Number: 1, Title: "REN-100 x"}}})

	t.Run("without analyzer writes prompt", func(t *testing.T) {
		dir := t.TempDir()
		saved, err := Save(context.Background(), dir, report, Unavailable{})
		require.NoError(t, err)

		assert.False(t, saved.Analyzed)
		assert.Equal(t, filepath.Join(dir, "review-REN-100-prompt.md"), saved.Path)
		data, err := os.ReadFile(saved.Path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "REN-100 x")
	})

	t.Run("with analyzer writes analysis", func(t *testing.T) {
		dir := t.TempDir()
		saved, err := Save(context.Background(), dir, report, stubAnalyzer{out: "Ship it"})
		require.NoError(t, err)

		assert.True(t, saved.Analyzed)
		assert.Equal(t, filepath.Join(dir, "review-REN-100.md"), saved.Path)
		data, err := os.ReadFile(saved.Path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "Ship it")
	})

	t.Run("analyzer error", func(t *testing.T) {
		_, err := Save(context.Background(), t.TempDir(), report, stubAnalyzer{err: errors.New("quota")})
		assert.EqualError(t, err, "quota")
	})
}

func TestOpenAIAnalyzer(t *testing.T) {
	var got openai.ChatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","model":"gpt-4o","choices":[{"index":0,"message":{"role":"assistant","content":"  Deploy api first.  "},"finish_reason":"stop"}],"usage":{"total_tokens":12}}`))
	}))
	defer server.Close()

	cfg := openai.DefaultConfig("sk-test")
	cfg.BaseURL = server.URL + "/v1"
	a := newOpenAIAnalyzer(cfg, "", 512, nil)

	out, err := a.Analyze(context.Background(), "review this")
	require.NoError(t, err)
	assert.Equal(t, "Deploy api first.", out)
	assert.Equal(t, openai.GPT4o, got.Model)
	assert.Equal(t, 512, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "review this", got.Messages[1].Content)
}

func TestJiraLookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/2/issue/REN-100", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "dev@example.com", user)
		assert.Equal(t, "token", pass)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"key":"REN-100","fields":{"summary":"Invoices","status":{"name":"In Review"},"assignee":{"displayName":"Sam"}}}`))
	}))
	defer server.Close()

	lookup, err := NewJiraLookup(server.URL, "dev@example.com", "token", nil)
	require.NoError(t, err)

	ticket, err := lookup.Ticket("REN-100")
	require.NoError(t, err)
	assert.Equal(t, Ticket{Key: "REN-100", Summary: "Invoices", Status: "In Review", Assignee: "Sam"}, ticket)
}
