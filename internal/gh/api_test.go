package gh

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPIHost(t *testing.T, mux *http.ServeMux) *APIHost {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	host, err := newAPIHostForURL(server.URL+"/", server.Client(), func(dir string) (string, string, error) {
		return "acme", "ren-api", nil
	})
	require.NoError(t, err)
	return host
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestAPIHost_ListPRs_MergedFilter(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/repos/acme/ren-api/pulls", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "closed", r.URL.Query().Get("state"))
		writeJSON(t, w, []map[string]any{
			{"number": 1, "title": "REN-1: merged", "state": "closed", "merged_at": "2024-01-02T00:00:00Z"},
			{"number": 2, "title": "REN-2: abandoned", "state": "closed"},
		})
	})

	prs, err := newTestAPIHost(t, mux).ListPRs(context.Background(), "/srv/ren-api", ListOptions{State: "merged"})
	require.NoError(t, err)
	require.Len(t, prs, 1)
	assert.Equal(t, 1, prs[0].Number)
	assert.Equal(t, StateMerged, prs[0].State)
}

func TestAPIHost_GetPR(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/repos/acme/ren-api/pulls/5", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"number": 5, "title": "REN-5: api", "state": "open", "draft": true,
			"html_url": "https://github.com/acme/ren-api/pull/5",
			"user":     map[string]any{"login": "sam"},
			"head":     map[string]any{"ref": "feature/REN-5"},
			"additions": 12, "deletions": 4, "changed_files": 3,
		})
	})
	mux.HandleFunc("/api/v3/repos/acme/ren-api/pulls/5/reviews", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []map[string]any{{"state": "APPROVED"}})
	})

	pr, err := newTestAPIHost(t, mux).GetPR(context.Background(), "/srv/ren-api", 5)
	require.NoError(t, err)
	assert.Equal(t, StateOpen, pr.State)
	assert.True(t, pr.IsDraft)
	assert.Equal(t, "sam", pr.Author)
	assert.Equal(t, "feature/REN-5", pr.HeadRef)
	assert.Equal(t, 3, pr.FilesChanged)
	assert.Equal(t, 12, pr.Additions)
	assert.Equal(t, []string{"APPROVED"}, pr.Reviews)
}

func TestAPIHost_CreatePR(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/repos/acme/ren-api/pulls", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var req map[string]any
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "feature/REN-5", req["head"])
		assert.Equal(t, "develop", req["base"])
		assert.Equal(t, true, req["draft"])

		w.WriteHeader(http.StatusCreated)
		writeJSON(t, w, map[string]any{"number": 6, "html_url": "https://github.com/acme/ren-api/pull/6"})
	})

	url, err := newTestAPIHost(t, mux).CreatePR(context.Background(), "/srv/ren-api", PRSpec{
		Title: "REN-5: api", Head: "feature/REN-5", Base: "develop", Draft: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/acme/ren-api/pull/6", url)
}

func TestAPIHost_DefaultBranch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/repos/acme/ren-api", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"default_branch": "develop"})
	})

	branch, err := newTestAPIHost(t, mux).DefaultBranch(context.Background(), "/srv/ren-api")
	require.NoError(t, err)
	assert.Equal(t, "develop", branch)
}
