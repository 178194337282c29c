package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Repo is a working clone with a bare "origin" next to it
type Repo struct {
	Dir    string // working clone
	Origin string // bare remote
}

// NewRepo creates a bare origin with an initial commit on main and a clone of it
func NewRepo(t *testing.T) *Repo {
	t.Helper()
	base := t.TempDir()
	return NewRepoAt(t, filepath.Join(base, "origin.git"), filepath.Join(base, "work"))
}

// NewRepoAt is NewRepo with explicit locations
func NewRepoAt(t *testing.T, origin string, dir string) *Repo {
	t.Helper()

	require.NoError(t, os.MkdirAll(origin, 0755))
	Git(t, origin, "init", "--bare", "--initial-branch=main")

	require.NoError(t, os.MkdirAll(dir, 0755))
	Git(t, dir, "init", "--initial-branch=main")
	configureUser(t, dir)
	Git(t, dir, "remote", "add", "origin", origin)

	repo := &Repo{Dir: dir, Origin: origin}
	repo.Commit(t, "README.md", "# service\n", "Initial commit")
	Git(t, dir, "push", "-u", "origin", "main")
	return repo
}

// Git runs git in dir and fails the test on error
func Git(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %s failed: %s", strings.Join(args, " "), string(output))
	return strings.TrimSpace(string(output))
}

// WriteFile writes content to a path relative to the clone
func (r *Repo) WriteFile(t *testing.T, name string, content string) {
	t.Helper()
	path := filepath.Join(r.Dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// Commit writes a file and commits it
func (r *Repo) Commit(t *testing.T, name string, content string, message string) {
	t.Helper()
	r.WriteFile(t, name, content)
	Git(t, r.Dir, "add", name)
	Git(t, r.Dir, "commit", "-m", message)
}

// PushBranch creates branch from HEAD in the origin without checking it out locally
func (r *Repo) PushBranch(t *testing.T, branch string) {
	t.Helper()
	Git(t, r.Dir, "push", "origin", "HEAD:refs/heads/"+branch)
}

// CurrentBranch returns the checked out branch of the clone
func (r *Repo) CurrentBranch(t *testing.T) string {
	t.Helper()
	return Git(t, r.Dir, "rev-parse", "--abbrev-ref", "HEAD")
}

// CloneAnother makes a second clone of origin, configured for commits
func (r *Repo) CloneAnother(t *testing.T) string {
	t.Helper()
	parent := t.TempDir()
	dir := filepath.Join(parent, "other")
	Git(t, parent, "clone", r.Origin, dir)
	configureUser(t, dir)
	return dir
}

func configureUser(t *testing.T, dir string) {
	Git(t, dir, "config", "user.email", "test@example.com")
	Git(t, dir, "config", "user.name", "Test User")
	Git(t, dir, "config", "commit.gpgsign", "false")
}
