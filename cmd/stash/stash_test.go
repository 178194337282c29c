package stash

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bjulian5/fleet/internal/common"
	"github.com/bjulian5/fleet/internal/config"
	"github.com/bjulian5/fleet/internal/fleet"
	"github.com/bjulian5/fleet/internal/registry"
	"github.com/bjulian5/fleet/internal/runner"
	"github.com/bjulian5/fleet/internal/testutil"
	"github.com/bjulian5/fleet/internal/ui"
)

func TestStash(t *testing.T) {
	testCases := []struct {
		desc        string
		action      string
		setup       func(t *testing.T, repo *testutil.Repo)
		verify      func(t *testing.T, repo *testutil.Repo, out string)
		expectError string
	}{
		{
			desc:        "unknown action",
			action:      "drop",
			expectError: `unknown stash action "drop"`,
		},
		{
			desc:   "save stashes dirty work",
			action: ActionSave,
			setup: func(t *testing.T, repo *testutil.Repo) {
				repo.WriteFile(t, "README.md", "changed\n")
			},
			verify: func(t *testing.T, repo *testutil.Repo, out string) {
				assert.Contains(t, testutil.Git(t, repo.Dir, "stash", "list"), "wip")
				assert.Contains(t, out, string(fleet.StashSaved))
			},
		},
		{
			desc:   "save on a clean tree",
			action: ActionSave,
			verify: func(t *testing.T, repo *testutil.Repo, out string) {
				assert.Empty(t, testutil.Git(t, repo.Dir, "stash", "list"))
				assert.Contains(t, out, string(fleet.StashNoChanges))
			},
		},
		{
			desc:   "pop with nothing stashed",
			action: ActionPop,
			verify: func(t *testing.T, repo *testutil.Repo, out string) {
				assert.Contains(t, out, string(fleet.StashNothingToPop))
				assert.Contains(t, out, "1 succeeded, 0 failed")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			root := t.TempDir()
			repo := testutil.NewRepoAt(t, filepath.Join(t.TempDir(), "api.git"), filepath.Join(root, "ren-api"))
			if tc.setup != nil {
				tc.setup(t, repo)
			}

			var out bytes.Buffer
			ui.Stdout = &out
			t.Cleanup(func() { ui.Stdout = os.Stdout })

			run := runner.New("", nil)
			env := &common.Env{
				Config:   config.Config{RepoRoot: root},
				Logger:   zap.NewNop(),
				Registry: registry.Build(root),
				Runner:   run,
				Fleet:    fleet.New(run),
			}

			cmd := &Command{Env: env, Action: tc.action, Message: "wip", Service: "api"}
			err := cmd.Run(context.Background())

			if tc.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectError)
				return
			}
			require.NoError(t, err)
			if tc.verify != nil {
				tc.verify(t, repo, out.String())
			}
		})
	}
}
