package update

import (
	"context"
	"encoding/json"
	"io"
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

func newEnv(t *testing.T, root string) *common.Env {
	t.Helper()
	ui.Stdout, ui.Stderr = io.Discard, io.Discard
	t.Cleanup(func() { ui.Stdout, ui.Stderr = os.Stdout, os.Stderr })

	run := runner.New("", nil)
	return &common.Env{
		Config: config.Config{
			RepoRoot: root,
			LogDir:   filepath.Join(t.TempDir(), "logs"),
		},
		Logger:   zap.NewNop(),
		Registry: registry.Build(root),
		Runner:   run,
		Fleet:    fleet.New(run),
	}
}

func readLog(t *testing.T, dir string) fleet.UpdateLog {
	t.Helper()
	files, err := filepath.Glob(filepath.Join(dir, "update-*.json"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	var log fleet.UpdateLog
	require.NoError(t, json.Unmarshal(data, &log))
	return log
}

func TestUpdate(t *testing.T) {
	testCases := []struct {
		desc        string
		service     string
		branch      string
		setup       func(t *testing.T, root string)
		verify      func(t *testing.T, env *common.Env)
		expectError error
	}{
		{
			desc:        "unknown service is an error",
			service:     "nope",
			branch:      "main",
			expectError: registry.ErrServiceNotFound,
		},
		{
			desc:   "missing checkouts are logged as not found",
			branch: "main",
			setup: func(t *testing.T, root string) {
				testutil.NewRepoAt(t, filepath.Join(t.TempDir(), "api.git"), filepath.Join(root, "ren-api"))
			},
			verify: func(t *testing.T, env *common.Env) {
				log := readLog(t, env.Config.LogDir)
				assert.Equal(t, "main", log.Branch)
				assert.Len(t, log.Results, 10)
				assert.Equal(t, 1, log.Succeeded)
				assert.Equal(t, 9, log.Failed)
				for _, e := range log.Results {
					if e.Service == "api" {
						assert.True(t, e.Success)
						continue
					}
					assert.Equal(t, "not-found", e.Outcome)
				}
			},
		},
		{
			desc:    "single service with a branch missing on the remote",
			service: "api",
			branch:  "release-9",
			setup: func(t *testing.T, root string) {
				testutil.NewRepoAt(t, filepath.Join(t.TempDir(), "api.git"), filepath.Join(root, "ren-api"))
			},
			verify: func(t *testing.T, env *common.Env) {
				log := readLog(t, env.Config.LogDir)
				require.Len(t, log.Results, 1)
				assert.Equal(t, "refused", log.Results[0].Outcome)
				assert.Contains(t, log.Results[0].Error, "does not exist in remote")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			root := t.TempDir()
			if tc.setup != nil {
				tc.setup(t, root)
			}
			env := newEnv(t, root)

			cmd := &Command{Env: env, Branch: tc.branch, Service: tc.service, SkipDeps: true}
			err := cmd.Run(context.Background())

			if tc.expectError != nil {
				require.ErrorIs(t, err, tc.expectError)
				return
			}
			require.NoError(t, err)
			if tc.verify != nil {
				tc.verify(t, env)
			}
		})
	}
}
