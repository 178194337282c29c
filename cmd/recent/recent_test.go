package recent

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
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

func separatorLines(out string) int {
	n := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.Count(line, "─") == ui.GetTerminalWidth() {
			n++
		}
	}
	return n
}

func TestRecent(t *testing.T) {
	testCases := []struct {
		desc     string
		services []string
		service  string
		verify   func(t *testing.T, out string)
	}{
		{
			desc:     "sections are separated",
			services: []string{"api", "billing"},
			verify: func(t *testing.T, out string) {
				assert.Equal(t, 1, separatorLines(out))
				assert.Contains(t, out, "▸ api")
				assert.Contains(t, out, "▸ billing")
				assert.Contains(t, out, "Initial commit")
				assert.Contains(t, out, "2 succeeded, 8 failed (10 total)")
			},
		},
		{
			desc:     "single service has no separator",
			services: []string{"api"},
			service:  "api",
			verify: func(t *testing.T, out string) {
				assert.Equal(t, 0, separatorLines(out))
				assert.Contains(t, out, "1 succeeded, 0 failed (1 total)")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			root := t.TempDir()
			for _, name := range tc.services {
				testutil.NewRepoAt(t, filepath.Join(t.TempDir(), name+".git"), filepath.Join(root, "ren-"+name))
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

			cmd := &Command{Env: env, Service: tc.service, Days: 7, Count: 10}
			require.NoError(t, cmd.Run(context.Background()))
			tc.verify(t, out.String())
		})
	}
}
