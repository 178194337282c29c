package common

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bjulian5/fleet/internal/registry"
	"github.com/bjulian5/fleet/internal/ui"
)

func TestRepositories(t *testing.T) {
	testCases := []struct {
		desc        string
		service     string
		expectCount int
		expectError error
	}{
		{desc: "all services", service: "", expectCount: len(registry.DefaultServices)},
		{desc: "one service", service: "billing", expectCount: 1},
		{desc: "unknown service", service: "nope", expectError: registry.ErrServiceNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			var out bytes.Buffer
			ui.Stdout, ui.Stderr = &out, &out
			t.Cleanup(func() { ui.Stdout, ui.Stderr = os.Stdout, os.Stderr })

			env := &Env{Logger: zap.NewNop(), Registry: registry.Build(t.TempDir())}
			repos, err := env.Repositories(tc.service)

			if tc.expectError != nil {
				require.ErrorIs(t, err, tc.expectError)
				assert.Contains(t, err.Error(), "billing")
				assert.Empty(t, out.String(), "the caller reports the error once")
				return
			}
			require.NoError(t, err)
			assert.Len(t, repos, tc.expectCount)
		})
	}
}
