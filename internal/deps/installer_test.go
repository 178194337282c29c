package deps

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjulian5/fleet/internal/config"
	"github.com/bjulian5/fleet/internal/testutil"
)

func TestInstall(t *testing.T) {
	table := config.Toolchains{
		"api":      {Manager: config.ManagerComposer, Command: []string{"php8.2", "/usr/local/bin/composer"}},
		"frontend": {Manager: config.ManagerNPM, Command: []string{"npm"}},
	}

	tests := []struct {
		name     string
		service  string
		update   bool
		expected string
		skipped  bool
	}{
		{
			name:     "composer install",
			service:  "api",
			expected: "php8.2 /usr/local/bin/composer install --no-interaction --prefer-dist --optimize-autoloader",
		},
		{
			name:     "composer update",
			service:  "api",
			update:   true,
			expected: "php8.2 /usr/local/bin/composer update --no-interaction",
		},
		{
			name:     "npm ignores update flag",
			service:  "frontend",
			update:   true,
			expected: "npm install --no-audit --no-fund",
		},
		{
			name:    "unknown service skipped",
			service: "legacy",
			skipped: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := testutil.NewRecordingExecutor()
			installer := NewInstaller(exec, table, nil)

			report, err := installer.Install(context.Background(), tt.service, t.TempDir(), tt.update)
			require.NoError(t, err)
			assert.Equal(t, tt.skipped, report.Skipped)

			if tt.skipped {
				assert.Equal(t, 0, exec.CallCount())
				return
			}
			require.Equal(t, []string{tt.expected}, exec.Calls)
			assert.Equal(t, tt.expected, report.Command)
		})
	}
}

func TestInstall_Failure(t *testing.T) {
	exec := testutil.NewRecordingExecutor()
	exec.Responses["npm"] = testutil.Response{Err: errors.New("ERESOLVE")}

	installer := NewInstaller(exec, config.DefaultToolchains(), nil)
	_, err := installer.Install(context.Background(), "frontend", t.TempDir(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to install npm dependencies")
}
