package deps

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/bjulian5/fleet/internal/config"
	"github.com/bjulian5/fleet/internal/runner"
)

// Report describes what an install did
type Report struct {
	Manager string
	Command string
	Skipped bool
}

// Installer runs the per-service package manager
type Installer struct {
	exec   runner.Executor
	table  config.Toolchains
	logger *zap.Logger
}

// NewInstaller creates an installer over a toolchain table
func NewInstaller(exec runner.Executor, table config.Toolchains, logger *zap.Logger) *Installer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Installer{exec: exec, table: table, logger: logger}
}

// Install installs dependencies for service in dir. When update is true
// composer services run `composer update` instead of `composer install`.
func (i *Installer) Install(ctx context.Context, service string, dir string, update bool) (Report, error) {
	tc := i.table.Lookup(service)
	if tc.Manager == config.ManagerNone || len(tc.Command) == 0 {
		return Report{Manager: config.ManagerNone, Skipped: true}, nil
	}

	argv := append(append([]string{}, tc.Command...), installArgs(tc.Manager, update)...)
	report := Report{Manager: tc.Manager, Command: strings.Join(argv, " ")}

	i.logger.Debug("installing dependencies",
		zap.String("service", service),
		zap.String("command", report.Command),
	)

	if _, err := i.exec.Run(ctx, dir, argv[0], argv[1:]...); err != nil {
		return report, fmt.Errorf("failed to install %s dependencies: %w", tc.Manager, err)
	}
	return report, nil
}

func installArgs(manager string, update bool) []string {
	switch manager {
	case config.ManagerComposer:
		if update {
			return []string{"update", "--no-interaction"}
		}
		return []string{"install", "--no-interaction", "--prefer-dist", "--optimize-autoloader"}
	case config.ManagerNPM:
		return []string{"install", "--no-audit", "--no-fund"}
	default:
		return nil
	}
}
