// Package common builds the collaborators shared by every command.
package common

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/bjulian5/fleet/internal/config"
	"github.com/bjulian5/fleet/internal/deps"
	"github.com/bjulian5/fleet/internal/fleet"
	"github.com/bjulian5/fleet/internal/gh"
	"github.com/bjulian5/fleet/internal/logging"
	"github.com/bjulian5/fleet/internal/registry"
	"github.com/bjulian5/fleet/internal/review"
	"github.com/bjulian5/fleet/internal/runner"
)

// Env is built once per invocation, after flags are parsed
type Env struct {
	Options  config.Options
	Config   config.Config
	Logger   *zap.Logger
	Registry *registry.Registry
	Runner   *runner.Runner
	Host     gh.Host
	Fleet    *fleet.Orchestrator
}

// NewEnv loads configuration and wires the runner, PR host and orchestrator
func NewEnv(opts config.Options) (*Env, error) {
	cfg, err := config.Load(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := logging.New(cfg.Verbose)
	logger.Debug("configuration loaded",
		zap.String("repo_root", cfg.RepoRoot),
		zap.String("source", string(cfg.RepoRootSource)),
		zap.String("service_account", cfg.ServiceAccount),
	)

	run := runner.New(cfg.ServiceAccount, logger)
	logger.Debug("runner ready", zap.String("run_as", run.RunAs()))
	host := gh.NewHost(cfg.Secrets, run, logger)

	return &Env{
		Options:  opts,
		Config:   cfg,
		Logger:   logger,
		Registry: registry.Build(cfg.RepoRoot),
		Runner:   run,
		Host:     host,
		Fleet: fleet.New(run,
			fleet.WithDependencyInstaller(deps.NewInstaller(run, cfg.Toolchains, logger)),
			fleet.WithHost(host),
			fleet.WithLogger(logger),
		),
	}, nil
}

// Repositories resolves an optional service argument. An unknown name is an
// error naming the valid services; the caller reports it.
func (e *Env) Repositories(service string) ([]registry.Repository, error) {
	repos, err := e.Registry.Select(service)
	if err != nil {
		e.Logger.Debug("unknown service", zap.String("service", service))
		return nil, err
	}
	return repos, nil
}

// RequirePrivilege fails unless the invoking user may act as the service account
func (e *Env) RequirePrivilege() error {
	return runner.CheckPrivilege(e.Config.ServiceAccount)
}

// Analyzer returns the OpenAI analyzer when a key is configured
func (e *Env) Analyzer() review.Analyzer {
	s := e.Config.Secrets
	if !s.HasAI() {
		return review.Unavailable{}
	}
	return review.NewOpenAIAnalyzer(s.OpenAIKey, s.OpenAIModel, s.OpenAIMaxTokens, e.Logger)
}

// TicketLookup returns a Jira lookup when Jira credentials are configured
func (e *Env) TicketLookup() review.TicketLookup {
	s := e.Config.Secrets
	if !s.HasJira() {
		return nil
	}
	lookup, err := review.NewJiraLookup(s.JiraURL, s.JiraUser, s.JiraToken, e.Logger)
	if err != nil {
		e.Logger.Warn("jira lookup disabled", zap.Error(err))
		return nil
	}
	return lookup
}
