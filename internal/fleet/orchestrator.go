package fleet

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/bjulian5/fleet/internal/deps"
	"github.com/bjulian5/fleet/internal/gh"
	"github.com/bjulian5/fleet/internal/git"
	"github.com/bjulian5/fleet/internal/registry"
	"github.com/bjulian5/fleet/internal/runner"
)

// DependencyInstaller installs a service's packages after an update
type DependencyInstaller interface {
	Install(ctx context.Context, service string, dir string, update bool) (deps.Report, error)
}

// Orchestrator runs per-repository operations. It holds no per-run state.
type Orchestrator struct {
	exec   runner.Executor
	deps   DependencyInstaller
	host   gh.Host
	logger *zap.Logger
	now    func() time.Time
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithDependencyInstaller sets the installer used by Update
func WithDependencyInstaller(d DependencyInstaller) Option {
	return func(o *Orchestrator) { o.deps = d }
}

// WithHost sets the PR host used by CreatePR
func WithHost(h gh.Host) Option {
	return func(o *Orchestrator) { o.host = h }
}

// WithLogger sets the diagnostic logger
func WithLogger(l *zap.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithClock overrides time.Now for stash messages and logs
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// New creates an orchestrator that runs commands through exec
func New(exec runner.Executor, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		exec:   exec,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Now returns the orchestrator's current time
func (o *Orchestrator) Now() time.Time {
	return o.now()
}

// do runs fn against repo after the shared directory pre-check and converts
// its error into an outcome.
func do[T any](ctx context.Context, o *Orchestrator, repo registry.Repository, op string, fn func(g *git.Client, v *T) error) Result[T] {
	res := Result[T]{Service: repo.Name}

	if !dirExists(repo.Path) {
		res.Outcome = OutcomeNotFound
		res.Err = ErrDirectoryNotFound
		o.logResult(op, res.Service, res.Outcome, res.Err)
		return res
	}

	err := fn(git.NewClient(o.exec, repo.Path), &res.Value)
	res.Outcome = classify(err)
	res.Err = err
	o.logResult(op, res.Service, res.Outcome, res.Err)
	return res
}

func (o *Orchestrator) logResult(op, service string, outcome Outcome, err error) {
	o.logger.Debug("operation finished",
		zap.String("op", op),
		zap.String("service", service),
		zap.Stringer("outcome", outcome),
		zap.Error(err),
	)
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
