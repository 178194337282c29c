package fleet

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/bjulian5/fleet/internal/deps"
	"github.com/bjulian5/fleet/internal/gh"
)

type MockHost struct {
	mock.Mock
}

// Kind implements gh.Host.
func (m *MockHost) Kind() string {
	return "mock"
}

// DefaultBranch implements gh.Host.
func (m *MockHost) DefaultBranch(ctx context.Context, dir string) (string, error) {
	args := m.Called(dir)
	return args.String(0), args.Error(1)
}

// CreatePR implements gh.Host.
func (m *MockHost) CreatePR(ctx context.Context, dir string, spec gh.PRSpec) (string, error) {
	args := m.Called(dir, spec)
	return args.String(0), args.Error(1)
}

// ListPRs implements gh.Host.
func (m *MockHost) ListPRs(ctx context.Context, dir string, opts gh.ListOptions) ([]gh.PullRequest, error) {
	args := m.Called(dir, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]gh.PullRequest), args.Error(1)
}

// GetPR implements gh.Host.
func (m *MockHost) GetPR(ctx context.Context, dir string, number int) (gh.PullRequest, error) {
	args := m.Called(dir, number)
	return args.Get(0).(gh.PullRequest), args.Error(1)
}

type MockInstaller struct {
	mock.Mock
}

// Install implements DependencyInstaller.
func (m *MockInstaller) Install(ctx context.Context, service string, dir string, update bool) (deps.Report, error) {
	args := m.Called(service, dir, update)
	return args.Get(0).(deps.Report), args.Error(1)
}
