package registry

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// ErrServiceNotFound is returned when a selection names an unknown service
var ErrServiceNotFound = errors.New("service not found")

// Repository is one managed service checkout
type Repository struct {
	Name string
	Path string
}

// Service pairs a service name with its checkout directory under the root
type Service struct {
	Name   string
	Subdir string
}

// DefaultServices is the reference deployment, in display order
var DefaultServices = []Service{
	{Name: "admin", Subdir: "ren-admin"},
	{Name: "api", Subdir: "ren-api"},
	{Name: "auth", Subdir: "ren-auth"},
	{Name: "billing", Subdir: "ren-billing"},
	{Name: "cms", Subdir: "ren-cms"},
	{Name: "frontend", Subdir: "ren-frontend"},
	{Name: "notifications", Subdir: "ren-notifications"},
	{Name: "orders", Subdir: "ren-orders"},
	{Name: "payments", Subdir: "ren-payments"},
	{Name: "reports", Subdir: "ren-reports"},
}

// Registry is the ordered, immutable set of repositories
type Registry struct {
	repos []Repository
	index map[string]int
}

// Build joins root with each service's subdirectory
func Build(root string) *Registry {
	return BuildFrom(root, DefaultServices)
}

// BuildFrom builds a registry for an explicit service list
func BuildFrom(root string, services []Service) *Registry {
	r := &Registry{
		repos: make([]Repository, 0, len(services)),
		index: make(map[string]int, len(services)),
	}
	for _, s := range services {
		r.index[s.Name] = len(r.repos)
		r.repos = append(r.repos, Repository{
			Name: s.Name,
			Path: filepath.Join(root, s.Subdir),
		})
	}
	return r
}

// All returns every repository in registry order
func (r *Registry) All() []Repository {
	out := make([]Repository, len(r.repos))
	copy(out, r.repos)
	return out
}

// Names returns the service names in registry order
func (r *Registry) Names() []string {
	names := make([]string, len(r.repos))
	for i, repo := range r.repos {
		names[i] = repo.Name
	}
	return names
}

// Get looks up a single repository
func (r *Registry) Get(name string) (Repository, error) {
	i, ok := r.index[name]
	if !ok {
		return Repository{}, fmt.Errorf("%w: %q (known: %s)", ErrServiceNotFound, name, strings.Join(r.sortedNames(), ", "))
	}
	return r.repos[i], nil
}

// Select returns all repositories when name is empty, otherwise exactly the
// named one. An unknown name is an error, never a fallback to all.
func (r *Registry) Select(name string) ([]Repository, error) {
	if name == "" {
		return r.All(), nil
	}
	repo, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return []Repository{repo}, nil
}

func (r *Registry) sortedNames() []string {
	names := r.Names()
	sort.Strings(names)
	return names
}
