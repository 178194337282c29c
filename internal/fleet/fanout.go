package fleet

import (
	"context"

	"github.com/bjulian5/fleet/internal/registry"
)

// RunAcross applies op to every repository in order. A failure in one
// repository never stops the others; the result slice always has one entry
// per repository, in the order given. onResult, if non-nil, is called as
// each result becomes available.
func RunAcross[T any](
	ctx context.Context,
	repos []registry.Repository,
	op func(context.Context, registry.Repository) Result[T],
	onResult func(Result[T]),
) []Result[T] {
	results := make([]Result[T], 0, len(repos))
	for _, repo := range repos {
		res := op(ctx, repo)
		if res.Service == "" {
			res.Service = repo.Name
		}
		results = append(results, res)
		if onResult != nil {
			onResult(res)
		}
	}
	return results
}

// Summary counts batch outcomes
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
}

// Summarize counts successes and failures
func Summarize[T any](results []Result[T]) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Success() {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}
	return s
}
