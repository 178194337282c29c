package git

import (
	"errors"
	"fmt"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// Commit is a summarised commit for the recent-activity listing
type Commit struct {
	Hash   string
	Title  string
	Author string
	When   time.Time
}

// ShortHash returns the first seven characters of the hash
func (c Commit) ShortHash() string {
	if len(c.Hash) > 7 {
		return c.Hash[:7]
	}
	return c.Hash
}

// CommitTitle returns the first non-empty line of a commit message
func CommitTitle(message string) string {
	for _, line := range strings.Split(message, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

// RecentCommits reads up to limit commits on HEAD authored after since.
// It opens the repository directly rather than shelling out.
func (c *Client) RecentCommits(since time.Time, limit int) ([]Commit, error) {
	repo, err := gogit.PlainOpen(c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	iter, err := repo.Log(&gogit.LogOptions{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("failed to read log: %w", err)
	}
	defer iter.Close()

	commits := []Commit{}
	err = iter.ForEach(func(commit *object.Commit) error {
		if limit > 0 && len(commits) >= limit {
			return storer.ErrStop
		}
		commits = append(commits, Commit{
			Hash:   commit.Hash.String(),
			Title:  CommitTitle(commit.Message),
			Author: commit.Author.Name,
			When:   commit.Author.When,
		})
		return nil
	})
	if err != nil && !errors.Is(err, storer.ErrStop) {
		return nil, fmt.Errorf("failed to walk log: %w", err)
	}
	return commits, nil
}
