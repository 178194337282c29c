package git

import (
	"fmt"
	"strings"

	gogit "github.com/go-git/go-git/v5"
)

// RemoteURL returns the first URL of the default remote
func (c *Client) RemoteURL() (string, error) {
	repo, err := gogit.PlainOpen(c.path)
	if err != nil {
		return "", fmt.Errorf("failed to open repository: %w", err)
	}
	remote, err := repo.Remote(DefaultRemote)
	if err != nil {
		return "", fmt.Errorf("failed to get remote %s: %w", DefaultRemote, err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %s has no URL", DefaultRemote)
	}
	return urls[0], nil
}

// RepoSlug returns owner and name parsed from the default remote URL
func (c *Client) RepoSlug() (owner string, name string, err error) {
	url, err := c.RemoteURL()
	if err != nil {
		return "", "", err
	}
	return ParseRepoSlug(url)
}

// ParseRepoSlug extracts owner/name from SSH or HTTPS GitHub remote URLs:
//
//	git@github.com:acme/ren-api.git
//	https://github.com/acme/ren-api.git
//	ssh://git@github.com/acme/ren-api
func ParseRepoSlug(url string) (owner string, name string, err error) {
	s := strings.TrimSuffix(strings.TrimSpace(url), "/")
	s = strings.TrimSuffix(s, ".git")

	if i := strings.Index(s, "://"); i != -1 {
		s = s[i+3:]
		// drop host
		if j := strings.Index(s, "/"); j != -1 {
			s = s[j+1:]
		} else {
			s = ""
		}
	} else if i := strings.Index(s, ":"); i != -1 {
		s = s[i+1:]
	}

	parts := strings.Split(s, "/")
	if len(parts) < 2 || parts[len(parts)-2] == "" || parts[len(parts)-1] == "" {
		return "", "", fmt.Errorf("cannot parse owner/repo from remote URL %q", url)
	}
	return parts[len(parts)-2], parts[len(parts)-1], nil
}
