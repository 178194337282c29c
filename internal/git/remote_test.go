package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRepoSlug(t *testing.T) {
	tests := []struct {
		url   string
		owner string
		name  string
	}{
		{url: "git@github.com:acme/ren-api.git", owner: "acme", name: "ren-api"},
		{url: "https://github.com/acme/ren-api.git", owner: "acme", name: "ren-api"},
		{url: "https://github.com/acme/ren-api", owner: "acme", name: "ren-api"},
		{url: "ssh://git@github.com/acme/ren-api/", owner: "acme", name: "ren-api"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			owner, name, err := ParseRepoSlug(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.owner, owner)
			assert.Equal(t, tt.name, name)
		})
	}

	_, _, err := ParseRepoSlug("not-a-url")
	assert.Error(t, err)
}
