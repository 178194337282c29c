package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePorcelain(t *testing.T) {
	output := " M app/Http/Kernel.php\nM  composer.json\nMM routes/web.php\n?? storage/tmp.log\nR  old.php -> new.php"

	changes := ParsePorcelain(output)
	require.Len(t, changes, 5)

	assert.Equal(t, "app/Http/Kernel.php", changes[0].Path)
	assert.True(t, changes[0].IsModified())
	assert.False(t, changes[0].IsStaged())

	assert.True(t, changes[1].IsStaged())
	assert.False(t, changes[1].IsModified())

	assert.True(t, changes[2].IsStaged())
	assert.True(t, changes[2].IsModified())

	assert.True(t, changes[3].IsUntracked())
	assert.Equal(t, "??", changes[3].Code())

	assert.Equal(t, "new.php", changes[4].Path)

	counts := CountChanges(changes)
	assert.Equal(t, ChangeCounts{Modified: 2, Staged: 3, Untracked: 1, Total: 5}, counts)
}

func TestParsePorcelain_Empty(t *testing.T) {
	assert.Empty(t, ParsePorcelain(""))
	assert.Equal(t, ChangeCounts{}, CountChanges(nil))
}

func TestParseAheadBehind(t *testing.T) {
	tests := []struct {
		name      string
		output    string
		ahead     int
		behind    int
		expectErr bool
	}{
		{name: "tab separated", output: "3\t1", ahead: 3, behind: 1},
		{name: "in sync", output: "0\t0"},
		{name: "space separated", output: "0 12", behind: 12},
		{name: "garbage", output: "fatal", expectErr: true},
		{name: "non numeric", output: "a\tb", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ahead, behind, err := ParseAheadBehind(tt.output)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.ahead, ahead)
			assert.Equal(t, tt.behind, behind)
		})
	}
}

func TestParseGrep(t *testing.T) {
	output := "app/Models/User.php:12:    protected $table = 'users';\nconfig/app.php:3:'name' => 'ren:api',\nbroken line"

	matches := ParseGrep(output)
	require.Len(t, matches, 2)
	assert.Equal(t, GrepMatch{Path: "app/Models/User.php", Line: 12, Text: "    protected $table = 'users';"}, matches[0])
	assert.Equal(t, "'name' => 'ren:api',", matches[1].Text)
}

func TestParseStashList(t *testing.T) {
	output := "stash@{0}: On main: fleet auto-stash 2024-01-01T00:00:00Z\nstash@{1}: WIP on dev: abc123 fix"

	entries := ParseStashList(output)
	require.Len(t, entries, 2)
	assert.Equal(t, "stash@{0}", entries[0].Ref)
	assert.Equal(t, "On main: fleet auto-stash 2024-01-01T00:00:00Z", entries[0].Message)
	assert.Empty(t, ParseStashList(""))
}
