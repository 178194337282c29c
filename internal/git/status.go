package git

import (
	"fmt"
	"strconv"
	"strings"
)

// FileChange is one line of `git status --porcelain`
type FileChange struct {
	Index    byte // staged state (X)
	Worktree byte // unstaged state (Y)
	Path     string
}

// IsUntracked reports a "??" entry
func (f FileChange) IsUntracked() bool {
	return f.Index == '?' && f.Worktree == '?'
}

// IsStaged reports a change recorded in the index
func (f FileChange) IsStaged() bool {
	return f.Index != ' ' && f.Index != '?'
}

// IsModified reports an unstaged change to a tracked file
func (f FileChange) IsModified() bool {
	return f.Worktree != ' ' && f.Worktree != '?'
}

// Code returns the two-letter porcelain code
func (f FileChange) Code() string {
	return string([]byte{f.Index, f.Worktree})
}

// ChangeCounts summarises a porcelain listing
type ChangeCounts struct {
	Modified  int
	Staged    int
	Untracked int
	Total     int
}

// ParsePorcelain parses `git status --porcelain` (v1) output
func ParsePorcelain(output string) []FileChange {
	changes := []FileChange{}
	for _, line := range strings.Split(output, "\n") {
		if len(line) < 4 {
			continue
		}
		path := line[3:]
		// renames: "R  old -> new"
		if idx := strings.Index(path, " -> "); idx != -1 {
			path = path[idx+4:]
		}
		changes = append(changes, FileChange{
			Index:    line[0],
			Worktree: line[1],
			Path:     path,
		})
	}
	return changes
}

// CountChanges tallies a porcelain listing. A file both staged and modified
// counts in both buckets but once in Total.
func CountChanges(changes []FileChange) ChangeCounts {
	counts := ChangeCounts{Total: len(changes)}
	for _, c := range changes {
		if c.IsUntracked() {
			counts.Untracked++
			continue
		}
		if c.IsStaged() {
			counts.Staged++
		}
		if c.IsModified() {
			counts.Modified++
		}
	}
	return counts
}

// ParseAheadBehind parses `git rev-list --left-right --count A...B` output
func ParseAheadBehind(output string) (ahead int, behind int, err error) {
	fields := strings.Fields(output)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("unexpected rev-list output %q", output)
	}
	if ahead, err = strconv.Atoi(fields[0]); err != nil {
		return 0, 0, fmt.Errorf("invalid ahead count %q: %w", fields[0], err)
	}
	if behind, err = strconv.Atoi(fields[1]); err != nil {
		return 0, 0, fmt.Errorf("invalid behind count %q: %w", fields[1], err)
	}
	return ahead, behind, nil
}

// GrepMatch is one `git grep -n` hit
type GrepMatch struct {
	Path string
	Line int
	Text string
}

// ParseGrep parses `git grep -n` output ("path:line:text")
func ParseGrep(output string) []GrepMatch {
	matches := []GrepMatch{}
	for _, line := range strings.Split(output, "\n") {
		path, rest, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		num, text, ok := strings.Cut(rest, ":")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(num)
		if err != nil {
			continue
		}
		matches = append(matches, GrepMatch{Path: path, Line: n, Text: text})
	}
	return matches
}
