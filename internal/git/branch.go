package git

import "strings"

// ParseBranches parses `git branch -a` output into plain branch names.
// Marker glyphs and the remotes/<remote>/ prefix are stripped, duplicates
// and the symbolic HEAD are dropped, and listing order is preserved.
func ParseBranches(output string) []string {
	seen := make(map[string]bool)
	branches := []string{}

	for _, line := range strings.Split(output, "\n") {
		name := strings.TrimSpace(line)
		name = strings.TrimLeft(name, "*+ ")
		if name == "" || strings.HasPrefix(name, "(") {
			continue
		}

		// "remotes/origin/HEAD -> origin/main"
		if idx := strings.Index(name, " -> "); idx != -1 {
			name = name[:idx]
		}

		if rest, ok := strings.CutPrefix(name, "remotes/"); ok {
			_, branch, found := strings.Cut(rest, "/")
			if !found {
				continue
			}
			name = branch
		}

		if name == "HEAD" || seen[name] {
			continue
		}
		seen[name] = true
		branches = append(branches, name)
	}

	return branches
}

// IsProtectedBranch reports whether PRs may not be opened from branch
func IsProtectedBranch(branch string) bool {
	return branch == "main" || branch == "master"
}
