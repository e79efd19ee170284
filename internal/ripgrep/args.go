// Package ripgrep runs the rg executable to list files under a search root.
package ripgrep

import "github.com/hyperjump/fsearch/internal/models"

// vcsDir is excluded explicitly: rg honors .gitignore by default but still lists .git itself.
const vcsDir = ".git"

// BuildArgs returns the rg arguments that list every file under a root, hidden files
// included, filtered by the root's include and exclude globs.
func BuildArgs(opts models.RootOptions) []string {
	args := []string{"--files", "--hidden"}
	for _, p := range opts.IncludePatterns {
		if p != "" {
			args = append(args, "--glob", p)
		}
	}
	for _, p := range opts.ExcludePatterns {
		if p != "" {
			args = append(args, "--glob", "!"+p)
		}
	}
	if opts.UseGitIgnoreOrDefault() {
		args = append(args, "--glob", "!"+vcsDir)
	} else {
		args = append(args, "--no-ignore")
	}
	return args
}
