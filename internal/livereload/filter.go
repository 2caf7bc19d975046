package livereload

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExcludes are directory names never watched.
var DefaultExcludes = []string{
	".git",
	"node_modules",
	"vendor",
	"dist",
	".idea",
	".vscode",
}

// DefaultIgnore are file patterns whose changes never trigger a rebuild.
var DefaultIgnore = []string{
	"*.swp",
	"*~",
	".#*",
	"**/.DS_Store",
	"4913",
}

// shouldExcludeDir checks whether a directory name matches any exclusion.
func shouldExcludeDir(name string, excludes []string) bool {
	for _, excl := range excludes {
		if strings.EqualFold(name, excl) {
			return true
		}
	}
	return false
}

// matchesAny checks if path matches any of the given glob patterns, either
// as a whole or by its base name.
func matchesAny(path string, patterns []string) bool {
	normalized := filepath.ToSlash(path)
	base := filepath.Base(normalized)

	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if matched, err := doublestar.PathMatch(pattern, normalized); err == nil && matched {
			return true
		}
		if matched, err := doublestar.PathMatch(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}
