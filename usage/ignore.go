package usage

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// ignoreList is a minimal .gitignore subset: bare names, directory patterns
// and wildcard patterns, matched against slash-separated relative paths.
// Negation patterns are not supported.
type ignoreList struct {
	patterns []string
}

// loadIgnoreList parses the project's .gitignore; a missing file yields an
// empty list.
func loadIgnoreList(rootDir string) *ignoreList {
	il := &ignoreList{}

	file, err := os.Open(filepath.Join(rootDir, ".gitignore"))
	if err != nil {
		return il
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		line = strings.TrimSuffix(line, "/")
		line = strings.TrimPrefix(line, "/")
		il.patterns = append(il.patterns, line)
	}

	return il
}

// Match reports whether a relative path, or any of its components, matches
// an ignore pattern.
func (il *ignoreList) Match(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	parts := strings.Split(relPath, "/")

	for _, pattern := range il.patterns {
		if ok, _ := filepath.Match(pattern, relPath); ok {
			return true
		}
		if strings.Contains(pattern, "/") {
			continue
		}
		for _, part := range parts {
			if ok, _ := filepath.Match(pattern, part); ok {
				return true
			}
		}
	}

	return false
}
