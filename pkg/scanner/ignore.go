package scanner

import (
	"bufio"
	"bytes"
	"os"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

var osReadFile = os.ReadFile

// ParseExcludePatterns turns gitignore-style lines into patterns. Blank
// lines and lines starting with '#' are skipped.
func ParseExcludePatterns(lines []string) []gitignore.Pattern {
	patterns := make([]gitignore.Pattern, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if strings.HasPrefix(line, "#") {
			continue
		}
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		pattern := gitignore.ParsePattern(line, nil)
		patterns = append(patterns, pattern)
	}
	return patterns
}

// LoadExcludeFile reads patterns from a gitignore-style file.
func LoadExcludeFile(path string) ([]gitignore.Pattern, error) {
	content, err := osReadFile(path)
	if err != nil {
		return nil, err
	}
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return ParseExcludePatterns(lines), scanner.Err()
}

var newIgnoreFS = func(root string) billy.Filesystem {
	return osfs.New(root)
}

// ReadGitIgnore collects the patterns of every .gitignore file below root,
// each scoped to the directory that holds it.
func ReadGitIgnore(root string) ([]gitignore.Pattern, error) {
	return gitignore.ReadPatterns(newIgnoreFS(root), nil)
}
