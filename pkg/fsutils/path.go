package fsutils

import (
	"os"
	"strings"
)

const separator = string(os.PathSeparator)

// JoinPath appends name to dir without cleaning dir, so a root given as
// "./media/" produces "./media/a.avi" rather than "media/a.avi".
func JoinPath(dir, name string) string {
	if dir == "" {
		return name
	}
	if strings.HasSuffix(dir, separator) || strings.HasSuffix(dir, "/") {
		return dir + name
	}
	return dir + separator + name
}

// ParentDir returns p with its final segment removed. Trailing separators
// are stripped from the result unless it consists of separators only.
func ParentDir(p string) string {
	i := strings.LastIndexAny(p, separator+"/") + 1
	head := p[:i]
	if trimmed := strings.TrimRight(head, separator+"/"); trimmed != "" {
		return trimmed
	}
	return head
}
