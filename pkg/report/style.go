package report

import (
	"errors"
	"fmt"
)

// Style selects the punctuation used when writing a report.
type Style int

const (
	// StyleWin writes "; comment" and "key = value".
	StyleWin Style = iota
	// StyleUnix writes "# comment" and "key: value".
	StyleUnix
)

var ErrUnknownStyle = errors.New("unknown style")

// ParseStyle accepts "win" and "unix".
func ParseStyle(name string) (Style, error) {
	switch name {
	case "win":
		return StyleWin, nil
	case "unix":
		return StyleUnix, nil
	default:
		return StyleWin, fmt.Errorf("%w %q: expected \"win\" or \"unix\"", ErrUnknownStyle, name)
	}
}

func (s Style) String() string {
	if s == StyleUnix {
		return "unix"
	}
	return "win"
}

// CommentChar is the character that starts a comment line.
func (s Style) CommentChar() string {
	if s == StyleUnix {
		return "#"
	}
	return ";"
}

// Separator is written between a key and its value.
func (s Style) Separator() string {
	if s == StyleUnix {
		return ": "
	}
	return " = "
}
