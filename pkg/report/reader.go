package report

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	ErrMissingSection = errors.New("entry before any [section] header")
	ErrNoSeparator    = errors.New("line has no key/value separator")
)

// ParseError reports the line a report could not be parsed at.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Read parses a report written in either style. Blank lines and lines
// starting with ';' or '#' are skipped. A line enclosed in brackets opens a
// group. Groups and entries keep the order
// they appear in; a repeated entry key overwrites the earlier value.
func Read(r io.Reader) (*Report, error) {
	rep := New()
	var current *Group
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		line := strings.TrimRight(raw, " \t\r")
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if strings.TrimSpace(line) == "" || line[0] == ';' || line[0] == '#' {
			continue
		}
		if len(line) >= 2 && line[0] == '[' && line[len(line)-1] == ']' {
			current = rep.Group(line[1 : len(line)-1])
			continue
		}
		key, value, ok := splitPair(line)
		if !ok {
			return nil, &ParseError{Line: lineNo, Text: raw, Err: ErrNoSeparator}
		}
		if current == nil {
			return nil, &ParseError{Line: lineNo, Text: raw, Err: ErrMissingSection}
		}
		current.Set(Entry{Key: key, Value: value})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rep, nil
}

// splitPair splits at the last '=' or ':'. Values are byte counts and never
// contain either, while keys are paths that may contain both.
func splitPair(line string) (key, value string, ok bool) {
	i := strings.LastIndexAny(line, "=:")
	if i < 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:i])
	if key == "" {
		return "", "", false
	}
	return key, strings.TrimSpace(line[i+1:]), true
}
