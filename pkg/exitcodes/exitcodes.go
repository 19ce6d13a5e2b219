// Package exitcodes defines the process exit statuses shared by all
// dir-stats commands and the error type that carries them.
package exitcodes

import (
	"errors"
	"fmt"
	"io"
)

const (
	Success       = 0
	Usage         = 1
	NoFile        = 10
	NotReadable   = 11
	NotWritable   = 12
	NotWellFormed = 20
	Interrupted   = 130
)

type description struct {
	code int
	text string
}

var descriptions = []description{
	{Success, "The command finished successfully."},
	{Usage, "The command line was invalid or no input was supplied."},
	{NoFile, "The input supplied does not exist or is of the wrong kind."},
	{NotReadable, "The input supplied is not readable."},
	{NotWritable, "The output file is not writeable."},
	{NotWellFormed, "The input supplied is malformed."},
	{Interrupted, "The command was interrupted."},
}

// Error is an invocation-fatal failure with the exit status it maps to.
type Error struct {
	Code int
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New wraps err with an exit status. A nil err stays nil.
func New(code int, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Err: err}
}

// Errorf formats a message like fmt.Errorf and attaches an exit status.
func Errorf(code int, format string, args ...any) error {
	return &Error{Code: code, Err: fmt.Errorf(format, args...)}
}

// Code returns the exit status for err: Success for nil, the carried code
// for an *Error anywhere in the chain, and Usage for anything else.
func Code(err error) int {
	if err == nil {
		return Success
	}
	var exitErr *Error
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return Usage
}

// Print writes the table of exit statuses.
func Print(w io.Writer) {
	_, _ = fmt.Fprintln(w, "Exit codes:")
	for _, d := range descriptions {
		_, _ = fmt.Fprintf(w, "  %d\n    %s\n", d.code, d.text)
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "The error message will provide more detailed information.")
}
