// Package cli implements the command lines of the dir-stats tools. Every
// Run function parses its arguments, does its work and returns the process
// exit status.
package cli

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/datatug/dirstats/pkg/exitcodes"
	"github.com/datatug/dirstats/pkg/fsutils"
	"github.com/datatug/dirstats/pkg/report"
	"github.com/datatug/dirstats/pkg/settings"
)

// RunFunc is the signature shared by all commands.
type RunFunc func(ctx context.Context, args []string, stdout, stderr io.Writer) int

// Commands maps tool names to their implementations.
var Commands = map[string]RunFunc{
	"dir-stats":            RunScan,
	"dir-stats-summary":    RunSummary,
	"dir-stats-ini2html":   RunHTML,
	"dir-stats-htmlmarker": RunMarker,
	"dir-stats-browse":     RunBrowse,
}

var timeNow = time.Now
var loadSettings = settings.Load
var osReadFile = os.ReadFile
var osWriteFile = os.WriteFile
var fileExists = fsutils.FileExists
var dirExists = fsutils.DirExists

type stringList []string

func (l *stringList) String() string {
	if l == nil {
		return ""
	}
	return strings.Join(*l, ",")
}

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

type option struct {
	short string
	long  string
	arg   string
	usage string
}

type command struct {
	name        string
	version     string
	operands    string
	footer      string
	stdout      io.Writer
	stderr      io.Writer
	flags       *flag.FlagSet
	options     []option
	showVersion bool
	settings    settings.Settings
}

func newCommand(name, version, operands string, stdout, stderr io.Writer) *command {
	c := &command{
		name:     name,
		version:  version,
		operands: operands,
		stdout:   stdout,
		stderr:   stderr,
		flags:    flag.NewFlagSet(name, flag.ContinueOnError),
	}
	c.flags.SetOutput(io.Discard)
	c.flags.Usage = func() {}
	c.options = append(c.options, option{short: "h", long: "help", usage: "Display this usage message and exit."})
	c.flags.BoolVar(&c.showVersion, "version", false, "")
	c.options = append(c.options, option{long: "version", usage: "Display the version and exit."})

	s, err := loadSettings()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Warning: %v\n", err)
	}
	c.settings = s
	return c
}

func (c *command) stringVar(p *string, short, long, arg, value, usage string) {
	if short != "" {
		c.flags.StringVar(p, short, value, usage)
	}
	c.flags.StringVar(p, long, value, usage)
	c.options = append(c.options, option{short: short, long: long, arg: arg, usage: usage})
}

func (c *command) int64Var(p *int64, short, long, arg string, value int64, usage string) {
	c.flags.Int64Var(p, short, value, usage)
	c.flags.Int64Var(p, long, value, usage)
	c.options = append(c.options, option{short: short, long: long, arg: arg, usage: usage})
}

func (c *command) boolVar(p *bool, short, long, usage string) {
	c.flags.BoolVar(p, short, false, usage)
	c.flags.BoolVar(p, long, false, usage)
	c.options = append(c.options, option{short: short, long: long, usage: usage})
}

func (c *command) listVar(p *stringList, short, long, arg, usage string) {
	if short != "" {
		c.flags.Var(p, short, usage)
	}
	c.flags.Var(p, long, usage)
	c.options = append(c.options, option{short: short, long: long, arg: arg, usage: usage})
}

// parse returns done when the command already finished, e.g. after
// printing help or the version.
func (c *command) parse(args []string) (done bool, err error) {
	if err = c.flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			c.usage(c.stdout)
			return true, nil
		}
		return true, exitcodes.New(exitcodes.Usage, err)
	}
	if c.showVersion {
		c.printVersion(c.stdout)
		return true, nil
	}
	return false, nil
}

func (c *command) args() []string {
	return c.flags.Args()
}

func (c *command) printVersion(w io.Writer) {
	_, _ = fmt.Fprintf(w, "%s v%s\n", c.name, c.version)
}

func (c *command) usage(w io.Writer) {
	c.printVersion(w)
	_, _ = fmt.Fprintf(w, "Usage: %s [options] %s\n\nOptions:\n", c.name, c.operands)
	for _, o := range c.options {
		var names []string
		if o.short != "" {
			name := "-" + o.short
			if o.arg != "" {
				name += " " + o.arg
			}
			names = append(names, name)
		}
		name := "--" + o.long
		if o.arg != "" {
			name += "=" + o.arg
		}
		names = append(names, name)
		_, _ = fmt.Fprintf(w, "  %s\n    %s\n", strings.Join(names, ", "), o.usage)
	}
	if c.footer != "" {
		_, _ = fmt.Fprintf(w, "\n%s\n", c.footer)
	}
}

// usageError reports a bad invocation together with the usage text.
func (c *command) usageError(format string, args ...any) error {
	c.usage(c.stderr)
	_, _ = fmt.Fprintln(c.stderr)
	return exitcodes.Errorf(exitcodes.Usage, format, args...)
}

// exit prints err once and returns the matching status.
func (c *command) exit(err error) int {
	if err == nil {
		return exitcodes.Success
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = exitcodes.New(exitcodes.Interrupted, err)
	}
	_, _ = fmt.Fprintf(c.stderr, "Error: %v\n", err)
	return exitcodes.Code(err)
}

func parseStyle(name string) (report.Style, error) {
	style, err := report.ParseStyle(name)
	if err != nil {
		return style, exitcodes.New(exitcodes.Usage, err)
	}
	return style, nil
}

// requireFiles checks that every path names a regular file.
func requireFiles(paths []string) error {
	for _, p := range paths {
		ok, err := fileExists(p)
		if err != nil {
			return exitcodes.Errorf(exitcodes.NotReadable, "cannot access %q: %w", p, err)
		}
		if !ok {
			return exitcodes.Errorf(exitcodes.NoFile, "%q is no file", p)
		}
	}
	return nil
}

func readInput(p string) ([]byte, error) {
	data, err := osReadFile(p)
	if err != nil {
		return nil, exitcodes.Errorf(exitcodes.NotReadable, "cannot read file %q: %w", p, err)
	}
	return data, nil
}

// readReport loads a report file and also returns its raw content.
func readReport(p string) (*report.Report, []byte, error) {
	data, err := readInput(p)
	if err != nil {
		return nil, nil, err
	}
	rep, err := report.Read(bytes.NewReader(data))
	if err != nil {
		return nil, nil, exitcodes.Errorf(exitcodes.NotWellFormed, "%s: %w", p, err)
	}
	return rep, data, nil
}

func writeOutput(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return exitcodes.Errorf(exitcodes.NotWritable, "cannot write output: %w", err)
	}
	return nil
}

func writeOutputFile(p string, data []byte) error {
	if err := osWriteFile(p, data, 0o644); err != nil {
		return exitcodes.Errorf(exitcodes.NotWritable, "cannot write file %q: %w", p, err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
