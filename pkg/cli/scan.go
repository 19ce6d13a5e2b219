package cli

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/datatug/dirstats/pkg/exitcodes"
	"github.com/datatug/dirstats/pkg/files"
	"github.com/datatug/dirstats/pkg/files/osfile"
	"github.com/datatug/dirstats/pkg/scanner"
)

var newStore = func() files.Store {
	return osfile.NewStore()
}

// RunScan implements dir-stats.
func RunScan(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	c := newCommand(scanner.Tool, scanner.Version, "basedir [extension...]", stdout, stderr)
	c.footer = `"basedir" is the directory to analyze. The extensions default to ` +
		`avi, mpeg, mpg and wmv; "*" selects all files.`

	var styleName string
	var exclude stringList
	var excludeFrom string
	var useGitIgnore bool
	c.stringVar(&styleName, "s", "style", "STYLE", firstNonEmpty(c.settings.Style, "win"),
		`The output style, "win" or "unix". Defaults to "win".`)
	c.listVar(&exclude, "x", "exclude", "PATTERN",
		"Skip paths matching the gitignore-style PATTERN. Can be given multiple times.")
	c.stringVar(&excludeFrom, "", "exclude-from", "FILE", "",
		"Read exclude patterns from FILE.")
	c.boolVar(&useGitIgnore, "g", "gitignore", "Skip paths ignored by .gitignore files below basedir.")

	done, err := c.parse(args)
	if done {
		return c.exit(err)
	}
	return c.exit(c.scan(ctx, styleName, exclude, excludeFrom, useGitIgnore))
}

func (c *command) scan(ctx context.Context, styleName string, exclude []string, excludeFrom string, useGitIgnore bool) error {
	args := c.args()
	if len(args) == 0 {
		return c.usageError("no base directory given")
	}
	style, err := parseStyle(styleName)
	if err != nil {
		return err
	}

	root := args[0]
	ok, err := dirExists(root)
	if err != nil {
		return exitcodes.Errorf(exitcodes.NotReadable, "cannot access %q: %w", root, err)
	}
	if !ok {
		return exitcodes.Errorf(exitcodes.NoFile, "%q is no directory", root)
	}

	opts := scanner.Options{
		Root:       root,
		Extensions: c.settings.Extensions,
	}
	if len(args) > 1 {
		opts.Extensions = args[1:]
	}
	opts.Exclude = scanner.ParseExcludePatterns(append(c.settings.Exclude, exclude...))
	if excludeFrom != "" {
		patterns, err := scanner.LoadExcludeFile(excludeFrom)
		if err != nil {
			return exitcodes.Errorf(exitcodes.NotReadable, "cannot read exclude file %q: %w", excludeFrom, err)
		}
		opts.Exclude = append(opts.Exclude, patterns...)
	}
	if useGitIgnore {
		patterns, err := scanner.ReadGitIgnore(root)
		if err != nil {
			return exitcodes.Errorf(exitcodes.NotReadable, "cannot read .gitignore files: %w", err)
		}
		opts.Exclude = append(opts.Exclude, patterns...)
	}

	rep, err := scanner.New(newStore(), c.stderr).Scan(ctx, opts)
	if err != nil {
		if errors.Is(err, scanner.ErrRootNotReadable) {
			return exitcodes.New(exitcodes.NotReadable, err)
		}
		return err
	}

	var buf bytes.Buffer
	if err = scanner.Write(&buf, rep, style, timeNow()); err != nil {
		return err
	}
	return writeOutput(c.stdout, buf.Bytes())
}
