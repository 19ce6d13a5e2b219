package cli

import (
	"context"
	"io"
	"path/filepath"

	"github.com/datatug/dirstats/pkg/browse"
	"github.com/datatug/dirstats/pkg/exitcodes"
	"github.com/rivo/tview"
)

type application interface {
	Run() error
	Stop()
}

var newApp = func() *tview.Application {
	return tview.NewApplication()
}

var runApp = func(ctx context.Context, app application) error {
	stop := context.AfterFunc(ctx, app.Stop)
	defer stop()
	return app.Run()
}

// RunBrowse implements dir-stats-browse.
func RunBrowse(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	c := newCommand(browse.Tool, browse.Version, "file", stdout, stderr)
	c.footer = `"file" is a report written by dir-stats. Keys: Tab switches panes, ` +
		`s toggles the raw report, q or Esc quits.`

	done, err := c.parse(args)
	if done {
		return c.exit(err)
	}
	return c.exit(c.browse(ctx))
}

func (c *command) browse(ctx context.Context) error {
	args := c.args()
	if len(args) != 1 {
		return c.usageError("exactly one report file expected, got %d", len(args))
	}
	if err := requireFiles(args); err != nil {
		return err
	}
	rep, data, err := readReport(args[0])
	if err != nil {
		return err
	}

	app := newApp()
	browse.Setup(app, rep, string(data), filepath.Base(args[0]))
	if err = runApp(ctx, app); err != nil {
		return exitcodes.Errorf(exitcodes.NotWritable, "cannot run terminal UI: %w", err)
	}
	return ctx.Err()
}
