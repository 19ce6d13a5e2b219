package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"

	"github.com/datatug/dirstats/pkg/summary"
)

// RunSummary implements dir-stats-summary.
func RunSummary(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	c := newCommand(summary.Tool, summary.Version, "file...", stdout, stderr)
	c.footer = `"file" is one or more reports written by dir-stats.`

	limit := summary.DefaultLimit
	if c.settings.Limit != nil {
		limit = *c.settings.Limit
	}
	var styleName string
	c.int64Var(&limit, "l", "limit", "BYTES", limit,
		"Only list directories holding at least BYTES bytes.")
	c.stringVar(&styleName, "s", "style", "STYLE", firstNonEmpty(c.settings.Style, "win"),
		`The output style, "win" or "unix". Defaults to "win".`)

	done, err := c.parse(args)
	if done {
		return c.exit(err)
	}
	return c.exit(c.summarize(ctx, styleName, limit))
}

func (c *command) summarize(ctx context.Context, styleName string, limit int64) error {
	style, err := parseStyle(styleName)
	if err != nil {
		return err
	}
	inputs := c.args()
	if len(inputs) == 0 {
		return c.usageError("no file given")
	}
	if err = requireFiles(inputs); err != nil {
		return err
	}

	sections := make([]summary.Section, 0, len(inputs))
	for _, input := range inputs {
		if err = ctx.Err(); err != nil {
			return err
		}
		rep, _, err := readReport(input)
		if err != nil {
			return err
		}
		sections = append(sections, summary.Summarize(filepath.Base(input), rep, limit))
	}

	var buf bytes.Buffer
	if err = summary.Write(&buf, sections, limit, style, timeNow()); err != nil {
		return err
	}
	return writeOutput(c.stdout, buf.Bytes())
}
