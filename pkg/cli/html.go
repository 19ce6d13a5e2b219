package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"

	"github.com/datatug/dirstats/pkg/htmlreport"
	"github.com/datatug/dirstats/pkg/keywords"
)

// RunHTML implements dir-stats-ini2html.
func RunHTML(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	c := newCommand(htmlreport.Tool, htmlreport.Version, "file...", stdout, stderr)
	c.footer = `"file" is one or more reports that are converted to HTML files.`

	html := c.settings.HTML
	var prefix, suffix, extension, title string
	words := stringList(c.settings.Words)
	c.stringVar(&prefix, "p", "prefix", "PREFIX", html.Prefix,
		"The prefix for all file names. Defaults to nothing.")
	c.stringVar(&suffix, "s", "suffix", "SUFFIX", html.Suffix,
		"The suffix for all file names. Defaults to nothing.")
	c.stringVar(&extension, "e", "extension", "EXTENSION", firstNonEmpty(html.Extension, "html"),
		`The extension of the HTML files. Defaults to "html".`)
	c.stringVar(&title, "t", "title", "TITLE", html.Title,
		"The title of the HTML files. Defaults to the input file name.")
	c.listVar(&words, "w", "word", "WORD",
		"Highlight entries containing WORD, ignoring case. Can be given multiple times.")

	done, err := c.parse(args)
	if done {
		return c.exit(err)
	}
	return c.exit(c.renderHTML(ctx, prefix, suffix, extension, title, words))
}

func (c *command) renderHTML(ctx context.Context, prefix, suffix, extension, title string, words []string) error {
	inputs := c.args()
	if len(inputs) == 0 {
		return c.usageError("no file given")
	}
	if err := requireFiles(inputs); err != nil {
		return err
	}

	matcher := keywords.New(words...)
	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		rep, _, err := readReport(input)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		docTitle := firstNonEmpty(title, filepath.Base(input))
		if err = htmlreport.Render(&buf, rep, docTitle, matcher, timeNow()); err != nil {
			return err
		}
		output := htmlreport.OutputName(input, prefix, suffix, extension)
		if err = writeOutputFile(output, buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}
