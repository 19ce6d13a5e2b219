package cli

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/datatug/dirstats/pkg/exitcodes"
	"github.com/datatug/dirstats/pkg/fsutils"
	"github.com/datatug/dirstats/pkg/htmlmarker"
	"github.com/datatug/dirstats/pkg/keywords"
)

var readLines = fsutils.ReadLines

// RunMarker implements dir-stats-htmlmarker.
func RunMarker(_ context.Context, args []string, stdout, stderr io.Writer) int {
	c := newCommand(htmlmarker.Tool, htmlmarker.Version, "htmlfile", stdout, stderr)
	c.footer = `"htmlfile" is the HTML file that shall be parsed.`

	var showExitCodes bool
	var wordFile, outFile string
	words := stringList(c.settings.Words)
	c.boolVar(&showExitCodes, "x", "exitcodes", "Display a list of possible exit codes and exit.")
	c.listVar(&words, "w", "word", "WORD",
		"Search for the keyword WORD. Can be given multiple times.")
	c.stringVar(&wordFile, "f", "wordfile", "FILENAME", "",
		"Read keywords from the file FILENAME, one per line.")
	c.stringVar(&outFile, "o", "outfile", "FILENAME", "",
		"Write the output to FILENAME instead of the standard output.")

	done, err := c.parse(args)
	if done {
		return c.exit(err)
	}
	if showExitCodes {
		c.printVersion(stdout)
		exitcodes.Print(stdout)
		return exitcodes.Success
	}
	return c.exit(c.mark(words, wordFile, outFile))
}

func (c *command) mark(words []string, wordFile, outFile string) error {
	args := c.args()
	if len(args) != 1 {
		return c.usageError("exactly one HTML file expected, got %d", len(args))
	}
	input := args[0]
	if err := requireFiles(args); err != nil {
		return err
	}
	if wordFile != "" {
		lines, err := readLines(wordFile)
		if err != nil {
			return exitcodes.Errorf(exitcodes.NotReadable, "cannot read word file %q: %w", wordFile, err)
		}
		words = append(words, lines...)
	}

	data, err := readInput(input)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if _, err = htmlmarker.Mark(&buf, bytes.NewReader(data), keywords.New(words...)); err != nil {
		if errors.Is(err, htmlmarker.ErrNotWellFormed) {
			return exitcodes.Errorf(exitcodes.NotWellFormed, "%q is not well-formed: %w", input, err)
		}
		return err
	}
	if outFile == "" {
		return writeOutput(c.stdout, buf.Bytes())
	}
	return writeOutputFile(outFile, buf.Bytes())
}
