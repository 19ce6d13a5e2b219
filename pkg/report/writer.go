package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"time"
)

// CreatedLayout is the timestamp layout of the "created" header line.
const CreatedLayout = time.ANSIC

// Writer writes report lines in one Style. The first write error is kept
// and returned by Flush; later writes become no-ops.
type Writer struct {
	w     *bufio.Writer
	style Style
	err   error
}

func NewWriter(w io.Writer, style Style) *Writer {
	return &Writer{w: bufio.NewWriter(w), style: style}
}

func (w *Writer) Style() Style {
	return w.style
}

func (w *Writer) line(s string) {
	if w.err != nil {
		return
	}
	if _, err := w.w.WriteString(s); err != nil {
		w.err = err
		return
	}
	w.err = w.w.WriteByte('\n')
}

// Comment writes a comment line.
func (w *Writer) Comment(format string, args ...any) {
	w.line(w.style.CommentChar() + " " + fmt.Sprintf(format, args...))
}

// Created writes the "created <time> by <tool> v<version>" comment.
func (w *Writer) Created(at time.Time, tool, version string) {
	w.Comment("created %s by %s v%s", at.Format(CreatedLayout), tool, version)
}

// Section writes a group header.
func (w *Writer) Section(key string) {
	w.line("[" + key + "]")
}

// Pair writes a key/value line.
func (w *Writer) Pair(key, value string) {
	w.line(key + w.style.Separator() + value)
}

// Size writes a key with an integer value.
func (w *Writer) Size(key string, size int64) {
	w.Pair(key, strconv.FormatInt(size, 10))
}

// Blank writes an empty line.
func (w *Writer) Blank() {
	w.line("")
}

// Flush writes buffered lines and returns the first error seen.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	return w.w.Flush()
}
