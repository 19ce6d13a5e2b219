// Package htmlreport renders a report as an XHTML document with one table
// per group.
package htmlreport

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/datatug/dirstats/pkg/fsutils"
	"github.com/datatug/dirstats/pkg/keywords"
	"github.com/datatug/dirstats/pkg/report"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

const (
	Tool    = "dir-stats-ini2html"
	Version = "1.2.0"

	// ErrorMarker is appended to the key of an entry whose size is not a number.
	ErrorMarker = " {{ERROR}}"
	// EmptyGroupText fills the body of a group without entries.
	EmptyGroupText = "No matching files found."

	ClassEven = "teven"
	ClassOdd  = "todd"
	ClassMark = "mark"
)

// Row is one rendered entry.
type Row struct {
	Key   string
	Size  string
	Unit  string
	Class string
}

// Table holds the data shown for one group.
type Table struct {
	Caption string
	Rows    []Row
	Files   int
	Size    int64
}

// Footer is the subtotal line, e.g. "avi: 2 objects, 1.50 KiB".
func (t Table) Footer() string {
	size, unit := fsutils.SizeAndUnit(t.Size)
	return fmt.Sprintf("%s: %d objects, %s %s", t.Caption, t.Files, size, unit)
}

// BuildTables sorts rep and turns every group into a Table. Keys matching
// words get the mark class; unparsable sizes are flagged on the key and
// count as zero bytes.
func BuildTables(rep *report.Report, words *keywords.Matcher) []Table {
	rep.Sort()
	tables := make([]Table, 0, len(rep.Groups()))
	for _, g := range rep.Groups() {
		t := Table{Caption: g.Key}
		for _, e := range g.Entries() {
			key := e.Key
			size, err := e.Size()
			if err != nil {
				size = 0
				key += ErrorMarker
			}
			class := ClassEven
			if t.Files%2 == 1 {
				class = ClassOdd
			}
			if words != nil && words.Match(key) {
				class += " " + ClassMark
			}
			value, unit := fsutils.SizeAndUnit(size)
			t.Rows = append(t.Rows, Row{Key: key, Size: value, Unit: unit, Class: class})
			t.Files++
			t.Size += size
		}
		tables = append(tables, t)
	}
	return tables
}

// Render writes the full document for rep.
func Render(out io.Writer, rep *report.Report, title string, words *keywords.Matcher, created time.Time) error {
	w := bufio.NewWriter(out)
	writeLeader(w, title)
	for _, t := range BuildTables(rep, words) {
		writeTable(w, t)
	}
	writeTrailer(w, created)
	return w.Flush()
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// escape also replaces ill-formed UTF-8 and runes XML 1.0 does not allow,
// such as control characters, with U+FFFD.
func escape(s string) string {
	t := transform.Chain(runes.ReplaceIllFormed(), runes.Map(xmlRune))
	if clean, _, err := transform.String(t, s); err == nil {
		s = clean
	}
	return escaper.Replace(s)
}

func xmlRune(r rune) rune {
	switch {
	case r == '\t', r == '\n', r == '\r',
		r >= 0x20 && r <= 0xD7FF,
		r >= 0xE000 && r <= 0xFFFD,
		r >= 0x10000 && r <= 0x10FFFF:
		return r
	}
	return utf8.RuneError
}

func writeLeader(w *bufio.Writer, title string) {
	title = escape(title)
	_, _ = w.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Transitional//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
<meta http-equiv="Content-Type" content="text/html; charset=UTF-8" />
<title>` + title + `</title>
<style type="text/css">
html, body { background-color: #fff; color: #000; }
caption { text-align: center; font-size: 150%; font-weight: bold }
th { text-align: center; font-weight: bold; }
tr.teven td { background-color: #eee; color: #000; }
tr.todd td { }
tr.mark td { background-color: #ff0; color: #000; }
tfoot td { text-align: center; }
</style>
</head>
<body>
<h1>` + title + `</h1>
`)
}

func writeTable(w *bufio.Writer, t Table) {
	caption := escape(t.Caption)
	_, _ = w.WriteString(`<hr />
<table width="100%">
<caption>` + caption + `</caption>
<colgroup>
<col width="88%" />
<col width="10%" />
<col width="2%" />
</colgroup>
<thead>
<tr><th>File</th><th>Size</th><th>Unit</th></tr>
</thead>
<tfoot>
<tr><td colspan="3">` + escape(t.Footer()) + `</td></tr>
</tfoot>
<tbody>
`)
	if len(t.Rows) == 0 {
		_, _ = w.WriteString(`<tr><td colspan="3" align="center">` + EmptyGroupText + "</td></tr>\n")
	}
	for _, r := range t.Rows {
		_, _ = fmt.Fprintf(w, "<tr class=\"%s\"><td>%s</td><td align=\"right\">%s</td><td>%s</td></tr>\n",
			r.Class, escape(r.Key), r.Size, r.Unit)
	}
	_, _ = w.WriteString("</tbody>\n</table>\n")
}

func writeTrailer(w *bufio.Writer, created time.Time) {
	_, _ = fmt.Fprintf(w, "<hr />\n<div align=\"right\"><em>Created %s by %s v%s</em></div>\n</body>\n</html>",
		escape(created.Format(report.CreatedLayout)), Tool, Version)
}

// OutputName is prefix + base name of input + suffix + "." + extension.
func OutputName(input, prefix, suffix, extension string) string {
	return prefix + filepath.Base(input) + suffix + "." + extension
}
