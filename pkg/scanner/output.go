package scanner

import (
	"io"
	"time"

	"github.com/datatug/dirstats/pkg/report"
)

// Write serializes a scan report: the created header, one section per group
// closed by a subtotal comment, and a grand total.
func Write(out io.Writer, rep *report.Report, style report.Style, created time.Time) error {
	w := report.NewWriter(out, style)
	w.Created(created, Tool, Version)
	w.Blank()

	var totalFiles int
	var totalSize int64
	for _, g := range rep.Groups() {
		w.Section(g.Key)
		for _, e := range g.Entries() {
			w.Pair(e.Key, e.Value)
		}
		files, size := g.Totals()
		w.Comment("%s: %d files, %d bytes", g.Key, files, size)
		w.Blank()
		totalFiles += files
		totalSize += size
	}
	w.Comment("total size: %d files, %d bytes", totalFiles, totalSize)
	return w.Flush()
}
