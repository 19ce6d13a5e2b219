// Package summary re-keys the entries of a report by their parent directory
// and keeps the directories that hold at least a given number of bytes.
package summary

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/datatug/dirstats/pkg/fsutils"
	"github.com/datatug/dirstats/pkg/report"
)

const (
	Tool    = "dir-stats-summary"
	Version = "1.0.0"

	// DefaultLimit is the minimum directory size reported.
	DefaultLimit int64 = 50000000
)

// DirTotal is the summed size of the entries directly inside Dir.
type DirTotal struct {
	Dir  string
	Size int64
}

// Aggregate merges every group of rep and sums sizes per parent directory.
// Values that do not parse count as zero. The result is sorted by Dir.
func Aggregate(rep *report.Report) []DirTotal {
	sums := make(map[string]int64)
	for _, g := range rep.Groups() {
		for _, e := range g.Entries() {
			size, err := e.Size()
			if err != nil {
				size = 0
			}
			sums[fsutils.ParentDir(e.Key)] += size
		}
	}
	totals := make([]DirTotal, 0, len(sums))
	for dir, size := range sums {
		totals = append(totals, DirTotal{Dir: dir, Size: size})
	}
	slices.SortFunc(totals, func(a, b DirTotal) int {
		return strings.Compare(a.Dir, b.Dir)
	})
	return totals
}

// Filter returns the totals of at least limit bytes, keeping their order.
func Filter(totals []DirTotal, limit int64) []DirTotal {
	kept := make([]DirTotal, 0, len(totals))
	for _, t := range totals {
		if t.Size >= limit {
			kept = append(kept, t)
		}
	}
	return kept
}

// Section is the filtered summary of one input report.
type Section struct {
	Name string
	Dirs []DirTotal
}

// Summarize aggregates and filters one report into a section.
func Summarize(name string, rep *report.Report, limit int64) Section {
	return Section{Name: name, Dirs: Filter(Aggregate(rep), limit)}
}

// Totals returns the number of directories and their summed size.
func (s Section) Totals() (dirs int, size int64) {
	for _, d := range s.Dirs {
		size += d.Size
	}
	return len(s.Dirs), size
}

// Write serializes summary sections under a header naming the limit.
func Write(out io.Writer, sections []Section, limit int64, style report.Style, created time.Time) error {
	w := report.NewWriter(out, style)
	w.Created(created, Tool, Version)
	w.Comment("using a limit of %d bytes", limit)
	for _, s := range sections {
		w.Blank()
		w.Section(s.Name)
		for _, d := range s.Dirs {
			w.Size(d.Dir, d.Size)
		}
		dirs, size := s.Totals()
		w.Comment("%s: %d directories with %d bytes", s.Name, dirs, size)
	}
	return w.Flush()
}
