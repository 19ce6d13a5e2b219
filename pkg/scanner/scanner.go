// Package scanner walks a directory tree and groups the sizes of the files
// it finds by lowercased extension.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/datatug/dirstats/pkg/files"
	"github.com/datatug/dirstats/pkg/report"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	Tool    = "dir-stats"
	Version = "1.0.3"

	// AllFiles as an extension filter selects every file.
	AllFiles = "*"
	// NoExtensionGroup holds files whose name has no dot.
	NoExtensionGroup = "*"
	// EmptyExtensionGroup holds files whose name ends with a dot.
	EmptyExtensionGroup = " "
)

// DefaultExtensions is used when no extension filter is given.
var DefaultExtensions = []string{"avi", "mpeg", "mpg", "wmv"}

var ErrRootNotReadable = errors.New("base directory is not readable")

type Options struct {
	// Root is the directory to walk. Entry keys start with Root verbatim.
	Root string
	// Extensions filters files by extension, case-insensitively.
	// Empty means DefaultExtensions, and AllFiles anywhere means no filter.
	Extensions []string
	// Exclude holds gitignore-style patterns relative to Root.
	Exclude []gitignore.Pattern
}

type Scanner struct {
	store files.Store
	diag  io.Writer
	lower cases.Caser
}

// New returns a scanner that reports per-file failures to diag.
func New(store files.Store, diag io.Writer) *Scanner {
	if diag == nil {
		diag = io.Discard
	}
	return &Scanner{
		store: store,
		diag:  diag,
		lower: cases.Lower(language.Und),
	}
}

// Extension returns the group key for a file name before lowercasing.
func Extension(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return NoExtensionGroup
	}
	ext := name[i+1:]
	if ext == "" {
		return EmptyExtensionGroup
	}
	return ext
}

type walk struct {
	*Scanner
	rep      *report.Report
	filter   map[string]bool
	excluded gitignore.Matcher
}

// Scan walks opts.Root and returns a sorted report. Files that cannot be
// stat'ed and subdirectories that cannot be listed are reported to the
// diagnostic writer and left out; failing to list Root itself is an error.
func (s *Scanner) Scan(ctx context.Context, opts Options) (*report.Report, error) {
	w := walk{Scanner: s, rep: report.New()}

	extensions := opts.Extensions
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	if !slices.Contains(extensions, AllFiles) {
		w.filter = make(map[string]bool, len(extensions))
		for _, ext := range extensions {
			ext = s.lower.String(ext)
			w.filter[ext] = true
			w.rep.Group(ext)
		}
	}
	if len(opts.Exclude) > 0 {
		w.excluded = gitignore.NewMatcher(opts.Exclude)
	}

	if err := w.dir(ctx, opts.Root, nil); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrRootNotReadable, opts.Root, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w.rep.Sort()
	return w.rep, nil
}

func (w *walk) dir(ctx context.Context, dirPath string, rel []string) error {
	entries, err := w.store.ReadDir(ctx, dirPath)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		item := files.NewEntryWithDirPath(entry, dirPath)
		itemRel := append(slices.Clip(rel), entry.Name())
		if entry.IsDir() {
			if w.isExcluded(itemRel, true) {
				continue
			}
			if err := w.dir(ctx, item.FullName(), itemRel); err != nil {
				if ctx.Err() != nil {
					return err
				}
				_, _ = fmt.Fprintf(w.diag, "Error reading <%s>: %v\n", item.FullName(), err)
			}
			continue
		}
		if w.isExcluded(itemRel, false) {
			continue
		}
		w.file(ctx, item)
	}
	return nil
}

func (w *walk) file(ctx context.Context, item *files.EntryWithDirPath) {
	ext := w.lower.String(Extension(item.Name()))
	if w.filter != nil && !w.filter[ext] {
		return
	}
	fullName := item.FullName()
	info, err := w.store.Stat(ctx, fullName)
	if err != nil {
		_, _ = fmt.Fprintf(w.diag, "Error stat'ing <%s>\n", fullName)
		return
	}
	if info.IsDir() {
		// a symlink to a directory; the walk does not follow it
		return
	}
	w.rep.Group(ext).Set(report.NewEntry(fullName, info.Size()))
}

func (w *walk) isExcluded(rel []string, isDir bool) bool {
	if w.excluded == nil {
		return false
	}
	return w.excluded.Match(rel, isDir)
}
