package scanner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/datatug/dirstats/pkg/files"
	"github.com/datatug/dirstats/pkg/files/osfile"
	"github.com/datatug/dirstats/pkg/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var created = time.Date(2026, time.October, 14, 17, 10, 0, 0, time.UTC)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0644))
}

func scan(t *testing.T, opts Options) (*report.Report, string) {
	t.Helper()
	var diag bytes.Buffer
	rep, err := New(osfile.NewStore(), &diag).Scan(context.Background(), opts)
	require.NoError(t, err)
	return rep, diag.String()
}

func render(t *testing.T, rep *report.Report, style report.Style) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, rep, style, created))
	return buf.String()
}

func groupKeys(rep *report.Report) []string {
	var keys []string
	for _, g := range rep.Groups() {
		keys = append(keys, g.Key)
	}
	return keys
}

func TestExtension(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"a.avi", "avi"},
		{"archive.tar.GZ", "GZ"},
		{"noext", NoExtensionGroup},
		{"odd.", EmptyExtensionGroup},
		{".bashrc", "bashrc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extension(tt.name))
		})
	}
}

func TestScan_SingleExtension(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.avi"), 100)
	writeFile(t, filepath.Join(root, "b.txt"), 200)
	writeFile(t, filepath.Join(root, "noext"), 5)

	rep, diag := scan(t, Options{Root: root, Extensions: []string{"avi"}})
	assert.Empty(t, diag)

	want := "; created Wed Oct 14 17:10:00 2026 by dir-stats v1.0.3\n" +
		"\n" +
		"[avi]\n" +
		root + "/a.avi = 100\n" +
		"; avi: 1 files, 100 bytes\n" +
		"\n" +
		"; total size: 1 files, 100 bytes\n"
	assert.Equal(t, want, render(t, rep, report.StyleWin))
}

func TestScan_BackslashInFileName(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("backslash is a path separator on windows")
	}
	root := t.TempDir()
	writeFile(t, filepath.Join(root, `a\b.avi`), 42)

	rep, diag := scan(t, Options{Root: root, Extensions: []string{"avi"}})
	assert.Empty(t, diag)
	out := render(t, rep, report.StyleWin)
	assert.Contains(t, out, root+`/a\b.avi = 42`+"\n")
	assert.Contains(t, out, "; avi: 1 files, 42 bytes\n")
}

func TestScan_UnixStyle(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.avi"), 100)

	rep, _ := scan(t, Options{Root: root, Extensions: []string{"avi"}})
	out := render(t, rep, report.StyleUnix)
	assert.True(t, strings.HasPrefix(out, "# created "))
	assert.Contains(t, out, root+"/a.avi: 100\n")
	assert.Contains(t, out, "# avi: 1 files, 100 bytes\n")
}

func TestScan_DefaultExtensions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "movies", "Clip.MPG"), 10)
	writeFile(t, filepath.Join(root, "movies", "deep", "x.wmv"), 20)
	writeFile(t, filepath.Join(root, "readme.txt"), 30)

	rep, _ := scan(t, Options{Root: root})
	assert.Equal(t, []string{"avi", "mpeg", "mpg", "wmv"}, groupKeys(rep))

	avi, _ := rep.Lookup("avi")
	assert.Equal(t, 0, avi.Len())
	mpg, _ := rep.Lookup("mpg")
	assert.Equal(t, []report.Entry{report.NewEntry(root+"/movies/Clip.MPG", 10)}, mpg.Entries())

	out := render(t, rep, report.StyleWin)
	assert.Contains(t, out, "[avi]\n; avi: 0 files, 0 bytes\n")
	assert.Contains(t, out, "; total size: 2 files, 30 bytes\n")
}

func TestScan_AllFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.avi"), 1)
	writeFile(t, filepath.Join(root, "B.AVI"), 2)
	writeFile(t, filepath.Join(root, "noext"), 3)
	writeFile(t, filepath.Join(root, "odd."), 4)
	writeFile(t, filepath.Join(root, "sub", "c.Txt"), 5)

	rep, _ := scan(t, Options{Root: root, Extensions: []string{"avi", "*"}})
	assert.Equal(t, []string{" ", "*", "avi", "txt"}, groupKeys(rep))

	avi, _ := rep.Lookup("avi")
	assert.Equal(t, []report.Entry{
		report.NewEntry(root+"/B.AVI", 2),
		report.NewEntry(root+"/a.avi", 1),
	}, avi.Entries())

	files, size := rep.Totals()
	assert.Equal(t, 5, files)
	assert.Equal(t, int64(15), size)
}

func TestScan_FilterIsCaseInsensitive(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.AvI"), 7)

	rep, _ := scan(t, Options{Root: root, Extensions: []string{"AVI"}})
	assert.Equal(t, []string{"avi"}, groupKeys(rep))
	avi, _ := rep.Lookup("avi")
	assert.Equal(t, 1, avi.Len())
}

func TestScan_Deterministic(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"z.avi", "a.avi", "m/n.avi", "m/a.mpg", "b.wmv"} {
		writeFile(t, filepath.Join(root, name), len(name))
	}
	first, _ := scan(t, Options{Root: root})
	second, _ := scan(t, Options{Root: root})
	assert.Equal(t, render(t, first, report.StyleWin), render(t, second, report.StyleWin))
}

func TestScan_DanglingSymlink(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ok.avi"), 1)
	link := filepath.Join(root, "gone.avi")
	if err := os.Symlink(filepath.Join(root, "missing"), link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	rep, diag := scan(t, Options{Root: root, Extensions: []string{"avi"}})
	assert.Equal(t, "Error stat'ing <"+link+">\n", diag)
	avi, _ := rep.Lookup("avi")
	assert.Equal(t, []report.Entry{report.NewEntry(root+"/ok.avi", 1)}, avi.Entries())
}

func TestScan_SymlinkToDirIsNotAFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "real", "a.avi"), 1)
	if err := os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "link.avi")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	rep, diag := scan(t, Options{Root: root, Extensions: []string{"avi"}})
	assert.Empty(t, diag)
	avi, _ := rep.Lookup("avi")
	assert.Equal(t, 1, avi.Len())
}

func TestScan_Exclude(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "keep", "a.avi"), 1)
	writeFile(t, filepath.Join(root, "cache", "b.avi"), 2)
	writeFile(t, filepath.Join(root, "keep", "c.tmp"), 3)

	patterns := ParseExcludePatterns([]string{"# comment", "", "cache/", "*.tmp"})
	rep, _ := scan(t, Options{Root: root, Extensions: []string{"*"}, Exclude: patterns})
	assert.Equal(t, []string{"avi"}, groupKeys(rep))
	avi, _ := rep.Lookup("avi")
	assert.Equal(t, []report.Entry{report.NewEntry(root+"/keep/a.avi", 1)}, avi.Entries())
}

func TestLoadExcludeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exclude")
	require.NoError(t, os.WriteFile(path, []byte("*.tmp\r\n\n# note\nbuild/\n"), 0644))

	patterns, err := LoadExcludeFile(path)
	require.NoError(t, err)
	assert.Len(t, patterns, 2)

	_, err = LoadExcludeFile(filepath.Join(t.TempDir(), "none"))
	assert.Error(t, err)
}

func TestReadGitIgnore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.avi"), 1)
	writeFile(t, filepath.Join(root, "cache", "b.avi"), 2)
	writeFile(t, filepath.Join(root, "sub", "c.avi"), 3)
	writeFile(t, filepath.Join(root, "sub", "d.avi"), 4)
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("cache/\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", ".gitignore"), []byte("c.avi\n"), 0644))

	patterns, err := ReadGitIgnore(root)
	require.NoError(t, err)
	rep, _ := scan(t, Options{Root: root, Extensions: []string{"avi"}, Exclude: patterns})
	avi, _ := rep.Lookup("avi")
	assert.Equal(t, []report.Entry{
		report.NewEntry(root+"/a.avi", 1),
		report.NewEntry(root+"/sub/d.avi", 4),
	}, avi.Entries())
}

func newMemStore() *files.MemStore {
	return files.NewMemStore().
		AddDir("media",
			files.NewFile("a.avi", files.Size(100)),
			files.NewDir("locked"),
			files.NewFile("secret.avi", files.Size(5)),
			files.NewDir("sub"),
			files.NewFile("dirlink.avi", files.Symlink(files.NewFileInfo("sub", true, 0))),
			files.NewFile("filelink.avi", files.Symlink(files.NewFileInfo("b.avi", false, 200))),
			files.NewFile("dangling.avi", files.Symlink(nil)),
		).
		AddDir("media/sub",
			files.NewFile("b.avi", files.Size(200)),
		).
		Fail("media/locked", os.ErrPermission).
		Fail("media/secret.avi", os.ErrPermission)
}

func TestScan_EntryLevelFailures(t *testing.T) {
	var diag bytes.Buffer
	rep, err := New(newMemStore(), &diag).Scan(context.Background(), Options{Root: "media", Extensions: []string{"avi"}})
	require.NoError(t, err)

	assert.Contains(t, diag.String(), "Error stat'ing <media/secret.avi>\n")
	assert.Contains(t, diag.String(), "Error stat'ing <media/dangling.avi>\n")
	assert.Contains(t, diag.String(), "Error reading <media/locked>")

	avi, _ := rep.Lookup("avi")
	assert.Equal(t, []report.Entry{
		report.NewEntry("media/a.avi", 100),
		report.NewEntry("media/filelink.avi", 200),
		report.NewEntry("media/sub/b.avi", 200),
	}, avi.Entries())
}

func TestScan_RootNotReadable(t *testing.T) {
	store := newMemStore().Fail("media", os.ErrPermission)
	_, err := New(store, nil).Scan(context.Background(), Options{Root: "media"})
	assert.True(t, errors.Is(err, ErrRootNotReadable))
	assert.True(t, errors.Is(err, os.ErrPermission))
}

func TestScan_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(newMemStore(), nil).Scan(ctx, Options{Root: "media"})
	assert.ErrorIs(t, err, context.Canceled)
}
