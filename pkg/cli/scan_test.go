package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/datatug/dirstats/pkg/exitcodes"
	"github.com/datatug/dirstats/pkg/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.avi"), "12345")
	writeFile(t, filepath.Join(root, "sub", "B.AVI"), "123")
	writeFile(t, filepath.Join(root, "sub", "c.txt"), "1")
	writeFile(t, filepath.Join(root, "skip", "d.avi"), "1234567")
	return root
}

func TestRunScan(t *testing.T) {
	root := makeTree(t)

	code, stdout, stderr := run(t, RunScan, "-s", "unix", root, "AVI")
	require.Equal(t, exitcodes.Success, code, stderr)
	assert.Equal(t, "# created Wed Oct 14 17:10:00 2026 by dir-stats v1.0.3\n"+
		"\n"+
		"[avi]\n"+
		root+"/a.avi: 5\n"+
		root+"/skip/d.avi: 7\n"+
		root+"/sub/B.AVI: 3\n"+
		"# avi: 3 files, 15 bytes\n"+
		"\n"+
		"# total size: 3 files, 15 bytes\n", stdout)
}

func TestRunScan_DefaultsAndExclude(t *testing.T) {
	root := makeTree(t)
	excludeFile := writeFile(t, filepath.Join(t.TempDir(), "exclude"), "# comment\n*.AVI\n")

	code, stdout, stderr := run(t, RunScan, "--exclude", "skip/", "--exclude-from", excludeFile, root)
	require.Equal(t, exitcodes.Success, code, stderr)
	assert.True(t, strings.HasPrefix(stdout, "; created "))
	assert.Contains(t, stdout, root+"/a.avi = 5\n")
	assert.NotContains(t, stdout, "d.avi")
	assert.NotContains(t, stdout, "B.AVI")
	for _, g := range []string{"[avi]", "[mpeg]", "[mpg]", "[wmv]"} {
		assert.Contains(t, stdout, g+"\n")
	}
	assert.Contains(t, stdout, "; total size: 1 files, 5 bytes\n")
}

func TestRunScan_GitIgnore(t *testing.T) {
	root := makeTree(t)
	writeFile(t, filepath.Join(root, ".gitignore"), "skip/\n")

	code, stdout, stderr := run(t, RunScan, "-g", root)
	require.Equal(t, exitcodes.Success, code, stderr)
	assert.Contains(t, stdout, "; avi: 2 files, 8 bytes\n")
	assert.NotContains(t, stdout, "d.avi")
}

func TestRunScan_Settings(t *testing.T) {
	root := makeTree(t)
	withSettings(t, settings.Settings{Style: "unix", Extensions: []string{"txt"}, Exclude: []string{"sub/"}}, nil)

	code, stdout, _ := run(t, RunScan, root)
	assert.Equal(t, exitcodes.Success, code)
	assert.Contains(t, stdout, "[txt]\n# txt: 0 files, 0 bytes\n")

	code, stdout, _ = run(t, RunScan, "--style=win", root, "*")
	assert.Equal(t, exitcodes.Success, code)
	assert.Contains(t, stdout, root+"/skip/d.avi = 7\n")
	assert.NotContains(t, stdout, "/sub/")
}

func TestRunScan_Errors(t *testing.T) {
	root := makeTree(t)

	t.Run("bad_style", func(t *testing.T) {
		code, _, stderr := run(t, RunScan, "-s", "mac", root)
		assert.Equal(t, exitcodes.Usage, code)
		assert.Contains(t, stderr, "unknown style")
	})

	t.Run("not_a_directory", func(t *testing.T) {
		code, _, stderr := run(t, RunScan, filepath.Join(root, "a.avi"))
		assert.Equal(t, exitcodes.NoFile, code)
		assert.Contains(t, stderr, "is no directory")
	})

	t.Run("missing", func(t *testing.T) {
		code, _, _ := run(t, RunScan, filepath.Join(root, "missing"))
		assert.Equal(t, exitcodes.NoFile, code)
	})

	t.Run("stat_error", func(t *testing.T) {
		old := dirExists
		defer func() {
			dirExists = old
		}()
		dirExists = func(string) (bool, error) { return false, os.ErrPermission }
		code, _, _ := run(t, RunScan, root)
		assert.Equal(t, exitcodes.NotReadable, code)
	})

	t.Run("exclude_file_missing", func(t *testing.T) {
		code, _, stderr := run(t, RunScan, "--exclude-from", filepath.Join(root, "none"), root)
		assert.Equal(t, exitcodes.NotReadable, code)
		assert.Contains(t, stderr, "exclude file")
	})

	t.Run("not_writable", func(t *testing.T) {
		code := RunScan(context.Background(), []string{root}, failingWriter{}, &strings.Builder{})
		assert.Equal(t, exitcodes.NotWritable, code)
	})

	t.Run("interrupted", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		var stderr strings.Builder
		code := RunScan(ctx, []string{root}, &strings.Builder{}, &stderr)
		assert.Equal(t, exitcodes.Interrupted, code)
		assert.True(t, errors.Is(ctx.Err(), context.Canceled))
	})
}
