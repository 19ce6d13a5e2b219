package cli

import (
	"path/filepath"
	"testing"

	"github.com/datatug/dirstats/pkg/exitcodes"
	"github.com/datatug/dirstats/pkg/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scanReport = `; created Wed Oct 14 17:10:00 2026 by dir-stats v1.0.3

[avi]
/media/films/a.avi = 600
/media/films/b.avi = 500
/media/clips/c.avi = 10
; avi: 3 files, 1110 bytes

[wmv]
/media/films/d.wmv = 100
/media/clips/e.wmv = oops
; wmv: 2 files, 100 bytes

; total size: 5 files, 1210 bytes
`

func TestRunSummary(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, filepath.Join(dir, "first.ini"), scanReport)
	second := writeFile(t, filepath.Join(dir, "second.ini"), "# unix style\n[mpg]\n/x/y.mpg: 2000\n")

	code, stdout, stderr := run(t, RunSummary, "-l", "1000", "--style", "unix", first, second)
	require.Equal(t, exitcodes.Success, code, stderr)
	assert.Equal(t, "# created Wed Oct 14 17:10:00 2026 by dir-stats-summary v1.0.0\n"+
		"# using a limit of 1000 bytes\n"+
		"\n"+
		"[first.ini]\n"+
		"/media/films: 1200\n"+
		"# first.ini: 1 directories with 1200 bytes\n"+
		"\n"+
		"[second.ini]\n"+
		"/x: 2000\n"+
		"# second.ini: 1 directories with 2000 bytes\n", stdout)
}

func TestRunSummary_DefaultLimit(t *testing.T) {
	p := writeFile(t, filepath.Join(t.TempDir(), "r.ini"), scanReport)

	code, stdout, _ := run(t, RunSummary, p)
	assert.Equal(t, exitcodes.Success, code)
	assert.Contains(t, stdout, "; using a limit of 50000000 bytes\n")
	assert.Contains(t, stdout, "; r.ini: 0 directories with 0 bytes\n")

	limit := int64(0)
	withSettings(t, settings.Settings{Limit: &limit}, nil)
	code, stdout, _ = run(t, RunSummary, p)
	assert.Equal(t, exitcodes.Success, code)
	assert.Contains(t, stdout, "/media/clips = 10\n")
	assert.Contains(t, stdout, "/media/films = 1200\n")
}

func TestRunSummary_Errors(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, filepath.Join(dir, "good.ini"), scanReport)
	bad := writeFile(t, filepath.Join(dir, "bad.ini"), "orphan = 1\n")

	tests := []struct {
		name string
		args []string
		code int
	}{
		{name: "bad_limit", args: []string{"-l", "lots", good}, code: exitcodes.Usage},
		{name: "bad_style", args: []string{"-s", "dos", good}, code: exitcodes.Usage},
		{name: "missing", args: []string{good, filepath.Join(dir, "none.ini")}, code: exitcodes.NoFile},
		{name: "directory", args: []string{dir}, code: exitcodes.NoFile},
		{name: "malformed", args: []string{good, bad}, code: exitcodes.NotWellFormed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := run(t, RunSummary, tt.args...)
			assert.Equal(t, tt.code, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, "Error: ")
		})
	}
}
