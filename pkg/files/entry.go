package files

import (
	"io/fs"
	"os"
	"strings"
	"time"
)

// EntryOption configures an in-memory entry.
type EntryOption func(*DirEntry)

func Size(v int64) EntryOption {
	return func(d *DirEntry) {
		d.info.size = v
	}
}

func ModTime(v time.Time) EntryOption {
	return func(d *DirEntry) {
		d.info.modTime = v
	}
}

// Symlink turns the entry into a link to target. A nil target makes the
// link dangling.
func Symlink(target os.FileInfo) EntryOption {
	return func(d *DirEntry) {
		d.info.mode = os.ModeSymlink
		d.target = target
	}
}

// HasPathSeparator reports whether name holds a separator of the host OS.
// A backslash is an ordinary file name character outside Windows.
func HasPathSeparator(name string) bool {
	return strings.ContainsRune(name, '/') || strings.ContainsRune(name, os.PathSeparator)
}

// DirEntry is an os.DirEntry that lives in memory. Its info describes the
// entry itself, the way os.ReadDir reports it without following links.
type DirEntry struct {
	info   *FileInfo
	target os.FileInfo
}

var _ os.DirEntry = DirEntry{}

func newDirEntry(name string, mode os.FileMode, o ...EntryOption) DirEntry {
	if HasPathSeparator(name) {
		// It's OK to have panic here.
		panic("dir entry name can not have path: " + name)
	}
	d := DirEntry{info: &FileInfo{name: name, mode: mode}}
	for _, opt := range o {
		opt(&d)
	}
	return d
}

// NewFile returns a regular file entry.
func NewFile(name string, o ...EntryOption) DirEntry {
	return newDirEntry(name, 0, o...)
}

// NewDir returns a directory entry.
func NewDir(name string, o ...EntryOption) DirEntry {
	return newDirEntry(name, os.ModeDir, o...)
}

func (d DirEntry) Name() string      { return d.info.name }
func (d DirEntry) IsDir() bool       { return d.info.IsDir() }
func (d DirEntry) Type() os.FileMode { return d.info.mode.Type() }

func (d DirEntry) Info() (os.FileInfo, error) {
	return d.info, nil
}

// Target is what Stat reports for the entry: the link target for a
// symlink, the entry itself otherwise.
func (d DirEntry) Target() (os.FileInfo, error) {
	if d.info.mode&os.ModeSymlink == 0 {
		return d.info, nil
	}
	if d.target == nil {
		return nil, fs.ErrNotExist
	}
	return d.target, nil
}

// FileInfo is an in-memory os.FileInfo.
type FileInfo struct {
	name    string
	size    int64
	mode    os.FileMode
	modTime time.Time
}

// NewFileInfo builds the info of a file or directory, typically a link target.
func NewFileInfo(name string, isDir bool, size int64) *FileInfo {
	info := &FileInfo{name: name, size: size}
	if isDir {
		info.mode = os.ModeDir
	}
	return info
}

func (f *FileInfo) Name() string {
	if f == nil {
		return ""
	}
	return f.name
}
func (f *FileInfo) Size() int64 {
	if f == nil {
		return 0
	}
	return f.size
}
func (f *FileInfo) Mode() os.FileMode {
	if f == nil {
		return 0
	}
	return f.mode
}
func (f *FileInfo) ModTime() time.Time {
	if f == nil {
		return time.Time{}
	}
	return f.modTime
}
func (f *FileInfo) IsDir() bool {
	if f == nil {
		return false
	}
	return f.mode.IsDir()
}
func (f *FileInfo) Sys() any {
	return nil
}
