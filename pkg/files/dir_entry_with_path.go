package files

import (
	"os"

	"github.com/datatug/dirstats/pkg/fsutils"
)

// EntryWithDirPath is a directory entry together with the directory it was
// listed from. Dir is kept exactly as the walk built it.
type EntryWithDirPath struct {
	os.DirEntry
	Dir string
}

func (c EntryWithDirPath) FullName() string {
	name := c.Name()
	return fsutils.JoinPath(c.Dir, name)
}

func (c EntryWithDirPath) DirPath() string {
	return c.Dir
}

func (c EntryWithDirPath) String() string {
	return c.FullName()
}

func NewEntryWithDirPath(entry os.DirEntry, dir string) *EntryWithDirPath {
	if name := entry.Name(); HasPathSeparator(name) {
		panic("dir entry name can not have path: " + name)
	}
	return &EntryWithDirPath{
		Dir:      dir,
		DirEntry: entry,
	}
}
