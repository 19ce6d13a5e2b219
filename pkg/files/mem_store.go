package files

import (
	"context"
	"io/fs"
	"os"
	"strings"
)

var _ Store = (*MemStore)(nil)

// MemStore is a Store over an in-memory tree. Paths are joined with "/"
// exactly as a walk builds them.
type MemStore struct {
	dirs   map[string][]DirEntry
	failed map[string]error
}

func NewMemStore() *MemStore {
	return &MemStore{
		dirs:   make(map[string][]DirEntry),
		failed: make(map[string]error),
	}
}

// AddDir registers the listing of dir.
func (s *MemStore) AddDir(dir string, entries ...DirEntry) *MemStore {
	s.dirs[dir] = append(s.dirs[dir], entries...)
	return s
}

// Fail makes both ReadDir and Stat of p return err.
func (s *MemStore) Fail(p string, err error) *MemStore {
	s.failed[p] = err
	return s
}

func (s *MemStore) ReadDir(ctx context.Context, name string) ([]os.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.failed[name]; err != nil {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: err}
	}
	entries, ok := s.dirs[name]
	if !ok {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	}
	result := make([]os.DirEntry, len(entries))
	for i, e := range entries {
		result[i] = e
	}
	return result, nil
}

func (s *MemStore) Stat(ctx context.Context, name string) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.failed[name]; err != nil {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: err}
	}
	i := strings.LastIndexByte(name, '/')
	if i >= 0 {
		dir, base := name[:i], name[i+1:]
		for _, e := range s.dirs[dir] {
			if e.Name() != base {
				continue
			}
			info, err := e.Target()
			if err != nil {
				return nil, &fs.PathError{Op: "stat", Path: name, Err: err}
			}
			return info, nil
		}
	}
	if _, ok := s.dirs[name]; ok {
		return NewFileInfo(name[i+1:], true, 0), nil
	}
	return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
}
