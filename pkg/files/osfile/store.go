package osfile

import (
	"context"
	"os"

	"github.com/datatug/dirstats/pkg/files"
)

var osReadDir = os.ReadDir
var osStat = os.Stat

var _ files.Store = (*Store)(nil)

// Store reads the local file system.
type Store struct{}

func (s Store) ReadDir(ctx context.Context, name string) ([]os.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return osReadDir(name)
}

func (s Store) Stat(ctx context.Context, name string) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return osStat(name)
}

func NewStore() *Store {
	return &Store{}
}
