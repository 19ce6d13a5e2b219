// Package files abstracts the directory listing and stat calls a tree walk
// needs, so a walk can run against the local disk or a fake tree.
package files

import (
	"context"
	"os"
)

type Store interface {
	// ReadDir lists a directory without following symlinks.
	ReadDir(ctx context.Context, name string) ([]os.DirEntry, error)
	// Stat follows symlinks.
	Stat(ctx context.Context, name string) (os.FileInfo, error)
}
