package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

type diskStorage struct {
	BaseDir string
}

// NewDiskStorage initializes a disk-backed storage rooted at baseDir.
// Keys are paths relative to baseDir.
func NewDiskStorage(baseDir string) *diskStorage {
	return &diskStorage{BaseDir: baseDir}
}

func (ds *diskStorage) Read(ctx context.Context, key string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := os.ReadFile(filepath.Join(ds.BaseDir, key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrDoesNotExist
	}
	return data, err
}

func (ds *diskStorage) Keys(ctx context.Context, prefix string) ([]string, error) {
	var matchedFiles []string

	searchPrefix := filepath.Join(ds.BaseDir, prefix)

	err := filepath.WalkDir(ds.BaseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasPrefix(path, searchPrefix) {
			matchedFiles = append(matchedFiles, path[len(ds.BaseDir)+1:])
		}
		return nil
	})

	return matchedFiles, err
}
