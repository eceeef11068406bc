// Package localfs reads importable posts from a directory on disk.
package localfs

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dfryer1193/blogify/blog/domain"
)

var _ domain.SourceRepository = (*DirSource)(nil)

// DirSource is a domain.SourceRepository over a local directory tree.
type DirSource struct {
	root string
	fsys fs.FS
}

func NewDirSource(root string) (*DirSource, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", root, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("open source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", abs)
	}

	return &DirSource{root: abs, fsys: os.DirFS(abs)}, nil
}

func (d *DirSource) Name() string {
	return "file://" + filepath.ToSlash(d.root)
}

// ListFiles returns every regular file below the root as a slash-separated relative path.
func (d *DirSource) ListFiles(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := doublestar.Glob(d.fsys, "**", doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", d.root, err)
	}
	return files, nil
}

func (d *DirSource) GetFileContents(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !fs.ValidPath(path) {
		return nil, fmt.Errorf("invalid path %q", path)
	}

	content, err := fs.ReadFile(d.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return content, nil
}
