package domain

import (
	"context"
)

// SourceRepository defines the interface for reading post files from somewhere outside the store
// (a local directory, a GitHub repository).
// This allows the importer to be decoupled from a specific implementation.
type SourceRepository interface {
	// ListFiles returns slash-separated paths of every file in the source.
	ListFiles(ctx context.Context) ([]string, error)
	GetFileContents(ctx context.Context, path string) ([]byte, error)
	// Name identifies the source; it is part of the ID of every imported post.
	Name() string
}
