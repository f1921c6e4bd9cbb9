// Package storage holds the blob store behind photo attachments.
package storage

import (
	"context"
	"io"
)

// Storage reads and writes blobs by relative path.
type Storage interface {
	// Save writes content at path, creating parent directories as needed.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get opens the blob at path for reading. The caller closes it.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the blob at path. Deleting a missing blob is not an
	// error.
	Delete(ctx context.Context, path string) error
}
