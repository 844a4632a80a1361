package storage

import (
	"context"
	"io"
)

// Storage defines the interface for writing run artifacts: the output
// spreadsheet and the optional raw-response dump.
type Storage interface {
	// Put replaces the file at key with content and returns its path.
	// Readers never observe a partially written file.
	Put(ctx context.Context, key string, content io.Reader, contentType string) (string, error)

	// Exists checks if a file exists at the given key.
	Exists(ctx context.Context, key string) (bool, error)
}
