package driven

import (
	"context"
	"io"
)

// BlobStore stores binary objects (project logos, avatars) under a
// path and maps each to a public URL.
type BlobStore interface {
	// Put stores the object under path and returns its public URL.
	Put(ctx context.Context, path string, r io.Reader) (string, error)

	// Open retrieves a stored object.
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// URL returns the public URL for a stored path without reading it.
	URL(path string) string
}
