// Package local provides a filesystem-backed implementation of the
// BlobStore driven port. Objects are stored as plain files under a
// base directory and served under a configurable URL prefix.
package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
	"github.com/docvault-labs/docvault-cli/internal/core/ports/driven"
)

// BlobStore stores binary objects as files under a base directory.
type BlobStore struct {
	baseDir   string
	urlPrefix string
}

// Compile-time check that BlobStore implements the driven port.
var _ driven.BlobStore = (*BlobStore)(nil)

// NewBlobStore creates a filesystem blob store rooted at baseDir.
// If baseDir is empty, it defaults to ~/.docvault/blobs. urlPrefix is
// prepended to stored paths when building public URLs and defaults to
// "/blobs".
func NewBlobStore(baseDir, urlPrefix string) (*BlobStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		baseDir = filepath.Join(home, ".docvault", "blobs")
	}
	if urlPrefix == "" {
		urlPrefix = "/blobs"
	}
	urlPrefix = strings.TrimRight(urlPrefix, "/")

	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("creating blob directory: %w", err)
	}

	return &BlobStore{baseDir: baseDir, urlPrefix: urlPrefix}, nil
}

// Put stores the object under path and returns its public URL.
func (s *BlobStore) Put(ctx context.Context, path string, r io.Reader) (string, error) {
	fsPath, err := s.resolve(path)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(fsPath), 0700); err != nil {
		return "", fmt.Errorf("creating blob subdirectory: %w", err)
	}

	// Write to a temp file first so readers never observe a partial
	// object at the final path.
	tmp, err := os.CreateTemp(filepath.Dir(fsPath), ".put-*")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close() //nolint:errcheck
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("writing blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("closing blob: %w", err)
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("setting blob permissions: %w", err)
	}
	if err := os.Rename(tmpName, fsPath); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("storing blob: %w", err)
	}

	return s.URL(path), nil
}

// Open retrieves a stored object. Returns domain.ErrNotFound if no
// object exists at path.
func (s *BlobStore) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	fsPath, err := s.resolve(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(fsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("opening blob: %w", err)
	}
	return f, nil
}

// URL returns the public URL for a stored path without reading it.
func (s *BlobStore) URL(path string) string {
	return s.urlPrefix + "/" + strings.TrimLeft(path, "/")
}

// Dir returns the base directory objects are stored under.
func (s *BlobStore) Dir() string {
	return s.baseDir
}

// resolve maps a logical blob path to a filesystem path, rejecting
// anything that would escape the base directory.
func (s *BlobStore) resolve(path string) (string, error) {
	clean := filepath.Clean("/" + filepath.FromSlash(path))
	if clean == "/" {
		return "", fmt.Errorf("blob path %q: %w", path, domain.ErrInvalidInput)
	}
	return filepath.Join(s.baseDir, clean), nil
}
