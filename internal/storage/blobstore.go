// Package storage implements the file-backed blob store for attendance
// photos. Blobs are addressed by generated references and published
// atomically, so a reader never observes a partially written file.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio"
	"github.com/google/uuid"
)

// ErrNotFound is returned by Read when no blob exists under the reference.
var ErrNotFound = errors.New("blob not found")

// BlobStore stores opaque binary payloads as files in a single directory.
type BlobStore struct {
	dir string
}

// NewBlobStore opens (and creates if needed) the blob directory.
func NewBlobStore(dir string) (*BlobStore, error) {
	if dir == "" {
		return nil, errors.New("blob directory is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating blob directory: %w", err)
	}
	return &BlobStore{dir: dir}, nil
}

// Dir returns the blob directory path.
func (s *BlobStore) Dir() string {
	return s.dir
}

// NewRef generates a unique blob reference. Uniqueness comes from a random
// UUID, never from the wall clock, so two submissions within the same
// second can't collide. The extension is derived from the content type.
func NewRef(contentType string) string {
	return uuid.New().String() + extensionFor(contentType)
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/bmp":
		return ".bmp"
	default:
		return ".bin"
	}
}

// validRef rejects references that could escape the blob directory.
func validRef(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, ".") {
		return false
	}
	if strings.ContainsAny(ref, "/\\") {
		return false
	}
	return ref == filepath.Base(ref)
}

// Write stores the payload under the reference. The payload is written to a
// temporary file and renamed into place, so Read never sees a partial blob.
func (s *BlobStore) Write(ref string, data []byte) error {
	if !validRef(ref) {
		return fmt.Errorf("invalid blob reference %q", ref)
	}
	path := filepath.Join(s.dir, ref)
	if err := renameio.WriteFile(path, data, 0o640); err != nil {
		return fmt.Errorf("writing blob %s: %w", ref, err)
	}
	return nil
}

// Read returns the payload stored under the reference, or ErrNotFound.
func (s *BlobStore) Read(ref string) ([]byte, error) {
	if !validRef(ref) {
		return nil, ErrNotFound
	}
	data, err := os.ReadFile(filepath.Join(s.dir, ref))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading blob %s: %w", ref, err)
	}
	return data, nil
}

// Remove deletes the blob under the reference. Removing a missing blob is
// not an error; Remove is used as best-effort compensation when a metadata
// insert fails after the blob was already written.
func (s *BlobStore) Remove(ref string) error {
	if !validRef(ref) {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, ref)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing blob %s: %w", ref, err)
	}
	return nil
}

// Refs lists all blob references currently stored. Dotfiles and
// subdirectories are skipped; renameio temp files start with a dot, so an
// in-flight write never shows up here.
func (s *BlobStore) Refs() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading blob directory: %w", err)
	}
	var refs []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		refs = append(refs, e.Name())
	}
	return refs, nil
}
