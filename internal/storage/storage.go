// Package storage holds employee photos in an object store (MinIO or GCS).
package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ObjectStorage defines common object operations across backends.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Bucket() string
}

// PhotoStore stores employee photos under a per-user key prefix.
type PhotoStore struct {
	backend ObjectStorage
}

// NewPhotoStore constructs a PhotoStore over the provided backend.
func NewPhotoStore(backend ObjectStorage) *PhotoStore {
	return &PhotoStore{backend: backend}
}

// EnsureBucket ensures the photo bucket exists.
func (s *PhotoStore) EnsureBucket(ctx context.Context) error {
	return s.backend.EnsureBucket(ctx)
}

// Store uploads a photo for the given user account and returns the generated
// object key. The original filename only contributes its extension.
func (s *PhotoStore) Store(ctx context.Context, userID int, filename string, r io.Reader, size int64) (string, error) {
	key := photoKey(userID, filename)
	contentType := contentTypeFor(filename)
	if err := s.backend.Put(ctx, key, r, size, contentType); err != nil {
		return "", err
	}
	return key, nil
}

// Open returns a reader for a stored photo together with its content type.
func (s *PhotoStore) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	reader, err := s.backend.Get(ctx, key)
	if err != nil {
		return nil, "", err
	}
	return reader, contentTypeFor(key), nil
}

// Delete removes a stored photo.
func (s *PhotoStore) Delete(ctx context.Context, key string) error {
	return s.backend.Delete(ctx, key)
}

func photoKey(userID int, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("photos/user_%d/%s%s", userID, uuid.NewString(), ext)
}

func contentTypeFor(filename string) string {
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename)))
	if contentType == "" {
		return "application/octet-stream"
	}
	return contentType
}
