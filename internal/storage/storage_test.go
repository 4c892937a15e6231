package storage

import (
	"bytes"
	"context"
	"io"
	"regexp"
	"strings"
	"testing"
)

// stubBackend records object operations in memory.
type stubBackend struct {
	objects map[string][]byte
	types   map[string]string
	deleted []string
}

func newStubBackend() *stubBackend {
	return &stubBackend{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
	}
}

func (b *stubBackend) EnsureBucket(ctx context.Context) error {
	return nil
}

func (b *stubBackend) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	b.objects[key] = data
	b.types[key] = contentType
	return nil
}

func (b *stubBackend) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b.objects[key])), nil
}

func (b *stubBackend) Delete(ctx context.Context, key string) error {
	b.deleted = append(b.deleted, key)
	delete(b.objects, key)
	return nil
}

func (b *stubBackend) Bucket() string {
	return "test-bucket"
}

var photoKeyPattern = regexp.MustCompile(`^photos/user_7/[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.jpg$`)

func TestPhotoKeyLayout(t *testing.T) {
	key := photoKey(7, "portrait.jpg")
	if !photoKeyPattern.MatchString(key) {
		t.Fatalf("unexpected key layout: %s", key)
	}

	// The extension is lower-cased; the rest of the filename never leaks.
	upper := photoKey(7, "PORTRAIT.JPG")
	if !strings.HasSuffix(upper, ".jpg") {
		t.Fatalf("expected lower-cased extension, got %s", upper)
	}
	if strings.Contains(upper, "PORTRAIT") {
		t.Fatalf("original filename leaked into key: %s", upper)
	}

	// Keys are unique per upload even for the same filename.
	if photoKey(7, "portrait.jpg") == photoKey(7, "portrait.jpg") {
		t.Fatal("expected distinct keys for repeated uploads")
	}
}

func TestContentTypeFor(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"portrait.jpg", "image/jpeg"},
		{"PORTRAIT.JPG", "image/jpeg"},
		{"badge.png", "image/png"},
		{"no-extension", "application/octet-stream"},
	}
	for _, tt := range tests {
		if got := contentTypeFor(tt.filename); got != tt.want {
			t.Fatalf("contentTypeFor(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestPhotoStoreRoundTrip(t *testing.T) {
	backend := newStubBackend()
	photos := NewPhotoStore(backend)
	ctx := context.Background()

	key, err := photos.Store(ctx, 7, "portrait.jpg", strings.NewReader("fake-jpeg-bytes"), int64(len("fake-jpeg-bytes")))
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if !photoKeyPattern.MatchString(key) {
		t.Fatalf("unexpected key layout: %s", key)
	}
	if backend.types[key] != "image/jpeg" {
		t.Fatalf("expected image/jpeg, got %q", backend.types[key])
	}

	reader, contentType, err := photos.Open(ctx, key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer reader.Close()
	if contentType != "image/jpeg" {
		t.Fatalf("expected image/jpeg, got %q", contentType)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(data) != "fake-jpeg-bytes" {
		t.Fatalf("unexpected content: %q", data)
	}

	if err := photos.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(backend.deleted) != 1 || backend.deleted[0] != key {
		t.Fatalf("expected %s deleted, got %v", key, backend.deleted)
	}
}
