// Package storage provides a disk-backed object store standing in for a
// hosted storage bucket. Objects are written under root/bucket/name and
// served statically from the configured public base URL.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrBucketNotFound is returned when the target bucket has not been
// provisioned (its directory does not exist).
var ErrBucketNotFound = errors.New("storage bucket not found")

// LocalStore writes objects to the local filesystem.
type LocalStore struct {
	root    string
	baseURL string
}

// NewLocalStore creates a store rooted at root, serving objects under
// baseURL. The root directory is created, buckets are not: a bucket is
// provisioned by the operator (or EnsureBucket) before first use.
func NewLocalStore(root, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &LocalStore{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// EnsureBucket provisions a bucket directory.
func (s *LocalStore) EnsureBucket(bucket string) error {
	return os.MkdirAll(filepath.Join(s.root, bucket), 0o755)
}

// Upload writes the object and returns its public URL. An
// unprovisioned bucket yields ErrBucketNotFound so callers can fail
// softly with setup instructions.
func (s *LocalStore) Upload(bucket, name string, data io.Reader) (string, error) {
	dir := filepath.Join(s.root, bucket)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return "", ErrBucketNotFound
	}

	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create object: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, data); err != nil {
		return "", fmt.Errorf("failed to write object: %w", err)
	}

	return s.PublicURL(bucket, name), nil
}

// PublicURL returns the publicly addressable URL of an object.
func (s *LocalStore) PublicURL(bucket, name string) string {
	return s.baseURL + "/" + bucket + "/" + name
}

// Root returns the directory backing the store.
func (s *LocalStore) Root() string {
	return s.root
}
