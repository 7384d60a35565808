package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpload(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/storage/")
	require.NoError(t, err)
	require.NoError(t, store.EnsureBucket("product-images"))

	url, err := store.Upload("product-images", "abc.png", strings.NewReader("image bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/storage/product-images/abc.png", url)

	content, err := os.ReadFile(filepath.Join(store.Root(), "product-images", "abc.png"))
	require.NoError(t, err)
	assert.Equal(t, "image bytes", string(content))
}

func TestUploadUnprovisionedBucket(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/storage")
	require.NoError(t, err)

	_, err = store.Upload("missing-bucket", "abc.png", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrBucketNotFound)
}

func TestUploadOverwritesExistingObject(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/storage")
	require.NoError(t, err)
	require.NoError(t, store.EnsureBucket("product-images"))

	_, err = store.Upload("product-images", "abc.png", strings.NewReader("first"))
	require.NoError(t, err)
	_, err = store.Upload("product-images", "abc.png", strings.NewReader("second"))
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(store.Root(), "product-images", "abc.png"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(content))
}

func TestPublicURL(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/storage/")
	require.NoError(t, err)

	// Trailing slash on the base URL is normalized
	assert.Equal(t, "/storage/product-images/x.jpg", store.PublicURL("product-images", "x.jpg"))
}
