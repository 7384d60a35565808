package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Sididaher/achat-app/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockUploader struct {
	bucket string
	name   string
	body   string
	err    error
}

func (m *mockUploader) Upload(bucket, name string, data io.Reader) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.bucket = bucket
	m.name = name
	content, _ := io.ReadAll(data)
	m.body = string(content)
	return "/storage/" + bucket + "/" + name, nil
}

func newUploadApp(uploader Uploader) *fiber.App {
	app := fiber.New()
	handler := NewUploadHandler(uploader, "product-images")
	app.Post("/uploads", handler.Upload)
	return app
}

func multipartRequest(t *testing.T, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = io.Copy(part, strings.NewReader(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/uploads", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUpload(t *testing.T) {
	uploader := &mockUploader{}
	app := newUploadApp(uploader)

	resp, err := app.Test(multipartRequest(t, "photo.png", "fake image bytes"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, "product-images", uploader.bucket)
	assert.Equal(t, "fake image bytes", uploader.body)

	// Randomized name keeps the original extension, never the original name
	assert.True(t, strings.HasSuffix(uploader.name, ".png"))
	assert.NotEqual(t, "photo.png", uploader.name)
	assert.Equal(t, uploader.name, body["name"])
	assert.Equal(t, "/storage/product-images/"+uploader.name, body["url"])
}

func TestUploadNamesAreUnique(t *testing.T) {
	uploader := &mockUploader{}
	app := newUploadApp(uploader)

	resp, err := app.Test(multipartRequest(t, "photo.png", "one"))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	first := uploader.name

	resp, err = app.Test(multipartRequest(t, "photo.png", "two"))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	assert.NotEqual(t, first, uploader.name)
}

func TestUploadWithoutFile(t *testing.T) {
	app := newUploadApp(&mockUploader{})

	req := httptest.NewRequest("POST", "/uploads", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploadMissingBucket(t *testing.T) {
	app := newUploadApp(&mockUploader{err: storage.ErrBucketNotFound})

	resp, err := app.Test(multipartRequest(t, "photo.png", "bytes"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["error"], "product-images")
}
