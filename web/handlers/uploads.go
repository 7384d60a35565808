package handlers

import (
	"errors"
	"io"
	"path/filepath"

	"github.com/Sididaher/achat-app/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Uploader stores a file under a bucket and returns its public URL.
type Uploader interface {
	Upload(bucket, name string, data io.Reader) (string, error)
}

const maxUploadSize = 5 << 20

type UploadHandler struct {
	store  Uploader
	bucket string
}

func NewUploadHandler(store Uploader, bucket string) *UploadHandler {
	return &UploadHandler{store: store, bucket: bucket}
}

// Upload accepts a multipart file and stores it under a randomized name
// so repeated uploads of the same filename never collide.
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is required"})
	}
	if header.Size > maxUploadSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file exceeds the 5 MB limit"})
	}

	file, err := header.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read uploaded file"})
	}
	defer file.Close()

	name := uuid.NewString() + filepath.Ext(header.Filename)

	url, err := h.store.Upload(h.bucket, name, file)
	if err != nil {
		if errors.Is(err, storage.ErrBucketNotFound) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Storage bucket \"" + h.bucket + "\" not found. Create it before uploading images.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store uploaded file"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"url":  url,
		"name": name,
	})
}
