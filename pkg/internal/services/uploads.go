package services

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// UploadWebRoot is the public path uploaded files are served under.
const UploadWebRoot = "/uploads"

// SaveUpload writes an uploaded image to disk under a collision-free
// name and returns the public path it will be served from. Only images
// are accepted; everything else is a validation failure.
func SaveUpload(c *fiber.Ctx, file *multipart.FileHeader, dir string) (string, error) {
	if !strings.HasPrefix(file.Header.Get(fiber.HeaderContentType), "image/") {
		return "", fmt.Errorf("featured image must be an image file")
	}

	name := fmt.Sprintf("%s%s", uuid.NewString(), strings.ToLower(filepath.Ext(file.Filename)))
	if err := c.SaveFile(file, filepath.Join(dir, name)); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s", UploadWebRoot, name), nil
}
