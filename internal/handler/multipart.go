package handler

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// saveUploadedFile stores a multipart file under the OS temp directory with a
// random name, preserving the original extension. The caller is responsible
// for removing the file once the upload has been handed off.
func saveUploadedFile(c *gin.Context, fh *multipart.FileHeader) (string, error) {
	name := uuid.NewString() + filepath.Ext(fh.Filename)
	dst := filepath.Join(os.TempDir(), name)
	if err := c.SaveUploadedFile(fh, dst); err != nil {
		return "", fmt.Errorf("failed to save uploaded file: %w", err)
	}
	return dst, nil
}

// formFile returns the saved local path of a named multipart file, or "" when
// the field is absent.
func formFile(c *gin.Context, field string) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return "", nil
	}
	return saveUploadedFile(c, fh)
}
