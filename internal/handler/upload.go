package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"pageturn/internal/apperr"
	"pageturn/internal/model"

	"github.com/labstack/echo/v4"
)

// bufferUpload copies the multipart file in field to a temp file. A missing
// file yields (nil, nil) so the caller decides whether it is required.
func bufferUpload(c echo.Context, field string, maxBytes int64, tempDir string) (*model.UploadArtifact, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, apperr.Input("File upload error: %v", err)
	}

	if fh.Size > maxBytes {
		return nil, apperr.Input("File upload error: File too large")
	}

	src, err := fh.Open()
	if err != nil {
		return nil, apperr.Input("File upload error: %v", err)
	}
	defer src.Close()

	dst, err := os.CreateTemp(tempDir, "pageturn-upload-*"+filepath.Ext(fh.Filename))
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}

	artifact := &model.UploadArtifact{
		Path:        dst.Name(),
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
	}

	n, err := io.Copy(dst, io.LimitReader(src, maxBytes+1))
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		artifact.Cleanup()
		return nil, fmt.Errorf("buffer upload: %w", err)
	}
	if n > maxBytes {
		artifact.Cleanup()
		return nil, apperr.Input("File upload error: File too large")
	}

	artifact.Size = n
	return artifact, nil
}
