package model

import (
	"errors"
	"io/fs"
	"os"
)

// UploadArtifact is an uploaded file buffered on local disk until it is
// handed to the media store.
type UploadArtifact struct {
	Path        string
	Filename    string
	ContentType string
	Size        int64
}

// Cleanup removes the buffered file. Safe to call more than once.
func (a *UploadArtifact) Cleanup() error {
	if a == nil || a.Path == "" {
		return nil
	}
	err := os.Remove(a.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
