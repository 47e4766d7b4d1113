package handler

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"pageturn/internal/apperr"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"validation", apperr.Validation("Missing required fields: title"), http.StatusBadRequest, `{"success":false,"error":"Missing required fields: title"}`},
		{"auth", apperr.Auth("Authentication required"), http.StatusUnauthorized, `{"success":false,"error":"Authentication required"}`},
		{"not found", apperr.NotFound("Book not found"), http.StatusNotFound, `{"success":false,"error":"Book not found"}`},
		{"upstream hides cause", apperr.Upstream("upload image", errors.New("cloud down")), http.StatusInternalServerError, `{"success":false,"error":"Server error"}`},
		{"unknown hides cause", errors.New("db locked"), http.StatusInternalServerError, `{"success":false,"error":"Server error"}`},
		{"echo error", echo.ErrNotFound, http.StatusNotFound, `{"success":false,"error":"Not Found"}`},
	}

	h := NewHTTPErrorHandler(zap.NewNop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			h(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func multipartContext(t *testing.T, payload []byte) echo.Context {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if payload != nil {
		part, err := w.CreateFormFile(imageField, "cover.png")
		require.NoError(t, err)
		_, err = part.Write(payload)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestBufferUpload(t *testing.T) {
	dir := t.TempDir()

	t.Run("buffers to temp file", func(t *testing.T) {
		artifact, err := bufferUpload(multipartContext(t, []byte("png")), imageField, 8, dir)
		require.NoError(t, err)
		require.NotNil(t, artifact)
		defer artifact.Cleanup()

		assert.Equal(t, "cover.png", artifact.Filename)
		assert.EqualValues(t, 3, artifact.Size)
		data, err := os.ReadFile(artifact.Path)
		require.NoError(t, err)
		assert.Equal(t, "png", string(data))
	})

	t.Run("missing file", func(t *testing.T) {
		artifact, err := bufferUpload(multipartContext(t, nil), imageField, 8, dir)
		assert.NoError(t, err)
		assert.Nil(t, artifact)
	})

	t.Run("too large", func(t *testing.T) {
		artifact, err := bufferUpload(multipartContext(t, bytes.Repeat([]byte("x"), 9)), imageField, 8, dir)
		assert.Nil(t, artifact)
		assert.Equal(t, apperr.KindInput, apperr.KindOf(err))

		entries, readErr := os.ReadDir(dir)
		require.NoError(t, readErr)
		assert.Empty(t, entries)
	})
}
