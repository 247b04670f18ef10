package handlers_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfareapp/wayfare-backend/internal/handlers"
)

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestUploadReturnsImageURL(t *testing.T) {
	uploader := &mockUploader{
		upload: func(ctx context.Context, fh *multipart.FileHeader, folder string) (string, error) {
			assert.Equal(t, "lima.jpg", fh.Filename)
			return "https://res.cloudinary.com/demo/lima.jpg", nil
		},
	}
	h := handlers.NewUploadHandler(uploader, testLogger)

	body, contentType := multipartBody(t, "file", "lima.jpg", []byte("fake image bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	h.Upload(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "https://res.cloudinary.com/demo/lima.jpg", decodeBody(t, res)["url"])
}

func TestUploadRequiresFile(t *testing.T) {
	h := handlers.NewUploadHandler(&mockUploader{}, testLogger)

	body, contentType := multipartBody(t, "wrong_field", "lima.jpg", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	h.Upload(res, req)

	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestUploadUnavailableWithoutService(t *testing.T) {
	h := handlers.NewUploadHandler(nil, testLogger)

	body, contentType := multipartBody(t, "file", "lima.jpg", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	h.Upload(res, req)

	assert.Equal(t, http.StatusInternalServerError, res.Code)
}
