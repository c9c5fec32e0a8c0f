package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wooltrace/internal/handler"
	"wooltrace/mocks"
)

func uploadRouter(svc *mocks.MockBatchService, maxFileSizeMB int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewBatchHandler(svc, maxFileSizeMB)
	r := gin.New()
	r.POST("/batches/:id/images", h.UploadImage)
	r.DELETE("/batches/:id/images", h.RemoveImage)
	return r
}

func multipartImage(t *testing.T, size int) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", "photo.png")
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte{0xAB}, size))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestBatchHandler_UploadImage_RejectsOversizedFile(t *testing.T) {
	svc := new(mocks.MockBatchService)
	r := uploadRouter(svc, 1)

	body, contentType := multipartImage(t, 1<<20+1)
	req := httptest.NewRequest(http.MethodPost, "/batches/"+uuid.New().String()+"/images", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "FILE_TOO_LARGE", resp.Error.Code)

	svc.AssertNotCalled(t, "UploadImage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBatchHandler_UploadImage_WithinLimit(t *testing.T) {
	svc := new(mocks.MockBatchService)
	r := uploadRouter(svc, 1)

	batchID := uuid.New()
	svc.On("UploadImage", mock.Anything, batchID, mock.Anything, mock.Anything).
		Return("batches/"+batchID.String()+"/photo.png", nil)

	body, contentType := multipartImage(t, 1024)
	req := httptest.NewRequest(http.MethodPost, "/batches/"+batchID.String()+"/images", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestBatchHandler_RemoveImage_RequiresKey(t *testing.T) {
	svc := new(mocks.MockBatchService)
	r := uploadRouter(svc, 1)

	req := httptest.NewRequest(http.MethodDelete, "/batches/"+uuid.New().String()+"/images", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "RemoveImage", mock.Anything, mock.Anything, mock.Anything)
}

func TestBatchHandler_RemoveImage_DelegatesToService(t *testing.T) {
	svc := new(mocks.MockBatchService)
	r := uploadRouter(svc, 1)

	batchID := uuid.New()
	key := "batches/" + batchID.String() + "/photo.png"
	svc.On("RemoveImage", mock.Anything, batchID, key).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/batches/"+batchID.String()+"/images?key="+key, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
