package handlers_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"boardTracker/internal/handlers"
	"boardTracker/internal/middleware"
	"boardTracker/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUploadService - мок сервиса загрузки файлов
type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) SaveFile(ctx context.Context, entityType, mimeType string, r io.Reader) (string, error) {
	args := m.Called(ctx, entityType, mimeType, r)
	return args.String(0), args.Error(1)
}

func (m *MockUploadService) FilePath(ctx context.Context, entityType, name string) (string, error) {
	args := m.Called(ctx, entityType, name)
	return args.String(0), args.Error(1)
}

var _ handlers.UploadService = (*MockUploadService)(nil)

func uploadRouter(handler handlers.UploadHandler) *chi.Mux {
	router := chi.NewRouter()
	router.Route("/api/uploads", func(r chi.Router) {
		r.Post("/single/{type}", handler.UploadSingle)
		r.Post("/multiple/{type}", handler.UploadMultiple)
	})
	router.Get("/api/images/{type}/{img}", handler.GetImage)
	return router
}

func multipartBody(t *testing.T, field string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	for name, contentType := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+name+`"`)
		header.Set("Content-Type", contentType)

		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte("file-content"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

// TestUploadHandler_UploadSingle тестирует загрузку одного файла
func TestUploadHandler_UploadSingle(t *testing.T) {
	userID := uuid.New()

	t.Run("success", func(t *testing.T) {
		mockService := new(MockUploadService)
		mockService.On("SaveFile", mock.Anything, "users", "image/png", mock.Anything).
			Return("deadbeef.png", nil)

		body, contentType := multipartBody(t, "file", map[string]string{"avatar.png": "image/png"})
		req := httptest.NewRequest(http.MethodPost, "/api/uploads/single/users", body)
		req.Header.Set("Content-Type", contentType)
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))

		handler := handlers.NewUploadHandler(mockService)
		rec := httptest.NewRecorder()
		uploadRouter(handler).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "deadbeef.png", decodeBody(t, rec)["fileName"])
		mockService.AssertExpectations(t)
	})

	t.Run("error - no file in form", func(t *testing.T) {
		body, contentType := multipartBody(t, "other", map[string]string{"avatar.png": "image/png"})
		req := httptest.NewRequest(http.MethodPost, "/api/uploads/single/users", body)
		req.Header.Set("Content-Type", contentType)
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))

		handler := handlers.NewUploadHandler(new(MockUploadService))
		rec := httptest.NewRecorder()
		uploadRouter(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("error - no user in context", func(t *testing.T) {
		body, contentType := multipartBody(t, "file", map[string]string{"avatar.png": "image/png"})
		req := httptest.NewRequest(http.MethodPost, "/api/uploads/single/users", body)
		req.Header.Set("Content-Type", contentType)

		handler := handlers.NewUploadHandler(new(MockUploadService))
		rec := httptest.NewRecorder()
		uploadRouter(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("error - validation from service maps to 400", func(t *testing.T) {
		mockService := new(MockUploadService)
		mockService.On("SaveFile", mock.Anything, "products", "image/png", mock.Anything).
			Return("", service.NewValidationError("type", "недопустимый тип products"))

		body, contentType := multipartBody(t, "file", map[string]string{"avatar.png": "image/png"})
		req := httptest.NewRequest(http.MethodPost, "/api/uploads/single/products", body)
		req.Header.Set("Content-Type", contentType)
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))

		handler := handlers.NewUploadHandler(mockService)
		rec := httptest.NewRecorder()
		uploadRouter(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertExpectations(t)
	})
}

// TestUploadHandler_UploadMultiple тестирует загрузку нескольких файлов за раз
func TestUploadHandler_UploadMultiple(t *testing.T) {
	userID := uuid.New()

	t.Run("success - every file saved", func(t *testing.T) {
		mockService := new(MockUploadService)
		mockService.On("SaveFile", mock.Anything, "tasks", "image/png", mock.Anything).
			Return("one.png", nil).Once()
		mockService.On("SaveFile", mock.Anything, "tasks", "image/jpeg", mock.Anything).
			Return("two.jpeg", nil).Once()

		body, contentType := multipartBody(t, "files", map[string]string{
			"first.png":  "image/png",
			"second.jpg": "image/jpeg",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/uploads/multiple/tasks", body)
		req.Header.Set("Content-Type", contentType)
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))

		handler := handlers.NewUploadHandler(mockService)
		rec := httptest.NewRecorder()
		uploadRouter(handler).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decodeBody(t, rec)["fileNames"], 2)
		mockService.AssertExpectations(t)
	})

	t.Run("error - empty form", func(t *testing.T) {
		body, contentType := multipartBody(t, "files", nil)
		req := httptest.NewRequest(http.MethodPost, "/api/uploads/multiple/tasks", body)
		req.Header.Set("Content-Type", contentType)
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))

		handler := handlers.NewUploadHandler(new(MockUploadService))
		rec := httptest.NewRecorder()
		uploadRouter(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

// TestUploadHandler_GetImage тестирует отдачу сохранённых изображений
func TestUploadHandler_GetImage(t *testing.T) {
	t.Run("success - file served", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pic.png")
		require.NoError(t, os.WriteFile(path, []byte("png-bytes"), 0o600))

		mockService := new(MockUploadService)
		mockService.On("FilePath", mock.Anything, "users", "pic.png").Return(path, nil)

		handler := handlers.NewUploadHandler(mockService)
		rec := httptest.NewRecorder()
		uploadRouter(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/images/users/pic.png", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "png-bytes", rec.Body.String())
		mockService.AssertExpectations(t)
	})

	t.Run("error - missing image maps to 404", func(t *testing.T) {
		mockService := new(MockUploadService)
		mockService.On("FilePath", mock.Anything, "users", "gone.png").
			Return("", service.NewNotFound("изображение", "gone.png"))

		handler := handlers.NewUploadHandler(mockService)
		rec := httptest.NewRecorder()
		uploadRouter(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/images/users/gone.png", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		mockService.AssertExpectations(t)
	})
}
