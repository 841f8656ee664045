package handlers

import (
	"net/http"
	"time"

	"boardTracker/internal/logger"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// лимит на размер multipart-запроса с файлами
const maxUploadSize = 10 << 20

type UploadHandler struct {
	UploadService UploadService
}

func NewUploadHandler(uploadService UploadService) UploadHandler {
	return UploadHandler{
		UploadService: uploadService,
	}
}

// UploadSingle принимает один файл из поля file и возвращает его сохранённое имя
func (s *UploadHandler) UploadSingle(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if _, ok := requireUserID(w, r); !ok {
		return
	}

	entityType := chi.URLParam(r, "type")

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		logger.Warn("HTTP: Ошибка разбора multipart-формы",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "не удалось разобрать форму с файлом")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "file"),
			zap.String("error", "missing"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "файл не передан")
		return
	}
	defer file.Close()

	logger.Info("HTTP: Вызов сервиса загрузки файлов")

	name, err := s.UploadService.SaveFile(r.Context(), entityType, header.Header.Get("Content-Type"), file)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Файл сохранён",
		zap.String("file_name", name),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("fileName", name))
}

// UploadMultiple принимает несколько файлов из поля files и сохраняет каждый
func (s *UploadHandler) UploadMultiple(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if _, ok := requireUserID(w, r); !ok {
		return
	}

	entityType := chi.URLParam(r, "type")

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		logger.Warn("HTTP: Ошибка разбора multipart-формы",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "не удалось разобрать форму с файлами")
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "files"),
			zap.String("error", "missing"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "файлы не переданы")
		return
	}

	logger.Info("HTTP: Вызов сервиса загрузки файлов",
		zap.Int("count", len(headers)))

	names := make([]string, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			responseWithError(w, http.StatusBadRequest, "не удалось прочитать файл "+header.Filename)
			return
		}

		name, err := s.UploadService.SaveFile(r.Context(), entityType, header.Header.Get("Content-Type"), file)
		file.Close()
		if err != nil {
			handleServiceError(w, err)
			return
		}
		names = append(names, name)
	}

	logger.Info("HTTP_OUT: Файлы сохранены",
		zap.Int("count", len(names)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("fileNames", names))
}

// GetImage отдаёт сохранённое изображение по типу сущности и имени файла
func (s *UploadHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	entityType := chi.URLParam(r, "type")
	img := chi.URLParam(r, "img")

	path, err := s.UploadService.FilePath(r.Context(), entityType, img)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Изображение отдано",
		zap.String("file_name", img),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	http.ServeFile(w, r, path)
}
