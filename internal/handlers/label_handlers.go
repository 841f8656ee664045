package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"boardTracker/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type LabelHandler struct {
	LabelService LabelService
}

func NewLabelHandler(labelService LabelService) LabelHandler {
	return LabelHandler{
		LabelService: labelService,
	}
}

func (s *LabelHandler) GetLabels(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var boardID *uuid.UUID
	if raw := r.URL.Query().Get("boardId"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {

			logger.Warn("HTTP: Неверное значение параметра",
				zap.String("querry", "boardId"),
				zap.Error(err),
				zap.String("client_ip", r.RemoteAddr))

			responseWithError(w, http.StatusBadRequest, "неверное значение boardId")
			return
		}
		boardID = &parsed
	}

	logger.Info("HTTP: Вызов сервиса для получения лейблов")

	labels, err := s.LabelService.GetLabels(r.Context(), userID, boardID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Лейблы получены",
		zap.Int("count", len(labels)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("labels", labels))
}

func (s *LabelHandler) PostLabel(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if !checkContentType(r, "application/json") {

		logger.Warn("HTTP: Неверный тип контента",
			zap.String("expected", "application/json"),
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type должен быть application/json")
		return
	}

	var request CreateLabelRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {

		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "неверное тело запроса:"+err.Error())
		return
	}

	if request.Name == "" {

		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "name"),
			zap.String("error", "empty_field"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "название не может быть пустым")
		return
	}

	if request.BoardID == uuid.Nil {

		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "boardId"),
			zap.String("error", "empty_field"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "boardId не может быть пустым")
		return
	}

	logger.Info("HTTP: Вызов сервиса создания лейбла")

	l, err := s.LabelService.CreateLabel(r.Context(), userID, request.BoardID, request.Name, request.Color)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Лейбл создан",
		zap.String("label_id", l.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated, toPayload("label", l))
}

func (s *LabelHandler) UpdateLabelByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var request UpdateLabelRequest

	decoder := json.NewDecoder(r.Body)
	defer r.Body.Close()

	if err := decoder.Decode(&request); err != nil {

		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "неверно переданы параметры обновления:"+err.Error())
		return
	}

	logger.Info("HTTP: запрос к сервису обновления данных")

	l, err := s.LabelService.UpdateLabel(r.Context(), id, userID, request.Name, request.Color)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Лейбл обновлён",
		zap.String("label_id", l.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("label", l))
}

func (s *LabelHandler) DeleteLabelByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	logger.Info("HTTP: Обращение к сервису для удаления лейбла")

	l, err := s.LabelService.DeleteLabel(r.Context(), id, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Лейбл удалён",
		zap.String("label_id", l.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("label", l))
}
