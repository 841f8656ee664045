package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"boardTracker/internal/logger"
	repo "boardTracker/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	NotificationService NotificationService
}

func NewNotificationHandler(notificationService NotificationService) NotificationHandler {
	return NotificationHandler{
		NotificationService: notificationService,
	}
}

func (s *NotificationHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	page, limit, ok := parsePagination(r)
	if !ok {

		logger.Warn("HTTP: Неверные параметры пагинации",
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "неверные значения page/limit")
		return
	}

	filter := repo.NotificationFilter{UserID: userID}

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
		filter.BoardID = &parsed
	}

	logger.Info("HTTP: Вызов сервиса для получения уведомлений")

	notifications, total, err := s.NotificationService.GetNotifications(r.Context(), filter, page, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Уведомления получены",
		zap.Int("count", len(notifications)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	payloads := append(paginationPayloads(r.URL.Path, page, limit, total),
		toPayload("notifications", notifications))
	responseWithJSON(w, http.StatusOK, payloads...)
}

// MarkAsSeen помечает уведомление прочитанным
func (s *NotificationHandler) MarkAsSeen(w http.ResponseWriter, r *http.Request) {
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

	logger.Info("HTTP: запрос к сервису обновления данных")

	n, err := s.NotificationService.MarkAsSeen(r.Context(), id, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Уведомление прочитано",
		zap.String("notification_id", n.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("notification", n))
}

func (s *NotificationHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var request SubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {

		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "неверное тело запроса:"+err.Error())
		return
	}

	if request.Endpoint == "" || request.Keys.P256dh == "" || request.Keys.Auth == "" {

		logger.Warn("HTTP: Ошибка валидации",
			zap.String("error", "empty_field"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "подписка должна содержать endpoint и ключи")
		return
	}

	logger.Info("HTTP: Вызов сервиса подписки на уведомления")

	err := s.NotificationService.Subscribe(r.Context(), userID, request.Endpoint, request.Keys.P256dh, request.Keys.Auth)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Подписка сохранена",
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated, toPayload("message", "Subscribed"))
}

func (s *NotificationHandler) CheckSubscription(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	endpoint := r.URL.Query().Get("endpoint")
	if endpoint == "" {

		logger.Warn("HTTP: Неверное значение параметра",
			zap.String("querry", "endpoint"),
			zap.String("error", "empty_field"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "endpoint не может быть пустым")
		return
	}

	subscribed, err := s.NotificationService.CheckSubscription(r.Context(), userID, endpoint)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Статус подписки получен",
		zap.Bool("subscribed", subscribed),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("subscribed", subscribed))
}
