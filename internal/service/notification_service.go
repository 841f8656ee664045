package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"boardTracker/internal/logger"
	"boardTracker/internal/models/notification"
	"boardTracker/internal/models/task"
	repo "boardTracker/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type NotificationService struct {
	repo NotificationRepository
	ws   Broadcaster
	push PushSender
}

func NewNotificationService(notificationRepo NotificationRepository, ws Broadcaster, push PushSender) NotificationService {
	return NotificationService{
		repo: notificationRepo,
		ws:   ws,
		push: push,
	}
}

func (s *NotificationService) findByID(ctx context.Context, id, userID uuid.UUID) (*notification.Notification, error) {
	n, err := s.repo.GetNotificationByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			logger.Info("Service: Уведомление не найдено", zap.String("target_id", id.String()))
			return nil, NewNotFound("уведомление", id.String())
		}
		return nil, NewInternal(fmt.Errorf("получение уведомления: %w", err))
	}

	if n.UserID != userID {
		logger.Warn("Service: Попытка доступа к чужому уведомлению",
			zap.String("notification_id", id.String()),
			zap.String("user_id", userID.String()))
		return nil, NewUnauthorized("Нет доступа к этому уведомлению")
	}

	return n, nil
}

func (s *NotificationService) GetNotifications(ctx context.Context, filter repo.NotificationFilter, page, limit int) ([]*notification.Notification, int, error) {
	total, err := s.repo.CountNotifications(ctx, filter)
	if err != nil {
		return nil, 0, NewInternal(fmt.Errorf("подсчёт уведомлений: %w", err))
	}

	notifications, err := s.repo.GetNotifications(ctx, filter, page, limit)
	if err != nil {
		return nil, 0, NewInternal(fmt.Errorf("получение уведомлений: %w", err))
	}

	return notifications, total, nil
}

func (s *NotificationService) MarkAsSeen(ctx context.Context, id, userID uuid.UUID) (*notification.Notification, error) {
	if _, err := s.findByID(ctx, id, userID); err != nil {
		return nil, err
	}

	n, err := s.repo.MarkNotificationSeen(ctx, id)
	if err != nil {
		return nil, NewInternal(fmt.Errorf("обновление уведомления: %w", err))
	}
	return n, nil
}

func (s *NotificationService) Subscribe(ctx context.Context, userID uuid.UUID, endpoint, p256dh, auth string) error {
	sub := &notification.PushSubscription{
		ID:       uuid.New(),
		UserID:   userID,
		Endpoint: endpoint,
		P256dh:   p256dh,
		Auth:     auth,
	}

	if err := s.repo.SaveSubscription(ctx, sub); err != nil {
		return NewInternal(fmt.Errorf("сохранение подписки: %w", err))
	}
	return nil
}

func (s *NotificationService) CheckSubscription(ctx context.Context, userID uuid.UUID, endpoint string) (bool, error) {
	exists, err := s.repo.HasSubscription(ctx, userID, endpoint)
	if err != nil {
		return false, NewInternal(fmt.Errorf("проверка подписки: %w", err))
	}
	return exists, nil
}

// CreateForTask — побочный канал классификатора: пишет уведомление и поднимает
// флаг задачи одной операцией, затем рассылает подключённым клиентам и в push.
// Сбои доставки не валят операцию — запись в БД уже состоялась.
func (s *NotificationService) CreateForTask(ctx context.Context, t *task.Task, message string) error {
	n := &notification.Notification{
		ID:      uuid.New(),
		UserID:  t.UserID,
		BoardID: t.BoardID,
		TaskID:  t.ID,
		Message: message,
	}

	if err := s.repo.CreateNotification(ctx, n); err != nil {
		return NewInternal(fmt.Errorf("создание уведомления: %w", err))
	}

	s.ws.SendToUser(t.UserID, "new-notification", n)

	payload, err := json.Marshal(n)
	if err != nil {
		logger.Warn("Service: Не удалось сериализовать уведомление", zap.Error(err))
		return nil
	}

	subs, err := s.repo.GetSubscriptions(ctx, t.UserID)
	if err != nil {
		logger.Warn("Service: Не удалось получить push-подписки", zap.Error(err))
		return nil
	}

	for _, sub := range subs {
		if err := s.push.Send(sub, payload); err != nil {
			logger.Warn("Service: Ошибка push-доставки",
				zap.String("endpoint", sub.Endpoint),
				zap.Error(err))
		}
	}

	return nil
}
