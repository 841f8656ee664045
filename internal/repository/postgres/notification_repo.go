package postgres

import (
	"context"
	"errors"
	"fmt"

	"boardTracker/internal/logger"
	"boardTracker/internal/models/notification"
	repo "boardTracker/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// CreateNotification одной транзакцией пишет уведомление и поднимает
// sticky-флаг notification_created у задачи: повторные свипы её больше не берут.
func (s *Storage) CreateNotification(ctx context.Context, n *notification.Notification) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		logger.Error("Repository: Не удалось начать транзакцию", err)
		return fmt.Errorf("начало транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE tasks SET notification_created = true WHERE id = $1`, n.TaskID); err != nil {
		logger.Error("Repository: Не удалось пометить задачу уведомлённой", err)
		return fmt.Errorf("пометка задачи: %w", err)
	}

	query := `INSERT INTO notifications (id, user_id, board_id, task_id, message, seen, created_at)
				VALUES ($1, $2, $3, $4, $5, false, NOW())
				RETURNING created_at`

	err = tx.QueryRow(ctx, query, n.ID, n.UserID, n.BoardID, n.TaskID, n.Message).Scan(&n.CreatedAt)
	if err != nil {
		logger.Error("Repository: Не удалось добавить уведомление", err)
		return fmt.Errorf("добавление уведомления: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Error("Repository: Не удалось зафиксировать транзакцию", err)
		return fmt.Errorf("фиксация транзакции: %w", err)
	}
	return nil
}

func (s *Storage) GetNotificationByID(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	query := `SELECT id, user_id, board_id, task_id, message, seen, created_at
				FROM notifications WHERE id = $1`

	n := &notification.Notification{}
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&n.ID, &n.UserID, &n.BoardID, &n.TaskID, &n.Message, &n.Seen, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить уведомление", err)
		return nil, fmt.Errorf("получение уведомления: %w", err)
	}
	return n, nil
}

func (s *Storage) CountNotifications(ctx context.Context, filter repo.NotificationFilter) (int, error) {
	query := `SELECT COUNT(*) FROM notifications
				WHERE user_id = $1 AND ($2::uuid IS NULL OR board_id = $2)`

	var total int
	err := s.pool.QueryRow(ctx, query, filter.UserID, filter.BoardID).Scan(&total)
	if err != nil {
		logger.Error("Repository: Не удалось посчитать уведомления", err)
		return 0, fmt.Errorf("подсчёт уведомлений: %w", err)
	}
	return total, nil
}

func (s *Storage) GetNotifications(ctx context.Context, filter repo.NotificationFilter, page, limit int) ([]*notification.Notification, error) {
	offset := (page - 1) * limit

	query := `SELECT id, user_id, board_id, task_id, message, seen, created_at
				FROM notifications
				WHERE user_id = $1 AND ($2::uuid IS NULL OR board_id = $2)
				ORDER BY created_at DESC
				LIMIT $3 OFFSET $4`

	rows, err := s.pool.Query(ctx, query, filter.UserID, filter.BoardID, limit, offset)
	if err != nil {
		logger.Error("Repository: Не удалось получить уведомления", err)
		return nil, fmt.Errorf("получение уведомлений: %w", err)
	}
	defer rows.Close()

	notifications := []*notification.Notification{}
	for rows.Next() {
		n := &notification.Notification{}
		err := rows.Scan(&n.ID, &n.UserID, &n.BoardID, &n.TaskID, &n.Message, &n.Seen, &n.CreatedAt)
		if err != nil {
			logger.Warn("Repository: Ошибка сканирования уведомления", zap.Error(err))
			continue
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}

	return notifications, nil
}

func (s *Storage) MarkNotificationSeen(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	query := `UPDATE notifications SET seen = true WHERE id = $1
				RETURNING id, user_id, board_id, task_id, message, seen, created_at`

	n := &notification.Notification{}
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&n.ID, &n.UserID, &n.BoardID, &n.TaskID, &n.Message, &n.Seen, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось обновить уведомление", err)
		return nil, fmt.Errorf("обновление уведомления: %w", err)
	}
	return n, nil
}

func (s *Storage) SaveSubscription(ctx context.Context, sub *notification.PushSubscription) error {
	query := `INSERT INTO push_subscriptions (id, user_id, endpoint, p256dh, auth)
				VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (user_id, endpoint) DO UPDATE SET p256dh = $4, auth = $5`

	_, err := s.pool.Exec(ctx, query, sub.ID, sub.UserID, sub.Endpoint, sub.P256dh, sub.Auth)
	if err != nil {
		logger.Error("Repository: Не удалось сохранить подписку", err)
		return fmt.Errorf("сохранение подписки: %w", err)
	}
	return nil
}

func (s *Storage) GetSubscriptions(ctx context.Context, userID uuid.UUID) ([]*notification.PushSubscription, error) {
	query := `SELECT id, user_id, endpoint, p256dh, auth FROM push_subscriptions WHERE user_id = $1`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		logger.Error("Repository: Не удалось получить подписки", err)
		return nil, fmt.Errorf("получение подписок: %w", err)
	}
	defer rows.Close()

	subs := []*notification.PushSubscription{}
	for rows.Next() {
		sub := &notification.PushSubscription{}
		if err := rows.Scan(&sub.ID, &sub.UserID, &sub.Endpoint, &sub.P256dh, &sub.Auth); err != nil {
			logger.Warn("Repository: Ошибка сканирования подписки", zap.Error(err))
			continue
		}
		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}

	return subs, nil
}

func (s *Storage) HasSubscription(ctx context.Context, userID uuid.UUID, endpoint string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM push_subscriptions WHERE user_id = $1 AND endpoint = $2)`,
		userID, endpoint).Scan(&exists)
	if err != nil {
		logger.Error("Repository: Не удалось проверить подписку", err)
		return false, fmt.Errorf("проверка подписки: %w", err)
	}
	return exists, nil
}
