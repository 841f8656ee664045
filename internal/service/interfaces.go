package service

import (
	"context"
	"time"

	"boardTracker/internal/models/board"
	"boardTracker/internal/models/label"
	"boardTracker/internal/models/notification"
	"boardTracker/internal/models/task"
	"boardTracker/internal/models/user"
	repo "boardTracker/internal/repository"

	"github.com/google/uuid"
)

type TaskRepository interface {
	CreateTask(context.Context, *task.Task) error
	GetTaskByID(context.Context, uuid.UUID) (*task.Task, error)
	GetTasks(context.Context, repo.TaskFilter, int, int) ([]*task.Task, error)
	CountTasks(context.Context, repo.TaskFilter) (int, error)
	UpdateTaskWithLabels(ctx context.Context, t *task.Task, toAdd, toRemove []uuid.UUID) error
	DeleteTask(context.Context, uuid.UUID) error
	GetTasksForReminder(ctx context.Context, from, to time.Time, limit int) ([]*task.Task, error)
	CountTasksByStatus(context.Context, uuid.UUID) (map[task.Status]int, error)
}

type BoardRepository interface {
	CreateBoard(context.Context, *board.Board) error
	GetBoardByID(context.Context, uuid.UUID) (*board.Board, error)
	GetBoards(ctx context.Context, userID uuid.UUID, isActive *bool, page, limit int) ([]*board.Board, error)
	CountBoards(ctx context.Context, userID uuid.UUID, isActive *bool) (int, error)
	UpdateBoard(context.Context, *board.Board) error
	DeleteBoard(context.Context, uuid.UUID) error
}

type LabelRepository interface {
	CreateLabel(context.Context, *label.Label) error
	GetLabelByID(context.Context, uuid.UUID) (*label.Label, error)
	GetLabelByName(ctx context.Context, boardID uuid.UUID, name string) (*label.Label, error)
	GetLabels(ctx context.Context, userID uuid.UUID, boardID *uuid.UUID) ([]*label.Label, error)
	UpdateLabel(context.Context, *label.Label) error
	DeleteLabel(context.Context, uuid.UUID) error
}

type UserRepository interface {
	CreateUser(context.Context, *user.User) error
	GetUserByID(context.Context, uuid.UUID) (*user.User, error)
	GetUserByEmail(context.Context, string) (*user.User, error)
	UpdateUser(context.Context, *user.User) error
	MarkEmailValidated(context.Context, string) error
}

type NotificationRepository interface {
	CreateNotification(context.Context, *notification.Notification) error
	GetNotificationByID(context.Context, uuid.UUID) (*notification.Notification, error)
	GetNotifications(context.Context, repo.NotificationFilter, int, int) ([]*notification.Notification, error)
	CountNotifications(context.Context, repo.NotificationFilter) (int, error)
	MarkNotificationSeen(context.Context, uuid.UUID) (*notification.Notification, error)
	SaveSubscription(context.Context, *notification.PushSubscription) error
	GetSubscriptions(context.Context, uuid.UUID) ([]*notification.PushSubscription, error)
	HasSubscription(ctx context.Context, userID uuid.UUID, endpoint string) (bool, error)
}

// Broadcaster — живая доставка подключённым клиентам (WebSocket-реестр)
type Broadcaster interface {
	SendToUser(userID uuid.UUID, msgType string, payload any)
}

// PushSender — web-push доставка, best-effort
type PushSender interface {
	Send(sub *notification.PushSubscription, payload []byte) error
}

type Mailer interface {
	Send(to, subject, htmlBody string) error
}
