package handlers

import (
	"context"
	"io"

	"boardTracker/internal/models/board"
	"boardTracker/internal/models/label"
	"boardTracker/internal/models/notification"
	"boardTracker/internal/models/task"
	"boardTracker/internal/models/user"
	repo "boardTracker/internal/repository"

	"github.com/google/uuid"
)

type TaskService interface {
	CreateTask(ctx context.Context, userID, boardID uuid.UUID, title, description string, status task.Status) (*task.Task, error)
	GetTasks(ctx context.Context, filter repo.TaskFilter, page, limit int) ([]*task.Task, int, error)
	GetTaskByID(ctx context.Context, id, userID uuid.UUID) (*task.Task, error)
	UpdateTask(ctx context.Context, id, userID uuid.UUID, desiredLabels []uuid.UUID, options ...task.TaskOption) (*task.Task, error)
	DeleteTask(ctx context.Context, id, userID uuid.UUID) (*task.Task, error)
}

type BoardService interface {
	CreateBoard(ctx context.Context, userID uuid.UUID, name string) (*board.Board, error)
	GetBoards(ctx context.Context, userID uuid.UUID, isActive *bool, page, limit int) ([]*board.Board, int, error)
	GetBoardByID(ctx context.Context, id, userID uuid.UUID) (*board.Board, error)
	UpdateBoard(ctx context.Context, id, userID uuid.UUID, name *string, isActive *bool) (*board.Board, error)
	DeleteBoard(ctx context.Context, id, userID uuid.UUID) (*board.Board, error)
}

type LabelService interface {
	GetLabels(ctx context.Context, userID uuid.UUID, boardID *uuid.UUID) ([]*label.Label, error)
	CreateLabel(ctx context.Context, userID, boardID uuid.UUID, name string, color *string) (*label.Label, error)
	UpdateLabel(ctx context.Context, id, userID uuid.UUID, name, color *string) (*label.Label, error)
	DeleteLabel(ctx context.Context, id, userID uuid.UUID) (*label.Label, error)
}

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*user.User, string, error)
	Login(ctx context.Context, email, password string) (*user.User, string, error)
	RenewToken(ctx context.Context, token string) (*user.User, string, error)
	ValidateEmail(ctx context.Context, token string) error
	RequestPasswordChange(ctx context.Context, email string) error
	ChangePassword(ctx context.Context, token, newPassword string) error
}

type NotificationService interface {
	GetNotifications(ctx context.Context, filter repo.NotificationFilter, page, limit int) ([]*notification.Notification, int, error)
	MarkAsSeen(ctx context.Context, id, userID uuid.UUID) (*notification.Notification, error)
	Subscribe(ctx context.Context, userID uuid.UUID, endpoint, p256dh, auth string) error
	CheckSubscription(ctx context.Context, userID uuid.UUID, endpoint string) (bool, error)
}

type UploadService interface {
	SaveFile(ctx context.Context, entityType, mimeType string, r io.Reader) (string, error)
	FilePath(ctx context.Context, entityType, name string) (string, error)
}

type ReportService interface {
	GenerateUserReport(ctx context.Context, userID uuid.UUID) ([]byte, error)
}

type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
