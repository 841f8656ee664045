package service

import (
	"context"
	"errors"
	"fmt"

	"boardTracker/internal/logger"
	"boardTracker/internal/models/task"
	repo "boardTracker/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TaskService struct {
	repo TaskRepository
}

func NewTaskService(taskRepo TaskRepository) TaskService {
	return TaskService{
		repo: taskRepo,
	}
}

// findByID достаёт задачу и проверяет владельца до любых изменений
func (s *TaskService) findByID(ctx context.Context, id, userID uuid.UUID) (*task.Task, error) {
	t, err := s.repo.GetTaskByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.String("target_id", id.String()))
			return nil, NewNotFound("задача", id.String())
		}
		return nil, NewInternal(fmt.Errorf("получение задачи: %w", err))
	}

	if t.UserID != userID {
		logger.Warn("Service: Попытка доступа к чужой задаче",
			zap.String("task_id", id.String()),
			zap.String("user_id", userID.String()))
		return nil, NewUnauthorized("Нет доступа к этой задаче")
	}

	return t, nil
}

func (s *TaskService) CreateTask(ctx context.Context, userID, boardID uuid.UUID, title, description string, status task.Status) (*task.Task, error) {
	t := &task.Task{
		ID:          uuid.New(),
		UserID:      userID,
		BoardID:     boardID,
		Title:       title,
		Description: description,
		Status:      status,
		Reminder:    task.Reminder{Kind: task.ReminderNone},
		IsActive:    true,
	}

	if err := s.repo.CreateTask(ctx, t); err != nil {
		return nil, NewInternal(fmt.Errorf("создание задачи: %w", err))
	}
	return t, nil
}

func (s *TaskService) GetTasks(ctx context.Context, filter repo.TaskFilter, page, limit int) ([]*task.Task, int, error) {
	total, err := s.repo.CountTasks(ctx, filter)
	if err != nil {
		return nil, 0, NewInternal(fmt.Errorf("подсчёт задач: %w", err))
	}

	tasks, err := s.repo.GetTasks(ctx, filter, page, limit)
	if err != nil {
		return nil, 0, NewInternal(fmt.Errorf("получение задач: %w", err))
	}

	return tasks, total, nil
}

func (s *TaskService) GetTaskByID(ctx context.Context, id, userID uuid.UUID) (*task.Task, error) {
	return s.findByID(ctx, id, userID)
}

// UpdateTask сверяет желаемый набор лейблов с текущим, применяет дифф
// и полевые обновления одной операцией, затем возвращает свежее состояние.
func (s *TaskService) UpdateTask(ctx context.Context, id, userID uuid.UUID, desiredLabels []uuid.UUID, options ...task.TaskOption) (*task.Task, error) {
	t, err := s.findByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	// nil означает "лейблы не трогаем", пустой срез отвязывает все
	var toAdd, toRemove []uuid.UUID
	if desiredLabels != nil {
		toAdd, toRemove = DiffLabels(t.LabelIDs(), desiredLabels)
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(t)
	}

	if err := s.repo.UpdateTaskWithLabels(ctx, t, toAdd, toRemove); err != nil {
		logger.Error("Service: Не удалось обновить задачу", err, zap.String("task_id", id.String()))
		return nil, NewInternal(fmt.Errorf("обновление задачи: %w", err))
	}

	updated, err := s.repo.GetTaskByID(ctx, id)
	if err != nil {
		return nil, NewInternal(fmt.Errorf("получение задачи: %w", err))
	}
	return updated, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id, userID uuid.UUID) (*task.Task, error) {
	t, err := s.findByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.DeleteTask(ctx, id); err != nil {
		return nil, NewInternal(fmt.Errorf("удаление задачи: %w", err))
	}
	return t, nil
}
