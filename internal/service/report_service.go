package service

import (
	"context"
	"errors"
	"fmt"

	"boardTracker/internal/models/task"
	"boardTracker/internal/report"
	repo "boardTracker/internal/repository"

	"github.com/google/uuid"
)

type ReportService struct {
	users  UserRepository
	boards BoardRepository
	tasks  TaskRepository
}

func NewReportService(users UserRepository, boards BoardRepository, tasks TaskRepository) ReportService {
	return ReportService{
		users:  users,
		boards: boards,
		tasks:  tasks,
	}
}

// GenerateUserReport собирает сводку по пользователю и рендерит PDF
func (s *ReportService) GenerateUserReport(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	u, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NewNotFound("пользователь", userID.String())
		}
		return nil, NewInternal(fmt.Errorf("получение пользователя: %w", err))
	}

	active := true
	boardCount, err := s.boards.CountBoards(ctx, userID, &active)
	if err != nil {
		return nil, NewInternal(fmt.Errorf("подсчёт досок: %w", err))
	}

	byStatus, err := s.tasks.CountTasksByStatus(ctx, userID)
	if err != nil {
		return nil, NewInternal(fmt.Errorf("подсчёт задач: %w", err))
	}

	pending := byStatus[task.StatusTodo]
	inProgress := byStatus[task.StatusDoing]
	completed := byStatus[task.StatusDone]

	data := report.UserReportData{
		Name:             u.Name,
		Email:            u.Email,
		RegistrationDate: u.CreatedAt,
		Boards:           boardCount,
		TasksCreated:     pending + inProgress + completed,
		TasksPending:     pending,
		TasksInProgress:  inProgress,
		TasksCompleted:   completed,
	}

	pdf, err := report.Generate(data)
	if err != nil {
		return nil, NewInternal(fmt.Errorf("генерация отчёта: %w", err))
	}
	return pdf, nil
}
