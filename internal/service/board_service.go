package service

import (
	"context"
	"errors"
	"fmt"

	"boardTracker/internal/logger"
	"boardTracker/internal/models/board"
	repo "boardTracker/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BoardService struct {
	repo BoardRepository
}

func NewBoardService(boardRepo BoardRepository) BoardService {
	return BoardService{
		repo: boardRepo,
	}
}

func (s *BoardService) findByID(ctx context.Context, id, userID uuid.UUID) (*board.Board, error) {
	b, err := s.repo.GetBoardByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			logger.Info("Service: Доска не найдена", zap.String("target_id", id.String()))
			return nil, NewNotFound("доска", id.String())
		}
		return nil, NewInternal(fmt.Errorf("получение доски: %w", err))
	}

	if b.UserID != userID {
		logger.Warn("Service: Попытка доступа к чужой доске",
			zap.String("board_id", id.String()),
			zap.String("user_id", userID.String()))
		return nil, NewUnauthorized("Нет доступа к этой доске")
	}

	return b, nil
}

func (s *BoardService) CreateBoard(ctx context.Context, userID uuid.UUID, name string) (*board.Board, error) {
	b := &board.Board{
		ID:       uuid.New(),
		UserID:   userID,
		Name:     name,
		IsActive: true,
	}

	if err := s.repo.CreateBoard(ctx, b); err != nil {
		return nil, NewInternal(fmt.Errorf("создание доски: %w", err))
	}
	return b, nil
}

func (s *BoardService) GetBoards(ctx context.Context, userID uuid.UUID, isActive *bool, page, limit int) ([]*board.Board, int, error) {
	total, err := s.repo.CountBoards(ctx, userID, isActive)
	if err != nil {
		return nil, 0, NewInternal(fmt.Errorf("подсчёт досок: %w", err))
	}

	boards, err := s.repo.GetBoards(ctx, userID, isActive, page, limit)
	if err != nil {
		return nil, 0, NewInternal(fmt.Errorf("получение досок: %w", err))
	}

	return boards, total, nil
}

func (s *BoardService) GetBoardByID(ctx context.Context, id, userID uuid.UUID) (*board.Board, error) {
	return s.findByID(ctx, id, userID)
}

func (s *BoardService) UpdateBoard(ctx context.Context, id, userID uuid.UUID, name *string, isActive *bool) (*board.Board, error) {
	b, err := s.findByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		b.Name = *name
	}
	if isActive != nil {
		b.IsActive = *isActive
	}

	if err := s.repo.UpdateBoard(ctx, b); err != nil {
		return nil, NewInternal(fmt.Errorf("обновление доски: %w", err))
	}
	return b, nil
}

func (s *BoardService) DeleteBoard(ctx context.Context, id, userID uuid.UUID) (*board.Board, error) {
	b, err := s.findByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.DeleteBoard(ctx, id); err != nil {
		return nil, NewInternal(fmt.Errorf("удаление доски: %w", err))
	}
	return b, nil
}
