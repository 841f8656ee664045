package service

import (
	"context"
	"errors"
	"fmt"

	"boardTracker/internal/logger"
	"boardTracker/internal/models/label"
	repo "boardTracker/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type LabelService struct {
	repo LabelRepository
}

func NewLabelService(labelRepo LabelRepository) LabelService {
	return LabelService{
		repo: labelRepo,
	}
}

func (s *LabelService) findByID(ctx context.Context, id, userID uuid.UUID) (*label.Label, error) {
	l, err := s.repo.GetLabelByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			logger.Info("Service: Лейбл не найден", zap.String("target_id", id.String()))
			return nil, NewNotFound("лейбл", id.String())
		}
		return nil, NewInternal(fmt.Errorf("получение лейбла: %w", err))
	}

	if l.UserID != userID {
		logger.Warn("Service: Попытка доступа к чужому лейблу",
			zap.String("label_id", id.String()),
			zap.String("user_id", userID.String()))
		return nil, NewUnauthorized("Нет доступа к этому лейблу")
	}

	return l, nil
}

func (s *LabelService) GetLabels(ctx context.Context, userID uuid.UUID, boardID *uuid.UUID) ([]*label.Label, error) {
	labels, err := s.repo.GetLabels(ctx, userID, boardID)
	if err != nil {
		return nil, NewInternal(fmt.Errorf("получение лейблов: %w", err))
	}
	return labels, nil
}

func (s *LabelService) CreateLabel(ctx context.Context, userID, boardID uuid.UUID, name string, color *string) (*label.Label, error) {
	// имя лейбла уникально в рамках доски
	existing, err := s.repo.GetLabelByName(ctx, boardID, name)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, NewInternal(fmt.Errorf("проверка лейбла: %w", err))
	}
	if existing != nil {
		return nil, NewAlreadyExists("лейбл", name)
	}

	l := &label.Label{
		ID:      uuid.New(),
		UserID:  userID,
		BoardID: boardID,
		Name:    name,
		Color:   color,
	}

	if err := s.repo.CreateLabel(ctx, l); err != nil {
		return nil, NewInternal(fmt.Errorf("создание лейбла: %w", err))
	}
	return l, nil
}

func (s *LabelService) UpdateLabel(ctx context.Context, id, userID uuid.UUID, name *string, color *string) (*label.Label, error) {
	l, err := s.findByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		l.Name = *name
	}
	if color != nil {
		l.Color = color
	}

	if err := s.repo.UpdateLabel(ctx, l); err != nil {
		return nil, NewInternal(fmt.Errorf("обновление лейбла: %w", err))
	}
	return l, nil
}

func (s *LabelService) DeleteLabel(ctx context.Context, id, userID uuid.UUID) (*label.Label, error) {
	l, err := s.findByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.DeleteLabel(ctx, id); err != nil {
		return nil, NewInternal(fmt.Errorf("удаление лейбла: %w", err))
	}
	return l, nil
}
