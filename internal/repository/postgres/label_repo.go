package postgres

import (
	"context"
	"errors"
	"fmt"

	"boardTracker/internal/logger"
	"boardTracker/internal/models/label"
	repo "boardTracker/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

func (s *Storage) CreateLabel(ctx context.Context, labelToCreate *label.Label) error {
	query := `INSERT INTO labels (id, user_id, board_id, name, color)
				VALUES ($1, $2, $3, $4, $5)`

	_, err := s.pool.Exec(ctx, query,
		labelToCreate.ID,
		labelToCreate.UserID,
		labelToCreate.BoardID,
		labelToCreate.Name,
		labelToCreate.Color,
	)

	if err != nil {
		logger.Error("Repository: Не удалось добавить лейбл", err)
		return fmt.Errorf("добавление лейбла: %w", err)
	}
	return nil
}

func (s *Storage) GetLabelByID(ctx context.Context, id uuid.UUID) (*label.Label, error) {
	query := `SELECT id, user_id, board_id, name, color FROM labels WHERE id = $1`

	l := &label.Label{}
	err := s.pool.QueryRow(ctx, query, id).Scan(&l.ID, &l.UserID, &l.BoardID, &l.Name, &l.Color)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить лейбл", err)
		return nil, fmt.Errorf("получение лейбла: %w", err)
	}
	return l, nil
}

// поиск дубликата по имени в рамках доски
func (s *Storage) GetLabelByName(ctx context.Context, boardID uuid.UUID, name string) (*label.Label, error) {
	query := `SELECT id, user_id, board_id, name, color FROM labels
				WHERE board_id = $1 AND name = $2`

	l := &label.Label{}
	err := s.pool.QueryRow(ctx, query, boardID, name).Scan(&l.ID, &l.UserID, &l.BoardID, &l.Name, &l.Color)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить лейбл", err)
		return nil, fmt.Errorf("получение лейбла: %w", err)
	}
	return l, nil
}

func (s *Storage) GetLabels(ctx context.Context, userID uuid.UUID, boardID *uuid.UUID) ([]*label.Label, error) {
	query := `SELECT id, user_id, board_id, name, color FROM labels
				WHERE user_id = $1 AND ($2::uuid IS NULL OR board_id = $2)`

	rows, err := s.pool.Query(ctx, query, userID, boardID)
	if err != nil {
		logger.Error("Repository: Не удалось получить лейблы", err)
		return nil, fmt.Errorf("получение лейблов: %w", err)
	}
	defer rows.Close()

	labels := []*label.Label{}
	for rows.Next() {
		l := &label.Label{}
		if err := rows.Scan(&l.ID, &l.UserID, &l.BoardID, &l.Name, &l.Color); err != nil {
			logger.Warn("Repository: Ошибка сканирования лейбла", zap.Error(err))
			continue
		}
		labels = append(labels, l)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}

	return labels, nil
}

func (s *Storage) UpdateLabel(ctx context.Context, labelToUpdate *label.Label) error {
	query := `UPDATE labels SET name = $1, color = $2 WHERE id = $3`

	tag, err := s.pool.Exec(ctx, query, labelToUpdate.Name, labelToUpdate.Color, labelToUpdate.ID)
	if err != nil {
		logger.Error("Repository: Не удалось обновить лейбл", err)
		return fmt.Errorf("обновление лейбла: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (s *Storage) DeleteLabel(ctx context.Context, id uuid.UUID) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		logger.Error("Repository: Не удалось начать транзакцию", err)
		return fmt.Errorf("начало транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM labels_on_tasks WHERE label_id = $1`, id); err != nil {
		logger.Error("Repository: Не удалось отвязать лейбл от задач", err)
		return fmt.Errorf("отвязка лейбла от задач: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM labels WHERE id = $1`, id)
	if err != nil {
		logger.Error("Repository: Не удалось удалить лейбл", err)
		return fmt.Errorf("удаление лейбла: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Error("Repository: Не удалось зафиксировать транзакцию", err)
		return fmt.Errorf("фиксация транзакции: %w", err)
	}
	return nil
}
