package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"boardTracker/internal/logger"
	"boardTracker/internal/models/board"
	repo "boardTracker/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

func (s *Storage) CreateBoard(ctx context.Context, boardToCreate *board.Board) error {
	start := time.Now()

	query := `INSERT INTO boards (id, user_id, name, is_active, created_at)
				VALUES ($1, $2, $3, true, NOW())
				RETURNING created_at`

	err := s.pool.QueryRow(ctx, query,
		boardToCreate.ID,
		boardToCreate.UserID,
		boardToCreate.Name,
	).Scan(&boardToCreate.CreatedAt)

	if err != nil {
		logger.Error("Repository: Не удалось добавить доску", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("добавление доски: %w", err)
	}

	if time.Since(start) > time.Millisecond*50 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) GetBoardByID(ctx context.Context, id uuid.UUID) (*board.Board, error) {
	query := `SELECT id, user_id, name, is_active, created_at, updated_at
				FROM boards WHERE id = $1`

	b := &board.Board{}
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&b.ID,
		&b.UserID,
		&b.Name,
		&b.IsActive,
		&b.CreatedAt,
		&b.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить доску", err)
		return nil, fmt.Errorf("получение доски: %w", err)
	}

	return b, nil
}

func (s *Storage) CountBoards(ctx context.Context, userID uuid.UUID, isActive *bool) (int, error) {
	query := `SELECT COUNT(*) FROM boards WHERE user_id = $1 AND ($2::boolean IS NULL OR is_active = $2)`

	var total int
	err := s.pool.QueryRow(ctx, query, userID, isActive).Scan(&total)
	if err != nil {
		logger.Error("Repository: Не удалось посчитать доски", err)
		return 0, fmt.Errorf("подсчёт досок: %w", err)
	}
	return total, nil
}

func (s *Storage) GetBoards(ctx context.Context, userID uuid.UUID, isActive *bool, page, limit int) ([]*board.Board, error) {
	start := time.Now()
	offset := (page - 1) * limit

	query := `SELECT id, user_id, name, is_active, created_at, updated_at
				FROM boards
				WHERE user_id = $1 AND ($2::boolean IS NULL OR is_active = $2)
				ORDER BY created_at
				LIMIT $3 OFFSET $4`

	rows, err := s.pool.Query(ctx, query, userID, isActive, limit, offset)
	if err != nil {
		logger.Error("Repository: Не удалось получить доски", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение досок: %w", err)
	}
	defer rows.Close()

	boards := []*board.Board{}
	for rows.Next() {
		b := &board.Board{}
		err := rows.Scan(&b.ID, &b.UserID, &b.Name, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			logger.Warn("Repository: Ошибка сканирования доски", zap.Error(err))
			continue
		}
		boards = append(boards, b)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}

	if time.Since(start) > time.Millisecond*50+time.Millisecond*10*time.Duration(limit) {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}

	return boards, nil
}

func (s *Storage) UpdateBoard(ctx context.Context, boardToUpdate *board.Board) error {
	query := `UPDATE boards
			SET name = $1,
				is_active = $2,
				updated_at = NOW()
			WHERE id = $3
			RETURNING updated_at`

	err := s.pool.QueryRow(ctx, query,
		boardToUpdate.Name,
		boardToUpdate.IsActive,
		boardToUpdate.ID,
	).Scan(&boardToUpdate.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось обновить доску", err)
		return fmt.Errorf("обновление доски: %w", err)
	}
	return nil
}

func (s *Storage) DeleteBoard(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM boards WHERE id = $1`, id)
	if err != nil {
		logger.Error("Repository: Не удалось удалить доску", err)
		return fmt.Errorf("удаление доски: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}
