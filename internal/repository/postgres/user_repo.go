package postgres

import (
	"context"
	"errors"
	"fmt"

	"boardTracker/internal/logger"
	"boardTracker/internal/models/user"
	repo "boardTracker/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, name, email, password_hash, email_validated, email_notifications, created_at, updated_at`

func scanUser(row pgx.Row) (*user.User, error) {
	u := &user.User{}
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.EmailValidated,
		&u.EmailNotifications,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Storage) CreateUser(ctx context.Context, userToCreate *user.User) error {
	query := `INSERT INTO users (id, name, email, password_hash, email_validated, email_notifications, created_at)
				VALUES ($1, $2, $3, $4, false, $5, NOW())
				RETURNING created_at`

	err := s.pool.QueryRow(ctx, query,
		userToCreate.ID,
		userToCreate.Name,
		userToCreate.Email,
		userToCreate.PasswordHash,
		userToCreate.EmailNotifications,
	).Scan(&userToCreate.CreatedAt)

	if err != nil {
		logger.Error("Repository: Не удалось добавить пользователя", err)
		return fmt.Errorf("добавление пользователя: %w", err)
	}
	return nil
}

func (s *Storage) GetUserByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить пользователя", err)
		return nil, fmt.Errorf("получение пользователя: %w", err)
	}
	return u, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить пользователя", err)
		return nil, fmt.Errorf("получение пользователя: %w", err)
	}
	return u, nil
}

func (s *Storage) UpdateUser(ctx context.Context, userToUpdate *user.User) error {
	query := `UPDATE users
			SET name = $1,
				password_hash = $2,
				email_notifications = $3,
				updated_at = NOW()
			WHERE id = $4
			RETURNING updated_at`

	err := s.pool.QueryRow(ctx, query,
		userToUpdate.Name,
		userToUpdate.PasswordHash,
		userToUpdate.EmailNotifications,
		userToUpdate.ID,
	).Scan(&userToUpdate.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось обновить пользователя", err)
		return fmt.Errorf("обновление пользователя: %w", err)
	}
	return nil
}

func (s *Storage) MarkEmailValidated(ctx context.Context, email string) error {
	tag, err := s.pool.Exec(ctx, `UPDATE users SET email_validated = true WHERE email = $1`, email)
	if err != nil {
		logger.Error("Repository: Не удалось подтвердить почту", err)
		return fmt.Errorf("подтверждение почты: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}
