package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"boardTracker/internal/logger"
	"boardTracker/internal/models/label"
	"boardTracker/internal/models/task"
	repo "boardTracker/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

func (s *Storage) CreateTask(ctx context.Context, taskToCreate *task.Task) error {
	start := time.Now()

	query := `INSERT INTO tasks
				(id, user_id, board_id, title, description, status, start_date, end_date,
				 reminder_time, notification_created, is_active, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, false, true, NOW())
				RETURNING created_at`

	err := s.pool.QueryRow(ctx, query,
		taskToCreate.ID,
		taskToCreate.UserID,
		taskToCreate.BoardID,
		taskToCreate.Title,
		taskToCreate.Description,
		taskToCreate.Status,
		taskToCreate.StartDate,
		taskToCreate.EndDate,
		taskToCreate.Reminder.String(),
	).Scan(&taskToCreate.CreatedAt)

	if err != nil {
		logger.Error("Repository: Не удалось добавить задачу", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("добавление задачи: %w", err)
	}

	if time.Since(start) > time.Millisecond*50 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func scanTask(row pgx.Row) (*task.Task, error) {
	t := &task.Task{}
	var reminderCode string

	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.BoardID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.StartDate,
		&t.EndDate,
		&reminderCode,
		&t.NotificationCreated,
		&t.IsActive,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Reminder, err = task.ParseReminder(reminderCode)
	if err != nil {
		return nil, fmt.Errorf("разбор напоминания: %w", err)
	}
	return t, nil
}

const taskColumns = `id, user_id, board_id, title, description, status, start_date, end_date,
				reminder_time, notification_created, is_active, created_at, updated_at`

func (s *Storage) GetTaskByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	start := time.Now()

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	t, err := scanTask(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить задачу", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение задачи: %w", err)
	}

	t.Labels, err = s.GetTaskLabels(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}

	return t, nil
}

// проекция {id, name, color} прикреплённых лейблов
func (s *Storage) GetTaskLabels(ctx context.Context, taskID uuid.UUID) ([]label.Label, error) {
	query := `SELECT l.id, l.name, l.color
				FROM labels l
				JOIN labels_on_tasks lt ON lt.label_id = l.id
				WHERE lt.task_id = $1`

	rows, err := s.pool.Query(ctx, query, taskID)
	if err != nil {
		logger.Error("Repository: Не удалось получить лейблы задачи", err)
		return nil, fmt.Errorf("получение лейблов задачи: %w", err)
	}
	defer rows.Close()

	labels := []label.Label{}
	for rows.Next() {
		l := label.Label{}
		if err := rows.Scan(&l.ID, &l.Name, &l.Color); err != nil {
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

func buildTaskWhere(filter repo.TaskFilter) (string, []any) {
	where := `WHERE user_id = $1`
	args := []any{filter.UserID}

	if filter.BoardID != nil {
		args = append(args, *filter.BoardID)
		where += fmt.Sprintf(" AND board_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		where += fmt.Sprintf(" AND is_active = $%d", len(args))
	}
	return where, args
}

func (s *Storage) CountTasks(ctx context.Context, filter repo.TaskFilter) (int, error) {
	where, args := buildTaskWhere(filter)

	var total int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tasks `+where, args...).Scan(&total)
	if err != nil {
		logger.Error("Repository: Не удалось посчитать задачи", err)
		return 0, fmt.Errorf("подсчёт задач: %w", err)
	}
	return total, nil
}

func (s *Storage) GetTasks(ctx context.Context, filter repo.TaskFilter, page, limit int) ([]*task.Task, error) {
	start := time.Now()
	offset := (page - 1) * limit

	where, args := buildTaskWhere(filter)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT `+taskColumns+` FROM tasks %s ORDER BY created_at LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error("Repository: Не удалось получить задачи", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	defer rows.Close()

	tasks := []*task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			logger.Warn("Repository: Ошибка сканирования задачи", zap.Error(err))
			continue
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}

	for _, t := range tasks {
		t.Labels, err = s.GetTaskLabels(ctx, t.ID)
		if err != nil {
			return nil, err
		}
	}

	if time.Since(start) > time.Millisecond*50+time.Millisecond*10*time.Duration(limit) {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}

	return tasks, nil
}

// UpdateTaskWithLabels применяет дифф связей и обновление полей одной транзакцией:
// наружу не должно утечь наполовину перевязанное состояние лейблов.
func (s *Storage) UpdateTaskWithLabels(ctx context.Context, taskToUpdate *task.Task, toAdd, toRemove []uuid.UUID) error {
	start := time.Now()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		logger.Error("Repository: Не удалось начать транзакцию", err)
		return fmt.Errorf("начало транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, labelID := range toRemove {
		if _, err := tx.Exec(ctx,
			`DELETE FROM labels_on_tasks WHERE label_id = $1 AND task_id = $2`,
			labelID, taskToUpdate.ID); err != nil {
			logger.Error("Repository: Не удалось отвязать лейбл", err)
			return fmt.Errorf("отвязка лейбла: %w", err)
		}
	}

	for _, labelID := range toAdd {
		if _, err := tx.Exec(ctx,
			`INSERT INTO labels_on_tasks (label_id, task_id) VALUES ($1, $2)`,
			labelID, taskToUpdate.ID); err != nil {
			logger.Error("Repository: Не удалось привязать лейбл", err)
			return fmt.Errorf("привязка лейбла: %w", err)
		}
	}

	query := `UPDATE tasks
			SET title = $1,
				description = $2,
				status = $3,
				start_date = $4,
				end_date = $5,
				reminder_time = $6,
				is_active = $7,
				updated_at = NOW()
			WHERE id = $8
			RETURNING updated_at`

	err = tx.QueryRow(ctx, query,
		taskToUpdate.Title,
		taskToUpdate.Description,
		taskToUpdate.Status,
		taskToUpdate.StartDate,
		taskToUpdate.EndDate,
		taskToUpdate.Reminder.String(),
		taskToUpdate.IsActive,
		taskToUpdate.ID,
	).Scan(&taskToUpdate.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось обновить задачу", err)
		return fmt.Errorf("обновление задачи: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Error("Repository: Не удалось зафиксировать транзакцию", err)
		return fmt.Errorf("фиксация транзакции: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленная операция", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) DeleteTask(ctx context.Context, id uuid.UUID) error {
	start := time.Now()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		logger.Error("Repository: Не удалось начать транзакцию", err)
		return fmt.Errorf("начало транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM labels_on_tasks WHERE task_id = $1`, id); err != nil {
		logger.Error("Repository: Не удалось отвязать лейблы задачи", err)
		return fmt.Errorf("отвязка лейблов: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		logger.Error("Repository: Не удалось удалить задачу", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("удаление задачи: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Error("Repository: Не удалось зафиксировать транзакцию", err)
		return fmt.Errorf("фиксация транзакции: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленная операция", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

// GetTasksForReminder — окно выборки для свипа напоминаний: ещё не уведомлённые
// задачи с дедлайном от from до to включительно. limit <= 0 снимает ограничение.
func (s *Storage) GetTasksForReminder(ctx context.Context, from, to time.Time, limit int) ([]*task.Task, error) {
	start := time.Now()

	query := `SELECT ` + taskColumns + ` FROM tasks
				WHERE notification_created = false
					AND end_date IS NOT NULL
					AND end_date >= $1
					AND end_date <= $2
				ORDER BY end_date`

	args := []any{from, to}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error("Repository: Не удалось получить задачи", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	defer rows.Close()

	tasks := []*task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			logger.Warn("Repository: Ошибка сканирования задачи", zap.Error(err))
			continue
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}

	return tasks, nil
}

func (s *Storage) CountTasksByStatus(ctx context.Context, userID uuid.UUID) (map[task.Status]int, error) {
	query := `SELECT status, COUNT(*) FROM tasks WHERE user_id = $1 GROUP BY status`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		logger.Error("Repository: Не удалось посчитать задачи по статусам", err)
		return nil, fmt.Errorf("подсчёт задач по статусам: %w", err)
	}
	defer rows.Close()

	counts := map[task.Status]int{}
	for rows.Next() {
		var status task.Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			logger.Warn("Repository: Ошибка сканирования статуса", zap.Error(err))
			continue
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}

	return counts, nil
}
