package worker

import (
	"context"
	"time"

	"boardTracker/internal/logger"
	"boardTracker/internal/models/task"
	"boardTracker/internal/service"

	"go.uber.org/zap"
)

type ReminderRepository interface {
	GetTasksForReminder(ctx context.Context, from, to time.Time, limit int) ([]*task.Task, error)
}

type Notifier interface {
	CreateForTask(ctx context.Context, t *task.Task, message string) error
}

type ReminderWorker struct {
	repo      ReminderRepository
	notifier  Notifier
	interval  time.Duration
	batchSize int
}

func NewReminderWorker(repo ReminderRepository, notifier Notifier, interval *time.Duration, batchSize int) *ReminderWorker {
	var intervalToSet time.Duration
	if interval == nil {
		intervalToSet = 2 * time.Minute
	} else {
		intervalToSet = *interval
	}

	return &ReminderWorker{
		repo:      repo,
		notifier:  notifier,
		interval:  intervalToSet,
		batchSize: batchSize,
	}
}

func (w *ReminderWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			logger.Info("Worker: Фоновая проверка дедлайнов", zap.Time("started_at", time.Now()))
			w.Check(ctx)
		case <-ctx.Done():
			logger.Info("Worker: Фоновая проверка останавливается")
			return
		}
	}
}

// Check — один свип: выбрать неуведомлённые задачи в окне дедлайнов,
// классифицировать каждую и создать уведомления для сработавших.
// Ошибка по одной задаче не прерывает остальных.
func (w *ReminderWorker) Check(ctx context.Context) {
	start := time.Now()
	now := time.Now()

	tasks, err := w.repo.GetTasksForReminder(ctx, now.Add(-service.ReminderLookback), now.Add(service.ReminderLookahead), w.batchSize)
	if err != nil {
		logger.Warn("Worker: Ошибка получения задач", zap.Error(err))
		return
	}

	fired := 0
	failed := 0

	for _, t := range tasks {
		message, ok := service.ClassifyDueTask(t, now)
		if !ok {
			continue
		}

		if err := w.notifier.CreateForTask(ctx, t, message); err != nil {
			logger.Warn("Worker: Ошибка создания уведомления",
				zap.String("task_id", t.ID.String()),
				zap.Error(err))
			failed++
			continue
		}
		fired++
	}

	logger.Info(
		"Worker: Завершение проверки дедлайнов",
		zap.Duration("ms", time.Since(start)),
		zap.Int("checked", len(tasks)),
		zap.Int("fired", fired),
		zap.Int("failed", failed),
	)
}
