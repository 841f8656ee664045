package service_test

import (
	"fmt"
	"testing"
	"time"

	"boardTracker/internal/models/task"
	"boardTracker/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func taskWithReminder(t *testing.T, code string, endDate time.Time) *task.Task {
	t.Helper()

	reminder, err := task.ParseReminder(code)
	require.NoError(t, err)

	return &task.Task{
		Title:     "Informe mensual",
		Reminder:  reminder,
		EndDate:   &endDate,
		CreatedAt: time.Date(2026, 3, 10, 9, 30, 0, 0, time.Local),
	}
}

// TestClassifyDueTask_Minutes тестирует минутные напоминания вокруг границы
func TestClassifyDueTask_Minutes(t *testing.T) {
	now := time.Date(2026, 3, 12, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name    string
		code    string
		endDate time.Time
		fired   bool
		message string
	}{
		{
			name:    "30 min reminder - deadline in 31 min does not fire",
			code:    "MINS_30",
			endDate: now.Add(31 * time.Minute),
			fired:   false,
		},
		{
			name:    "30 min reminder - deadline in exactly 30 min fires",
			code:    "MINS_30",
			endDate: now.Add(30 * time.Minute),
			fired:   true,
			message: "La tarea Informe mensual, finaliza en 30 minutos",
		},
		{
			name:    "30 min reminder - deadline in 29 min fires",
			code:    "MINS_30",
			endDate: now.Add(29 * time.Minute),
			fired:   true,
			message: "La tarea Informe mensual, finaliza en 29 minutos",
		},
		{
			name:    "5 min reminder - deadline already passed shows negative diff",
			code:    "MINS_5",
			endDate: now.Add(-10 * time.Minute),
			fired:   true,
			message: "La tarea Informe mensual, finaliza en -10 minutos",
		},
		{
			name:    "partial minute truncates toward zero",
			code:    "MINS_10",
			endDate: now.Add(9*time.Minute + 59*time.Second),
			fired:   true,
			message: "La tarea Informe mensual, finaliza en 9 minutos",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tsk := taskWithReminder(t, tt.code, tt.endDate)

			message, fired := service.ClassifyDueTask(tsk, now)
			assert.Equal(t, tt.fired, fired)
			if tt.fired {
				assert.Equal(t, tt.message, message)
			}
		})
	}
}

// TestClassifyDueTask_Hours тестирует часовые напоминания и форму слова
func TestClassifyDueTask_Hours(t *testing.T) {
	now := time.Date(2026, 3, 12, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name    string
		code    string
		endDate time.Time
		fired   bool
		message string
	}{
		{
			name:    "2 hour reminder - deadline in 3 hours does not fire",
			code:    "HOURS_2",
			endDate: now.Add(3 * time.Hour),
			fired:   false,
		},
		{
			name:    "2 hour reminder - deadline in 90 min fires with truncated diff",
			code:    "HOURS_2",
			endDate: now.Add(90 * time.Minute),
			fired:   true,
			message: "La tarea Informe mensual, finaliza en 1 horas",
		},
		{
			// форма слова следует за настроенным лидом, не за остатком
			name:    "1 hour reminder - singular form",
			code:    "HOUR_1",
			endDate: now.Add(45 * time.Minute),
			fired:   true,
			message: "La tarea Informe mensual, finaliza en 0 hora",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tsk := taskWithReminder(t, tt.code, tt.endDate)

			message, fired := service.ClassifyDueTask(tsk, now)
			assert.Equal(t, tt.fired, fired)
			if tt.fired {
				assert.Equal(t, tt.message, message)
			}
		})
	}
}

// TestClassifyDueTask_Days тестирует дневные напоминания
func TestClassifyDueTask_Days(t *testing.T) {
	now := time.Date(2026, 3, 12, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name    string
		code    string
		endDate time.Time
		fired   bool
		message string
	}{
		{
			name:    "2 day reminder - deadline in 3 days does not fire",
			code:    "DAYS_2",
			endDate: now.Add(72 * time.Hour),
			fired:   false,
		},
		{
			// в сообщении настроенный лид, без запятой после названия
			name:    "2 day reminder - deadline in 40 hours fires",
			code:    "DAYS_2",
			endDate: now.Add(40 * time.Hour),
			fired:   true,
			message: "La tarea Informe mensual finaliza en 2 días",
		},
		{
			name:    "1 day reminder - singular form",
			code:    "DAY_1",
			endDate: now.Add(20 * time.Hour),
			fired:   true,
			message: "La tarea Informe mensual finaliza en 1 día",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tsk := taskWithReminder(t, tt.code, tt.endDate)

			message, fired := service.ClassifyDueTask(tsk, now)
			assert.Equal(t, tt.fired, fired)
			if tt.fired {
				assert.Equal(t, tt.message, message)
			}
		})
	}
}

// TestClassifyDueTask_DueDate тестирует напоминание "в день дедлайна"
func TestClassifyDueTask_DueDate(t *testing.T) {
	now := time.Date(2026, 3, 12, 8, 0, 0, 0, time.Local)

	t.Run("same calendar day fires", func(t *testing.T) {
		tsk := taskWithReminder(t, "DUE_DATE", time.Date(2026, 3, 12, 23, 0, 0, 0, time.Local))

		message, fired := service.ClassifyDueTask(tsk, now)
		require.True(t, fired)

		// в сообщении время создания задачи
		expected := fmt.Sprintf("La tarea Informe mensual, finaliza el día de hoy a las %s",
			tsk.CreatedAt.Format("3:04 PM"))
		assert.Equal(t, expected, message)
	})

	t.Run("next day does not fire", func(t *testing.T) {
		tsk := taskWithReminder(t, "DUE_DATE", time.Date(2026, 3, 13, 0, 30, 0, 0, time.Local))

		_, fired := service.ClassifyDueTask(tsk, now)
		assert.False(t, fired)
	})
}

func TestClassifyDueTask_NeverFires(t *testing.T) {
	now := time.Now()

	t.Run("reminder NONE", func(t *testing.T) {
		tsk := taskWithReminder(t, "NONE", now.Add(time.Minute))

		_, fired := service.ClassifyDueTask(tsk, now)
		assert.False(t, fired)
	})

	t.Run("nil end date", func(t *testing.T) {
		tsk := taskWithReminder(t, "MINS_5", now)
		tsk.EndDate = nil

		_, fired := service.ClassifyDueTask(tsk, now)
		assert.False(t, fired)
	})
}
