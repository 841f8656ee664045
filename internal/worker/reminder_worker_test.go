package worker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"boardTracker/internal/models/task"
	"boardTracker/internal/worker"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReminderRepository struct {
	mock.Mock
}

func (m *MockReminderRepository) GetTasksForReminder(ctx context.Context, from, to time.Time, limit int) ([]*task.Task, error) {
	args := m.Called(ctx, from, to, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) CreateForTask(ctx context.Context, t *task.Task, message string) error {
	args := m.Called(ctx, t, message)
	return args.Error(0)
}

var _ worker.ReminderRepository = (*MockReminderRepository)(nil)
var _ worker.Notifier = (*MockNotifier)(nil)

func dueTask(t *testing.T, title, code string, endIn time.Duration) *task.Task {
	t.Helper()

	reminder, err := task.ParseReminder(code)
	require.NoError(t, err)

	end := time.Now().Add(endIn)
	return &task.Task{
		ID:        uuid.New(),
		Title:     title,
		Reminder:  reminder,
		EndDate:   &end,
		CreatedAt: time.Now(),
	}
}

// TestReminderWorker_Check тестирует один свип проверки дедлайнов
func TestReminderWorker_Check(t *testing.T) {
	ctx := context.Background()

	t.Run("fires only classified tasks", func(t *testing.T) {
		due := dueTask(t, "Due soon", "MINS_30", 10*time.Minute)
		notYet := dueTask(t, "Not yet", "MINS_5", 40*time.Minute)
		silent := dueTask(t, "No reminder", "NONE", time.Minute)

		mockRepo := new(MockReminderRepository)
		mockRepo.On("GetTasksForReminder", mock.Anything, mock.Anything, mock.Anything, 100).
			Return([]*task.Task{due, notYet, silent}, nil)

		mockNotifier := new(MockNotifier)
		mockNotifier.On("CreateForTask", mock.Anything, due, mock.AnythingOfType("string")).Return(nil)

		w := worker.NewReminderWorker(mockRepo, mockNotifier, nil, 100)
		w.Check(ctx)

		mockRepo.AssertExpectations(t)
		mockNotifier.AssertExpectations(t)
		mockNotifier.AssertNumberOfCalls(t, "CreateForTask", 1)
	})

	t.Run("one failing task does not stop the others", func(t *testing.T) {
		first := dueTask(t, "First", "MINS_30", 5*time.Minute)
		second := dueTask(t, "Second", "MINS_30", 10*time.Minute)
		third := dueTask(t, "Third", "MINS_30", 15*time.Minute)

		mockRepo := new(MockReminderRepository)
		mockRepo.On("GetTasksForReminder", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return([]*task.Task{first, second, third}, nil)

		mockNotifier := new(MockNotifier)
		mockNotifier.On("CreateForTask", mock.Anything, first, mock.Anything).Return(nil)
		mockNotifier.On("CreateForTask", mock.Anything, second, mock.Anything).Return(errors.New("postgres down"))
		mockNotifier.On("CreateForTask", mock.Anything, third, mock.Anything).Return(nil)

		w := worker.NewReminderWorker(mockRepo, mockNotifier, nil, 0)
		w.Check(ctx)

		// все три задачи обработаны несмотря на сбой второй
		mockNotifier.AssertNumberOfCalls(t, "CreateForTask", 3)
		mockNotifier.AssertExpectations(t)
	})

	t.Run("window spans 48h back and 6min forward", func(t *testing.T) {
		sweepStart := time.Now()

		mockRepo := new(MockReminderRepository)
		mockRepo.On("GetTasksForReminder", mock.Anything,
			mock.MatchedBy(func(from time.Time) bool {
				return from.Sub(sweepStart.Add(-48*time.Hour)).Abs() < time.Second
			}),
			mock.MatchedBy(func(to time.Time) bool {
				return to.Sub(sweepStart.Add(6*time.Minute)).Abs() < time.Second
			}),
			mock.Anything).Return([]*task.Task{}, nil)

		w := worker.NewReminderWorker(mockRepo, new(MockNotifier), nil, 0)
		w.Check(ctx)

		mockRepo.AssertExpectations(t)
	})

	t.Run("repository error skips the sweep", func(t *testing.T) {
		mockRepo := new(MockReminderRepository)
		mockRepo.On("GetTasksForReminder", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("connection refused"))

		mockNotifier := new(MockNotifier)

		w := worker.NewReminderWorker(mockRepo, mockNotifier, nil, 0)
		w.Check(ctx)

		mockNotifier.AssertNotCalled(t, "CreateForTask", mock.Anything, mock.Anything, mock.Anything)
	})
}

// TestReminderWorker_Start тестирует остановку по контексту
func TestReminderWorker_Start(t *testing.T) {
	mockRepo := new(MockReminderRepository)
	mockNotifier := new(MockNotifier)

	interval := 10 * time.Millisecond
	mockRepo.On("GetTasksForReminder", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*task.Task{}, nil).Maybe()

	w := worker.NewReminderWorker(mockRepo, mockNotifier, &interval, 0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	time.Sleep(35 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("воркер не остановился после отмены контекста")
	}

	assert.True(t, len(mockRepo.Calls) >= 1, "воркер должен был сделать хотя бы один свип")
}
