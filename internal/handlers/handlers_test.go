package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"boardTracker/internal/handlers"
	"boardTracker/internal/middleware"
	"boardTracker/internal/models/board"
	"boardTracker/internal/models/task"
	repo "boardTracker/internal/repository"
	"boardTracker/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTaskService - мок сервиса задач
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) CreateTask(ctx context.Context, userID, boardID uuid.UUID, title, description string, status task.Status) (*task.Task, error) {
	args := m.Called(ctx, userID, boardID, title, description, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskService) GetTasks(ctx context.Context, filter repo.TaskFilter, page, limit int) ([]*task.Task, int, error) {
	args := m.Called(ctx, filter, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*task.Task), args.Int(1), args.Error(2)
}

func (m *MockTaskService) GetTaskByID(ctx context.Context, id, userID uuid.UUID) (*task.Task, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskService) UpdateTask(ctx context.Context, id, userID uuid.UUID, desiredLabels []uuid.UUID, options ...task.TaskOption) (*task.Task, error) {
	args := m.Called(ctx, id, userID, desiredLabels, options)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskService) DeleteTask(ctx context.Context, id, userID uuid.UUID) (*task.Task, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

// MockBoardService - мок сервиса досок
type MockBoardService struct {
	mock.Mock
}

func (m *MockBoardService) CreateBoard(ctx context.Context, userID uuid.UUID, name string) (*board.Board, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*board.Board), args.Error(1)
}

func (m *MockBoardService) GetBoards(ctx context.Context, userID uuid.UUID, isActive *bool, page, limit int) ([]*board.Board, int, error) {
	args := m.Called(ctx, userID, isActive, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*board.Board), args.Int(1), args.Error(2)
}

func (m *MockBoardService) GetBoardByID(ctx context.Context, id, userID uuid.UUID) (*board.Board, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*board.Board), args.Error(1)
}

func (m *MockBoardService) UpdateBoard(ctx context.Context, id, userID uuid.UUID, name *string, isActive *bool) (*board.Board, error) {
	args := m.Called(ctx, id, userID, name, isActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*board.Board), args.Error(1)
}

func (m *MockBoardService) DeleteBoard(ctx context.Context, id, userID uuid.UUID) (*board.Board, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*board.Board), args.Error(1)
}

var _ handlers.TaskService = (*MockTaskService)(nil)
var _ handlers.BoardService = (*MockBoardService)(nil)

func authedRequest(method, target string, userID uuid.UUID, body []byte) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func taskRouter(handler handlers.TaskHandler) *chi.Mux {
	router := chi.NewRouter()
	router.Route("/api/tasks", func(r chi.Router) {
		r.Get("/", handler.GetTasks)
		r.Post("/", handler.PostTask)
		r.Get("/{id}", handler.GetTaskByID)
		r.Put("/{id}", handler.UpdateTaskByID)
		r.Delete("/{id}", handler.DeleteTaskByID)
	})
	return router
}

// TestTaskHandler_GetTasks тестирует выдачу задач со страницей
func TestTaskHandler_GetTasks(t *testing.T) {
	userID := uuid.New()

	t.Run("success - pagination fields present", func(t *testing.T) {
		mockService := new(MockTaskService)
		mockService.On("GetTasks", mock.Anything, repo.TaskFilter{UserID: userID}, 2, 10).
			Return([]*task.Task{{ID: uuid.New(), UserID: userID, Title: "Test"}}, 25, nil)

		handler := handlers.NewTaskHandler(mockService)
		rec := httptest.NewRecorder()
		taskRouter(handler).ServeHTTP(rec, authedRequest(http.MethodGet, "/api/tasks?page=2", userID, nil))

		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		assert.EqualValues(t, 2, body["page"])
		assert.EqualValues(t, 3, body["lastPage"])
		assert.EqualValues(t, 25, body["total"])
		assert.Equal(t, "/api/tasks?page=1&limit=10", body["prev"])
		assert.Equal(t, "/api/tasks?page=3&limit=10", body["next"])
		assert.Len(t, body["tasks"], 1)

		mockService.AssertExpectations(t)
	})

	t.Run("error - no user in context", func(t *testing.T) {
		handler := handlers.NewTaskHandler(new(MockTaskService))
		rec := httptest.NewRecorder()
		taskRouter(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("error - bad status filter", func(t *testing.T) {
		handler := handlers.NewTaskHandler(new(MockTaskService))
		rec := httptest.NewRecorder()
		taskRouter(handler).ServeHTTP(rec, authedRequest(http.MethodGet, "/api/tasks?status=WAITING", userID, nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

// TestTaskHandler_PostTask тестирует создание задачи
func TestTaskHandler_PostTask(t *testing.T) {
	userID := uuid.New()
	boardID := uuid.New()

	t.Run("success", func(t *testing.T) {
		mockService := new(MockTaskService)
		mockService.On("CreateTask", mock.Anything, userID, boardID, "Test Task", "", task.StatusTodo).
			Return(&task.Task{ID: uuid.New(), UserID: userID, BoardID: boardID, Title: "Test Task"}, nil)

		payload, _ := json.Marshal(map[string]any{
			"boardId": boardID,
			"title":   "Test Task",
		})

		handler := handlers.NewTaskHandler(mockService)
		rec := httptest.NewRecorder()
		taskRouter(handler).ServeHTTP(rec, authedRequest(http.MethodPost, "/api/tasks", userID, payload))

		assert.Equal(t, http.StatusCreated, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("error - empty title", func(t *testing.T) {
		payload, _ := json.Marshal(map[string]any{"boardId": boardID})

		handler := handlers.NewTaskHandler(new(MockTaskService))
		rec := httptest.NewRecorder()
		taskRouter(handler).ServeHTTP(rec, authedRequest(http.MethodPost, "/api/tasks", userID, payload))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("error - title over 200 characters", func(t *testing.T) {
		payload, _ := json.Marshal(map[string]any{
			"boardId": boardID,
			"title":   strings.Repeat("a", 201),
		})

		mockService := new(MockTaskService)
		handler := handlers.NewTaskHandler(mockService)
		rec := httptest.NewRecorder()
		taskRouter(handler).ServeHTTP(rec, authedRequest(http.MethodPost, "/api/tasks", userID, payload))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "CreateTask",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("title of exactly 200 characters accepted", func(t *testing.T) {
		title := strings.Repeat("a", 200)

		mockService := new(MockTaskService)
		mockService.On("CreateTask", mock.Anything, userID, boardID, title, "", task.StatusTodo).
			Return(&task.Task{ID: uuid.New(), UserID: userID, BoardID: boardID, Title: title}, nil)

		payload, _ := json.Marshal(map[string]any{
			"boardId": boardID,
			"title":   title,
		})

		handler := handlers.NewTaskHandler(mockService)
		rec := httptest.NewRecorder()
		taskRouter(handler).ServeHTTP(rec, authedRequest(http.MethodPost, "/api/tasks", userID, payload))

		assert.Equal(t, http.StatusCreated, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("error - wrong content type", func(t *testing.T) {
		req := authedRequest(http.MethodPost, "/api/tasks", userID, []byte("title=test"))
		req.Header.Set("Content-Type", "text/plain")

		handler := handlers.NewTaskHandler(new(MockTaskService))
		rec := httptest.NewRecorder()
		taskRouter(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})
}

// TestTaskHandler_UpdateTaskByID тестирует обновление с набором лейблов
func TestTaskHandler_UpdateTaskByID(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()
	labelID := uuid.New()

	t.Run("labels passed through to service", func(t *testing.T) {
		mockService := new(MockTaskService)
		mockService.On("UpdateTask", mock.Anything, taskID, userID, []uuid.UUID{labelID}, mock.Anything).
			Return(&task.Task{ID: taskID, UserID: userID}, nil)

		payload, _ := json.Marshal(map[string]any{
			"title":  "Renamed",
			"labels": []uuid.UUID{labelID},
		})

		handler := handlers.NewTaskHandler(mockService)
		rec := httptest.NewRecorder()
		taskRouter(handler).ServeHTTP(rec, authedRequest(http.MethodPut, "/api/tasks/"+taskID.String(), userID, payload))

		assert.Equal(t, http.StatusOK, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("error - title over 200 characters", func(t *testing.T) {
		payload, _ := json.Marshal(map[string]any{"title": strings.Repeat("я", 201)})

		mockService := new(MockTaskService)
		handler := handlers.NewTaskHandler(mockService)
		rec := httptest.NewRecorder()
		taskRouter(handler).ServeHTTP(rec, authedRequest(http.MethodPut, "/api/tasks/"+taskID.String(), userID, payload))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "UpdateTask",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("error - unknown reminder code", func(t *testing.T) {
		payload, _ := json.Marshal(map[string]any{"reminderTime": "MINS_99"})

		handler := handlers.NewTaskHandler(new(MockTaskService))
		rec := httptest.NewRecorder()
		taskRouter(handler).ServeHTTP(rec, authedRequest(http.MethodPut, "/api/tasks/"+taskID.String(), userID, payload))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("error - invalid id", func(t *testing.T) {
		handler := handlers.NewTaskHandler(new(MockTaskService))
		rec := httptest.NewRecorder()
		taskRouter(handler).ServeHTTP(rec, authedRequest(http.MethodPut, "/api/tasks/not-a-uuid", userID, []byte("{}")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

// TestTaskHandler_ServiceErrors тестирует маппинг бизнес-ошибок на статусы
func TestTaskHandler_ServiceErrors(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()

	tests := []struct {
		name           string
		serviceError   error
		expectedStatus int
	}{
		{
			name:           "not found maps to 404",
			serviceError:   service.NewNotFound("задача", taskID.String()),
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "unauthorized maps to 401",
			serviceError:   service.NewUnauthorized("Нет доступа к этой задаче"),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "internal maps to 500",
			serviceError:   service.NewInternal(assert.AnError),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockTaskService)
			mockService.On("GetTaskByID", mock.Anything, taskID, userID).Return(nil, tt.serviceError)

			handler := handlers.NewTaskHandler(mockService)
			rec := httptest.NewRecorder()
			taskRouter(handler).ServeHTTP(rec, authedRequest(http.MethodGet, "/api/tasks/"+taskID.String(), userID, nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedStatus == http.StatusInternalServerError {
				// внутренние детали не должны утекать в ответ
				body := decodeBody(t, rec)
				assert.Equal(t, "Внутренняя ошибка сервера", body["error"])
			}
		})
	}
}

// TestBoardHandler_CRUD тестирует базовый цикл хендлера досок
func TestBoardHandler_CRUD(t *testing.T) {
	userID := uuid.New()
	boardID := uuid.New()

	boardRouter := func(handler handlers.BoardHandler) *chi.Mux {
		router := chi.NewRouter()
		router.Route("/api/boards", func(r chi.Router) {
			r.Get("/", handler.GetBoards)
			r.Post("/", handler.PostBoard)
			r.Put("/{id}", handler.UpdateBoardByID)
		})
		return router
	}

	t.Run("create", func(t *testing.T) {
		mockService := new(MockBoardService)
		mockService.On("CreateBoard", mock.Anything, userID, "Proyecto").
			Return(&board.Board{ID: boardID, UserID: userID, Name: "Proyecto", IsActive: true}, nil)

		payload, _ := json.Marshal(map[string]any{"name": "Proyecto"})

		rec := httptest.NewRecorder()
		boardRouter(handlers.NewBoardHandler(mockService)).
			ServeHTTP(rec, authedRequest(http.MethodPost, "/api/boards", userID, payload))

		require.Equal(t, http.StatusCreated, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("update partial fields", func(t *testing.T) {
		newName := "Renombrado"
		mockService := new(MockBoardService)
		mockService.On("UpdateBoard", mock.Anything, boardID, userID, &newName, (*bool)(nil)).
			Return(&board.Board{ID: boardID, UserID: userID, Name: newName}, nil)

		payload, _ := json.Marshal(map[string]any{"name": newName})

		rec := httptest.NewRecorder()
		boardRouter(handlers.NewBoardHandler(mockService)).
			ServeHTTP(rec, authedRequest(http.MethodPut, "/api/boards/"+boardID.String(), userID, payload))

		assert.Equal(t, http.StatusOK, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("list with isActive filter", func(t *testing.T) {
		mockService := new(MockBoardService)
		mockService.On("GetBoards", mock.Anything, userID, mock.MatchedBy(func(isActive *bool) bool {
			return isActive != nil && *isActive
		}), 1, 10).Return([]*board.Board{}, 0, nil)

		rec := httptest.NewRecorder()
		boardRouter(handlers.NewBoardHandler(mockService)).
			ServeHTTP(rec, authedRequest(http.MethodGet, "/api/boards?isActive=true", userID, nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		mockService.AssertExpectations(t)
	})
}
