package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"boardTracker/internal/logger"
	"boardTracker/internal/models/task"
	repo "boardTracker/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxTitleLength = 200

type TaskHandler struct {
	TaskService TaskService
}

func NewTaskHandler(taskService TaskService) TaskHandler {
	return TaskHandler{
		TaskService: taskService,
	}
}

func (s *TaskHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	page, limit, ok := parsePagination(r)
	if !ok {

		logger.Warn("HTTP: Неверные параметры пагинации",
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "неверные значения page/limit")
		return
	}

	filter := repo.TaskFilter{UserID: userID}

	if raw := r.URL.Query().Get("boardId"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {

			logger.Warn("HTTP: Неверное значение параметра",
				zap.String("querry", "boardId"),
				zap.Error(err),
				zap.String("client_ip", r.RemoteAddr))

			responseWithError(w, http.StatusBadRequest, "неверное значение boardId")
			return
		}
		filter.BoardID = &parsed
	}

	if raw := r.URL.Query().Get("status"); raw != "" {
		if !task.ValidStatus(task.Status(raw)) {

			logger.Warn("HTTP: Неверное значение параметра",
				zap.String("querry", "status"),
				zap.String("received", raw),
				zap.String("client_ip", r.RemoteAddr))

			responseWithError(w, http.StatusBadRequest, "неверное значение status")
			return
		}
		filter.Status = &raw
	}

	if raw := r.URL.Query().Get("isActive"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {

			logger.Warn("HTTP: Неверное значение параметра",
				zap.String("querry", "isActive"),
				zap.Error(err),
				zap.String("client_ip", r.RemoteAddr))

			responseWithError(w, http.StatusBadRequest, "неверное значение isActive")
			return
		}
		filter.IsActive = &parsed
	}

	logger.Info("HTTP: Вызов сервиса для получения задач")

	tasks, total, err := s.TaskService.GetTasks(r.Context(), filter, page, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Задачи получены",
		zap.Int("count", len(tasks)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	payloads := append(paginationPayloads(r.URL.Path, page, limit, total),
		toPayload("tasks", tasks))
	responseWithJSON(w, http.StatusOK, payloads...)
}

func (s *TaskHandler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	logger.Info("HTTP: Вызов сервиса для получения задачи")

	t, err := s.TaskService.GetTaskByID(r.Context(), id, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Задача получена",
		zap.String("task_id", t.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("task", t))
}

func (s *TaskHandler) PostTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if !checkContentType(r, "application/json") {

		logger.Warn("HTTP: Неверный тип контента",
			zap.String("expected", "application/json"),
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type должен быть application/json")
		return
	}

	var request CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {

		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "неверное тело запроса:"+err.Error())
		return
	}

	if request.Title == "" {

		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "title"),
			zap.String("error", "empty_field"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "название не может быть пустым")
		return
	}

	if len([]rune(request.Title)) > maxTitleLength {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "title"),
			zap.String("error", "too_long"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "название не может быть длиннее 200 символов")
		return
	}

	if request.BoardID == uuid.Nil {

		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "boardId"),
			zap.String("error", "empty_field"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "boardId не может быть пустым")
		return
	}

	status := task.Status(request.Status)
	if request.Status == "" {
		status = task.StatusTodo
	}
	if !task.ValidStatus(status) {

		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "status"),
			zap.String("received", request.Status),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "неверное значение status")
		return
	}

	logger.Info("HTTP: Вызов сервиса создания задач")

	t, err := s.TaskService.CreateTask(r.Context(), userID, request.BoardID, request.Title, request.Description, status)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Задача создана",
		zap.String("task_id", t.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated, toPayload("task", t))
}

func (s *TaskHandler) UpdateTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var request UpdateTaskRequest

	decoder := json.NewDecoder(r.Body)
	defer r.Body.Close()

	if err := decoder.Decode(&request); err != nil {

		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "неверно переданы параметры обновления:"+err.Error())
		return
	}

	options := make([]task.TaskOption, 0, 7)
	if request.Title != nil {
		if len([]rune(*request.Title)) > maxTitleLength {
			logger.Warn("HTTP: Ошибка валидации",
				zap.String("field", "title"),
				zap.String("error", "too_long"),
				zap.String("client_ip", r.RemoteAddr))

			responseWithError(w, http.StatusBadRequest, "название не может быть длиннее 200 символов")
			return
		}
		options = append(options, task.WithTitle(*request.Title))
	}
	if request.Description != nil {
		options = append(options, task.WithDescription(request.Description))
	}
	if request.Status != nil {
		status := task.Status(*request.Status)
		if !task.ValidStatus(status) {

			logger.Warn("HTTP: Ошибка валидации",
				zap.String("field", "status"),
				zap.String("received", *request.Status),
				zap.String("client_ip", r.RemoteAddr))

			responseWithError(w, http.StatusBadRequest, "неверное значение status")
			return
		}
		options = append(options, task.WithStatus(status))
	}
	if request.StartDate != nil {
		options = append(options, task.WithStartDate(request.StartDate))
	}
	if request.EndDate != nil {
		options = append(options, task.WithEndDate(request.EndDate))
	}
	if request.Reminder != nil {
		reminder, err := task.ParseReminder(*request.Reminder)
		if err != nil {

			logger.Warn("HTTP: Ошибка валидации",
				zap.String("field", "reminderTime"),
				zap.String("received", *request.Reminder),
				zap.String("client_ip", r.RemoteAddr))

			responseWithError(w, http.StatusBadRequest, "неверное значение reminderTime")
			return
		}
		options = append(options, task.WithReminder(&reminder))
	}
	if request.IsActive != nil {
		options = append(options, task.WithIsActive(request.IsActive))
	}

	logger.Info("HTTP: запрос к сервису обновления данных")

	t, err := s.TaskService.UpdateTask(r.Context(), id, userID, request.Labels, options...)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Задача обновлена",
		zap.String("task_id", t.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("task", t))
}

func (s *TaskHandler) DeleteTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	logger.Info("HTTP: Обращение к сервису для удаления задачи")

	t, err := s.TaskService.DeleteTask(r.Context(), id, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Задача удалена",
		zap.String("task_id", t.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("task", t))
}
