package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"boardTracker/internal/logger"

	"go.uber.org/zap"
)

type BoardHandler struct {
	BoardService BoardService
}

func NewBoardHandler(boardService BoardService) BoardHandler {
	return BoardHandler{
		BoardService: boardService,
	}
}

func (s *BoardHandler) GetBoards(w http.ResponseWriter, r *http.Request) {
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

	var isActive *bool
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
		isActive = &parsed
	}

	logger.Info("HTTP: Вызов сервиса для получения досок")

	boards, total, err := s.BoardService.GetBoards(r.Context(), userID, isActive, page, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Доски получены",
		zap.Int("count", len(boards)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	payloads := append(paginationPayloads(r.URL.Path, page, limit, total),
		toPayload("boards", boards))
	responseWithJSON(w, http.StatusOK, payloads...)
}

func (s *BoardHandler) GetBoardByID(w http.ResponseWriter, r *http.Request) {
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

	logger.Info("HTTP: Вызов сервиса для получения доски")

	b, err := s.BoardService.GetBoardByID(r.Context(), id, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Доска получена",
		zap.String("board_id", b.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("board", b))
}

func (s *BoardHandler) PostBoard(w http.ResponseWriter, r *http.Request) {
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

	var request CreateBoardRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {

		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "неверное тело запроса:"+err.Error())
		return
	}

	if request.Name == "" {

		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "name"),
			zap.String("error", "empty_field"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "название не может быть пустым")
		return
	}

	logger.Info("HTTP: Вызов сервиса создания доски")

	b, err := s.BoardService.CreateBoard(r.Context(), userID, request.Name)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Доска создана",
		zap.String("board_id", b.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated, toPayload("board", b))
}

func (s *BoardHandler) UpdateBoardByID(w http.ResponseWriter, r *http.Request) {
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

	var request UpdateBoardRequest

	decoder := json.NewDecoder(r.Body)
	defer r.Body.Close()

	if err := decoder.Decode(&request); err != nil {

		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "неверно переданы параметры обновления:"+err.Error())
		return
	}

	logger.Info("HTTP: запрос к сервису обновления данных")

	b, err := s.BoardService.UpdateBoard(r.Context(), id, userID, request.Name, request.IsActive)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Доска обновлена",
		zap.String("board_id", b.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("board", b))
}

func (s *BoardHandler) DeleteBoardByID(w http.ResponseWriter, r *http.Request) {
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

	logger.Info("HTTP: Обращение к сервису для удаления доски")

	b, err := s.BoardService.DeleteBoard(r.Context(), id, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Доска удалена",
		zap.String("board_id", b.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("board", b))
}
