package handlers

import (
	"net/http"

	"boardTracker/internal/logger"
)

type HealthHandler struct {
	Checker HealthChecker
}

func NewHealthHandler(checker HealthChecker) HealthHandler {
	return HealthHandler{
		Checker: checker,
	}
}

func (s *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: Health check")

	if err := s.Checker.HealthCheck(r.Context()); err != nil {
		logger.Error("HTTP: База данных недоступна", err)
		responseWithJSON(w, http.StatusServiceUnavailable, toPayload("status", "unavailable"))
		return
	}

	responseWithJSON(w, http.StatusOK, toPayload("status", "ok"))
}
