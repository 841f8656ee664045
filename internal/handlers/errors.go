package handlers

import (
	"errors"
	"net/http"

	"boardTracker/internal/logger"
	"boardTracker/internal/service"

	"go.uber.org/zap"
)

func handleServiceError(w http.ResponseWriter, err error) {
	var businessErr *service.BusinessError
	if errors.As(err, &businessErr) {
		statusCode := mapBusinessErrorToHTTP(businessErr.Code)

		logger.Warn("HTTP: Бизнес-ошибка",
			zap.String("error_code", businessErr.Code),
			zap.Int("http_status", statusCode))

		if statusCode == http.StatusInternalServerError {
			// детали внутренних ошибок наружу не отдаём
			responseWithError(w, statusCode, "Внутренняя ошибка сервера")
			return
		}

		responseWithJSON(w, statusCode,
			toPayload("error", businessErr.Code),
			toPayload("message", businessErr.Message),
			toPayload("details", businessErr.Details),
		)
		return
	}

	logger.Error("HTTP: Неизвестная ошибка Service", err)
	responseWithError(w, http.StatusInternalServerError, "Внутренняя ошибка сервера")
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case "NOT_FOUND":
		return http.StatusNotFound
	case "VALIDATION_ERROR", "ALREADY_EXISTS":
		return http.StatusBadRequest
	case "UNAUTHORIZED":
		return http.StatusUnauthorized
	case "INTERNAL":
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
