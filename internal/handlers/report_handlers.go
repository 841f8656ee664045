package handlers

import (
	"net/http"
	"strconv"
	"time"

	"boardTracker/internal/logger"

	"go.uber.org/zap"
)

type ReportHandler struct {
	ReportService ReportService
}

func NewReportHandler(reportService ReportService) ReportHandler {
	return ReportHandler{
		ReportService: reportService,
	}
}

// GetUserReport отдаёт PDF-отчёт по пользователю как вложение
func (s *ReportHandler) GetUserReport(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	logger.Info("HTTP: Вызов сервиса генерации отчёта")

	pdf, err := s.ReportService.GenerateUserReport(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Отчёт сформирован",
		zap.Int("size_bytes", len(pdf)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="report.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
