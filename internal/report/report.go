package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

type UserReportData struct {
	Name             string
	Email            string
	RegistrationDate time.Time
	Boards           int
	TasksCreated     int
	TasksPending     int
	TasksInProgress  int
	TasksCompleted   int
}

// Generate рендерит одностраничный PDF-отчёт по пользователю:
// шапка, блок профиля, таблица счётчиков задач.
func Generate(data UserReportData) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Employment report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "Employment report", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 6, time.Now().Format("02 Jan 2006"), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "User", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Name: %s", data.Name), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Email: %s", data.Email), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Registered: %s", data.RegistrationDate.Format("02 Jan 2006")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Active boards: %d", data.Boards), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Tasks", "", 1, "L", false, 0, "")

	rows := []struct {
		label string
		value int
	}{
		{"Created", data.TasksCreated},
		{"Pending", data.TasksPending},
		{"In progress", data.TasksInProgress},
		{"Completed", data.TasksCompleted},
	}

	pdf.SetFont("Helvetica", "", 11)
	for _, row := range rows {
		pdf.CellFormat(60, 8, row.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%d", row.value), "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("вывод PDF: %w", err)
	}
	return buf.Bytes(), nil
}
