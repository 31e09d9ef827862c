// Package export builds the operator spreadsheet: applications, open
// questions and the headline numbers.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"recruitbot/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	sheetApplications = "Анкеты"
	sheetQuestions    = "Вопросы"
	sheetStats        = "Статистика"

	timeLayout = "02.01.2006 15:04"
)

var applicationHeaders = []string{
	"ID", "User ID", "Username", "Имя", "Язык", "Время", "Опыт", "Статус", "ID платформы", "Создана", "Решение",
}

// Report is everything that goes into one export.
type Report struct {
	Applications []*models.ApplicationRow
	Questions    []*models.PendingQuestion
	Stats        *models.Stats
	GeneratedAt  time.Time
}

// Write renders the report as xlsx into w.
func Write(w io.Writer, r *Report) error {
	f, err := build(r)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// SaveFile stores the report under dir and returns the file path.
func SaveFile(dir string, r *Report) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %w", err)
	}
	f, err := build(r)
	if err != nil {
		return "", err
	}
	defer f.Close()

	path := filepath.Join(dir, fmt.Sprintf("recruitbot_%s.xlsx", r.GeneratedAt.Format("2006-01-02_15-04-05")))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("error saving file: %w", err)
	}
	return path, nil
}

func build(r *Report) (*excelize.File, error) {
	if r.GeneratedAt.IsZero() {
		r.GeneratedAt = time.Now()
	}

	f := excelize.NewFile()
	index, err := f.NewSheet(sheetApplications)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)

	header, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	writeApplications(f, r.Applications, header)

	if _, err := f.NewSheet(sheetQuestions); err != nil {
		f.Close()
		return nil, fmt.Errorf("error creating sheet: %w", err)
	}
	writeQuestions(f, r.Questions, header)

	if r.Stats != nil {
		if _, err := f.NewSheet(sheetStats); err != nil {
			f.Close()
			return nil, fmt.Errorf("error creating sheet: %w", err)
		}
		writeStats(f, r.Stats, r.GeneratedAt)
	}

	// Удаляем стандартный лист
	_ = f.DeleteSheet("Sheet1")
	return f, nil
}

func writeApplications(f *excelize.File, rows []*models.ApplicationRow, header int) {
	for i, h := range applicationHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetApplications, cell, h)
	}
	last, _ := excelize.CoordinatesToCellName(len(applicationHeaders), 1)
	_ = f.SetCellStyle(sheetApplications, "A1", last, header)

	for i, row := range rows {
		decided := ""
		if row.DecidedAt != nil {
			decided = row.DecidedAt.Format(timeLayout)
		}
		values := []interface{}{
			row.ApplicationID, row.UserID, row.Username, row.FirstName, string(row.Language),
			row.WorkHours, row.Experience, string(row.Status), row.PlatformID,
			row.CreatedAt.Format(timeLayout), decided,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		_ = f.SetSheetRow(sheetApplications, cell, &values)
	}

	_ = f.SetColWidth(sheetApplications, "A", "B", 12)
	_ = f.SetColWidth(sheetApplications, "C", "E", 16)
	_ = f.SetColWidth(sheetApplications, "F", "G", 30)
	_ = f.SetColWidth(sheetApplications, "H", "K", 18)
}

func writeQuestions(f *excelize.File, questions []*models.PendingQuestion, header int) {
	_ = f.SetSheetRow(sheetQuestions, "A1", &[]interface{}{"User ID", "Вопрос", "Задан"})
	_ = f.SetCellStyle(sheetQuestions, "A1", "C1", header)
	for i, q := range questions {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		_ = f.SetSheetRow(sheetQuestions, cell, &[]interface{}{q.UserID, q.Question, q.CreatedAt.Format(timeLayout)})
	}
	_ = f.SetColWidth(sheetQuestions, "B", "B", 60)
}

func writeStats(f *excelize.File, s *models.Stats, at time.Time) {
	rows := [][]interface{}{
		{"Сформировано", at.Format(timeLayout)},
		{"Пользователей", s.TotalUsers},
		{"Зарегистрировано", s.Registered},
		{"Анкет на рассмотрении", s.Pending},
		{"Одобрено", s.Approved},
		{"Отклонено", s.Rejected},
		{"Открытых вопросов", s.OpenQuestions},
		{"Автоответов", s.AutoAnswers},
		{"Ответов операторов", s.AdminAnswers},
		{"Средняя уверенность", fmt.Sprintf("%.1f", s.AvgConfidence)},
		{"Автономность, %", fmt.Sprintf("%.1f", s.Autonomy())},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		values := row
		_ = f.SetSheetRow(sheetStats, cell, &values)
	}
	_ = f.SetColWidth(sheetStats, "A", "A", 28)
}
