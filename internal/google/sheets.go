package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"sync"
	"time"

	"recruitbot/internal/models"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	sheetName    = "Applications"
	lastColumn   = "K"
	timeLayout   = "2006-01-02 15:04:05"
	statusColumn = "H"
	decidedCol   = "K"
)

var errRowNotFound = errors.New("application row not found")

var headerRow = []interface{}{
	"ID", "User ID", "Username", "Имя", "Язык", "Время работы", "Опыт", "Статус", "Platform ID", "Создана", "Решение",
}

// ApplicationsSheet зеркалит заявки в Google Sheets: одна строка на заявку.
type ApplicationsSheet struct {
	service       *sheets.Service
	spreadsheetID string
	rowCache      map[int64]int
	cacheMu       sync.RWMutex
	logger        *zerolog.Logger
}

func NewApplicationsSheet(ctx context.Context, credentialsFile, spreadsheetID string, logger *zerolog.Logger) (*ApplicationsSheet, error) {
	// Читаем файл учетных данных сервисного аккаунта
	credentialsJSON, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}

	// Создаем JWT конфигурацию
	config, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets service: %w", err)
	}

	return newApplicationsSheet(srv, spreadsheetID, logger), nil
}

func newApplicationsSheet(srv *sheets.Service, spreadsheetID string, logger *zerolog.Logger) *ApplicationsSheet {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &ApplicationsSheet{
		service:       srv,
		spreadsheetID: spreadsheetID,
		rowCache:      make(map[int64]int),
		logger:        logger,
	}
}

// TestConnection проверяет доступ к таблице
func (s *ApplicationsSheet) TestConnection(ctx context.Context) error {
	_, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, sheetName+"!A1").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}
	return nil
}

// WarmUpCache перечитывает колонку ID и строит индекс строк.
func (s *ApplicationsSheet) WarmUpCache(ctx context.Context) error {
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, sheetName+"!A:A").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read id column: %w", err)
	}

	cache := make(map[int64]int, len(resp.Values))
	for i, row := range resp.Values {
		if id, ok := cellID(row); ok {
			cache[id] = i + 1
		}
	}

	s.cacheMu.Lock()
	s.rowCache = cache
	s.cacheMu.Unlock()
	return nil
}

// UpsertApplication обновляет строку заявки или дописывает новую.
func (s *ApplicationsSheet) UpsertApplication(ctx context.Context, row *models.ApplicationRow) error {
	if row == nil {
		return errors.New("application row is nil")
	}

	rowIdx, err := s.findRow(ctx, row.ApplicationID)
	if errors.Is(err, errRowNotFound) {
		return s.appendRow(ctx, row)
	}
	if err != nil {
		return err
	}

	rangeData := fmt.Sprintf("%s!A%d:%s%d", sheetName, rowIdx, lastColumn, rowIdx)
	_, err = s.service.Spreadsheets.Values.Update(s.spreadsheetID, rangeData, &sheets.ValueRange{
		Values: [][]interface{}{rowValues(row)},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update application row: %w", err)
	}
	return nil
}

// UpdateApplicationStatus меняет статус и время решения одной пачкой.
func (s *ApplicationsSheet) UpdateApplicationStatus(ctx context.Context, applicationID int64, status models.ApplicationStatus) error {
	rowIdx, err := s.findRow(ctx, applicationID)
	if err != nil {
		return err
	}

	req := &sheets.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data: []*sheets.ValueRange{
			{
				Range:  fmt.Sprintf("%s!%s%d", sheetName, statusColumn, rowIdx),
				Values: [][]interface{}{{string(status)}},
			},
			{
				Range:  fmt.Sprintf("%s!%s%d", sheetName, decidedCol, rowIdx),
				Values: [][]interface{}{{time.Now().Format(timeLayout)}},
			},
		},
	}
	if _, err := s.service.Spreadsheets.Values.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("update application status: %w", err)
	}
	return nil
}

// ReplaceAll переписывает лист целиком (ручная синхронизация).
func (s *ApplicationsSheet) ReplaceAll(ctx context.Context, rows []*models.ApplicationRow) error {
	_, err := s.service.Spreadsheets.Values.Clear(s.spreadsheetID, sheetName+"!A:"+lastColumn, &sheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear sheet: %w", err)
	}

	values := make([][]interface{}, 0, len(rows)+1)
	values = append(values, headerRow)
	cache := make(map[int64]int, len(rows))
	for i, r := range rows {
		values = append(values, rowValues(r))
		cache[r.ApplicationID] = i + 2
	}

	rangeData := fmt.Sprintf("%s!A1:%s%d", sheetName, lastColumn, len(values))
	_, err = s.service.Spreadsheets.Values.Update(s.spreadsheetID, rangeData, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write sheet: %w", err)
	}

	s.cacheMu.Lock()
	s.rowCache = cache
	s.cacheMu.Unlock()
	return nil
}

func (s *ApplicationsSheet) appendRow(ctx context.Context, row *models.ApplicationRow) error {
	resp, err := s.service.Spreadsheets.Values.Append(s.spreadsheetID, sheetName+"!A:A", &sheets.ValueRange{
		Values: [][]interface{}{rowValues(row)},
	}).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append application row: %w", err)
	}

	if resp.Updates != nil {
		if idx, ok := parseRowFromRange(resp.Updates.UpdatedRange); ok {
			s.setCachedRow(row.ApplicationID, idx)
		}
	}
	return nil
}

// findRow ищет 1-based номер строки заявки, сначала в кеше.
func (s *ApplicationsSheet) findRow(ctx context.Context, applicationID int64) (int, error) {
	if applicationID == 0 {
		return 0, errors.New("application id is required")
	}

	if row, ok := s.getCachedRow(applicationID); ok {
		return row, nil
	}

	if err := s.WarmUpCache(ctx); err != nil {
		return 0, err
	}
	if row, ok := s.getCachedRow(applicationID); ok {
		return row, nil
	}
	return 0, errRowNotFound
}

func (s *ApplicationsSheet) getCachedRow(id int64) (int, bool) {
	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()
	row, ok := s.rowCache[id]
	return row, ok
}

func (s *ApplicationsSheet) setCachedRow(id int64, row int) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.rowCache[id] = row
}

func rowValues(r *models.ApplicationRow) []interface{} {
	decided := ""
	if r.DecidedAt != nil {
		decided = r.DecidedAt.Format(timeLayout)
	}
	return []interface{}{
		r.ApplicationID,
		r.UserID,
		r.Username,
		r.FirstName,
		string(r.Language),
		r.WorkHours,
		r.Experience,
		string(r.Status),
		r.PlatformID,
		r.CreatedAt.Format(timeLayout),
		decided,
	}
}

func cellID(row []interface{}) (int64, bool) {
	if len(row) == 0 {
		return 0, false
	}
	switch v := row[0].(type) {
	case float64:
		return int64(v), v > 0
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		return id, err == nil && id > 0
	}
	return 0, false
}

var rangeRowRe = regexp.MustCompile(`![A-Z]+(\d+)`)

// parseRowFromRange извлекает номер строки из "Applications!A10:K10".
func parseRowFromRange(a1 string) (int, bool) {
	m := rangeRowRe.FindStringSubmatch(a1)
	if len(m) != 2 {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	return n, err == nil
}
