package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"recruitbot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const testSpreadsheet = "apps_tid"

func setupMockServer(t *testing.T) (*http.ServeMux, *ApplicationsSheet) {
	t.Helper()
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	srv, err := sheets.NewService(context.Background(), option.WithEndpoint(server.URL), option.WithoutAuthentication())
	require.NoError(t, err)
	return mux, newApplicationsSheet(srv, testSpreadsheet, nil)
}

func sampleRow(id int64) *models.ApplicationRow {
	return &models.ApplicationRow{
		ApplicationID: id,
		UserID:        100 + id,
		Username:      "masha",
		FirstName:     "Маша",
		Language:      models.LangRU,
		WorkHours:     "4-5 часов",
		Experience:    "нет",
		Status:        models.ApplicationPending,
		CreatedAt:     time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestApplicationsSheet_TestConnection(t *testing.T) {
	mux, s := setupMockServer(t)
	mux.HandleFunc("/v4/spreadsheets/apps_tid/values/Applications!A1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(sheets.ValueRange{Values: [][]interface{}{{"ID"}}})
	})
	assert.NoError(t, s.TestConnection(context.Background()))
}

func TestApplicationsSheet_TestConnectionError(t *testing.T) {
	mux, s := setupMockServer(t)
	mux.HandleFunc("/v4/spreadsheets/apps_tid/values/Applications!A1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	assert.Error(t, s.TestConnection(context.Background()))
}

func TestApplicationsSheet_WarmUpCache(t *testing.T) {
	mux, s := setupMockServer(t)
	mux.HandleFunc("/v4/spreadsheets/apps_tid/values/Applications!A:A", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(sheets.ValueRange{
			Values: [][]interface{}{{"ID"}, {"123"}, {}, {"456"}},
		})
	})
	require.NoError(t, s.WarmUpCache(context.Background()))

	row, ok := s.getCachedRow(123)
	assert.True(t, ok)
	assert.Equal(t, 2, row)

	row, ok = s.getCachedRow(456)
	assert.True(t, ok)
	assert.Equal(t, 4, row)
}

func TestApplicationsSheet_UpsertAppendsNewRow(t *testing.T) {
	mux, s := setupMockServer(t)
	mux.HandleFunc("/v4/spreadsheets/apps_tid/values/Applications!A:A", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(sheets.ValueRange{Values: [][]interface{}{{"ID"}}})
	})
	var appended atomic.Int32
	mux.HandleFunc("/v4/spreadsheets/apps_tid/values/Applications!A:A:append", func(w http.ResponseWriter, r *http.Request) {
		appended.Add(1)
		var body sheets.ValueRange
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.Len(t, body.Values, 1)
		assert.Len(t, body.Values[0], 11)
		_ = json.NewEncoder(w).Encode(sheets.AppendValuesResponse{
			Updates: &sheets.UpdateValuesResponse{UpdatedRange: "Applications!A7:K7"},
		})
	})

	require.NoError(t, s.UpsertApplication(context.Background(), sampleRow(5)))
	assert.Equal(t, int32(1), appended.Load())

	row, ok := s.getCachedRow(5)
	assert.True(t, ok)
	assert.Equal(t, 7, row)
}

func TestApplicationsSheet_UpsertUpdatesCachedRow(t *testing.T) {
	mux, s := setupMockServer(t)
	s.setCachedRow(5, 3)

	var updated atomic.Int32
	mux.HandleFunc("/v4/spreadsheets/apps_tid/values/Applications!A3:K3", func(w http.ResponseWriter, r *http.Request) {
		updated.Add(1)
		_ = json.NewEncoder(w).Encode(sheets.UpdateValuesResponse{})
	})

	require.NoError(t, s.UpsertApplication(context.Background(), sampleRow(5)))
	assert.Equal(t, int32(1), updated.Load())
}

func TestApplicationsSheet_UpdateStatus(t *testing.T) {
	mux, s := setupMockServer(t)
	s.setCachedRow(9, 4)

	mux.HandleFunc("/v4/spreadsheets/apps_tid/values:batchUpdate", func(w http.ResponseWriter, r *http.Request) {
		var req sheets.BatchUpdateValuesRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if assert.Len(t, req.Data, 2) {
			assert.Equal(t, "Applications!H4", req.Data[0].Range)
			assert.Equal(t, "approved", req.Data[0].Values[0][0])
			assert.Equal(t, "Applications!K4", req.Data[1].Range)
		}
		_ = json.NewEncoder(w).Encode(sheets.BatchUpdateValuesResponse{})
	})

	require.NoError(t, s.UpdateApplicationStatus(context.Background(), 9, models.ApplicationApproved))
}

func TestApplicationsSheet_UpdateStatusMissingRow(t *testing.T) {
	mux, s := setupMockServer(t)
	mux.HandleFunc("/v4/spreadsheets/apps_tid/values/Applications!A:A", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(sheets.ValueRange{Values: [][]interface{}{{"ID"}, {"1"}}})
	})

	err := s.UpdateApplicationStatus(context.Background(), 42, models.ApplicationRejected)
	assert.ErrorIs(t, err, errRowNotFound)
}

func TestApplicationsSheet_ReplaceAll(t *testing.T) {
	mux, s := setupMockServer(t)
	mux.HandleFunc("/v4/spreadsheets/apps_tid/values/Applications!A:K:clear", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(sheets.ClearValuesResponse{})
	})
	mux.HandleFunc("/v4/spreadsheets/apps_tid/values/Applications!A1:K3", func(w http.ResponseWriter, r *http.Request) {
		var body sheets.ValueRange
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.Len(t, body.Values, 3)
		_ = json.NewEncoder(w).Encode(sheets.UpdateValuesResponse{})
	})

	require.NoError(t, s.ReplaceAll(context.Background(), []*models.ApplicationRow{sampleRow(1), sampleRow(2)}))

	row, ok := s.getCachedRow(2)
	assert.True(t, ok)
	assert.Equal(t, 3, row)
}

func TestParseRowFromRange(t *testing.T) {
	tests := []struct {
		in  string
		row int
		ok  bool
	}{
		{"Applications!A10:K10", 10, true},
		{"Applications!B2", 2, true},
		{"garbage", 0, false},
	}
	for _, tt := range tests {
		row, ok := parseRowFromRange(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.row, row, tt.in)
	}
}

func TestRowValues_DecidedAt(t *testing.T) {
	r := sampleRow(1)
	assert.Equal(t, "", rowValues(r)[10])

	at := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	r.DecidedAt = &at
	assert.Equal(t, "2026-02-01 10:00:00", rowValues(r)[10])
}
