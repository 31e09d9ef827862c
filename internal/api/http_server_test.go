package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"recruitbot/internal/config"
	"recruitbot/internal/database"
	"recruitbot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.NewDB(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// seedOps creates two users, one pending application and two open questions.
func seedOps(t *testing.T, db *database.DB) {
	t.Helper()
	ctx := context.Background()

	for _, id := range []int64{101, 102} {
		u, err := models.NewUser(id, "user", "Аня")
		require.NoError(t, err)
		require.NoError(t, db.SaveUser(ctx, u))
	}

	app, err := models.NewApplication(101, "с 10 до 18", "работала моделью")
	require.NoError(t, err)
	require.NoError(t, db.CreateApplication(ctx, app))

	for _, q := range []struct {
		userID int64
		text   string
	}{{101, "Сколько платят?"}, {102, "Нужен ли опыт?"}} {
		pq, err := models.NewPendingQuestion(q.userID, q.text)
		require.NoError(t, err)
		require.NoError(t, db.SetPendingQuestion(ctx, pq))
	}
}

func newTestHTTPServer(store OpsStore) *HTTPServer {
	return NewHTTPServer(config.APIConfig{Enabled: false, HTTP: config.APIHTTPConfig{Enabled: true}}, store, nil)
}

func doGet(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealthz(t *testing.T) {
	db := newTestDB(t)
	rr := doGet(t, newTestHTTPServer(db).Handler(), healthPath)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestHealthz_DatabaseDown(t *testing.T) {
	store := &failingStore{err: errors.New("closed")}
	rr := doGet(t, newTestHTTPServer(store).Handler(), healthPath)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestStats(t *testing.T) {
	db := newTestDB(t)
	seedOps(t, db)

	rr := doGet(t, newTestHTTPServer(db).Handler(), statsPath)
	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string]float64
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, 2.0, body["total_users"])
	assert.Equal(t, 1.0, body["applications_pending"])
	assert.Equal(t, 2.0, body["open_questions"])
	assert.Contains(t, body, "autonomy_percent")
}

func TestStats_MethodNotAllowed(t *testing.T) {
	db := newTestDB(t)
	req := httptest.NewRequest(http.MethodPost, statsPath, http.NoBody)
	rr := httptest.NewRecorder()
	newTestHTTPServer(db).Handler().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestStats_StoreError(t *testing.T) {
	rr := doGet(t, newTestHTTPServer(&failingStore{err: errors.New("boom")}).Handler(), statsPath)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestPending(t *testing.T) {
	db := newTestDB(t)
	seedOps(t, db)
	h := newTestHTTPServer(db).Handler()

	type pendingResp struct {
		Questions []struct {
			UserID   int64  `json:"user_id"`
			Question string `json:"question"`
		} `json:"questions"`
		Total int `json:"total"`
	}

	t.Run("All", func(t *testing.T) {
		rr := doGet(t, h, pendingPath)
		require.Equal(t, http.StatusOK, rr.Code)

		var body pendingResp
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, 2, body.Total)
		assert.Len(t, body.Questions, 2)
	})

	t.Run("Limit", func(t *testing.T) {
		rr := doGet(t, h, pendingPath+"?limit=1")
		require.Equal(t, http.StatusOK, rr.Code)

		var body pendingResp
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, 2, body.Total)
		assert.Len(t, body.Questions, 1)
	})

	t.Run("BadLimit", func(t *testing.T) {
		for _, q := range []string{"?limit=0", "?limit=-3", "?limit=abc"} {
			rr := doGet(t, h, pendingPath+q)
			assert.Equal(t, http.StatusBadRequest, rr.Code, q)
		}
	})
}

func TestExport(t *testing.T) {
	db := newTestDB(t)
	seedOps(t, db)

	rr := doGet(t, newTestHTTPServer(db).Handler(), exportPath)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "recruitbot_")

	f, err := excelize.OpenReader(bytes.NewReader(rr.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Анкеты")
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = f.GetRows("Вопросы")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestHTTPServer_AuthEnabled(t *testing.T) {
	db := newTestDB(t)
	cfg := authConfig(permReadStats)
	h := NewHTTPServer(cfg, db, nil).Handler()

	rr := doGet(t, h, statsPath)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req := httptest.NewRequest(http.MethodGet, statsPath, http.NoBody)
	req.Header.Set("x-api-key", "valid-key")
	req.Header.Set("x-api-extra", "valid-extra")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	// проба живости не требует ключа
	rr = doGet(t, h, healthPath)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	db := newTestDB(t)
	rr := doGet(t, newTestHTTPServer(db).Handler(), metricsPath)
	assert.Equal(t, http.StatusOK, rr.Code)
}

type failingStore struct {
	err error
}

func (s *failingStore) GetStats(context.Context) (*models.Stats, error) { return nil, s.err }

func (s *failingStore) ListPendingQuestions(context.Context) ([]*models.PendingQuestion, error) {
	return nil, s.err
}

func (s *failingStore) ListApplicationRows(context.Context) ([]*models.ApplicationRow, error) {
	return nil, s.err
}

func (s *failingStore) PingContext(context.Context) error { return s.err }
