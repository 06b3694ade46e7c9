package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chinacal/internal/config"
)

func newTestApplication(t *testing.T) *Application {
	t.Helper()
	cfg := config.Default()
	cfg.Logging.Level = "error"
	a, err := NewWithConfig(cfg)
	require.NoError(t, err)
	return a
}

func doGET(t *testing.T, a *Application, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestApplicationServesHealth(t *testing.T) {
	a := newTestApplication(t)
	rec := doGET(t, a, "/api/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, Version, body["version"])
}

func TestApplicationRouteTable(t *testing.T) {
	a := newTestApplication(t)

	// Every endpoint answers; validation errors prove the route is wired.
	routes := []struct {
		target     string
		wantStatus int
	}{
		{"/api/health", http.StatusOK},
		{"/api/workdays?dates=2018-02-11", http.StatusOK},
		{"/api/holidays?dates=2018-02-11", http.StatusOK},
		{"/api/in-lieu?dates=2018-02-11", http.StatusOK},
		{"/api/holiday/detail?dates=2018-02-11", http.StatusOK},
		{"/api/date/type?date=2018-02-11&type=workday", http.StatusOK},
		{"/api/holidays/range?start=2018-02-10&end=2018-02-12", http.StatusOK},
		{"/api/workdays/range?start=2018-02-10&end=2018-02-12", http.StatusOK},
		{"/api/interbank/trading-days?dates=2018-02-11", http.StatusOK},
		{"/api/a-share/trading-days?dates=2018-02-11", http.StatusOK},
		{"/api/interbank/trading-days/list?start=2018-02-10&end=2018-02-12", http.StatusOK},
		{"/api/a-share/trading-days/list?start=2018-02-10&end=2018-02-12", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/api/unknown", http.StatusNotFound},
	}
	for _, tt := range routes {
		rec := doGET(t, a, tt.target)
		assert.Equal(t, tt.wantStatus, rec.Code, "GET %s", tt.target)
	}
}

func TestApplicationRejectsNonGET(t *testing.T) {
	a := newTestApplication(t)

	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/workdays", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Method Not Allowed", body["detail"])
}

func TestApplicationNotFoundEnvelope(t *testing.T) {
	a := newTestApplication(t)
	rec := doGET(t, a, "/nope")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"Not Found"}`, rec.Body.String())
}

func TestApplicationSetsRequestID(t *testing.T) {
	a := newTestApplication(t)
	rec := doGET(t, a, "/api/health")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestApplicationScenarioAShareRange(t *testing.T) {
	a := newTestApplication(t)
	rec := doGET(t, a, "/api/a-share/trading-days?start=2018-02-10&end=2018-02-12")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"results": [
			{"date": "2018-02-10", "is_a_share_trading_day": false},
			{"date": "2018-02-11", "is_a_share_trading_day": false},
			{"date": "2018-02-12", "is_a_share_trading_day": true}
		]
	}`, rec.Body.String())
}

func TestApplicationConcurrentRequests(t *testing.T) {
	a := newTestApplication(t)

	// Handlers share no mutable state; hammer the router from many
	// goroutines and expect consistent answers.
	done := make(chan struct{})
	for i := 0; i < 16; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 25; j++ {
				rec := httptest.NewRecorder()
				a.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/date/type?date=2018-02-11&type=interbank-trading-day", nil))
				if rec.Code != http.StatusOK {
					t.Errorf("unexpected status %d", rec.Code)
					return
				}
			}
		}()
	}
	for i := 0; i < 16; i++ {
		<-done
	}
}
